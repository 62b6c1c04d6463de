package dto

import "time"

// InventoryItemResponse fila de inventario con su contexto.
type InventoryItemResponse struct {
	ID              int64     `json:"id_inventario"`
	Stock           int64     `json:"stock_producto"`
	ModifiedAt      time.Time `json:"fecha_modificacion"`
	ShelfID         int64     `json:"id_estante"`
	ProductID       int64     `json:"id_producto"`
	SupplierID      *int64    `json:"id_proveedor,omitempty"`
	Brand           string    `json:"marca"`
	CategoryName    string    `json:"nombre_categoria"`
	Aisle           string    `json:"pasillo"`
	WarehouseID     int64     `json:"id_almacen"`
	WarehouseName   string    `json:"nombre_almacen"`
	SupplierName    *string   `json:"nombre_proveedor,omitempty"`
	SupplierCompany *string   `json:"empresa,omitempty"`
}

// InventoryStatsResponse agregados del inventario.
type InventoryStatsResponse struct {
	DistinctProducts int64 `json:"total_productos"`
	TotalUnits       int64 `json:"total_unidades"`
	Warehouses       int64 `json:"total_almacenes"`
}

// InventoryListResponse listado de inventario con estadísticas.
type InventoryListResponse struct {
	Items []InventoryItemResponse `json:"items"`
	Stats InventoryStatsResponse  `json:"stats"`
}

// ProductLocationResponse ubicación de un producto.
type ProductLocationResponse struct {
	InventoryID   int64   `json:"id_inventario"`
	Stock         int64   `json:"stock_producto"`
	Aisle         string  `json:"pasillo"`
	WarehouseName string  `json:"nombre_almacen"`
	SupplierName  *string `json:"nombre_proveedor,omitempty"`
}

// ProductStockResponse ubicaciones y stock total de un producto.
type ProductStockResponse struct {
	ProductID  int64                     `json:"id_producto"`
	TotalStock int64                     `json:"stock_total"`
	Locations  []ProductLocationResponse `json:"ubicaciones"`
}

// MovementResponse entrada de la bitácora con su contexto.
type MovementResponse struct {
	ID              int64     `json:"id_movimiento"`
	Quantity        int64     `json:"cantidad_producto"`
	Reason          string    `json:"motivo"`
	Date            time.Time `json:"fecha_movimiento"`
	ProductID       int64     `json:"id_producto"`
	TransactionID   string    `json:"transaction_id"`
	Brand           string    `json:"marca"`
	CategoryName    string    `json:"nombre_categoria"`
	PersonName      *string   `json:"persona,omitempty"`
	SupplierName    *string   `json:"nombre_proveedor,omitempty"`
	SupplierCompany *string   `json:"empresa,omitempty"`
}

// AssignRequest entrada para asignar una línea recibida a un estante.
type AssignRequest struct {
	DetailID int64 `json:"id_detalle_ingreso" validate:"required"`
	ShelfID  int64 `json:"id_estante" validate:"required"`
	Quantity int64 `json:"cantidad" validate:"required,min=1"`
}

// TransferRequest entrada para trasladar stock entre estantes.
type TransferRequest struct {
	InventoryID int64 `json:"id_inventario" validate:"required"`
	ToShelfID   int64 `json:"id_estante_destino" validate:"required"`
	Quantity    int64 `json:"cantidad" validate:"required,min=1"`
}

// AdjustRequest entrada para ajustar stock.
type AdjustRequest struct {
	InventoryID int64  `json:"id_inventario" validate:"required"`
	Delta       int64  `json:"ajuste" validate:"required"`
	Reason      string `json:"motivo"`
}
