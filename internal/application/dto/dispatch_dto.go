package dto

import "time"

// DispatchLineRequest línea de una orden de despacho a crear.
type DispatchLineRequest struct {
	ProductID    int64 `json:"id_producto" validate:"required"`
	InventoryID  int64 `json:"id_inventario" validate:"required"`
	RequestedQty int64 `json:"cantidad_solicitada" validate:"required,min=1"`
}

// CreateDispatchRequest entrada para crear una orden de despacho.
type CreateDispatchRequest struct {
	SupplierID int64                 `json:"id_proveedor" validate:"required"`
	Notes      string                `json:"observaciones"`
	Lines      []DispatchLineRequest `json:"productos" validate:"required,min=1,dive"`
}

// ConfirmDispatchLineRequest cantidad despachada para una línea al confirmar.
type ConfirmDispatchLineRequest struct {
	DetailID      int64 `json:"id_detalle_despacho" validate:"required"`
	DispatchedQty int64 `json:"cantidad_despachada" validate:"min=0"`
}

// ConfirmDispatchRequest entrada para confirmar una orden de despacho.
type ConfirmDispatchRequest struct {
	Lines []ConfirmDispatchLineRequest `json:"lineas" validate:"required,dive"`
}

// UpdateDispatchRequest entrada para editar una orden pendiente.
type UpdateDispatchRequest struct {
	Notes string `json:"observaciones"`
}

// DispatchOrderResponse cabecera de despacho con proveedor y agregados.
type DispatchOrderResponse struct {
	ID              int64      `json:"id_pedido_despacho"`
	GuideNumber     string     `json:"numero_guia"`
	RequestDate     time.Time  `json:"fecha_solicitud"`
	DispatchDate    *time.Time `json:"fecha_despacho,omitempty"`
	Status          string     `json:"estado"`
	Notes           string     `json:"observaciones"`
	SupplierID      int64      `json:"id_proveedor"`
	SupplierName    string     `json:"nombre_proveedor"`
	SupplierCompany string     `json:"empresa"`
	PersonName      *string    `json:"persona,omitempty"`
	TotalItems      int64      `json:"total_items"`
	TotalRequested  int64      `json:"total_solicitado"`
	TotalDispatched int64      `json:"total_despachado"`
}

// DispatchDetailResponse línea de despacho con producto y ubicación.
type DispatchDetailResponse struct {
	ID            int64   `json:"id_detalle_despacho"`
	RequestedQty  int64   `json:"cantidad_solicitada"`
	DispatchedQty int64   `json:"cantidad_despachada"`
	ProductID     int64   `json:"id_producto"`
	InventoryID   int64   `json:"id_inventario"`
	Brand         string  `json:"marca"`
	CategoryName  string  `json:"nombre_categoria"`
	Stock         *int64  `json:"stock_producto,omitempty"`
	Aisle         *string `json:"pasillo,omitempty"`
	WarehouseName *string `json:"nombre_almacen,omitempty"`
}

// DispatchWithDetailsResponse orden de despacho completa.
type DispatchWithDetailsResponse struct {
	Order   DispatchOrderResponse    `json:"despacho"`
	Details []DispatchDetailResponse `json:"detalles"`
}

// SupplierStockResponse producto disponible de un proveedor.
type SupplierStockResponse struct {
	InventoryID   int64  `json:"id_inventario"`
	ProductID     int64  `json:"id_producto"`
	Brand         string `json:"marca"`
	CategoryName  string `json:"nombre_categoria"`
	Stock         int64  `json:"stock_producto"`
	Aisle         string `json:"pasillo"`
	WarehouseName string `json:"nombre_almacen"`
}
