package repository

import "github.com/dquispe/almacen-api/internal/domain/entity"

// DispatchOrderRow orden de despacho con proveedor, solicitante y agregados.
type DispatchOrderRow struct {
	Order           entity.DispatchOrder
	SupplierName    string
	SupplierCompany string
	PersonName      *string
	TotalItems      int64
	TotalRequested  int64
	TotalDispatched int64
}

// DispatchDetailRow línea de despacho con producto y la ubicación actual del
// inventario referenciado (nil si la fila de inventario ya no existe).
type DispatchDetailRow struct {
	Detail        entity.DispatchDetail
	Brand         string
	CategoryName  string
	Stock         *int64
	Aisle         *string
	WarehouseName *string
}

// SupplierStockRow producto disponible de un proveedor, con su ubicación.
type SupplierStockRow struct {
	InventoryID   int64
	ProductID     int64
	Brand         string
	CategoryName  string
	Stock         int64
	Aisle         string
	WarehouseName string
}

// DispatchRepository define el puerto de persistencia para órdenes de despacho.
type DispatchRepository interface {
	CreateOrder(order *entity.DispatchOrder) error
	CreateDetail(detail *entity.DispatchDetail) error
	GetOrder(id int64) (*entity.DispatchOrder, error)
	// GetOrderForUpdate bloquea la orden (SELECT FOR UPDATE); usado al confirmar.
	GetOrderForUpdate(id int64) (*entity.DispatchOrder, error)
	UpdateNotes(id int64, notes string) error
	SetStatus(id int64, status string) error
	// MarkDispatched fija estado Despachado y fecha_despacho.
	MarkDispatched(id int64) error
	SetDetailDispatchedQty(detailID, qty int64) error
	// CountOrders devuelve el total de órdenes (correlativo del número de guía).
	CountOrders() (int64, error)
	ListOrders() ([]DispatchOrderRow, error)
	GetOrderRow(id int64) (*DispatchOrderRow, error)
	ListDetails(orderID int64) ([]DispatchDetailRow, error)
	ListBySupplier(supplierID int64) ([]DispatchOrderRow, error)
	// AvailableBySupplier devuelve el inventario con stock > 0 del proveedor.
	AvailableBySupplier(supplierID int64) ([]SupplierStockRow, error)
	// SuppliersWithStock devuelve los proveedores con inventario disponible.
	SuppliersWithStock() ([]*entity.Supplier, error)
}
