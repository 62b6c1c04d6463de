package repository

import "github.com/dquispe/almacen-api/internal/domain/entity"

// ReceivingOrderRow pedido de ingreso con proveedor y agregados de sus líneas.
type ReceivingOrderRow struct {
	Order           entity.ReceivingOrder
	SupplierName    string
	SupplierCompany string
	SupplierNIT     string
	TotalProducts   int64
	TotalQuantity   int64
}

// ReceivingDetailRow línea de ingreso con producto y categoría.
type ReceivingDetailRow struct {
	Detail       entity.ReceivingDetail
	Brand        string
	CategoryName string
}

// PendingAssignmentRow línea de pedido en estado Recibido, lista para asignarse
// a un estante.
type PendingAssignmentRow struct {
	DetailID        int64
	ProductID       int64
	Brand           string
	CategoryName    string
	OrderID         int64
	SupplierID      int64
	SupplierName    string
	SupplierCompany string
	ReceivedQty     int64
	OrderStatus     string
}

// ReceivingRepository define el puerto de persistencia para pedidos de ingreso
// y sus líneas.
type ReceivingRepository interface {
	CreateOrder(order *entity.ReceivingOrder) error
	CreateDetail(detail *entity.ReceivingDetail) error
	GetOrder(id int64) (*entity.ReceivingOrder, error)
	// GetOrderForUpdate bloquea el pedido (SELECT FOR UPDATE); usado por Assign.
	GetOrderForUpdate(id int64) (*entity.ReceivingOrder, error)
	GetDetail(id int64) (*entity.ReceivingDetail, error)
	UpdateOrder(order *entity.ReceivingOrder) error
	SetOrderStatus(id int64, status string) error
	// DeleteOrder elimina el pedido y sus líneas.
	DeleteOrder(id int64) error
	ListOrders() ([]ReceivingOrderRow, error)
	GetOrderRow(id int64) (*ReceivingOrderRow, error)
	ListDetails(orderID int64) ([]ReceivingDetailRow, error)
	// ListPendingAssignment devuelve las líneas de pedidos en estado Recibido.
	ListPendingAssignment() ([]PendingAssignmentRow, error)
}
