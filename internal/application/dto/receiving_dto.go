package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivingLineRequest línea de una recepción a crear.
type ReceivingLineRequest struct {
	ProductID int64           `json:"id_producto" validate:"required"`
	Quantity  int64           `json:"cantidad" validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"precio_unitario" validate:"required"`
}

// CreateReceivingRequest entrada para crear una recepción con sus líneas.
type CreateReceivingRequest struct {
	SupplierID     int64                  `json:"id_proveedor" validate:"required"`
	DocumentNumber string                 `json:"numero_documento"`
	OrderDate      time.Time              `json:"fecha_pedido" validate:"required"`
	DeliveryDate   *time.Time             `json:"fecha_entrega"`
	Status         string                 `json:"estado" validate:"omitempty,oneof=Pendiente Recibido Asignado"`
	Lines          []ReceivingLineRequest `json:"productos" validate:"required,min=1,dive"`
}

// UpdateReceivingRequest entrada para editar la cabecera de una recepción.
type UpdateReceivingRequest struct {
	DocumentNumber *string    `json:"numero_documento"`
	OrderDate      *time.Time `json:"fecha_pedido"`
	DeliveryDate   *time.Time `json:"fecha_entrega"`
	Status         *string    `json:"estado" validate:"omitempty,oneof=Pendiente Recibido Asignado"`
}

// ReceivingOrderResponse cabecera de recepción con proveedor y agregados.
type ReceivingOrderResponse struct {
	ID              int64           `json:"id_pedido"`
	DocumentNumber  string          `json:"numero_documento"`
	TotalPrice      decimal.Decimal `json:"precio_total"`
	OrderDate       time.Time       `json:"fecha_pedido"`
	DeliveryDate    *time.Time      `json:"fecha_entrega,omitempty"`
	Status          string          `json:"estado"`
	SupplierID      int64           `json:"id_proveedor"`
	SupplierName    string          `json:"nombre_proveedor"`
	SupplierCompany string          `json:"empresa"`
	SupplierNIT     string          `json:"nit,omitempty"`
	TotalProducts   int64           `json:"total_productos"`
	TotalQuantity   int64           `json:"cantidad_total"`
}

// ReceivingDetailResponse línea de recepción con producto.
type ReceivingDetailResponse struct {
	ID           int64           `json:"id_detalle_ingreso"`
	UnitPrice    decimal.Decimal `json:"precio_unitario"`
	Quantity     int64           `json:"cantidad"`
	ProductID    int64           `json:"id_producto"`
	Brand        string          `json:"marca"`
	CategoryName string          `json:"nombre_categoria"`
}

// ReceivingWithDetailsResponse recepción completa.
type ReceivingWithDetailsResponse struct {
	Order   ReceivingOrderResponse    `json:"pedido"`
	Details []ReceivingDetailResponse `json:"detalles"`
}

// PendingAssignmentResponse línea recibida pendiente de asignar a estante.
type PendingAssignmentResponse struct {
	DetailID        int64  `json:"id_detalle_ingreso"`
	ProductID       int64  `json:"id_producto"`
	Brand           string `json:"marca"`
	CategoryName    string `json:"nombre_categoria"`
	OrderID         int64  `json:"id_pedido"`
	SupplierID      int64  `json:"id_proveedor"`
	SupplierName    string `json:"nombre_proveedor"`
	SupplierCompany string `json:"empresa"`
	ReceivedQty     int64  `json:"cantidad_recibida"`
}
