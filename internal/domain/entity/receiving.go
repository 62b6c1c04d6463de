package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para ReceivingOrder.
const (
	ReceivingStatusPending  = "Pendiente"
	ReceivingStatusReceived = "Recibido"
	ReceivingStatusAssigned = "Asignado"
)

// ReceivingOrder representa un pedido de ingreso a un proveedor.
// Transiciones: Pendiente → Recibido → Asignado.
type ReceivingOrder struct {
	ID             int64
	DocumentNumber string
	TotalPrice     decimal.Decimal
	OrderDate      time.Time
	DeliveryDate   *time.Time
	Status         string
	SupplierID     int64
}

// ReceivingDetail representa una línea del pedido de ingreso.
type ReceivingDetail struct {
	ID        int64
	OrderID   int64
	UnitPrice decimal.Decimal
	Quantity  int64
	ProductID int64
}
