package entity

import "time"

// Estados válidos para DispatchOrder.
const (
	DispatchStatusPending    = "Pendiente"
	DispatchStatusPreparing  = "En Preparación"
	DispatchStatusDispatched = "Despachado"
	DispatchStatusCancelled  = "Cancelado"
)

// DispatchOrder representa una orden de despacho hacia un proveedor/destinatario.
// Transiciones: Pendiente → En Preparación → Despachado; cancelable mientras no
// esté Despachado. Despachado y Cancelado son terminales.
type DispatchOrder struct {
	ID           int64
	GuideNumber  string // GS-YYYYMMDD-NNNN
	RequestDate  time.Time
	DispatchDate *time.Time
	Status       string
	Notes        string
	SupplierID   int64
	PersonID     *int64
}

// DispatchDetail representa una línea de la orden de despacho, ligada a la fila
// de inventario de la que saldrá el stock. DispatchedQty se fija al confirmar.
type DispatchDetail struct {
	ID            int64
	OrderID       int64
	RequestedQty  int64
	DispatchedQty int64
	ProductID     int64
	InventoryID   int64
}
