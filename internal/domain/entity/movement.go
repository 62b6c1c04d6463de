package entity

import "time"

// Motivos estándar de movimiento. Los despachos usan DispatchReason(numeroGuia).
const (
	ReasonInitialEntry = "Ingreso Inicial"
	ReasonTransfer     = "Traslado"
	ReasonAdjustment   = "Ajuste"
)

// DispatchReason construye el motivo de un movimiento de despacho con su guía.
func DispatchReason(guideNumber string) string {
	return "Despacho " + guideNumber
}

// Movement representa un movimiento de producto (bitácora append-only).
// Quantity siempre es positiva; el motivo indica la dirección del movimiento.
// TransactionID agrupa los movimientos emitidos por una misma operación.
type Movement struct {
	ID            int64
	Quantity      int64
	Reason        string
	Date          time.Time
	PersonID      *int64
	ProductID     int64
	TransactionID string // uuid
}
