package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto almacenable. El stock NO vive aquí: se maneja
// por estante en InventoryItem.
type Product struct {
	ID              int64
	Brand           string
	ManufactureDate *time.Time
	InitialCost     decimal.Decimal
	CategoryID      int64
}

// Estados de una categoría de producto.
const (
	CategoryStatusActive   = "ACTIVA"
	CategoryStatusInactive = "INACTIVA"
)

// Category representa una categoría de producto.
type Category struct {
	ID          int64
	Name        string
	Description string
	Status      string
}
