package entity

import "time"

// InventoryItem representa una fila de inventario: stock de un producto en un
// estante, procedente de un proveedor (nullable). La clave de negocio es
// (ProductID, ShelfID, SupplierID) con comparación null-safe sobre SupplierID.
// Las filas con stock cero se eliminan; nunca se persiste stock 0.
type InventoryItem struct {
	ID         int64
	Stock      int64
	ModifiedAt time.Time
	ShelfID    int64
	ProductID  int64
	SupplierID *int64
	Status     string // Disponible
}
