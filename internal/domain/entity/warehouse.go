package entity

// Estados válidos para Shelf.
const (
	ShelfStatusAvailable = "Disponible"
	ShelfStatusUnusable  = "Inutilizable"
)

// Warehouse representa un almacén físico. OccupiedCapacity es una caché derivada:
// siempre igual a la suma de las capacidades ocupadas de sus estantes.
type Warehouse struct {
	ID               int64
	Name             string
	Capacity         int64
	OccupiedCapacity int64
	Location         string
	PersonID         *int64 // responsable, opcional
}

// FreeCapacity devuelve el espacio libre del almacén.
func (w *Warehouse) FreeCapacity() int64 {
	return w.Capacity - w.OccupiedCapacity
}

// Shelf representa un estante dentro de un almacén. OccupiedCapacity es una caché
// derivada: siempre igual a la suma del stock de sus filas de inventario.
type Shelf struct {
	ID               int64
	WarehouseID      int64
	Aisle            string
	Capacity         int64
	OccupiedCapacity int64
	Status           string // Disponible, Inutilizable
}

// FreeCapacity devuelve el espacio libre del estante.
func (s *Shelf) FreeCapacity() int64 {
	return s.Capacity - s.OccupiedCapacity
}
