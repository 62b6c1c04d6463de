package repository

import "github.com/dquispe/almacen-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
// Los métodos *Occupied se usan dentro de transacciones del core de stock.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id int64) (*entity.Warehouse, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(id int64) (*entity.Warehouse, error)
	GetByShelf(shelfID int64) (*entity.Warehouse, error)
	GetByShelfForUpdate(shelfID int64) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	List() ([]*entity.Warehouse, error)
	Delete(id int64) error
	// CountShelves cuenta los estantes del almacén (guard de borrado).
	CountShelves(warehouseID int64) (int64, error)
	// AddOccupied aplica capacidad_ocupada = capacidad_ocupada + delta (atómico).
	AddOccupied(warehouseID, delta int64) error
	// RecomputeOccupied fija capacidad_ocupada = SUM(estantes.capacidad_ocupada).
	RecomputeOccupied(warehouseID int64) error
}

// ShelfRepository define el puerto de persistencia para Shelf (DIP).
type ShelfRepository interface {
	Create(shelf *entity.Shelf) error
	GetByID(id int64) (*entity.Shelf, error)
	GetForUpdate(id int64) (*entity.Shelf, error)
	Update(shelf *entity.Shelf) error
	// ListByWarehouse devuelve los estantes del almacén ordenados por pasillo.
	ListByWarehouse(warehouseID int64) ([]*entity.Shelf, error)
	// ListAvailableByWarehouse excluye estantes en estado Inutilizable.
	ListAvailableByWarehouse(warehouseID int64) ([]*entity.Shelf, error)
	Delete(id int64) error
	// CountInventory cuenta las filas de inventario del estante (guard de borrado).
	CountInventory(shelfID int64) (int64, error)
	AddOccupied(shelfID, delta int64) error
	// RecomputeOccupied fija capacidad_ocupada = SUM(inventario.stock_producto).
	RecomputeOccupied(shelfID int64) error
}
