package repository

import "github.com/dquispe/almacen-api/internal/domain/entity"

// InventoryFilter filtros opcionales para el listado de inventario.
type InventoryFilter struct {
	WarehouseID *int64
	CategoryID  *int64
	BrandSearch string // búsqueda parcial por marca, insensible a acentos
}

// InventoryRow fila de inventario con los joins de presentación.
// La produce la DB; el use case la convierte en DTO.
type InventoryRow struct {
	Item            entity.InventoryItem
	Brand           string
	CategoryName    string
	Aisle           string
	WarehouseID     int64
	WarehouseName   string
	SupplierName    *string
	SupplierCompany *string
}

// InventoryStats agregados globales del inventario.
type InventoryStats struct {
	DistinctProducts int64
	TotalUnits       int64
	Warehouses       int64
}

// ProductLocation ubicación de un producto con su stock por estante.
type ProductLocation struct {
	InventoryID   int64
	Stock         int64
	Aisle         string
	WarehouseName string
	SupplierName  *string
}

// InventoryRepository define el puerto de persistencia para filas de inventario.
// La clave de negocio (producto, estante, proveedor) usa comparación null-safe
// sobre proveedor: NULL empareja con NULL.
type InventoryRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id int64) (*entity.InventoryItem, error)
	GetForUpdate(id int64) (*entity.InventoryItem, error)
	// FindByKey busca por la clave de negocio; (nil, ErrNotFound) si no existe.
	FindByKey(productID, shelfID int64, supplierID *int64) (*entity.InventoryItem, error)
	FindByKeyForUpdate(productID, shelfID int64, supplierID *int64) (*entity.InventoryItem, error)
	// UpdateStock fija el stock y refresca fecha_modificacion.
	UpdateStock(id, stock int64) error
	Delete(id int64) error
	List(filter InventoryFilter) ([]InventoryRow, error)
	ListByWarehouse(warehouseID int64) ([]InventoryRow, error)
	Stats() (*InventoryStats, error)
	// LocationsByProduct devuelve las ubicaciones y el stock total del producto.
	LocationsByProduct(productID int64) ([]ProductLocation, int64, error)
}
