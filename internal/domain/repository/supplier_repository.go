package repository

import "github.com/dquispe/almacen-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id int64) (*entity.Supplier, error)
	GetByNIT(nit string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	List() ([]*entity.Supplier, error)
	// Search busca por nombre, empresa o NIT; la implementación normaliza
	// acentos para que "Pérez" y "Perez" emparejen.
	Search(term string) ([]*entity.Supplier, error)
	Delete(id int64) error
	// CountOrders cuenta los pedidos de ingreso del proveedor (guard de borrado).
	CountOrders(supplierID int64) (int64, error)
}
