package repository

import "github.com/dquispe/almacen-api/internal/domain/entity"

// ProductRow producto con su categoría.
type ProductRow struct {
	Product      entity.Product
	CategoryName string
}

// ProductRepository define el puerto de persistencia para Product y Category.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	Update(product *entity.Product) error
	List() ([]ProductRow, error)
	Delete(id int64) error

	CreateCategory(category *entity.Category) error
	GetCategory(id int64) (*entity.Category, error)
	// ListCategories devuelve solo las categorías activas.
	ListCategories() ([]*entity.Category, error)
}
