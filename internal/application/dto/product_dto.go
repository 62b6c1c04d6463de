package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Brand           string          `json:"marca" validate:"required,min=1,max=200"`
	ManufactureDate *time.Time      `json:"fecha_fabricacion"`
	InitialCost     decimal.Decimal `json:"costo_inicial"`
	CategoryID      int64           `json:"id_categoria_producto" validate:"required"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	Brand           *string          `json:"marca" validate:"omitempty,min=1,max=200"`
	ManufactureDate *time.Time       `json:"fecha_fabricacion"`
	InitialCost     *decimal.Decimal `json:"costo_inicial"`
	CategoryID      *int64           `json:"id_categoria_producto"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              int64           `json:"id_producto"`
	Brand           string          `json:"marca"`
	ManufactureDate *time.Time      `json:"fecha_fabricacion,omitempty"`
	InitialCost     decimal.Decimal `json:"costo_inicial"`
	CategoryID      int64           `json:"id_categoria_producto"`
	CategoryName    string          `json:"nombre_categoria,omitempty"`
}

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"nombre_categoria" validate:"required,min=1,max=200"`
	Description string `json:"descripcion"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          int64  `json:"id_categoria_producto"`
	Name        string `json:"nombre_categoria"`
	Description string `json:"descripcion,omitempty"`
	Status      string `json:"estado"`
}
