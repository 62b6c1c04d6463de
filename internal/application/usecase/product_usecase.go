package usecase

import (
	"errors"

	"github.com/dquispe/almacen-api/internal/application/dto"
	"github.com/dquispe/almacen-api/internal/domain"
	"github.com/dquispe/almacen-api/internal/domain/entity"
	"github.com/dquispe/almacen-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos y categorías.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create crea un producto dentro de una categoría activa.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Brand == "" || in.InitialCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.productRepo.GetCategory(in.CategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidInput
		}
		return nil, err
	}
	product := &entity.Product{
		Brand:           in.Brand,
		ManufactureDate: in.ManufactureDate,
		InitialCost:     in.InitialCost,
		CategoryID:      in.CategoryID,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product, ""), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, ""), nil
}

// Update actualiza un producto.
func (uc *ProductUseCase) Update(id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Brand != nil {
		if *in.Brand == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Brand = *in.Brand
	}
	if in.ManufactureDate != nil {
		product.ManufactureDate = in.ManufactureDate
	}
	if in.InitialCost != nil {
		if in.InitialCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.InitialCost = *in.InitialCost
	}
	if in.CategoryID != nil {
		if _, err := uc.productRepo.GetCategory(*in.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrInvalidInput
			}
			return nil, err
		}
		product.CategoryID = *in.CategoryID
	}
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product, ""), nil
}

// List lista los productos con su categoría.
func (uc *ProductUseCase) List() ([]dto.ProductResponse, error) {
	rows, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, *toProductResponse(&r.Product, r.CategoryName))
	}
	return items, nil
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(id int64) error {
	if _, err := uc.productRepo.GetByID(id); err != nil {
		return err
	}
	return uc.productRepo.Delete(id)
}

// CreateCategory crea una categoría activa.
func (uc *ProductUseCase) CreateCategory(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	category := &entity.Category{
		Name:        in.Name,
		Description: in.Description,
		Status:      entity.CategoryStatusActive,
	}
	if err := uc.productRepo.CreateCategory(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// ListCategories lista las categorías activas.
func (uc *ProductUseCase) ListCategories() ([]dto.CategoryResponse, error) {
	list, err := uc.productRepo.ListCategories()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return items, nil
}

func toProductResponse(p *entity.Product, categoryName string) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		Brand:           p.Brand,
		ManufactureDate: p.ManufactureDate,
		InitialCost:     p.InitialCost,
		CategoryID:      p.CategoryID,
		CategoryName:    categoryName,
	}
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Status:      c.Status,
	}
}
