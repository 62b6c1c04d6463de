package usecase

import (
	"errors"
	"strings"

	"github.com/dquispe/almacen-api/internal/application/dto"
	"github.com/dquispe/almacen-api/internal/domain"
	"github.com/dquispe/almacen-api/internal/domain/entity"
	"github.com/dquispe/almacen-api/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(supplierRepo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo}
}

// Create registra un proveedor. El NIT es único.
func (uc *SupplierUseCase) Create(in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	nit := strings.TrimSpace(in.NIT)
	if nit == "" || in.Name == "" || in.Company == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.supplierRepo.GetByNIT(nit); err == nil {
		return nil, domain.ErrDuplicate
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	supplier := &entity.Supplier{
		NIT:     nit,
		Name:    in.Name,
		Company: in.Company,
		Phone:   in.Phone,
		Address: in.Address,
	}
	if err := uc.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetByID(id int64) (*dto.SupplierResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// Update actualiza un proveedor manteniendo el NIT único.
func (uc *SupplierUseCase) Update(id int64, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.NIT != nil {
		nit := strings.TrimSpace(*in.NIT)
		if nit == "" {
			return nil, domain.ErrInvalidInput
		}
		if nit != supplier.NIT {
			if other, err := uc.supplierRepo.GetByNIT(nit); err == nil && other.ID != id {
				return nil, domain.ErrDuplicate
			} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			supplier.NIT = nit
		}
	}
	if in.Name != nil {
		supplier.Name = *in.Name
	}
	if in.Company != nil {
		supplier.Company = *in.Company
	}
	if in.Phone != nil {
		supplier.Phone = *in.Phone
	}
	if in.Address != nil {
		supplier.Address = *in.Address
	}
	if err := uc.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// List lista todos los proveedores; con term hace búsqueda parcial
// insensible a acentos sobre nombre, empresa y NIT.
func (uc *SupplierUseCase) List(term string) ([]dto.SupplierResponse, error) {
	var (
		list []*entity.Supplier
		err  error
	)
	if term = strings.TrimSpace(term); term != "" {
		list, err = uc.supplierRepo.Search(term)
	} else {
		list, err = uc.supplierRepo.List()
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return items, nil
}

// Delete elimina un proveedor. Rechaza con ErrConflict si tiene pedidos.
func (uc *SupplierUseCase) Delete(id int64) error {
	if _, err := uc.supplierRepo.GetByID(id); err != nil {
		return err
	}
	n, err := uc.supplierRepo.CountOrders(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrConflict
	}
	return uc.supplierRepo.Delete(id)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:      s.ID,
		NIT:     s.NIT,
		Name:    s.Name,
		Company: s.Company,
		Phone:   s.Phone,
		Address: s.Address,
	}
}
