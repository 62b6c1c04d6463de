package usecase

import (
	"errors"

	"github.com/dquispe/almacen-api/internal/application/dto"
	"github.com/dquispe/almacen-api/internal/domain"
	"github.com/dquispe/almacen-api/internal/domain/entity"
	"github.com/dquispe/almacen-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para almacenes y estantes.
type WarehouseUseCase struct {
	whRepo    repository.WarehouseRepository
	shelfRepo repository.ShelfRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(whRepo repository.WarehouseRepository, shelfRepo repository.ShelfRepository) *WarehouseUseCase {
	return &WarehouseUseCase{whRepo: whRepo, shelfRepo: shelfRepo}
}

// Create crea un nuevo almacén.
func (uc *WarehouseUseCase) Create(in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Name == "" || in.Capacity < 1 {
		return nil, domain.ErrInvalidInput
	}
	warehouse := &entity.Warehouse{
		Name:     in.Name,
		Capacity: in.Capacity,
		Location: in.Location,
		PersonID: in.PersonID,
	}
	if err := uc.whRepo.Create(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene un almacén por ID.
func (uc *WarehouseUseCase) GetByID(id int64) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.whRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza un almacén. La capacidad no puede bajar de lo ya ocupado.
func (uc *WarehouseUseCase) Update(id int64, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.whRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.Capacity != nil {
		if *in.Capacity < warehouse.OccupiedCapacity {
			return nil, domain.ErrConflict
		}
		warehouse.Capacity = *in.Capacity
	}
	if in.Location != nil {
		warehouse.Location = *in.Location
	}
	if in.PersonID != nil {
		warehouse.PersonID = in.PersonID
	}
	if err := uc.whRepo.Update(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista todos los almacenes.
func (uc *WarehouseUseCase) List() ([]dto.WarehouseResponse, error) {
	list, err := uc.whRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return items, nil
}

// Delete elimina un almacén. Rechaza con ErrConflict si aún tiene estantes.
func (uc *WarehouseUseCase) Delete(id int64) error {
	if _, err := uc.whRepo.GetByID(id); err != nil {
		return err
	}
	n, err := uc.whRepo.CountShelves(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrConflict
	}
	return uc.whRepo.Delete(id)
}

// ── Estantes ──────────────────────────────────────────────────────────────────

// CreateShelf crea un estante dentro de un almacén.
func (uc *WarehouseUseCase) CreateShelf(in dto.CreateShelfRequest) (*dto.ShelfResponse, error) {
	if in.Aisle == "" || in.Capacity < 1 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.whRepo.GetByID(in.WarehouseID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidInput
		}
		return nil, err
	}
	shelf := &entity.Shelf{
		WarehouseID: in.WarehouseID,
		Aisle:       in.Aisle,
		Capacity:    in.Capacity,
		Status:      entity.ShelfStatusAvailable,
	}
	if err := uc.shelfRepo.Create(shelf); err != nil {
		return nil, err
	}
	return toShelfResponse(shelf), nil
}

// UpdateShelf actualiza un estante. La capacidad no puede bajar de lo ocupado.
func (uc *WarehouseUseCase) UpdateShelf(id int64, in dto.UpdateShelfRequest) (*dto.ShelfResponse, error) {
	shelf, err := uc.shelfRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Aisle != nil {
		shelf.Aisle = *in.Aisle
	}
	if in.Capacity != nil {
		if *in.Capacity < shelf.OccupiedCapacity {
			return nil, domain.ErrConflict
		}
		shelf.Capacity = *in.Capacity
	}
	if in.Status != nil {
		if *in.Status != entity.ShelfStatusAvailable && *in.Status != entity.ShelfStatusUnusable {
			return nil, domain.ErrInvalidInput
		}
		shelf.Status = *in.Status
	}
	if err := uc.shelfRepo.Update(shelf); err != nil {
		return nil, err
	}
	return toShelfResponse(shelf), nil
}

// ListShelves lista los estantes de un almacén ordenados por pasillo.
func (uc *WarehouseUseCase) ListShelves(warehouseID int64) ([]dto.ShelfResponse, error) {
	list, err := uc.shelfRepo.ListByWarehouse(warehouseID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShelfResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toShelfResponse(s))
	}
	return items, nil
}

// ListAvailableShelves lista los estantes utilizables con su espacio libre.
func (uc *WarehouseUseCase) ListAvailableShelves(warehouseID int64) ([]dto.ShelfResponse, error) {
	list, err := uc.shelfRepo.ListAvailableByWarehouse(warehouseID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShelfResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toShelfResponse(s))
	}
	return items, nil
}

// DeleteShelf elimina un estante. Rechaza con ErrConflict si tiene inventario.
func (uc *WarehouseUseCase) DeleteShelf(id int64) error {
	if _, err := uc.shelfRepo.GetByID(id); err != nil {
		return err
	}
	n, err := uc.shelfRepo.CountInventory(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrConflict
	}
	return uc.shelfRepo.Delete(id)
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:               w.ID,
		Name:             w.Name,
		Capacity:         w.Capacity,
		OccupiedCapacity: w.OccupiedCapacity,
		FreeCapacity:     w.FreeCapacity(),
		Location:         w.Location,
		PersonID:         w.PersonID,
	}
}

func toShelfResponse(s *entity.Shelf) *dto.ShelfResponse {
	if s == nil {
		return nil
	}
	return &dto.ShelfResponse{
		ID:               s.ID,
		WarehouseID:      s.WarehouseID,
		Aisle:            s.Aisle,
		Capacity:         s.Capacity,
		OccupiedCapacity: s.OccupiedCapacity,
		FreeCapacity:     s.FreeCapacity(),
		Status:           s.Status,
	}
}
