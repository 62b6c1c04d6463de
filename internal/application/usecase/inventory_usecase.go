package usecase

import (
	"context"

	"github.com/dquispe/almacen-api/internal/application/dto"
	"github.com/dquispe/almacen-api/internal/application/stock"
	"github.com/dquispe/almacen-api/internal/domain/repository"
)

// InventoryUseCase lecturas de inventario y fachada sobre las mutaciones
// transaccionales de stock.
type InventoryUseCase struct {
	invRepo repository.InventoryRepository
	movRepo repository.MovementRepository
	stockUC *stock.UseCase
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(invRepo repository.InventoryRepository, movRepo repository.MovementRepository, stockUC *stock.UseCase) *InventoryUseCase {
	return &InventoryUseCase{invRepo: invRepo, movRepo: movRepo, stockUC: stockUC}
}

// List lista el inventario con filtros opcionales y agrega estadísticas.
func (uc *InventoryUseCase) List(filter repository.InventoryFilter) (*dto.InventoryListResponse, error) {
	rows, err := uc.invRepo.List(filter)
	if err != nil {
		return nil, err
	}
	stats, err := uc.invRepo.Stats()
	if err != nil {
		return nil, err
	}
	out := &dto.InventoryListResponse{
		Items: make([]dto.InventoryItemResponse, 0, len(rows)),
		Stats: dto.InventoryStatsResponse{
			DistinctProducts: stats.DistinctProducts,
			TotalUnits:       stats.TotalUnits,
			Warehouses:       stats.Warehouses,
		},
	}
	for _, r := range rows {
		out.Items = append(out.Items, toInventoryItemResponse(r))
	}
	return out, nil
}

// ListByWarehouse lista el inventario de un almacén.
func (uc *InventoryUseCase) ListByWarehouse(warehouseID int64) ([]dto.InventoryItemResponse, error) {
	rows, err := uc.invRepo.ListByWarehouse(warehouseID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryItemResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, toInventoryItemResponse(r))
	}
	return items, nil
}

// ProductStock devuelve las ubicaciones y el stock total de un producto.
func (uc *InventoryUseCase) ProductStock(productID int64) (*dto.ProductStockResponse, error) {
	locations, total, err := uc.invRepo.LocationsByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductStockResponse{
		ProductID:  productID,
		TotalStock: total,
		Locations:  make([]dto.ProductLocationResponse, 0, len(locations)),
	}
	for _, l := range locations {
		out.Locations = append(out.Locations, dto.ProductLocationResponse{
			InventoryID:   l.InventoryID,
			Stock:         l.Stock,
			Aisle:         l.Aisle,
			WarehouseName: l.WarehouseName,
			SupplierName:  l.SupplierName,
		})
	}
	return out, nil
}

// Movements lista la bitácora de movimientos, más reciente primero.
func (uc *InventoryUseCase) Movements(page dto.PageRequest) ([]dto.MovementResponse, error) {
	page.DefaultPage()
	rows, err := uc.movRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.MovementResponse{
			ID:              r.Movement.ID,
			Quantity:        r.Movement.Quantity,
			Reason:          r.Movement.Reason,
			Date:            r.Movement.Date,
			ProductID:       r.Movement.ProductID,
			TransactionID:   r.Movement.TransactionID,
			Brand:           r.Brand,
			CategoryName:    r.CategoryName,
			PersonName:      r.PersonName,
			SupplierName:    r.SupplierName,
			SupplierCompany: r.SupplierCompany,
		})
	}
	return items, nil
}

// Assign asigna una línea recibida a un estante.
func (uc *InventoryUseCase) Assign(ctx context.Context, in dto.AssignRequest, personID *int64) error {
	return uc.stockUC.Assign(ctx, stock.AssignInput{
		DetailID: in.DetailID,
		ShelfID:  in.ShelfID,
		Quantity: in.Quantity,
		PersonID: personID,
	})
}

// Transfer traslada stock entre estantes.
func (uc *InventoryUseCase) Transfer(ctx context.Context, in dto.TransferRequest, personID *int64) error {
	return uc.stockUC.Transfer(ctx, stock.TransferInput{
		InventoryID: in.InventoryID,
		ToShelfID:   in.ToShelfID,
		Quantity:    in.Quantity,
		PersonID:    personID,
	})
}

// Adjust ajusta el stock de una fila de inventario.
func (uc *InventoryUseCase) Adjust(ctx context.Context, in dto.AdjustRequest, personID *int64) error {
	return uc.stockUC.Adjust(ctx, stock.AdjustInput{
		InventoryID: in.InventoryID,
		Delta:       in.Delta,
		Reason:      in.Reason,
		PersonID:    personID,
	})
}

func toInventoryItemResponse(r repository.InventoryRow) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ID:              r.Item.ID,
		Stock:           r.Item.Stock,
		ModifiedAt:      r.Item.ModifiedAt,
		ShelfID:         r.Item.ShelfID,
		ProductID:       r.Item.ProductID,
		SupplierID:      r.Item.SupplierID,
		Brand:           r.Brand,
		CategoryName:    r.CategoryName,
		Aisle:           r.Aisle,
		WarehouseID:     r.WarehouseID,
		WarehouseName:   r.WarehouseName,
		SupplierName:    r.SupplierName,
		SupplierCompany: r.SupplierCompany,
	}
}
