package stock

import (
	"context"

	"github.com/dquispe/almacen-api/internal/domain"
	"github.com/dquispe/almacen-api/internal/domain/repository"
)

// Operaciones de reparación del ledger de capacidad. Los contadores
// capacidad_ocupada son cachés derivadas: el estante debe valer la suma del
// stock de sus filas y el almacén la suma de sus estantes. El camino
// incremental los mantiene; estas operaciones los recalculan desde cero y son
// idempotentes, de modo que convergen al valor correcto ante cualquier deriva.
// Las lecturas nunca disparan recálculo.

// RecomputeShelf fija la capacidad ocupada del estante a la suma real de su
// inventario.
func (uc *UseCase) RecomputeShelf(ctx context.Context, shelfID int64) error {
	if shelfID <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		_ repository.InventoryRepository,
		shelfRepo repository.ShelfRepository,
		_ repository.WarehouseRepository,
		_ repository.MovementRepository,
		_ repository.ReceivingRepository,
		_ repository.DispatchRepository,
	) error {
		return shelfRepo.RecomputeOccupied(shelfID)
	})
}

// RecomputeWarehouse fija la capacidad ocupada del almacén a la suma de las de
// sus estantes. No toca los estantes.
func (uc *UseCase) RecomputeWarehouse(ctx context.Context, warehouseID int64) error {
	if warehouseID <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		_ repository.InventoryRepository,
		_ repository.ShelfRepository,
		whRepo repository.WarehouseRepository,
		_ repository.MovementRepository,
		_ repository.ReceivingRepository,
		_ repository.DispatchRepository,
	) error {
		return whRepo.RecomputeOccupied(warehouseID)
	})
}

// RecomputeCascade recalcula de abajo hacia arriba: primero cada estante del
// almacén, luego el almacén, todo en una transacción.
func (uc *UseCase) RecomputeCascade(ctx context.Context, warehouseID int64) error {
	if warehouseID <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		_ repository.InventoryRepository,
		shelfRepo repository.ShelfRepository,
		whRepo repository.WarehouseRepository,
		_ repository.MovementRepository,
		_ repository.ReceivingRepository,
		_ repository.DispatchRepository,
	) error {
		shelves, err := shelfRepo.ListByWarehouse(warehouseID)
		if err != nil {
			return err
		}
		for _, shelf := range shelves {
			if err := shelfRepo.RecomputeOccupied(shelf.ID); err != nil {
				return err
			}
		}
		return whRepo.RecomputeOccupied(warehouseID)
	})
}
