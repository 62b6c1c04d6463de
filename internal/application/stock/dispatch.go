package stock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dquispe/almacen-api/internal/domain"
	"github.com/dquispe/almacen-api/internal/domain/entity"
	"github.com/dquispe/almacen-api/internal/domain/repository"
)

// DispatchLine cantidad despachada para una línea de la orden.
type DispatchLine struct {
	DetailID      int64
	DispatchedQty int64
}

// ConfirmDispatchInput entrada para confirmar una orden de despacho.
type ConfirmDispatchInput struct {
	OrderID  int64
	Lines    []DispatchLine
	PersonID *int64
}

// ConfirmDispatch confirma la orden: valida TODAS las líneas contra el stock
// actual antes de escribir nada, luego fija cantidades despachadas, descuenta
// inventario (eliminando filas que llegan a cero), baja la capacidad ocupada de
// estantes y almacenes, registra un movimiento "Despacho <guía>" por línea y
// deja la orden en estado Despachado con fecha de despacho.
//
// Las líneas con cantidad 0 se omiten sin bloquear la confirmación: el
// cumplimiento parcial no impide el estado terminal. Una orden ya Despachado o
// Cancelado rechaza con ErrInvalidTransition.
func (uc *UseCase) ConfirmDispatch(ctx context.Context, input ConfirmDispatchInput) error {
	if input.OrderID <= 0 {
		return domain.ErrInvalidInput
	}
	for _, line := range input.Lines {
		if line.DetailID <= 0 || line.DispatchedQty < 0 {
			return domain.ErrInvalidInput
		}
	}

	now := time.Now()
	txID := uuid.New().String()

	return uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		shelfRepo repository.ShelfRepository,
		whRepo repository.WarehouseRepository,
		movRepo repository.MovementRepository,
		_ repository.ReceivingRepository,
		dispRepo repository.DispatchRepository,
	) error {
		order, err := dispRepo.GetOrderForUpdate(input.OrderID)
		if err != nil {
			return err
		}
		if order.Status == entity.DispatchStatusDispatched || order.Status == entity.DispatchStatusCancelled {
			return domain.ErrInvalidTransition
		}

		detailRows, err := dispRepo.ListDetails(order.ID)
		if err != nil {
			return err
		}
		details := make(map[int64]entity.DispatchDetail, len(detailRows))
		for _, row := range detailRows {
			details[row.Detail.ID] = row.Detail
		}

		// Pase de validación: bloquea cada fila de inventario implicada y
		// comprueba el stock contra la demanda acumulada de todas las líneas.
		items := make(map[int64]*entity.InventoryItem)
		pending := make(map[int64]int64)
		for _, line := range input.Lines {
			if line.DispatchedQty == 0 {
				continue
			}
			detail, ok := details[line.DetailID]
			if !ok {
				return domain.ErrInvalidInput
			}
			item, found := items[detail.InventoryID]
			if !found {
				item, err = invRepo.GetForUpdate(detail.InventoryID)
				if errors.Is(err, domain.ErrNotFound) {
					return domain.ErrInvalidInput
				}
				if err != nil {
					return err
				}
				items[detail.InventoryID] = item
			}
			pending[detail.InventoryID] += line.DispatchedQty
			if pending[detail.InventoryID] > item.Stock {
				return domain.ErrInsufficientStock
			}
		}

		// Pase de escritura: ya no puede fallar por reglas de negocio.
		for _, line := range input.Lines {
			if line.DispatchedQty == 0 {
				continue
			}
			detail := details[line.DetailID]
			item := items[detail.InventoryID]

			if err := dispRepo.SetDetailDispatchedQty(line.DetailID, line.DispatchedQty); err != nil {
				return err
			}

			item.Stock -= line.DispatchedQty
			if item.Stock == 0 {
				if err := invRepo.Delete(item.ID); err != nil {
					return err
				}
			} else {
				if err := invRepo.UpdateStock(item.ID, item.Stock); err != nil {
					return err
				}
			}

			warehouse, err := whRepo.GetByShelfForUpdate(item.ShelfID)
			if err != nil {
				return err
			}
			if err := shelfRepo.AddOccupied(item.ShelfID, -line.DispatchedQty); err != nil {
				return err
			}
			if err := whRepo.AddOccupied(warehouse.ID, -line.DispatchedQty); err != nil {
				return err
			}

			mov := &entity.Movement{
				Quantity:      line.DispatchedQty,
				Reason:        entity.DispatchReason(order.GuideNumber),
				Date:          now,
				PersonID:      input.PersonID,
				ProductID:     detail.ProductID,
				TransactionID: txID,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}

		return dispRepo.MarkDispatched(order.ID)
	})
}
