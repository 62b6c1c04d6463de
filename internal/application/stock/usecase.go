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

// UseCase agrupa las mutaciones transaccionales de stock: asignación desde
// recepción, traslado entre estantes, ajuste y confirmación de despacho.
// Cada operación corre en una sola transacción con bloqueo de fila
// (SELECT FOR UPDATE) sobre las filas que ajusta; la capacidad ocupada de
// estante y almacén se mantiene con incrementos atómicos.
type UseCase struct {
	txRunner TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner) *UseCase {
	return &UseCase{txRunner: txRunner}
}

// AssignInput entrada para asignar una línea recibida a un estante.
type AssignInput struct {
	DetailID int64 // línea de Detalle_Ingreso
	ShelfID  int64
	Quantity int64
	PersonID *int64 // usuario que ejecuta, para la bitácora
}

// TransferInput entrada para trasladar stock entre estantes.
type TransferInput struct {
	InventoryID int64
	ToShelfID   int64
	Quantity    int64
	PersonID    *int64
}

// AdjustInput entrada para ajustar stock (correcciones, mermas).
type AdjustInput struct {
	InventoryID int64
	Delta       int64  // positivo suma, negativo resta
	Reason      string // motivo para la bitácora; vacío = "Ajuste"
	PersonID    *int64
}

// asInvalidRef convierte ErrNotFound en ErrInvalidInput: las referencias que
// llegan en el input (detalle, estante, fila de inventario) son datos del
// cliente, no el recurso de la operación.
func asInvalidRef(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrInvalidInput
	}
	return err
}

// Assign toma cantidad de una línea de pedido en estado Recibido y la coloca en
// un estante: crea o incrementa la fila de inventario (clave producto/estante/
// proveedor), sube la capacidad ocupada de estante y almacén, registra el
// movimiento "Ingreso Inicial" y marca el pedido como Asignado.
// Toda precondición fallida rechaza antes de la primera escritura.
func (uc *UseCase) Assign(ctx context.Context, input AssignInput) error {
	if input.DetailID <= 0 || input.ShelfID <= 0 {
		return domain.ErrInvalidInput
	}
	if input.Quantity < 1 {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	txID := uuid.New().String()

	return uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		shelfRepo repository.ShelfRepository,
		whRepo repository.WarehouseRepository,
		movRepo repository.MovementRepository,
		recvRepo repository.ReceivingRepository,
		_ repository.DispatchRepository,
	) error {
		detail, err := recvRepo.GetDetail(input.DetailID)
		if err != nil {
			return asInvalidRef(err)
		}
		order, err := recvRepo.GetOrderForUpdate(detail.OrderID)
		if err != nil {
			return err
		}
		if order.Status != entity.ReceivingStatusReceived {
			return domain.ErrInvalidTransition
		}
		if input.Quantity > detail.Quantity {
			return domain.ErrInvalidInput
		}

		shelf, err := shelfRepo.GetForUpdate(input.ShelfID)
		if err != nil {
			return asInvalidRef(err)
		}
		if shelf.Status != entity.ShelfStatusAvailable {
			return domain.ErrInvalidInput
		}
		if shelf.OccupiedCapacity+input.Quantity > shelf.Capacity {
			return domain.ErrCapacityExceeded
		}
		warehouse, err := whRepo.GetByShelfForUpdate(shelf.ID)
		if err != nil {
			return err
		}
		if warehouse.OccupiedCapacity+input.Quantity > warehouse.Capacity {
			return domain.ErrCapacityExceeded
		}

		supplierID := order.SupplierID
		item, err := invRepo.FindByKeyForUpdate(detail.ProductID, shelf.ID, &supplierID)
		switch {
		case err == nil:
			if err := invRepo.UpdateStock(item.ID, item.Stock+input.Quantity); err != nil {
				return err
			}
		case errors.Is(err, domain.ErrNotFound):
			item = &entity.InventoryItem{
				Stock:      input.Quantity,
				ModifiedAt: now,
				ShelfID:    shelf.ID,
				ProductID:  detail.ProductID,
				SupplierID: &supplierID,
				Status:     "Disponible",
			}
			if err := invRepo.Create(item); err != nil {
				return err
			}
		default:
			return err
		}

		if err := shelfRepo.AddOccupied(shelf.ID, input.Quantity); err != nil {
			return err
		}
		if err := whRepo.AddOccupied(warehouse.ID, input.Quantity); err != nil {
			return err
		}

		mov := &entity.Movement{
			Quantity:      input.Quantity,
			Reason:        entity.ReasonInitialEntry,
			Date:          now,
			PersonID:      input.PersonID,
			ProductID:     detail.ProductID,
			TransactionID: txID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		return recvRepo.SetOrderStatus(order.ID, entity.ReceivingStatusAssigned)
	})
}

// Transfer mueve cantidad de una fila de inventario a otro estante: resta (o
// elimina) la fila origen, crea o incrementa la fila destino con la misma clave
// de negocio, ajusta capacidad ocupada de ambos estantes y almacenes y registra
// el movimiento "Traslado". Un traslado al mismo estante es un no-op validado:
// se aceptan las precondiciones, no se escribe nada.
func (uc *UseCase) Transfer(ctx context.Context, input TransferInput) error {
	if input.InventoryID <= 0 || input.ToShelfID <= 0 {
		return domain.ErrInvalidInput
	}
	if input.Quantity < 1 {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	txID := uuid.New().String()

	return uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		shelfRepo repository.ShelfRepository,
		whRepo repository.WarehouseRepository,
		movRepo repository.MovementRepository,
		_ repository.ReceivingRepository,
		_ repository.DispatchRepository,
	) error {
		src, err := invRepo.GetForUpdate(input.InventoryID)
		if err != nil {
			return asInvalidRef(err)
		}
		if input.Quantity > src.Stock {
			return domain.ErrInsufficientStock
		}

		// Mismo estante: clave de negocio idéntica, no hay nada que mover.
		if src.ShelfID == input.ToShelfID {
			destShelf, err := shelfRepo.GetForUpdate(input.ToShelfID)
			if err != nil {
				return asInvalidRef(err)
			}
			if destShelf.Status != entity.ShelfStatusAvailable {
				return domain.ErrInvalidInput
			}
			return nil
		}

		// Estantes y almacenes se bloquean en orden ascendente de ID para que
		// dos traslados en direcciones opuestas no se interbloqueen.
		var srcShelf, destShelf *entity.Shelf
		firstShelf, secondShelf := src.ShelfID, input.ToShelfID
		if firstShelf > secondShelf {
			firstShelf, secondShelf = secondShelf, firstShelf
		}
		for _, id := range []int64{firstShelf, secondShelf} {
			shelf, err := shelfRepo.GetForUpdate(id)
			if err != nil {
				if id == input.ToShelfID {
					return asInvalidRef(err)
				}
				return err
			}
			if id == src.ShelfID {
				srcShelf = shelf
			} else {
				destShelf = shelf
			}
		}
		if destShelf.Status != entity.ShelfStatusAvailable {
			return domain.ErrInvalidInput
		}
		if destShelf.OccupiedCapacity+input.Quantity > destShelf.Capacity {
			return domain.ErrCapacityExceeded
		}

		var srcWh, destWh *entity.Warehouse
		if srcShelf.WarehouseID == destShelf.WarehouseID {
			w, err := whRepo.GetForUpdate(srcShelf.WarehouseID)
			if err != nil {
				return err
			}
			srcWh, destWh = w, w
		} else {
			firstWh, secondWh := srcShelf.WarehouseID, destShelf.WarehouseID
			if firstWh > secondWh {
				firstWh, secondWh = secondWh, firstWh
			}
			for _, id := range []int64{firstWh, secondWh} {
				w, err := whRepo.GetForUpdate(id)
				if err != nil {
					return err
				}
				if id == srcShelf.WarehouseID {
					srcWh = w
				} else {
					destWh = w
				}
			}
		}
		if destWh.OccupiedCapacity+input.Quantity > destWh.Capacity {
			return domain.ErrCapacityExceeded
		}

		// Resta en origen; la fila muere al llegar a cero.
		if newStock := src.Stock - input.Quantity; newStock == 0 {
			if err := invRepo.Delete(src.ID); err != nil {
				return err
			}
		} else {
			if err := invRepo.UpdateStock(src.ID, newStock); err != nil {
				return err
			}
		}
		if err := shelfRepo.AddOccupied(src.ShelfID, -input.Quantity); err != nil {
			return err
		}
		if err := whRepo.AddOccupied(srcWh.ID, -input.Quantity); err != nil {
			return err
		}

		// Suma en destino sobre la misma clave (proveedor null-safe).
		dest, err := invRepo.FindByKeyForUpdate(src.ProductID, destShelf.ID, src.SupplierID)
		switch {
		case err == nil:
			if err := invRepo.UpdateStock(dest.ID, dest.Stock+input.Quantity); err != nil {
				return err
			}
		case errors.Is(err, domain.ErrNotFound):
			dest = &entity.InventoryItem{
				Stock:      input.Quantity,
				ModifiedAt: now,
				ShelfID:    destShelf.ID,
				ProductID:  src.ProductID,
				SupplierID: src.SupplierID,
				Status:     "Disponible",
			}
			if err := invRepo.Create(dest); err != nil {
				return err
			}
		default:
			return err
		}
		if err := shelfRepo.AddOccupied(destShelf.ID, input.Quantity); err != nil {
			return err
		}
		if err := whRepo.AddOccupied(destWh.ID, input.Quantity); err != nil {
			return err
		}

		mov := &entity.Movement{
			Quantity:      input.Quantity,
			Reason:        entity.ReasonTransfer,
			Date:          now,
			PersonID:      input.PersonID,
			ProductID:     src.ProductID,
			TransactionID: txID,
		}
		return movRepo.Create(mov)
	})
}

// Adjust aplica un delta con signo a una fila de inventario. El stock resultante
// no puede ser negativo; al llegar exactamente a cero la fila se elimina. La
// capacidad ocupada de estante y almacén se ajusta por el delta y la bitácora
// registra abs(delta) con el motivo indicado.
func (uc *UseCase) Adjust(ctx context.Context, input AdjustInput) error {
	if input.InventoryID <= 0 || input.Delta == 0 {
		return domain.ErrInvalidInput
	}

	reason := input.Reason
	if reason == "" {
		reason = entity.ReasonAdjustment
	}
	now := time.Now()
	txID := uuid.New().String()

	return uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		shelfRepo repository.ShelfRepository,
		whRepo repository.WarehouseRepository,
		movRepo repository.MovementRepository,
		_ repository.ReceivingRepository,
		_ repository.DispatchRepository,
	) error {
		item, err := invRepo.GetForUpdate(input.InventoryID)
		if err != nil {
			return asInvalidRef(err)
		}
		newStock := item.Stock + input.Delta
		if newStock < 0 {
			return domain.ErrInsufficientStock
		}

		shelf, err := shelfRepo.GetForUpdate(item.ShelfID)
		if err != nil {
			return err
		}
		warehouse, err := whRepo.GetByShelfForUpdate(shelf.ID)
		if err != nil {
			return err
		}
		// Un delta positivo ocupa espacio y debe caber en ambos niveles.
		if input.Delta > 0 {
			if shelf.OccupiedCapacity+input.Delta > shelf.Capacity {
				return domain.ErrCapacityExceeded
			}
			if warehouse.OccupiedCapacity+input.Delta > warehouse.Capacity {
				return domain.ErrCapacityExceeded
			}
		}

		if newStock == 0 {
			if err := invRepo.Delete(item.ID); err != nil {
				return err
			}
		} else {
			if err := invRepo.UpdateStock(item.ID, newStock); err != nil {
				return err
			}
		}
		if err := shelfRepo.AddOccupied(shelf.ID, input.Delta); err != nil {
			return err
		}
		if err := whRepo.AddOccupied(warehouse.ID, input.Delta); err != nil {
			return err
		}

		qty := input.Delta
		if qty < 0 {
			qty = -qty
		}
		mov := &entity.Movement{
			Quantity:      qty,
			Reason:        reason,
			Date:          now,
			PersonID:      input.PersonID,
			ProductID:     item.ProductID,
			TransactionID: txID,
		}
		return movRepo.Create(mov)
	})
}
