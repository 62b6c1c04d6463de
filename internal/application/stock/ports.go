package stock

import (
	"context"

	"github.com/dquispe/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad para el motor de stock: o se aplica la
// mutación completa (filas de inventario, ambos niveles de capacidad, bitácora,
// estado del pedido) o no se aplica nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		shelfRepo repository.ShelfRepository,
		whRepo repository.WarehouseRepository,
		movRepo repository.MovementRepository,
		recvRepo repository.ReceivingRepository,
		dispRepo repository.DispatchRepository,
	) error) error
}
