package repository

import "github.com/dquispe/almacen-api/internal/domain/entity"

// MovementRow movimiento con los joins de presentación.
type MovementRow struct {
	Movement        entity.Movement
	Brand           string
	CategoryName    string
	PersonName      *string
	SupplierName    *string
	SupplierCompany *string
}

// MovementRepository define el puerto de persistencia para la bitácora de
// movimientos (append-only: no hay update ni delete).
type MovementRepository interface {
	Create(movement *entity.Movement) error
	List(limit, offset int) ([]MovementRow, error)
}
