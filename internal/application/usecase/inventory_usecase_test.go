package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dquispe/almacen-api/internal/application/dto"
	"github.com/dquispe/almacen-api/internal/domain/entity"
	"github.com/dquispe/almacen-api/internal/domain/repository"
)

type fakeMovementRepo struct {
	rows []repository.MovementRow
}

func (r *fakeMovementRepo) Create(*entity.Movement) error { return nil }

func (r *fakeMovementRepo) List(limit, offset int) ([]repository.MovementRow, error) {
	if offset >= len(r.rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.rows) {
		end = len(r.rows)
	}
	return r.rows[offset:end], nil
}

// La bitácora no guarda proveedor: la fila lo trae resuelto desde el
// inventario más reciente del producto y el listado debe conservarlo, igual
// que su ausencia cuando el producto ya no tiene inventario.
func TestMovements_ConservaProveedorResuelto(t *testing.T) {
	name := "Juan"
	company := "ACME"
	person := "Carla"
	mov := &fakeMovementRepo{rows: []repository.MovementRow{
		{
			Movement: entity.Movement{
				ID: 1, Quantity: 40, Reason: entity.ReasonInitialEntry,
				Date: time.Now(), ProductID: 42, TransactionID: "tx-1",
			},
			Brand:           "Truper",
			CategoryName:    "Herramientas",
			PersonName:      &person,
			SupplierName:    &name,
			SupplierCompany: &company,
		},
		{
			Movement: entity.Movement{
				ID: 2, Quantity: 5, Reason: entity.DispatchReason("GS-20260829-0001"),
				Date: time.Now(), ProductID: 43, TransactionID: "tx-2",
			},
			Brand:        "Stanley",
			CategoryName: "Herramientas",
		},
	}}
	uc := NewInventoryUseCase(nil, mov, nil)

	items, err := uc.Movements(dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Juan", *items[0].SupplierName)
	assert.Equal(t, "ACME", *items[0].SupplierCompany)
	assert.Equal(t, "Carla", *items[0].PersonName)
	assert.Nil(t, items[1].SupplierName, "sin inventario del producto no hay proveedor que mostrar")
	assert.Nil(t, items[1].SupplierCompany)
}
