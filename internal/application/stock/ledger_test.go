package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dquispe/almacen-api/internal/application/stock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del ledger de capacidad: el recálculo completo es idempotente, corrige
// cualquier deriva y coincide con lo que mantiene el camino incremental.
// ──────────────────────────────────────────────────────────────────────────────

func TestRecomputeShelf_CorrigeDeriva(t *testing.T) {
	uc, s := newFixture()
	wh := addWarehouse(s, 100)
	shelf := addShelf(s, wh.ID, 50)
	addItem(s, shelf.ID, 42, nil, 12)
	addItem(s, shelf.ID, 43, nil, 8)

	// Deriva inyectada a mano.
	s.shelves[shelf.ID].OccupiedCapacity = 99

	require.NoError(t, uc.RecomputeShelf(context.Background(), shelf.ID))
	assert.EqualValues(t, 20, s.shelves[shelf.ID].OccupiedCapacity)
}

func TestRecomputeCascade_Idempotente(t *testing.T) {
	uc, s := newFixture()
	wh := addWarehouse(s, 100)
	s1 := addShelf(s, wh.ID, 50)
	s2 := addShelf(s, wh.ID, 50)
	addItem(s, s1.ID, 42, nil, 12)
	addItem(s, s2.ID, 43, nil, 5)

	require.NoError(t, uc.RecomputeCascade(context.Background(), wh.ID))
	first := s.clone()
	require.NoError(t, uc.RecomputeCascade(context.Background(), wh.ID))

	assert.Equal(t, first.shelves[s1.ID].OccupiedCapacity, s.shelves[s1.ID].OccupiedCapacity)
	assert.Equal(t, first.shelves[s2.ID].OccupiedCapacity, s.shelves[s2.ID].OccupiedCapacity)
	assert.Equal(t, first.warehouses[wh.ID].OccupiedCapacity, s.warehouses[wh.ID].OccupiedCapacity,
		"recalcular dos veces no debe cambiar nada")
	assert.EqualValues(t, 17, s.warehouses[wh.ID].OccupiedCapacity)
}

func TestRecomputeCascade_ConvergeDesdeCualquierDeriva(t *testing.T) {
	uc, s := newFixture()
	wh := addWarehouse(s, 100)
	s1 := addShelf(s, wh.ID, 50)
	s2 := addShelf(s, wh.ID, 50)
	addItem(s, s1.ID, 42, nil, 30)

	s.shelves[s1.ID].OccupiedCapacity = -5
	s.shelves[s2.ID].OccupiedCapacity = 40
	s.warehouses[wh.ID].OccupiedCapacity = 1234

	require.NoError(t, uc.RecomputeCascade(context.Background(), wh.ID))
	assert.EqualValues(t, 30, s.shelves[s1.ID].OccupiedCapacity)
	assert.EqualValues(t, 0, s.shelves[s2.ID].OccupiedCapacity)
	assert.EqualValues(t, 30, s.warehouses[wh.ID].OccupiedCapacity)
	checkCascade(t, s)
}

// Equivalencia: los valores que deja el camino incremental (asignar, trasladar,
// ajustar) deben ser exactamente los que produce el recálculo completo.
func TestRecompute_EquivaleAlCaminoIncremental(t *testing.T) {
	uc, s := newFixture()
	wh := addWarehouse(s, 200)
	s1 := addShelf(s, wh.ID, 100)
	s2 := addShelf(s, wh.ID, 100)
	order := addReceivedOrder(s, 7)
	detail := addReceivingDetail(s, order.ID, 42, 80)

	ctx := context.Background()
	require.NoError(t, uc.Assign(ctx, stock.AssignInput{
		DetailID: detail.ID, ShelfID: s1.ID, Quantity: 60,
	}))
	var itemID int64
	for id := range s.items {
		itemID = id
	}
	require.NoError(t, uc.Transfer(ctx, stock.TransferInput{
		InventoryID: itemID, ToShelfID: s2.ID, Quantity: 25,
	}))
	require.NoError(t, uc.Adjust(ctx, stock.AdjustInput{InventoryID: itemID, Delta: -10}))

	incS1 := s.shelves[s1.ID].OccupiedCapacity
	incS2 := s.shelves[s2.ID].OccupiedCapacity
	incWh := s.warehouses[wh.ID].OccupiedCapacity

	require.NoError(t, uc.RecomputeCascade(ctx, wh.ID))
	assert.Equal(t, incS1, s.shelves[s1.ID].OccupiedCapacity)
	assert.Equal(t, incS2, s.shelves[s2.ID].OccupiedCapacity)
	assert.Equal(t, incWh, s.warehouses[wh.ID].OccupiedCapacity,
		"incremental y recálculo completo deben coincidir")
	assert.EqualValues(t, 50, incWh)
}
