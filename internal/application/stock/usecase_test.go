package stock_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dquispe/almacen-api/internal/application/stock"
	"github.com/dquispe/almacen-api/internal/domain"
	"github.com/dquispe/almacen-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del motor de stock: asignación, traslado, ajuste y confirmación de
// despacho sobre fakes en memoria con rollback simulado. Después de cada
// operación (exitosa o fallida) se verifica el invariante de conservación:
// almacén = Σ estantes y estante = Σ filas de inventario.
// ──────────────────────────────────────────────────────────────────────────────

func newFixture() (*stock.UseCase, *memStore) {
	uc, s, _ := newFixtureTx()
	return uc, s
}

// newFixtureTx expone además el runner para inyectar fallos o leer el orden
// de bloqueo.
func newFixtureTx() (*stock.UseCase, *memStore, *fakeTxRunner) {
	store := newMemStore()
	tx := &fakeTxRunner{store: store}
	return stock.NewUseCase(tx), store, tx
}

func addWarehouse(s *memStore, capacity int64) *entity.Warehouse {
	w := &entity.Warehouse{ID: s.id(), Name: "Central", Capacity: capacity}
	s.warehouses[w.ID] = w
	return w
}

func addShelf(s *memStore, warehouseID, capacity int64) *entity.Shelf {
	sh := &entity.Shelf{
		ID:          s.id(),
		WarehouseID: warehouseID,
		Aisle:       "A-1",
		Capacity:    capacity,
		Status:      entity.ShelfStatusAvailable,
	}
	s.shelves[sh.ID] = sh
	return sh
}

// addItem siembra una fila de inventario y propaga la ocupación a estante y
// almacén para partir de un estado consistente.
func addItem(s *memStore, shelfID, productID int64, supplierID *int64, qty int64) *entity.InventoryItem {
	item := &entity.InventoryItem{
		ID:         s.id(),
		Stock:      qty,
		ModifiedAt: time.Now(),
		ShelfID:    shelfID,
		ProductID:  productID,
		SupplierID: supplierID,
		Status:     "Disponible",
	}
	s.items[item.ID] = item
	shelf := s.shelves[shelfID]
	shelf.OccupiedCapacity += qty
	s.warehouses[shelf.WarehouseID].OccupiedCapacity += qty
	return item
}

func addReceivedOrder(s *memStore, supplierID int64) *entity.ReceivingOrder {
	o := &entity.ReceivingOrder{
		ID:         s.id(),
		OrderDate:  time.Now(),
		Status:     entity.ReceivingStatusReceived,
		SupplierID: supplierID,
	}
	s.recvOrders[o.ID] = o
	return o
}

func addReceivingDetail(s *memStore, orderID, productID, qty int64) *entity.ReceivingDetail {
	d := &entity.ReceivingDetail{ID: s.id(), OrderID: orderID, Quantity: qty, ProductID: productID}
	s.recvDetails[d.ID] = d
	return d
}

func addDispatchOrder(s *memStore, supplierID int64, status string) *entity.DispatchOrder {
	o := &entity.DispatchOrder{
		ID:          s.id(),
		GuideNumber: "GS-20260829-0001",
		RequestDate: time.Now(),
		Status:      status,
		SupplierID:  supplierID,
	}
	s.dispOrders[o.ID] = o
	return o
}

func addDispatchDetail(s *memStore, orderID, productID, inventoryID, requested int64) *entity.DispatchDetail {
	d := &entity.DispatchDetail{
		ID:           s.id(),
		OrderID:      orderID,
		RequestedQty: requested,
		ProductID:    productID,
		InventoryID:  inventoryID,
	}
	s.dispDetails[d.ID] = d
	return d
}

// checkCascade verifica el invariante de conservación en los dos niveles.
func checkCascade(t *testing.T, s *memStore) {
	t.Helper()
	for _, shelf := range s.shelves {
		var sum int64
		for _, item := range s.items {
			if item.ShelfID == shelf.ID {
				sum += item.Stock
			}
		}
		assert.Equal(t, sum, shelf.OccupiedCapacity,
			"estante %d: capacidad ocupada debe ser la suma de su inventario", shelf.ID)
	}
	for _, w := range s.warehouses {
		var sum int64
		for _, shelf := range s.shelves {
			if shelf.WarehouseID == w.ID {
				sum += shelf.OccupiedCapacity
			}
		}
		assert.Equal(t, sum, w.OccupiedCapacity,
			"almacén %d: capacidad ocupada debe ser la suma de sus estantes", w.ID)
	}
}

// ── Asignación (Ingreso Inicial) ──────────────────────────────────────────────

// Escenario: estante vacío con capacidad 100, se asignan 40 unidades desde un
// pedido Recibido.
func TestAssign_EstanteVacio(t *testing.T) {
	uc, s := newFixture()
	wh := addWarehouse(s, 500)
	shelf := addShelf(s, wh.ID, 100)
	order := addReceivedOrder(s, 7)
	detail := addReceivingDetail(s, order.ID, 42, 50)

	err := uc.Assign(context.Background(), stock.AssignInput{
		DetailID: detail.ID,
		ShelfID:  shelf.ID,
		Quantity: 40,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 40, s.shelves[shelf.ID].OccupiedCapacity)
	assert.EqualValues(t, 40, s.warehouses[wh.ID].OccupiedCapacity)
	assert.Equal(t, entity.ReceivingStatusAssigned, s.recvOrders[order.ID].Status)

	require.Len(t, s.items, 1, "debe existir exactamente una fila de inventario")
	for _, item := range s.items {
		assert.EqualValues(t, 40, item.Stock)
		assert.EqualValues(t, 42, item.ProductID)
		require.NotNil(t, item.SupplierID)
		assert.EqualValues(t, 7, *item.SupplierID)
	}

	require.Len(t, s.movements, 1)
	assert.Equal(t, entity.ReasonInitialEntry, s.movements[0].Reason)
	assert.EqualValues(t, 40, s.movements[0].Quantity)
	assert.NotEmpty(t, s.movements[0].TransactionID)

	checkCascade(t, s)
}

func TestAssign_AcumulaEnFilaExistente(t *testing.T) {
	uc, s := newFixture()
	wh := addWarehouse(s, 500)
	shelf := addShelf(s, wh.ID, 100)
	supplierID := int64(7)
	existing := addItem(s, shelf.ID, 42, &supplierID, 10)
	order := addReceivedOrder(s, supplierID)
	detail := addReceivingDetail(s, order.ID, 42, 50)

	err := uc.Assign(context.Background(), stock.AssignInput{
		DetailID: detail.ID,
		ShelfID:  shelf.ID,
		Quantity: 15,
	})
	require.NoError(t, err)

	require.Len(t, s.items, 1, "misma clave de negocio: no debe crear fila nueva")
	assert.EqualValues(t, 25, s.items[existing.ID].Stock)
	checkCascade(t, s)
}

func TestAssign_PedidoNoRecibido(t *testing.T) {
	uc, s := newFixture()
	wh := addWarehouse(s, 500)
	shelf := addShelf(s, wh.ID, 100)
	order := addReceivedOrder(s, 7)
	order.Status = entity.ReceivingStatusPending
	detail := addReceivingDetail(s, order.ID, 42, 50)

	err := uc.Assign(context.Background(), stock.AssignInput{
		DetailID: detail.ID,
		ShelfID:  shelf.ID,
		Quantity: 10,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Empty(t, s.items, "no debe escribir nada")
	checkCascade(t, s)
}

func TestAssign_SuperaCantidadRecibida(t *testing.T) {
	uc, s := newFixture()
	wh := addWarehouse(s, 500)
	shelf := addShelf(s, wh.ID, 100)
	order := addReceivedOrder(s, 7)
	detail := addReceivingDetail(s, order.ID, 42, 50)

	err := uc.Assign(context.Background(), stock.AssignInput{
		DetailID: detail.ID,
		ShelfID:  shelf.ID,
		Quantity: 51,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.ReceivingStatusReceived, s.recvOrders[order.ID].Status,
		"el pedido no debe cambiar de estado")
}

func TestAssign_EstanteInutilizable(t *testing.T) {
	uc, s := newFixture()
	wh := addWarehouse(s, 500)
	shelf := addShelf(s, wh.ID, 100)
	shelf.Status = entity.ShelfStatusUnusable
	order := addReceivedOrder(s, 7)
	detail := addReceivingDetail(s, order.ID, 42, 50)

	err := uc.Assign(context.Background(), stock.AssignInput{
		DetailID: detail.ID,
		ShelfID:  shelf.ID,
		Quantity: 10,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Frontera exacta: cabe justo el espacio libre; una unidad más rechaza con
// CapacityExceeded y el estado queda intacto.
func TestAssign_CapacidadExacta(t *testing.T) {
	uc, s := newFixture()
	wh := addWarehouse(s, 500)
	shelf := addShelf(s, wh.ID, 30)
	supplierID := int64(7)
	addItem(s, shelf.ID, 1, &supplierID, 10) // libres: 20
	order := addReceivedOrder(s, supplierID)
	detail := addReceivingDetail(s, order.ID, 42, 50)

	err := uc.Assign(context.Background(), stock.AssignInput{
		DetailID: detail.ID,
		ShelfID:  shelf.ID,
		Quantity: 20,
	})
	require.NoError(t, err, "asignar exactamente el espacio libre debe aceptarse")
	assert.EqualValues(t, 30, s.shelves[shelf.ID].OccupiedCapacity)
	checkCascade(t, s)

	// Reabrimos el pedido para intentar una unidad de más.
	s.recvOrders[order.ID].Status = entity.ReceivingStatusReceived
	before := s.clone()
	err = uc.Assign(context.Background(), stock.AssignInput{
		DetailID: detail.ID,
		ShelfID:  shelf.ID,
		Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Equal(t, before.shelves[shelf.ID].OccupiedCapacity, s.shelves[shelf.ID].OccupiedCapacity)
	assert.Equal(t, len(before.movements), len(s.movements), "el fallo no debe dejar movimientos")
	checkCascade(t, s)
}

func TestAssign_CapacidadAlmacenInsuficiente(t *testing.T) {
	uc, s := newFixture()
	// El estante tiene espacio pero el almacén no: ambos niveles se verifican.
	wh := addWarehouse(s, 50)
	shelfA := addShelf(s, wh.ID, 100)
	shelfB := addShelf(s, wh.ID, 100)
	supplierID := int64(7)
	addItem(s, shelfA.ID, 1, &supplierID, 45)
	order := addReceivedOrder(s, supplierID)
	detail := addReceivingDetail(s, order.ID, 42, 50)

	err := uc.Assign(context.Background(), stock.AssignInput{
		DetailID: detail.ID,
		ShelfID:  shelfB.ID,
		Quantity: 10,
	})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	checkCascade(t, s)
}

// Un fallo en la bitácora llega después de escribir inventario, estante y
// almacén; el rollback debe dejar el estado byte a byte como antes.
func TestAssign_FalloEnBitacoraRevierteTodo(t *testing.T) {
	uc, s, tx := newFixtureTx()
	wh := addWarehouse(s, 500)
	shelf := addShelf(s, wh.ID, 100)
	order := addReceivedOrder(s, 7)
	detail := addReceivingDetail(s, order.ID, 42, 50)

	before := s.clone()
	tx.movementErr = errors.New("bitácora caída")

	err := uc.Assign(context.Background(), stock.AssignInput{
		DetailID: detail.ID,
		ShelfID:  shelf.ID,
		Quantity: 40,
	})
	require.ErrorContains(t, err, "bitácora caída")
	assert.Equal(t, before, s, "tras el rollback el estado debe ser idéntico al previo")
	checkCascade(t, s)
}

func TestTransfer_FalloEnBitacoraRevierteTodo(t *testing.T) {
	uc, s, tx := newFixtureTx()
	wh := addWarehouse(s, 100)
	s1 := addShelf(s, wh.ID, 10)
	s2 := addShelf(s, wh.ID, 10)
	item := addItem(s, s1.ID, 42, nil, 8)

	before := s.clone()
	tx.movementErr = errors.New("bitácora caída")

	err := uc.Transfer(context.Background(), stock.TransferInput{
		InventoryID: item.ID,
		ToShelfID:   s2.ID,
		Quantity:    3,
	})
	require.ErrorContains(t, err, "bitácora caída")
	assert.Equal(t, before, s)
	checkCascade(t, s)
}

// ── Traslado ──────────────────────────────────────────────────────────────────

// Escenario: S1 (cap 10, ocupado 8) y S2 (cap 10, vacío); trasladar 2 deja
// S1=6 y S2=2; intentar luego 9 desde S1 rechaza con stock insuficiente sin
// tocar el estado.
func TestTransfer_EntreEstantes(t *testing.T) {
	uc, s := newFixture()
	wh := addWarehouse(s, 100)
	s1 := addShelf(s, wh.ID, 10)
	s2 := addShelf(s, wh.ID, 10)
	supplierID := int64(7)
	item := addItem(s, s1.ID, 42, &supplierID, 8)

	err := uc.Transfer(context.Background(), stock.TransferInput{
		InventoryID: item.ID,
		ToShelfID:   s2.ID,
		Quantity:    2,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 6, s.shelves[s1.ID].OccupiedCapacity)
	assert.EqualValues(t, 2, s.shelves[s2.ID].OccupiedCapacity)
	assert.EqualValues(t, 6, s.items[item.ID].Stock)
	require.Len(t, s.movements, 1)
	assert.Equal(t, entity.ReasonTransfer, s.movements[0].Reason)
	checkCascade(t, s)

	before := s.clone()
	err = uc.Transfer(context.Background(), stock.TransferInput{
		InventoryID: item.ID,
		ToShelfID:   s2.ID,
		Quantity:    9,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, before.shelves[s1.ID].OccupiedCapacity, s.shelves[s1.ID].OccupiedCapacity)
	assert.Equal(t, before.shelves[s2.ID].OccupiedCapacity, s.shelves[s2.ID].OccupiedCapacity)
	assert.Equal(t, before.items[item.ID].Stock, s.items[item.ID].Stock)
	checkCascade(t, s)
}

func TestTransfer_MismoEstanteEsNoOp(t *testing.T) {
	uc, s := newFixture()
	wh := addWarehouse(s, 100)
	shelf := addShelf(s, wh.ID, 10)
	supplierID := int64(7)
	item := addItem(s, shelf.ID, 42, &supplierID, 8)

	err := uc.Transfer(context.Background(), stock.TransferInput{
		InventoryID: item.ID,
		ToShelfID:   shelf.ID,
		Quantity:    3,
	})
	require.NoError(t, err, "trasladar al mismo estante debe aceptarse")
	assert.EqualValues(t, 8, s.items[item.ID].Stock, "el stock no debe cambiar")
	assert.EqualValues(t, 8, s.shelves[shelf.ID].OccupiedCapacity, "sin delta fantasma")
	assert.Empty(t, s.movements, "un no-op no registra movimiento")
	checkCascade(t, s)
}

func TestTransfer_VaciaFilaOrigen(t *testing.T) {
	uc, s := newFixture()
	wh := addWarehouse(s, 100)
	s1 := addShelf(s, wh.ID, 10)
	s2 := addShelf(s, wh.ID, 10)
	item := addItem(s, s1.ID, 42, nil, 5)

	err := uc.Transfer(context.Background(), stock.TransferInput{
		InventoryID: item.ID,
		ToShelfID:   s2.ID,
		Quantity:    5,
	})
	require.NoError(t, err)
	_, exists := s.items[item.ID]
	assert.False(t, exists, "la fila origen debe eliminarse al llegar a cero")
	require.Len(t, s.items, 1)
	for _, dest := range s.items {
		assert.EqualValues(t, 5, dest.Stock)
		assert.Nil(t, dest.SupplierID, "proveedor NULL debe conservarse en la clave destino")
	}
	checkCascade(t, s)
}

// Ida y vuelta: asignar y trasladar dos veces deja el sistema como al inicio
// del traslado (misma distribución, dos movimientos más en la bitácora).
func TestTransfer_IdaYVuelta(t *testing.T) {
	uc, s := newFixture()
	wh := addWarehouse(s, 100)
	s1 := addShelf(s, wh.ID, 20)
	s2 := addShelf(s, wh.ID, 20)
	supplierID := int64(7)
	item := addItem(s, s1.ID, 42, &supplierID, 10)

	require.NoError(t, uc.Transfer(context.Background(), stock.TransferInput{
		InventoryID: item.ID, ToShelfID: s2.ID, Quantity: 4,
	}))
	// Localiza la fila destino para el viaje de regreso.
	var destID int64
	for id, it := range s.items {
		if it.ShelfID == s2.ID {
			destID = id
		}
	}
	require.NotZero(t, destID)
	require.NoError(t, uc.Transfer(context.Background(), stock.TransferInput{
		InventoryID: destID, ToShelfID: s1.ID, Quantity: 4,
	}))

	assert.EqualValues(t, 10, s.shelves[s1.ID].OccupiedCapacity)
	assert.EqualValues(t, 0, s.shelves[s2.ID].OccupiedCapacity)
	assert.EqualValues(t, 10, s.items[item.ID].Stock, "el stock vuelve a la fila original")
	assert.Len(t, s.movements, 2)
	checkCascade(t, s)
}

// Los bloqueos de fila se toman en orden ascendente de ID sin importar la
// dirección del traslado, para que dos traslados cruzados no se interbloqueen.
func TestTransfer_BloqueaEnOrdenDeID(t *testing.T) {
	uc, s, tx := newFixtureTx()
	wh1 := addWarehouse(s, 100)
	sh1 := addShelf(s, wh1.ID, 20)
	wh2 := addWarehouse(s, 100)
	sh2 := addShelf(s, wh2.ID, 20)
	itemA := addItem(s, sh1.ID, 42, nil, 10)
	itemB := addItem(s, sh2.ID, 43, nil, 10)

	wantLocks := []string{
		fmt.Sprintf("estante:%d", sh1.ID),
		fmt.Sprintf("estante:%d", sh2.ID),
		fmt.Sprintf("almacen:%d", wh1.ID),
		fmt.Sprintf("almacen:%d", wh2.ID),
	}

	require.NoError(t, uc.Transfer(context.Background(), stock.TransferInput{
		InventoryID: itemA.ID, ToShelfID: sh2.ID, Quantity: 5,
	}))
	assert.Equal(t, wantLocks, tx.lockLog)

	tx.lockLog = nil
	require.NoError(t, uc.Transfer(context.Background(), stock.TransferInput{
		InventoryID: itemB.ID, ToShelfID: sh1.ID, Quantity: 5,
	}))
	assert.Equal(t, wantLocks, tx.lockLog, "la dirección opuesta bloquea en el mismo orden")
	checkCascade(t, s)
}

// ── Ajuste ────────────────────────────────────────────────────────────────────

// Escenario: tras asignar 40, ajustar por -40 elimina la fila y libera el
// estante; la bitácora registra 40 (valor absoluto).
func TestAdjust_NegativoEliminaFila(t *testing.T) {
	uc, s := newFixture()
	wh := addWarehouse(s, 500)
	shelf := addShelf(s, wh.ID, 100)
	supplierID := int64(7)
	item := addItem(s, shelf.ID, 42, &supplierID, 40)

	err := uc.Adjust(context.Background(), stock.AdjustInput{
		InventoryID: item.ID,
		Delta:       -40,
	})
	require.NoError(t, err)

	_, exists := s.items[item.ID]
	assert.False(t, exists, "stock en cero: la fila debe eliminarse")
	assert.EqualValues(t, 0, s.shelves[shelf.ID].OccupiedCapacity)
	assert.EqualValues(t, 0, s.warehouses[wh.ID].OccupiedCapacity)
	require.Len(t, s.movements, 1)
	assert.Equal(t, entity.ReasonAdjustment, s.movements[0].Reason)
	assert.EqualValues(t, 40, s.movements[0].Quantity, "la bitácora registra abs(delta)")
	checkCascade(t, s)
}

func TestAdjust_NoPermiteStockNegativo(t *testing.T) {
	uc, s := newFixture()
	wh := addWarehouse(s, 500)
	shelf := addShelf(s, wh.ID, 100)
	item := addItem(s, shelf.ID, 42, nil, 5)

	before := s.clone()
	err := uc.Adjust(context.Background(), stock.AdjustInput{
		InventoryID: item.ID,
		Delta:       -6,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, before.items[item.ID].Stock, s.items[item.ID].Stock)
	assert.Equal(t, before.shelves[shelf.ID].OccupiedCapacity, s.shelves[shelf.ID].OccupiedCapacity)
	checkCascade(t, s)
}

func TestAdjust_PositivoRespetaCapacidad(t *testing.T) {
	uc, s := newFixture()
	wh := addWarehouse(s, 500)
	shelf := addShelf(s, wh.ID, 10)
	item := addItem(s, shelf.ID, 42, nil, 8)

	err := uc.Adjust(context.Background(), stock.AdjustInput{
		InventoryID: item.ID,
		Delta:       3,
	})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.EqualValues(t, 8, s.items[item.ID].Stock)
	checkCascade(t, s)
}

func TestAdjust_MotivoPersonalizado(t *testing.T) {
	uc, s := newFixture()
	wh := addWarehouse(s, 500)
	shelf := addShelf(s, wh.ID, 100)
	item := addItem(s, shelf.ID, 42, nil, 20)

	err := uc.Adjust(context.Background(), stock.AdjustInput{
		InventoryID: item.ID,
		Delta:       -3,
		Reason:      "Merma",
	})
	require.NoError(t, err)
	require.Len(t, s.movements, 1)
	assert.Equal(t, "Merma", s.movements[0].Reason)
	assert.EqualValues(t, 17, s.items[item.ID].Stock)
	checkCascade(t, s)
}

func TestAdjust_DeltaCeroRechazado(t *testing.T) {
	uc, s := newFixture()
	wh := addWarehouse(s, 500)
	shelf := addShelf(s, wh.ID, 100)
	item := addItem(s, shelf.ID, 42, nil, 20)

	err := uc.Adjust(context.Background(), stock.AdjustInput{InventoryID: item.ID, Delta: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Confirmación de despacho ──────────────────────────────────────────────────

// Escenario: orden con dos líneas (5 y 3 unidades); confirmar con cantidades
// 5 y 0 descuenta solo la primera y la orden llega igualmente a Despachado.
func TestConfirmDispatch_ParcialLlegaATerminal(t *testing.T) {
	uc, s := newFixture()
	wh := addWarehouse(s, 100)
	shelf := addShelf(s, wh.ID, 50)
	supplierID := int64(7)
	itemA := addItem(s, shelf.ID, 42, &supplierID, 10)
	itemB := addItem(s, shelf.ID, 43, &supplierID, 10)
	order := addDispatchOrder(s, supplierID, entity.DispatchStatusPreparing)
	lineA := addDispatchDetail(s, order.ID, 42, itemA.ID, 5)
	lineB := addDispatchDetail(s, order.ID, 43, itemB.ID, 3)

	err := uc.ConfirmDispatch(context.Background(), stock.ConfirmDispatchInput{
		OrderID: order.ID,
		Lines: []stock.DispatchLine{
			{DetailID: lineA.ID, DispatchedQty: 5},
			{DetailID: lineB.ID, DispatchedQty: 0},
		},
	})
	require.NoError(t, err)

	assert.EqualValues(t, 5, s.items[itemA.ID].Stock)
	assert.EqualValues(t, 10, s.items[itemB.ID].Stock, "línea en cero no toca inventario")
	assert.EqualValues(t, 15, s.shelves[shelf.ID].OccupiedCapacity)
	assert.EqualValues(t, 5, s.dispDetails[lineA.ID].DispatchedQty)
	assert.EqualValues(t, 0, s.dispDetails[lineB.ID].DispatchedQty)

	got := s.dispOrders[order.ID]
	assert.Equal(t, entity.DispatchStatusDispatched, got.Status,
		"el cumplimiento parcial no bloquea el estado terminal")
	require.NotNil(t, got.DispatchDate)

	require.Len(t, s.movements, 1)
	assert.Equal(t, "Despacho GS-20260829-0001", s.movements[0].Reason)
	checkCascade(t, s)
}

func TestConfirmDispatch_YaDespachado(t *testing.T) {
	uc, s := newFixture()
	order := addDispatchOrder(s, 7, entity.DispatchStatusDispatched)

	err := uc.ConfirmDispatch(context.Background(), stock.ConfirmDispatchInput{OrderID: order.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestConfirmDispatch_CanceladoRechaza(t *testing.T) {
	uc, s := newFixture()
	order := addDispatchOrder(s, 7, entity.DispatchStatusCancelled)

	err := uc.ConfirmDispatch(context.Background(), stock.ConfirmDispatchInput{OrderID: order.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Si una línea no tiene stock suficiente, NINGUNA línea se aplica: la
// validación corre completa antes de la primera escritura.
func TestConfirmDispatch_FalloValidaTodoAntesDeEscribir(t *testing.T) {
	uc, s := newFixture()
	wh := addWarehouse(s, 100)
	shelf := addShelf(s, wh.ID, 50)
	supplierID := int64(7)
	itemA := addItem(s, shelf.ID, 42, &supplierID, 10)
	itemB := addItem(s, shelf.ID, 43, &supplierID, 2)
	order := addDispatchOrder(s, supplierID, entity.DispatchStatusPreparing)
	lineA := addDispatchDetail(s, order.ID, 42, itemA.ID, 5)
	lineB := addDispatchDetail(s, order.ID, 43, itemB.ID, 3)

	before := s.clone()
	err := uc.ConfirmDispatch(context.Background(), stock.ConfirmDispatchInput{
		OrderID: order.ID,
		Lines: []stock.DispatchLine{
			{DetailID: lineA.ID, DispatchedQty: 5},
			{DetailID: lineB.ID, DispatchedQty: 3}, // solo hay 2
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, before.items[itemA.ID].Stock, s.items[itemA.ID].Stock,
		"la línea válida tampoco debe aplicarse")
	assert.Equal(t, before.shelves[shelf.ID].OccupiedCapacity, s.shelves[shelf.ID].OccupiedCapacity)
	assert.Equal(t, entity.DispatchStatusPreparing, s.dispOrders[order.ID].Status)
	assert.EqualValues(t, 0, s.dispDetails[lineA.ID].DispatchedQty)
	assert.Empty(t, s.movements)
	checkCascade(t, s)
}

// Dos líneas contra la misma fila de inventario: la demanda se valida de forma
// acumulada.
func TestConfirmDispatch_DemandaAcumuladaMismaFila(t *testing.T) {
	uc, s := newFixture()
	wh := addWarehouse(s, 100)
	shelf := addShelf(s, wh.ID, 50)
	supplierID := int64(7)
	item := addItem(s, shelf.ID, 42, &supplierID, 8)
	order := addDispatchOrder(s, supplierID, entity.DispatchStatusPreparing)
	lineA := addDispatchDetail(s, order.ID, 42, item.ID, 5)
	lineB := addDispatchDetail(s, order.ID, 42, item.ID, 5)

	err := uc.ConfirmDispatch(context.Background(), stock.ConfirmDispatchInput{
		OrderID: order.ID,
		Lines: []stock.DispatchLine{
			{DetailID: lineA.ID, DispatchedQty: 5},
			{DetailID: lineB.ID, DispatchedQty: 5}, // 5+5 > 8
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualValues(t, 8, s.items[item.ID].Stock)
	checkCascade(t, s)

	// Con 5+3 sí alcanza y la fila muere exactamente en cero.
	err = uc.ConfirmDispatch(context.Background(), stock.ConfirmDispatchInput{
		OrderID: order.ID,
		Lines: []stock.DispatchLine{
			{DetailID: lineA.ID, DispatchedQty: 5},
			{DetailID: lineB.ID, DispatchedQty: 3},
		},
	})
	require.NoError(t, err)
	_, exists := s.items[item.ID]
	assert.False(t, exists, "la fila debe eliminarse al agotar el stock")
	assert.EqualValues(t, 0, s.shelves[shelf.ID].OccupiedCapacity)
	assert.Len(t, s.movements, 2)
	checkCascade(t, s)
}
