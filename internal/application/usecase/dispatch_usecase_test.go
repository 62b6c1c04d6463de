package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dquispe/almacen-api/internal/application/dto"
	"github.com/dquispe/almacen-api/internal/domain"
	"github.com/dquispe/almacen-api/internal/domain/entity"
	"github.com/dquispe/almacen-api/internal/domain/repository"
)

// ── Fakes de despachos ────────────────────────────────────────────────────────

type fakeDispatchRepo struct {
	orders  map[int64]*entity.DispatchOrder
	details map[int64]*entity.DispatchDetail
	nextID  int64

	// failDetailOn hace fallar la N-ésima llamada a CreateDetail (0 = nunca).
	failDetailOn int
	detailCalls  int
}

func newFakeDispatchRepo() *fakeDispatchRepo {
	return &fakeDispatchRepo{
		orders:  map[int64]*entity.DispatchOrder{},
		details: map[int64]*entity.DispatchDetail{},
		nextID:  200,
	}
}

func (r *fakeDispatchRepo) id() int64 {
	r.nextID++
	return r.nextID
}

func (r *fakeDispatchRepo) snapshot() (map[int64]*entity.DispatchOrder, map[int64]*entity.DispatchDetail, int64) {
	orders := map[int64]*entity.DispatchOrder{}
	for k, v := range r.orders {
		cp := *v
		orders[k] = &cp
	}
	details := map[int64]*entity.DispatchDetail{}
	for k, v := range r.details {
		cp := *v
		details[k] = &cp
	}
	return orders, details, r.nextID
}

func (r *fakeDispatchRepo) CreateOrder(o *entity.DispatchOrder) error {
	o.ID = r.id()
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeDispatchRepo) CreateDetail(d *entity.DispatchDetail) error {
	r.detailCalls++
	if r.failDetailOn > 0 && r.detailCalls == r.failDetailOn {
		return errConnLost
	}
	d.ID = r.id()
	cp := *d
	r.details[d.ID] = &cp
	return nil
}

func (r *fakeDispatchRepo) GetOrder(id int64) (*entity.DispatchOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeDispatchRepo) GetOrderForUpdate(id int64) (*entity.DispatchOrder, error) {
	return r.GetOrder(id)
}

func (r *fakeDispatchRepo) UpdateNotes(id int64, notes string) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Notes = notes
	return nil
}

func (r *fakeDispatchRepo) SetStatus(id int64, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (r *fakeDispatchRepo) MarkDispatched(id int64) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	o.Status = entity.DispatchStatusDispatched
	o.DispatchDate = &now
	return nil
}

func (r *fakeDispatchRepo) SetDetailDispatchedQty(detailID, qty int64) error {
	d, ok := r.details[detailID]
	if !ok {
		return domain.ErrNotFound
	}
	d.DispatchedQty = qty
	return nil
}

func (r *fakeDispatchRepo) CountOrders() (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *fakeDispatchRepo) row(o *entity.DispatchOrder) repository.DispatchOrderRow {
	row := repository.DispatchOrderRow{Order: *o, SupplierName: "Juan", SupplierCompany: "ACME"}
	for _, d := range r.details {
		if d.OrderID == o.ID {
			row.TotalItems++
			row.TotalRequested += d.RequestedQty
			row.TotalDispatched += d.DispatchedQty
		}
	}
	return row
}

func (r *fakeDispatchRepo) ListOrders() ([]repository.DispatchOrderRow, error) {
	var out []repository.DispatchOrderRow
	for _, o := range r.orders {
		out = append(out, r.row(o))
	}
	return out, nil
}

func (r *fakeDispatchRepo) GetOrderRow(id int64) (*repository.DispatchOrderRow, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	row := r.row(o)
	return &row, nil
}

func (r *fakeDispatchRepo) ListDetails(orderID int64) ([]repository.DispatchDetailRow, error) {
	var out []repository.DispatchDetailRow
	for _, d := range r.details {
		if d.OrderID == orderID {
			out = append(out, repository.DispatchDetailRow{Detail: *d})
		}
	}
	return out, nil
}

func (r *fakeDispatchRepo) ListBySupplier(supplierID int64) ([]repository.DispatchOrderRow, error) {
	var out []repository.DispatchOrderRow
	for _, o := range r.orders {
		if o.SupplierID == supplierID {
			out = append(out, r.row(o))
		}
	}
	return out, nil
}

func (r *fakeDispatchRepo) AvailableBySupplier(int64) ([]repository.SupplierStockRow, error) {
	return nil, nil
}

func (r *fakeDispatchRepo) SuppliersWithStock() ([]*entity.Supplier, error) { return nil, nil }

// ── Fake de inventario (solo lecturas por ID) ─────────────────────────────────

type fakeInventoryRepo struct {
	items map[int64]*entity.InventoryItem
}

func (r *fakeInventoryRepo) Create(*entity.InventoryItem) error { return nil }

func (r *fakeInventoryRepo) GetByID(id int64) (*entity.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *fakeInventoryRepo) GetForUpdate(id int64) (*entity.InventoryItem, error) {
	return r.GetByID(id)
}

func (r *fakeInventoryRepo) FindByKey(int64, int64, *int64) (*entity.InventoryItem, error) {
	return nil, domain.ErrNotFound
}

func (r *fakeInventoryRepo) FindByKeyForUpdate(int64, int64, *int64) (*entity.InventoryItem, error) {
	return nil, domain.ErrNotFound
}

func (r *fakeInventoryRepo) UpdateStock(int64, int64) error { return nil }
func (r *fakeInventoryRepo) Delete(int64) error             { return nil }

func (r *fakeInventoryRepo) List(repository.InventoryFilter) ([]repository.InventoryRow, error) {
	return nil, nil
}

func (r *fakeInventoryRepo) ListByWarehouse(int64) ([]repository.InventoryRow, error) {
	return nil, nil
}

func (r *fakeInventoryRepo) Stats() (*repository.InventoryStats, error) {
	return &repository.InventoryStats{}, nil
}

func (r *fakeInventoryRepo) LocationsByProduct(int64) ([]repository.ProductLocation, int64, error) {
	return nil, 0, nil
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func newDispatchUC() (*DispatchUseCase, *fakeDispatchRepo) {
	disp := newFakeDispatchRepo()
	suppliers := &fakeSupplierRepo{suppliers: map[int64]*entity.Supplier{
		7: {ID: 7, Name: "Juan", Company: "ACME"},
	}}
	inv := &fakeInventoryRepo{items: map[int64]*entity.InventoryItem{
		900: {ID: 900, Stock: 30, ProductID: 42, ShelfID: 1},
		901: {ID: 901, Stock: 15, ProductID: 43, ShelfID: 1},
	}}
	uc := NewDispatchUseCase(disp, inv, suppliers, nil, &orderTxRunner{disp: disp})
	uc.now = func() time.Time { return time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC) }
	return uc, disp
}

func dispatchInput() dto.CreateDispatchRequest {
	return dto.CreateDispatchRequest{
		SupplierID: 7,
		Lines: []dto.DispatchLineRequest{
			{ProductID: 42, InventoryID: 900, RequestedQty: 5},
			{ProductID: 43, InventoryID: 901, RequestedQty: 3},
		},
	}
}

func TestDispatchCreate_GuiaCorrelativa(t *testing.T) {
	uc, disp := newDispatchUC()
	personID := int64(3)

	out, err := uc.Create(context.Background(), dispatchInput(), &personID)
	require.NoError(t, err)

	assert.Equal(t, "GS-20260829-0001", out.GuideNumber)
	assert.Equal(t, entity.DispatchStatusPending, out.Status)
	assert.EqualValues(t, 2, out.TotalItems)
	assert.EqualValues(t, 8, out.TotalRequested)
	assert.Len(t, disp.orders, 1)
	assert.Len(t, disp.details, 2)
}

// Un fallo al insertar la segunda línea revierte también la cabecera; el
// correlativo de guía no debe quedar consumido por una orden fantasma.
func TestDispatchCreate_FalloEnLineaNoDejaOrden(t *testing.T) {
	uc, disp := newDispatchUC()
	disp.failDetailOn = 2

	_, err := uc.Create(context.Background(), dispatchInput(), nil)
	require.ErrorContains(t, err, "conexión perdida")
	assert.Empty(t, disp.orders, "la cabecera no debe sobrevivir al fallo")
	assert.Empty(t, disp.details)

	disp.failDetailOn = 0
	out, err := uc.Create(context.Background(), dispatchInput(), nil)
	require.NoError(t, err)
	assert.Equal(t, "GS-20260829-0001", out.GuideNumber, "el correlativo sigue en 1")
}

func TestDispatchCreate_InventarioInexistente(t *testing.T) {
	uc, disp := newDispatchUC()
	in := dispatchInput()
	in.Lines[0].InventoryID = 999

	_, err := uc.Create(context.Background(), in, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, disp.orders)
}
