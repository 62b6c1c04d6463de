package stock_test

// Fakes en memoria de los puertos de persistencia. El fakeTxRunner toma una
// copia del estado antes de ejecutar el callback y la restaura si éste falla,
// reproduciendo el rollback de una transacción real. Así los tests pueden
// afirmar atomicidad: tras un fallo, el estado queda byte a byte como estaba.

import (
	"context"
	"fmt"
	"time"

	"github.com/dquispe/almacen-api/internal/domain"
	"github.com/dquispe/almacen-api/internal/domain/entity"
	"github.com/dquispe/almacen-api/internal/domain/repository"
)

type memStore struct {
	warehouses  map[int64]*entity.Warehouse
	shelves     map[int64]*entity.Shelf
	items       map[int64]*entity.InventoryItem
	movements   []*entity.Movement
	recvOrders  map[int64]*entity.ReceivingOrder
	recvDetails map[int64]*entity.ReceivingDetail
	dispOrders  map[int64]*entity.DispatchOrder
	dispDetails map[int64]*entity.DispatchDetail
	nextID      int64
}

func newMemStore() *memStore {
	return &memStore{
		warehouses:  map[int64]*entity.Warehouse{},
		shelves:     map[int64]*entity.Shelf{},
		items:       map[int64]*entity.InventoryItem{},
		recvOrders:  map[int64]*entity.ReceivingOrder{},
		recvDetails: map[int64]*entity.ReceivingDetail{},
		dispOrders:  map[int64]*entity.DispatchOrder{},
		dispDetails: map[int64]*entity.DispatchDetail{},
		nextID:      1000,
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.nextID = s.nextID
	for k, v := range s.warehouses {
		cp := *v
		c.warehouses[k] = &cp
	}
	for k, v := range s.shelves {
		cp := *v
		c.shelves[k] = &cp
	}
	for k, v := range s.items {
		cp := *v
		c.items[k] = &cp
	}
	for _, m := range s.movements {
		cp := *m
		c.movements = append(c.movements, &cp)
	}
	for k, v := range s.recvOrders {
		cp := *v
		c.recvOrders[k] = &cp
	}
	for k, v := range s.recvDetails {
		cp := *v
		c.recvDetails[k] = &cp
	}
	for k, v := range s.dispOrders {
		cp := *v
		c.dispOrders[k] = &cp
	}
	for k, v := range s.dispDetails {
		cp := *v
		c.dispDetails[k] = &cp
	}
	return c
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

type fakeTxRunner struct {
	store *memStore

	// movementErr, si se fija, hace fallar la escritura en bitácora para
	// provocar un rollback después de las escrituras de stock y capacidad.
	movementErr error

	// lockLog registra el orden en que el caso de uso toma bloqueos de fila.
	lockLog []string
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	invRepo repository.InventoryRepository,
	shelfRepo repository.ShelfRepository,
	whRepo repository.WarehouseRepository,
	movRepo repository.MovementRepository,
	recvRepo repository.ReceivingRepository,
	dispRepo repository.DispatchRepository,
) error) error {
	snapshot := r.store.clone()
	err := fn(
		&memInventoryRepo{r.store},
		&memShelfRepo{s: r.store, locks: &r.lockLog},
		&memWarehouseRepo{s: r.store, locks: &r.lockLog},
		&memMovementRepo{s: r.store, failCreate: r.movementErr},
		&memReceivingRepo{r.store},
		&memDispatchRepo{r.store},
	)
	if err != nil {
		*r.store = *snapshot
	}
	return err
}

// ── InventoryRepository ───────────────────────────────────────────────────────

type memInventoryRepo struct{ s *memStore }

func (r *memInventoryRepo) Create(item *entity.InventoryItem) error {
	item.ID = r.s.id()
	cp := *item
	r.s.items[item.ID] = &cp
	return nil
}

func (r *memInventoryRepo) GetByID(id int64) (*entity.InventoryItem, error) {
	item, ok := r.s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *memInventoryRepo) GetForUpdate(id int64) (*entity.InventoryItem, error) {
	return r.GetByID(id)
}

func (r *memInventoryRepo) FindByKey(productID, shelfID int64, supplierID *int64) (*entity.InventoryItem, error) {
	for _, item := range r.s.items {
		if item.ProductID != productID || item.ShelfID != shelfID {
			continue
		}
		// Comparación null-safe: NULL empareja con NULL.
		switch {
		case item.SupplierID == nil && supplierID == nil:
		case item.SupplierID != nil && supplierID != nil && *item.SupplierID == *supplierID:
		default:
			continue
		}
		cp := *item
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memInventoryRepo) FindByKeyForUpdate(productID, shelfID int64, supplierID *int64) (*entity.InventoryItem, error) {
	return r.FindByKey(productID, shelfID, supplierID)
}

func (r *memInventoryRepo) UpdateStock(id, stock int64) error {
	item, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.Stock = stock
	item.ModifiedAt = time.Now()
	return nil
}

func (r *memInventoryRepo) Delete(id int64) error {
	if _, ok := r.s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.items, id)
	return nil
}

func (r *memInventoryRepo) List(repository.InventoryFilter) ([]repository.InventoryRow, error) {
	return nil, nil
}

func (r *memInventoryRepo) ListByWarehouse(int64) ([]repository.InventoryRow, error) {
	return nil, nil
}

func (r *memInventoryRepo) Stats() (*repository.InventoryStats, error) { return nil, nil }

func (r *memInventoryRepo) LocationsByProduct(int64) ([]repository.ProductLocation, int64, error) {
	return nil, 0, nil
}

// ── ShelfRepository ───────────────────────────────────────────────────────────

type memShelfRepo struct {
	s     *memStore
	locks *[]string
}

func (r *memShelfRepo) Create(shelf *entity.Shelf) error {
	shelf.ID = r.s.id()
	cp := *shelf
	r.s.shelves[shelf.ID] = &cp
	return nil
}

func (r *memShelfRepo) GetByID(id int64) (*entity.Shelf, error) {
	shelf, ok := r.s.shelves[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *shelf
	return &cp, nil
}

func (r *memShelfRepo) GetForUpdate(id int64) (*entity.Shelf, error) {
	if r.locks != nil {
		*r.locks = append(*r.locks, fmt.Sprintf("estante:%d", id))
	}
	return r.GetByID(id)
}

func (r *memShelfRepo) Update(shelf *entity.Shelf) error {
	if _, ok := r.s.shelves[shelf.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *shelf
	r.s.shelves[shelf.ID] = &cp
	return nil
}

func (r *memShelfRepo) ListByWarehouse(warehouseID int64) ([]*entity.Shelf, error) {
	var out []*entity.Shelf
	for _, shelf := range r.s.shelves {
		if shelf.WarehouseID == warehouseID {
			cp := *shelf
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memShelfRepo) ListAvailableByWarehouse(warehouseID int64) ([]*entity.Shelf, error) {
	var out []*entity.Shelf
	for _, shelf := range r.s.shelves {
		if shelf.WarehouseID == warehouseID && shelf.Status != entity.ShelfStatusUnusable {
			cp := *shelf
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memShelfRepo) Delete(id int64) error {
	delete(r.s.shelves, id)
	return nil
}

func (r *memShelfRepo) CountInventory(shelfID int64) (int64, error) {
	var n int64
	for _, item := range r.s.items {
		if item.ShelfID == shelfID {
			n++
		}
	}
	return n, nil
}

func (r *memShelfRepo) AddOccupied(shelfID, delta int64) error {
	shelf, ok := r.s.shelves[shelfID]
	if !ok {
		return domain.ErrNotFound
	}
	shelf.OccupiedCapacity += delta
	return nil
}

func (r *memShelfRepo) RecomputeOccupied(shelfID int64) error {
	shelf, ok := r.s.shelves[shelfID]
	if !ok {
		return domain.ErrNotFound
	}
	var sum int64
	for _, item := range r.s.items {
		if item.ShelfID == shelfID {
			sum += item.Stock
		}
	}
	shelf.OccupiedCapacity = sum
	return nil
}

// ── WarehouseRepository ───────────────────────────────────────────────────────

type memWarehouseRepo struct {
	s     *memStore
	locks *[]string
}

func (r *memWarehouseRepo) Create(w *entity.Warehouse) error {
	w.ID = r.s.id()
	cp := *w
	r.s.warehouses[w.ID] = &cp
	return nil
}

func (r *memWarehouseRepo) GetByID(id int64) (*entity.Warehouse, error) {
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *memWarehouseRepo) GetForUpdate(id int64) (*entity.Warehouse, error) {
	if r.locks != nil {
		*r.locks = append(*r.locks, fmt.Sprintf("almacen:%d", id))
	}
	return r.GetByID(id)
}

func (r *memWarehouseRepo) GetByShelf(shelfID int64) (*entity.Warehouse, error) {
	shelf, ok := r.s.shelves[shelfID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(shelf.WarehouseID)
}

func (r *memWarehouseRepo) GetByShelfForUpdate(shelfID int64) (*entity.Warehouse, error) {
	shelf, ok := r.s.shelves[shelfID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.GetForUpdate(shelf.WarehouseID)
}

func (r *memWarehouseRepo) Update(w *entity.Warehouse) error {
	if _, ok := r.s.warehouses[w.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *w
	r.s.warehouses[w.ID] = &cp
	return nil
}

func (r *memWarehouseRepo) List() ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		cp := *w
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memWarehouseRepo) Delete(id int64) error {
	delete(r.s.warehouses, id)
	return nil
}

func (r *memWarehouseRepo) CountShelves(warehouseID int64) (int64, error) {
	var n int64
	for _, shelf := range r.s.shelves {
		if shelf.WarehouseID == warehouseID {
			n++
		}
	}
	return n, nil
}

func (r *memWarehouseRepo) AddOccupied(warehouseID, delta int64) error {
	w, ok := r.s.warehouses[warehouseID]
	if !ok {
		return domain.ErrNotFound
	}
	w.OccupiedCapacity += delta
	return nil
}

func (r *memWarehouseRepo) RecomputeOccupied(warehouseID int64) error {
	w, ok := r.s.warehouses[warehouseID]
	if !ok {
		return domain.ErrNotFound
	}
	var sum int64
	for _, shelf := range r.s.shelves {
		if shelf.WarehouseID == warehouseID {
			sum += shelf.OccupiedCapacity
		}
	}
	w.OccupiedCapacity = sum
	return nil
}

// ── MovementRepository ────────────────────────────────────────────────────────

type memMovementRepo struct {
	s          *memStore
	failCreate error
}

func (r *memMovementRepo) Create(m *entity.Movement) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	m.ID = r.s.id()
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) List(int, int) ([]repository.MovementRow, error) { return nil, nil }

// ── ReceivingRepository ───────────────────────────────────────────────────────

type memReceivingRepo struct{ s *memStore }

func (r *memReceivingRepo) CreateOrder(o *entity.ReceivingOrder) error {
	o.ID = r.s.id()
	cp := *o
	r.s.recvOrders[o.ID] = &cp
	return nil
}

func (r *memReceivingRepo) CreateDetail(d *entity.ReceivingDetail) error {
	d.ID = r.s.id()
	cp := *d
	r.s.recvDetails[d.ID] = &cp
	return nil
}

func (r *memReceivingRepo) GetOrder(id int64) (*entity.ReceivingOrder, error) {
	o, ok := r.s.recvOrders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *memReceivingRepo) GetOrderForUpdate(id int64) (*entity.ReceivingOrder, error) {
	return r.GetOrder(id)
}

func (r *memReceivingRepo) GetDetail(id int64) (*entity.ReceivingDetail, error) {
	d, ok := r.s.recvDetails[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *memReceivingRepo) UpdateOrder(o *entity.ReceivingOrder) error {
	if _, ok := r.s.recvOrders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *o
	r.s.recvOrders[o.ID] = &cp
	return nil
}

func (r *memReceivingRepo) SetOrderStatus(id int64, status string) error {
	o, ok := r.s.recvOrders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (r *memReceivingRepo) DeleteOrder(id int64) error {
	delete(r.s.recvOrders, id)
	return nil
}

func (r *memReceivingRepo) ListOrders() ([]repository.ReceivingOrderRow, error) { return nil, nil }

func (r *memReceivingRepo) GetOrderRow(int64) (*repository.ReceivingOrderRow, error) {
	return nil, nil
}

func (r *memReceivingRepo) ListDetails(int64) ([]repository.ReceivingDetailRow, error) {
	return nil, nil
}

func (r *memReceivingRepo) ListPendingAssignment() ([]repository.PendingAssignmentRow, error) {
	return nil, nil
}

// ── DispatchRepository ────────────────────────────────────────────────────────

type memDispatchRepo struct{ s *memStore }

func (r *memDispatchRepo) CreateOrder(o *entity.DispatchOrder) error {
	o.ID = r.s.id()
	cp := *o
	r.s.dispOrders[o.ID] = &cp
	return nil
}

func (r *memDispatchRepo) CreateDetail(d *entity.DispatchDetail) error {
	d.ID = r.s.id()
	cp := *d
	r.s.dispDetails[d.ID] = &cp
	return nil
}

func (r *memDispatchRepo) GetOrder(id int64) (*entity.DispatchOrder, error) {
	o, ok := r.s.dispOrders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *memDispatchRepo) GetOrderForUpdate(id int64) (*entity.DispatchOrder, error) {
	return r.GetOrder(id)
}

func (r *memDispatchRepo) UpdateNotes(id int64, notes string) error {
	o, ok := r.s.dispOrders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Notes = notes
	return nil
}

func (r *memDispatchRepo) SetStatus(id int64, status string) error {
	o, ok := r.s.dispOrders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (r *memDispatchRepo) MarkDispatched(id int64) error {
	o, ok := r.s.dispOrders[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	o.Status = entity.DispatchStatusDispatched
	o.DispatchDate = &now
	return nil
}

func (r *memDispatchRepo) SetDetailDispatchedQty(detailID, qty int64) error {
	d, ok := r.s.dispDetails[detailID]
	if !ok {
		return domain.ErrNotFound
	}
	d.DispatchedQty = qty
	return nil
}

func (r *memDispatchRepo) CountOrders() (int64, error) {
	return int64(len(r.s.dispOrders)), nil
}

func (r *memDispatchRepo) ListOrders() ([]repository.DispatchOrderRow, error) { return nil, nil }

func (r *memDispatchRepo) GetOrderRow(int64) (*repository.DispatchOrderRow, error) {
	return nil, nil
}

func (r *memDispatchRepo) ListDetails(orderID int64) ([]repository.DispatchDetailRow, error) {
	var out []repository.DispatchDetailRow
	for _, d := range r.s.dispDetails {
		if d.OrderID == orderID {
			out = append(out, repository.DispatchDetailRow{Detail: *d})
		}
	}
	return out, nil
}

func (r *memDispatchRepo) ListBySupplier(int64) ([]repository.DispatchOrderRow, error) {
	return nil, nil
}

func (r *memDispatchRepo) AvailableBySupplier(int64) ([]repository.SupplierStockRow, error) {
	return nil, nil
}

func (r *memDispatchRepo) SuppliersWithStock() ([]*entity.Supplier, error) { return nil, nil }
