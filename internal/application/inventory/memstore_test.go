package inventory

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/erp/stockledger/internal/domain/inventory"
	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/erp/stockledger/internal/domain/warehouse"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// memState is a snapshot of every ledger table
type memState struct {
	stock        map[inventory.StockKey]inventory.StockRecord
	movements    []inventory.MovementEntry
	batches      map[uuid.UUID]inventory.Batch
	reservations map[uuid.UUID]inventory.Reservation
	transfers    map[uuid.UUID]inventory.Transfer
	cycleCounts  map[uuid.UUID]inventory.CycleCount
}

func newMemState() *memState {
	return &memState{
		stock:        make(map[inventory.StockKey]inventory.StockRecord),
		batches:      make(map[uuid.UUID]inventory.Batch),
		reservations: make(map[uuid.UUID]inventory.Reservation),
		transfers:    make(map[uuid.UUID]inventory.Transfer),
		cycleCounts:  make(map[uuid.UUID]inventory.CycleCount),
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.stock {
		c.stock[k] = v
	}
	c.movements = append(c.movements, s.movements...)
	for k, v := range s.batches {
		c.batches[k] = v
	}
	for k, v := range s.reservations {
		c.reservations[k] = v
	}
	for k, v := range s.transfers {
		c.transfers[k] = v
	}
	for k, v := range s.cycleCounts {
		c.cycleCounts[k] = v
	}
	return c
}

// memStore is an in-memory TransactionScope. Execute runs fn against a copy
// of the committed state and swaps it in only when fn succeeds.
type memStore struct {
	mu         sync.Mutex
	state      *memState
	warehouses map[uuid.UUID]warehouse.Warehouse

	// failMovementCreate makes MovementRepo().Create fail inside transactions
	failMovementCreate error
	// failReservationUpdate makes updates of the listed reservations fail
	failReservationUpdate map[uuid.UUID]error
	// afterFindDue runs once, after FindDue has picked its rows
	afterFindDue func()
	// conflicts makes the next n stock updates report a version conflict
	conflicts int
	executes  int
}

func newMemStore() *memStore {
	return &memStore{
		state:      newMemState(),
		warehouses: make(map[uuid.UUID]warehouse.Warehouse),
	}
}

func (m *memStore) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.executes++
	staging := m.state.clone()
	if err := fn(memTx{store: m, state: staging}); err != nil {
		return err
	}
	m.state = staging
	return nil
}

func (m *memStore) repositories() Repositories {
	base := memBase{store: m}
	return Repositories{
		Warehouses:   memWarehouseRepo{store: m},
		Stock:        memStockRepo{base},
		Movements:    memMovementRepo{base},
		Batches:      memBatchRepo{base},
		Reservations: memReservationRepo{base},
		Transfers:    memTransferRepo{base},
		CycleCounts:  memCycleCountRepo{base},
	}
}

func (m *memStore) addWarehouse(w *warehouse.Warehouse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warehouses[w.ID] = *w
}

func (m *memStore) snapshot() *memState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

type memTx struct {
	store *memStore
	state *memState
}

func (t memTx) base() memBase { return memBase{store: t.store, tx: t.state} }

func (t memTx) StockRepo() inventory.StockRecordRepository { return memStockRepo{t.base()} }
func (t memTx) MovementRepo() inventory.MovementRepository  { return memMovementRepo{t.base()} }
func (t memTx) BatchRepo() inventory.BatchRepository        { return memBatchRepo{t.base()} }
func (t memTx) ReservationRepo() inventory.ReservationRepository {
	return memReservationRepo{t.base()}
}
func (t memTx) TransferRepo() inventory.TransferRepository { return memTransferRepo{t.base()} }
func (t memTx) CycleCountRepo() inventory.CycleCountRepository {
	return memCycleCountRepo{t.base()}
}

// memBase reads the transaction's staging state, or the committed state
// under the store lock when used outside a transaction
type memBase struct {
	store *memStore
	tx    *memState
}

func (b memBase) with(fn func(st *memState)) {
	if b.tx != nil {
		fn(b.tx)
		return
	}
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	fn(b.store.state)
}

func notFound(kind string) error {
	return shared.NewDomainError("NOT_FOUND", kind+" not found")
}

func page[T any](items []T, f shared.Filter) ([]T, int64) {
	total := int64(len(items))
	f = f.Normalize()
	start := f.Offset()
	if start >= len(items) {
		return []T{}, total
	}
	end := start + f.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total
}

type memStockRepo struct{ memBase }

func (r memStockRepo) FindByKey(_ context.Context, key inventory.StockKey) (*inventory.StockRecord, error) {
	var out *inventory.StockRecord
	r.with(func(st *memState) {
		if rec, ok := st.stock[key]; ok {
			rec.ClearEvents()
			out = &rec
		}
	})
	if out == nil {
		return nil, notFound("Stock record")
	}
	return out, nil
}

func (r memStockRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.StockRecord, error) {
	var out *inventory.StockRecord
	r.with(func(st *memState) {
		for _, rec := range st.stock {
			if rec.ID == id {
				rec.ClearEvents()
				out = &rec
			}
		}
	})
	if out == nil {
		return nil, notFound("Stock record")
	}
	return out, nil
}

func (r memStockRepo) GetOrCreate(ctx context.Context, key inventory.StockKey) (*inventory.StockRecord, error) {
	if rec, err := r.FindByKey(ctx, key); err == nil {
		return rec, nil
	}
	rec, err := inventory.NewStockRecord(key.ProductID, key.WarehouseID)
	if err != nil {
		return nil, err
	}
	r.with(func(st *memState) { st.stock[key] = *rec })
	return rec, nil
}

func (r memStockRepo) Update(_ context.Context, rec *inventory.StockRecord, expectedVersion int) error {
	var err error
	r.with(func(st *memState) {
		if r.tx != nil && r.store.conflicts > 0 {
			r.store.conflicts--
			err = shared.ErrConcurrencyConflict
			return
		}
		current, ok := st.stock[rec.Key()]
		if !ok || current.Version != expectedVersion {
			err = shared.ErrConcurrencyConflict
			return
		}
		stored := *rec
		stored.ClearEvents()
		st.stock[rec.Key()] = stored
	})
	return err
}

func (r memStockRepo) List(_ context.Context, filter inventory.StockRecordFilter) ([]inventory.StockRecord, int64, error) {
	var out []inventory.StockRecord
	r.with(func(st *memState) {
		for _, rec := range st.stock {
			if filter.ProductID != nil && rec.ProductID != *filter.ProductID {
				continue
			}
			if filter.WarehouseID != nil && rec.WarehouseID != *filter.WarehouseID {
				continue
			}
			if filter.OnlyInStock && !rec.Quantity.IsPositive() {
				continue
			}
			out = append(out, rec)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	items, total := page(out, filter.Filter)
	return items, total, nil
}

func (r memStockRepo) ListForScan(_ context.Context, warehouseID *uuid.UUID) ([]inventory.StockRecord, error) {
	var out []inventory.StockRecord
	r.with(func(st *memState) {
		for _, rec := range st.stock {
			if warehouseID == nil || rec.WarehouseID == *warehouseID {
				out = append(out, rec)
			}
		}
	})
	return out, nil
}

type memMovementRepo struct{ memBase }

func (r memMovementRepo) Create(_ context.Context, entry *inventory.MovementEntry) error {
	if r.tx != nil && r.store.failMovementCreate != nil {
		return r.store.failMovementCreate
	}
	r.with(func(st *memState) { st.movements = append(st.movements, *entry) })
	return nil
}

func (r memMovementRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.MovementEntry, error) {
	var out *inventory.MovementEntry
	r.with(func(st *memState) {
		for _, e := range st.movements {
			if e.ID == id {
				out = &e
			}
		}
	})
	if out == nil {
		return nil, notFound("Movement")
	}
	return out, nil
}

func (r memMovementRepo) FindByKey(_ context.Context, key inventory.StockKey) ([]inventory.MovementEntry, error) {
	var out []inventory.MovementEntry
	r.with(func(st *memState) {
		for _, e := range st.movements {
			if e.Key() == key {
				out = append(out, e)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out, nil
}

func (r memMovementRepo) ExistsReversalOf(_ context.Context, id uuid.UUID) (bool, error) {
	found := false
	r.with(func(st *memState) {
		for _, e := range st.movements {
			if e.ReversalOfID != nil && *e.ReversalOfID == id {
				found = true
			}
		}
	})
	return found, nil
}

func (r memMovementRepo) List(_ context.Context, filter inventory.MovementFilter) ([]inventory.MovementEntry, int64, error) {
	var out []inventory.MovementEntry
	r.with(func(st *memState) {
		for _, e := range st.movements {
			if filter.ProductID != nil && e.ProductID != *filter.ProductID {
				continue
			}
			if filter.WarehouseID != nil && e.WarehouseID != *filter.WarehouseID {
				continue
			}
			if filter.TransferID != nil && (e.TransferID == nil || *e.TransferID != *filter.TransferID) {
				continue
			}
			if filter.Reference != "" && e.Reference != filter.Reference {
				continue
			}
			out = append(out, e)
		}
	})
	items, total := page(out, filter.Filter)
	return items, total, nil
}

type memBatchRepo struct{ memBase }

func (r memBatchRepo) Create(_ context.Context, b *inventory.Batch) error {
	r.with(func(st *memState) {
		stored := *b
		stored.ClearEvents()
		st.batches[b.ID] = stored
	})
	return nil
}

func (r memBatchRepo) Update(_ context.Context, b *inventory.Batch, expectedVersion int) error {
	var err error
	r.with(func(st *memState) {
		current, ok := st.batches[b.ID]
		if !ok || current.Version != expectedVersion {
			err = shared.ErrConcurrencyConflict
			return
		}
		stored := *b
		stored.ClearEvents()
		st.batches[b.ID] = stored
	})
	return err
}

func (r memBatchRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Batch, error) {
	var out *inventory.Batch
	r.with(func(st *memState) {
		if b, ok := st.batches[id]; ok {
			out = &b
		}
	})
	if out == nil {
		return nil, notFound("Batch")
	}
	return out, nil
}

func (r memBatchRepo) FindAvailableByKey(_ context.Context, key inventory.StockKey) ([]inventory.Batch, error) {
	var out []inventory.Batch
	r.with(func(st *memState) {
		for _, b := range st.batches {
			if b.Key() == key && !b.IsExhausted() {
				out = append(out, b)
			}
		}
	})
	return out, nil
}

func (r memBatchRepo) FindExpiring(_ context.Context, before time.Time, warehouseID *uuid.UUID) ([]inventory.Batch, error) {
	var out []inventory.Batch
	r.with(func(st *memState) {
		for _, b := range st.batches {
			if b.IsExhausted() || b.ExpiryDate == nil || b.ExpiryDate.After(before) {
				continue
			}
			if warehouseID != nil && b.WarehouseID != *warehouseID {
				continue
			}
			out = append(out, b)
		}
	})
	return out, nil
}

func (r memBatchRepo) List(_ context.Context, filter inventory.BatchFilter) ([]inventory.Batch, int64, error) {
	var out []inventory.Batch
	r.with(func(st *memState) {
		for _, b := range st.batches {
			if filter.ProductID != nil && b.ProductID != *filter.ProductID {
				continue
			}
			if filter.WarehouseID != nil && b.WarehouseID != *filter.WarehouseID {
				continue
			}
			if !filter.IncludeExhausted && b.IsExhausted() {
				continue
			}
			out = append(out, b)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ReceivedDate.Before(out[j].ReceivedDate) })
	items, total := page(out, filter.Filter)
	return items, total, nil
}

type memReservationRepo struct{ memBase }

func (r memReservationRepo) Create(_ context.Context, res *inventory.Reservation) error {
	r.with(func(st *memState) {
		stored := *res
		stored.ClearEvents()
		st.reservations[res.ID] = stored
	})
	return nil
}

func (r memReservationRepo) Update(_ context.Context, res *inventory.Reservation, expectedVersion int) error {
	if err := r.store.failReservationUpdate[res.ID]; err != nil {
		return err
	}
	var err error
	r.with(func(st *memState) {
		current, ok := st.reservations[res.ID]
		if !ok || current.Version != expectedVersion {
			err = shared.ErrConcurrencyConflict
			return
		}
		stored := *res
		stored.ClearEvents()
		st.reservations[res.ID] = stored
	})
	return err
}

func (r memReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Reservation, error) {
	var out *inventory.Reservation
	r.with(func(st *memState) {
		if res, ok := st.reservations[id]; ok {
			out = &res
		}
	})
	if out == nil {
		return nil, notFound("Reservation")
	}
	return out, nil
}

func (r memReservationRepo) filter(keep func(inventory.Reservation) bool) []inventory.Reservation {
	var out []inventory.Reservation
	r.with(func(st *memState) {
		for _, res := range st.reservations {
			if keep(res) {
				out = append(out, res)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r memReservationRepo) FindActiveByKey(_ context.Context, key inventory.StockKey) ([]inventory.Reservation, error) {
	return r.filter(func(res inventory.Reservation) bool {
		return res.IsActive() && res.Key() == key
	}), nil
}

func (r memReservationRepo) FindDue(_ context.Context, now time.Time, limit int) ([]inventory.Reservation, error) {
	out := r.filter(func(res inventory.Reservation) bool { return res.IsDue(now) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	if hook := r.store.afterFindDue; hook != nil {
		r.store.afterFindDue = nil
		hook()
	}
	return out, nil
}

func (r memReservationRepo) FindActiveByReference(_ context.Context, reference string) ([]inventory.Reservation, error) {
	return r.filter(func(res inventory.Reservation) bool {
		return res.IsActive() && res.Reference == reference
	}), nil
}

func (r memReservationRepo) List(_ context.Context, filter inventory.ReservationFilter) ([]inventory.Reservation, int64, error) {
	out := r.filter(func(res inventory.Reservation) bool {
		if filter.Status != "" && res.Status != filter.Status {
			return false
		}
		if filter.Reference != "" && res.Reference != filter.Reference {
			return false
		}
		return filter.WarehouseID == nil || res.WarehouseID == *filter.WarehouseID
	})
	items, total := page(out, filter.Filter)
	return items, total, nil
}

type memTransferRepo struct{ memBase }

func (r memTransferRepo) Create(_ context.Context, t *inventory.Transfer) error {
	r.with(func(st *memState) {
		stored := *t
		stored.ClearEvents()
		st.transfers[t.ID] = stored
	})
	return nil
}

func (r memTransferRepo) Update(_ context.Context, t *inventory.Transfer, expectedVersion int) error {
	var err error
	r.with(func(st *memState) {
		current, ok := st.transfers[t.ID]
		if !ok || current.Version != expectedVersion {
			err = shared.ErrConcurrencyConflict
			return
		}
		stored := *t
		stored.ClearEvents()
		st.transfers[t.ID] = stored
	})
	return err
}

func (r memTransferRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Transfer, error) {
	var out *inventory.Transfer
	r.with(func(st *memState) {
		if t, ok := st.transfers[id]; ok {
			out = &t
		}
	})
	if out == nil {
		return nil, notFound("Transfer")
	}
	return out, nil
}

func (r memTransferRepo) List(_ context.Context, filter inventory.TransferFilter) ([]inventory.Transfer, int64, error) {
	var out []inventory.Transfer
	r.with(func(st *memState) {
		for _, t := range st.transfers {
			if filter.Status != "" && t.Status != filter.Status {
				continue
			}
			out = append(out, t)
		}
	})
	items, total := page(out, filter.Filter)
	return items, total, nil
}

type memCycleCountRepo struct{ memBase }

// copyCycleCount detaches the lines so staged edits never reach committed state
func copyCycleCount(c inventory.CycleCount) inventory.CycleCount {
	c.Lines = append([]inventory.CycleCountLine(nil), c.Lines...)
	c.ClearEvents()
	return c
}

func (r memCycleCountRepo) Create(_ context.Context, c *inventory.CycleCount) error {
	r.with(func(st *memState) { st.cycleCounts[c.ID] = copyCycleCount(*c) })
	return nil
}

func (r memCycleCountRepo) Update(_ context.Context, c *inventory.CycleCount, expectedVersion int) error {
	var err error
	r.with(func(st *memState) {
		current, ok := st.cycleCounts[c.ID]
		if !ok || current.Version != expectedVersion {
			err = shared.ErrConcurrencyConflict
			return
		}
		st.cycleCounts[c.ID] = copyCycleCount(*c)
	})
	return err
}

func (r memCycleCountRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.CycleCount, error) {
	var out *inventory.CycleCount
	r.with(func(st *memState) {
		if c, ok := st.cycleCounts[id]; ok {
			c = copyCycleCount(c)
			out = &c
		}
	})
	if out == nil {
		return nil, notFound("Cycle count")
	}
	return out, nil
}

func (r memCycleCountRepo) List(_ context.Context, filter inventory.CycleCountFilter) ([]inventory.CycleCount, int64, error) {
	var out []inventory.CycleCount
	r.with(func(st *memState) {
		for _, c := range st.cycleCounts {
			if filter.Status != "" && c.Status != filter.Status {
				continue
			}
			if filter.WarehouseID != nil && c.WarehouseID != *filter.WarehouseID {
				continue
			}
			out = append(out, copyCycleCount(c))
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	items, total := page(out, filter.Filter)
	return items, total, nil
}

type memWarehouseRepo struct{ store *memStore }

func (r memWarehouseRepo) FindByID(_ context.Context, id uuid.UUID) (*warehouse.Warehouse, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	w, ok := r.store.warehouses[id]
	if !ok {
		return nil, notFound("Warehouse")
	}
	return &w, nil
}

func (r memWarehouseRepo) FindByCode(_ context.Context, code string) (*warehouse.Warehouse, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, w := range r.store.warehouses {
		if w.Code == code {
			return &w, nil
		}
	}
	return nil, notFound("Warehouse")
}

func (r memWarehouseRepo) List(_ context.Context, _ warehouse.Filter) ([]warehouse.Warehouse, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]warehouse.Warehouse, 0, len(r.store.warehouses))
	for _, w := range r.store.warehouses {
		out = append(out, w)
	}
	return out, int64(len(out)), nil
}

func (r memWarehouseRepo) Save(_ context.Context, w *warehouse.Warehouse) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.warehouses[w.ID] = *w
	return nil
}

func (r memWarehouseRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, err := r.FindByCode(ctx, code)
	return err == nil, nil
}

func (r memWarehouseRepo) ClearDefault(context.Context) error { return nil }

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{events: make([]shared.DomainEvent, 0)}
}

func (m *MockEventPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) GetEventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, 0)
	for _, e := range m.events {
		if e.EventType() == eventType {
			result = append(result, e)
		}
	}
	return result
}

// ledgerFixture wires every service against one in-memory store
type ledgerFixture struct {
	store        *memStore
	core         *Core
	publisher    *MockEventPublisher
	ledger       *LedgerService
	reservations *ReservationService
	batches      *BatchService
	transfers    *TransferService
	alerts       *AlertService
	cycleCounts  *CycleCountService
	productID    uuid.UUID
	warehouseA   *warehouse.Warehouse
	warehouseB   *warehouse.Warehouse
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	store := newMemStore()
	whA, err := warehouse.NewWarehouse("WH-A", "Main", warehouse.TypePhysical)
	require.NoError(t, err)
	whB, err := warehouse.NewWarehouse("WH-B", "Overflow", warehouse.TypePhysical)
	require.NoError(t, err)
	store.addWarehouse(whA)
	store.addWarehouse(whB)

	opts := DefaultOptions()
	opts.RetryBackoff = time.Millisecond
	core := NewCore(store.repositories(), store, NewLocalKeyLocker(), opts, zaptest.NewLogger(t))
	publisher := NewMockEventPublisher()
	core.SetEventPublisher(publisher)

	return &ledgerFixture{
		store:        store,
		core:         core,
		publisher:    publisher,
		ledger:       NewLedgerService(core),
		reservations: NewReservationService(core),
		batches:      NewBatchService(core),
		transfers:    NewTransferService(core),
		alerts:       NewAlertService(core),
		cycleCounts:  NewCycleCountService(core),
		productID:    uuid.New(),
		warehouseA:   whA,
		warehouseB:   whB,
	}
}

func (f *ledgerFixture) receive(t *testing.T, warehouseID uuid.UUID, qty, cost string) *MovementResponse {
	t.Helper()
	unitCost := decimal.RequireFromString(cost)
	resp, err := f.ledger.RecordMovement(context.Background(), RecordMovementRequest{
		ProductID:   f.productID,
		WarehouseID: warehouseID,
		Type:        string(inventory.MovementTypeReceipt),
		Quantity:    decimal.RequireFromString(qty),
		UnitCost:    &unitCost,
		Reference:   "PO-1",
		Actor:       "tester",
	})
	require.NoError(t, err)
	return resp
}

func (f *ledgerFixture) record(t *testing.T, warehouseID uuid.UUID) *StockRecordResponse {
	t.Helper()
	rec, err := f.ledger.GetStockRecord(context.Background(), f.productID, warehouseID)
	require.NoError(t, err)
	return rec
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
