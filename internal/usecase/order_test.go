package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/homekitchen/internal/domain/errors"
	"github.com/polkiloo/homekitchen/internal/domain/model"
	"github.com/polkiloo/homekitchen/internal/storage/memory"
	testhelpers "github.com/polkiloo/homekitchen/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newMemoryOrderUseCase(items ...model.MenuItem) (*OrderUseCase, *memory.Store, *testhelpers.PublisherStub) {
	store := memory.New(items)
	publisher := &testhelpers.PublisherStub{}
	return NewOrderUseCase(store.UnitOfWork(), store.Orders(), publisher, discardLogger()), store, publisher
}

func braisedPork(stock int) model.MenuItem {
	return model.MenuItem{ID: 1, Name: "红烧肉", Price: decimal.RequireFromString("12.50"), Stock: stock, IsAvailable: true}
}

func orderFor(lines ...model.LineRequest) model.NewOrder {
	return model.NewOrder{CustomerName: "李四", CustomerPhone: "13900000000", Address: "长安街 8 号", Lines: lines}
}

func TestSubmitSuccessDecrementsStock(t *testing.T) {
	uc, store, publisher := newMemoryOrderUseCase(braisedPork(3))

	order, err := uc.Submit(context.Background(), orderFor(model.LineRequest{ItemID: 1, Quantity: 2}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !order.TotalAmount.Equal(decimal.RequireFromString("25.00")) {
		t.Fatalf("expected total 25.00, got %s", order.TotalAmount)
	}
	if order.ID == 0 || order.Status != model.OrderStatusNew {
		t.Fatalf("unexpected order: %+v", order)
	}
	item, _ := store.Item(1)
	if item.Stock != 1 {
		t.Fatalf("expected stock 1, got %d", item.Stock)
	}
	if len(publisher.Published) != 1 || publisher.Published[0].ID != order.ID {
		t.Fatalf("expected placed order to be published, got %+v", publisher.Published)
	}
}

func TestSubmitInsufficientStockLeavesStoreUntouched(t *testing.T) {
	rice := model.MenuItem{ID: 2, Name: "米饭", Price: decimal.RequireFromString("2"), Stock: 10, IsAvailable: true}
	uc, store, publisher := newMemoryOrderUseCase(braisedPork(3), rice)

	_, err := uc.Submit(context.Background(), orderFor(
		model.LineRequest{ItemID: 2, Quantity: 4},
		model.LineRequest{ItemID: 1, Quantity: 5},
	))
	var stockErr domainErrors.InsufficientStockError
	if !errors.As(err, &stockErr) || stockErr.ItemName != "红烧肉" || stockErr.Remaining != 3 {
		t.Fatalf("expected insufficient stock for 红烧肉, got %v", err)
	}
	pork, _ := store.Item(1)
	riceItem, _ := store.Item(2)
	if pork.Stock != 3 || riceItem.Stock != 10 {
		t.Fatalf("expected no stock mutation, got pork=%d rice=%d", pork.Stock, riceItem.Stock)
	}
	stats, _ := store.Orders().Stats(context.Background())
	if stats.TotalOrders != 0 {
		t.Fatalf("expected no orders persisted, got %d", stats.TotalOrders)
	}
	if len(publisher.Published) != 0 {
		t.Fatal("failed order must not be published")
	}
}

func TestSubmitUnknownItem(t *testing.T) {
	uc, store, _ := newMemoryOrderUseCase(braisedPork(3))
	_, err := uc.Submit(context.Background(), orderFor(
		model.LineRequest{ItemID: 1, Quantity: 1},
		model.LineRequest{ItemID: 42, Quantity: 1},
	))
	if !errors.Is(err, domainErrors.ErrItemNotFound) {
		t.Fatalf("expected item not found, got %v", err)
	}
	item, _ := store.Item(1)
	if item.Stock != 3 {
		t.Fatalf("expected stock untouched, got %d", item.Stock)
	}
}

func TestSubmitConcurrentFullStockOrders(t *testing.T) {
	uc, store, _ := newMemoryOrderUseCase(braisedPork(3))

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := uc.Submit(context.Background(), orderFor(model.LineRequest{ItemID: 1, Quantity: 3}))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domainErrors.ErrInsufficientStock):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	if succeeded != 1 || rejected != workers-1 {
		t.Fatalf("expected exactly one success, got %d successes and %d rejections", succeeded, rejected)
	}
	item, _ := store.Item(1)
	if item.Stock != 0 {
		t.Fatalf("expected stock 0, got %d", item.Stock)
	}
}

func TestSubmitValidatesBeforeTransaction(t *testing.T) {
	uow := &testhelpers.UnitOfWorkStub{}
	uc := NewOrderUseCase(uow, &testhelpers.OrderRepositoryStub{}, nil, discardLogger())

	input := orderFor(model.LineRequest{ItemID: 1, Quantity: 1})
	input.Address = " "
	if _, err := uc.Submit(context.Background(), input); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := uc.Submit(context.Background(), orderFor()); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for nil lines, got %v", err)
	}
	if uow.Committed+uow.RolledBack != 0 {
		t.Fatal("transaction must not start for malformed input")
	}
}

func TestSubmitWrapsStoreFailures(t *testing.T) {
	boom := errors.New("connection reset")
	uow := &testhelpers.UnitOfWorkStub{Tx: &testhelpers.OrderTxStub{
		Snapshot: model.NewMenuSnapshot([]model.MenuItem{braisedPork(3)}),
		InsertFn: func(context.Context, *model.Order) error { return boom },
	}}
	uc := NewOrderUseCase(uow, &testhelpers.OrderRepositoryStub{}, nil, discardLogger())

	_, err := uc.Submit(context.Background(), orderFor(model.LineRequest{ItemID: 1, Quantity: 1}))
	if !errors.Is(err, domainErrors.ErrStoreUnavailable) || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store failure, got %v", err)
	}
	if uow.RolledBack != 1 || len(uow.Tx.Decrements) != 0 {
		t.Fatalf("expected rollback before decrements, got rollbacks=%d decrements=%d", uow.RolledBack, len(uow.Tx.Decrements))
	}

	uow = &testhelpers.UnitOfWorkStub{BeginErr: boom}
	uc = NewOrderUseCase(uow, &testhelpers.OrderRepositoryStub{}, nil, discardLogger())
	if _, err := uc.Submit(context.Background(), orderFor(model.LineRequest{ItemID: 1, Quantity: 1})); !errors.Is(err, domainErrors.ErrStoreUnavailable) {
		t.Fatalf("expected store unavailable, got %v", err)
	}
}

func TestSubmitDecrementGuardAbortsOrder(t *testing.T) {
	uow := &testhelpers.UnitOfWorkStub{Tx: &testhelpers.OrderTxStub{
		Snapshot: model.NewMenuSnapshot([]model.MenuItem{braisedPork(3)}),
		DecrementFn: func(_ context.Context, id int64, _ int) error {
			return domainErrors.InsufficientStockError{ItemID: id, ItemName: "红烧肉", Remaining: 0}
		},
	}}
	uc := NewOrderUseCase(uow, &testhelpers.OrderRepositoryStub{}, nil, discardLogger())

	_, err := uc.Submit(context.Background(), orderFor(model.LineRequest{ItemID: 1, Quantity: 1}))
	if !errors.Is(err, domainErrors.ErrInsufficientStock) || errors.Is(err, domainErrors.ErrStoreUnavailable) {
		t.Fatalf("expected plain insufficient stock, got %v", err)
	}
	if uow.RolledBack != 1 || uow.Committed != 0 {
		t.Fatalf("expected rollback, got committed=%d rolledBack=%d", uow.Committed, uow.RolledBack)
	}
}

func TestSubmitLocksDistinctItems(t *testing.T) {
	tx := &testhelpers.OrderTxStub{Snapshot: model.NewMenuSnapshot([]model.MenuItem{braisedPork(5)})}
	uc := NewOrderUseCase(&testhelpers.UnitOfWorkStub{Tx: tx}, &testhelpers.OrderRepositoryStub{}, nil, discardLogger())

	if _, err := uc.Submit(context.Background(), orderFor(
		model.LineRequest{ItemID: 1, Quantity: 1},
		model.LineRequest{ItemID: 1, Quantity: 2},
	)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tx.Locked) != 1 || len(tx.Locked[0]) != 1 || tx.Locked[0][0] != 1 {
		t.Fatalf("unexpected locked ids: %v", tx.Locked)
	}
	if len(tx.Decrements) != 2 {
		t.Fatalf("expected one decrement per line, got %v", tx.Decrements)
	}
	if !tx.Inserted[0].TotalAmount.Equal(decimal.RequireFromString("37.5")) {
		t.Fatalf("unexpected total %s", tx.Inserted[0].TotalAmount)
	}
}

func TestSubmitIgnoresPublishFailure(t *testing.T) {
	store := memory.New([]model.MenuItem{braisedPork(3)})
	publisher := &testhelpers.PublisherStub{Err: errors.New("broker down")}
	uc := NewOrderUseCase(store.UnitOfWork(), store.Orders(), publisher, discardLogger())

	if _, err := uc.Submit(context.Background(), orderFor(model.LineRequest{ItemID: 1, Quantity: 1})); err != nil {
		t.Fatalf("publish failure must not fail submission: %v", err)
	}
}

func TestUpdateStatusRejectsUnknownStatusBeforeLookup(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{}
	uc := NewOrderUseCase(&testhelpers.UnitOfWorkStub{}, repo, nil, discardLogger())

	for _, id := range []int64{1, 999, 0} {
		if err := uc.UpdateStatus(context.Background(), id, "shipped"); !errors.Is(err, domainErrors.ErrInvalidStatus) {
			t.Fatalf("expected invalid status for id %d, got %v", id, err)
		}
	}
	if len(repo.UpdateCalls) != 0 {
		t.Fatal("repository must not be called for invalid status")
	}
}

func TestUpdateStatusPropagatesNotFound(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{UpdateStatusFn: func(context.Context, int64, model.OrderStatus) error {
		return domainErrors.ErrNotFound
	}}
	uc := NewOrderUseCase(&testhelpers.UnitOfWorkStub{}, repo, nil, discardLogger())

	if err := uc.UpdateStatus(context.Background(), 5, model.OrderStatusConfirmed); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := uc.UpdateStatus(context.Background(), 0, model.OrderStatusConfirmed); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for non-positive id, got %v", err)
	}
	if len(repo.UpdateCalls) != 1 || repo.UpdateCalls[0].Status != model.OrderStatusConfirmed {
		t.Fatalf("unexpected calls: %+v", repo.UpdateCalls)
	}
}

func TestUpdateStatusKeepsStock(t *testing.T) {
	uc, store, _ := newMemoryOrderUseCase(braisedPork(3))
	order, err := uc.Submit(context.Background(), orderFor(model.LineRequest{ItemID: 1, Quantity: 1}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.UpdateStatus(context.Background(), order.ID, model.OrderStatusCancelled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item, _ := store.Item(1)
	if item.Stock != 2 {
		t.Fatalf("expected stock 2, got %d", item.Stock)
	}
	page, _ := uc.List(context.Background(), model.OrderFilter{Status: model.OrderStatusCancelled})
	if page.Total != 1 || page.Orders[0].Status != model.OrderStatusCancelled {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestListNormalizesFilter(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{}
	uc := NewOrderUseCase(&testhelpers.UnitOfWorkStub{}, repo, nil, discardLogger())

	if _, err := uc.List(context.Background(), model.OrderFilter{Status: StatusFilterAll, Page: -1, Limit: 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.List(context.Background(), model.OrderFilter{Page: 2, Limit: 1000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.List(context.Background(), model.OrderFilter{Status: "bogus"}); !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}

	if len(repo.Filters) != 2 {
		t.Fatalf("expected two repository calls, got %d", len(repo.Filters))
	}
	if got := repo.Filters[0]; got.Status != "" || got.Page != DefaultPage || got.Limit != DefaultLimit {
		t.Fatalf("unexpected defaults: %+v", got)
	}
	if got := repo.Filters[1]; got.Page != 2 || got.Limit != MaxLimit {
		t.Fatalf("expected capped limit, got %+v", got)
	}
}

func TestListClampsHugePage(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{}
	uc := NewOrderUseCase(&testhelpers.UnitOfWorkStub{}, repo, nil, discardLogger())

	if _, err := uc.List(context.Background(), model.OrderFilter{Page: 1<<58 + 1, Limit: 50}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := repo.Filters[0]
	if got.Page != math.MaxInt32/50 || got.Offset() < 0 {
		t.Fatalf("expected clamped page, got %+v offset=%d", got, got.Offset())
	}

	memUC, _, _ := newMemoryOrderUseCase(braisedPork(10))
	if _, err := memUC.Submit(context.Background(), orderFor(model.LineRequest{ItemID: 1, Quantity: 1})); err != nil {
		t.Fatalf("submit: %v", err)
	}
	page, err := memUC.List(context.Background(), model.OrderFilter{Page: 1<<58 + 1, Limit: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Orders) != 0 || page.Total != 1 {
		t.Fatalf("expected empty page, got len=%d total=%d", len(page.Orders), page.Total)
	}
}

func TestListPagination(t *testing.T) {
	uc, _, _ := newMemoryOrderUseCase(braisedPork(100))
	for i := 0; i < 15; i++ {
		if _, err := uc.Submit(context.Background(), orderFor(model.LineRequest{ItemID: 1, Quantity: 1})); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	page, err := uc.List(context.Background(), model.OrderFilter{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Orders) != 5 || page.Pages() != 2 || page.Total != 15 {
		t.Fatalf("unexpected page: len=%d pages=%d total=%d", len(page.Orders), page.Pages(), page.Total)
	}
}
