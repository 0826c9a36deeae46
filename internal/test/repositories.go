package test

import (
	"context"
	"sync"

	"github.com/polkiloo/homekitchen/internal/domain/model"
	"github.com/polkiloo/homekitchen/internal/domain/repository"
)

// MenuRepositoryStub returns configured menu items.
type MenuRepositoryStub struct {
	ListFn func(context.Context) ([]model.MenuItem, error)
	Items  []model.MenuItem
}

// ListAvailable delegates to override or returns stored items.
func (s *MenuRepositoryStub) ListAvailable(ctx context.Context) ([]model.MenuItem, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.Items, nil
}

// StatusUpdateCall stores information about UpdateStatus invocations.
type StatusUpdateCall struct {
	OrderID int64
	Status  model.OrderStatus
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	ListFn         func(context.Context, model.OrderFilter) (*model.OrderPage, error)
	UpdateStatusFn func(context.Context, int64, model.OrderStatus) error
	StatsFn        func(context.Context) (*model.Stats, error)

	Filters     []model.OrderFilter
	UpdateCalls []StatusUpdateCall
}

// List records the filter and returns configured page.
func (s *OrderRepositoryStub) List(ctx context.Context, filter model.OrderFilter) (*model.OrderPage, error) {
	s.Filters = append(s.Filters, filter)
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return &model.OrderPage{Page: filter.Page, Limit: filter.Limit}, nil
}

// UpdateStatus records update invocations.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	s.UpdateCalls = append(s.UpdateCalls, StatusUpdateCall{OrderID: orderID, Status: status})
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	return nil
}

// Stats returns configured stats or zero values.
func (s *OrderRepositoryStub) Stats(ctx context.Context) (*model.Stats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx)
	}
	return &model.Stats{}, nil
}

// DecrementCall stores information about DecrementStock invocations.
type DecrementCall struct {
	ItemID   int64
	Quantity int
}

// OrderTxStub records transactional calls.
type OrderTxStub struct {
	LockFn      func(context.Context, []int64) (model.MenuSnapshot, error)
	InsertFn    func(context.Context, *model.Order) error
	DecrementFn func(context.Context, int64, int) error

	Snapshot   model.MenuSnapshot
	Locked     [][]int64
	Inserted   []*model.Order
	Decrements []DecrementCall
}

// LockMenuItems returns configured snapshot.
func (s *OrderTxStub) LockMenuItems(ctx context.Context, ids []int64) (model.MenuSnapshot, error) {
	s.Locked = append(s.Locked, ids)
	if s.LockFn != nil {
		return s.LockFn(ctx, ids)
	}
	return s.Snapshot, nil
}

// InsertOrder assigns sequential ids to inserted orders.
func (s *OrderTxStub) InsertOrder(ctx context.Context, order *model.Order) error {
	if s.InsertFn != nil {
		if err := s.InsertFn(ctx, order); err != nil {
			return err
		}
	}
	if order.ID == 0 {
		order.ID = int64(len(s.Inserted) + 1)
	}
	s.Inserted = append(s.Inserted, order)
	return nil
}

// DecrementStock records decrement requests.
func (s *OrderTxStub) DecrementStock(ctx context.Context, itemID int64, quantity int) error {
	if s.DecrementFn != nil {
		if err := s.DecrementFn(ctx, itemID, quantity); err != nil {
			return err
		}
	}
	s.Decrements = append(s.Decrements, DecrementCall{ItemID: itemID, Quantity: quantity})
	return nil
}

// UnitOfWorkStub runs fn against Tx and reports commit or rollback.
type UnitOfWorkStub struct {
	Tx       *OrderTxStub
	BeginErr error

	Committed  int
	RolledBack int
}

// Do executes fn and tracks the outcome.
func (s *UnitOfWorkStub) Do(ctx context.Context, fn func(context.Context, repository.OrderTx) error) error {
	if s.BeginErr != nil {
		return s.BeginErr
	}
	if s.Tx == nil {
		s.Tx = &OrderTxStub{}
	}
	if err := fn(ctx, s.Tx); err != nil {
		s.RolledBack++
		return err
	}
	s.Committed++
	return nil
}

// SnapshotRepositoryStub returns configured snapshot.
type SnapshotRepositoryStub struct {
	Value *model.Snapshot
	Err   error
}

// Snapshot returns stored values.
func (s *SnapshotRepositoryStub) Snapshot(context.Context) (*model.Snapshot, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Value == nil {
		return &model.Snapshot{}, nil
	}
	return s.Value, nil
}

// PublisherStub records published orders.
type PublisherStub struct {
	Err error

	mu        sync.Mutex
	Published []*model.Order
}

// PublishOrderPlaced records the order and returns configured error.
func (s *PublisherStub) PublishOrderPlaced(_ context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Published = append(s.Published, order)
	return s.Err
}

// BackupWriterStub returns configured path.
type BackupWriterStub struct {
	Path    string
	Err     error
	Written []*model.Snapshot
}

// Write records snapshot.
func (s *BackupWriterStub) Write(_ context.Context, snapshot *model.Snapshot) (string, error) {
	s.Written = append(s.Written, snapshot)
	if s.Err != nil {
		return "", s.Err
	}
	return s.Path, nil
}

// HealthCheckerStub returns configured error.
type HealthCheckerStub struct {
	Err error
}

// HealthCheck returns stored error.
func (s HealthCheckerStub) HealthCheck(context.Context) error {
	return s.Err
}
