package test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/homekitchen/internal/domain/model"
)

// MenuFacadeStub returns a fixed menu or delegates to MenuFn.
type MenuFacadeStub struct {
	MenuFn func(context.Context) ([]model.MenuItem, error)
	Items  []model.MenuItem
}

// Menu returns configured menu.
func (s *MenuFacadeStub) Menu(ctx context.Context) ([]model.MenuItem, error) {
	if s.MenuFn != nil {
		return s.MenuFn(ctx)
	}
	return s.Items, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	SubmitFn func(context.Context, model.NewOrder) (*model.Order, error)
	OrdersFn func(context.Context, model.OrderFilter) (*model.OrderPage, error)
	UpdateFn func(context.Context, int64, model.OrderStatus) error

	mu        sync.Mutex
	Submitted []model.NewOrder
	Filters   []model.OrderFilter
	Updates   []StatusUpdateCall
}

// SubmitOrder delegates to provided function or prices nothing and returns order 1.
func (s *OrderFacadeStub) SubmitOrder(ctx context.Context, order model.NewOrder) (*model.Order, error) {
	s.mu.Lock()
	s.Submitted = append(s.Submitted, order)
	s.mu.Unlock()
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, order)
	}
	return &model.Order{ID: 1, CustomerName: order.CustomerName, TotalAmount: decimal.Zero, Status: model.OrderStatusNew}, nil
}

// Orders returns configured page or an empty one.
func (s *OrderFacadeStub) Orders(ctx context.Context, filter model.OrderFilter) (*model.OrderPage, error) {
	s.mu.Lock()
	s.Filters = append(s.Filters, filter)
	s.mu.Unlock()
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, filter)
	}
	return &model.OrderPage{Orders: []model.Order{}, Page: 1, Limit: 50}, nil
}

// UpdateOrderStatus records the call and delegates to UpdateFn.
func (s *OrderFacadeStub) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	s.mu.Lock()
	s.Updates = append(s.Updates, StatusUpdateCall{OrderID: orderID, Status: status})
	s.mu.Unlock()
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, orderID, status)
	}
	return nil
}

// StatsFacadeStub returns configured stats.
type StatsFacadeStub struct {
	Result *model.Stats
	Err    error
}

// Stats returns configured result.
func (s *StatsFacadeStub) Stats(context.Context) (*model.Stats, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Result == nil {
		return &model.Stats{TotalRevenue: decimal.Zero}, nil
	}
	return s.Result, nil
}

// SystemFacadeStub simulates backup and health operations.
type SystemFacadeStub struct {
	BackupPath string
	BackupErr  error
	HealthErr  error
	Uptime     time.Duration
	Now        time.Time
}

// Backup returns configured path.
func (s *SystemFacadeStub) Backup(context.Context) (string, error) {
	if s.BackupErr != nil {
		return "", s.BackupErr
	}
	return s.BackupPath, nil
}

// Health returns report stamped with Now.
func (s *SystemFacadeStub) Health(context.Context) (model.HealthReport, error) {
	return model.HealthReport{Timestamp: s.Now, Uptime: s.Uptime}, s.HealthErr
}

// KitchenFacadeStub combines all facade stubs.
type KitchenFacadeStub struct {
	*MenuFacadeStub
	*OrderFacadeStub
	*StatsFacadeStub
	*SystemFacadeStub
}

// NewKitchenFacadeStub returns stub with every part initialised.
func NewKitchenFacadeStub() *KitchenFacadeStub {
	return &KitchenFacadeStub{
		MenuFacadeStub:   &MenuFacadeStub{},
		OrderFacadeStub:  &OrderFacadeStub{},
		StatsFacadeStub:  &StatsFacadeStub{},
		SystemFacadeStub: &SystemFacadeStub{},
	}
}
