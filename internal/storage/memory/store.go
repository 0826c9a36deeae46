package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/homekitchen/internal/domain/errors"
	"github.com/polkiloo/homekitchen/internal/domain/model"
	"github.com/polkiloo/homekitchen/internal/domain/repository"
)

// Store keeps menu and orders in process memory. Order placement runs under the store lock.
type Store struct {
	mu          sync.Mutex
	items       map[int64]model.MenuItem
	orders      []model.Order
	nextOrderID int64
	now         func() time.Time
}

type menuRepository struct {
	store *Store
}

type orderRepository struct {
	store *Store
}

type unitOfWork struct {
	store *Store
}

type snapshotRepository struct {
	store *Store
}

// New creates store seeded with items.
func New(items []model.MenuItem) *Store {
	s := &Store{
		items:       make(map[int64]model.MenuItem, len(items)),
		nextOrderID: 1,
		now:         time.Now,
	}
	for _, item := range items {
		s.items[item.ID] = item
	}
	return s
}

// Factory methods for domain repositories.
func (s *Store) Menu() repository.MenuRepository {
	return &menuRepository{store: s}
}

func (s *Store) Orders() repository.OrderRepository {
	return &orderRepository{store: s}
}

func (s *Store) UnitOfWork() repository.UnitOfWork {
	return &unitOfWork{store: s}
}

func (s *Store) Snapshots() repository.SnapshotRepository {
	return &snapshotRepository{store: s}
}

// HealthCheck always succeeds unless ctx is done.
func (s *Store) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op.
func (s *Store) Close() {}

// Item returns stored item by id.
func (s *Store) Item(id int64) (model.MenuItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	return item, ok
}

func (s *Store) sortedItems(onlyAvailable bool) []model.MenuItem {
	items := make([]model.MenuItem, 0, len(s.items))
	for _, item := range s.items {
		if onlyAvailable && !item.IsAvailable {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func copyOrder(o model.Order) model.Order {
	o.Lines = append([]model.OrderLine(nil), o.Lines...)
	return o
}

// --- MenuRepository implementation ---

func (r *menuRepository) ListAvailable(ctx context.Context) ([]model.MenuItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.sortedItems(true), nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) (*model.OrderPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	matched := make([]model.Order, 0, len(r.store.orders))
	for _, o := range r.store.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		matched = append(matched, o)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	page := &model.OrderPage{Total: len(matched), Page: filter.Page, Limit: filter.Limit, Orders: []model.Order{}}
	start := filter.Offset()
	if start >= len(matched) {
		return page, nil
	}
	end := len(matched)
	if filter.Limit > 0 && start+filter.Limit < end {
		end = start + filter.Limit
	}
	for _, o := range matched[start:end] {
		page.Orders = append(page.Orders, copyOrder(o))
	}
	return page, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.orders {
		if r.store.orders[i].ID == orderID {
			r.store.orders[i].Status = status
			r.store.orders[i].UpdatedAt = r.store.now()
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (r *orderRepository) Stats(ctx context.Context) (*model.Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stats := &model.Stats{TotalRevenue: decimal.Zero}
	for _, o := range r.store.orders {
		stats.TotalOrders++
		stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalAmount)
		switch o.Status {
		case model.OrderStatusNew:
			stats.NewOrders++
		case model.OrderStatusConfirmed:
			stats.ConfirmedOrders++
		case model.OrderStatusCompleted:
			stats.CompletedOrders++
		case model.OrderStatusCancelled:
			stats.CancelledOrders++
		}
	}
	return stats, nil
}

// --- SnapshotRepository implementation ---

func (r *snapshotRepository) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snapshot := &model.Snapshot{
		TakenAt:   r.store.now(),
		MenuItems: r.store.sortedItems(false),
		Orders:    make([]model.Order, 0, len(r.store.orders)),
	}
	for _, o := range r.store.orders {
		snapshot.Orders = append(snapshot.Orders, copyOrder(o))
	}
	return snapshot, nil
}
