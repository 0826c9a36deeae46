package memory

import (
	"context"

	domainErrors "github.com/polkiloo/homekitchen/internal/domain/errors"
	"github.com/polkiloo/homekitchen/internal/domain/model"
	"github.com/polkiloo/homekitchen/internal/domain/repository"
)

// orderTx stages changes until the unit of work commits.
type orderTx struct {
	store  *Store
	stock  map[int64]int
	orders []model.Order
	nextID int64
}

// Do holds the store lock for the whole of fn and applies staged changes only when fn succeeds.
func (u *unitOfWork) Do(ctx context.Context, fn func(context.Context, repository.OrderTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &orderTx{store: s, stock: make(map[int64]int), nextID: s.nextOrderID}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for id, stock := range tx.stock {
		item := s.items[id]
		item.Stock = stock
		s.items[id] = item
	}
	s.orders = append(s.orders, tx.orders...)
	s.nextOrderID = tx.nextID
	return nil
}

func (tx *orderTx) currentStock(item model.MenuItem) int {
	if stock, ok := tx.stock[item.ID]; ok {
		return stock
	}
	return item.Stock
}

func (tx *orderTx) LockMenuItems(_ context.Context, ids []int64) (model.MenuSnapshot, error) {
	snapshot := make(model.MenuSnapshot, len(ids))
	for _, id := range ids {
		item, ok := tx.store.items[id]
		if !ok || !item.IsAvailable {
			continue
		}
		item.Stock = tx.currentStock(item)
		snapshot[id] = item
	}
	return snapshot, nil
}

func (tx *orderTx) InsertOrder(_ context.Context, order *model.Order) error {
	order.ID = tx.nextID
	tx.nextID++
	if order.CreatedAt.IsZero() {
		order.CreatedAt = tx.store.now()
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = order.CreatedAt
	}
	tx.orders = append(tx.orders, copyOrder(*order))
	return nil
}

func (tx *orderTx) DecrementStock(_ context.Context, itemID int64, quantity int) error {
	item, ok := tx.store.items[itemID]
	if !ok {
		return domainErrors.ItemNotFoundError{ItemID: itemID}
	}
	current := tx.currentStock(item)
	if current < quantity {
		return domainErrors.InsufficientStockError{ItemID: itemID, ItemName: item.Name, Remaining: current}
	}
	tx.stock[itemID] = current - quantity
	return nil
}
