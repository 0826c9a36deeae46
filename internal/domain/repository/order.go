package repository

import (
	"context"

	"github.com/polkiloo/homekitchen/internal/domain/model"
)

// OrderRepository describes persistence operations with orders outside of placement.
type OrderRepository interface {
	List(ctx context.Context, filter model.OrderFilter) (*model.OrderPage, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	Stats(ctx context.Context) (*model.Stats, error)
}

// OrderTx exposes operations available inside an order placement transaction.
type OrderTx interface {
	// LockMenuItems returns available items with the given ids, locked until the transaction ends.
	LockMenuItems(ctx context.Context, ids []int64) (model.MenuSnapshot, error)
	InsertOrder(ctx context.Context, order *model.Order) error
	// DecrementStock fails with ErrInsufficientStock when stock would go negative.
	DecrementStock(ctx context.Context, itemID int64, quantity int) error
}

// UnitOfWork runs fn atomically: every change commits or none does.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, tx OrderTx) error) error
}
