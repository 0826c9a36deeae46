package handlers

import (
	"context"

	"github.com/polkiloo/homekitchen/internal/domain/model"
)

// MenuFacade exposes menu listing.
type MenuFacade interface {
	Menu(ctx context.Context) ([]model.MenuItem, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	SubmitOrder(ctx context.Context, order model.NewOrder) (*model.Order, error)
	Orders(ctx context.Context, filter model.OrderFilter) (*model.OrderPage, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}

// StatsFacade provides aggregated order counters.
type StatsFacade interface {
	Stats(ctx context.Context) (*model.Stats, error)
}

// SystemFacade covers maintenance endpoints.
type SystemFacade interface {
	Backup(ctx context.Context) (string, error)
	Health(ctx context.Context) (model.HealthReport, error)
}

// KitchenFacade aggregates the full set of operations used across handlers.
type KitchenFacade interface {
	MenuFacade
	OrderFacade
	StatsFacade
	SystemFacade
}
