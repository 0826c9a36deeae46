package app

import (
	"context"

	"github.com/polkiloo/homekitchen/internal/domain/model"
	"github.com/polkiloo/homekitchen/internal/usecase"
)

// KitchenFacade exposes use cases to the transport layer.
type KitchenFacade struct {
	menu   *usecase.MenuUseCase
	orders *usecase.OrderUseCase
	stats  *usecase.StatsUseCase
	backup *usecase.BackupUseCase
	health *usecase.HealthUseCase
}

func NewKitchenFacade(
	menu *usecase.MenuUseCase,
	orders *usecase.OrderUseCase,
	stats *usecase.StatsUseCase,
	backup *usecase.BackupUseCase,
	health *usecase.HealthUseCase,
) *KitchenFacade {
	return &KitchenFacade{menu: menu, orders: orders, stats: stats, backup: backup, health: health}
}

func (f *KitchenFacade) Menu(ctx context.Context) ([]model.MenuItem, error) {
	return f.menu.List(ctx)
}

func (f *KitchenFacade) SubmitOrder(ctx context.Context, order model.NewOrder) (*model.Order, error) {
	return f.orders.Submit(ctx, order)
}

func (f *KitchenFacade) Orders(ctx context.Context, filter model.OrderFilter) (*model.OrderPage, error) {
	return f.orders.List(ctx, filter)
}

func (f *KitchenFacade) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return f.orders.UpdateStatus(ctx, orderID, status)
}

func (f *KitchenFacade) Stats(ctx context.Context) (*model.Stats, error) {
	return f.stats.Stats(ctx)
}

func (f *KitchenFacade) Backup(ctx context.Context) (string, error) {
	return f.backup.Backup(ctx)
}

func (f *KitchenFacade) Health(ctx context.Context) (model.HealthReport, error) {
	return f.health.Check(ctx)
}
