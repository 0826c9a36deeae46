package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	domainErrors "github.com/polkiloo/homekitchen/internal/domain/errors"
	"github.com/polkiloo/homekitchen/internal/domain/model"
	"github.com/polkiloo/homekitchen/internal/domain/repository"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 200

	// StatusFilterAll disables status filtering in order listings.
	StatusFilterAll = "all"
)

// OrderPublisher announces placed orders to the kitchen.
type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, order *model.Order) error
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	uow       repository.UnitOfWork
	orders    repository.OrderRepository
	publisher OrderPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(uow repository.UnitOfWork, orders repository.OrderRepository, publisher OrderPublisher, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{
		uow:       uow,
		orders:    orders,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit validates, prices and persists an order, decrementing stock in the same transaction.
func (u *OrderUseCase) Submit(ctx context.Context, input model.NewOrder) (*model.Order, error) {
	input, err := NormalizeNewOrder(input)
	if err != nil {
		return nil, err
	}

	var placed *model.Order
	err = u.uow.Do(ctx, func(ctx context.Context, tx repository.OrderTx) error {
		snapshot, err := tx.LockMenuItems(ctx, distinctItemIDs(input.Lines))
		if err != nil {
			return err
		}

		lines, total, err := ValidateAndPrice(input.Lines, snapshot)
		if err != nil {
			return err
		}

		now := u.now()
		order := &model.Order{
			CustomerName:  input.CustomerName,
			CustomerPhone: input.CustomerPhone,
			Address:       input.Address,
			Notes:         input.Notes,
			Lines:         lines,
			TotalAmount:   total,
			Status:        model.OrderStatusNew,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := tx.InsertOrder(ctx, order); err != nil {
			return err
		}

		for _, line := range lines {
			if err := tx.DecrementStock(ctx, line.ItemID, line.Quantity); err != nil {
				return err
			}
		}

		placed = order
		return nil
	})
	if err != nil {
		return nil, storeError("submit order", err)
	}

	if u.publisher != nil {
		if err := u.publisher.PublishOrderPlaced(ctx, placed); err != nil {
			u.logger.Warn("publish order placed failed",
				slog.Int64("order_id", placed.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return placed, nil
}

// UpdateStatus changes order status. Status is checked before the order is looked up.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if !status.Valid() {
		return domainErrors.ErrInvalidStatus
	}
	if orderID <= 0 {
		return domainErrors.ErrNotFound
	}
	if err := u.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return storeError("update order status", err)
	}
	return nil
}

// List returns a page of orders, newest first.
func (u *OrderUseCase) List(ctx context.Context, filter model.OrderFilter) (*model.OrderPage, error) {
	filter, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	page, err := u.orders.List(ctx, filter)
	if err != nil {
		return nil, storeError("list orders", err)
	}
	return page, nil
}

func normalizeFilter(filter model.OrderFilter) (model.OrderFilter, error) {
	if filter.Status == StatusFilterAll {
		filter.Status = ""
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return filter, domainErrors.ErrInvalidStatus
	}
	if filter.Page <= 0 {
		filter.Page = DefaultPage
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}
	if filter.Page > math.MaxInt32/filter.Limit {
		filter.Page = math.MaxInt32 / filter.Limit
	}
	return filter, nil
}

var domainFailures = []error{
	domainErrors.ErrInvalidInput,
	domainErrors.ErrItemNotFound,
	domainErrors.ErrInsufficientStock,
	domainErrors.ErrEmptyOrder,
	domainErrors.ErrInvalidStatus,
	domainErrors.ErrNotFound,
	domainErrors.ErrStoreUnavailable,
}

// storeError keeps domain failures intact and marks anything else as a store failure.
func storeError(op string, err error) error {
	for _, target := range domainFailures {
		if errors.Is(err, target) {
			return err
		}
	}
	return fmt.Errorf("%s: %w: %w", op, domainErrors.ErrStoreUnavailable, err)
}
