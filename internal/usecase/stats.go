package usecase

import (
	"context"

	"github.com/polkiloo/homekitchen/internal/domain/model"
	"github.com/polkiloo/homekitchen/internal/domain/repository"
)

// StatsUseCase aggregates order counters.
type StatsUseCase struct {
	orders repository.OrderRepository
}

// NewStatsUseCase constructs StatsUseCase.
func NewStatsUseCase(orders repository.OrderRepository) *StatsUseCase {
	return &StatsUseCase{orders: orders}
}

// Stats returns order counts by status and total revenue.
func (u *StatsUseCase) Stats(ctx context.Context) (*model.Stats, error) {
	stats, err := u.orders.Stats(ctx)
	if err != nil {
		return nil, storeError("order stats", err)
	}
	return stats, nil
}
