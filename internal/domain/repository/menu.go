package repository

import (
	"context"

	"github.com/polkiloo/homekitchen/internal/domain/model"
)

// MenuRepository provides read access to menu items.
type MenuRepository interface {
	ListAvailable(ctx context.Context) ([]model.MenuItem, error)
}
