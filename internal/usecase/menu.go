package usecase

import (
	"context"

	"github.com/polkiloo/homekitchen/internal/domain/model"
	"github.com/polkiloo/homekitchen/internal/domain/repository"
)

// MenuUseCase lists dishes offered to customers.
type MenuUseCase struct {
	menu repository.MenuRepository
}

// NewMenuUseCase constructs MenuUseCase.
func NewMenuUseCase(menu repository.MenuRepository) *MenuUseCase {
	return &MenuUseCase{menu: menu}
}

// List returns available items ordered by id.
func (u *MenuUseCase) List(ctx context.Context) ([]model.MenuItem, error) {
	items, err := u.menu.ListAvailable(ctx)
	if err != nil {
		return nil, storeError("list menu", err)
	}
	return items, nil
}
