package dto

import "github.com/polkiloo/homekitchen/internal/domain/model"

// MenuItemResponse describes a dish on the menu.
type MenuItemResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Stock       int     `json:"stock"`
	IsAvailable bool    `json:"is_available"`
}

// NewMenuItemResponse converts domain item.
func NewMenuItemResponse(item model.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Price:       item.Price.InexactFloat64(),
		Description: item.Description,
		Stock:       item.Stock,
		IsAvailable: item.IsAvailable,
	}
}
