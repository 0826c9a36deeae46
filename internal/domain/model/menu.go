package model

import "github.com/shopspring/decimal"

// MenuItem describes a purchasable dish.
type MenuItem struct {
	ID          int64
	Name        string
	Price       decimal.Decimal
	Description string
	Stock       int
	IsAvailable bool
}

// MenuSnapshot indexes menu items by identifier.
type MenuSnapshot map[int64]MenuItem

// NewMenuSnapshot builds lookup from item list.
func NewMenuSnapshot(items []MenuItem) MenuSnapshot {
	snapshot := make(MenuSnapshot, len(items))
	for _, item := range items {
		snapshot[item.ID] = item
	}
	return snapshot
}
