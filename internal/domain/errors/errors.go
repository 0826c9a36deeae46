package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrItemNotFound      = errors.New("menu item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyOrder        = errors.New("empty order")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrNotFound          = errors.New("not found")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// ItemNotFoundError reports a line referencing a missing or unavailable menu item.
type ItemNotFoundError struct {
	ItemID int64
}

func (e ItemNotFoundError) Error() string {
	return fmt.Sprintf("menu item %d not found or unavailable", e.ItemID)
}

func (e ItemNotFoundError) Is(target error) bool {
	return target == ErrItemNotFound
}

// InsufficientStockError carries the item name and stock left for display.
type InsufficientStockError struct {
	ItemID    int64
	ItemName  string
	Remaining int
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: %d left", e.ItemName, e.Remaining)
}

func (e InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
