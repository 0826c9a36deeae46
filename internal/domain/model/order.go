package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes order lifecycle stage.
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "新订单"
	OrderStatusConfirmed OrderStatus = "已确认"
	OrderStatusCompleted OrderStatus = "已完成"
	OrderStatusCancelled OrderStatus = "已取消"
)

var orderStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusConfirmed,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// OrderStatuses returns the allowed statuses in lifecycle order.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(orderStatuses))
	copy(out, orderStatuses)
	return out
}

// Valid reports whether status belongs to the fixed enumeration.
func (s OrderStatus) Valid() bool {
	for _, known := range orderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// LineRequest is a proposed (item, quantity) pair of a submission.
type LineRequest struct {
	ItemID   int64
	Quantity int
}

// OrderLine is a priced line stored with the order.
type OrderLine struct {
	ItemID    int64
	Quantity  int
	Name      string
	UnitPrice decimal.Decimal
}

// Subtotal returns unit price times quantity.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// NewOrder carries customer input for order submission.
type NewOrder struct {
	CustomerName  string
	CustomerPhone string
	Address       string
	Notes         string
	Lines         []LineRequest
}

// Order describes a persisted customer order.
type Order struct {
	ID            int64
	CustomerName  string
	CustomerPhone string
	Address       string
	Lines         []OrderLine
	TotalAmount   decimal.Decimal
	Status        OrderStatus
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderFilter selects a page of orders.
type OrderFilter struct {
	Status OrderStatus
	Page   int
	Limit  int
}

// Offset returns number of rows to skip. It saturates at math.MaxInt.
func (f OrderFilter) Offset() int {
	if f.Page <= 1 || f.Limit <= 0 {
		return 0
	}
	if f.Page-1 > math.MaxInt/f.Limit {
		return math.MaxInt
	}
	return (f.Page - 1) * f.Limit
}

// OrderPage is a paginated slice of orders.
type OrderPage struct {
	Orders []Order
	Total  int
	Page   int
	Limit  int
}

// Pages returns ceil(total / limit).
func (p OrderPage) Pages() int {
	if p.Limit <= 0 {
		return 0
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

// OrderReceipt is what a client gets back after a successful submission.
type OrderReceipt struct {
	OrderID     int64
	TotalAmount decimal.Decimal
}
