package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stats aggregates order counters and revenue.
type Stats struct {
	TotalOrders     int
	NewOrders       int
	ConfirmedOrders int
	CompletedOrders int
	CancelledOrders int
	TotalRevenue    decimal.Decimal
}

// Snapshot is a consistent copy of the store used for backups.
type Snapshot struct {
	TakenAt   time.Time
	MenuItems []MenuItem
	Orders    []Order
}
