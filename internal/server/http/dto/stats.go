package dto

import (
	"time"

	"github.com/polkiloo/homekitchen/internal/domain/model"
)

// StatsResponse holds order counters and revenue.
type StatsResponse struct {
	TotalOrders     int     `json:"total_orders"`
	NewOrders       int     `json:"new_orders"`
	ConfirmedOrders int     `json:"confirmed_orders"`
	CompletedOrders int     `json:"completed_orders"`
	CancelledOrders int     `json:"cancelled_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
}

// NewStatsResponse converts domain stats.
func NewStatsResponse(s model.Stats) StatsResponse {
	return StatsResponse{
		TotalOrders:     s.TotalOrders,
		NewOrders:       s.NewOrders,
		ConfirmedOrders: s.ConfirmedOrders,
		CompletedOrders: s.CompletedOrders,
		CancelledOrders: s.CancelledOrders,
		TotalRevenue:    s.TotalRevenue.InexactFloat64(),
	}
}

// HealthResponse is the reply of GET /api/health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    *float64  `json:"uptime,omitempty"`
}
