package dto

import (
	"time"

	"github.com/polkiloo/homekitchen/internal/domain/model"
)

// OrderItemRequest references a menu item and quantity.
type OrderItemRequest struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"qty"`
}

// SubmitOrderRequest is the payload of POST /api/order.
type SubmitOrderRequest struct {
	CustomerName  string             `json:"customer_name" binding:"required"`
	CustomerPhone string             `json:"customer_phone" binding:"required"`
	Address       string             `json:"address" binding:"required"`
	Notes         string             `json:"notes"`
	OrderItems    []OrderItemRequest `json:"order_items" binding:"required"`
}

// ToModel converts request to domain input.
func (r SubmitOrderRequest) ToModel() model.NewOrder {
	order := model.NewOrder{
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Address:       r.Address,
		Notes:         r.Notes,
	}
	if r.OrderItems != nil {
		order.Lines = make([]model.LineRequest, 0, len(r.OrderItems))
		for _, item := range r.OrderItems {
			order.Lines = append(order.Lines, model.LineRequest{ItemID: item.ID, Quantity: item.Quantity})
		}
	}
	return order
}

// SubmitOrderResponse carries identifier and total of a placed order.
type SubmitOrderResponse struct {
	OrderID     int64   `json:"orderId"`
	TotalAmount float64 `json:"totalAmount"`
}

// UpdateStatusRequest is the payload of PUT /api/order/:id.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// OrderLineResponse is a stored order line.
type OrderLineResponse struct {
	ID       int64   `json:"id"`
	Quantity int     `json:"qty"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
}

// OrderResponse describes an order in listings.
type OrderResponse struct {
	ID            int64               `json:"id"`
	CustomerName  string              `json:"customer_name"`
	CustomerPhone string              `json:"customer_phone"`
	Address       string              `json:"address"`
	OrderItems    []OrderLineResponse `json:"order_items"`
	TotalAmount   float64             `json:"total_amount"`
	Status        string              `json:"status"`
	Notes         string              `json:"notes"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// NewOrderResponse converts domain order.
func NewOrderResponse(order model.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLineResponse{
			ID:       line.ItemID,
			Quantity: line.Quantity,
			Name:     line.Name,
			Price:    line.UnitPrice.InexactFloat64(),
		})
	}
	return OrderResponse{
		ID:            order.ID,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		Address:       order.Address,
		OrderItems:    lines,
		TotalAmount:   order.TotalAmount.InexactFloat64(),
		Status:        string(order.Status),
		Notes:         order.Notes,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

// Pagination describes the page returned by order listings.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// OrderListResponse is the reply of GET /api/orders.
type OrderListResponse struct {
	Success    bool            `json:"success"`
	Data       []OrderResponse `json:"data"`
	Pagination Pagination      `json:"pagination"`
}
