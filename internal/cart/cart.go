// Package cart keeps a client-side order draft before it is submitted.
package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/homekitchen/internal/domain/model"
)

var (
	// ErrEmptyCart is returned on checkout without items.
	ErrEmptyCart = errors.New("请先添加商品到购物车")
	// ErrIncompleteCustomer is returned when contact fields are missing.
	ErrIncompleteCustomer = errors.New("请填写完整的订单信息")
)

// Line is a single cart entry.
type Line struct {
	ItemID   int64
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// Subtotal returns price multiplied by quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Summary is what the UI shows after each mutation.
type Summary struct {
	Count int
	Total decimal.Decimal
}

// Customer holds contact details entered at checkout.
type Customer struct {
	Name    string
	Phone   string
	Address string
	Notes   string
}

// Submitter sends a finished order to the service.
type Submitter interface {
	SubmitOrder(ctx context.Context, order model.NewOrder) (*model.OrderReceipt, error)
}

// Cart keeps lines in the order they were first added. The zero value is an empty cart.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts one unit of item into the cart.
func (c *Cart) Add(item model.MenuItem) Summary {
	if i := c.index(item.ID); i >= 0 {
		c.lines[i].Quantity++
		return c.Summary()
	}
	c.lines = append(c.lines, Line{ItemID: item.ID, Name: item.Name, Price: item.Price, Quantity: 1})
	return c.Summary()
}

// Remove drops the item regardless of quantity.
func (c *Cart) Remove(itemID int64) Summary {
	if i := c.index(itemID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
	return c.Summary()
}

// ChangeQuantity adjusts quantity by delta and removes the line when it drops to zero.
// Unknown items are ignored.
func (c *Cart) ChangeQuantity(itemID int64, delta int) Summary {
	i := c.index(itemID)
	if i < 0 {
		return c.Summary()
	}
	c.lines[i].Quantity += delta
	if c.lines[i].Quantity <= 0 {
		return c.Remove(itemID)
	}
	return c.Summary()
}

// Summary returns item count and total price.
func (c *Cart) Summary() Summary {
	s := Summary{Total: decimal.Zero}
	for _, line := range c.lines {
		s.Count += line.Quantity
		s.Total = s.Total.Add(line.Subtotal())
	}
	return s
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Lines packages the cart as order line requests.
func (c *Cart) Lines() []model.LineRequest {
	out := make([]model.LineRequest, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, model.LineRequest{ItemID: line.ItemID, Quantity: line.Quantity})
	}
	return out
}

// IsEmpty reports whether there is nothing to order.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Reset empties the cart.
func (c *Cart) Reset() {
	c.lines = nil
}

// Checkout submits the cart and clears it on success. The cart is kept when submission fails.
func (c *Cart) Checkout(ctx context.Context, s Submitter, customer Customer) (*model.OrderReceipt, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	order := model.NewOrder{
		CustomerName:  strings.TrimSpace(customer.Name),
		CustomerPhone: strings.TrimSpace(customer.Phone),
		Address:       strings.TrimSpace(customer.Address),
		Notes:         strings.TrimSpace(customer.Notes),
		Lines:         c.Lines(),
	}
	if order.CustomerName == "" || order.CustomerPhone == "" || order.Address == "" {
		return nil, ErrIncompleteCustomer
	}

	receipt, err := s.SubmitOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("提交订单失败: %w", err)
	}

	c.Reset()
	return receipt, nil
}

func (c *Cart) index(itemID int64) int {
	for i, line := range c.lines {
		if line.ItemID == itemID {
			return i
		}
	}
	return -1
}
