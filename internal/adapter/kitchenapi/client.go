package kitchenapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/homekitchen/internal/domain/model"
)

// APIError carries the status and message returned by the service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("kitchen api: status %d", e.Status)
	}
	return fmt.Sprintf("kitchen api: status %d: %s", e.Status, e.Message)
}

// Client exposes operations of the ordering API.
type Client interface {
	Menu(ctx context.Context) ([]model.MenuItem, error)
	SubmitOrder(ctx context.Context, order model.NewOrder) (*model.OrderReceipt, error)
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type menuItem struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Stock       int             `json:"stock"`
	IsAvailable bool            `json:"is_available"`
}

type orderLine struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"qty"`
}

type orderRequest struct {
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	Address       string      `json:"address"`
	Notes         string      `json:"notes,omitempty"`
	Items         []orderLine `json:"order_items"`
}

type orderReceipt struct {
	OrderID     int64           `json:"orderId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// NewHTTPClient creates HTTP client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse kitchen api url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("kitchen api url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Menu fetches available menu items.
func (c *HTTPClient) Menu(ctx context.Context) ([]model.MenuItem, error) {
	var items []menuItem
	if err := c.do(ctx, http.MethodGet, "/api/menu", nil, &items); err != nil {
		return nil, err
	}
	out := make([]model.MenuItem, 0, len(items))
	for _, item := range items {
		out = append(out, model.MenuItem{
			ID:          item.ID,
			Name:        item.Name,
			Price:       item.Price,
			Description: item.Description,
			Stock:       item.Stock,
			IsAvailable: item.IsAvailable,
		})
	}
	return out, nil
}

// SubmitOrder posts the order and returns its receipt.
func (c *HTTPClient) SubmitOrder(ctx context.Context, order model.NewOrder) (*model.OrderReceipt, error) {
	req := orderRequest{
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		Address:       order.Address,
		Notes:         order.Notes,
		Items:         make([]orderLine, 0, len(order.Lines)),
	}
	for _, line := range order.Lines {
		req.Items = append(req.Items, orderLine{ID: line.ItemID, Quantity: line.Quantity})
	}

	var receipt orderReceipt
	if err := c.do(ctx, http.MethodPost, "/api/order", req, &receipt); err != nil {
		return nil, err
	}
	return &model.OrderReceipt{OrderID: receipt.OrderID, TotalAmount: receipt.TotalAmount}, nil
}

func (c *HTTPClient) do(ctx context.Context, method, route string, payload, out any) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, route)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < http.StatusBadRequest {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		c.logger.Warn("kitchen api request failed",
			slog.String("method", method),
			slog.String("path", route),
			slog.Int("status", resp.StatusCode))
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
