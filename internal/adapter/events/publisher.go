package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/homekitchen/internal/domain/model"
)

// RoutingKeyOrderPlaced is used for every placed order message.
const RoutingKeyOrderPlaced = "order.placed"

const publishTimeout = 5 * time.Second

// Publisher announces order events to the kitchen.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, order *model.Order) error
	Close() error
}

type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// AMQPPublisher publishes JSON order messages to a topic exchange.
type AMQPPublisher struct {
	ch       channel
	conn     *amqp091.Connection
	exchange string
	logger   *slog.Logger
	now      func() time.Time
}

type orderLineMessage struct {
	ItemID    int64           `json:"item_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type orderPlacedMessage struct {
	OrderID       int64              `json:"order_id"`
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	Address       string             `json:"address"`
	Notes         string             `json:"notes,omitempty"`
	Items         []orderLineMessage `json:"items"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
}

// Dial connects to the broker and declares the exchange.
func Dial(url, exchange string, logger *slog.Logger) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}
	p, err := newAMQPPublisher(ch, exchange, logger)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newAMQPPublisher(ch channel, exchange string, logger *slog.Logger) (*AMQPPublisher, error) {
	if err := ch.ExchangeDeclare(exchange, amqp091.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &AMQPPublisher{ch: ch, exchange: exchange, logger: logger, now: time.Now}, nil
}

// PublishOrderPlaced sends a persistent message describing the order.
func (p *AMQPPublisher) PublishOrderPlaced(ctx context.Context, order *model.Order) error {
	if order == nil {
		return errors.New("nil order")
	}

	msg := orderPlacedMessage{
		OrderID:       order.ID,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		Address:       order.Address,
		Notes:         order.Notes,
		Items:         make([]orderLineMessage, 0, len(order.Lines)),
		TotalAmount:   order.TotalAmount,
		Status:        string(order.Status),
		CreatedAt:     order.CreatedAt,
	}
	for _, line := range order.Lines {
		msg.Items = append(msg.Items, orderLineMessage{
			ItemID:    line.ItemID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal order message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(ctx, p.exchange, RoutingKeyOrderPlaced, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    p.now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish order %d: %w", order.ID, err)
	}

	p.logger.Debug("order event published",
		slog.Int64("order_id", order.ID),
		slog.String("exchange", p.exchange),
		slog.Int("size", len(body)))
	return nil
}

// Close releases the channel and connection.
func (p *AMQPPublisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}

// NoopPublisher drops events when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderPlaced(context.Context, *model.Order) error { return nil }

func (NoopPublisher) Close() error { return nil }
