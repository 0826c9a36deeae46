package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/homekitchen/internal/domain/errors"
	"github.com/polkiloo/homekitchen/internal/domain/model"
	"github.com/polkiloo/homekitchen/internal/domain/repository"
)

const orderColumns = `id, customer_name, customer_phone, address, order_items, total_amount, status, notes, created_at, updated_at`

// storedLine is the JSONB shape of one order line.
type storedLine struct {
	ItemID   int64           `json:"id"`
	Quantity int             `json:"qty"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
}

func encodeLines(lines []model.OrderLine) ([]byte, error) {
	stored := make([]storedLine, 0, len(lines))
	for _, l := range lines {
		stored = append(stored, storedLine{ItemID: l.ItemID, Quantity: l.Quantity, Name: l.Name, Price: l.UnitPrice})
	}
	return json.Marshal(stored)
}

func decodeLines(raw []byte) ([]model.OrderLine, error) {
	var stored []storedLine
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	lines := make([]model.OrderLine, 0, len(stored))
	for _, s := range stored {
		lines = append(lines, model.OrderLine{ItemID: s.ItemID, Quantity: s.Quantity, Name: s.Name, UnitPrice: s.Price})
	}
	return lines, nil
}

func scanOrder(row rowScanner) (model.Order, error) {
	var (
		o      model.Order
		raw    []byte
		status string
	)
	if err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.Address, &raw, &o.TotalAmount, &status, &o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return model.Order{}, err
	}
	lines, err := decodeLines(raw)
	if err != nil {
		return model.Order{}, err
	}
	o.Lines = lines
	o.Status = model.OrderStatus(status)
	return o, nil
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) (*model.OrderPage, error) {
	const countQuery = `SELECT COUNT(*) FROM orders WHERE ($1 = '' OR status = $1)`
	const listQuery = `SELECT ` + orderColumns + ` FROM orders
                       WHERE ($1 = '' OR status = $1)
                       ORDER BY created_at DESC, id DESC
                       LIMIT $2 OFFSET $3`

	status := string(filter.Status)
	var total int64
	if err := r.storage.pool.QueryRow(ctx, countQuery, status).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.storage.pool.Query(ctx, listQuery, status, filter.Limit, filter.Offset())
	if err != nil {
		return nil, err
	}
	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}

	return &model.OrderPage{Orders: orders, Total: int(total), Page: filter.Page, Limit: filter.Limit}, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, string(status), orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) Stats(ctx context.Context) (*model.Stats, error) {
	const query = `SELECT COUNT(*),
                          COUNT(*) FILTER (WHERE status = $1),
                          COUNT(*) FILTER (WHERE status = $2),
                          COUNT(*) FILTER (WHERE status = $3),
                          COUNT(*) FILTER (WHERE status = $4),
                          COALESCE(SUM(total_amount), 0)
                   FROM orders`
	var (
		total, created, confirmed, completed, cancelled int64
		stats                                           model.Stats
	)
	err := r.storage.pool.QueryRow(ctx, query,
		string(model.OrderStatusNew),
		string(model.OrderStatusConfirmed),
		string(model.OrderStatusCompleted),
		string(model.OrderStatusCancelled),
	).Scan(&total, &created, &confirmed, &completed, &cancelled, &stats.TotalRevenue)
	if err != nil {
		return nil, err
	}
	stats.TotalOrders = int(total)
	stats.NewOrders = int(created)
	stats.ConfirmedOrders = int(confirmed)
	stats.CompletedOrders = int(completed)
	stats.CancelledOrders = int(cancelled)
	return &stats, nil
}

// --- UnitOfWork implementation ---

type orderTx struct {
	tx pgx.Tx
}

func (u *unitOfWork) Do(ctx context.Context, fn func(context.Context, repository.OrderTx) error) error {
	return u.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		return fn(ctx, &orderTx{tx: tx})
	})
}

func (t *orderTx) LockMenuItems(ctx context.Context, ids []int64) (model.MenuSnapshot, error) {
	const query = `SELECT ` + menuColumns + ` FROM menu_items
                   WHERE id = ANY($1) AND is_available
                   ORDER BY id
                   FOR UPDATE`
	rows, err := t.tx.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	items, err := collectMenuItems(rows)
	if err != nil {
		return nil, err
	}
	return model.NewMenuSnapshot(items), nil
}

func (t *orderTx) InsertOrder(ctx context.Context, order *model.Order) error {
	raw, err := encodeLines(order.Lines)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}
	const query = `INSERT INTO orders (customer_name, customer_phone, address, order_items, total_amount, status, notes)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING id, created_at, updated_at`
	return t.tx.QueryRow(ctx, query,
		order.CustomerName,
		order.CustomerPhone,
		order.Address,
		raw,
		order.TotalAmount,
		string(order.Status),
		order.Notes,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (t *orderTx) DecrementStock(ctx context.Context, itemID int64, quantity int) error {
	const update = `UPDATE menu_items SET stock = stock - $1 WHERE id = $2 AND stock >= $1`
	tag, err := t.tx.Exec(ctx, update, quantity, itemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	const lookup = `SELECT name, stock FROM menu_items WHERE id = $1`
	var (
		name  string
		stock int32
	)
	if err := t.tx.QueryRow(ctx, lookup, itemID).Scan(&name, &stock); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ItemNotFoundError{ItemID: itemID}
		}
		return err
	}
	return domainErrors.InsufficientStockError{ItemID: itemID, ItemName: name, Remaining: int(stock)}
}

// --- SnapshotRepository implementation ---

func (r *snapshotRepository) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	opts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	snapshot := &model.Snapshot{}
	err := r.storage.withinTx(ctx, opts, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT NOW()`).Scan(&snapshot.TakenAt); err != nil {
			return err
		}

		menuRows, err := tx.Query(ctx, `SELECT `+menuColumns+` FROM menu_items ORDER BY id`)
		if err != nil {
			return err
		}
		if snapshot.MenuItems, err = collectMenuItems(menuRows); err != nil {
			return err
		}

		orderRows, err := tx.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY id`)
		if err != nil {
			return err
		}
		snapshot.Orders, err = collectOrders(orderRows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}
