package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/homekitchen/internal/domain/model"
)

const menuColumns = `id, name, price, description, stock, is_available`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMenuItem(row rowScanner) (model.MenuItem, error) {
	var (
		item  model.MenuItem
		stock int32
	)
	if err := row.Scan(&item.ID, &item.Name, &item.Price, &item.Description, &stock, &item.IsAvailable); err != nil {
		return model.MenuItem{}, err
	}
	item.Stock = int(stock)
	return item, nil
}

func collectMenuItems(rows pgx.Rows) ([]model.MenuItem, error) {
	defer rows.Close()

	items := []model.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuRepository) ListAvailable(ctx context.Context) ([]model.MenuItem, error) {
	const query = `SELECT ` + menuColumns + ` FROM menu_items WHERE is_available ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectMenuItems(rows)
}
