package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/stockroom/internal/inventory"
	"github.com/MrJamesThe3rd/stockroom/internal/item"
	"github.com/MrJamesThe3rd/stockroom/internal/report"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectItemColumns = `
	id, name, category, quantity, unit,
	price_pcs, price_box, price_tub,
	created_date, created_at, updated_at
`

func scanItem(s scanner) (*item.Item, error) {
	var it item.Item

	var unitStr string

	if err := s.Scan(
		&it.ID, &it.Name, &it.Category, &it.Quantity, &unitStr,
		&it.Prices.Pcs, &it.Prices.Box, &it.Prices.Tub,
		&it.CreatedDate, &it.CreatedAt, &it.UpdatedAt,
	); err != nil {
		return nil, err
	}

	it.Unit = item.Unit(unitStr)

	return &it, nil
}

func (s *Store) GetItem(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	query := `SELECT ` + selectItemColumns + ` FROM items WHERE id = $1`

	it, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, item.ErrNotFound
		}

		return nil, fmt.Errorf("getting item: %w", err)
	}

	return it, nil
}

func orderClause(sort item.Sort) string {
	switch sort {
	case item.SortNameDesc:
		return "name DESC"
	case item.SortQuantityAsc:
		return "quantity ASC, name ASC"
	case item.SortQuantityDesc:
		return "quantity DESC, name ASC"
	case item.SortDateNewest:
		return "created_date DESC, name ASC"
	case item.SortDateOldest:
		return "created_date ASC, name ASC"
	default:
		return "name ASC"
	}
}

func (s *Store) ListItems(ctx context.Context, filter item.ListFilter) ([]*item.Item, error) {
	query := `SELECT ` + selectItemColumns + ` FROM items`

	var args []any

	if filter.Search != "" {
		query += " WHERE name ILIKE $1"

		args = append(args, "%"+filter.Search+"%")
	}

	query += " ORDER BY " + orderClause(filter.Sort)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []*item.Item

	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}

		items = append(items, it)
	}

	return items, rows.Err()
}

type storeTx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (inventory.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning tx: %w", err)
	}

	return &storeTx{tx: tx}, nil
}

func (t *storeTx) Commit() error   { return t.tx.Commit() }
func (t *storeTx) Rollback() error { return t.tx.Rollback() }

func (t *storeTx) CreateItem(ctx context.Context, it *item.Item) error {
	query := `
		INSERT INTO items (name, category, quantity, unit, price_pcs, price_box, price_tub, created_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		it.Name,
		it.Category,
		it.Quantity,
		string(it.Unit),
		it.Prices.Pcs,
		it.Prices.Box,
		it.Prices.Tub,
		it.CreatedDate,
	).Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating item: %w", err)
	}

	return nil
}

func (t *storeTx) UpdateItem(ctx context.Context, it *item.Item) error {
	query := `
		UPDATE items
		SET name = $1, category = $2, quantity = $3, unit = $4,
		    price_pcs = $5, price_box = $6, price_tub = $7,
		    created_date = $8, updated_at = NOW()
		WHERE id = $9
	`

	res, err := t.tx.ExecContext(ctx, query,
		it.Name,
		it.Category,
		it.Quantity,
		string(it.Unit),
		it.Prices.Pcs,
		it.Prices.Box,
		it.Prices.Tub,
		it.CreatedDate,
		it.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return item.ErrNotFound
	}

	return nil
}

func (t *storeTx) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return item.ErrNotFound
	}

	return nil
}

func (t *storeTx) AppendEntry(ctx context.Context, entry *report.Entry) error {
	query := `
		INSERT INTO report_entries (item_name, action, quantity_delta, unit_price, price_pcs, price_box, price_tub, date, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, recorded_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		entry.ItemName,
		string(entry.Action),
		entry.QuantityDelta,
		entry.UnitPrice,
		entry.Prices.Pcs,
		entry.Prices.Box,
		entry.Prices.Tub,
		entry.Date,
	).Scan(&entry.ID, &entry.RecordedAt)
	if err != nil {
		return fmt.Errorf("appending report entry: %w", err)
	}

	return nil
}
