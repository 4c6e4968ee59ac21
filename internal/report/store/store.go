// Package store is the read side of the movement log. Appends happen only
// through the inventory store so they share the item write's transaction.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/stockroom/internal/item"
	"github.com/MrJamesThe3rd/stockroom/internal/report"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListEntries(ctx context.Context, order report.Order) ([]*report.Entry, error) {
	dir := "DESC"
	if order == report.OrderOldestFirst {
		dir = "ASC"
	}

	query := `
		SELECT id, item_name, action, quantity_delta, unit_price,
		       price_pcs, price_box, price_tub, date, recorded_at
		FROM report_entries
		ORDER BY recorded_at ` + dir

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing report entries: %w", err)
	}
	defer rows.Close()

	var entries []*report.Entry

	for rows.Next() {
		var e report.Entry

		var actionStr string

		var prices item.PriceSet

		if err := rows.Scan(
			&e.ID, &e.ItemName, &actionStr, &e.QuantityDelta, &e.UnitPrice,
			&prices.Pcs, &prices.Box, &prices.Tub, &e.Date, &e.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning report entry: %w", err)
		}

		e.Action = report.Action(actionStr)
		e.Prices = prices

		entries = append(entries, &e)
	}

	return entries, rows.Err()
}
