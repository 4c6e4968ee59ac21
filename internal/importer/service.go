package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/stockroom/internal/importer/sheet"
	"github.com/MrJamesThe3rd/stockroom/internal/inventory"
	"github.com/MrJamesThe3rd/stockroom/internal/item"
)

type Service struct {
	sheetParser Parser
}

func NewService() *Service {
	return &Service{
		sheetParser: sheet.NewParser(),
	}
}

func (s *Service) Parse(format Format, r io.Reader) ([]Row, error) {
	switch format {
	case FormatSheet:
		return s.sheetParser.Parse(r)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// RowError ties a failed row to its position in the sheet.
type RowError struct {
	Row int
	Err error
}

type ApplyResult struct {
	Added     int
	Restocked int
	Errors    []RowError
}

// Apply feeds parsed rows into the mutation engine: rows naming an existing
// item restock it, the rest create new items. Rows are independent; a failed
// row is recorded and the rest proceed.
func (s *Service) Apply(ctx context.Context, inv *inventory.Service, rows []Row) ApplyResult {
	var result ApplyResult

	existing, err := inv.List(ctx, item.ListFilter{})
	if err != nil {
		result.Errors = append(result.Errors, RowError{Row: 0, Err: fmt.Errorf("listing items: %w", err)})
		return result
	}

	byName := make(map[string]*item.Item, len(existing))
	for _, it := range existing {
		byName[it.Name] = it
	}

	for i, row := range rows {
		if it, ok := byName[row.Name]; ok {
			_, err := inv.AdjustStock(ctx, inventory.AdjustParams{
				ID:        it.ID,
				Direction: inventory.DirectionRestock,
				Amount:    row.Quantity,
			})
			if err != nil {
				result.Errors = append(result.Errors, RowError{Row: i + 1, Err: err})
				continue
			}

			result.Restocked++

			continue
		}

		created, err := inv.AddItem(ctx, inventory.ItemParams{
			Name:        row.Name,
			Category:    row.Category,
			Quantity:    row.Quantity,
			Unit:        row.Unit,
			Prices:      row.Prices,
			CreatedDate: row.Date,
		})
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: i + 1, Err: err})
			continue
		}

		byName[created.Name] = created
		result.Added++
	}

	return result
}
