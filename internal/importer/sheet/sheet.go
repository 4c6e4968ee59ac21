// Package sheet parses stock-sheet CSV exports. The header row is discovered
// by matching column names, so leading title or date rows in spreadsheet
// exports are skipped.
package sheet

import (
	"time"

	"github.com/MrJamesThe3rd/stockroom/internal/item"
)

// Row is one parsed stock-sheet line.
type Row struct {
	Name     string
	Category string
	Quantity int
	Unit     item.Unit
	Prices   item.PriceSet
	Date     time.Time
}
