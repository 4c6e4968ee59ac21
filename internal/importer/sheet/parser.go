package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	enc "github.com/MrJamesThe3rd/stockroom/internal/encoding"
	"github.com/MrJamesThe3rd/stockroom/internal/item"
)

// Columns recognized in the header row. Name and Quantity are required;
// the rest default when absent.
const (
	colName     = "name"
	colCategory = "category"
	colQuantity = "quantity"
	colUnit     = "unit"
	colPricePcs = "price pcs"
	colPriceBox = "price box"
	colPriceTub = "price tub"
	colDate     = "date"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// colIndex maps normalized column names to their index in the row.
type colIndex map[string]int

func (p *Parser) Parse(r io.Reader) ([]Row, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx := findHeader(rows)
	if cols == nil {
		return nil, fmt.Errorf("no header row found: expected at least %q and %q columns", colName, colQuantity)
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx+1)
}

// findHeader scans for the first row containing the required columns.
func findHeader(rows [][]string) (colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		if _, ok := cols[colName]; !ok {
			continue
		}

		if _, ok := cols[colQuantity]; !ok {
			continue
		}

		return cols, rowIdx
	}

	return nil, 0
}

func parseRows(cols colIndex, rows [][]string, offset int) ([]Row, error) {
	parsed := make([]Row, 0, len(rows))

	for i, raw := range rows {
		if isEmpty(raw) {
			continue
		}

		row, err := parseRow(cols, raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", offset+i+1, err)
		}

		parsed = append(parsed, row)
	}

	return parsed, nil
}

func parseRow(cols colIndex, raw []string) (Row, error) {
	row := Row{
		Name:     field(cols, raw, colName),
		Category: field(cols, raw, colCategory),
		Unit:     item.UnitPcs,
		Date:     time.Now(),
	}

	if row.Name == "" {
		return Row{}, fmt.Errorf("missing name")
	}

	qty, err := strconv.Atoi(field(cols, raw, colQuantity))
	if err != nil {
		return Row{}, fmt.Errorf("parsing quantity: %w", err)
	}

	row.Quantity = qty

	if u := field(cols, raw, colUnit); u != "" {
		unit := item.Unit(strings.ToLower(u))
		if !unit.Valid() {
			return Row{}, fmt.Errorf("unknown unit %q", u)
		}

		row.Unit = unit
	}

	if row.Prices.Pcs, err = item.ParsePrice(field(cols, raw, colPricePcs)); err != nil {
		return Row{}, err
	}

	if row.Prices.Box, err = item.ParsePrice(field(cols, raw, colPriceBox)); err != nil {
		return Row{}, err
	}

	if row.Prices.Tub, err = item.ParsePrice(field(cols, raw, colPriceTub)); err != nil {
		return Row{}, err
	}

	if d := field(cols, raw, colDate); d != "" {
		date, err := time.Parse(time.DateOnly, d)
		if err != nil {
			return Row{}, fmt.Errorf("parsing date: %w", err)
		}

		row.Date = date
	}

	return row, nil
}

func field(cols colIndex, raw []string, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(raw) {
		return ""
	}

	return strings.TrimSpace(raw[idx])
}

func isEmpty(raw []string) bool {
	for _, cell := range raw {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
