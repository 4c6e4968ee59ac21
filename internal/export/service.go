// Package export renders the movement log as downloadable CSV and PDF
// reports. Both are pure formatting over the log; nothing is written back.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/MrJamesThe3rd/stockroom/internal/item"
	"github.com/MrJamesThe3rd/stockroom/internal/report"
)

var columns = []string{"Name", "Action", "Quantity", "Date", "Value"}

type EntryLister interface {
	ListEntries(ctx context.Context, order report.Order) ([]*report.Entry, error)
}

type Service struct {
	entries EntryLister
}

func NewService(entries EntryLister) *Service {
	return &Service{entries: entries}
}

// CSV serializes the movement log, one row per entry.
func (s *Service) CSV(ctx context.Context, order report.Order) ([]byte, error) {
	entries, err := s.entries.ListEntries(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, entries); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteCSV writes Name,Action,Quantity,Date,Value rows. Value is the
// computed line value (quantity delta times unit price) with two decimals.
func WriteCSV(w io.Writer, entries []*report.Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, e := range entries {
		row := []string{
			e.ItemName,
			string(e.Action),
			strconv.Itoa(e.QuantityDelta),
			e.Date.Format(time.DateOnly),
			item.FormatPrice(e.LineValue()),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// PDF renders the movement log as a one-table report.
func (s *Service) PDF(ctx context.Context, order report.Order) ([]byte, error) {
	entries, err := s.entries.ListEntries(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	var buf bytes.Buffer
	if err := WritePDF(&buf, entries); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func WritePDF(w io.Writer, entries []*report.Entry) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Inventory Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Inventory Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generated "+time.Now().Format(time.DateOnly), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	widths := []float64{60, 30, 25, 30, 35}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(238, 238, 238)

	for i, col := range columns {
		pdf.CellFormat(widths[i], 8, col, "1", 0, "L", true, 0, "")
	}

	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)

	for _, e := range entries {
		cells := []string{
			e.ItemName,
			string(e.Action),
			strconv.Itoa(e.QuantityDelta),
			e.Date.Format(time.DateOnly),
			item.FormatPrice(e.LineValue()),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}

		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}

	return nil
}
