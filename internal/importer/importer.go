package importer

import (
	"io"

	"github.com/MrJamesThe3rd/stockroom/internal/importer/sheet"
)

// Format names a supported stock-sheet layout.
type Format string

const (
	FormatSheet Format = "sheet"
)

// Row is one parsed stock-sheet line. Rows for names already in the store
// become restocks; the rest become new items.
type Row = sheet.Row

type Parser interface {
	Parse(r io.Reader) ([]Row, error)
}
