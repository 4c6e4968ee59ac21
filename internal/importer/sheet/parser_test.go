package sheet_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/stockroom/internal/importer/sheet"
	"github.com/MrJamesThe3rd/stockroom/internal/item"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_Basic(t *testing.T) {
	csv := `Name,Category,Quantity,Unit,Price Pcs,Price Box,Price Tub,Date
Soap,Toiletries,10,pcs,5.00,45.00,,2024-01-01
Shampoo,Toiletries,4,tub,,,120.50,2024-02-15
`

	p := sheet.NewParser()
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Soap", rows[0].Name)
	assert.Equal(t, "Toiletries", rows[0].Category)
	assert.Equal(t, 10, rows[0].Quantity)
	assert.Equal(t, item.UnitPcs, rows[0].Unit)
	assert.Equal(t, int64(500), rows[0].Prices.Pcs)
	assert.Equal(t, int64(4500), rows[0].Prices.Box)
	assert.Equal(t, date(2024, 1, 1), rows[0].Date)

	assert.Equal(t, item.UnitTub, rows[1].Unit)
	assert.Equal(t, int64(12050), rows[1].Prices.Tub)
	assert.Equal(t, date(2024, 2, 15), rows[1].Date)
}

func TestParser_SkipsTitleRows(t *testing.T) {
	csv := `Stock Sheet Export
Generated 2024-03-01,,

Name,Quantity
Soap,10
`

	p := sheet.NewParser()
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Soap", rows[0].Name)
}

func TestParser_DifferentColumnOrder(t *testing.T) {
	csv := `Quantity,Ignored,Name
7,XXX,Soap
`

	p := sheet.NewParser()
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Soap", rows[0].Name)
	assert.Equal(t, 7, rows[0].Quantity)
}

func TestParser_Defaults(t *testing.T) {
	csv := `Name,Quantity
Soap,10
`

	p := sheet.NewParser()
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, item.UnitPcs, rows[0].Unit)
	assert.WithinDuration(t, time.Now(), rows[0].Date, time.Minute)
}

func TestParser_UnknownUnit(t *testing.T) {
	csv := `Name,Quantity,Unit
Soap,10,crate
`

	p := sheet.NewParser()
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unit")
}

func TestParser_BadQuantity(t *testing.T) {
	csv := `Name,Quantity
Soap,lots
`

	p := sheet.NewParser()
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "quantity")
}

func TestParser_MissingName(t *testing.T) {
	csv := `Name,Quantity
,10
`

	p := sheet.NewParser()
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestParser_NoHeader(t *testing.T) {
	p := sheet.NewParser()
	_, err := p.Parse(strings.NewReader("just,some,cells\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "header")
}

func TestParser_SkipsEmptyRows(t *testing.T) {
	csv := `Name,Quantity
Soap,10
,
Shampoo,4
`

	p := sheet.NewParser()
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestParser_Latin1Encoding(t *testing.T) {
	utf8CSV := "Name,Quantity\nCafé Beans,12\n"

	encoder := charmap.Windows1252.NewEncoder()
	latin1Bytes, err := encoder.Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	p := sheet.NewParser()
	rows, err := p.Parse(bytes.NewReader(latin1Bytes))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Café Beans", rows[0].Name)
}
