package item_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/stockroom/internal/item"
)

func TestValidate(t *testing.T) {
	validDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		itemName  string
		date      time.Time
		unit      item.Unit
		prices    item.PriceSet
		wantField string
	}

	tests := []testCase{
		{
			name:     "Valid",
			itemName: "Soap",
			date:     validDate,
			unit:     item.UnitPcs,
			prices:   item.PriceSet{Pcs: 500},
		},
		{
			name:      "EmptyName",
			date:      validDate,
			unit:      item.UnitPcs,
			prices:    item.PriceSet{Pcs: 500},
			wantField: "name",
		},
		{
			name:      "ZeroDate",
			itemName:  "Soap",
			unit:      item.UnitPcs,
			prices:    item.PriceSet{Pcs: 500},
			wantField: "date",
		},
		{
			name:      "UnknownUnit",
			itemName:  "Soap",
			date:      validDate,
			unit:      item.Unit("crate"),
			prices:    item.PriceSet{Pcs: 500},
			wantField: "unit",
		},
		{
			name:      "AllPricesZero",
			itemName:  "Soap",
			date:      validDate,
			unit:      item.UnitPcs,
			wantField: "prices",
		},
		{
			name:      "ActiveUnitPriceZero",
			itemName:  "Soap",
			date:      validDate,
			unit:      item.UnitBox,
			prices:    item.PriceSet{Pcs: 500},
			wantField: "prices",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := item.Validate(tt.itemName, tt.date, tt.unit, tt.prices)

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var vErr *item.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestParsePrice(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}

	tests := []testCase{
		{name: "Empty", input: "", want: 0},
		{name: "Whole", input: "12", want: 1200},
		{name: "TwoDecimals", input: "12.50", want: 1250},
		{name: "SubCentRounds", input: "0.005", want: 1},
		{name: "Garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := item.ParsePrice(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "12.50", item.FormatPrice(1250))
	assert.Equal(t, "0.00", item.FormatPrice(0))
	assert.Equal(t, "100.00", item.FormatPrice(10000))
}

func TestItem_ActivePriceAndValue(t *testing.T) {
	it := &item.Item{
		Quantity: 4,
		Unit:     item.UnitBox,
		Prices:   item.PriceSet{Pcs: 500, Box: 4500, Tub: 12000},
	}

	assert.Equal(t, int64(4500), it.ActivePrice())
	assert.Equal(t, int64(18000), it.Value())
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, item.SortQuantityDesc, item.ParseSort("quantity_desc"))
	assert.Equal(t, item.SortDateOldest, item.ParseSort("date_oldest"))
	assert.Equal(t, item.SortNameAsc, item.ParseSort(""))
	assert.Equal(t, item.SortNameAsc, item.ParseSort("bogus"))
}
