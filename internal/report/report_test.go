package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/stockroom/internal/report"
)

func TestEntry_LineValue(t *testing.T) {
	e := &report.Entry{QuantityDelta: 4, UnitPrice: 1250}
	assert.Equal(t, int64(5000), e.LineValue())
}

func TestParseOrder(t *testing.T) {
	assert.Equal(t, report.OrderOldestFirst, report.ParseOrder("asc"))
	assert.Equal(t, report.OrderNewestFirst, report.ParseOrder("desc"))
	assert.Equal(t, report.OrderNewestFirst, report.ParseOrder(""))
	assert.Equal(t, report.OrderNewestFirst, report.ParseOrder("sideways"))
}
