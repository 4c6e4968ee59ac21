package view

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/stockroom/internal/item"
)

const dbTimeout = 5 * time.Second

// FormatMoney formats cents into a two-decimal price string.
func FormatMoney(cents int64) string {
	return item.FormatPrice(cents)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
