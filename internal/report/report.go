// Package report holds the append-only movement log. Entries are written
// once by the inventory service and never updated or deleted; they outlive
// the items they describe.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/stockroom/internal/item"
)

// Action classifies a movement log entry.
type Action string

const (
	ActionNewItem Action = "NEW_ITEM"
	ActionRestock Action = "RESTOCK"
	ActionSold    Action = "SOLD"
	ActionDeleted Action = "DELETED"
)

// Entry is one immutable audit record.
type Entry struct {
	ID       uuid.UUID
	ItemName string
	Action   Action

	// QuantityDelta is the magnitude of the change; the sign is implied
	// by Action.
	QuantityDelta int

	// UnitPrice snapshots the active-unit price in cents at event time.
	UnitPrice int64

	// Prices snapshots the full price map at event time.
	Prices item.PriceSet

	// Date is the calendar date of the event.
	Date time.Time

	// RecordedAt is server-assigned on append and orders history.
	RecordedAt time.Time
}

// LineValue is the computed value of the entry in cents. It is derived on
// read and never stored.
func (e *Entry) LineValue() int64 {
	return int64(e.QuantityDelta) * e.UnitPrice
}

// Order is the history listing direction.
type Order string

const (
	OrderNewestFirst Order = "desc"
	OrderOldestFirst Order = "asc"
)

// ParseOrder maps a caller-supplied order to a known one, defaulting to
// newest first.
func ParseOrder(s string) Order {
	if Order(s) == OrderOldestFirst {
		return OrderOldestFirst
	}

	return OrderNewestFirst
}
