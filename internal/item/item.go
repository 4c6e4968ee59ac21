package item

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Unit selects which price of an item is the active one.
type Unit string

const (
	UnitPcs Unit = "pcs"
	UnitBox Unit = "box"
	UnitTub Unit = "tub"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitPcs, UnitBox, UnitTub:
		return true
	}

	return false
}

// PriceSet holds the price in cents for every unit type.
type PriceSet struct {
	Pcs int64
	Box int64
	Tub int64
}

// For returns the price in cents for the given unit.
func (p PriceSet) For(u Unit) int64 {
	switch u {
	case UnitBox:
		return p.Box
	case UnitTub:
		return p.Tub
	default:
		return p.Pcs
	}
}

func (p PriceSet) AllNonPositive() bool {
	return p.Pcs <= 0 && p.Box <= 0 && p.Tub <= 0
}

// Item represents one stock-keeping unit.
type Item struct {
	ID          uuid.UUID
	Name        string
	Category    string
	Quantity    int
	Unit        Unit
	Prices      PriceSet
	CreatedDate time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ActivePrice is the price in cents of the item's currently selected unit.
func (i *Item) ActivePrice() int64 {
	return i.Prices.For(i.Unit)
}

// Value is the on-hand value in cents: quantity times active price.
func (i *Item) Value() int64 {
	return int64(i.Quantity) * i.ActivePrice()
}

// ErrNotFound is returned when an id does not resolve to an item.
var ErrNotFound = errors.New("item not found")

// ValidationError reports a rejected field on save.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the field rules shared by add and edit.
func Validate(name string, createdDate time.Time, unit Unit, prices PriceSet) error {
	if name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	if createdDate.IsZero() {
		return &ValidationError{Field: "date", Reason: "must not be empty"}
	}

	if !unit.Valid() {
		return &ValidationError{Field: "unit", Reason: fmt.Sprintf("unknown unit %q", unit)}
	}

	if prices.AllNonPositive() {
		return &ValidationError{Field: "prices", Reason: "at least one unit price must be positive"}
	}

	if prices.For(unit) <= 0 {
		return &ValidationError{Field: "prices", Reason: fmt.Sprintf("price for active unit %s must be positive", unit)}
	}

	return nil
}

// ParsePrice converts a decimal price string like "12.50" into cents.
func ParsePrice(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parsing price %q: %w", s, err)
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// FormatPrice renders cents as a price string with two decimals.
func FormatPrice(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}

// Sort is a read-time list ordering. It is never persisted.
type Sort string

const (
	SortNameAsc      Sort = "name_asc"
	SortNameDesc     Sort = "name_desc"
	SortQuantityAsc  Sort = "quantity_asc"
	SortQuantityDesc Sort = "quantity_desc"
	SortDateNewest   Sort = "date_newest"
	SortDateOldest   Sort = "date_oldest"
)

// ParseSort maps a caller-supplied sort name to a known ordering,
// falling back to name ascending.
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortNameDesc, SortQuantityAsc, SortQuantityDesc, SortDateNewest, SortDateOldest:
		return Sort(s)
	default:
		return SortNameAsc
	}
}

// ListFilter narrows and orders a listing.
type ListFilter struct {
	Search string
	Sort   Sort
}
