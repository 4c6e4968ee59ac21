// Package inventory is the rules layer for stock mutations. Every operation
// that changes an item pairs the item write with exactly one movement log
// append, committed as a unit.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/stockroom/internal/item"
	"github.com/MrJamesThe3rd/stockroom/internal/report"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=inventory
type Repository interface {
	GetItem(ctx context.Context, id uuid.UUID) (*item.Item, error)
	ListItems(ctx context.Context, filter item.ListFilter) ([]*item.Item, error)

	Begin(ctx context.Context) (Tx, error)
}

// Tx scopes a paired item-write and log-append to one database transaction.
type Tx interface {
	CreateItem(ctx context.Context, it *item.Item) error
	UpdateItem(ctx context.Context, it *item.Item) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	AppendEntry(ctx context.Context, entry *report.Entry) error
	Commit() error
	Rollback() error
}

// Event describes a committed mutation, pushed to live subscribers.
type Event struct {
	Action   report.Action `json:"action"`
	ItemName string        `json:"item_name"`
}

// Notifier receives an Event after every successful commit.
type Notifier interface {
	Notify(ev Event)
}

var (
	ErrInvalidAmount        = errors.New("adjustment amount must be positive")
	ErrInsufficientStock    = errors.New("sold amount exceeds on-hand stock")
	ErrConfirmationRequired = errors.New("confirmation required: operation removes all remaining stock")
)

type Service struct {
	repo     Repository
	notifier Notifier
}

// NewService creates the mutation engine. notifier may be nil.
func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// ItemParams carries the full field set for creating an item.
type ItemParams struct {
	Name        string
	Category    string
	Quantity    int
	Unit        item.Unit
	Prices      item.PriceSet
	CreatedDate time.Time
}

// EditParams carries the mutable descriptive fields. Quantity is deliberately
// absent: direct edits never change stock counts, so the movement log stays
// the only quantity channel after creation. Confirm with stakeholders before
// relaxing this.
type EditParams struct {
	Name        string
	Category    string
	Unit        item.Unit
	Prices      item.PriceSet
	CreatedDate time.Time
}

// AddItem validates the fields, creates the item and appends one NEW_ITEM
// entry carrying the initial quantity.
func (s *Service) AddItem(ctx context.Context, params ItemParams) (*item.Item, error) {
	if err := item.Validate(params.Name, params.CreatedDate, params.Unit, params.Prices); err != nil {
		return nil, err
	}

	if params.Quantity <= 0 {
		return nil, &item.ValidationError{Field: "quantity", Reason: "must be positive"}
	}

	it := &item.Item{
		Name:        params.Name,
		Category:    params.Category,
		Quantity:    params.Quantity,
		Unit:        params.Unit,
		Prices:      params.Prices,
		CreatedDate: params.CreatedDate,
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin add: %w", err)
	}
	defer tx.Rollback()

	if err := tx.CreateItem(ctx, it); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	entry := &report.Entry{
		ItemName:      it.Name,
		Action:        report.ActionNewItem,
		QuantityDelta: it.Quantity,
		UnitPrice:     it.ActivePrice(),
		Prices:        it.Prices,
		Date:          it.CreatedDate,
	}
	if err := tx.AppendEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("append entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit add: %w", err)
	}

	s.notify(Event{Action: report.ActionNewItem, ItemName: it.Name})

	return it, nil
}

// EditItem overwrites the descriptive and price fields of an existing item.
// Edits are not inventory-affecting: no log entry is appended.
func (s *Service) EditItem(ctx context.Context, id uuid.UUID, params EditParams) (*item.Item, error) {
	if err := item.Validate(params.Name, params.CreatedDate, params.Unit, params.Prices); err != nil {
		return nil, err
	}

	it, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	it.Name = params.Name
	it.Category = params.Category
	it.Unit = params.Unit
	it.Prices = params.Prices
	it.CreatedDate = params.CreatedDate

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin edit: %w", err)
	}
	defer tx.Rollback()

	if err := tx.UpdateItem(ctx, it); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit edit: %w", err)
	}

	return it, nil
}

// Direction classifies a stock adjustment.
type Direction string

const (
	DirectionRestock Direction = "RESTOCK"
	DirectionSold    Direction = "SOLD"
)

func (d Direction) Valid() bool {
	return d == DirectionRestock || d == DirectionSold
}

type AdjustParams struct {
	ID        uuid.UUID
	Direction Direction
	Amount    int

	// Confirmed acknowledges a sale that consumes all remaining stock and
	// removes the item.
	Confirmed bool
}

type AdjustResult struct {
	// Item is the item after the adjustment; nil when it was removed.
	Item    *item.Item
	Removed bool
	Entry   *report.Entry
}

// AdjustStock applies a single restock or sale. A sale of at least the
// remaining quantity is terminal: it logs the clamped remaining amount and
// deletes the item, and requires Confirmed.
func (s *Service) AdjustStock(ctx context.Context, params AdjustParams) (*AdjustResult, error) {
	if params.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if !params.Direction.Valid() {
		return nil, fmt.Errorf("unknown direction %q", params.Direction)
	}

	it, err := s.repo.GetItem(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	if params.Direction == DirectionSold && params.Amount >= it.Quantity && !params.Confirmed {
		return nil, ErrConfirmationRequired
	}

	return s.adjust(ctx, it, params.Direction, params.Amount)
}

// adjust assumes validation and confirmation gates have passed.
func (s *Service) adjust(ctx context.Context, it *item.Item, dir Direction, amount int) (*AdjustResult, error) {
	entry := &report.Entry{
		ItemName:  it.Name,
		UnitPrice: it.ActivePrice(),
		Prices:    it.Prices,
		Date:      time.Now(),
	}

	terminal := false

	switch dir {
	case DirectionRestock:
		it.Quantity += amount
		entry.Action = report.ActionRestock
		entry.QuantityDelta = amount
	case DirectionSold:
		entry.Action = report.ActionSold
		if amount >= it.Quantity {
			// Excess beyond on-hand stock is clamped, never logged.
			terminal = true
			entry.QuantityDelta = it.Quantity
			it.Quantity = 0
		} else {
			it.Quantity -= amount
			entry.QuantityDelta = amount
		}
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin adjust: %w", err)
	}
	defer tx.Rollback()

	if terminal {
		if err := tx.DeleteItem(ctx, it.ID); err != nil {
			return nil, fmt.Errorf("delete item: %w", err)
		}
	} else {
		if err := tx.UpdateItem(ctx, it); err != nil {
			return nil, fmt.Errorf("update item: %w", err)
		}
	}

	if err := tx.AppendEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("append entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit adjust: %w", err)
	}

	s.notify(Event{Action: entry.Action, ItemName: it.Name})

	result := &AdjustResult{Removed: terminal, Entry: entry}
	if !terminal {
		result.Item = it
	}

	return result, nil
}

// BulkLine is one independent adjustment in a bulk request.
type BulkLine struct {
	ID        uuid.UUID
	Direction Direction
	Amount    int
}

// BulkResult pairs a line with its outcome. Err is set when that line was
// rejected; other lines are unaffected.
type BulkResult struct {
	Line   BulkLine
	Result *AdjustResult
	Err    error
}

// BulkAdjust applies each line as its own transaction. There is no atomicity
// across lines: a failed line is reported in its result and the rest proceed.
// A sold amount exceeding on-hand stock fails that line with
// ErrInsufficientStock; an amount exactly equal to on-hand stock performs the
// terminal removal.
func (s *Service) BulkAdjust(ctx context.Context, lines []BulkLine) []BulkResult {
	results := make([]BulkResult, 0, len(lines))

	for _, line := range lines {
		results = append(results, BulkResult{Line: line, Result: nil, Err: nil})
		res := &results[len(results)-1]

		if line.Amount <= 0 {
			res.Err = ErrInvalidAmount
			continue
		}

		if !line.Direction.Valid() {
			res.Err = fmt.Errorf("unknown direction %q", line.Direction)
			continue
		}

		it, err := s.repo.GetItem(ctx, line.ID)
		if err != nil {
			res.Err = err
			continue
		}

		if line.Direction == DirectionSold && line.Amount > it.Quantity {
			res.Err = ErrInsufficientStock
			continue
		}

		res.Result, res.Err = s.adjust(ctx, it, line.Direction, line.Amount)
	}

	return results
}

// DeleteItem explicitly removes an item, logging a DELETED entry with the
// full quantity at time of deletion. The caller must confirm.
func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID, confirmed bool) (*report.Entry, error) {
	if !confirmed {
		return nil, ErrConfirmationRequired
	}

	it, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	entry := &report.Entry{
		ItemName:      it.Name,
		Action:        report.ActionDeleted,
		QuantityDelta: it.Quantity,
		UnitPrice:     it.ActivePrice(),
		Prices:        it.Prices,
		Date:          time.Now(),
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	if err := tx.DeleteItem(ctx, it.ID); err != nil {
		return nil, fmt.Errorf("delete item: %w", err)
	}

	if err := tx.AppendEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("append entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit delete: %w", err)
	}

	s.notify(Event{Action: report.ActionDeleted, ItemName: it.Name})

	return entry, nil
}

// Get returns one item.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	return s.repo.GetItem(ctx, id)
}

// List returns items matching the filter in the requested order.
func (s *Service) List(ctx context.Context, filter item.ListFilter) ([]*item.Item, error) {
	return s.repo.ListItems(ctx, filter)
}

func (s *Service) notify(ev Event) {
	if s.notifier == nil {
		return
	}

	s.notifier.Notify(ev)
}
