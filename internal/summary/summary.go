// Package summary computes the derived read-only views: totals, on-hand
// value, low-stock alerts and the dashboard chart series. Nothing here is
// persisted; every call recomputes from the current item set.
package summary

import (
	"context"

	"github.com/MrJamesThe3rd/stockroom/internal/item"
)

// LowStockThreshold is the fixed quantity below which an item is alerted.
const LowStockThreshold = 5

type Overview struct {
	TotalItems int
	TotalValue int64 // cents
	LowStock   []*item.Item
	Chart      []ChartPoint
}

// ChartPoint is one bar of the dashboard chart: on-hand value per item.
type ChartPoint struct {
	Name  string
	Value int64 // cents
}

// TotalValue sums quantity times active-unit price over all items.
func TotalValue(items []*item.Item) int64 {
	var total int64
	for _, it := range items {
		total += it.Value()
	}

	return total
}

// LowStock returns the items with quantity strictly below the threshold.
func LowStock(items []*item.Item) []*item.Item {
	var low []*item.Item

	for _, it := range items {
		if it.Quantity < LowStockThreshold {
			low = append(low, it)
		}
	}

	return low
}

// Compute builds the full overview from an item snapshot.
func Compute(items []*item.Item) Overview {
	chart := make([]ChartPoint, 0, len(items))
	for _, it := range items {
		chart = append(chart, ChartPoint{Name: it.Name, Value: it.Value()})
	}

	return Overview{
		TotalItems: len(items),
		TotalValue: TotalValue(items),
		LowStock:   LowStock(items),
		Chart:      chart,
	}
}

type ItemLister interface {
	ListItems(ctx context.Context, filter item.ListFilter) ([]*item.Item, error)
}

type Service struct {
	items ItemLister
}

func NewService(items ItemLister) *Service {
	return &Service{items: items}
}

// Overview lists the current items and computes the dashboard view.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	items, err := s.items.ListItems(ctx, item.ListFilter{Sort: item.SortNameAsc})
	if err != nil {
		return Overview{}, err
	}

	return Compute(items), nil
}
