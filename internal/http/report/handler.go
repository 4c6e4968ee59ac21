package report

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/stockroom/internal/report"
)

type EntryLister interface {
	ListEntries(ctx context.Context, order report.Order) ([]*report.Entry, error)
}

type Handler struct {
	entries EntryLister
}

func NewHandler(entries EntryLister) *Handler {
	return &Handler{entries: entries}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

type entryResponse struct {
	ItemName      string        `json:"item_name"`
	Action        report.Action `json:"action"`
	QuantityDelta int           `json:"quantity_delta"`
	UnitPrice     int64         `json:"unit_price"`
	LineValue     int64         `json:"line_value"`
	Date          string        `json:"date"`
	RecordedAt    time.Time     `json:"recorded_at"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	order := report.ParseOrder(r.URL.Query().Get("order"))

	entries, err := h.entries.ListEntries(r.Context(), order)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, entryResponse{
			ItemName:      e.ItemName,
			Action:        e.Action,
			QuantityDelta: e.QuantityDelta,
			UnitPrice:     e.UnitPrice,
			LineValue:     e.LineValue(),
			Date:          e.Date.Format(time.DateOnly),
			RecordedAt:    e.RecordedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
