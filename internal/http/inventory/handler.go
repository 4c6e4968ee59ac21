package inventory

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/stockroom/internal/inventory"
	"github.com/MrJamesThe3rd/stockroom/internal/item"
	"github.com/MrJamesThe3rd/stockroom/internal/label"
	"github.com/MrJamesThe3rd/stockroom/internal/report"
)

const labelSize = 256

type Handler struct {
	svc *inventory.Service
}

func NewHandler(svc *inventory.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/bulk-adjust", h.bulkAdjust)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/adjust", h.adjust)
	r.Get("/{id}/label", h.label)
}

type pricesDTO struct {
	Pcs int64 `json:"pcs"`
	Box int64 `json:"box"`
	Tub int64 `json:"tub"`
}

type itemResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	Quantity    int       `json:"quantity"`
	Unit        item.Unit `json:"unit"`
	Prices      pricesDTO `json:"prices"`
	Value       int64     `json:"value"`
	CreatedDate string    `json:"created_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResponse(it *item.Item) itemResponse {
	return itemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Category:    it.Category,
		Quantity:    it.Quantity,
		Unit:        it.Unit,
		Prices:      pricesDTO{Pcs: it.Prices.Pcs, Box: it.Prices.Box, Tub: it.Prices.Tub},
		Value:       it.Value(),
		CreatedDate: it.CreatedDate.Format(time.DateOnly),
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

type entryResponse struct {
	ItemName      string        `json:"item_name"`
	Action        report.Action `json:"action"`
	QuantityDelta int           `json:"quantity_delta"`
	UnitPrice     int64         `json:"unit_price"`
	LineValue     int64         `json:"line_value"`
	Date          string        `json:"date"`
}

func toEntryResponse(e *report.Entry) entryResponse {
	return entryResponse{
		ItemName:      e.ItemName,
		Action:        e.Action,
		QuantityDelta: e.QuantityDelta,
		UnitPrice:     e.UnitPrice,
		LineValue:     e.LineValue(),
		Date:          e.Date.Format(time.DateOnly),
	}
}

type itemRequest struct {
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Quantity int       `json:"quantity"`
	Unit     item.Unit `json:"unit"`
	Prices   pricesDTO `json:"prices"`
	Date     string    `json:"date"`
}

func (r itemRequest) prices() item.PriceSet {
	return item.PriceSet{Pcs: r.Prices.Pcs, Box: r.Prices.Box, Tub: r.Prices.Tub}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	it, err := h.svc.AddItem(r.Context(), inventory.ItemParams{
		Name:        req.Name,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Prices:      req.prices(),
		CreatedDate: date,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(it)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := item.ListFilter{
		Search: r.URL.Query().Get("search"),
		Sort:   item.ParseSort(r.URL.Query().Get("sort")),
	}

	items, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]itemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, toResponse(it))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	it, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(it)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	it, err := h.svc.EditItem(r.Context(), id, inventory.EditParams{
		Name:        req.Name,
		Category:    req.Category,
		Unit:        req.Unit,
		Prices:      req.prices(),
		CreatedDate: date,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(it)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	confirmed := r.URL.Query().Get("confirm") == "true"

	entry, err := h.svc.DeleteItem(r.Context(), id, confirmed)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toEntryResponse(entry)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type adjustRequest struct {
	Direction inventory.Direction `json:"direction"`
	Amount    int                 `json:"amount"`
	Confirm   bool                `json:"confirm"`
}

type adjustResponse struct {
	Removed bool          `json:"removed"`
	Item    *itemResponse `json:"item,omitempty"`
	Entry   entryResponse `json:"entry"`
}

func toAdjustResponse(res *inventory.AdjustResult) adjustResponse {
	resp := adjustResponse{
		Removed: res.Removed,
		Entry:   toEntryResponse(res.Entry),
	}

	if res.Item != nil {
		ir := toResponse(res.Item)
		resp.Item = &ir
	}

	return resp
}

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.svc.AdjustStock(r.Context(), inventory.AdjustParams{
		ID:        id,
		Direction: req.Direction,
		Amount:    req.Amount,
		Confirmed: req.Confirm,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toAdjustResponse(res)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type bulkLineDTO struct {
	ID        uuid.UUID           `json:"id"`
	Direction inventory.Direction `json:"direction"`
	Amount    int                 `json:"amount"`
}

type bulkRequest struct {
	Lines []bulkLineDTO `json:"lines"`
}

type bulkLineResult struct {
	ID      uuid.UUID `json:"id"`
	Error   string    `json:"error,omitempty"`
	Removed bool      `json:"removed,omitempty"`
}

type bulkResponse struct {
	Applied int              `json:"applied"`
	Failed  int              `json:"failed"`
	Results []bulkLineResult `json:"results"`
}

func (h *Handler) bulkAdjust(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	lines := make([]inventory.BulkLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, inventory.BulkLine{ID: l.ID, Direction: l.Direction, Amount: l.Amount})
	}

	results := h.svc.BulkAdjust(r.Context(), lines)

	resp := bulkResponse{Results: make([]bulkLineResult, 0, len(results))}

	for _, res := range results {
		lr := bulkLineResult{ID: res.Line.ID}

		if res.Err != nil {
			lr.Error = res.Err.Error()
			resp.Failed++
		} else {
			lr.Removed = res.Result.Removed
			resp.Applied++
		}

		resp.Results = append(resp.Results, lr)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) label(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	it, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	png, err := label.PNG(it, labelSize)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")

	if _, err := w.Write(png); err != nil {
		slog.Error("failed to write label", "error", err)
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	return time.Parse(time.DateOnly, s)
}

func writeError(w http.ResponseWriter, err error) {
	var vErr *item.ValidationError

	switch {
	case errors.As(err, &vErr):
		http.Error(w, vErr.Error(), http.StatusBadRequest)
	case errors.Is(err, inventory.ErrInvalidAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, item.ErrNotFound):
		http.Error(w, "item not found", http.StatusNotFound)
	case errors.Is(err, inventory.ErrConfirmationRequired):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
