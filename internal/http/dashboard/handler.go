package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/stockroom/internal/summary"
)

type Handler struct {
	svc *summary.Service
}

func NewHandler(svc *summary.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.overview)
}

type lowStockItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type chartPoint struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type overviewResponse struct {
	TotalItems int            `json:"total_items"`
	TotalValue int64          `json:"total_value"`
	LowStock   []lowStockItem `json:"low_stock"`
	Chart      []chartPoint   `json:"chart"`
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	ov, err := h.svc.Overview(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := overviewResponse{
		TotalItems: ov.TotalItems,
		TotalValue: ov.TotalValue,
		LowStock:   make([]lowStockItem, 0, len(ov.LowStock)),
		Chart:      make([]chartPoint, 0, len(ov.Chart)),
	}

	for _, it := range ov.LowStock {
		resp.LowStock = append(resp.LowStock, lowStockItem{Name: it.Name, Quantity: it.Quantity})
	}

	for _, p := range ov.Chart {
		resp.Chart = append(resp.Chart, chartPoint{Name: p.Name, Value: p.Value})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
