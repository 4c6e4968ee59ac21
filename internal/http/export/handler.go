package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/stockroom/internal/export"
	"github.com/MrJamesThe3rd/stockroom/internal/report"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/csv", h.csv)
	r.Get("/pdf", h.pdf)
}

func (h *Handler) csv(w http.ResponseWriter, r *http.Request) {
	order := report.ParseOrder(r.URL.Query().Get("order"))

	data, err := h.svc.CSV(r.Context(), order)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", attachment("csv"))

	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

func (h *Handler) pdf(w http.ResponseWriter, r *http.Request) {
	order := report.ParseOrder(r.URL.Query().Get("order"))

	data, err := h.svc.PDF(r.Context(), order)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", attachment("pdf"))

	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

func attachment(ext string) string {
	return fmt.Sprintf(`attachment; filename="inventory-report-%s.%s"`, time.Now().Format(time.DateOnly), ext)
}
