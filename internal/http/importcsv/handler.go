package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/stockroom/internal/importer"
	"github.com/MrJamesThe3rd/stockroom/internal/inventory"
)

// 10 MB cap on uploaded stock sheets.
const maxUploadSize = 10 << 20

type Handler struct {
	svc *importer.Service
	inv *inventory.Service
}

func NewHandler(svc *importer.Service, inv *inventory.Service) *Handler {
	return &Handler{svc: svc, inv: inv}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.upload)
}

type rowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type uploadResponse struct {
	Added     int        `json:"added"`
	Restocked int        `json:"restocked"`
	Errors    []rowError `json:"errors,omitempty"`
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.svc.Parse(importer.FormatSheet, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := h.svc.Apply(r.Context(), h.inv, rows)

	resp := uploadResponse{
		Added:     result.Added,
		Restocked: result.Restocked,
	}

	for _, re := range result.Errors {
		resp.Errors = append(resp.Errors, rowError{Row: re.Row, Error: re.Err.Error()})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
