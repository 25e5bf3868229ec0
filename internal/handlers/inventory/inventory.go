// internal/handlers/inventory/inventory.go
package inventory

import (
	"encoding/json"
	"net/http"
	"strconv"

	httpserver "github.com/ahmedelhofy-1/Maintenance-App/internal/http"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/importer"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/service"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// List returns the live ledger after the catalog catch-up merge, so new
// master-data parts show up without a separate migration step.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.svc.ReconciledLedger(r.Context())
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to load inventory")
		return
	}
	httpserver.JSON(w, http.StatusOK, ledger)
}

// Reconcile forces the catalog merge and returns the resulting ledger.
func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.svc.ReconciledLedger(r.Context())
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "reconcile failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, ledger)
}

// Metrics answers the stock panel query for one part:
// GET /inventory/metrics?partId=PRT-001&location=Store+A&qty=20
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	partID := r.URL.Query().Get("partId")
	if partID == "" {
		httpserver.Error(w, http.StatusBadRequest, "partId is required")
		return
	}
	qty, _ := strconv.Atoi(r.URL.Query().Get("qty"))
	m, err := h.svc.StockMetrics(r.Context(), partID, r.URL.Query().Get("location"), qty)
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to compute stock metrics")
		return
	}
	httpserver.JSON(w, http.StatusOK, m)
}

// Import folds spreadsheet part rows into the ledger.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var rows []importer.Row
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<20)).Decode(&rows); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	parts := importer.Parts(rows)
	ledger, err := h.svc.MergeLedger(r.Context(), parts)
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "import failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{"imported": len(parts), "ledger": ledger})
}
