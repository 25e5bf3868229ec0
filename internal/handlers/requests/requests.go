// internal/handlers/requests/requests.go
package requests

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ahmedelhofy-1/Maintenance-App/internal/approval"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/auth"
	httpserver "github.com/ahmedelhofy-1/Maintenance-App/internal/http"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/importer"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/models"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/service"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.svc.PartRequests(r.Context())
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to load requests")
		return
	}
	httpserver.JSON(w, http.StatusOK, reqs)
}

// Create files a requisition. The requester defaults to the logged-in
// user; at least one line with a positive quantity is required.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req models.PartRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if len(req.Items) == 0 {
		httpserver.Error(w, http.StatusBadRequest, "at least one item is required")
		return
	}
	for _, it := range req.Items {
		if it.PartID == "" || it.Quantity <= 0 {
			httpserver.Error(w, http.StatusBadRequest, "every item needs a part id and a positive quantity")
			return
		}
	}
	if req.RequestedBy == "" {
		if u, ok := auth.UserFromContext(r.Context()); ok {
			req.RequestedBy = u.Name
		}
	}
	created, err := h.svc.CreatePartRequest(r.Context(), req)
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to create request")
		return
	}
	httpserver.JSON(w, http.StatusCreated, created)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	req, err := h.svc.ApprovePartRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, req)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var body rejectRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&body); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(body.Reason) == "" {
		httpserver.Error(w, http.StatusBadRequest, "a rejection reason is required")
		return
	}
	req, err := h.svc.RejectPartRequest(r.Context(), chi.URLParam(r, "id"), body.Reason)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, req)
}

// Issue releases an approved requisition from the store and deducts the
// requested quantities from ledger stock.
func (h *Handler) Issue(w http.ResponseWriter, r *http.Request) {
	req, err := h.svc.IssuePartRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, req)
}

// Import accepts spreadsheet rows and files one requisition per valid row.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var rows []importer.Row
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<20)).Decode(&rows); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	added, err := h.svc.AddPartRequests(r.Context(), importer.PartRequests(rows))
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "import failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{"imported": len(added), "requests": added})
}

func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrRequestNotFound):
		httpserver.Error(w, http.StatusNotFound, "request not found")
	case errors.Is(err, approval.ErrNotIssuable), errors.Is(err, approval.ErrNotReviewable):
		httpserver.Error(w, http.StatusConflict, err.Error())
	default:
		httpserver.Error(w, http.StatusInternalServerError, "internal error")
	}
}
