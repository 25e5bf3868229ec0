// internal/handlers/workorders/workorders.go
package workorders

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ahmedelhofy-1/Maintenance-App/internal/approval"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/auth"
	httpserver "github.com/ahmedelhofy-1/Maintenance-App/internal/http"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/models"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/service"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/workorder"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// List returns every work order, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	wos, err := h.svc.WorkOrders(r.Context())
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to load work orders")
		return
	}
	httpserver.JSON(w, http.StatusOK, wos)
}

// Create logs a new work order. The lifecycle always starts at the first
// pipeline state regardless of what the client sent.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var wo models.WorkOrder
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&wo); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(wo.Title) == "" {
		httpserver.Error(w, http.StatusBadRequest, "title is required")
		return
	}
	created, err := h.svc.CreateWorkOrder(r.Context(), wo)
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to create work order")
		return
	}
	httpserver.JSON(w, http.StatusCreated, created)
}

// Update replaces the editable fields of one work order. Status and
// approval history are lifecycle-owned and ignored here.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	defer r.Body.Close()
	var patch models.WorkOrder
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&patch); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	updated, err := h.svc.UpdateWorkOrderFields(r.Context(), id, patch)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, updated)
}

// Advance moves a work order one step forward in the pipeline.
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	wo, err := h.svc.AdvanceWorkOrder(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, wo)
}

// Approve records a gate approval by the logged-in user and advances.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	wo, err := h.svc.ApproveWorkOrder(r.Context(), id, actorName(r))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, wo)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// Reject sends a work order back for rework. A reason is mandatory; the
// core records it verbatim.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
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
	wo, err := h.svc.RejectWorkOrder(r.Context(), id, actorName(r), body.Reason)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, wo)
}

func actorName(r *http.Request) string {
	if u, ok := auth.UserFromContext(r.Context()); ok {
		return u.Name
	}
	return "Unknown"
}

func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrWorkOrderNotFound):
		httpserver.Error(w, http.StatusNotFound, "work order not found")
	case errors.Is(err, workorder.ErrNotAtGate), errors.Is(err, approval.ErrNotReviewable):
		httpserver.Error(w, http.StatusConflict, err.Error())
	default:
		httpserver.Error(w, http.StatusInternalServerError, "internal error")
	}
}
