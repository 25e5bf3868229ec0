// internal/handlers/approvals/approvals.go
package approvals

import (
	"net/http"

	httpserver "github.com/ahmedelhofy-1/Maintenance-App/internal/http"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/service"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Queue returns everything awaiting a reviewer: work orders in a review
// phase plus pending part and annual requests, one payload for the
// approvals page.
func (h *Handler) Queue(w http.ResponseWriter, r *http.Request) {
	q, err := h.svc.PendingQueues(r.Context())
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to load approval queue")
		return
	}
	httpserver.JSON(w, http.StatusOK, q)
}
