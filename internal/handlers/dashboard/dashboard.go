// internal/handlers/dashboard/dashboard.go
package dashboard

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

// Stats aggregates the landing-page counters in one call.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Dashboard(r.Context())
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to compute dashboard stats")
		return
	}
	httpserver.JSON(w, http.StatusOK, stats)
}
