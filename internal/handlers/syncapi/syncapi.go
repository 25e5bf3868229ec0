// internal/handlers/syncapi/syncapi.go
package syncapi

import (
	"encoding/json"
	"errors"
	"net/http"

	httpserver "github.com/ahmedelhofy-1/Maintenance-App/internal/http"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/repo"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/service"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/sheetsync"
)

// Cloud sync bridges the blob store and the configured spreadsheet web
// app. The endpoint URL lives in master data so administrators can change
// it without a redeploy.

type Handler struct {
	repo   *repo.Repo
	svc    *service.Service
	client *sheetsync.Client
}

func New(r *repo.Repo, svc *service.Service, client *sheetsync.Client) *Handler {
	return &Handler{repo: r, svc: svc, client: client}
}

func (h *Handler) endpoint(r *http.Request) (string, error) {
	md, err := h.repo.Master(r.Context())
	if err != nil {
		return "", err
	}
	if md.SheetsURL == "" {
		return "", sheetsync.ErrNotConfigured
	}
	return md.SheetsURL, nil
}

type syncRequest struct {
	Type string `json:"type"`
}

// Push sends one collection to the spreadsheet endpoint.
// POST /sync/push {"type":"workorders"}
func (h *Handler) Push(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var body syncRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&body); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	endpoint, err := h.endpoint(r)
	if err != nil {
		respondSyncError(w, err)
		return
	}

	var payload any
	switch body.Type {
	case "workorders":
		payload, err = h.svc.WorkOrders(r.Context())
	case "requests":
		payload, err = h.svc.PartRequests(r.Context())
	case "annual":
		payload, err = h.svc.AnnualRequests(r.Context())
	case "assets":
		payload, err = h.svc.Assets(r.Context())
	case "inventory":
		payload, err = h.svc.ReconciledLedger(r.Context())
	default:
		httpserver.Error(w, http.StatusBadRequest, "unknown sync type "+body.Type)
		return
	}
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to load "+body.Type)
		return
	}

	if err := h.client.Push(r.Context(), endpoint, body.Type, payload); err != nil {
		httpserver.Error(w, http.StatusBadGateway, "push failed: "+err.Error())
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]string{"status": "pushed", "type": body.Type})
}

// Pull fetches part rows from the spreadsheet endpoint and folds them
// into the inventory ledger. Only parts are pullable; everything else is
// authored locally.
func (h *Handler) Pull(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var body syncRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&body); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if body.Type != "parts" && body.Type != "inventory" {
		httpserver.Error(w, http.StatusBadRequest, "only part pulls are supported")
		return
	}

	endpoint, err := h.endpoint(r)
	if err != nil {
		respondSyncError(w, err)
		return
	}

	rows, err := h.client.Pull(r.Context(), endpoint, "parts")
	if err != nil {
		httpserver.Error(w, http.StatusBadGateway, "pull failed: "+err.Error())
		return
	}
	parts := sheetsync.MapParts(rows)
	ledger, err := h.svc.MergeLedger(r.Context(), parts)
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to store pulled parts")
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{"pulled": len(parts), "ledger": ledger})
}

func respondSyncError(w http.ResponseWriter, err error) {
	if errors.Is(err, sheetsync.ErrNotConfigured) {
		httpserver.Error(w, http.StatusPreconditionFailed, "sync URL is not configured")
		return
	}
	httpserver.Error(w, http.StatusInternalServerError, "internal error")
}
