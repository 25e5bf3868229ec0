// internal/handlers/assets/assets.go
package assets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

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
	assets, err := h.svc.Assets(r.Context())
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to load assets")
		return
	}
	httpserver.JSON(w, http.StatusOK, assets)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var asset models.Asset
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&asset); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(asset.Name) == "" {
		httpserver.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	created, err := h.svc.CreateAsset(r.Context(), asset)
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to create asset")
		return
	}
	httpserver.JSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var asset models.Asset
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&asset); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	asset.ID = chi.URLParam(r, "id")
	updated, err := h.svc.UpdateAsset(r.Context(), asset)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAsset(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondDomainError(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Import accepts spreadsheet rows and registers one asset per valid row.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var rows []importer.Row
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<20)).Decode(&rows); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	added, err := h.svc.AddAssets(r.Context(), importer.Assets(rows))
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "import failed")
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{"imported": len(added), "assets": added})
}

func respondDomainError(w http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrAssetNotFound) {
		httpserver.Error(w, http.StatusNotFound, "asset not found")
		return
	}
	httpserver.Error(w, http.StatusInternalServerError, "internal error")
}
