// internal/handlers/ai/ai.go
package ai

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ahmedelhofy-1/Maintenance-App/internal/advisor"
	httpserver "github.com/ahmedelhofy-1/Maintenance-App/internal/http"
)

type Handler struct {
	adv advisor.Advisor
}

func New(adv advisor.Advisor) *Handler {
	return &Handler{adv: adv}
}

type troubleshootRequest struct {
	Issue     string `json:"issue"`
	AssetType string `json:"assetType"`
}

// Troubleshoot forwards a free-text issue to the advisor. The answer is
// display-only; turning it into a work order is a separate human action.
func (h *Handler) Troubleshoot(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var body troubleshootRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&body); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(body.Issue) == "" {
		httpserver.Error(w, http.StatusBadRequest, "issue is required")
		return
	}
	text, err := h.adv.TroubleshootAsset(r.Context(), body.Issue, body.AssetType)
	if err != nil {
		respondAdvisorError(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]string{"text": text})
}

type analyzeRequest struct {
	ImageData string `json:"imageData"`
	AssetName string `json:"assetName"`
}

// Analyze sends a base64 photo for visual inspection.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var body analyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 8<<20)).Decode(&body); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if body.ImageData == "" {
		httpserver.Error(w, http.StatusBadRequest, "imageData is required")
		return
	}
	text, err := h.adv.AnalyzeImage(r.Context(), body.ImageData, body.AssetName)
	if err != nil {
		respondAdvisorError(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]string{"text": text})
}

func respondAdvisorError(w http.ResponseWriter, err error) {
	if errors.Is(err, advisor.ErrNotConfigured) {
		httpserver.Error(w, http.StatusPreconditionFailed, "advisor endpoint is not configured")
		return
	}
	httpserver.Error(w, http.StatusBadGateway, "advisor call failed")
}
