// internal/advisor/advisor.go
//
// AI troubleshooting panel backend. The advisor is an external
// collaborator: its answers are display-only and never touch core state.
// A human may convert advice into a new work order, but that goes through
// the normal work order creation path.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var ErrNotConfigured = errors.New("advisor endpoint is not configured")

// Advisor answers free-text troubleshooting queries and photo analyses.
type Advisor interface {
	TroubleshootAsset(ctx context.Context, issue, assetType string) (string, error)
	AnalyzeImage(ctx context.Context, base64Image, assetName string) (string, error)
}

// HTTPAdvisor posts to a text-completion proxy endpoint.
type HTTPAdvisor struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

func NewHTTP(endpoint, apiKey string, timeout time.Duration) *HTTPAdvisor {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPAdvisor{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

type advisorRequest struct {
	Kind      string `json:"kind"`
	Prompt    string `json:"prompt,omitempty"`
	AssetType string `json:"assetType,omitempty"`
	AssetName string `json:"assetName,omitempty"`
	ImageData string `json:"imageData,omitempty"`
}

type advisorResponse struct {
	Text string `json:"text"`
}

func (a *HTTPAdvisor) TroubleshootAsset(ctx context.Context, issue, assetType string) (string, error) {
	prompt := fmt.Sprintf(
		"A user reports the following issue with a %s: %q. Provide potential causes, "+
			"immediate safety steps, a troubleshooting checklist and the required tools.",
		assetType, issue)
	return a.call(ctx, advisorRequest{Kind: "troubleshoot", Prompt: prompt, AssetType: assetType})
}

func (a *HTTPAdvisor) AnalyzeImage(ctx context.Context, base64Image, assetName string) (string, error) {
	return a.call(ctx, advisorRequest{Kind: "image", AssetName: assetName, ImageData: base64Image})
}

func (a *HTTPAdvisor) call(ctx context.Context, reqBody advisorRequest) (string, error) {
	if a.endpoint == "" {
		return "", ErrNotConfigured
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}
	resp, err := a.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("advisor: unexpected status %d", resp.StatusCode)
	}
	var out advisorResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Text, nil
}
