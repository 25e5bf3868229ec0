// internal/sheetsync/sync.go
//
// One-way/two-way bridge to a spreadsheet web app ("cloud sync"). Pushes
// are fire-and-forget: the endpoint is expected to be a script that cannot
// return a readable body, so success means only that the transport call
// did not fail. Pulls expect a JSON array and map it permissively into
// parts.
package sheetsync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ahmedelhofy-1/Maintenance-App/internal/metrics"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/models"
)

var ErrNotConfigured = errors.New("sheet sync URL is not configured")

type Client struct {
	http *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{http: &http.Client{Timeout: timeout}}
}

type pushEnvelope struct {
	Action    string `json:"action"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Payload   any    `json:"payload"`
}

// Push sends one entity collection to the configured endpoint. The
// response body is never read; script endpoints cannot return one.
func (c *Client) Push(ctx context.Context, endpoint, entityKind string, payload any) error {
	if strings.TrimSpace(endpoint) == "" {
		return ErrNotConfigured
	}
	env := pushEnvelope{
		Action:    "sync",
		Type:      entityKind,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Payload:   payload,
	}
	body, err := json.Marshal(env)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain")
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.SyncPushesTotal.WithLabelValues(entityKind, "error").Inc()
		return fmt.Errorf("sync push %s: %w", entityKind, err)
	}
	resp.Body.Close()
	metrics.SyncPushesTotal.WithLabelValues(entityKind, "ok").Inc()
	return nil
}

// Pull fetches one entity collection as raw row objects.
func (c *Client) Pull(ctx context.Context, endpoint, entityKind string) ([]map[string]any, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, ErrNotConfigured
	}
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	fetchURL := endpoint + sep + "type=" + url.QueryEscape(entityKind)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sync pull %s: %w", entityKind, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sync pull %s: unexpected status %d", entityKind, resp.StatusCode)
	}
	var rows []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("sync pull %s: %w", entityKind, err)
	}
	return rows, nil
}

// partFieldAliases maps a logical Part field to the column names a sheet
// may use for it, tried in order. The aliasing lives here, at the import
// boundary; the core data model never sees it.
var partFieldAliases = map[string][]string{
	"id":       {"id", "Part ID", "partId", "PartID"},
	"name":     {"name", "Part Name", "Description", "partName"},
	"category": {"category", "Category", "Related Equipment Category"},
	"stock":    {"stock", "Stock", "Stock Level", "stockLevel"},
	"minStock": {"minStock", "Min Stock Level", "Min Level Stock", "min"},
	"maxStock": {"maxStock", "Max Stock Level", "Max Level Stock", "max"},
	"unit":     {"unit", "Unit", "UOM"},
	"cost":     {"cost", "Unit Cost", "unitCost", "Cost"},
	"location": {"location", "Storage Location", "Location", "Store"},
}

// MapParts converts pulled rows into Parts. Missing fields default rather
// than fail; rows without an id are skipped.
func MapParts(rows []map[string]any) []models.Part {
	out := make([]models.Part, 0, len(rows))
	for _, row := range rows {
		id := pickString(row, partFieldAliases["id"])
		if id == "" {
			continue
		}
		out = append(out, models.Part{
			ID:       id,
			Name:     pickString(row, partFieldAliases["name"]),
			Category: pickString(row, partFieldAliases["category"]),
			Stock:    pickInt(row, partFieldAliases["stock"]),
			MinStock: pickInt(row, partFieldAliases["minStock"]),
			MaxStock: pickInt(row, partFieldAliases["maxStock"]),
			Unit:     pickString(row, partFieldAliases["unit"]),
			Cost:     pickDecimal(row, partFieldAliases["cost"]),
			Location: pickString(row, partFieldAliases["location"]),
		})
	}
	return out
}

func pickString(row map[string]any, keys []string) string {
	for _, k := range keys {
		if v, ok := row[k]; ok && v != nil {
			return strings.TrimSpace(fmt.Sprint(v))
		}
	}
	return ""
}

func pickInt(row map[string]any, keys []string) int {
	s := pickString(row, keys)
	if s == "" {
		return 0
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func pickDecimal(row map[string]any, keys []string) decimal.Decimal {
	s := pickString(row, keys)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
