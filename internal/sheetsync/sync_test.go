package sheetsync

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ahmedelhofy-1/Maintenance-App/internal/models"
)

func TestPush_EnvelopeShape(t *testing.T) {
	var gotBody []byte
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	payload := []models.WorkOrder{{ID: "WO-1", Title: "Belt change"}}
	if err := c.Push(context.Background(), srv.URL, "workorders", payload); err != nil {
		t.Fatalf("Push: %v", err)
	}

	// Apps Script endpoints cannot answer CORS preflights, so the body
	// goes out as text/plain.
	if gotContentType != "text/plain" {
		t.Errorf("Content-Type = %q, want text/plain", gotContentType)
	}

	var env struct {
		Action    string            `json:"action"`
		Type      string            `json:"type"`
		Timestamp string            `json:"timestamp"`
		Payload   []models.WorkOrder `json:"payload"`
	}
	if err := json.Unmarshal(gotBody, &env); err != nil {
		t.Fatalf("envelope decode: %v", err)
	}
	if env.Action != "sync" || env.Type != "workorders" {
		t.Errorf("envelope = %+v", env)
	}
	if _, err := time.Parse(time.RFC3339, env.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC3339", env.Timestamp)
	}
	if len(env.Payload) != 1 || env.Payload[0].ID != "WO-1" {
		t.Errorf("payload = %+v", env.Payload)
	}
}

func TestPush_NoEndpoint(t *testing.T) {
	c := NewClient(time.Second)
	err := c.Push(context.Background(), "  ", "workorders", nil)
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestPull_QueryAndDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != "parts" {
			t.Errorf("type query = %q, want parts", got)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"Part ID":"PRT-1","Stock Level":7},{"noise":"ignored"}]`)
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	rows, err := c.Pull(context.Background(), srv.URL, "parts")
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
}

func TestPull_AppendsToExistingQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "abc" || r.URL.Query().Get("type") != "parts" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	c := NewClient(time.Second)
	if _, err := c.Pull(context.Background(), srv.URL+"?key=abc", "parts"); err != nil {
		t.Fatalf("Pull: %v", err)
	}
}

func TestPull_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(time.Second)
	if _, err := c.Pull(context.Background(), srv.URL, "parts"); err == nil {
		t.Error("Pull succeeded on a 502 response")
	}
}

func TestMapParts_AliasesAndSkips(t *testing.T) {
	rows := []map[string]any{
		{
			"Part ID":          "PRT-1",
			"Part Name":        "Air Filter",
			"Stock Level":      float64(7), // JSON numbers decode as float64
			"Min Stock Level":  "2",
			"Unit Cost":        "15.25",
			"Storage Location": "Central Store A",
		},
		{"Part Name": "no id, skipped"},
		{"id": "PRT-2", "stock": "3"},
	}
	parts := MapParts(rows)
	if len(parts) != 2 {
		t.Fatalf("parts = %d, want 2", len(parts))
	}
	p := parts[0]
	if p.ID != "PRT-1" || p.Stock != 7 || p.MinStock != 2 {
		t.Errorf("part = %+v", p)
	}
	if !p.Cost.Equal(decimal.RequireFromString("15.25")) {
		t.Errorf("cost = %s", p.Cost)
	}
	if parts[1].ID != "PRT-2" || parts[1].Stock != 3 {
		t.Errorf("camelCase row = %+v", parts[1])
	}
}
