package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ahmedelhofy-1/Maintenance-App/internal/advisor"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/models"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/repo"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/service"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/sheetsync"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := repo.New(store.NewMemory())
	svc := service.New(r)
	mux := chi.NewRouter()
	RegisterRoutes(mux, r, svc, sheetsync.NewClient(0), advisor.NewHTTP("", "", 0))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// login posts credentials and returns the session cookie.
func login(t *testing.T, srv *httptest.Server, identity, password string) *http.Cookie {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"identity": identity, "password": password})
	resp, err := http.Post(srv.URL+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func do(t *testing.T, method, url string, cookie *http.Cookie, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := newTestServer(t)
	body, _ := json.Marshal(map[string]string{"identity": "admin@maintenx.local", "password": "wrong"})
	resp, err := http.Post(srv.URL+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestWorkOrders_RequireSession(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/workorders")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestWorkOrderApproval_EndToEnd(t *testing.T) {
	srv := newTestServer(t)
	cookie := login(t, srv, "USR-ADMIN", "admin123")

	// WO-101 is seeded in MR Generated.
	resp := do(t, http.MethodPost, srv.URL+"/workorders/WO-101/approve", cookie, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve status = %d", resp.StatusCode)
	}
	wo := decode[models.WorkOrder](t, resp)
	if wo.Status != models.StatusManagerReview {
		t.Errorf("status = %q, want Manager Review", wo.Status)
	}
	if len(wo.ApprovalHistory) != 1 {
		t.Fatalf("history length = %d, want 1", len(wo.ApprovalHistory))
	}
	if wo.ApprovalHistory[0].By == "" || wo.ApprovalHistory[0].By == "Unknown" {
		t.Errorf("approval actor = %q, want the logged-in user's name", wo.ApprovalHistory[0].By)
	}
}

func TestWorkOrderReject_BlankReasonIs400(t *testing.T) {
	srv := newTestServer(t)
	cookie := login(t, srv, "USR-ADMIN", "admin123")

	resp := do(t, http.MethodPost, srv.URL+"/workorders/WO-101/reject", cookie, map[string]string{"reason": "   "})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a blank reason", resp.StatusCode)
	}
}

func TestWorkOrderReject_AtGate(t *testing.T) {
	srv := newTestServer(t)
	cookie := login(t, srv, "USR-ADMIN", "admin123")

	// Admit WO-101 into Manager Review, then reject it back.
	do(t, http.MethodPost, srv.URL+"/workorders/WO-101/approve", cookie, nil).Body.Close()
	resp := do(t, http.MethodPost, srv.URL+"/workorders/WO-101/reject", cookie, map[string]string{"reason": "missing photos"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reject status = %d", resp.StatusCode)
	}
	wo := decode[models.WorkOrder](t, resp)
	if wo.Status != models.StatusMRGenerated {
		t.Errorf("status = %q, want rolled back to MR Generated", wo.Status)
	}
	if wo.RejectionNotes != "missing photos" {
		t.Errorf("rejectionNotes = %q", wo.RejectionNotes)
	}
}

func TestTechnicianForbiddenFromApprovals(t *testing.T) {
	srv := newTestServer(t)
	cookie := login(t, srv, "technician@maintenx.local", "tech123")

	resp := do(t, http.MethodPost, srv.URL+"/workorders/WO-101/approve", cookie, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("approve as technician = %d, want 403", resp.StatusCode)
	}

	resp = do(t, http.MethodGet, srv.URL+"/approvals/queue", cookie, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("queue as technician = %d, want 403", resp.StatusCode)
	}
}

func TestRequestLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	cookie := login(t, srv, "USR-ADMIN", "admin123")

	created := decode[models.PartRequest](t, do(t, http.MethodPost, srv.URL+"/requests", cookie, models.PartRequest{
		AssetID: "AST-001",
		Items:   []models.PartRequestItem{{PartID: "PRT-001", Quantity: 2}},
	}))
	if created.Status != models.RequestPending {
		t.Fatalf("created status = %q", created.Status)
	}
	if !strings.HasPrefix(created.ID, "REQ-") {
		t.Fatalf("created id = %q", created.ID)
	}

	approved := decode[models.PartRequest](t, do(t, http.MethodPost, srv.URL+"/requests/"+created.ID+"/approve", cookie, nil))
	if approved.Status != models.RequestApproved {
		t.Fatalf("approved status = %q", approved.Status)
	}

	issued := decode[models.PartRequest](t, do(t, http.MethodPost, srv.URL+"/requests/"+created.ID+"/issue", cookie, nil))
	if issued.Status != models.RequestIssued {
		t.Fatalf("issued status = %q", issued.Status)
	}

	// Issuing twice conflicts.
	resp := do(t, http.MethodPost, srv.URL+"/requests/"+created.ID+"/issue", cookie, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("second issue = %d, want 409", resp.StatusCode)
	}

	// So does approving an issued request; it must not re-open the issue path.
	resp = do(t, http.MethodPost, srv.URL+"/requests/"+created.ID+"/approve", cookie, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("approve after issue = %d, want 409", resp.StatusCode)
	}
	resp = do(t, http.MethodPost, srv.URL+"/requests/"+created.ID+"/issue", cookie, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("issue after refused approve = %d, want 409", resp.StatusCode)
	}
}

func TestInventoryMetricsQuery(t *testing.T) {
	srv := newTestServer(t)
	cookie := login(t, srv, "USR-ADMIN", "admin123")

	resp := do(t, http.MethodGet, srv.URL+"/inventory/metrics?partId=PRT-001&location=Store+A&qty=500", cookie, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics status = %d", resp.StatusCode)
	}
	m := decode[map[string]any](t, resp)
	if _, ok := m["globalStock"]; !ok {
		t.Errorf("metrics payload = %v", m)
	}

	resp = do(t, http.MethodGet, srv.URL+"/inventory/metrics", cookie, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("metrics without partId = %d, want 400", resp.StatusCode)
	}
}

func TestMasterData_SeedAdminUndeletable(t *testing.T) {
	srv := newTestServer(t)
	cookie := login(t, srv, "USR-ADMIN", "admin123")

	resp := do(t, http.MethodDelete, srv.URL+"/masterdata/users/"+repo.SeedAdminID, cookie, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("delete seed admin = %d, want 403", resp.StatusCode)
	}
}

func TestSyncPush_NotConfigured(t *testing.T) {
	srv := newTestServer(t)
	cookie := login(t, srv, "USR-ADMIN", "admin123")

	resp := do(t, http.MethodPost, srv.URL+"/sync/push", cookie, map[string]string{"type": "workorders"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusPreconditionFailed {
		t.Errorf("push without a sync URL = %d, want 412", resp.StatusCode)
	}
}

func TestAuthMe(t *testing.T) {
	srv := newTestServer(t)
	cookie := login(t, srv, "admin@maintenx.local", "admin123")

	resp := do(t, http.MethodGet, srv.URL+"/auth/me", cookie, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me status = %d", resp.StatusCode)
	}
	me := decode[struct {
		User models.User `json:"user"`
		Role models.Role `json:"role"`
	}](t, resp)
	if me.User.ID != repo.SeedAdminID {
		t.Errorf("user = %q", me.User.ID)
	}
	if me.User.Password != "" {
		t.Error("password leaked from /auth/me")
	}
	if me.Role.ID != "ROLE-ADMIN" {
		t.Errorf("role = %q", me.Role.ID)
	}
}
