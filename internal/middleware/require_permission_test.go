package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmedelhofy-1/Maintenance-App/internal/auth"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/models"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/rbac"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/repo"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/session"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/store"
)

func loginAs(t *testing.T, userID string) *http.Cookie {
	t.Helper()
	sid := session.DefaultStore.Create(models.Session{
		UserID: userID,
		Expiry: time.Now().Add(time.Hour),
	})
	t.Cleanup(func() { session.DefaultStore.Delete(sid) })
	return &http.Cookie{Name: "session", Value: sid}
}

func protected(r *repo.Repo, module models.ModuleKey, cap rbac.Capability) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return RequireAuth(r)(RequirePermission(module, cap)(ok))
}

func TestRequireAuth_NoCookie(t *testing.T) {
	r := repo.New(store.NewMemory())
	h := protected(r, models.ModuleAssets, rbac.Read)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuth_StaleSessionUser(t *testing.T) {
	r := repo.New(store.NewMemory())
	h := protected(r, models.ModuleAssets, rbac.Read)

	req := httptest.NewRequest(http.MethodGet, "/assets", nil)
	req.AddCookie(loginAs(t, "USR-DELETED"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for a session naming a deleted user", rec.Code)
	}
}

func TestRequirePermission_GrantAndDeny(t *testing.T) {
	r := repo.New(store.NewMemory())

	cases := []struct {
		name   string
		user   string
		module models.ModuleKey
		cap    rbac.Capability
		want   int
	}{
		{"admin reads masterdata", repo.SeedAdminID, models.ModuleMasterData, rbac.Read, http.StatusNoContent},
		{"technician reads workorders", "USR-003", models.ModuleWorkOrders, rbac.Read, http.StatusNoContent},
		{"technician adds workorders", "USR-003", models.ModuleWorkOrders, rbac.Add, http.StatusNoContent},
		{"technician cannot edit workorders", "USR-003", models.ModuleWorkOrders, rbac.Edit, http.StatusForbidden},
		{"technician cannot read masterdata", "USR-003", models.ModuleMasterData, rbac.Read, http.StatusForbidden},
		{"manager cannot delete assets", "USR-002", models.ModuleAssets, rbac.Delete, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := protected(r, tc.module, tc.cap)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(loginAs(t, tc.user))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestRequireAuth_InjectsIdentity(t *testing.T) {
	r := repo.New(store.NewMemory())
	var gotUser string
	var gotRole string
	inner := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if u, ok := auth.UserFromContext(req.Context()); ok {
			gotUser = u.ID
		}
		if role, ok := auth.RoleFromContext(req.Context()); ok {
			gotRole = role.ID
		}
	})
	h := RequireAuth(r)(inner)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(loginAs(t, "USR-002"))
	h.ServeHTTP(httptest.NewRecorder(), req)

	if gotUser != "USR-002" {
		t.Errorf("user in context = %q", gotUser)
	}
	if gotRole != "ROLE-MANAGER" {
		t.Errorf("role in context = %q", gotRole)
	}
}
