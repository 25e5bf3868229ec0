// internal/middleware/require_permission.go
package middleware

import (
	"net/http"

	"github.com/ahmedelhofy-1/Maintenance-App/internal/auth"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/models"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/rbac"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/repo"
)

// RequireAuth authenticates via the "session" cookie, loads the user from
// the directory, resolves their role and injects all three into context.
func RequireAuth(r *repo.Repo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			s := auth.ReadSession(req)
			if s == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			user, err := r.GetUserByID(req.Context(), s.UserID)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			roles, err := r.Roles(req.Context())
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			role, err := rbac.ResolveRole(user, roles)
			if err != nil {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			ctx := auth.WithSession(req.Context(), s)
			ctx = auth.WithUser(ctx, &user)
			ctx = auth.WithRole(ctx, role)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// RequirePermission gates a route on one capability of one module. The
// core operations themselves trust their callers; this middleware is the
// enforcement boundary.
func RequirePermission(module models.ModuleKey, cap rbac.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			role, ok := auth.RoleFromContext(req.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if !rbac.Can(role, module, cap) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
