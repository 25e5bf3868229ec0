// internal/auth/handlers.go
package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	httpserver "github.com/ahmedelhofy-1/Maintenance-App/internal/http"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/models"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/rbac"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/repo"
)

// sessionTTL is how long a login lasts. main() overrides it from config.
var sessionTTL = 8 * time.Hour

func SetSessionTTL(ttl time.Duration) {
	if ttl > 0 {
		sessionTTL = ttl
	}
}

type loginRequest struct {
	Identity string `json:"identity"`
	Password string `json:"password"`
}

// LoginHandler: POST /auth/login
//
// Accepts an email or user id plus password, checks it against the user
// directory and sets the opaque session cookie.
func LoginHandler(r *repo.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer req.Body.Close()
		var body loginRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, req.Body, 1<<20)).Decode(&body); err != nil {
			httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		if body.Identity == "" || body.Password == "" {
			httpserver.Error(w, http.StatusBadRequest, "identity and password are required")
			return
		}

		user, err := Authenticate(req.Context(), r, body.Identity, body.Password)
		if err != nil {
			// Same answer for unknown user and wrong password.
			httpserver.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		SetSessionCookie(w, models.Session{
			UserID: user.ID,
			RoleID: user.RoleID,
			Name:   user.Name,
			Expiry: time.Now().Add(sessionTTL),
		})

		user.Password = ""
		httpserver.JSON(w, http.StatusOK, user)
	}
}

// LogoutHandler: POST /auth/logout
func LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ClearSessionCookie(w, req)
		httpserver.JSON(w, http.StatusOK, map[string]string{"status": "logged out"})
	}
}

// ProfileHandler: GET /auth/me
//
// Returns the logged-in user together with their resolved role so the
// client can gate its navigation without a second round trip.
func ProfileHandler(r *repo.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		sess := ReadSession(req)
		if sess == nil {
			httpserver.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		user, err := r.GetUserByID(req.Context(), sess.UserID)
		if err != nil {
			if errors.Is(err, models.ErrUserNotFound) {
				httpserver.Error(w, http.StatusNotFound, "user not found")
				return
			}
			httpserver.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		roles, err := r.Roles(req.Context())
		if err != nil {
			httpserver.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		role, err := rbac.ResolveRole(user, roles)
		if err != nil {
			httpserver.Error(w, http.StatusForbidden, "no role assigned")
			return
		}

		user.Password = ""
		httpserver.JSON(w, http.StatusOK, map[string]any{
			"user": user,
			"role": role,
		})
	}
}
