// internal/auth/session.go
package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/ahmedelhofy-1/Maintenance-App/internal/models"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/session"
)

type ctxKeyUser struct{}
type ctxKeySession struct{}
type ctxKeyRole struct{}

// cookieSecure controls whether the session cookie is marked Secure.
// main() overrides it from config; local dev usually needs false.
var cookieSecure = true

func SetCookieSecurity(secure bool) { cookieSecure = secure }

var sameSiteMode = http.SameSiteLaxMode

// SetCookieSameSite configures SameSite mode: "lax", "none", "strict".
func SetCookieSameSite(mode string) {
	switch mode {
	case "none":
		sameSiteMode = http.SameSiteNoneMode
	case "strict":
		sameSiteMode = http.SameSiteStrictMode
	default:
		sameSiteMode = http.SameSiteLaxMode
	}
}

func SetSessionCookie(w http.ResponseWriter, s models.Session) {
	// Store server-side and set an opaque session id cookie
	sid := session.DefaultStore.Create(s)
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		Secure:   cookieSecure,
		SameSite: sameSiteMode,
		Expires:  s.Expiry,
	})
}

func ClearSessionCookie(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie("session"); err == nil && c.Value != "" {
		session.DefaultStore.Delete(c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   cookieSecure,
		SameSite: sameSiteMode,
	})
}

func ReadSession(r *http.Request) *models.Session {
	c, err := r.Cookie("session")
	if err != nil || c.Value == "" {
		return nil
	}
	sess, ok := session.DefaultStore.Get(c.Value)
	if !ok {
		return nil
	}
	// Return a copy to avoid mutation of store by callers
	s := sess
	return &s
}

func WithSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, ctxKeySession{}, s)
}

func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	s, ok := ctx.Value(ctxKeySession{}).(*models.Session)
	return s, ok
}

func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, ctxKeyUser{}, u)
}

func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(ctxKeyUser{}).(*models.User)
	return u, ok
}

func WithRole(ctx context.Context, role models.Role) context.Context {
	return context.WithValue(ctx, ctxKeyRole{}, role)
}

func RoleFromContext(ctx context.Context) (models.Role, bool) {
	r, ok := ctx.Value(ctxKeyRole{}).(models.Role)
	return r, ok
}
