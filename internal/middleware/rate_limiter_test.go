package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func limited(burst int) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return RateLimitWith(1, burst)(ok)
}

func hit(h http.Handler, remoteAddr string, cookie *http.Cookie) int {
	req := httptest.NewRequest(http.MethodGet, "/assets", nil)
	req.RemoteAddr = remoteAddr
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

// The limiter runs ahead of the auth middleware, so the session must be
// resolved from the cookie. A logged-in user shares one bucket across
// addresses; a different user from the same address gets a fresh bucket.
func TestRateLimit_KeyedBySessionUser(t *testing.T) {
	h := limited(1)
	admin := loginAs(t, "USR-ADMIN")
	tech := loginAs(t, "USR-003")

	if code := hit(h, "10.0.0.1:1111", admin); code != http.StatusNoContent {
		t.Fatalf("first request = %d, want 204", code)
	}
	if code := hit(h, "10.0.0.2:2222", admin); code != http.StatusTooManyRequests {
		t.Errorf("same user from a new address = %d, want 429", code)
	}
	if code := hit(h, "10.0.0.1:3333", tech); code != http.StatusNoContent {
		t.Errorf("other user from the first address = %d, want 204", code)
	}
}

func TestRateLimit_AnonymousKeyedByAddress(t *testing.T) {
	h := limited(1)

	if code := hit(h, "10.0.0.1:1111", nil); code != http.StatusNoContent {
		t.Fatalf("first request = %d, want 204", code)
	}
	if code := hit(h, "10.0.0.1:2222", nil); code != http.StatusTooManyRequests {
		t.Errorf("same address again = %d, want 429", code)
	}
	if code := hit(h, "10.0.0.9:1111", nil); code != http.StatusNoContent {
		t.Errorf("different address = %d, want 204", code)
	}
}

func TestRateLimit_BurstAllowance(t *testing.T) {
	h := limited(3)
	for i := 0; i < 3; i++ {
		if code := hit(h, "10.0.0.1:1111", nil); code != http.StatusNoContent {
			t.Fatalf("request %d = %d, want 204", i+1, code)
		}
	}
	if code := hit(h, "10.0.0.1:1111", nil); code != http.StatusTooManyRequests {
		t.Errorf("request past burst = %d, want 429", code)
	}
}
