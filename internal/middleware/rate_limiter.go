package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ahmedelhofy-1/Maintenance-App/internal/auth"
)

// Simple token-bucket limiter per key (user id or hashed IP)
type bucket struct {
	tokens     float64
	lastRefill time.Time
}

type limiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     float64 // tokens per second
	capacity float64 // burst capacity
}

func newLimiter(rps float64, burst int) *limiter {
	return &limiter{
		buckets:  make(map[string]*bucket),
		rate:     rps,
		capacity: float64(burst),
	}
}

func (l *limiter) allow(key string) bool {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity, lastRefill: now}
		l.buckets[key] = b
	}
	// Refill
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(l.capacity, b.tokens+elapsed*l.rate)
	b.lastRefill = now
	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true
	}
	return false
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func ipKey(r *http.Request) string {
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i > -1 {
		host = host[:i]
	}
	sum := sha256.Sum256([]byte(host))
	return hex.EncodeToString(sum[:8])
}

// RateLimitWith limits requests per principal: the session user when
// authenticated, a hashed remote IP otherwise.
func RateLimitWith(rpm int, burst int) func(http.Handler) http.Handler {
	rps := float64(rpm) / 60.0
	if rps <= 0 {
		rps = 0.000001
	}
	if burst <= 0 {
		burst = 1
	}
	lim := newLimiter(rps, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Mounted ahead of the auth middleware, so fall back to the
			// cookie when the context carries no session yet.
			sess, ok := auth.SessionFromContext(r.Context())
			if !ok || sess == nil {
				sess = auth.ReadSession(r)
			}
			key := ""
			if sess != nil {
				key = "u:" + sess.UserID
			} else {
				key = "ip:" + ipKey(r)
			}
			if ok := lim.allow(key); !ok {
				w.Header().Set("Retry-After", "1")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
