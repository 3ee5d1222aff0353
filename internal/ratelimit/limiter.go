package ratelimit

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"
)

// Limiter allows at most limit hits per key within window
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
}

// NewLimiter creates a limiter. A limit of zero disables limiting.
func NewLimiter(store Store, limit int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		limit:  limit,
		window: window,
	}
}

// Allow records a hit for key and reports whether it is within the limit.
// Store failures are returned together with allowed=true.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}

	count, err := l.store.Hit(ctx, key, l.window)
	if err != nil {
		return true, err
	}
	return count <= int64(l.limit), nil
}

// Middleware rejects requests over the limit with denied, keyed by client IP.
// Requests pass through when the store is unavailable.
func (l *Limiter) Middleware(denied http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)

			allowed, err := l.Allow(r.Context(), ip)
			if err != nil {
				slog.Error("rate limit store failed", "error", err, "remote_addr", ip)
			}

			if !allowed {
				slog.Warn("rate limit exceeded",
					"remote_addr", ip,
					"path", r.URL.Path,
					"limit", l.limit,
				)
				w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
				denied.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the request's remote address without the port
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
