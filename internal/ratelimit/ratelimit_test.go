package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestStore() (*MemoryStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore()
	store.now = clock.Now
	return store, clock
}

type failingStore struct{}

func (failingStore) Hit(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("connection refused")
}

func (failingStore) Ping(context.Context) error {
	return errors.New("connection refused")
}

func TestMemoryStoreWindow(t *testing.T) {
	store, clock := newTestStore()
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		n, err := store.Hit(ctx, "1.2.3.4", time.Minute)
		if err != nil {
			t.Fatalf("Hit failed: %v", err)
		}
		if n != i {
			t.Errorf("expected count %d, got %d", i, n)
		}
	}

	clock.now = clock.now.Add(time.Minute)
	n, _ := store.Hit(ctx, "1.2.3.4", time.Minute)
	if n != 1 {
		t.Errorf("expected a new window after expiry, got count %d", n)
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	store, clock := newTestStore()
	ctx := context.Background()

	store.Hit(ctx, "short", time.Second)
	store.Hit(ctx, "long", time.Hour)

	if removed := store.Sweep(clock.now); removed != 0 {
		t.Errorf("expected nothing swept, got %d", removed)
	}

	removed := store.Sweep(clock.now.Add(time.Minute))
	if removed != 1 {
		t.Errorf("expected 1 key swept, got %d", removed)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 key left, got %d", store.Len())
	}
}

func TestLimiterAllow(t *testing.T) {
	store, _ := newTestStore()
	limiter := NewLimiter(store, 2, time.Minute)
	ctx := context.Background()

	want := []bool{true, true, false, false}
	for i, w := range want {
		allowed, err := limiter.Allow(ctx, "ip")
		if err != nil {
			t.Fatalf("Allow failed: %v", err)
		}
		if allowed != w {
			t.Errorf("hit %d: allowed = %v, want %v", i+1, allowed, w)
		}
	}

	if allowed, _ := limiter.Allow(ctx, "other-ip"); !allowed {
		t.Error("keys must be limited independently")
	}
}

func TestLimiterDisabled(t *testing.T) {
	limiter := NewLimiter(failingStore{}, 0, time.Minute)
	for i := 0; i < 10; i++ {
		if allowed, err := limiter.Allow(context.Background(), "ip"); !allowed || err != nil {
			t.Fatalf("disabled limiter must allow everything, got %v, %v", allowed, err)
		}
	}
}

func TestLimiterFailsOpen(t *testing.T) {
	limiter := NewLimiter(failingStore{}, 1, time.Minute)

	allowed, err := limiter.Allow(context.Background(), "ip")
	if err == nil {
		t.Error("expected store error to be reported")
	}
	if !allowed {
		t.Error("store failure must not block requests")
	}
}

func TestMiddleware(t *testing.T) {
	store, _ := newTestStore()
	limiter := NewLimiter(store, 1, 30*time.Second)

	denied := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := limiter.Middleware(denied)(ok)

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	if rec := send("10.0.0.1:5000"); rec.Code != http.StatusNoContent {
		t.Errorf("first request: expected 204, got %d", rec.Code)
	}

	rec := send("10.0.0.1:5001")
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request from same IP: expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "30" {
		t.Errorf("expected Retry-After 30, got %q", rec.Header().Get("Retry-After"))
	}

	if rec := send("10.0.0.2:5000"); rec.Code != http.StatusNoContent {
		t.Errorf("other IP: expected 204, got %d", rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.RemoteAddr = "192.168.1.5:4321"
	if ip := ClientIP(req); ip != "192.168.1.5" {
		t.Errorf("expected 192.168.1.5, got %q", ip)
	}

	req.RemoteAddr = "203.0.113.9"
	if ip := ClientIP(req); ip != "203.0.113.9" {
		t.Errorf("expected bare address unchanged, got %q", ip)
	}
}
