package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newRedisTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	store, err := NewRedisStore(context.Background(), mr.Addr(), "", 0)
	if err != nil {
		t.Fatalf("NewRedisStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store, mr
}

func TestRedisStoreWindow(t *testing.T) {
	store, mr := newRedisTestStore(t)
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

	if ttl := mr.TTL(KeyPrefix + "1.2.3.4"); ttl != time.Minute {
		t.Errorf("expected TTL of one window, got %v", ttl)
	}

	mr.FastForward(time.Minute)

	n, err := store.Hit(ctx, "1.2.3.4", time.Minute)
	if err != nil {
		t.Fatalf("Hit failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected a new window after expiry, got count %d", n)
	}
}

func TestRedisStoreKeepsWindowOnLaterHits(t *testing.T) {
	store, mr := newRedisTestStore(t)
	ctx := context.Background()

	store.Hit(ctx, "ip", time.Minute)
	mr.FastForward(40 * time.Second)
	store.Hit(ctx, "ip", time.Minute)

	if ttl := mr.TTL(KeyPrefix + "ip"); ttl != 20*time.Second {
		t.Errorf("later hits must not extend the window, got TTL %v", ttl)
	}
}

func TestRedisStoreRepairsKeyWithoutExpiry(t *testing.T) {
	store, mr := newRedisTestStore(t)
	ctx := context.Background()

	// A counter left behind without a TTL
	if err := mr.Set(KeyPrefix+"stuck", "5"); err != nil {
		t.Fatal(err)
	}

	n, err := store.Hit(ctx, "stuck", time.Minute)
	if err != nil {
		t.Fatalf("Hit failed: %v", err)
	}
	if n != 6 {
		t.Errorf("expected count 6, got %d", n)
	}
	if ttl := mr.TTL(KeyPrefix + "stuck"); ttl != time.Minute {
		t.Errorf("expected TTL to be restored, got %v", ttl)
	}

	mr.FastForward(time.Minute)
	limiter := NewLimiter(store, 2, time.Minute)
	if allowed, err := limiter.Allow(ctx, "stuck"); err != nil || !allowed {
		t.Errorf("expected the key to be released after its window, got %v, %v", allowed, err)
	}
}

func TestRedisStoreUnavailable(t *testing.T) {
	store, mr := newRedisTestStore(t)
	ctx := context.Background()

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	mr.Close()

	if err := store.Ping(ctx); err == nil {
		t.Error("expected Ping to fail once redis is gone")
	}
	if _, err := store.Hit(ctx, "ip", time.Minute); err == nil {
		t.Error("expected Hit to fail once redis is gone")
	}
}

func TestNewRedisStoreConnectFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := NewRedisStore(context.Background(), addr, "", 0); err == nil {
		t.Error("expected connection error")
	}
}
