package auth

import (
	"context"
	"testing"
	"time"

	"github.com/tayothecoder/cornerfield-sub004/internal/store"
)

func TestRateLimiterAllowsUpToMax(t *testing.T) {
	limiter := NewRateLimiter(store.NewMemoryStorage())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ok, err := limiter.Allow(ctx, "1.2.3.4:john", "login", 5, 15*time.Minute)
		if err != nil {
			t.Fatalf("Allow returned error on attempt %d: %v", i+1, err)
		}
		if !ok {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}

	ok, err := limiter.Allow(ctx, "1.2.3.4:john", "login", 5, 15*time.Minute)
	if err != nil {
		t.Fatalf("Allow returned error: %v", err)
	}
	if ok {
		t.Fatalf("attempt 6 should be blocked")
	}
}

func TestRateLimiterIsolatesIdentifiers(t *testing.T) {
	limiter := NewRateLimiter(store.NewMemoryStorage())
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		limiter.Allow(ctx, "1.2.3.4:john", "login", 5, time.Minute)
	}

	ok, err := limiter.Allow(ctx, "5.6.7.8:jane", "login", 5, time.Minute)
	if err != nil {
		t.Fatalf("Allow returned error: %v", err)
	}
	if !ok {
		t.Fatalf("a different identifier must not share the counter")
	}

	ok, err = limiter.Allow(ctx, "1.2.3.4:john", "register", 5, time.Minute)
	if err != nil {
		t.Fatalf("Allow returned error: %v", err)
	}
	if !ok {
		t.Fatalf("a different action must not share the counter")
	}
}

func TestRateLimiterReset(t *testing.T) {
	limiter := NewRateLimiter(store.NewMemoryStorage())
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		limiter.Allow(ctx, "1.2.3.4:john", "login", 5, time.Minute)
	}
	if err := limiter.Reset(ctx, "1.2.3.4:john", "login"); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}

	ok, err := limiter.Allow(ctx, "1.2.3.4:john", "login", 5, time.Minute)
	if err != nil {
		t.Fatalf("Allow returned error: %v", err)
	}
	if !ok {
		t.Fatalf("attempt after reset should be allowed")
	}
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	limiter := NewRateLimiter(store.NewMemoryStorage())
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		limiter.Allow(ctx, "1.2.3.4:john", "login", 5, 50*time.Millisecond)
	}
	time.Sleep(80 * time.Millisecond)

	ok, err := limiter.Allow(ctx, "1.2.3.4:john", "login", 5, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("Allow returned error: %v", err)
	}
	if !ok {
		t.Fatalf("counter should have expired with the window")
	}
}

func TestRateLimiterRemaining(t *testing.T) {
	limiter := NewRateLimiter(store.NewMemoryStorage())
	ctx := context.Background()

	left, err := limiter.Remaining(ctx, "1.2.3.4:john", "login", 5)
	if err != nil {
		t.Fatalf("Remaining returned error: %v", err)
	}
	if left != 5 {
		t.Fatalf("Remaining = %d, want 5 before any attempt", left)
	}

	limiter.Allow(ctx, "1.2.3.4:john", "login", 5, time.Minute)
	limiter.Allow(ctx, "1.2.3.4:john", "login", 5, time.Minute)

	left, err = limiter.Remaining(ctx, "1.2.3.4:john", "login", 5)
	if err != nil {
		t.Fatalf("Remaining returned error: %v", err)
	}
	if left != 3 {
		t.Fatalf("Remaining = %d, want 3 after two attempts", left)
	}
}
