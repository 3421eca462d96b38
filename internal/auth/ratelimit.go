package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/tayothecoder/cornerfield-sub004/internal/store"
	"github.com/tayothecoder/cornerfield-sub004/params"
)

// RateLimiter counts attempts per identifier+action within a rolling window.
// Counters live in the shared cache storage and rely on its atomic
// increment, so concurrent requests cannot race past the limit.
type RateLimiter struct {
	storage store.Storage
}

func NewRateLimiter(storage store.Storage) *RateLimiter {
	return &RateLimiter{
		storage: store.StorageWithPrefix(storage, params.RateLimitKeyPrefix),
	}
}

func counterKey(identifier, action string) string {
	return fmt.Sprintf("%s:%s", action, identifier)
}

// Allow records one attempt and reports whether the caller is still within
// max attempts per window. Once the limit is hit further attempts fail
// without extending the window.
func (r *RateLimiter) Allow(ctx context.Context, identifier, action string, max int64, window time.Duration) (bool, error) {
	key := counterKey(identifier, action)
	count, err := r.storage.IncrAttr(ctx, key, "count", 1)
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := r.storage.Expire(ctx, key, time.Now().Add(window)); err != nil {
			return false, err
		}
	}
	return count <= max, nil
}

// Remaining reports how many attempts are left in the current window.
func (r *RateLimiter) Remaining(ctx context.Context, identifier, action string, max int64) (int64, error) {
	var count int64
	err := r.storage.GetAttr(ctx, counterKey(identifier, action), "count", &count)
	if err == store.ErrNotFound {
		return max, nil
	}
	if err != nil {
		return 0, err
	}
	if count >= max {
		return 0, nil
	}
	return max - count, nil
}

// Reset clears the counter, e.g. after a successful login.
func (r *RateLimiter) Reset(ctx context.Context, identifier, action string) error {
	err := r.storage.Delete(ctx, counterKey(identifier, action))
	if err == store.ErrNotFound {
		return nil
	}
	return err
}
