package store

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStorageAttrs(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	if err := storage.SetAttr(ctx, "user:1", "name", "john"); err != nil {
		t.Fatalf("SetAttr returned error: %v", err)
	}

	var name string
	if err := storage.GetAttr(ctx, "user:1", "name", &name); err != nil {
		t.Fatalf("GetAttr returned error: %v", err)
	}
	if name != "john" {
		t.Fatalf("GetAttr = %q, want %q", name, "john")
	}

	if err := storage.GetAttr(ctx, "user:1", "missing", &name); err != ErrNotFound {
		t.Fatalf("GetAttr on missing field = %v, want ErrNotFound", err)
	}
	if err := storage.GetAttr(ctx, "missing", "name", &name); err != ErrNotFound {
		t.Fatalf("GetAttr on missing key = %v, want ErrNotFound", err)
	}
}

// Set with a map value must land each entry in its own hash field so that
// GetAttr reads it back, the same contract the redis backend gets from HSet.
func TestMemoryStorageSetMapThenGetAttr(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	err := storage.Set(ctx, "maintenance_mode", map[string]any{"value": "true"}, time.Minute)
	if err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	var got string
	if err := storage.GetAttr(ctx, "maintenance_mode", "value", &got); err != nil {
		t.Fatalf("GetAttr returned error: %v", err)
	}
	if got != "true" {
		t.Fatalf("GetAttr after Set = %q, want %q", got, "true")
	}
}

func TestMemoryStorageSetScalarThenGetAttr(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	if err := storage.Set(ctx, "greeting", "hello", time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	var got string
	if err := storage.GetAttr(ctx, "greeting", "value", &got); err != nil {
		t.Fatalf("GetAttr returned error: %v", err)
	}
	if got != "hello" {
		t.Fatalf("GetAttr after Set = %q, want %q", got, "hello")
	}
}

func TestMemoryStorageIncrAttr(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := storage.IncrAttr(ctx, "counter", "count", 1)
		if err != nil {
			t.Fatalf("IncrAttr returned error: %v", err)
		}
		if got != want {
			t.Fatalf("IncrAttr = %d, want %d", got, want)
		}
	}
}

func TestMemoryStorageExpiry(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	if _, err := storage.IncrAttr(ctx, "counter", "count", 1); err != nil {
		t.Fatalf("IncrAttr returned error: %v", err)
	}
	if err := storage.Expire(ctx, "counter", time.Now().Add(30*time.Millisecond)); err != nil {
		t.Fatalf("Expire returned error: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	var count int64
	if err := storage.GetAttr(ctx, "counter", "count", &count); err != ErrNotFound {
		t.Fatalf("expected expired key to be gone, got err=%v count=%d", err, count)
	}
}

func TestStorageWithPrefixIsolation(t *testing.T) {
	backing := NewMemoryStorage()
	ctx := context.Background()

	a := StorageWithPrefix(backing, "a:")
	b := StorageWithPrefix(backing, "b:")

	if err := a.SetAttr(ctx, "key", "field", "from-a"); err != nil {
		t.Fatalf("SetAttr returned error: %v", err)
	}

	var got string
	if err := b.GetAttr(ctx, "key", "field", &got); err != ErrNotFound {
		t.Fatalf("prefixed storages must not share keys, got err=%v val=%q", err, got)
	}
	if err := a.GetAttr(ctx, "key", "field", &got); err != nil || got != "from-a" {
		t.Fatalf("GetAttr through prefix = %q, %v", got, err)
	}
}

func TestMemoryStorageDelete(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	if err := storage.Delete(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("Delete on missing key = %v, want ErrNotFound", err)
	}

	storage.SetAttr(ctx, "key", "field", 1)
	if err := storage.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	var val int
	if err := storage.GetAttr(ctx, "key", "field", &val); err != ErrNotFound {
		t.Fatalf("deleted key still readable: %v", err)
	}
}
