package store

import (
	"context"
	"sync"
	"time"

	"github.com/spf13/cast"
)

type memoryEntry struct {
	fields    map[string]any
	expiresAt time.Time // zero means no expiry
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryStorage is a process-local Storage used when no Redis is configured
// and in tests. Field semantics mirror RedisStorage (hash per key).
type MemoryStorage struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		entries: make(map[string]*memoryEntry),
	}
}

func (s *MemoryStorage) lookup(key string) *memoryEntry {
	entry, ok := s.entries[key]
	if !ok {
		return nil
	}
	if entry.expired(time.Now()) {
		delete(s.entries, key)
		return nil
	}
	return entry
}

func (s *MemoryStorage) upsert(key string) *memoryEntry {
	if entry := s.lookup(key); entry != nil {
		return entry
	}
	entry := &memoryEntry{fields: make(map[string]any)}
	s.entries[key] = entry
	return entry
}

func (s *MemoryStorage) Get(ctx context.Context, key string, val any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.lookup(key)
	if entry == nil {
		return ErrNotFound
	}
	if dst, ok := val.(*map[string]any); ok {
		out := make(map[string]any, len(entry.fields))
		for k, v := range entry.fields {
			out[k] = v
		}
		*dst = out
		return nil
	}
	return nil
}

func (s *MemoryStorage) Set(ctx context.Context, key string, val any, expiresIn time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// a map value spreads into hash fields, matching redis HSet
	fields := make(map[string]any)
	if m, ok := val.(map[string]any); ok {
		for k, v := range m {
			fields[k] = v
		}
	} else {
		fields["value"] = val
	}
	entry := &memoryEntry{fields: fields}
	if expiresIn >= 0 {
		entry.expiresAt = time.Now().Add(expiresIn)
	}
	s.entries[key] = entry
	return nil
}

func (s *MemoryStorage) Save(ctx context.Context, key string, val any) error {
	return s.Set(ctx, key, val, -1)
}

func (s *MemoryStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lookup(key) == nil {
		return ErrNotFound
	}
	delete(s.entries, key)
	return nil
}

func (s *MemoryStorage) Expire(ctx context.Context, key string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry := s.lookup(key); entry != nil {
		entry.expiresAt = expiresAt
	}
	return nil
}

func (s *MemoryStorage) SetAttr(ctx context.Context, key string, field string, val any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsert(key).fields[field] = val
	return nil
}

func (s *MemoryStorage) GetAttr(ctx context.Context, key, field string, val any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.lookup(key)
	if entry == nil {
		return ErrNotFound
	}
	raw, ok := entry.fields[field]
	if !ok {
		return ErrNotFound
	}
	switch dst := val.(type) {
	case *string:
		*dst = cast.ToString(raw)
	case *int64:
		*dst = cast.ToInt64(raw)
	case *int:
		*dst = cast.ToInt(raw)
	case *bool:
		*dst = cast.ToBool(raw)
	}
	return nil
}

func (s *MemoryStorage) IncrAttr(ctx context.Context, key, field string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.upsert(key)
	next := cast.ToInt64(entry.fields[field]) + delta
	entry.fields[field] = next
	return next, nil
}

func (s *MemoryStorage) DelAttr(ctx context.Context, key string, field string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry := s.lookup(key); entry != nil {
		delete(entry.fields, field)
	}
	return nil
}

func (s *MemoryStorage) TTL(ctx context.Context, key string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.lookup(key)
	if entry == nil {
		return -2, ErrNotFound
	}
	if entry.expiresAt.IsZero() {
		return -1, nil
	}
	return time.Until(entry.expiresAt), nil
}
