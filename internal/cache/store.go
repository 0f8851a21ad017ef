package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Entry is the stored record for one key. WrittenAt travels with the
// payload so freshness survives tier promotion and process restarts.
type Entry struct {
	WrittenAt time.Time       `json:"written_at"`
	Payload   json.RawMessage `json:"payload"`
}

// Store is a keyed (payload, timestamp) map with lazy staleness: entries
// are never evicted by a background thread, a caller-supplied max age is
// evaluated at read time instead. Implementations must never return an
// error for malformed stored data; they clear the entry and report a miss.
type Store interface {
	// Get returns the payload if the entry exists and is no older than
	// maxAge. A negative maxAge disables the freshness check.
	Get(ctx context.Context, key string, maxAge time.Duration) ([]byte, bool)

	// Set overwrites the entry for key, recording the current time.
	Set(ctx context.Context, key string, payload []byte) error

	// Clear removes the entry. Used for explicit invalidation when a
	// caller detects an unexpected payload shape.
	Clear(ctx context.Context, key string) error

	// GetEntry returns the raw entry without a freshness check.
	GetEntry(ctx context.Context, key string) (Entry, bool)

	// PutEntry stores an entry verbatim, preserving its WrittenAt.
	PutEntry(ctx context.Context, key string, e Entry) error
}

// getFresh applies the shared max-age rule on top of GetEntry.
func getFresh(ctx context.Context, s Store, key string, maxAge time.Duration) ([]byte, bool) {
	e, ok := s.GetEntry(ctx, key)
	if !ok {
		return nil, false
	}
	if maxAge >= 0 && time.Since(e.WrittenAt) > maxAge {
		return nil, false
	}
	return e.Payload, true
}

// MemoryStore is the in-process cache tier.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

// Get implements Store.
func (m *MemoryStore) Get(ctx context.Context, key string, maxAge time.Duration) ([]byte, bool) {
	return getFresh(ctx, m, key, maxAge)
}

// Set implements Store.
func (m *MemoryStore) Set(ctx context.Context, key string, payload []byte) error {
	return m.PutEntry(ctx, key, Entry{WrittenAt: time.Now(), Payload: append([]byte(nil), payload...)})
}

// Clear implements Store.
func (m *MemoryStore) Clear(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// GetEntry implements Store.
func (m *MemoryStore) GetEntry(_ context.Context, key string) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e, ok
}

// PutEntry implements Store.
func (m *MemoryStore) PutEntry(_ context.Context, key string, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = e
	return nil
}
