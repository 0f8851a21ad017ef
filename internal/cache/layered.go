package cache

import (
	"context"
	"time"
)

// Layered puts a memory tier in front of a persistent tier. Reads that
// miss memory fall through and promote the persistent entry with its
// original write time, so promotion never makes stale data look fresh.
type Layered struct {
	memory     *MemoryStore
	persistent Store
}

// NewLayered builds a layered store. persistent may be nil, which leaves
// a memory-only cache.
func NewLayered(persistent Store) *Layered {
	return &Layered{
		memory:     NewMemoryStore(),
		persistent: persistent,
	}
}

// Get implements Store.
func (l *Layered) Get(ctx context.Context, key string, maxAge time.Duration) ([]byte, bool) {
	return getFresh(ctx, l, key, maxAge)
}

// Set implements Store.
func (l *Layered) Set(ctx context.Context, key string, payload []byte) error {
	return l.PutEntry(ctx, key, Entry{WrittenAt: time.Now(), Payload: payload})
}

// Clear implements Store.
func (l *Layered) Clear(ctx context.Context, key string) error {
	_ = l.memory.Clear(ctx, key)
	if l.persistent != nil {
		return l.persistent.Clear(ctx, key)
	}
	return nil
}

// GetEntry implements Store.
func (l *Layered) GetEntry(ctx context.Context, key string) (Entry, bool) {
	if e, ok := l.memory.GetEntry(ctx, key); ok {
		return e, true
	}
	if l.persistent == nil {
		return Entry{}, false
	}
	e, ok := l.persistent.GetEntry(ctx, key)
	if !ok {
		return Entry{}, false
	}
	_ = l.memory.PutEntry(ctx, key, e)
	return e, true
}

// PutEntry implements Store.
func (l *Layered) PutEntry(ctx context.Context, key string, e Entry) error {
	if err := l.memory.PutEntry(ctx, key, e); err != nil {
		return err
	}
	if l.persistent != nil {
		return l.persistent.PutEntry(ctx, key, e)
	}
	return nil
}
