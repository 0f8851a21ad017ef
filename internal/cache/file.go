package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileStore persists entries as one JSON file per key, so cached season
// schedules survive restarts on the panel host. Writes go through a temp
// file and rename, which keeps reads atomic per key.
type FileStore struct {
	dir string
}

// NewFileStore creates the cache directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Get implements Store.
func (f *FileStore) Get(ctx context.Context, key string, maxAge time.Duration) ([]byte, bool) {
	return getFresh(ctx, f, key, maxAge)
}

// Set implements Store.
func (f *FileStore) Set(ctx context.Context, key string, payload []byte) error {
	return f.PutEntry(ctx, key, Entry{WrittenAt: time.Now(), Payload: payload})
}

// Clear implements Store.
func (f *FileStore) Clear(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear cache entry %s: %w", key, err)
	}
	return nil
}

// GetEntry implements Store. A file that fails to decode is removed and
// reported as a miss; that recovers from cache formats older builds wrote.
func (f *FileStore) GetEntry(ctx context.Context, key string) (Entry, bool) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		return Entry{}, false
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil || e.Payload == nil {
		_ = f.Clear(ctx, key)
		return Entry{}, false
	}
	return e, true
}

// PutEntry implements Store.
func (f *FileStore) PutEntry(_ context.Context, key string, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := os.Rename(tmp, f.path(key)); err != nil {
		return fmt.Errorf("commit cache entry: %w", err)
	}
	return nil
}

func (f *FileStore) path(key string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return '_'
	}, key)
	return filepath.Join(f.dir, safe+".json")
}
