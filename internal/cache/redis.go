package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "scorebug:cache:"

// RedisStore is a persistent tier backed by Redis, for hosts that already
// run one. Entries are stored without a Redis TTL; staleness is evaluated
// at read time like every other tier.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects and verifies the connection.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// NewRedisStoreWithClient wraps an existing client (used by tests).
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Close closes the underlying connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

// Get implements Store.
func (r *RedisStore) Get(ctx context.Context, key string, maxAge time.Duration) ([]byte, bool) {
	return getFresh(ctx, r, key, maxAge)
}

// Set implements Store.
func (r *RedisStore) Set(ctx context.Context, key string, payload []byte) error {
	return r.PutEntry(ctx, key, Entry{WrittenAt: time.Now(), Payload: payload})
}

// Clear implements Store.
func (r *RedisStore) Clear(ctx context.Context, key string) error {
	return r.client.Del(ctx, redisKeyPrefix+key).Err()
}

// GetEntry implements Store. Corrupt values are deleted and read as a
// miss rather than surfaced as errors.
func (r *RedisStore) GetEntry(ctx context.Context, key string) (Entry, bool) {
	val, err := r.client.Get(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		return Entry{}, false
	}

	var e Entry
	if err := json.Unmarshal([]byte(val), &e); err != nil || e.Payload == nil {
		_ = r.Clear(ctx, key)
		return Entry{}, false
	}
	return e, true
}

// PutEntry implements Store.
func (r *RedisStore) PutEntry(ctx context.Context, key string, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	return r.client.Set(ctx, redisKeyPrefix+key, data, 0).Err()
}
