// Package cache stores rendered page responses and rate limit counters in
// Redis. Every operation degrades to a no-op when Redis is not configured.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/fatales/internal/locale"
)

// KeyPrefix namespaces every page entry so Purge never touches limiter keys.
const KeyPrefix = "storefront:"

const opTimeout = 2 * time.Second

// Store caches serialized page responses.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Purge(ctx context.Context) (int, error)
}

// Counter counts hits on a key inside a fixed window.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Connect dials Redis. It returns nil when addr is empty or the server does
// not answer, in which case callers fall back to Noop.
func Connect(addr, password string, db int) *redis.Client {
	if strings.TrimSpace(addr) == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[Cache] redis %s unavailable, caching disabled: %v", addr, err)
		_ = client.Close()
		return nil
	}

	log.Printf("[Cache] redis connected: %s", addr)
	return client
}

// PageKey builds the cache key of a page for a locale and its parameters.
// Empty parameters are kept so positional meaning is preserved.
func PageKey(page string, loc locale.Locale, params ...string) string {
	parts := append([]string{page, loc.String()}, params...)
	return KeyPrefix + strings.Join(parts, ":")
}

// Redis is a Store and Counter backed by a go-redis client.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis wraps client. Entries expire after ttl.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Get returns a cached value. Misses and Redis failures both report false.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[Cache] get %s: %v", key, err)
		}
		return nil, false
	}
	return data, true
}

// Set stores value under key with the configured TTL.
func (r *Redis) Set(ctx context.Context, key string, value []byte) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		log.Printf("[Cache] set %s: %v", key, err)
	}
}

// Purge deletes every page entry and returns how many were removed.
func (r *Redis) Purge(ctx context.Context) (int, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, KeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("scan page keys: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	removed, err := r.client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("delete page keys: %w", err)
	}
	return int(removed), nil
}

// Hit increments key and starts its window on the first hit. A counter left
// without an expiry, e.g. after a failed EXPIRE, gets one on the next hit.
func (r *Redis) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}
	if ttl.Val() < 0 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, fmt.Errorf("expire %s: %w", key, err)
		}
	}
	return incr.Val(), nil
}

// Noop is used when Redis is disabled.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool) { return nil, false }

func (Noop) Set(context.Context, string, []byte) {}

func (Noop) Purge(context.Context) (int, error) { return 0, nil }

// Hit always reports zero so limits never trigger.
func (Noop) Hit(context.Context, string, time.Duration) (int64, error) { return 0, nil }

var (
	_ Store   = (*Redis)(nil)
	_ Counter = (*Redis)(nil)
	_ Store   = Noop{}
	_ Counter = Noop{}
)
