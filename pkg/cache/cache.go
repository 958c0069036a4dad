package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a typed key-value store with expiry.
//
// A zero ttl in Set means the cache's default TTL; a negative ttl means the
// entry never expires.
type Cache[V any] interface {
	// Get returns ErrNotFound for missing or expired keys.
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NoStore, returned as the ttl from a GetOrSet fn, hands the value to the
// caller without caching it.
const NoStore time.Duration = math.MinInt64

// inflight deduplicates concurrent misses. Keys are scoped to the cache
// instance so two caches of different value types never share a call.
var inflight singleflight.Group

// GetOrSet returns the cached value for key or computes, stores and returns it.
// Concurrent misses for the same key share a single call to fn; on the daily
// issue this keeps the web page and the send from generating content twice.
// Errors from fn are returned and nothing is stored; a failed Set is ignored.
// fn may return NoStore as the ttl to skip caching a single result.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, fn func(ctx context.Context) (V, time.Duration, error)) (V, error) {
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	type computed struct {
		val V
		ttl time.Duration
	}
	res, err, _ := inflight.Do(fmt.Sprintf("%p/%s", c, key), func() (any, error) {
		val, ttl, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return computed{val: val, ttl: ttl}, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	r := res.(computed)
	if r.ttl != NoStore {
		_ = c.Set(ctx, key, r.val, r.ttl)
	}
	return r.val, nil
}

func marshal[V any](v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func unmarshal[V any](data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}
