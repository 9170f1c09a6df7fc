// Package yacache provides the key-value cache the webhook uses to remember which
// updates it has already seen and to keep dispatch journals around for inspection.
//
// There are two back-ends with the same API: an in-memory map protected by a
// RW-mutex and a Redis wrapper. Pick Redis when several webhook replicas share one
// bot, since de-duplication only works across processes with a shared store.
//
// # Quick start (in-memory)
//
//	cache := yacache.NewMemory(time.Minute)
//	defer cache.Close()
//
//	fresh, _ := cache.SetNX(ctx, "update:42", "1", time.Hour) // true
//	fresh, _ = cache.SetNX(ctx, "update:42", "1", time.Hour)  // false
//
// # Quick start (Redis)
//
//	client, err := yacache.NewRedisClient(ctx, "localhost:6379", "", 0, log)
//	cache := yacache.NewRedis(client)
//	_ = cache.Set(ctx, "journal:42", encoded, time.Hour)
package yacache

import (
	"context"
	"time"

	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
)

// Cache is a string key-value store with per-key TTL. A zero ttl stores the value
// indefinitely.
//
// Each method returns a yaerrors.Error so callers can propagate codes and
// tracebacks up the call stack.
type Cache interface {
	// SetNX stores key only when it is absent and reports whether it did.
	//
	// Example:
	//
	//	fresh, _ := c.SetNX(ctx, "update:42", "1", 24*time.Hour)
	//	if !fresh {
	//		// duplicate delivery
	//	}
	SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, yaerrors.Error)

	// Set stores key, overwriting any previous value and TTL.
	Set(ctx context.Context, key string, value string, ttl time.Duration) yaerrors.Error

	// Get returns the value under key or an error wrapping ErrCacheKeyNotFound.
	Get(ctx context.Context, key string) (string, yaerrors.Error)

	// Exists reports whether every given key is present.
	Exists(ctx context.Context, keys ...string) (bool, yaerrors.Error)

	// Del removes key. Deleting a missing key is not an error.
	Del(ctx context.Context, key string) yaerrors.Error

	// Ping verifies that the back-end is reachable.
	Ping(ctx context.Context) yaerrors.Error

	// Close releases resources. The cache must not be used afterwards.
	Close() yaerrors.Error
}
