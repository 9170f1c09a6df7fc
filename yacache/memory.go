package yacache

import (
	"context"
	"net/http"
	"sync"
	"time"
	"weak"

	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
)

type memoryItem struct {
	value     string
	expiresAt time.Time
}

func newMemoryItem(value string, ttl time.Duration) memoryItem {
	item := memoryItem{value: value}

	if ttl > 0 {
		item.expiresAt = time.Now().Add(ttl)
	}

	return item
}

func (i memoryItem) isExpired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// Memory is a threadsafe, TTL-aware map-backed cache for single-process bots and
// tests. Expired items are invisible immediately and purged by a background sweeper.
//
// Example:
//
//	memory := yacache.NewMemory(30 * time.Second)
//	_ = memory.Set(ctx, "key", "value", time.Hour)
type Memory struct {
	items  map[string]memoryItem
	mutex  sync.RWMutex
	done   chan struct{}
	closed sync.Once
}

// NewMemory builds an empty Memory cache and starts the background sweeper.
// tickToClean is the sweep interval.
func NewMemory(tickToClean time.Duration) *Memory {
	memory := &Memory{
		items: make(map[string]memoryItem),
		done:  make(chan struct{}),
	}

	go cleanup(weak.Make(memory), tickToClean, memory.done)

	return memory
}

// cleanup holds only a weak pointer so an unreachable Memory that was never closed
// can still be collected.
func cleanup(pointer weak.Pointer[Memory], tickToClean time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(tickToClean)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			memory := pointer.Value()
			if memory == nil {
				return
			}

			memory.sweep(time.Now())
		case <-done:
			return
		}
	}
}

func (m *Memory) sweep(now time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for key, item := range m.items {
		if item.isExpired(now) {
			delete(m.items, key)
		}
	}
}

// lookup must be called with the mutex held.
func (m *Memory) lookup(key string, now time.Time) (memoryItem, bool) {
	item, ok := m.items[key]
	if !ok || item.isExpired(now) {
		return memoryItem{}, false
	}

	return item, true
}

func (m *Memory) SetNX(_ context.Context, key string, value string, ttl time.Duration) (bool, yaerrors.Error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.lookup(key, time.Now()); ok {
		return false, nil
	}

	m.items[key] = newMemoryItem(value, ttl)

	return true, nil
}

func (m *Memory) Set(_ context.Context, key string, value string, ttl time.Duration) yaerrors.Error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.items[key] = newMemoryItem(value, ttl)

	return nil
}

func (m *Memory) Get(_ context.Context, key string) (string, yaerrors.Error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	item, ok := m.lookup(key, time.Now())
	if !ok {
		return "", yaerrors.FromError(
			http.StatusNotFound,
			ErrCacheKeyNotFound,
			"[MEMORY] failed to get `"+key+"`",
		)
	}

	return item.value, nil
}

func (m *Memory) Exists(_ context.Context, keys ...string) (bool, yaerrors.Error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	now := time.Now()

	for _, key := range keys {
		if _, ok := m.lookup(key, now); !ok {
			return false, nil
		}
	}

	return true, nil
}

func (m *Memory) Del(_ context.Context, key string) yaerrors.Error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.items, key)

	return nil
}

func (m *Memory) Ping(_ context.Context) yaerrors.Error {
	select {
	case <-m.done:
		return yaerrors.FromError(http.StatusServiceUnavailable, ErrCacheClosed, "[MEMORY] ping failed")
	default:
		return nil
	}
}

// Close stops the sweeper. It is safe to call more than once.
func (m *Memory) Close() yaerrors.Error {
	m.closed.Do(func() {
		close(m.done)
	})

	return nil
}

// Len returns the number of stored items, expired ones not yet swept included.
func (m *Memory) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.items)
}
