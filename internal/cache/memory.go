package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is an in-process Cache used when no redis address is
// configured (and in tests). Expired entries are dropped lazily on read.
type MemoryCache struct {
	entries sync.Map // key -> memoryEntry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := m.entries.Load(key)
	if !ok {
		return nil, false
	}
	entry := v.(memoryEntry)
	if time.Now().After(entry.expiresAt) {
		m.entries.Delete(key)
		return nil, false
	}
	return entry.value, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	m.entries.Store(key, memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
}

func (m *MemoryCache) Delete(_ context.Context, key string) {
	m.entries.Delete(key)
}
