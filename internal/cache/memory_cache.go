package cache

import (
	"sync"
	"time"
)

var _ Cache = (*MemoryCache)(nil)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is a map backed Cache, handy in tests where freecache
// expiry (whole seconds) gets in the way.
type MemoryCache struct {
	cache map[string]memoryEntry
	mutex sync.Mutex
	now   func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

func (mc *MemoryCache) Get(key string) ([]byte, bool) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	entry, ok := mc.cache[key]
	if !ok {
		return nil, false
	}
	if !entry.expiresAt.IsZero() && !mc.now().Before(entry.expiresAt) {
		delete(mc.cache, key)
		return nil, false
	}
	return entry.value, true
}

func (mc *MemoryCache) Set(key string, value []byte, ttl time.Duration) bool {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = mc.now().Add(ttl)
	}
	mc.cache[key] = entry
	return true
}

func (mc *MemoryCache) Clear() {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	mc.cache = make(map[string]memoryEntry)
}
