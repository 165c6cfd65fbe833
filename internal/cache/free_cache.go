package cache

import (
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

var _ Cache = (*FreeCache)(nil)

const DefaultSizeBytes = 16 * 1024 * 1024

// FreeCache is a byte-slice cache kept off the GC's back. Entries larger than
// 1/1024 of the cache size are rejected by freecache.
type FreeCache struct {
	mainCache *freecache.Cache
}

func NewFreeCache(sizeBytes int) *FreeCache {
	if sizeBytes <= 0 {
		sizeBytes = DefaultSizeBytes
	}
	return &FreeCache{
		mainCache: freecache.NewCache(sizeBytes),
	}
}

func (fc *FreeCache) Get(key string) ([]byte, bool) {
	val, err := fc.mainCache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (fc *FreeCache) Set(key string, value []byte, ttl time.Duration) bool {
	if err := fc.mainCache.Set([]byte(key), value, int(ttl.Seconds())); err != nil {
		log.Warnf("cache set [%s]: %s", key, err)
		return false
	}
	return true
}

func (fc *FreeCache) Clear() {
	fc.mainCache.Clear()
}

func (fc *FreeCache) EntryCount() int64 {
	return fc.mainCache.EntryCount()
}
