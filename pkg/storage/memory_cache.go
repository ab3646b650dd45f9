package storage

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultMemoryCacheSize bounds the number of cached responses
const DefaultMemoryCacheSize = 1000

type cacheItem struct {
	key       string
	value     []byte
	timestamp time.Time
	element   *list.Element
}

// MemoryCache implements an LRU cache with optional TTL
type MemoryCache struct {
	maxSize int
	ttl     time.Duration
	items   map[string]*cacheItem
	lruList *list.List
	mu      sync.Mutex

	hits   uint64
	misses uint64

	stop      chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
}

// NewMemoryCache creates a cache without TTL
func NewMemoryCache(maxSize int) *MemoryCache {
	return NewMemoryCacheWithTTL(maxSize, 0)
}

// NewMemoryCacheWithTTL creates a cache whose entries expire after ttl.
// A sweeper goroutine runs until Close when ttl is positive.
func NewMemoryCacheWithTTL(maxSize int, ttl time.Duration) *MemoryCache {
	if maxSize <= 0 {
		maxSize = DefaultMemoryCacheSize
	}

	cache := &MemoryCache{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*cacheItem),
		lruList: list.New(),
		stop:    make(chan struct{}),
	}

	if ttl > 0 {
		go cache.cleanupRoutine()
	}

	return cache
}

// Set adds or updates an item. The value is copied.
func (mc *MemoryCache) Set(ctx context.Context, key string, value []byte) error {
	if mc.closed.Load() {
		return ErrCacheClosed
	}

	stored := append([]byte(nil), value...)

	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := time.Now()

	if item, exists := mc.items[key]; exists {
		item.value = stored
		item.timestamp = now
		mc.lruList.MoveToFront(item.element)
		return nil
	}

	item := &cacheItem{
		key:       key,
		value:     stored,
		timestamp: now,
	}
	item.element = mc.lruList.PushFront(item)
	mc.items[key] = item

	if len(mc.items) > mc.maxSize {
		mc.evictOldest()
	}

	return nil
}

// Get retrieves an item and marks it as recently used
func (mc *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if mc.closed.Load() {
		return nil, false, ErrCacheClosed
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	item, exists := mc.items[key]
	if !exists {
		atomic.AddUint64(&mc.misses, 1)
		return nil, false, nil
	}

	if mc.expired(item, time.Now()) {
		mc.deleteItem(item)
		atomic.AddUint64(&mc.misses, 1)
		return nil, false, nil
	}

	mc.lruList.MoveToFront(item.element)
	atomic.AddUint64(&mc.hits, 1)

	return append([]byte(nil), item.value...), true, nil
}

// Delete removes an item
func (mc *MemoryCache) Delete(ctx context.Context, key string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if item, exists := mc.items[key]; exists {
		mc.deleteItem(item)
	}
	return nil
}

// Clear removes all items
func (mc *MemoryCache) Clear(ctx context.Context) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.items = make(map[string]*cacheItem)
	mc.lruList = list.New()
	return nil
}

// Size returns the current number of items
func (mc *MemoryCache) Size() int {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return len(mc.items)
}

// Stats returns cache statistics
func (mc *MemoryCache) Stats() CacheStats {
	mc.mu.Lock()
	size := len(mc.items)
	mc.mu.Unlock()

	return CacheStats{
		Size:    size,
		MaxSize: mc.maxSize,
		TTL:     mc.ttl,
		Hits:    atomic.LoadUint64(&mc.hits),
		Misses:  atomic.LoadUint64(&mc.misses),
	}
}

// Close stops the sweeper and rejects further reads and writes
func (mc *MemoryCache) Close() error {
	mc.closeOnce.Do(func() {
		mc.closed.Store(true)
		close(mc.stop)
	})
	return nil
}

func (mc *MemoryCache) expired(item *cacheItem, now time.Time) bool {
	return mc.ttl > 0 && now.Sub(item.timestamp) > mc.ttl
}

func (mc *MemoryCache) evictOldest() {
	element := mc.lruList.Back()
	if element != nil {
		mc.deleteItem(element.Value.(*cacheItem))
	}
}

func (mc *MemoryCache) deleteItem(item *cacheItem) {
	delete(mc.items, item.key)
	mc.lruList.Remove(item.element)
}

func (mc *MemoryCache) cleanupRoutine() {
	ticker := time.NewTicker(mc.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-mc.stop:
			return
		case <-ticker.C:
			mc.cleanupExpired()
		}
	}
}

func (mc *MemoryCache) cleanupExpired() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := time.Now()
	for _, item := range mc.items {
		if mc.expired(item, now) {
			mc.deleteItem(item)
		}
	}
}
