package storage

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	cache := NewMemoryCache(10)
	defer cache.Close()
	ctx := context.Background()

	if err := cache.Set(ctx, "a", []byte("alpha")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, ok, err := cache.Get(ctx, "a")
	if err != nil || !ok {
		t.Fatalf("Expected hit, got ok=%v err=%v", ok, err)
	}
	if string(value) != "alpha" {
		t.Errorf("Expected alpha, got %s", value)
	}

	// Returned slices must not alias cache storage
	value[0] = 'X'
	again, _, _ := cache.Get(ctx, "a")
	if string(again) != "alpha" {
		t.Errorf("Cache value was mutated through returned slice: %s", again)
	}

	if _, ok, _ := cache.Get(ctx, "missing"); ok {
		t.Error("Expected miss for unknown key")
	}

	stats := cache.Stats()
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("Expected 2 hits and 1 miss, got %+v", stats)
	}
}

func TestMemoryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewMemoryCache(2)
	defer cache.Close()
	ctx := context.Background()

	cache.Set(ctx, "a", []byte("1"))
	cache.Set(ctx, "b", []byte("2"))
	cache.Get(ctx, "a") // a is now most recent
	cache.Set(ctx, "c", []byte("3"))

	if _, ok, _ := cache.Get(ctx, "b"); ok {
		t.Error("Expected b to be evicted")
	}
	if _, ok, _ := cache.Get(ctx, "a"); !ok {
		t.Error("Expected a to survive eviction")
	}
	if cache.Size() != 2 {
		t.Errorf("Expected size 2, got %d", cache.Size())
	}
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	cache := NewMemoryCacheWithTTL(10, 20*time.Millisecond)
	defer cache.Close()
	ctx := context.Background()

	cache.Set(ctx, "a", []byte("1"))
	time.Sleep(50 * time.Millisecond)

	if _, ok, _ := cache.Get(ctx, "a"); ok {
		t.Error("Expected entry to expire")
	}
}

func TestMemoryCache_DeleteClearClose(t *testing.T) {
	cache := NewMemoryCache(10)
	ctx := context.Background()

	cache.Set(ctx, "a", []byte("1"))
	cache.Set(ctx, "b", []byte("2"))

	cache.Delete(ctx, "a")
	if _, ok, _ := cache.Get(ctx, "a"); ok {
		t.Error("Expected a to be deleted")
	}

	cache.Clear(ctx)
	if cache.Size() != 0 {
		t.Errorf("Expected empty cache after Clear, got %d", cache.Size())
	}

	cache.Close()
	if err := cache.Set(ctx, "c", []byte("3")); err != ErrCacheClosed {
		t.Errorf("Expected ErrCacheClosed, got %v", err)
	}
}
