package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/labstock/inventory/internal/domain"
)

func screwSpec() domain.ParsedSpec {
	spec := domain.NewParsedSpec(domain.CategoryFastener)
	spec.Specs["thread_size"] = domain.StringSpec("M6")
	spec.Specs["diameter_mm"] = domain.IntSpec(6)
	spec.Tags = append(spec.Tags, "M6")
	spec.Confidence = 0.9
	return spec
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	defer cache.Close()

	cache.Set("M6 screw", screwSpec())

	got, ok := cache.Get("M6 screw")
	if !ok {
		t.Fatal("Get() miss, want hit")
	}
	if got.Category != domain.CategoryFastener || got.Specs["thread_size"].Str != "M6" || got.Confidence != 0.9 {
		t.Errorf("Get() = %+v, want the stored spec", got)
	}
}

func TestMemoryCache_Get_CacheMiss(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	defer cache.Close()

	if _, ok := cache.Get("non-existent-key"); ok {
		t.Error("Get() hit, want miss")
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	defer cache.Close()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Set("key", screwSpec())
	if _, ok := cache.Get("key"); !ok {
		t.Fatal("Get() before expiry missed")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := cache.Get("key"); ok {
		t.Error("Get() after expiry hit, want miss")
	}

	cache.removeExpired()
	if size := cache.Size(); size != 0 {
		t.Errorf("Size() = %d after cleanup, want 0", size)
	}
}

func TestMemoryCache_ValuesAreCopied(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	defer cache.Close()

	spec := screwSpec()
	cache.Set("key", spec)
	spec.Specs["thread_size"] = domain.StringSpec("M8")

	got, _ := cache.Get("key")
	got.Tags[0] = "changed"
	got.Specs["extra"] = domain.IntSpec(1)

	again, _ := cache.Get("key")
	if again.Specs["thread_size"].Str != "M6" {
		t.Errorf("stored spec changed through the caller's copy: %v", again.Specs["thread_size"])
	}
	if again.Tags[0] != "M6" || len(again.Specs) != 2 {
		t.Errorf("stored spec changed through a returned copy: %+v", again)
	}
}

func TestMemoryCache_DefaultTTL(t *testing.T) {
	cache := NewMemoryCache(0)
	defer cache.Close()

	if cache.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", cache.ttl, DefaultTTL)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	defer cache.Close()

	cache.Set("delete-test", screwSpec())
	cache.Delete("delete-test")

	if _, ok := cache.Get("delete-test"); ok {
		t.Error("Get() after delete hit, want miss")
	}
}

func TestMemoryCache_SizeAndClear(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	defer cache.Close()

	if size := cache.Size(); size != 0 {
		t.Errorf("Size() = %d, want 0 for empty cache", size)
	}

	for i := 0; i < 5; i++ {
		cache.Set(fmt.Sprintf("key-%d", i), screwSpec())
	}
	if size := cache.Size(); size != 5 {
		t.Errorf("Size() = %d, want 5", size)
	}

	cache.Clear()
	if size := cache.Size(); size != 0 {
		t.Errorf("Size() = %d, want 0 after clear", size)
	}
}

func TestMemoryCache_CloseIsIdempotent(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	cache.Close()
	cache.Close()
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	defer cache.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", id)
			cache.Set(key, screwSpec())
			if _, ok := cache.Get(key); !ok {
				t.Errorf("Concurrent Get(%s) missed", key)
			}
		}(i)
	}
	wg.Wait()
}
