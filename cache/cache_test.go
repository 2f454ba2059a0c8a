package cache

import (
	"strconv"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	c := New[string, int](100)
	if c == nil {
		t.Fatal("New returned nil")
	}
	if c.Capacity() != 100 {
		t.Errorf("expected capacity 100, got %d", c.Capacity())
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}

	if got := New[string, int](0).Capacity(); got != DefaultCapacity {
		t.Errorf("zero capacity defaulted to %d, want %d", got, DefaultCapacity)
	}
}

func TestCacheGetSet(t *testing.T) {
	c := New[string, int](10)

	c.Set("key1", 42)

	val, ok := c.Get("key1")
	if !ok {
		t.Error("expected key1 to exist")
	}
	if val != 42 {
		t.Errorf("expected 42, got %d", val)
	}

	_, ok = c.Get("nonexistent")
	if ok {
		t.Error("expected nonexistent key to not exist")
	}
}

func TestCacheGetOrCreate(t *testing.T) {
	c := New[string, int](10)
	createCalled := 0

	val := c.GetOrCreate("key1", func() int {
		createCalled++
		return 100
	})
	if val != 100 {
		t.Errorf("expected 100, got %d", val)
	}
	if createCalled != 1 {
		t.Errorf("expected create called once, got %d", createCalled)
	}

	val = c.GetOrCreate("key1", func() int {
		createCalled++
		return 200
	})
	if val != 100 {
		t.Errorf("expected cached 100, got %d", val)
	}
	if createCalled != 1 {
		t.Errorf("expected create still called once, got %d", createCalled)
	}
}

func TestCacheDelete(t *testing.T) {
	c := New[string, int](10)
	c.Set("key1", 1)

	if !c.Delete("key1") {
		t.Error("expected Delete to report removal")
	}
	if c.Delete("key1") {
		t.Error("expected second Delete to report not-found")
	}
	if _, ok := c.Get("key1"); ok {
		t.Error("expected key1 to be gone")
	}
}

func TestCacheClear(t *testing.T) {
	c := New[string, int](10)
	for i := 0; i < 5; i++ {
		c.Set(strconv.Itoa(i), i)
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cache after Clear, got %d entries", c.Len())
	}
}

func TestCacheEviction(t *testing.T) {
	c := New[string, int](8)
	for i := 0; i < 20; i++ {
		c.Set(strconv.Itoa(i), i)
	}

	if c.Len() > 8 {
		t.Errorf("cache grew to %d entries, soft limit is 8", c.Len())
	}

	// The most recent insert always survives eviction.
	if _, ok := c.Get("19"); !ok {
		t.Error("most recently set entry was evicted")
	}
}

func TestCacheEvictsOldestFirst(t *testing.T) {
	c := New[string, int](4)
	for i := 0; i < 4; i++ {
		c.Set(strconv.Itoa(i), i)
	}

	// Touch "0" so "1" becomes the oldest.
	c.Get("0")
	c.Set("4", 4) // pushes over the limit, evicts down to 3 entries

	if _, ok := c.Get("1"); ok {
		t.Error("least recently used entry survived eviction")
	}
	if _, ok := c.Get("0"); !ok {
		t.Error("recently touched entry was evicted")
	}
}

func TestCacheStats(t *testing.T) {
	c := New[string, int](10)
	c.Set("a", 1)

	c.Get("a") // hit
	c.Get("b") // miss
	c.Get("a") // hit

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("stats = %d hits / %d misses, want 2/1", stats.Hits, stats.Misses)
	}
	if stats.HitRate < 0.66 || stats.HitRate > 0.67 {
		t.Errorf("hit rate = %v, want ~0.667", stats.HitRate)
	}

	c.ResetStats()
	stats = c.Stats()
	if stats.Hits != 0 || stats.Misses != 0 {
		t.Error("ResetStats did not zero counters")
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New[int, int](64)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				c.Set(g*1000+i, i)
				c.Get(g*1000 + i)
				c.GetOrCreate(i%32, func() int { return i })
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > c.Capacity() {
		t.Errorf("cache exceeded soft limit: %d > %d", c.Len(), c.Capacity())
	}
}

func BenchmarkCacheHit(b *testing.B) {
	c := New[uint64, int](256)
	c.Set(42, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(42)
	}
}

func BenchmarkCacheMiss(b *testing.B) {
	c := New[uint64, int](256)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(uint64(i))
	}
}
