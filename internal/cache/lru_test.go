package cache

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newClocked(size int, ttl time.Duration) (*LRUCache[string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRUCache[string](size, ttl)
	c.now = clock.now
	return c, clock
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newClocked(2, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a should be present")
	}
	c.Set("c", "3")

	if _, ok := c.Get("b"); ok {
		t.Fatal("b should have been evicted")
	}
	if c.Size() != 2 {
		t.Fatalf("size = %d, want 2", c.Size())
	}
}

func TestLRUExpiry(t *testing.T) {
	c, clock := newClocked(10, time.Minute)
	c.Set("a", "1")
	clock.advance(2 * time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Fatal("expired entry returned")
	}

	c.Set("b", "2")
	c.Set("c", "3")
	clock.advance(2 * time.Minute)
	if n := c.CleanExpired(); n != 2 {
		t.Fatalf("CleanExpired = %d, want 2", n)
	}
}

func TestGetOrCreate(t *testing.T) {
	c, clock := newClocked(10, time.Minute)
	calls := 0
	create := func() string { calls++; return "v" }

	c.GetOrCreate("k", create)
	clock.advance(50 * time.Second)
	c.GetOrCreate("k", create)
	// access refreshed the entry
	clock.advance(50 * time.Second)
	c.GetOrCreate("k", create)
	if calls != 1 {
		t.Fatalf("create called %d times, want 1", calls)
	}

	clock.advance(2 * time.Minute)
	c.GetOrCreate("k", create)
	if calls != 2 {
		t.Fatalf("create called %d times after expiry, want 2", calls)
	}
}

func TestDeletePrefixAndPurge(t *testing.T) {
	c, _ := newClocked(10, time.Minute)
	c.Set("2025-12:a", "x")
	c.Set("2025-12:b", "y")
	c.Set("2025-11:a", "z")

	if n := c.DeletePrefix("2025-12:"); n != 2 {
		t.Fatalf("DeletePrefix = %d, want 2", n)
	}
	if _, ok := c.Get("2025-11:a"); !ok {
		t.Fatal("unrelated key removed")
	}

	c.Purge()
	if c.Size() != 0 {
		t.Fatalf("size after purge = %d", c.Size())
	}
	c.Set("again", "ok")
	if v, ok := c.Get("again"); !ok || v != "ok" {
		t.Fatal("cache unusable after purge")
	}
}

func TestManagerCleanNow(t *testing.T) {
	c, clock := newClocked(10, time.Minute)
	c.Set("a", "1")
	clock.advance(time.Hour)

	m := NewManager(nil)
	m.Register("test", c)
	if n := m.CleanNow(); n != 1 {
		t.Fatalf("CleanNow = %d, want 1", n)
	}

	m.StartCleanup(time.Millisecond)
	m.Stop()
}
