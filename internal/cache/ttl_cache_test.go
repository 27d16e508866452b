package cache

import (
	"testing"
	"time"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("a", 1, time.Minute)

	value, ok := c.Get("a")
	if !ok || value != 1 {
		t.Fatalf("got %d/%v, want 1/true", value, ok)
	}
}

func TestTTLCacheMiss(t *testing.T) {
	c := NewTTLCache[string, int]()
	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss")
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("a", 1, time.Nanosecond)
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Fatal("expired entry must not be returned")
	}
}

func TestTTLCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("a", 1, 0)
	time.Sleep(2 * time.Millisecond)

	if _, ok := c.Get("a"); !ok {
		t.Fatal("zero ttl entry must persist")
	}
}

func TestTTLCacheDelete(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("a", 1, time.Minute)
	c.Delete("a")

	if _, ok := c.Get("a"); ok {
		t.Fatal("deleted entry must be gone")
	}
}

func TestTTLCacheOverwrite(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("a", 1, time.Minute)
	c.Set("a", 2, time.Minute)

	value, _ := c.Get("a")
	if value != 2 {
		t.Fatalf("got %d, want 2", value)
	}
}

func TestDisabledCacheNeverStores(t *testing.T) {
	var c Cache[string, int] = Disabled[string, int]{}
	c.Set("a", 1, time.Minute)

	if _, ok := c.Get("a"); ok {
		t.Fatal("disabled cache must never hit")
	}
}
