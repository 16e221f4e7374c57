package cache

import (
	"testing"
	"time"
)

func TestLRUGetSetDelete(t *testing.T) {
	c := NewLRU[int](10, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected a=1, got %d ok=%v", v, ok)
	}

	c.Set("a", 2)
	if v, _ := c.Get("a"); v != 2 {
		t.Fatalf("expected overwrite to 2, got %d", v)
	}

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewLRU[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatal("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a to survive")
	}
	if c.Size() != 2 {
		t.Fatalf("expected size 2, got %d", c.Size())
	}
}

func TestLRUExpiry(t *testing.T) {
	c := NewLRU[string](10, time.Millisecond)
	c.Set("k", "v")
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestLRUCleanExpired(t *testing.T) {
	c := NewLRU[string](10, time.Millisecond)
	c.Set("a", "1")
	c.Set("b", "2")
	time.Sleep(5 * time.Millisecond)

	if n := c.CleanExpired(); n != 2 {
		t.Fatalf("expected 2 cleaned, got %d", n)
	}
	if c.Size() != 0 {
		t.Fatalf("expected empty cache, got %d", c.Size())
	}
}

func TestLRUPurge(t *testing.T) {
	c := NewLRU[string](10, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Purge()
	if c.Size() != 0 {
		t.Fatalf("expected empty cache after purge, got %d", c.Size())
	}
}
