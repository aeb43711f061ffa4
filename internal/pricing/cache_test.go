package pricing

import (
	"testing"
	"time"
)

func TestCache_GetMiss(t *testing.T) {
	c := NewCache(time.Minute)

	if _, ok := c.Get("RY"); ok {
		t.Error("expected miss on empty cache")
	}
}

func TestCache_SetAndGet(t *testing.T) {
	c := NewCache(time.Minute)

	c.SetWithExpiry("RY", 123.45, time.Hour)

	price, ok := c.Get("RY")
	if !ok {
		t.Fatal("expected hit")
	}
	if price != 123.45 {
		t.Errorf("price = %v, want 123.45", price)
	}
}

func TestCache_ExpiredEntryMisses(t *testing.T) {
	c := NewCache(time.Minute)

	c.SetWithExpiry("RY", 123.45, -time.Second)

	if _, ok := c.Get("RY"); ok {
		t.Error("expected miss for expired entry")
	}
}

func TestCache_ReplaceExtendsExpiry(t *testing.T) {
	c := NewCache(time.Minute)

	c.SetWithExpiry("RY", 100, -time.Second)
	c.SetWithExpiry("RY", 110, time.Hour)

	price, ok := c.Get("RY")
	if !ok || price != 110 {
		t.Errorf("got (%v, %v), want (110, true)", price, ok)
	}
}

func TestCache_SweepEvictsExpired(t *testing.T) {
	c := NewCache(time.Minute)

	c.SetWithExpiry("RY", 100, -time.Second)
	c.SetWithExpiry("SHOP", 50, time.Hour)

	c.sweep(time.Now())

	if c.Len() != 1 {
		t.Errorf("len = %d after sweep, want 1", c.Len())
	}
	if _, ok := c.Get("SHOP"); !ok {
		t.Error("live entry was evicted")
	}
}
