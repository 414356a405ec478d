package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestCache(ttl time.Duration) (*ResultCache[float64], *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewResultCache[float64](ttl)
	c.now = clock.Now
	return c, clock
}

func TestResultCache_GetSet(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Set("k", 0.95)
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 0.95, v)
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestResultCache_Expiry(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	c.Set("k", 1)

	clock.t = clock.t.Add(59 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	clock.t = clock.t.Add(2 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len(), "expired entries stay until evicted")

	c.evictExpired()
	assert.Equal(t, 0, c.Len())
}

func TestResultCache_NilDisabled(t *testing.T) {
	c := NewResultCache[int](0)
	assert.Nil(t, c)

	c.Set("k", 1)
	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	c.Clear()
	c.Cleanup(context.Background(), time.Millisecond)
}

func TestResultCache_CleanupStopsOnCancel(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Cleanup(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Cleanup did not return after cancel")
	}
}

func TestCacheKey(t *testing.T) {
	a := CacheKey(0.75, 30, 0.04, 1926, 1995)
	b := CacheKey(0.75, 30, 0.04, 1926, 1995)
	c := CacheKey(0.75, 30, 0.05, 1926, 1995)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
