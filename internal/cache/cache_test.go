package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUnconfiguredCacheIsNoOp(t *testing.T) {
	c := New("")
	ctx := context.Background()

	assert.False(t, c.Enabled())

	c.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute)

	var dest map[string]int
	assert.False(t, c.GetJSON(ctx, "k", &dest))

	// Must not panic either.
	c.Invalidate(ctx, "k", QueueKey(1))
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *Cache

	assert.False(t, c.Enabled())
	assert.False(t, c.GetJSON(context.Background(), "k", nil))
}

func TestQueueKey(t *testing.T) {
	assert.Equal(t, "queue:7", QueueKey(7))
	assert.Equal(t, "barbers:list", BarberListKey)
}
