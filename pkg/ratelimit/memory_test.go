package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_AllowsUpToLimit(t *testing.T) {
	store := NewMemoryStore(5, time.Hour)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		allowed, err := store.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d within limit should be allowed", i+1)
	}

	allowed, err := store.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, allowed, "request over the limit should be denied")
}

func TestMemoryStore_DenyDoesNotIncrement(t *testing.T) {
	store := NewMemoryStore(2, time.Hour)
	ctx := context.Background()

	store.Allow(ctx, "k")
	store.Allow(ctx, "k")

	// Hammering a denied key must not extend or inflate the counter.
	for i := 0; i < 10; i++ {
		allowed, _ := store.Allow(ctx, "k")
		assert.False(t, allowed)
	}

	assert.Equal(t, 2, store.entries["k"].count)
}

func TestMemoryStore_WindowReset(t *testing.T) {
	now := time.Now()
	store := NewMemoryStore(1, time.Hour)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	allowed, _ := store.Allow(ctx, "k")
	assert.True(t, allowed)
	allowed, _ = store.Allow(ctx, "k")
	assert.False(t, allowed)

	// Step past the window boundary: counter resets regardless of
	// prior count.
	now = now.Add(time.Hour + time.Second)
	allowed, _ = store.Allow(ctx, "k")
	assert.True(t, allowed, "first request after window expiry should be allowed")
}

func TestMemoryStore_IndependentKeys(t *testing.T) {
	store := NewMemoryStore(1, time.Hour)
	ctx := context.Background()

	allowed, _ := store.Allow(ctx, "10.0.0.1")
	assert.True(t, allowed)
	allowed, _ = store.Allow(ctx, "10.0.0.2")
	assert.True(t, allowed, "a different key has its own window")
	allowed, _ = store.Allow(ctx, "10.0.0.1")
	assert.False(t, allowed)
}

func TestMemoryStore_OpportunisticSweep(t *testing.T) {
	now := time.Now()
	store := NewMemoryStore(5, time.Minute)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < sweepThreshold+1; i++ {
		store.Allow(ctx, fmt.Sprintf("ip-%d", i))
	}
	require.Equal(t, sweepThreshold+1, store.Len())

	// All windows expire; the next miss triggers the sweep.
	now = now.Add(2 * time.Minute)
	store.Allow(ctx, "fresh")

	assert.Equal(t, 1, store.Len(), "expired entries should be swept once the table exceeds the threshold")
}

func TestMemoryStore_Sweep(t *testing.T) {
	now := time.Now()
	store := NewMemoryStore(5, time.Minute)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	store.Allow(ctx, "a")
	store.Allow(ctx, "b")

	now = now.Add(90 * time.Second)
	store.Allow(ctx, "c")

	removed := store.Sweep()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, store.Len())
}
