package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCache_SetGet tests the basic round trip against a real database
func TestCache_SetGet(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 10, time.Minute)
	require.NoError(t, err)
	defer cache.Close()
	ctx := context.Background()

	cache.Set(ctx, "filings/?page=1", []byte(`{"count": 0}`))

	body, ok := cache.Get(ctx, "filings/?page=1")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"count": 0}`), body)

	_, ok = cache.Get(ctx, "missing")
	assert.False(t, ok)
}

// TestCache_TTLExpiry tests entries lapse after the TTL
func TestCache_TTLExpiry(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 10, time.Minute)
	require.NoError(t, err)
	defer cache.Close()
	ctx := context.Background()

	current := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	cache.Set(ctx, "key", []byte("body"))

	_, ok := cache.Get(ctx, "key")
	assert.True(t, ok)

	current = current.Add(61 * time.Second)
	_, ok = cache.Get(ctx, "key")
	assert.False(t, ok)
}

// TestCache_CapacityEviction tests the table stays bounded
func TestCache_CapacityEviction(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 3, time.Minute)
	require.NoError(t, err)
	defer cache.Close()
	ctx := context.Background()

	base := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	current := base
	cache.now = func() time.Time { return current }

	for i := 0; i < 5; i++ {
		// Distinct expiries so eviction order is well defined.
		current = base.Add(time.Duration(i) * time.Second)
		cache.Set(ctx, fmt.Sprintf("key-%d", i), []byte("body"))
	}
	current = base

	var count int
	require.NoError(t, cache.db.QueryRow(`SELECT COUNT(*) FROM responses`).Scan(&count))
	assert.Equal(t, 3, count)

	// The entries closest to expiry were evicted.
	_, ok := cache.Get(ctx, "key-0")
	assert.False(t, ok)
	_, ok = cache.Get(ctx, "key-4")
	assert.True(t, ok)
}

// TestCache_SurvivesReopen tests persistence across instances
func TestCache_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	cache, err := NewCache(dir, 10, time.Minute)
	require.NoError(t, err)
	cache.Set(ctx, "key", []byte("persisted"))
	require.NoError(t, cache.Close())

	reopened, err := NewCache(dir, 10, time.Minute)
	require.NoError(t, err)
	defer reopened.Close()

	body, ok := reopened.Get(ctx, "key")
	require.True(t, ok)
	assert.Equal(t, []byte("persisted"), body)
}

// TestCache_StartupPurge tests expired rows are dropped on open
func TestCache_StartupPurge(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	cache, err := NewCache(dir, 10, time.Minute)
	require.NoError(t, err)
	// Backdate the entry so it is expired by the time we reopen.
	past := time.Now().Add(-time.Hour)
	cache.now = func() time.Time { return past }
	cache.Set(ctx, "stale", []byte("body"))
	require.NoError(t, cache.Close())

	reopened, err := NewCache(dir, 10, time.Minute)
	require.NoError(t, err)
	defer reopened.Close()

	var count int
	require.NoError(t, reopened.db.QueryRow(`SELECT COUNT(*) FROM responses`).Scan(&count))
	assert.Zero(t, count)
}
