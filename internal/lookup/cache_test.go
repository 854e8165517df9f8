package lookup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regwizard/pkg/testutil"
)

var delhi = Location{City: "New Delhi", District: "Central Delhi", State: "Delhi", Country: "India"}

func TestCacheFreshness(t *testing.T) {
	clock := testutil.NewClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	cache := NewCache(WithClock(clock.Now))

	t.Run("miss before any set", func(t *testing.T) {
		_, ok := cache.Get("110001")
		assert.False(t, ok)
	})

	t.Run("fresh entry hits", func(t *testing.T) {
		cache.Set("110001", delhi)
		got, ok := cache.Get("110001")
		require.True(t, ok)
		assert.Equal(t, delhi, got)
	})

	t.Run("expired entry stops hitting but is retained", func(t *testing.T) {
		clock.Advance(DefaultTTL + time.Minute)

		_, ok := cache.Get("110001")
		assert.False(t, ok)

		stale, age, ok := cache.GetStale("110001")
		require.True(t, ok)
		assert.Equal(t, delhi, stale)
		assert.Equal(t, DefaultTTL+time.Minute, age)
	})

	t.Run("set refreshes an expired entry", func(t *testing.T) {
		cache.Set("110001", delhi)
		_, ok := cache.Get("110001")
		assert.True(t, ok)
	})
}

func TestCacheClearExpired(t *testing.T) {
	clock := testutil.NewClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	cache := NewCache(WithClock(clock.Now), WithTTL(time.Hour))

	cache.Set("110001", delhi)
	clock.Advance(2 * time.Hour)
	cache.Set("400001", Location{City: "Mumbai", State: "Maharashtra", Country: "India"})

	evicted := cache.ClearExpired()

	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, cache.Size())
	_, _, ok := cache.GetStale("110001")
	assert.False(t, ok, "expired entry should be gone after the sweep")
	_, ok = cache.Get("400001")
	assert.True(t, ok)
}

func TestCacheClear(t *testing.T) {
	cache := NewCache()
	cache.Set("110001", delhi)
	cache.Set("400001", Location{City: "Mumbai"})
	require.Equal(t, 2, cache.Size())

	cache.Clear()

	assert.Equal(t, 0, cache.Size())
}
