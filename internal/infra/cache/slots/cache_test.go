package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/internal/events"
	"github.com/m04kA/barbershop-booking/pkg/logger"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

var day = time.Date(2030, 5, 6, 0, 0, 0, 0, time.UTC)

func sampleSlots() []types.TimeString {
	return []types.TimeString{types.MustTimeString("09:00"), types.MustTimeString("09:30")}
}

func newRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCache(client, time.Minute), s
}

func TestRedisCache(t *testing.T) {
	cache, server := newRedisCache(t)
	ctx := context.Background()

	t.Run("Miss", func(t *testing.T) {
		got, found, err := cache.Get(ctx, "s1", 0, day, 30)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, got)
	})

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "s1", 0, day, 30, sampleSlots()))

		got, found, err := cache.Get(ctx, "s1", 0, day, 30)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, sampleSlots(), got)

		_, found, err = cache.Get(ctx, "s1", 0, day, 60)
		require.NoError(t, err)
		assert.False(t, found, "different duration is a separate entry")
	})

	t.Run("EmptyResultIsCached", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "s2", 0, day, 30, nil))

		got, found, err := cache.Get(ctx, "s2", 0, day, 30)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Empty(t, got)
	})

	t.Run("InvalidateStaff", func(t *testing.T) {
		require.NoError(t, cache.InvalidateStaff(ctx, "s1"))

		gen, err := cache.Generation(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), gen)

		_, found, err := cache.Get(ctx, "s1", gen, day, 30)
		require.NoError(t, err)
		assert.False(t, found)

		other, err := cache.Generation(ctx, "s2")
		require.NoError(t, err)
		_, found, err = cache.Get(ctx, "s2", other, day, 30)
		require.NoError(t, err)
		assert.True(t, found, "other staff keep their slots")
	})

	t.Run("StaleGenerationWriteIsNotServed", func(t *testing.T) {
		gen, err := cache.Generation(ctx, "s4")
		require.NoError(t, err)

		require.NoError(t, cache.InvalidateStaff(ctx, "s4"))
		require.NoError(t, cache.Set(ctx, "s4", gen, day, 30, sampleSlots()))

		current, err := cache.Generation(ctx, "s4")
		require.NoError(t, err)
		_, found, err := cache.Get(ctx, "s4", current, day, 30)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("EntriesExpireIndependently", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "s3", 0, day, 30, sampleSlots()))
		server.FastForward(40 * time.Second)
		require.NoError(t, cache.Set(ctx, "s3", 0, day.AddDate(0, 0, 1), 30, sampleSlots()))
		server.FastForward(40 * time.Second)

		_, found, err := cache.Get(ctx, "s3", 0, day, 30)
		require.NoError(t, err)
		assert.False(t, found, "a later write for another date does not extend this entry")

		_, found, err = cache.Get(ctx, "s3", 0, day.AddDate(0, 0, 1), 30)
		require.NoError(t, err)
		assert.True(t, found)
	})
}

func TestRedisCache_NilClient(t *testing.T) {
	cache := NewRedisCache(nil, 0)

	_, _, err := cache.Get(context.Background(), "s1", 0, day, 30)
	assert.ErrorIs(t, err, ErrNilClient)
}

func memoryEntries(c *MemoryCache, staffID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.staff[staffID]; ok {
		return len(s.fields)
	}
	return 0
}

func TestMemoryCache(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	now := time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "s1", 0, day, 30, sampleSlots()))

	got, found, err := cache.Get(ctx, "s1", 0, day, 30)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, sampleSlots(), got)

	got[0] = types.MustTimeString("23:00")
	again, _, _ := cache.Get(ctx, "s1", 0, day, 30)
	assert.Equal(t, "09:00", again[0].String())

	now = now.Add(2 * time.Minute)
	_, found, _ = cache.Get(ctx, "s1", 0, day, 30)
	assert.False(t, found)
	assert.Zero(t, memoryEntries(cache, "s1"), "expired entry is dropped on read")

	require.NoError(t, cache.Set(ctx, "s1", 0, day, 30, sampleSlots()))
	require.NoError(t, cache.InvalidateStaff(ctx, "s1"))

	gen, err := cache.Generation(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
	_, found, _ = cache.Get(ctx, "s1", gen, day, 30)
	assert.False(t, found)
}

func TestMemoryCache_StaleGenerationWriteIsDropped(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	ctx := context.Background()

	gen, err := cache.Generation(ctx, "s1")
	require.NoError(t, err)

	require.NoError(t, cache.InvalidateStaff(ctx, "s1"))
	require.NoError(t, cache.Set(ctx, "s1", gen, day, 30, sampleSlots()))

	current, err := cache.Generation(ctx, "s1")
	require.NoError(t, err)
	_, found, err := cache.Get(ctx, "s1", current, day, 30)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, memoryEntries(cache, "s1"))
}

func TestMemoryCache_SetSweepsExpiredEntries(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	now := time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, cache.Set(ctx, "s1", 0, day.AddDate(0, 0, i), 30, sampleSlots()))
	}
	assert.Equal(t, 5, memoryEntries(cache, "s1"))

	now = now.Add(2 * time.Minute)
	require.NoError(t, cache.Set(ctx, "s1", 0, day, 60, sampleSlots()))
	assert.Equal(t, 1, memoryEntries(cache, "s1"))
}

type failingCache struct {
	*MemoryCache
}

func (failingCache) InvalidateStaff(context.Context, string) error {
	return errors.New("boom")
}

func TestInvalidationHandler(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(time.Minute)
	require.NoError(t, cache.Set(ctx, "s1", 0, day, 30, sampleSlots()))

	bus := events.NewBus(logger.NewNop())
	bus.SubscribeAll("slots-cache", InvalidationHandler(cache, logger.NewNop()))
	bus.Publish(ctx, events.NewBookingEvent(events.BookingCreated, &domain.Booking{ID: "b1", StaffID: "s1"}))

	gen, err := cache.Generation(ctx, "s1")
	require.NoError(t, err)
	_, found, _ := cache.Get(ctx, "s1", gen, day, 30)
	assert.False(t, found)

	handler := InvalidationHandler(failingCache{cache}, logger.NewNop())
	err = handler(ctx, events.NewBookingEvent(events.BookingCancelled, &domain.Booking{StaffID: "s1"}))
	assert.Error(t, err)
	assert.NoError(t, handler(ctx, events.NewBookingEvent(events.BookingCancelled, &domain.Booking{})))
}
