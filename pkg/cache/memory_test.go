package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvc/pkg/cache"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	now time.Time
	mu  sync.Mutex
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemory_GetSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string]()
		defer c.Close()

		_, err := c.Get(ctx, "missing")
		require.ErrorIs(t, err, cache.ErrNotFound)

		_, ok := cache.Read[string](ctx, c, "missing")
		require.False(t, ok)
	})

	t.Run("stored value", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[int]()
		defer c.Close()

		require.NoError(t, c.Set(ctx, "key", 42, time.Minute))
		v, err := c.Get(ctx, "key")
		require.NoError(t, err)
		require.Equal(t, 42, v)
	})

	t.Run("overwrite keeps single entry", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string]()
		defer c.Close()

		require.NoError(t, c.Set(ctx, "key", "a", 0))
		require.NoError(t, c.Set(ctx, "key", "b", 0))
		v, ok := cache.Read[string](ctx, c, "key")
		require.True(t, ok)
		require.Equal(t, "b", v)
		require.Equal(t, 1, c.Len())
	})
}

func TestMemory_Expiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("entry expires after ttl", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		c := cache.NewMemory[string](cache.WithClock(clock.Now), cache.WithCleanupInterval(0))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "key", "value", time.Minute))
		clock.Advance(59 * time.Second)
		has, err := c.Has(ctx, "key")
		require.NoError(t, err)
		require.True(t, has)

		clock.Advance(2 * time.Second)
		_, err = c.Get(ctx, "key")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("zero ttl uses one year default", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		c := cache.NewMemory[string](cache.WithClock(clock.Now), cache.WithCleanupInterval(0))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "key", "value", 0))
		clock.Advance(364 * 24 * time.Hour)
		_, ok := cache.Read[string](ctx, c, "key")
		require.True(t, ok)

		clock.Advance(48 * time.Hour)
		_, ok = cache.Read[string](ctx, c, "key")
		require.False(t, ok)
	})

	t.Run("negative ttl never expires", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		c := cache.NewMemory[string](cache.WithClock(clock.Now), cache.WithCleanupInterval(0))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "key", "value", -1))
		clock.Advance(10 * 365 * 24 * time.Hour)
		_, ok := cache.Read[string](ctx, c, "key")
		require.True(t, ok)
	})

	t.Run("janitor purges expired entries", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](cache.WithCleanupInterval(5 * time.Millisecond))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "key", "value", time.Millisecond))
		require.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
	})
}

func TestMemory_LRU(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := cache.NewMemory[string](cache.WithMaxEntries(2))
	defer c.Close()

	require.NoError(t, c.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, c.Set(ctx, "b", "2", time.Minute))

	_, err := c.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "c", "3", time.Minute))

	for key, want := range map[string]bool{"a": true, "b": false, "c": true} {
		has, err := c.Has(ctx, key)
		require.NoError(t, err)
		require.Equal(t, want, has, key)
	}
}

func TestMemory_DeleteClearClose(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := cache.NewMemory[string]()
	require.NoError(t, c.Set(ctx, "a", "1", 0))
	require.NoError(t, c.Set(ctx, "b", "2", 0))

	require.NoError(t, c.Delete(ctx, "a"))
	require.NoError(t, c.Delete(ctx, "missing"))
	require.Equal(t, 1, c.Len())

	require.NoError(t, c.Clear(ctx))
	require.Equal(t, 0, c.Len())

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	require.ErrorIs(t, c.Set(ctx, "a", "1", 0), cache.ErrClosed)
}

func TestGetOrSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("computes once under concurrency", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string]()
		defer c.Close()

		var calls atomic.Int32
		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := cache.GetOrSet(ctx, c, "getorset-concurrent", func(context.Context) (string, time.Duration, error) {
					calls.Add(1)
					time.Sleep(20 * time.Millisecond)
					return "computed", time.Minute, nil
				})
				require.NoError(t, err)
				require.Equal(t, "computed", v)
			}()
		}
		wg.Wait()
		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("error is not cached", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string]()
		defer c.Close()

		boom := errors.New("boom")
		_, err := cache.GetOrSet(ctx, c, "getorset-error", func(context.Context) (string, time.Duration, error) {
			return "", 0, boom
		})
		require.ErrorIs(t, err, boom)

		has, err := c.Has(ctx, "getorset-error")
		require.NoError(t, err)
		require.False(t, has)
	})
}

func TestJSONMarshaler(t *testing.T) {
	t.Parallel()

	type item struct {
		Name string `json:"name"`
	}
	m := cache.JSON[item]()

	data, err := m.Marshal(item{Name: "x"})
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"x"}`, string(data))

	_, err = m.Unmarshal([]byte("{"))
	require.ErrorIs(t, err, cache.ErrUnmarshal)
}
