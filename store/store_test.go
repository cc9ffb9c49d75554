package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
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

func setupStore(t *testing.T) (*Store, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	return New(zaptest.NewLogger(t), WithClock(clock.Now)), clock
}

func TestStore_SetGet(t *testing.T) {
	t.Parallel()
	store, _ := setupStore(t)

	results := store.Set("user_id", "12345", nil)
	assert.Empty(t, results)

	value, err := store.Get("user_id")
	require.NoError(t, err, "Get should succeed")
	assert.Equal(t, "12345", value, "Retrieved value must match set value")
}

func TestStore_Get_KeyNotFound(t *testing.T) {
	t.Parallel()
	store, _ := setupStore(t)

	_, err := store.Get("unknown_key")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestStore_ZeroSecondTTLIsExpired(t *testing.T) {
	t.Parallel()
	store, _ := setupStore(t)

	store.Set("k", "v", []Option{{Name: OptionEX, Value: "0"}})
	_, err := store.Get("k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestStore_TTLExpiry(t *testing.T) {
	t.Parallel()

	t.Run("EX seconds", func(t *testing.T) {
		store, clock := setupStore(t)
		store.Set("session", "abc", []Option{{Name: OptionEX, Value: "10"}})

		clock.Advance(9 * time.Second)
		value, err := store.Get("session")
		require.NoError(t, err)
		assert.Equal(t, "abc", value)

		clock.Advance(time.Second)
		_, err = store.Get("session")
		assert.ErrorIs(t, err, ErrKeyNotFound, "Entry should expire exactly at its deadline")
	})

	t.Run("PX milliseconds", func(t *testing.T) {
		store, clock := setupStore(t)
		store.Set("session", "abc", []Option{{Name: OptionPX, Value: "100"}})

		clock.Advance(99 * time.Millisecond)
		_, err := store.Get("session")
		require.NoError(t, err)

		clock.Advance(time.Millisecond)
		_, err = store.Get("session")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})
}

func TestStore_ExpiredGetEvicts(t *testing.T) {
	t.Parallel()
	store, clock := setupStore(t)

	store.Set("k", "v", []Option{{Name: OptionPX, Value: "5"}})
	assert.Equal(t, 1, store.Len())

	clock.Advance(time.Second)
	keys, err := store.Keys("*")
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, keys, "Expired key stays listed until read")

	for i := 0; i < 3; i++ {
		_, err := store.Get("k")
		assert.ErrorIs(t, err, ErrKeyNotFound, "Repeated reads after expiry stay empty")
	}
	assert.Zero(t, store.Len(), "Expired key should be evicted by the first read")
}

func TestStore_OverwriteClearsTTL(t *testing.T) {
	t.Parallel()
	store, clock := setupStore(t)

	store.Set("k", "v1", []Option{{Name: OptionEX, Value: "100"}})
	store.Set("k", "v2", nil)

	clock.Advance(1000 * time.Second)
	value, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v2", value)
}

func TestStore_OptionResults(t *testing.T) {
	t.Parallel()
	store, clock := setupStore(t)

	results := store.Set("k", "v", []Option{
		{Name: OptionEX, Value: "abc"},
		{Name: "NX", Value: "1"},
		{Name: OptionPX, Value: "-5"},
		{Name: OptionPX, Value: "2000"},
	})

	require.Len(t, results, 4)
	assert.False(t, results[0].Applied)
	assert.Contains(t, results[0].Reason, "not an integer")
	assert.False(t, results[1].Applied)
	assert.Equal(t, "unsupported option", results[1].Reason)
	assert.False(t, results[2].Applied, "Negative values are skipped")
	assert.True(t, results[3].Applied)
	assert.Equal(t, OptionResult{Name: OptionPX, Value: "2000", Applied: true}, results[3])

	clock.Advance(1999 * time.Millisecond)
	_, err := store.Get("k")
	require.NoError(t, err, "Entry is still created when some options are skipped")

	clock.Advance(time.Millisecond)
	_, err = store.Get("k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestStore_LastExpiryOptionWins(t *testing.T) {
	t.Parallel()

	t.Run("PX after EX", func(t *testing.T) {
		store, clock := setupStore(t)
		store.Set("k", "v", []Option{{Name: OptionEX, Value: "100"}, {Name: OptionPX, Value: "10"}})

		clock.Advance(10 * time.Millisecond)
		_, err := store.Get("k")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("EX after PX", func(t *testing.T) {
		store, clock := setupStore(t)
		store.Set("k", "v", []Option{{Name: OptionPX, Value: "10"}, {Name: OptionEX, Value: "100"}})

		clock.Advance(time.Second)
		_, err := store.Get("k")
		assert.NoError(t, err)
	})
}

func TestStore_HugeTTLDoesNotOverflow(t *testing.T) {
	t.Parallel()
	store, clock := setupStore(t)

	store.Set("k", "v", []Option{{Name: OptionEX, Value: "18446744073709551615"}})
	clock.Advance(100 * 365 * 24 * time.Hour)

	_, err := store.Get("k")
	assert.NoError(t, err)
}

func TestStore_Lookup(t *testing.T) {
	t.Parallel()
	store, clock := setupStore(t)

	store.Set("session", "abc", []Option{{Name: OptionEX, Value: "10"}})
	store.Set("plain", "v", nil)

	entry, err := store.Lookup("session")
	require.NoError(t, err)
	assert.Equal(t, "abc", entry.Value)
	assert.Equal(t, 10*time.Second, entry.TTL(store.Now()))

	entry, err = store.Lookup("plain")
	require.NoError(t, err)
	assert.False(t, entry.HasExpiry())

	clock.Advance(10 * time.Second)
	_, err = store.Lookup("session")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.Equal(t, 1, store.Len(), "Expired lookup evicts the entry")
}

func TestStore_Remove(t *testing.T) {
	t.Parallel()
	store, _ := setupStore(t)

	store.Set("old_data", "to_be_deleted", nil)
	store.Remove("old_data")

	_, err := store.Get("old_data")
	assert.ErrorIs(t, err, ErrKeyNotFound, "Get after Remove should return ErrKeyNotFound")

	assert.NotPanics(t, func() { store.Remove("old_data") }, "Remove is idempotent")
}

func TestStore_Keys(t *testing.T) {
	t.Parallel()
	store, _ := setupStore(t)

	for _, k := range []string{"foo", "fooz", "bar", "baz", "f"} {
		store.Set(k, "1", nil)
	}

	tests := []struct {
		pattern string
		want    []string
	}{
		{"*", []string{"bar", "baz", "f", "foo", "fooz"}},
		{"foo*", []string{"foo", "fooz"}},
		{"ba?", []string{"bar", "baz"}},
		{"ba[rz]", []string{"bar", "baz"}},
		{"nothing*", []string{}},
	}

	for _, tt := range tests {
		keys, err := store.Keys(tt.pattern)
		require.NoError(t, err, tt.pattern)
		assert.Equal(t, tt.want, keys, tt.pattern)
	}

	_, err := store.Keys("[")
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestStore_Stats(t *testing.T) {
	t.Parallel()
	store, _ := setupStore(t)

	assert.Equal(t, Stats{}, store.Stats())

	store.Set("a", "hello", nil)
	store.Set("b", "hi", nil)
	assert.Equal(t, Stats{Keys: 2, ValueBytes: 7}, store.Stats())
}

func TestStore_Concurrency(t *testing.T) {
	store := New(zaptest.NewLogger(t))
	numGoroutines := 50
	numOperationsPerGoroutine := 100

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOperationsPerGoroutine; j++ {
				key := fmt.Sprintf("key_%d_%d", id, j)
				store.Set(key, key, nil)
				value, err := store.Get(key)
				if assert.NoError(t, err) {
					assert.Equal(t, key, value)
				}
				if j%10 == 0 {
					store.Remove(key)
				}
				_, _ = store.Keys("key_*")
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		assert.Equal(t, numGoroutines*(numOperationsPerGoroutine-numOperationsPerGoroutine/10), store.Len())
	case <-time.After(5 * time.Second):
		t.Fatal("Concurrency test timed out (possible deadlock)")
	}
}
