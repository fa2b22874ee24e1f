package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	t.Cleanup(s.Close)
	return s
}

func TestMemoryStoreIncrement(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		count, err := s.Increment(ctx, "10.0.0.1", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}

	// Separate keys count independently.
	count, err := s.Increment(ctx, "10.0.0.2", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryStoreWindowReset(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now()
	s.timeFunc = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		_, err := s.Increment(ctx, "10.0.0.1", time.Minute)
		require.NoError(t, err)
	}

	// Just before the boundary the window is still open.
	now = now.Add(time.Minute - time.Second)
	count, err := s.Increment(ctx, "10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	// At the boundary the counter starts over.
	now = now.Add(time.Second)
	count, err = s.Increment(ctx, "10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryStoreConcurrentIncrements(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			_, err := s.Increment(ctx, "10.0.0.1", time.Minute)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := s.Increment(ctx, "10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(goroutines+1), count)
}
