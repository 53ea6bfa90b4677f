package leaderboardservice

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	leaderboarddomain "github.com/sh4ner/streamerpulse/app/modules/leaderboard/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	calls atomic.Int32
	clock *fakeClock
	gate  chan struct{} // when non-nil, loads block until it is closed
	enter chan struct{} // receives once per load start when non-nil
	err   error
	panic bool
}

func (l *countingLoader) Load(ctx context.Context) (Result, error) {
	n := l.calls.Add(1)
	if l.enter != nil {
		l.enter <- struct{}{}
	}
	if l.gate != nil {
		<-l.gate
	}
	if l.panic {
		panic("boom")
	}
	if l.err != nil {
		return Result{}, l.err
	}
	return Result{
		Entries:   []leaderboarddomain.LeaderboardEntry{{Username: "load", Rank: ptr(int(n))}},
		Tier:      leaderboarddomain.TierLive,
		FetchedAt: l.clock.Now(),
	}, nil
}

func ptr[T any](v T) *T { return &v }

func newTestCache(l *countingLoader, ttl time.Duration) *Cache {
	return NewCache(l.Load, CacheOptions{TTL: ttl, Now: l.clock.Now, Logger: discardLogger()})
}

func TestCache_StateTransitions(t *testing.T) {
	clock := newFakeClock(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC))
	l := &countingLoader{clock: clock}
	c := newTestCache(l, 5*time.Minute)
	ctx := context.Background()

	assert.Equal(t, StateCold, c.State())

	r, hit, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 1, *r.Entries[0].Rank)
	assert.Equal(t, StateWarm, c.State())

	clock.Advance(4 * time.Minute)
	_, hit, err = c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, int32(1), l.calls.Load())

	clock.Advance(time.Minute)
	assert.Equal(t, StateStale, c.State())

	r, hit, err = c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, *r.Entries[0].Rank)
	assert.Equal(t, StateWarm, c.State())

	c.Clear()
	assert.Equal(t, StateCold, c.State())
}

func TestCache_ClearForcesFetchWithinTTL(t *testing.T) {
	clock := newFakeClock(time.Now())
	l := &countingLoader{clock: clock}
	c := newTestCache(l, time.Hour)
	ctx := context.Background()

	_, _, err := c.Get(ctx)
	require.NoError(t, err)
	c.Clear()
	_, hit, err := c.Get(ctx)
	require.NoError(t, err)

	assert.False(t, hit)
	assert.Equal(t, int32(2), l.calls.Load())
}

func TestCache_ConcurrentReadsShareOneLoad(t *testing.T) {
	clock := newFakeClock(time.Now())
	l := &countingLoader{clock: clock, gate: make(chan struct{}), enter: make(chan struct{}, 1)}
	c := newTestCache(l, time.Hour)

	const readers = 16
	var wg sync.WaitGroup
	results := make([]Result, readers)
	errs := make([]error, readers)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _, errs[0] = c.Get(context.Background())
	}()
	<-l.enter // first load is now in flight

	for i := 1; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _, errs[i] = c.Get(context.Background())
		}()
	}
	// Background refresh joins the same flight.
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = c.Refresh(context.Background())
	}()

	time.Sleep(20 * time.Millisecond)
	close(l.gate)
	wg.Wait()

	assert.Equal(t, int32(1), l.calls.Load())
	for i := range readers {
		require.NoError(t, errs[i])
		assert.Equal(t, 1, *results[i].Entries[0].Rank)
	}
}

func TestCache_ClearDuringLoadDiscardsResult(t *testing.T) {
	clock := newFakeClock(time.Now())
	l := &countingLoader{clock: clock, gate: make(chan struct{}), enter: make(chan struct{}, 2)}
	c := newTestCache(l, time.Hour)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _, _ = c.Get(context.Background())
	}()
	<-l.enter

	c.Clear()
	close(l.gate)
	<-done

	assert.Equal(t, StateCold, c.State())

	_, hit, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, int32(2), l.calls.Load())
}

func TestCache_LoadFailures(t *testing.T) {
	loadErr := errors.New("database exploded")

	t.Run("cold cache surfaces the error", func(t *testing.T) {
		l := &countingLoader{clock: newFakeClock(time.Now()), err: loadErr}
		c := newTestCache(l, time.Minute)

		_, _, err := c.Get(context.Background())
		assert.ErrorIs(t, err, loadErr)
		assert.Equal(t, StateCold, c.State())
	})

	t.Run("stale entry is served when reload fails", func(t *testing.T) {
		clock := newFakeClock(time.Now())
		l := &countingLoader{clock: clock}
		c := newTestCache(l, time.Minute)

		_, _, err := c.Get(context.Background())
		require.NoError(t, err)

		clock.Advance(2 * time.Minute)
		l.err = loadErr

		r, _, err := c.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, *r.Entries[0].Rank)
	})

	t.Run("panic becomes an error", func(t *testing.T) {
		l := &countingLoader{clock: newFakeClock(time.Now()), panic: true}
		c := newTestCache(l, time.Minute)

		_, _, err := c.Get(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "panic")
	})
}

func TestCache_CallerCancellationDoesNotAbortLoad(t *testing.T) {
	clock := newFakeClock(time.Now())
	l := &countingLoader{clock: clock, gate: make(chan struct{}), enter: make(chan struct{}, 1)}
	c := newTestCache(l, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, _, err := c.Get(ctx)
		errCh <- err
	}()
	<-l.enter
	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	close(l.gate)
	assert.Eventually(t, func() bool { return c.State() == StateWarm }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), l.calls.Load())
}

func TestCache_ReadAfterConcurrentStoreReusesEntry(t *testing.T) {
	clock := newFakeClock(time.Now())
	l := &countingLoader{clock: clock}
	c := newTestCache(l, time.Hour)
	ctx := context.Background()

	// A reader saw the cache COLD, then another load stored an entry before the
	// reader joined the shared load.
	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()

	_, err := c.Refresh(ctx)
	require.NoError(t, err)

	r, hit, err := c.refresh(ctx, gen, true)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, *r.Entries[0].Rank)
	assert.Equal(t, int32(1), l.calls.Load())

	// Refresh never reuses the entry.
	_, err = c.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), l.calls.Load())

	// An entry stored for an older generation is not reused after Clear.
	c.Clear()
	_, hit, err = c.refresh(ctx, gen, true)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, int32(3), l.calls.Load())
}
