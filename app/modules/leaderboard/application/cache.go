package leaderboardservice

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// State describes the freshness of a Cache.
type State string

const (
	StateCold  State = "COLD"
	StateWarm  State = "WARM"
	StateStale State = "STALE"
)

// Loader produces a fresh leaderboard.
type Loader func(ctx context.Context) (Result, error)

// CacheOptions configures a Cache.
type CacheOptions struct {
	TTL         time.Duration
	LoadTimeout time.Duration
	Now         func() time.Time
	Logger      *slog.Logger
}

// Cache holds the last leaderboard for one period. Loads are shared: callers that arrive
// while a load is running wait for its result instead of starting another one.
type Cache struct {
	mu         sync.Mutex
	entry      *Result
	generation uint64

	load  Loader
	group singleflight.Group
	opts  CacheOptions
}

// NewCache creates a COLD cache.
func NewCache(load Loader, opts CacheOptions) *Cache {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Cache{load: load, opts: opts}
}

// State reports COLD, WARM, or STALE.
func (c *Cache) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Cache) stateLocked() State {
	if c.entry == nil {
		return StateCold
	}
	if c.opts.Now().Sub(c.entry.FetchedAt) < c.opts.TTL {
		return StateWarm
	}
	return StateStale
}

// Get serves a WARM entry or loads synchronously.
func (c *Cache) Get(ctx context.Context) (Result, bool, error) {
	c.mu.Lock()
	if c.stateLocked() == StateWarm {
		r := *c.entry
		c.mu.Unlock()
		return r, true, nil
	}
	gen := c.generation
	c.mu.Unlock()

	return c.refresh(ctx, gen, true)
}

// Refresh loads a fresh entry regardless of state.
func (c *Cache) Refresh(ctx context.Context) (Result, error) {
	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()

	r, _, err := c.refresh(ctx, gen, false)
	return r, err
}

// Clear drops the cached entry. Loads already running are not stored when they finish,
// so the next Get always starts a new load.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
	c.generation++
}

type outcome struct {
	result Result
	cached bool
}

// refresh joins or starts the shared load for gen. With reuseWarm set, an entry stored
// for gen after the caller checked the state is returned instead of loading again.
func (c *Cache) refresh(ctx context.Context, gen uint64, reuseWarm bool) (Result, bool, error) {
	ch := c.group.DoChan(strconv.FormatUint(gen, 10), func() (any, error) {
		if reuseWarm {
			if r, ok := c.warm(gen); ok {
				return outcome{result: r, cached: true}, nil
			}
		}
		r, err := c.loadAndStore(context.WithoutCancel(ctx), gen)
		return outcome{result: r}, err
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return Result{}, false, res.Err
		}
		o := res.Val.(outcome)
		return o.result, o.cached, nil
	case <-ctx.Done():
		return Result{}, false, ctx.Err()
	}
}

func (c *Cache) warm(gen uint64) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen || c.stateLocked() != StateWarm {
		return Result{}, false
	}
	return *c.entry, true
}

func (c *Cache) loadAndStore(ctx context.Context, gen uint64) (result Result, err error) {
	if c.opts.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.LoadTimeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in leaderboard load: %v", r)
			c.opts.Logger.ErrorContext(ctx, "Critical panic recovered", "error", err)
		}
	}()

	result, err = c.load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		if c.entry != nil && c.generation == gen {
			c.opts.Logger.WarnContext(ctx, "Leaderboard load failed, serving stale entry", "error", err)
			return *c.entry, nil
		}
		return Result{}, err
	}

	if c.generation == gen {
		stored := result
		c.entry = &stored
	}
	return result, nil
}
