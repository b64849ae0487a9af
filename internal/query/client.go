// Package query is a small keyed cache for fetched data with staleness, retries and
// request de-duplication. One Client is shared by every request the web shell serves.
package query

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/sync/singleflight"
)

// Options are the defaults applied to every query
type Options struct {
	// Retry is the number of extra attempts after a failed fetch
	Retry int

	// RefetchOnWindowFocus is forwarded to the page; the server never refetches on its own
	RefetchOnWindowFocus bool

	// StaleTime is how long a successful result is served from cache
	StaleTime time.Duration

	// NewBackOff returns the wait policy for one fetch; nil means exponential backoff from 1s to 30s
	NewBackOff func() backoff.BackOff

	// BaseURL is the API origin handed to the page
	BaseURL string
}

// DefaultOptions retries once, never refetches on focus and keeps results fresh for five minutes
func DefaultOptions() Options {
	return Options{
		Retry:                1,
		RefetchOnWindowFocus: false,
		StaleTime:            5 * time.Minute,
	}
}

// Func fetches the value for one key
type Func func(ctx context.Context) (any, error)

type entry struct {
	value     any
	fetchedAt time.Time
}

// Client caches query results by key
type Client struct {
	opts  Options
	group singleflight.Group
	now   func() time.Time

	mu    sync.RWMutex
	cache map[string]entry
}

// NewClient creates a client with the given defaults
func NewClient(opts Options) *Client {
	if opts.Retry < 0 {
		opts.Retry = 0
	}
	if opts.StaleTime < 0 {
		opts.StaleTime = 0
	}
	if opts.NewBackOff == nil {
		opts.NewBackOff = defaultBackOff
	}

	return &Client{
		opts:  opts,
		now:   time.Now,
		cache: make(map[string]entry),
	}
}

// Options returns the client's defaults
func (c *Client) Options() Options {
	return c.opts
}

// Fetch returns the cached value for key while it is younger than StaleTime,
// otherwise calls fn up to 1+Retry times. Concurrent fetches of one key share a single call,
// which keeps running if the caller that started it goes away; ctx only bounds this caller's wait.
func (c *Client) Fetch(ctx context.Context, key string, fn Func) (any, error) {
	if value, ok := c.fresh(key); ok {
		return value, nil
	}

	shared := context.WithoutCancel(ctx)
	result := c.group.DoChan(key, func() (any, error) {
		// Another caller may have filled the cache while we waited for the group
		if value, ok := c.fresh(key); ok {
			return value, nil
		}

		value, err := c.fetchWithRetry(shared, key, fn)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cache[key] = entry{value: value, fetchedAt: c.now()}
		c.mu.Unlock()

		return value, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-result:
		return res.Val, res.Err
	}
}

// Invalidate drops the cached value for key so the next Fetch calls fn again
func (c *Client) Invalidate(key string) {
	c.mu.Lock()
	delete(c.cache, key)
	c.mu.Unlock()
}

func (c *Client) fresh(key string) (any, bool) {
	c.mu.RLock()
	cached, ok := c.cache[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(cached.fetchedAt) >= c.opts.StaleTime {
		return nil, false
	}
	return cached.value, true
}

func (c *Client) fetchWithRetry(ctx context.Context, key string, fn Func) (any, error) {
	attempts := c.opts.Retry + 1

	value, err := backoff.Retry(ctx, func() (any, error) {
		return fn(ctx)
	},
		backoff.WithBackOff(c.opts.NewBackOff()),
		backoff.WithMaxTries(uint(attempts)),
		backoff.WithMaxElapsedTime(0),
	)
	if err != nil {
		return nil, fmt.Errorf("query %q failed after %d attempts: %w", key, attempts, err)
	}
	return value, nil
}

// defaultBackOff doubles from one second up to thirty, without jitter
func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = 30 * time.Second
	return b
}
