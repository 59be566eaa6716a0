// Package query orchestrates cache-first data fetching: a synchronous cache
// lookup, a network fallback with loading/error state, and an optional
// background refresh that repopulates the cache without touching the exposed
// state. A warm cache changes what the next view load shows, never what an
// already-rendered view shows.
package query

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/okonma/arc/internal/cache"
)

const genericErrorMessage = "An unknown error occurred."

// Key derives the cache key for a resource and its serialized variables.
// Requests whose variables serialize identically share one key.
func Key(resource string, variables any) string {
	raw, err := json.Marshal(variables)
	if err != nil {
		return fmt.Sprintf("anilist_%s_{}", resource)
	}
	return fmt.Sprintf("anilist_%s_%s", resource, raw)
}

// State is the externally visible state of one controller.
//
// Valid histories: a cache hit moves INIT directly to success without the
// loading state ever being observable; a miss moves through loading to
// either success or error.
type State[T any] struct {
	Data    T
	Loading bool
	Err     string
}

// FetchFunc issues the underlying network request.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Controller manages the fetch lifecycle for one (resource, variables) pair.
type Controller[T any] struct {
	cache  *cache.Cache
	fetch  FetchFunc[T]
	key    string
	ttl    time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	state   State[T]
	closed  bool
	started bool
	stop    chan struct{}
}

// Options configures optional controller behavior.
type Options struct {
	// RefreshInterval enables the background refresh when positive.
	RefreshInterval time.Duration

	// TTL overrides the cache's default entry TTL when positive.
	TTL time.Duration

	Logger *slog.Logger
}

// NewController creates a controller for key backed by fetch.
func NewController[T any](c *cache.Cache, key string, fetch FetchFunc[T], opts Options) *Controller[T] {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctrl := &Controller[T]{
		cache:  c,
		fetch:  fetch,
		key:    key,
		ttl:    opts.TTL,
		logger: logger,
		stop:   make(chan struct{}),
	}
	if opts.RefreshInterval > 0 {
		ctrl.startRefresh(opts.RefreshInterval)
	}
	return ctrl
}

// Key returns the controller's cache key.
func (c *Controller[T]) Key() string { return c.key }

// State returns a snapshot of the current state.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Resolve drives the state machine once: cache hit short-circuits to
// success with no network call; a miss fetches, caches on success, and
// surfaces the failure message on error. The returned state is the state
// the controller settled in.
func (c *Controller[T]) Resolve(ctx context.Context) State[T] {
	if data, ok := cache.Get[T](c.cache, c.key); ok {
		return c.commit(State[T]{Data: data})
	}

	var zero T
	c.commit(State[T]{Data: zero, Loading: true})

	data, err := c.fetch(ctx)
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = genericErrorMessage
		}
		c.logger.Error("query fetch failed", "key", c.key, "error", err)
		return c.commit(State[T]{Data: zero, Err: msg})
	}

	c.cache.Set(c.key, data, c.ttl)
	return c.commit(State[T]{Data: data})
}

// commit records next as the controller state unless the controller has been
// closed; a fetch that resolves after Close must not mutate state.
func (c *Controller[T]) commit(next State[T]) State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.state = next
	}
	return next
}

func (c *Controller[T]) startRefresh(interval time.Duration) {
	c.mu.Lock()
	if c.started || c.closed {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-c.stop:
				return
			case <-ticker.C:
				c.refreshOnce()
			}
		}
	}()
}

// refreshOnce re-fetches and overwrites the cache entry. It never touches
// the controller state: the current view keeps rendering what it loaded,
// and the fresh data is picked up on the next Resolve.
func (c *Controller[T]) refreshOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	data, err := c.fetch(ctx)
	if err != nil {
		c.logger.Warn("background refresh failed", "key", c.key, "error", err)
		return
	}
	c.cache.Set(c.key, data, c.ttl)
	c.logger.Debug("background refresh ok", "key", c.key)
}

// Close stops the background refresh and discards any state update from an
// in-flight Resolve. Safe to call more than once.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.stop)
}
