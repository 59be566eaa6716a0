// Package cache provides an expiring key-value cache over the persistent
// storage port. Entries carry an absolute expiry; expired entries are evicted
// lazily on read, there is no background sweep. Cache failures never reach
// the caller: a read that cannot be served for any reason is a miss, and a
// write that cannot be stored is dropped with a log line.
package cache

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/okonma/arc/internal/domain"
)

const (
	// Prefix namespaces cache keys inside the shared storage substrate.
	Prefix = "arc_cache_"

	// DefaultTTL is applied when Set is called with a non-positive TTL.
	DefaultTTL = 20 * time.Minute
)

type entry struct {
	Value  json.RawMessage `json:"value"`
	Expiry int64           `json:"expiry"` // epoch milliseconds
}

// Cache is a TTL cache over a domain.Storage substrate.
type Cache struct {
	storage domain.Storage
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a cache over storage.
func New(storage domain.Storage, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{storage: storage, logger: logger, now: time.Now}
}

// SetClock overrides the cache's clock. Tests only.
func (c *Cache) SetClock(now func() time.Time) { c.now = now }

// Set stores value under key with the given TTL. Failures are logged and
// swallowed; the prior entry (if any) may survive a failed overwrite.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache marshal failed", "key", key, "error", err)
		return
	}

	data, err := json.Marshal(entry{
		Value:  raw,
		Expiry: c.now().Add(ttl).UnixMilli(),
	})
	if err != nil {
		c.logger.Warn("cache marshal failed", "key", key, "error", err)
		return
	}

	if err := c.storage.Set(Prefix+key, string(data)); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

// Remove drops the entry for key.
func (c *Cache) Remove(key string) {
	if err := c.storage.Remove(Prefix + key); err != nil {
		c.logger.Warn("cache remove failed", "key", key, "error", err)
	}
}

// Get reads the entry for key into dest. It returns false on absent,
// malformed, or expired entries; expired entries are deleted on the way out.
func (c *Cache) Get(key string, dest any) bool {
	data, ok, err := c.storage.Get(Prefix + key)
	if err != nil {
		c.logger.Warn("cache read failed", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}

	var e entry
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		c.logger.Warn("cache entry malformed", "key", key, "error", err)
		return false
	}

	if c.now().UnixMilli() > e.Expiry {
		c.Remove(key)
		return false
	}

	return json.Unmarshal(e.Value, dest) == nil
}

// Get is the typed read form of (*Cache).Get.
func Get[T any](c *Cache, key string) (T, bool) {
	var v T
	ok := c.Get(key, &v)
	return v, ok
}
