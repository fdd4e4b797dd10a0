package store

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/goccy/go-json"

	"github.com/i474232898/weather-snapshot/internal/weather"
)

const (
	// StorageKey is the single record under which the entry list is persisted.
	StorageKey = "weather-cache"

	DefaultTTL      = 15 * time.Minute
	DefaultCapacity = 5
)

// Entry is one cached snapshot. Entries are replaced wholesale, never edited.
type Entry struct {
	Key       string                  `json:"key"`
	FetchedAt time.Time               `json:"fetchedAt"`
	ExpiresAt time.Time               `json:"expiresAt"`
	Snapshot  weather.WeatherSnapshot `json:"snapshot"`
}

// SnapshotCache keeps at most capacity snapshots for ttl each, persisted as
// one JSON array in a Storage. It has no locking: concurrent puts for the same
// key race and the last write wins.
type SnapshotCache struct {
	storage  Storage
	ttl      time.Duration
	capacity int
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures a SnapshotCache.
type Option func(*SnapshotCache)

// WithTTL sets the entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *SnapshotCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCapacity sets the maximum number of entries.
func WithCapacity(n int) Option {
	return func(c *SnapshotCache) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithClock overrides time.Now. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *SnapshotCache) {
		c.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *SnapshotCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewSnapshotCache creates a cache over storage. A nil storage yields a cache
// whose operations are all no-ops.
func NewSnapshotCache(storage Storage, opts ...Option) *SnapshotCache {
	c := &SnapshotCache{
		storage:  storage,
		ttl:      DefaultTTL,
		capacity: DefaultCapacity,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the live snapshot stored under key. Expired entries found while
// loading are dropped from storage as a side effect.
func (c *SnapshotCache) Get(ctx context.Context, key string) (weather.WeatherSnapshot, bool) {
	entries, ok := c.load(ctx)
	if !ok {
		return weather.WeatherSnapshot{}, false
	}

	live := c.dropExpired(ctx, entries)

	for _, e := range live {
		if e.Key == key {
			return e.Snapshot, true
		}
	}
	return weather.WeatherSnapshot{}, false
}

// Put stores snapshot under key, replacing any entry with the same key, and
// evicts the oldest entries by fetch time while over capacity.
func (c *SnapshotCache) Put(ctx context.Context, key string, snapshot weather.WeatherSnapshot) {
	entries, ok := c.load(ctx)
	if !ok {
		return
	}

	now := c.now()
	entries = slices.DeleteFunc(entries, func(e Entry) bool {
		return e.Key == key
	})
	entries = append(entries, Entry{
		Key:       key,
		FetchedAt: now,
		ExpiresAt: now.Add(c.ttl),
		Snapshot:  snapshot,
	})

	if len(entries) > c.capacity {
		slices.SortStableFunc(entries, func(a, b Entry) int {
			return a.FetchedAt.Compare(b.FetchedAt)
		})
		evicted := len(entries) - c.capacity
		c.logger.DebugContext(ctx, "cache over capacity; evicting oldest",
			"evicted", evicted,
			"capacity", c.capacity,
		)
		entries = entries[evicted:]
	}

	c.save(ctx, entries)
}

// Purge drops expired entries and returns how many were removed.
func (c *SnapshotCache) Purge(ctx context.Context) int {
	entries, ok := c.load(ctx)
	if !ok {
		return 0
	}
	live := c.dropExpired(ctx, entries)
	return len(entries) - len(live)
}

// Clear removes the persisted entry list.
func (c *SnapshotCache) Clear(ctx context.Context) {
	if c.storage == nil {
		return
	}
	if err := c.storage.Delete(ctx, StorageKey); err != nil {
		c.logger.WarnContext(ctx, "cache clear failed", "error", err)
	}
}

// Entries returns the persisted entries as stored, expired ones included.
func (c *SnapshotCache) Entries(ctx context.Context) []Entry {
	entries, _ := c.load(ctx)
	return entries
}

// dropExpired removes entries with expiresAt <= now and persists the removal
// when anything was dropped.
func (c *SnapshotCache) dropExpired(ctx context.Context, entries []Entry) []Entry {
	now := c.now()
	live := slices.DeleteFunc(slices.Clone(entries), func(e Entry) bool {
		return !now.Before(e.ExpiresAt)
	})
	if len(live) != len(entries) {
		c.save(ctx, live)
	}
	return live
}

// load reads the entry list. ok is false when storage is unavailable; a
// missing or unreadable record loads as an empty list.
func (c *SnapshotCache) load(ctx context.Context) ([]Entry, bool) {
	if c.storage == nil {
		return nil, false
	}

	raw, err := c.storage.Get(ctx, StorageKey)
	if errors.Is(err, ErrNotFound) {
		return nil, true
	}
	if err != nil {
		c.logger.DebugContext(ctx, "cache storage unavailable", "error", err)
		return nil, false
	}

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		c.logger.WarnContext(ctx, "discarding unreadable cache record", "error", err)
		return nil, true
	}
	return entries, true
}

func (c *SnapshotCache) save(ctx context.Context, entries []Entry) {
	raw, err := json.Marshal(entries)
	if err != nil {
		c.logger.WarnContext(ctx, "cache encode failed", "error", err)
		return
	}
	if err := c.storage.Set(ctx, StorageKey, raw); err != nil {
		c.logger.DebugContext(ctx, "cache storage unavailable; skipping write", "error", err)
	}
}

var _ weather.Cache = (*SnapshotCache)(nil)
