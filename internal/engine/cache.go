package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/singleflight"
)

// Cache memoizes one Dataset per source for the lifetime of the Cache.
// Concurrent loads of the same source share a single fetch. Failed loads are
// not cached.
type Cache struct {
	fetcher Fetcher
	logger  *log.Logger

	group singleflight.Group

	mu   sync.RWMutex
	sets map[string]*Dataset

	fetches atomic.Int64
}

func NewCache(fetcher Fetcher, logger *log.Logger) *Cache {
	if fetcher == nil {
		fetcher = AutoFetcher{}
	}
	if logger == nil {
		logger = quietLogger()
	}
	return &Cache{
		fetcher: fetcher,
		logger:  logger,
		sets:    make(map[string]*Dataset),
	}
}

// Load returns the Dataset for source, fetching it on first use. A caller
// whose ctx ends stops waiting; the shared load keeps running for the others.
func (c *Cache) Load(ctx context.Context, source string) (*Dataset, error) {
	if ds, ok := c.Cached(source); ok {
		return ds, nil
	}

	ch := c.group.DoChan(source, func() (any, error) {
		if ds, ok := c.Cached(source); ok {
			return ds, nil
		}
		return c.load(context.WithoutCancel(ctx), source)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Dataset), nil
	}
}

// Cached returns the Dataset for source if it has already been loaded.
func (c *Cache) Cached(source string) (*Dataset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ds, ok := c.sets[source]
	return ds, ok
}

// Fetches reports how many times the underlying Fetcher has been called.
func (c *Cache) Fetches() int64 {
	return c.fetches.Load()
}

func (c *Cache) load(ctx context.Context, source string) (ds *Dataset, err error) {
	loadID := uuid.NewString()
	defer func() {
		if r := recover(); r != nil {
			c.logger.Errorj(log.JSON{"event": "load_panic", "load_id": loadID, "source": source, "panic": fmt.Sprint(r)})
			ds, err = nil, fmt.Errorf("%w: %s: panic: %v", ErrSourceLoad, source, r)
		}
	}()
	start := time.Now()
	c.logger.Infoj(log.JSON{"event": "load_start", "load_id": loadID, "source": source})

	c.fetches.Add(1)
	rc, err := c.fetcher.Fetch(ctx, source)
	if err != nil {
		c.logger.Errorj(log.JSON{"event": "load_failed", "load_id": loadID, "source": source, "error": err.Error()})
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceLoad, source, err)
	}
	defer rc.Close()

	ds, err = LoadColumnar(rc, source, c.logger)
	if err != nil {
		c.logger.Errorj(log.JSON{"event": "load_failed", "load_id": loadID, "source": source, "error": err.Error()})
		return nil, err
	}

	c.mu.Lock()
	c.sets[source] = ds
	c.mu.Unlock()

	c.logger.Infoj(log.JSON{
		"event":       "load_done",
		"load_id":     loadID,
		"source":      source,
		"rows":        ds.stats.Rows,
		"kept":        ds.stats.Kept,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return ds, nil
}
