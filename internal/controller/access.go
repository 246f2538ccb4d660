package controller

import (
	"context"
	"github.com/Borislavv/go-ash-msdata/config"
	"github.com/Borislavv/go-ash-msdata/internal/cache"
	"github.com/Borislavv/go-ash-msdata/internal/source"
	"strings"
	"time"
)

// entry addresses one cached quantity.
type entry struct {
	kind cache.Kind
	key  cache.Key
	ids  []string
}

func single(kind cache.Kind) entry { return entry{kind: kind, key: cache.SingleKey(kind)} }

func perID(kind cache.Kind, id string) entry {
	return entry{kind: kind, key: cache.IDKey(kind, id), ids: []string{id}}
}

func perPair(kind cache.Kind, id1, id2 string) entry {
	return entry{kind: kind, key: cache.PairKey(kind, id1, id2), ids: []string{id1, id2}}
}

func (e entry) flightKey() string {
	return e.kind.String() + "\x00" + strings.Join(e.ids, "\x00")
}

// fetch applies the access protocol to one entry: a hit is returned as stored (a stored nil
// included); a miss under cache_only yields def without I/O; a miss under cache_and_source is
// resolved once, stored and returned. Concurrent misses on the same entry share one resolution.
// Errors are never stored; errUnavailable results are neither stored nor reported.
func fetch[T any](ctx context.Context, c *Controller, mode config.AccessMode, e entry, def T, resolve func(ctx context.Context) (T, error)) (T, error) {
	if c.closed.Load() {
		return def, ErrClosed
	}

	kind := e.kind.String()
	if v, ok := c.cache.Get(e.key); ok {
		c.metrics.lookup(kind, true)
		t, _ := v.(T)
		return t, nil
	}
	c.metrics.lookup(kind, false)

	if mode == config.ModeCacheOnly {
		return def, nil
	}

	v, err, _ := c.flight.Do(e.flightKey(), func() (any, error) {
		// a flight that just finished may have stored it
		if v, ok := c.cache.Get(e.key); ok {
			return v, nil
		}

		started := time.Now()
		v, err := resolve(ctx)
		c.metrics.resolved(kind, started, err)
		if err != nil {
			return nil, err
		}
		c.cache.Store(e.key, v)
		return v, nil
	})
	if err != nil {
		if !isUnavailable(err) {
			c.logger.Error().Err(err).Str("kind", kind).Strs("ids", e.ids).Msg("resolution failed")
		}
		return def, err
	}

	t, _ := v.(T)
	return t, nil
}

// read fetches one raw record from the bound source. A missing record yields (nil, nil).
func (c *Controller) read(ctx context.Context, rk source.RecordKind, ck cache.Kind, id string) (source.Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.reader == nil {
		return nil, ErrClosed
	}
	rec, err := c.reader.ReadByID(ctx, rk, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, readFailure(err, ck, id, c.path)
	}
	return rec, nil
}

// streamIDs lists every id of kind from the bound source.
func (c *Controller) streamIDs(ctx context.Context, rk source.RecordKind, ck cache.Kind) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.reader == nil {
		return nil, ErrClosed
	}
	ids := make([]string, 0)
	if err := c.reader.StreamAllIDs(ctx, rk, func(id string) error {
		ids = append(ids, id)
		return nil
	}); err != nil {
		return nil, readFailure(err, ck, "*", c.path)
	}
	return ids, nil
}

// storeIfAbsent writes side entries derived from a weaker source without replacing
// values already resolved from a stronger one.
func (c *Controller) storeIfAbsent(key cache.Key, v any) {
	if _, ok := c.cache.Get(key); !ok {
		c.cache.Store(key, v)
	}
}
