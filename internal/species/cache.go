package species

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const DefaultLookupTimeout = 10 * time.Second

// Cached memoizes successful lookups from an upstream Source. Concurrent
// misses for the same id share one upstream call, which runs on its own
// timeout detached from the callers' contexts.
type Cached struct {
	upstream Source
	timeout  time.Duration
	group    singleflight.Group

	mu      sync.RWMutex
	entries map[int]Species
}

var _ Source = (*Cached)(nil)

func NewCached(upstream Source) *Cached {
	return &Cached{upstream: upstream, timeout: DefaultLookupTimeout, entries: make(map[int]Species)}
}

func (c *Cached) Get(ctx context.Context, id int) (Species, error) {
	c.mu.RLock()
	sp, ok := c.entries[id]
	c.mu.RUnlock()
	if ok {
		return sp, nil
	}

	ch := c.group.DoChan(strconv.Itoa(id), func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		sp, err := c.upstream.Get(fetchCtx, id)
		if err != nil {
			return Species{}, err
		}
		c.mu.Lock()
		c.entries[id] = sp
		c.mu.Unlock()
		return sp, nil
	})

	select {
	case <-ctx.Done():
		return Species{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Species{}, res.Err
		}
		return res.Val.(Species), nil
	}
}
