package generation

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultAvailabilityTTL is how long an availability verdict is reused before the
// backend is probed again.
const DefaultAvailabilityTTL = 30 * time.Second

// defaultProbeTimeout bounds a single liveness probe. Probes run detached from the
// caller's context so an abandoned request cannot poison the cached verdict.
const defaultProbeTimeout = 10 * time.Second

// availabilityRecord is an immutable liveness verdict. Records are replaced, never mutated.
type availabilityRecord struct {
	checkedAt time.Time
	available bool
}

// AvailabilityCache memoizes the result of a backend liveness probe for a fixed TTL.
// Both positive and negative verdicts are cached. Readers never block on each other;
// concurrent callers that find the verdict expired share a single probe.
type AvailabilityCache struct {
	backendType  string
	ttl          time.Duration
	probeTimeout time.Duration
	now          func() time.Time
	last         atomic.Pointer[availabilityRecord]
	probes       singleflight.Group
}

// NewAvailabilityCache creates a cache for the given backend type. A non-positive ttl
// falls back to DefaultAvailabilityTTL.
func NewAvailabilityCache(backendType string, ttl time.Duration) *AvailabilityCache {
	if ttl <= 0 {
		ttl = DefaultAvailabilityTTL
	}
	return &AvailabilityCache{
		backendType:  backendType,
		ttl:          ttl,
		probeTimeout: defaultProbeTimeout,
		now:          time.Now,
	}
}

// Check returns the cached verdict if it is younger than the TTL, otherwise it runs
// probe and stores its result.
//
// The probe keeps ctx's values but not its cancellation, and is bounded by its own
// timeout. A caller whose ctx ends first gets false without waiting; the probe
// finishes in the background and its verdict is still cached for other callers.
func (c *AvailabilityCache) Check(ctx context.Context, probe func(ctx context.Context) bool) bool {
	if available, fresh := c.cached(); fresh {
		return available
	}

	ch := c.probes.DoChan(c.backendType, func() (interface{}, error) {
		// Another caller may have refreshed the record while we waited for the group.
		if available, fresh := c.cached(); fresh {
			return available, nil
		}

		probeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.probeTimeout)
		defer cancel()

		checkedAt := c.now()
		available := probe(probeCtx)
		c.last.Store(&availabilityRecord{checkedAt: checkedAt, available: available})
		return available, nil
	})

	select {
	case res := <-ch:
		return res.Val.(bool)
	case <-ctx.Done():
		return false
	}
}

// Invalidate drops the cached verdict so the next Check probes the backend.
func (c *AvailabilityCache) Invalidate() {
	c.last.Store(nil)
}

// LastChecked returns the time and result of the most recent probe. ok is false if the
// backend has never been probed.
func (c *AvailabilityCache) LastChecked() (checkedAt time.Time, available bool, ok bool) {
	rec := c.last.Load()
	if rec == nil {
		return time.Time{}, false, false
	}
	return rec.checkedAt, rec.available, true
}

// BackendType returns the identifier of the backend this cache belongs to.
func (c *AvailabilityCache) BackendType() string {
	return c.backendType
}

func (c *AvailabilityCache) cached() (available bool, fresh bool) {
	rec := c.last.Load()
	if rec == nil {
		return false, false
	}
	if c.now().Sub(rec.checkedAt) >= c.ttl {
		return rec.available, false
	}
	return rec.available, true
}
