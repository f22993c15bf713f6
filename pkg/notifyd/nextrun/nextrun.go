// Package nextrun caches each job's next-due timestamp, recomputing it (via
// Frequency.Next, which is pure) only when the inputs that produced the
// cached value may have changed.
package nextrun

import (
	"time"

	"github.com/tyhdefu/rnotifyd/pkg/notifyd/config"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/frequency"
)

// ProvisionalJobRuns supplies the most recent in-flight start for a job,
// without the nextrun package needing to depend on the running package's
// concrete type directly (it would otherwise: running tracks completions
// which feed back into what's "next due", and nextrun's cache invalidation
// is driven by the scheduler's dispatch of running jobs).
type ProvisionalJobRuns interface {
	GetLatest(id config.JobDefinitionId) (uint64, bool)
}

// RunLogReader supplies the last recorded successful run for a job.
type RunLogReader interface {
	GetLastSuccessfulRunTime(id config.JobDefinitionId) (uint64, bool)
}

// Cache is the NextRun cache. It is owned exclusively by the scheduler
// goroutine; nothing here is safe for concurrent use from multiple
// goroutines, by design.
type Cache struct {
	values map[config.JobDefinitionId]uint64
}

func New() *Cache {
	return &Cache{values: make(map[config.JobDefinitionId]uint64)}
}

// UpdateAndGet returns the cached next-due timestamp for id, computing and
// caching it first if absent. last is provisional.GetLatest(id), falling
// back to runLog.GetLastSuccessfulRunTime(id).
func (c *Cache) UpdateAndGet(id config.JobDefinitionId, freq frequency.Frequency, nowLocal time.Time, runLog RunLogReader, provisional ProvisionalJobRuns) uint64 {
	if v, ok := c.values[id]; ok {
		return v
	}

	var last *int64
	if ts, ok := provisional.GetLatest(id); ok {
		v := int64(ts)
		last = &v
	} else if ts, ok := runLog.GetLastSuccessfulRunTime(id); ok {
		v := int64(ts)
		last = &v
	}

	next := freq.Next(nowLocal, last)
	c.values[id] = next
	return next
}

// Invalidate removes id's cached value, forcing the next UpdateAndGet call
// to recompute it.
func (c *Cache) Invalidate(id config.JobDefinitionId) {
	delete(c.values, id)
}

// GetWait returns how many seconds until the earliest cached next-due
// timestamp, clamped to 0 if it has already passed, or frequency.Never if
// the cache holds nothing.
func (c *Cache) GetWait(nowUnix uint64) uint64 {
	if len(c.values) == 0 {
		return frequency.Never
	}
	min := frequency.Never
	for _, v := range c.values {
		if v < min {
			min = v
		}
	}
	if min < nowUnix {
		return 0
	}
	return min - nowUnix
}
