// Package running tracks in-flight job invocations: which jobs are
// currently executing and when each currently-running instance started.
package running

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tyhdefu/rnotifyd/pkg/notifyd/config"
)

// Jobs is an in-memory multiset of start timestamps per job id, keyed so
// that allow_parallel jobs can have more than one concurrent invocation
// recorded at once.
type Jobs struct {
	mu      sync.Mutex
	started map[config.JobDefinitionId][]uint64
}

func New() *Jobs {
	return &Jobs{started: make(map[config.JobDefinitionId][]uint64)}
}

// Add records a new in-flight invocation of id that started at startedUnix.
func (j *Jobs) Add(id config.JobDefinitionId, startedUnix uint64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.started[id] = append(j.started[id], startedUnix)
}

// MarkCompleted removes one entry matching startedUnix from id's multiset.
// An id with no matching start is a logged anomaly, never a panic; callers
// should log the bool return when false.
func (j *Jobs) MarkCompleted(id config.JobDefinitionId, startedUnix uint64) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	starts := j.started[id]
	for i, s := range starts {
		if s == startedUnix {
			j.started[id] = append(starts[:i], starts[i+1:]...)
			if len(j.started[id]) == 0 {
				delete(j.started, id)
			}
			return true
		}
	}
	return false
}

// AnyRunning reports whether id has any in-flight invocation.
func (j *Jobs) AnyRunning(id config.JobDefinitionId) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.started[id]) > 0
}

// GetLatest returns the maximum (most recent) start timestamp for id, if
// any are in flight. This is the ProvisionalJobRuns capability NextRun
// depends on.
func (j *Jobs) GetLatest(id config.JobDefinitionId) (uint64, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	starts := j.started[id]
	if len(starts) == 0 {
		return 0, false
	}
	latest := starts[0]
	for _, s := range starts[1:] {
		if s > latest {
			latest = s
		}
	}
	return latest, true
}

// Running is one job id's count of in-flight invocations, used for shutdown
// reporting and the status API.
type Running struct {
	ID    config.JobDefinitionId
	Count int
}

// GetRunning returns a stable view (sorted by id) of every job with at
// least one in-flight invocation.
func (j *Jobs) GetRunning() []Running {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Running, 0, len(j.started))
	for id, starts := range j.started {
		out = append(out, Running{ID: id, Count: len(starts)})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID.String() < out[b].ID.String() })
	return out
}

// Summary renders the running set as "<id> x<count>" entries joined by ", "
// for the shutdown log line.
func Summary(running []Running) string {
	parts := make([]string, len(running))
	for i, r := range running {
		parts[i] = fmt.Sprintf("%s x%d", r.ID, r.Count)
	}
	out := ""
	for i, p := range parts {
		if i != 0 {
			out += ", "
		}
		out += p
	}
	return out
}
