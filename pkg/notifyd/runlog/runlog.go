// Package runlog persists the canonical record of each job's last
// successful run, the only input (besides in-flight provisional starts)
// schedule evaluation trusts.
package runlog

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/tyhdefu/rnotifyd/pkg/notifyd/config"
)

// RunLog maps a job id to the unix-seconds timestamp of its last successful
// completion. Only successes are ever recorded.
type RunLog struct {
	mu      sync.RWMutex
	lastRun map[config.JobDefinitionId]uint64
}

func New() *RunLog {
	return &RunLog{lastRun: make(map[config.JobDefinitionId]uint64)}
}

// GetLastSuccessfulRunTime returns the last recorded success for id, if any.
func (r *RunLog) GetLastSuccessfulRunTime(id config.JobDefinitionId) (uint64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ts, ok := r.lastRun[id]
	return ts, ok
}

// Record overwrites the last successful run time for id.
func (r *RunLog) Record(id config.JobDefinitionId, timestamp uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastRun[id] = timestamp
}

// ReadFromString parses the textual run-log format: "#"-prefixed comments
// and blank lines are skipped; every other line must be "<job-id>:<unix
// seconds>". A malformed non-comment line is a fatal parse error.
func ReadFromString(s string) (*RunLog, error) {
	r := New()
	for lineNum, line := range strings.Split(s, "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("run log line %d: missing ':' separator in %q", lineNum+1, line)
		}
		id, err := config.NewJobDefinitionId(parts[0])
		if err != nil {
			return nil, fmt.Errorf("run log line %d: %w", lineNum+1, err)
		}
		ts, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("run log line %d: invalid timestamp %q: %w", lineNum+1, parts[1], err)
		}
		r.lastRun[id] = ts
	}
	return r, nil
}

// WriteToString serializes the run log, one "<job-id>:<unix-seconds>\n"
// entry per job, in unspecified order.
func (r *RunLog) WriteToString() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var b strings.Builder
	for id, ts := range r.lastRun {
		fmt.Fprintf(&b, "%s:%d\n", id, ts)
	}
	return b.String()
}
