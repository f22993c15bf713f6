// Package scheduler runs the main dispatch loop: it wakes when the
// earliest cached next-run timestamp is due, fires the jobs that are due,
// and folds their results back into RunLog and RunningJobs as they
// complete. Everything that mutates scheduler state lives on the one
// goroutine that runs Scheduler.Run; every other goroutine (job workers,
// the status API) talks to it over channels.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/tyhdefu/rnotifyd/pkg/notifyd/config"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/executor"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/frequency"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/history"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/jobresult"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/message"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/nextrun"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/notifier"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/notify"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/runlog"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/running"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/statusapi"
)

// maxWait bounds how long the loop ever sleeps in one iteration, even when
// no job is due sooner or every job's next run is frequency.Never. The job
// config is read once at startup; waking up does not re-read it.
const maxWait = 60 * time.Second

// completionBuffer is the capacity of the completions channel: enough to
// absorb a burst of jobs finishing back to back without a worker goroutine
// blocking on send while the main loop is busy dispatching.
const completionBuffer = 10

// jobFinish is sent by a worker goroutine when a job's execution ends.
type jobFinish struct {
	id      config.JobDefinitionId
	started uint64
	result  jobresult.JobResult
}

// statusRequest is how the status API asks the scheduler goroutine for a
// consistent snapshot without touching NextRun or RunningJobs itself.
type statusRequest struct {
	reply chan []statusapi.JobStatus
}

// Scheduler owns RunLog, RunningJobs and NextRun and is the only thing
// that ever calls their methods; Run must only ever be invoked once.
type Scheduler struct {
	cfg         *config.Config
	runLog      *runlog.RunLog
	runLogPath  string
	runningJobs *running.Jobs
	nextRun     *nextrun.Cache
	deliverer   notifier.Deliverer
	history     *history.Store
	log         *slog.Logger

	completions chan jobFinish
	statusReqs  chan statusRequest
}

// New builds a Scheduler. history and deliverer may be nil: a nil history
// simply means executions aren't persisted beyond RunLog, and a nil
// deliverer means CreateMessage's output is dropped (useful for dry runs).
func New(cfg *config.Config, runLogPath string, runLog *runlog.RunLog, deliverer notifier.Deliverer, hist *history.Store, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		cfg:         cfg,
		runLog:      runLog,
		runLogPath:  runLogPath,
		runningJobs: running.New(),
		nextRun:     nextrun.New(),
		deliverer:   deliverer,
		history:     hist,
		log:         log,
		completions: make(chan jobFinish, completionBuffer),
		statusReqs:  make(chan statusRequest),
	}
}

// Status implements statusapi.Provider by routing the request onto the
// scheduler goroutine and blocking for its reply.
func (s *Scheduler) Status() []statusapi.JobStatus {
	reply := make(chan []statusapi.JobStatus, 1)
	s.statusReqs <- statusRequest{reply: reply}
	return <-reply
}

// Run is the main dispatch loop. It blocks until ctx is cancelled, at
// which point it logs the jobs still in flight and returns.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info("scheduler starting", "jobs", len(s.cfg.Jobs))

	for {
		wait := s.waitDuration()
		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()
			s.shutdown()
			return

		case f := <-s.completions:
			timer.Stop()
			s.handleCompletion(f)

		case req := <-s.statusReqs:
			timer.Stop()
			req.reply <- s.snapshot()

		case <-timer.C:
			s.dispatchDue()
		}
	}
}

// waitDuration returns how long to sleep before the next dispatch sweep,
// refreshing every job's NextRun entry first so GetWait sees current data.
func (s *Scheduler) waitDuration() time.Duration {
	now := time.Now()
	nowUnix := uint64(now.Unix())
	for id, job := range s.cfg.Jobs {
		s.nextRun.UpdateAndGet(id, job.Frequency, now, s.runLog, s.runningJobs)
	}
	wait := s.nextRun.GetWait(nowUnix)
	if wait == frequency.Never {
		return maxWait
	}
	d := time.Duration(wait) * time.Second
	if d > maxWait {
		return maxWait
	}
	return d
}

// dispatchDue fires every job whose cached next-run has arrived.
func (s *Scheduler) dispatchDue() {
	now := time.Now()
	nowUnix := uint64(now.Unix())

	for id, job := range s.cfg.Jobs {
		next := s.nextRun.UpdateAndGet(id, job.Frequency, now, s.runLog, s.runningJobs)
		if next > nowUnix {
			continue
		}
		if !job.AllowParallel && s.runningJobs.AnyRunning(id) {
			s.log.Debug("skipping dispatch, already running and allow_parallel is false", "job", id.String())
			continue
		}

		s.runningJobs.Add(id, nowUnix)
		s.nextRun.Invalidate(id)
		s.nextRun.UpdateAndGet(id, job.Frequency, now.Add(time.Second), s.runLog, s.runningJobs)
		go s.runJob(id, job, nowUnix)
	}
}

// runJob executes one job and reports the outcome back to the main loop.
// A panic while executing is turned into an Invalid result rather than
// taking the whole process down with it. It deliberately does not inherit
// Run's ctx: an in-flight subprocess is allowed to finish once started,
// rather than being killed when the scheduler is asked to shut down.
func (s *Scheduler) runJob(id config.JobDefinitionId, job config.JobDefinition, startedUnix uint64) {
	correlationID := uuid.New().String()
	logger := s.log.With("job", id.String(), "correlation_id", correlationID)
	logger.Info("dispatching job", "cmd", job.Cmd)

	result := func() (r jobresult.JobResult) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("job execution panicked", "panic", rec)
				r = jobresult.NewInvalid(message.NewRaw(fmt.Sprintf("job execution panicked: %v", rec)))
			}
		}()
		return executor.Execute(context.Background(), job.Cmd, job.Notify.OutputFormat)
	}()

	logger.Info("job finished", "success", result.Success())
	s.completions <- jobFinish{id: id, started: startedUnix, result: result}
}

// handleCompletion folds a finished job's result back into scheduler
// state: RunningJobs and RunLog (on success only). NextRun is left alone:
// the entry recomputed at dispatch from the provisional start stays in
// force. Notification delivery and, if configured, history persistence run
// on goroutines of their own so the loop never waits on them. Delivery
// uses a fresh context rather than Run's, so a notification blocked on the
// network is not cancelled when the scheduler is asked to shut down.
func (s *Scheduler) handleCompletion(f jobFinish) {
	if ok := s.runningJobs.MarkCompleted(f.id, f.started); !ok {
		s.log.Warn("completion for an invocation we never recorded as started", "job", f.id.String(), "started", f.started)
	}

	if f.result.Success() {
		s.runLog.Record(f.id, f.started)
		s.persistRunLog()
	}

	job, ok := s.cfg.Jobs[f.id]
	if !ok {
		// Job was removed from config between dispatch and completion.
		return
	}

	if msg := notify.CreateMessage(f.id, job.Notify, f.result); msg != nil && s.deliverer != nil {
		go func(msg message.Message) {
			if err := s.deliverer.Deliver(context.Background(), msg); err != nil {
				s.log.Error("failed to deliver notification", "job", f.id.String(), "error", err)
			}
		}(*msg)
	}

	if s.history != nil {
		run := history.Run{
			JobID:     f.id.String(),
			StartedAt: time.Unix(int64(f.started), 0),
			Success:   f.result.Success(),
			ExitCode:  f.result.Output.ExitCode,
			Stdout:    f.result.Output.Stdout,
			Stderr:    f.result.Output.Stderr,
		}
		go func() {
			if err := s.history.Record(run); err != nil {
				s.log.Error("failed to record job history", "job", f.id.String(), "error", err)
			}
		}()
	}
}

// persistRunLog writes the RunLog to disk so a restart doesn't forget the
// last successful run for every FixedPeriod job. The contents are
// serialized on the calling goroutine and written on a goroutine of their
// own, so the loop never waits on the disk. Best-effort: a write failure
// is logged, never fatal, since the in-memory RunLog remains the source of
// truth for the life of this process.
func (s *Scheduler) persistRunLog() {
	if s.runLogPath == "" {
		return
	}
	data := []byte(s.runLog.WriteToString())
	go func() {
		if err := os.WriteFile(s.runLogPath, data, 0o644); err != nil {
			s.log.Error("failed to persist run log", "path", s.runLogPath, "error", err)
		}
	}()
}

// snapshot builds the current status report for every configured job.
func (s *Scheduler) snapshot() []statusapi.JobStatus {
	now := time.Now()
	out := make([]statusapi.JobStatus, 0, len(s.cfg.Jobs))
	counts := make(map[config.JobDefinitionId]int)
	for _, r := range s.runningJobs.GetRunning() {
		counts[r.ID] = r.Count
	}
	for id, job := range s.cfg.Jobs {
		next := s.nextRun.UpdateAndGet(id, job.Frequency, now, s.runLog, s.runningJobs)
		out = append(out, statusapi.JobStatus{JobID: id.String(), NextRun: next, Running: counts[id]})
	}
	return out
}

// shutdown logs whatever is still in flight when the context is cancelled.
// It does not wait for those jobs: the caller is responsible for deciding
// how long to give in-flight subprocesses to finish before the process
// actually exits.
func (s *Scheduler) shutdown() {
	r := s.runningJobs.GetRunning()
	if len(r) == 0 {
		s.log.Info("scheduler stopped, nothing in flight")
		return
	}
	s.log.Warn("scheduler stopping with jobs still running", "running", running.Summary(r))
}
