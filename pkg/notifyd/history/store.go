// Package history persists every job execution (not just successes) to a
// local SQLite database for operator troubleshooting. It is purely
// additive and read-only from the scheduler's perspective: writes happen
// fire-and-forget on the same path as RunLog persistence and never block
// the dispatch loop or influence scheduling decisions.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store wraps a SQLite database holding the job_runs table.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// ensures the job_runs table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("history: opening %s: %w", path, err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS job_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			job_id TEXT NOT NULL,
			started_at TEXT NOT NULL,
			success INTEGER NOT NULL,
			exit_code INTEGER NOT NULL,
			stdout TEXT NOT NULL,
			stderr TEXT NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: creating job_runs table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Run is one recorded job execution.
type Run struct {
	JobID     string
	StartedAt time.Time
	Success   bool
	ExitCode  int
	Stdout    string
	Stderr    string
}

// Record appends a Run. Writes are append-only: history never updates or
// replaces a prior row, unlike the canonical RunLog.
func (s *Store) Record(r Run) error {
	_, err := s.db.Exec(`
		INSERT INTO job_runs (job_id, started_at, success, exit_code, stdout, stderr)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.JobID, r.StartedAt.UTC().Format(time.RFC3339), boolToInt(r.Success), r.ExitCode, r.Stdout, r.Stderr,
	)
	if err != nil {
		return fmt.Errorf("history: recording run for %q: %w", r.JobID, err)
	}
	return nil
}

// PruneOlderThan deletes rows whose started_at is older than horizon
// (e.g. 30 days). The scheduler does not call it, so rows are kept until
// some caller does.
func (s *Store) PruneOlderThan(horizon time.Duration) error {
	cutoff := time.Now().Add(-horizon).UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`DELETE FROM job_runs WHERE started_at < ?`, cutoff)
	if err != nil {
		return fmt.Errorf("history: pruning rows older than %s: %w", cutoff, err)
	}
	return nil
}

// RecentForJob returns the most recent limit runs for jobID, newest first,
// for operator troubleshooting.
func (s *Store) RecentForJob(jobID string, limit int) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT job_id, started_at, success, exit_code, stdout, stderr
		FROM job_runs WHERE job_id = ? ORDER BY id DESC LIMIT ?`, jobID, limit)
	if err != nil {
		return nil, fmt.Errorf("history: querying runs for %q: %w", jobID, err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var startedAt string
		var success int
		if err := rows.Scan(&r.JobID, &startedAt, &success, &r.ExitCode, &r.Stdout, &r.Stderr); err != nil {
			return nil, fmt.Errorf("history: scanning run row: %w", err)
		}
		r.Success = success != 0
		r.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
