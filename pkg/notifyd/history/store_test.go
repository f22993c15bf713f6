package history

import (
	"testing"
	"time"
)

func TestRecordAndRecentForJob(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	now := time.Now()
	if err := s.Record(Run{JobID: "check-devices", StartedAt: now, Success: true, ExitCode: 0, Stdout: "ok"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record(Run{JobID: "check-devices", StartedAt: now.Add(time.Minute), Success: false, ExitCode: 1, Stderr: "boom"}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	runs, err := s.RecentForJob("check-devices", 10)
	if err != nil {
		t.Fatalf("RecentForJob: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].Success || runs[0].Stderr != "boom" {
		t.Fatalf("expected newest-first ordering, got %+v", runs[0])
	}
}

func TestPruneOlderThan(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	old := time.Now().Add(-60 * 24 * time.Hour)
	s.Record(Run{JobID: "job", StartedAt: old, Success: true})
	s.Record(Run{JobID: "job", StartedAt: time.Now(), Success: true})

	if err := s.PruneOlderThan(30 * 24 * time.Hour); err != nil {
		t.Fatalf("PruneOlderThan: %v", err)
	}
	runs, _ := s.RecentForJob("job", 10)
	if len(runs) != 1 {
		t.Fatalf("got %d runs after prune, want 1", len(runs))
	}
}
