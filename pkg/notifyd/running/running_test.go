package running

import (
	"testing"

	"github.com/tyhdefu/rnotifyd/pkg/notifyd/config"
)

func TestAddAnyRunningMarkCompleted(t *testing.T) {
	j := New()
	id := config.MustJobDefinitionId("job-a")
	if j.AnyRunning(id) {
		t.Fatalf("expected not running before Add")
	}
	j.Add(id, 100)
	if !j.AnyRunning(id) {
		t.Fatalf("expected running after Add")
	}
	if !j.MarkCompleted(id, 100) {
		t.Fatalf("expected MarkCompleted to find the entry")
	}
	if j.AnyRunning(id) {
		t.Fatalf("expected not running after MarkCompleted")
	}
}

func TestMarkCompletedNoMatchIsNotPanic(t *testing.T) {
	j := New()
	id := config.MustJobDefinitionId("job-a")
	if j.MarkCompleted(id, 999) {
		t.Fatalf("expected false for unmatched completion")
	}
}

func TestGetLatestIsMax(t *testing.T) {
	j := New()
	id := config.MustJobDefinitionId("job-a")
	j.Add(id, 100)
	j.Add(id, 300)
	j.Add(id, 200)
	latest, ok := j.GetLatest(id)
	if !ok || latest != 300 {
		t.Fatalf("got %d, %v", latest, ok)
	}
}

func TestAllowParallelMultipleConcurrent(t *testing.T) {
	j := New()
	id := config.MustJobDefinitionId("job-a")
	j.Add(id, 100)
	j.Add(id, 200)
	if !j.MarkCompleted(id, 100) {
		t.Fatalf("expected first completion to match")
	}
	if !j.AnyRunning(id) {
		t.Fatalf("expected still running after one of two completions")
	}
}
