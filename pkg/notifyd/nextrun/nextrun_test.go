package nextrun

import (
	"testing"
	"time"

	"github.com/tyhdefu/rnotifyd/pkg/notifyd/config"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/frequency"
)

type fakeProvisional struct {
	values map[config.JobDefinitionId]uint64
}

func (f fakeProvisional) GetLatest(id config.JobDefinitionId) (uint64, bool) {
	v, ok := f.values[id]
	return v, ok
}

type fakeRunLog struct {
	values map[config.JobDefinitionId]uint64
}

func (f fakeRunLog) GetLastSuccessfulRunTime(id config.JobDefinitionId) (uint64, bool) {
	v, ok := f.values[id]
	return v, ok
}

func TestUpdateAndGetCachesValue(t *testing.T) {
	c := New()
	id := config.MustJobDefinitionId("job-a")
	freq := frequency.FixedPeriod(1, 0, 0)
	now := time.Unix(1000, 0)
	prov := fakeProvisional{values: map[config.JobDefinitionId]uint64{}}
	rl := fakeRunLog{values: map[config.JobDefinitionId]uint64{id: 500}}

	first := c.UpdateAndGet(id, freq, now, rl, prov)
	if first != 500+3600 {
		t.Fatalf("got %d", first)
	}

	// Change the run log's value; cached result must not change until
	// invalidated.
	rl.values[id] = 999999
	second := c.UpdateAndGet(id, freq, now, rl, prov)
	if second != first {
		t.Fatalf("cache not respected: got %d, want %d", second, first)
	}

	c.Invalidate(id)
	third := c.UpdateAndGet(id, freq, now, rl, prov)
	if third != 999999+3600 {
		t.Fatalf("got %d after invalidate", third)
	}
}

func TestUpdateAndGetPrefersProvisionalOverRunLog(t *testing.T) {
	c := New()
	id := config.MustJobDefinitionId("job-a")
	freq := frequency.FixedPeriod(0, 0, 10)
	now := time.Unix(1000, 0)
	prov := fakeProvisional{values: map[config.JobDefinitionId]uint64{id: 700}}
	rl := fakeRunLog{values: map[config.JobDefinitionId]uint64{id: 500}}

	got := c.UpdateAndGet(id, freq, now, rl, prov)
	if got != 710 {
		t.Fatalf("got %d, want 710 (provisional should win)", got)
	}
}

func TestGetWaitEmptyIsNever(t *testing.T) {
	c := New()
	if got := c.GetWait(1000); got != frequency.Never {
		t.Fatalf("got %d, want Never", got)
	}
}

func TestGetWaitClampsToZero(t *testing.T) {
	c := New()
	id := config.MustJobDefinitionId("job-a")
	freq := frequency.FixedPeriod(0, 0, 10)
	last := int64(500)
	_ = freq
	c.values[id] = uint64(last)

	if got := c.GetWait(2000); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}
