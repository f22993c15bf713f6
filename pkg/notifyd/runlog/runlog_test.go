package runlog

import (
	"testing"

	"github.com/tyhdefu/rnotifyd/pkg/notifyd/config"
)

func TestReadFromStringSkipsCommentsAndBlanks(t *testing.T) {
	s := "# a comment\n\nhello-world:1670340125\nbeep-boop:1670370255\n"
	r, err := ReadFromString(s)
	if err != nil {
		t.Fatalf("ReadFromString: %v", err)
	}
	ts, ok := r.GetLastSuccessfulRunTime(config.MustJobDefinitionId("hello-world"))
	if !ok || ts != 1670340125 {
		t.Fatalf("got %d, %v", ts, ok)
	}
}

func TestReadFromStringRejectsMalformedLine(t *testing.T) {
	if _, err := ReadFromString("not-a-valid-line"); err == nil {
		t.Fatalf("expected error")
	}
}

// TestRoundTrip is scenario S7: two entries deserialize, re-serialize, and
// re-parse to an equal map.
func TestRoundTrip(t *testing.T) {
	s := "hello-world:1670340125\nbeep-boop:1670370255"
	r, err := ReadFromString(s)
	if err != nil {
		t.Fatalf("ReadFromString: %v", err)
	}

	serialized := r.WriteToString()
	reparsed, err := ReadFromString(serialized)
	if err != nil {
		t.Fatalf("ReadFromString(reparsed): %v", err)
	}

	for _, idStr := range []string{"hello-world", "beep-boop"} {
		id := config.MustJobDefinitionId(idStr)
		want, ok1 := r.GetLastSuccessfulRunTime(id)
		got, ok2 := reparsed.GetLastSuccessfulRunTime(id)
		if !ok1 || !ok2 || want != got {
			t.Fatalf("%s: want %d (%v), got %d (%v)", idStr, want, ok1, got, ok2)
		}
	}
}

func TestRecordOverwrites(t *testing.T) {
	r := New()
	id := config.MustJobDefinitionId("job")
	r.Record(id, 100)
	r.Record(id, 200)
	ts, ok := r.GetLastSuccessfulRunTime(id)
	if !ok || ts != 200 {
		t.Fatalf("got %d, %v", ts, ok)
	}
}
