package observ

import (
	"strings"
	"testing"
)

func TestTrackRecordsPhases(t *testing.T) {
	tm := NewTimer()
	done := tm.Track("decode")
	done("1 envelope")
	if len(tm.Phases()) != 1 {
		t.Fatalf("expected one phase")
	}
	p := tm.Phases()[0]
	if p.Name != "decode" || p.Note != "1 envelope" {
		t.Fatalf("phase fields lost: %+v", p)
	}
	if p.Dur < 0 {
		t.Fatalf("duration must be non-negative")
	}
}

func TestSummaryMentionsNotes(t *testing.T) {
	tm := NewTimer()
	tm.Track("render")("pretty")
	out := tm.Summary()
	if !strings.Contains(out, "render") || !strings.Contains(out, "// pretty") {
		t.Fatalf("summary missing phase info:\n%s", out)
	}
}
