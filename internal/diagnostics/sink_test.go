package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"mint.build/mint/internal/source"
)

func TestGatingSilencesFollowUpErrors(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf)
	s.Errorf(SEM001, nil, source.Pos{Line: 1, Column: 1}, "first error")
	s.Errorf(SEM001, nil, source.Pos{Line: 2, Column: 1}, "second error, should be silenced")

	if s.Count(ERROR) != 2 {
		t.Fatalf("expected both errors counted, got %d", s.Count(ERROR))
	}
	if strings.Count(buf.String(), "first error") != 1 {
		t.Fatalf("expected first error printed once")
	}
	if strings.Contains(buf.String(), "second error") {
		t.Fatalf("expected second error to be gated (silenced), got: %s", buf.String())
	}
}

func TestRecoveredReopensGate(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf)
	s.Errorf(SEM001, nil, source.Pos{Line: 1, Column: 1}, "first")
	s.Recovered()
	s.Errorf(SEM001, nil, source.Pos{Line: 2, Column: 1}, "second")
	if strings.Count(buf.String(), ": error:") != 2 {
		t.Fatalf("expected two printed errors after recovery, got: %s", buf.String())
	}
}

func TestHadErrorTracksSeverity(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf)
	if s.HadError() {
		t.Fatalf("expected HadError false on empty sink")
	}
	s.Warnf(SEM005, nil, source.Pos{Line: 1, Column: 1}, "just a warning")
	if s.HadError() {
		t.Fatalf("expected HadError false after only a warning")
	}
	s.Errorf(SEM001, nil, source.Pos{Line: 1, Column: 1}, "now an error")
	if !s.HadError() {
		t.Fatalf("expected HadError true after an error")
	}
}

func TestFormatIncludesCaretUnderline(t *testing.T) {
	b := source.NewBuffer("test.mint", []byte("x = badtoken\n"))
	pos := b.Position(4)
	out := Format(ERROR, SEM001, b, pos, "undefined symbol")
	if !strings.Contains(out, "badtoken") {
		t.Fatalf("expected formatted diagnostic to include the source line, got: %s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected a caret underline, got: %s", out)
	}
}

func TestFatalDisabledExitDoesNotKillProcess(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf)
	s.DisableExitOnFatal()
	s.Fatalf(BLD001, nil, source.Pos{Line: 1, Column: 1}, "action failed")
	if s.Count(FATAL) != 1 {
		t.Fatalf("expected fatal counted")
	}
}
