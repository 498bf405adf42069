package diagnostics

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"syscall"

	"mint.build/mint/internal/source"
)

// Diagnostic is one reported message: a severity, an optional source
// location, a code, and a human-readable text.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Pos      source.Pos
	Buf      *source.Buffer // nil if there is no associated source line
}

// Sink accumulates diagnostics, maintains per-severity counters, and
// implements the gated error-recovery policy: after the first ERROR, later
// ERROR/WARNING reports are silenced until Recovered is called (typically
// at the next top-level statement or phase boundary), so one bad token
// doesn't produce a hundred cascading complaints.
type Sink struct {
	mu     sync.Mutex
	out    io.Writer
	counts [FATAL + 1]int
	gated  bool
	diags  []Diagnostic

	// exitOnFatal, when true (the default), raises SIGINT after writing a
	// FATAL diagnostic. Tests set this false to observe the diagnostic
	// instead of terminating the process.
	exitOnFatal bool
}

// NewSink creates a Sink writing formatted diagnostics to out.
func NewSink(out io.Writer) *Sink {
	return &Sink{out: out, exitOnFatal: true}
}

// DisableExitOnFatal turns off the SIGINT-raising behavior of Fatal, for
// use in tests that need to observe a fatal diagnostic without killing the
// test binary.
func (s *Sink) DisableExitOnFatal() { s.exitOnFatal = false }

// Recovered clears the gated state, re-enabling ERROR/WARNING reporting.
func (s *Sink) Recovered() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gated = false
}

// Count returns how many diagnostics of the given severity have been
// reported (including ones silenced by gating, since the exit-code
// decision cares about totals, not what was printed).
func (s *Sink) Count(sev Severity) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[sev]
}

// HadError reports whether any ERROR or FATAL diagnostic has been observed,
// which is what determines the process's exit code.
func (s *Sink) HadError() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[ERROR] > 0 || s.counts[FATAL] > 0
}

// Diagnostics returns every diagnostic recorded, including gated ones.
func (s *Sink) Diagnostics() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Diagnostic, len(s.diags))
	copy(out, s.diags)
	return out
}

func (s *Sink) report(sev Severity, code string, buf *source.Buffer, pos source.Pos, msg string) {
	s.mu.Lock()
	s.counts[sev]++
	s.diags = append(s.diags, Diagnostic{Severity: sev, Code: code, Message: msg, Pos: pos, Buf: buf})
	silence := s.gated && (sev == ERROR || sev == WARNING)
	if sev == ERROR {
		s.gated = true
	}
	s.mu.Unlock()

	if silence {
		return
	}
	fmt.Fprint(s.out, Format(sev, code, buf, pos, msg))

	if sev == FATAL && s.exitOnFatal {
		raiseFatal()
	}
}

func (s *Sink) Debugf(buf *source.Buffer, pos source.Pos, format string, args ...interface{}) {
	s.report(DEBUG, "", buf, pos, fmt.Sprintf(format, args...))
}

func (s *Sink) Statusf(buf *source.Buffer, pos source.Pos, format string, args ...interface{}) {
	s.report(STATUS, "", buf, pos, fmt.Sprintf(format, args...))
}

func (s *Sink) Infof(buf *source.Buffer, pos source.Pos, format string, args ...interface{}) {
	s.report(INFO, "", buf, pos, fmt.Sprintf(format, args...))
}

func (s *Sink) Warnf(code string, buf *source.Buffer, pos source.Pos, format string, args ...interface{}) {
	s.report(WARNING, code, buf, pos, fmt.Sprintf(format, args...))
}

func (s *Sink) Errorf(code string, buf *source.Buffer, pos source.Pos, format string, args ...interface{}) {
	s.report(ERROR, code, buf, pos, fmt.Sprintf(format, args...))
}

// Fatalf reports a FATAL diagnostic. Unless DisableExitOnFatal was called,
// this raises SIGINT against the current process after the message is
// written, per the cancellation model: a fatal diagnostic always
// terminates, but does so by signal rather than a bare os.Exit so that any
// installed signal handler (e.g. one flushing in-flight output) still runs.
func (s *Sink) Fatalf(code string, buf *source.Buffer, pos source.Pos, format string, args ...interface{}) {
	s.report(FATAL, code, buf, pos, fmt.Sprintf(format, args...))
}

func raiseFatal() {
	if runtime.GOOS == "windows" {
		os.Exit(1)
	}
	_ = syscall.Kill(os.Getpid(), syscall.SIGINT)
}
