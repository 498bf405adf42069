package target

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCheckStateFinishedWhenOutputsNewerThanSources(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.c")
	out := filepath.Join(dir, "a.o")
	writeTestFile(t, src, "x")
	time.Sleep(10 * time.Millisecond)
	writeTestFile(t, out, "y")

	tgt := New("build-a", nil)
	tgt.AddSource(NewFile(src))
	tgt.AddOutput(NewFile(out))

	if err := tgt.CheckState(); err != nil {
		t.Fatalf("CheckState returned error: %v", err)
	}
	if tgt.State() != Finished {
		t.Fatalf("expected Finished, got %s", tgt.State())
	}
}

func TestCheckStateReadyWhenSourceNewerThanOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.c")
	out := filepath.Join(dir, "a.o")
	writeTestFile(t, out, "y")
	time.Sleep(10 * time.Millisecond)
	writeTestFile(t, src, "x")

	tgt := New("build-a", nil)
	tgt.AddSource(NewFile(src))
	tgt.AddOutput(NewFile(out))

	if err := tgt.CheckState(); err != nil {
		t.Fatalf("CheckState returned error: %v", err)
	}
	if tgt.State() != Ready {
		t.Fatalf("expected Ready, got %s", tgt.State())
	}
}

func TestCheckStateReadyWhenOutputMissing(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.c")
	writeTestFile(t, src, "x")

	tgt := New("build-a", nil)
	tgt.AddSource(NewFile(src))
	tgt.AddOutput(NewFile(filepath.Join(dir, "missing.o")))

	if err := tgt.CheckState(); err != nil {
		t.Fatalf("CheckState returned error: %v", err)
	}
	if tgt.State() != Ready {
		t.Fatalf("expected Ready, got %s", tgt.State())
	}
}

func TestCheckStateWaitingWhenDependencyIsStale(t *testing.T) {
	dir := t.TempDir()
	depSrc := filepath.Join(dir, "dep.c")
	depOut := filepath.Join(dir, "dep.o")
	writeTestFile(t, depOut, "old")
	time.Sleep(10 * time.Millisecond)
	writeTestFile(t, depSrc, "new")

	dep := New("dep", nil)
	dep.AddSource(NewFile(depSrc))
	dep.AddOutput(NewFile(depOut))

	top := New("top", nil)
	top.AddDependency(dep)

	if err := top.CheckState(); err != nil {
		t.Fatalf("CheckState returned error: %v", err)
	}
	if top.State() != Waiting {
		t.Fatalf("expected Waiting (dep is Ready), got %s", top.State())
	}
}

func TestCheckStateDetectsCircularDependency(t *testing.T) {
	a := New("a", nil)
	b := New("b", nil)
	a.AddDependency(b)
	b.Depends = append(b.Depends, a) // manufacture a cycle without the inverse bookkeeping

	if err := a.CheckState(); err == nil {
		t.Fatalf("expected a circular dependency error")
	}
}

func TestCheckStateMissingSourceWithNoProducerErrors(t *testing.T) {
	dir := t.TempDir()
	tgt := New("t", nil)
	tgt.AddSource(NewFile(filepath.Join(dir, "nonexistent.c")))

	if err := tgt.CheckState(); err == nil {
		t.Fatalf("expected an error for a missing, unproduced source")
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
