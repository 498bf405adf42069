// Package target implements Mint's build target graph: File mtime
// tracking, Target dependency edges, and the up-to-date check that
// decides whether a target needs to run its actions. Grounded on the
// teacher's lib/build/Target.cpp and lib/build/File.cpp.
package target

import (
	"os"
	"time"

	"mint.build/mint/internal/object"
)

// State mirrors Target::TargetState: the lifecycle a target moves
// through from declaration to completion.
type State int

const (
	Uninit State = iota
	Initializing
	Initialized
	CheckingState
	Waiting
	Ready
	Building
	Finished
	Errored
)

func (s State) String() string {
	switch s {
	case Uninit:
		return "UNINIT"
	case Initializing:
		return "INITIALIZING"
	case Initialized:
		return "INITIALIZED"
	case CheckingState:
		return "CHECKING_STATE"
	case Waiting:
		return "WAITING"
	case Ready:
		return "READY"
	case Building:
		return "BUILDING"
	case Finished:
		return "FINISHED"
	case Errored:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// File tracks one path's on-disk status, lazily stat'd and cached the
// same way File::statusChecked/updateFileStatus defers the syscall until
// a target actually needs to know.
type File struct {
	Name string

	checked   bool
	exists    bool
	modTime   time.Time
	outputOf  []*Target
}

// NewFile creates an unchecked File for path.
func NewFile(path string) *File { return &File{Name: path} }

// refresh stats the file if it hasn't been checked yet, matching
// File::updateFileStatus's memoize-once behavior.
func (f *File) refresh() {
	if f.checked {
		return
	}
	f.checked = true
	info, err := os.Stat(f.Name)
	if err != nil {
		f.exists = false
		return
	}
	f.exists = true
	f.modTime = info.ModTime()
}

func (f *File) Exists() bool {
	f.refresh()
	return f.exists
}

func (f *File) ModTime() time.Time {
	f.refresh()
	return f.modTime
}

// OutputOf lists the targets that produce this file as an output, used
// by checkState to trace a stale source back to the target that must
// run first.
func (f *File) OutputOf() []*Target { return f.outputOf }

func (f *File) addOutputOf(t *Target) { f.outputOf = append(f.outputOf, t) }

// Target is one `target { }` object realized into a build-graph node:
// its declaration Object, source/output files, and dependency edges.
type Target struct {
	Definition *object.Object
	Name       string

	state State

	Depends   []*Target
	Dependents []*Target
	Sources   []*File
	Outputs   []*File

	Actions []object.Node
}

// New constructs a Target for a realized `target { }` Object. name is
// the target's declared path, used for diagnostics and the Makefile
// emitter.
func New(name string, def *object.Object) *Target {
	return &Target{Definition: def, Name: name, state: Uninit}
}

func (t *Target) State() State     { return t.state }
func (t *Target) SetState(s State) { t.state = s }

// AddDependency records dep as something t depends on, and records the
// inverse edge on dep, matching Target::addDependency.
func (t *Target) AddDependency(dep *Target) {
	t.Depends = append(t.Depends, dep)
	dep.Dependents = append(dep.Dependents, t)
}

func (t *Target) AddSource(f *File) { t.Sources = append(t.Sources, f) }

func (t *Target) AddOutput(f *File) {
	t.Outputs = append(t.Outputs, f)
	f.addOutputOf(t)
}

func (t *Target) String() string {
	if t.Name != "" {
		return t.Name
	}
	if len(t.Sources) > 0 {
		return t.Sources[0].Name
	}
	return "<anonymous target>"
}

// CheckState implements Target::checkState: an idempotent, recursive
// up-to-date check over outputs, sources, and explicit dependencies.
// It transitions Uninit/Initialized targets into Finished (nothing to
// do), Ready (this target itself is stale), or Waiting (a dependency is
// stale and must build first); it reports CircularDependency via the
// returned error instead of the teacher's diag::error-and-continue, so
// callers decide whether a cycle aborts the build.
func (t *Target) CheckState() error {
	if t.state != Uninit && t.state != Initialized {
		return nil
	}
	t.state = CheckingState

	needsRebuild := false
	needsRebuildDeps := false
	var oldestOutput *File

	for _, f := range t.Outputs {
		if !f.Exists() {
			needsRebuild = true
			break
		}
		if oldestOutput == nil || f.ModTime().Before(oldestOutput.ModTime()) {
			oldestOutput = f
		}
	}

	for _, f := range t.Sources {
		if !f.Exists() {
			if len(f.OutputOf()) == 0 {
				return &CircularOrMissingError{Target: t, File: f}
			}
			for _, dep := range f.OutputOf() {
				if dep.state == CheckingState {
					return &CircularDependencyError{Target: t, Dependency: dep}
				}
				if err := dep.CheckState(); err != nil {
					return err
				}
				if dep.state == Ready || dep.state == Waiting || dep.state == Building {
					needsRebuild = true
					needsRebuildDeps = true
				}
			}
			continue
		}
		if oldestOutput != nil && oldestOutput.ModTime().Before(f.ModTime()) {
			needsRebuild = true
		}
	}

	for _, dep := range t.Depends {
		if dep.state == CheckingState {
			return &CircularDependencyError{Target: t, Dependency: dep}
		}
		if err := dep.CheckState(); err != nil {
			return err
		}
		if dep.state == Ready || dep.state == Waiting || dep.state == Building {
			needsRebuild = true
			needsRebuildDeps = true
		}
	}

	switch {
	case needsRebuild && needsRebuildDeps:
		t.state = Waiting
	case needsRebuild:
		t.state = Ready
	default:
		t.state = Finished
	}
	return nil
}

// CircularDependencyError reports a cycle discovered mid-traversal.
type CircularDependencyError struct {
	Target     *Target
	Dependency *Target
}

func (e *CircularDependencyError) Error() string {
	return "circular dependency between target " + e.Target.String() + " and " + e.Dependency.String()
}

// CircularOrMissingError reports a source file that neither exists on
// disk nor is produced by any known target.
type CircularOrMissingError struct {
	Target *Target
	File   *File
}

func (e *CircularOrMissingError) Error() string {
	return "target " + e.Target.String() + " depends on non-existent file " + e.File.Name
}
