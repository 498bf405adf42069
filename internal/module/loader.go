// Package module implements Mint's module loading and dependency
// resolution: resolving an `import`/`from ... import` path to a file,
// parsing and realizing it, and caching the result by its canonical
// identity. It is generalized from the teacher's AILANG module loader
// (cache-by-identity, load-stack cycle detection, Kahn's-algorithm
// topological sort) onto Mint's simpler file-per-module, no-export-list
// semantics.
package module

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"mint.build/mint/internal/diagnostics"
	"mint.build/mint/internal/eval"
	"mint.build/mint/internal/object"
	"mint.build/mint/internal/parser"
	"mint.build/mint/internal/source"
)

// Loader resolves import paths against a set of search directories,
// parses and realizes each module file exactly once, and detects import
// cycles via a load stack. It implements eval.Loader so an Evaluator can
// use it directly to service `import`/`from ... import` members.
type Loader struct {
	mu    sync.Mutex
	cache map[string]*object.Object

	searchPaths []string
	ev          *eval.Evaluator
	diags       *diagnostics.Sink

	loadStack []string
}

// New creates a Loader that resolves imports against searchPaths (in
// order, first match wins) and realizes files using ev. ev.Loader is set
// to this Loader so identifiers resolved during realization of imported
// files can themselves trigger further loads.
func New(searchPaths []string, ev *eval.Evaluator, diags *diagnostics.Sink) *Loader {
	l := &Loader{
		cache:       make(map[string]*object.Object),
		searchPaths: searchPaths,
		ev:          ev,
		diags:       diags,
	}
	ev.Loader = l
	return l
}

// Load resolves path to a module file, parses and realizes it (or
// returns the cached Object from a prior load), and returns the
// resulting module Object. path has no `.mint` suffix and may contain
// "/" separators, mirroring spec.md's import-path grammar.
func (l *Loader) Load(path string) (*object.Object, error) {
	identity := normalizePath(path)

	if mod := l.getCached(identity); mod != nil {
		return mod, nil
	}
	if err := l.checkCycle(identity); err != nil {
		return nil, err
	}

	l.pushStack(identity)
	defer l.popStack()

	filePath, err := l.resolvePath(identity)
	if err != nil {
		return nil, fmt.Errorf("module not found: %s (%w)", path, err)
	}

	before := l.diags.Count(diagnostics.ERROR)
	mod, err := l.LoadFile(filePath)
	if err != nil {
		return nil, err
	}
	if l.diags.Count(diagnostics.ERROR) > before {
		return nil, fmt.Errorf("errors realizing module %s", path)
	}

	l.cacheModule(identity, mod)
	return mod, nil
}

// LoadFile parses and realizes the module at an explicit file path,
// without any search-path resolution or cycle bookkeeping; callers that
// already know the file (the top-level build.mint, a project's own
// source file) use this directly instead of Load.
func (l *Loader) LoadFile(filePath string) (*object.Object, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read module file: %w", err)
	}

	file, diags := parser.Parse(content, filePath)
	hadError := false
	for _, d := range diags {
		l.diags.Errorf(diagnostics.PAR001, nil, d.Pos, "%s", d.Message)
		hadError = true
	}
	if hadError {
		return nil, fmt.Errorf("parse error in %s", filePath)
	}

	buf := source.NewBuffer(filePath, content)
	for i, c := range content {
		if c == '\n' {
			buf.NoteNewline(i)
		}
	}
	mod := l.ev.EvalFile(file, buf)
	return mod, nil
}

func (l *Loader) resolvePath(identity string) (string, error) {
	rel := identity
	if !strings.HasSuffix(rel, ".mint") {
		rel += ".mint"
	}
	for _, dir := range l.searchPaths {
		candidate := filepath.Join(dir, rel)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return filepath.Abs(candidate)
		}
	}
	return "", fmt.Errorf("not found in any of %v", l.searchPaths)
}

func (l *Loader) getCached(identity string) *object.Object {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache[identity]
}

func (l *Loader) cacheModule(identity string, mod *object.Object) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache[identity] = mod
}

func (l *Loader) checkCycle(identity string) error {
	for i, id := range l.loadStack {
		if id == identity {
			cycle := append(append([]string{}, l.loadStack[i:]...), identity)
			return fmt.Errorf("circular module dependency: %s", strings.Join(cycle, " -> "))
		}
	}
	return nil
}

func (l *Loader) pushStack(identity string) { l.loadStack = append(l.loadStack, identity) }

func (l *Loader) popStack() {
	if len(l.loadStack) > 0 {
		l.loadStack = l.loadStack[:len(l.loadStack)-1]
	}
}

func normalizePath(path string) string {
	path = strings.TrimSuffix(path, ".mint")
	return strings.ReplaceAll(path, "\\", "/")
}

// Loaded returns every module identity loaded so far, in no particular
// order (the cache is a map), useful for a --trace-config dump of the import graph.
func (l *Loader) Loaded() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.cache))
	for id := range l.cache {
		out = append(out, id)
	}
	return out
}
