package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"mint.build/mint/internal/ast"
)

// stampFile implements the source-hash staleness gate for build.mint's
// cached option values: each project's module.mint content is hashed
// with xxhash when BuildConfiguration.Initialize persists it, and the
// hash is recorded in a sidecar file next to build.mint. On the next
// invocation, before a cached option value is reapplied
// (BuildConfiguration.applyCachedOptions), the module's current content
// is rehashed and compared against the recorded one — a changed hash
// means the option may have been renamed, retyped, or removed since it
// was cached, so the value is discarded instead of blindly reapplied.
//
// Grounded on spec.md §1's "no incremental reparse" (which bars reusing
// *parsed* results across a process lifetime, not a lightweight hash
// check over a *persisted* cache) and standardbeagle-lci's direct
// dependency on github.com/cespare/xxhash/v2 for the same kind of
// change-detection gate.
type stampFile struct {
	path string

	// hashes records the xxhash of each project's module.mint content as
	// of the last Initialize call, keyed by source root.
	hashes map[string]uint64

	// cachedOptions holds option blocks read from the current build.mint
	// (populated by cacheOption during ReadConfig), keyed by source root
	// then option name. These need no disk persistence beyond build.mint
	// itself: they're reconstructed fresh on every ReadConfig call.
	cachedOptions map[string]map[string]*ast.MakeOption
}

func newStampFile() *stampFile {
	return &stampFile{
		hashes:        make(map[string]uint64),
		cachedOptions: make(map[string]map[string]*ast.MakeOption),
	}
}

func (s *stampFile) cacheOption(sourceRoot string, mm *ast.MakeOption) {
	m, ok := s.cachedOptions[sourceRoot]
	if !ok {
		m = make(map[string]*ast.MakeOption)
		s.cachedOptions[sourceRoot] = m
	}
	m[mm.Name] = mm
}

func (s *stampFile) hasCacheFor(sourceRoot string) bool {
	return len(s.cachedOptions[sourceRoot]) > 0
}

func (s *stampFile) optionsFor(sourceRoot string) map[string]*ast.MakeOption {
	return s.cachedOptions[sourceRoot]
}

// stale reports whether sourceRoot's module.mint has changed since its
// hash was last recorded. A project with no recorded hash (first build
// against this build root, or no sidecar file yet) is treated as stale:
// there's nothing recorded yet to trust a cached value against.
func (s *stampFile) stale(sourceRoot string) bool {
	recorded, ok := s.hashes[sourceRoot]
	if !ok {
		return true
	}
	current, err := hashModule(sourceRoot)
	if err != nil {
		return true
	}
	return current != recorded
}

// stampProject records p's current module.mint hash, superseding
// whatever was recorded for it before.
func (s *stampFile) stampProject(p *Project) {
	h, err := hashModule(p.sourceRoot)
	if err != nil {
		return
	}
	s.hashes[p.sourceRoot] = h
}

func hashModule(sourceRoot string) (uint64, error) {
	content, err := os.ReadFile(filepath.Join(sourceRoot, "module.mint"))
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(content), nil
}

// load reads the sidecar hash file at s.path, one "sourceRoot\thash" pair
// per line. A missing or malformed file is treated as empty rather than
// an error: every project is then considered stale until the next
// Initialize call re-establishes a baseline.
func (s *stampFile) load() {
	if s.path == "" {
		return
	}
	f, err := os.Open(s.path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		idx := strings.LastIndex(line, "\t")
		if idx < 0 {
			continue
		}
		h, err := strconv.ParseUint(line[idx+1:], 16, 64)
		if err != nil {
			continue
		}
		s.hashes[line[:idx]] = h
	}
}

// save writes the current hash set to s.path, one "sourceRoot\thash" pair
// per line.
func (s *stampFile) save() error {
	if s.path == "" {
		return nil
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for root, h := range s.hashes {
		fmt.Fprintf(w, "%s\t%016x\n", root, h)
	}
	return w.Flush()
}
