// Package makefile implements a minimal Makefile emitter over Mint's
// target graph: one rule per target, its outputs as the rule's
// targets, its sources and declared dependencies' outputs as
// prerequisites, and a recipe line that delegates back into `mint
// build` rather than re-deriving shell commands from a target's do
// actions. This does not attempt to match the teacher's
// GraphWriter/ProjectWriterXml fidelity (full dependency-graph
// visualisation, build manifests); it exists so `mint build
// --emit-makefile` has something real to call.
package makefile

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"mint.build/mint/internal/target"
)

// Write emits a Makefile for every target in mgr to w. mintPath is the
// path to the mint binary recipes should invoke (os.Args[0] from the
// caller), so a rule's recipe reads `mintPath build <target-name>`
// rather than assuming `mint` is on $PATH.
func Write(w io.Writer, mgr *target.Manager, mintPath string) error {
	targets := mgr.Targets()
	sort.Slice(targets, func(i, j int) bool {
		return targets[i].String() < targets[j].String()
	})

	bw := &errWriter{w: w}
	bw.printf("# Generated by mint build --emit-makefile. Edit module.mint instead.\n\n")
	bw.printf(".PHONY: all %s\n\n", strings.Join(phonyNames(targets), " "))
	bw.printf("all: %s\n\n", strings.Join(phonyNames(targets), " "))

	for _, t := range targets {
		writeRule(bw, t, mintPath)
	}
	return bw.err
}

func phonyNames(targets []*target.Target) []string {
	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, ruleName(t))
	}
	return names
}

// ruleName returns the identifier a target is addressed by in the
// emitted Makefile: its declared outputs already give Make a concrete
// file to check staleness against, so the target's own name becomes a
// convenience phony alias for `make <name>` rather than the rule's
// primary target.
func ruleName(t *target.Target) string {
	name := t.String()
	return sanitizeName(name)
}

func sanitizeName(name string) string {
	name = strings.TrimPrefix(name, "//")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, ":", "_")
	if name == "" {
		return "target"
	}
	return name
}

func writeRule(bw *errWriter, t *target.Target, mintPath string) {
	alias := ruleName(t)
	outputs := fileNames(t.Outputs)

	var prereqs []string
	prereqs = append(prereqs, fileNames(t.Sources)...)
	for _, dep := range t.Depends {
		prereqs = append(prereqs, fileNames(dep.Outputs)...)
	}

	if len(outputs) == 0 {
		// No declared outputs: the target's own name is the only thing
		// Make can key staleness on, so it gets a phony rule directly.
		bw.printf("%s:", alias)
		if len(prereqs) > 0 {
			bw.printf(" %s", strings.Join(prereqs, " "))
		}
		bw.printf("\n\t@%s build %s\n\n", mintPath, t.String())
		return
	}

	bw.printf("%s:", strings.Join(outputs, " "))
	if len(prereqs) > 0 {
		bw.printf(" %s", strings.Join(prereqs, " "))
	}
	bw.printf("\n\t@%s build %s\n\n", mintPath, t.String())

	// alias lets `make <target-name>` work even though the file rule
	// above is keyed by output path.
	bw.printf("%s: %s\n\n", alias, strings.Join(outputs, " "))
}

func fileNames(files []*target.File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}

// errWriter accumulates the first write error so writeRule's many Fprintf
// calls don't each need their own error check.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
