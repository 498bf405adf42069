package eval

import (
	"mint.build/mint/internal/ast"
	"mint.build/mint/internal/object"
	"mint.build/mint/internal/source"
)

// EvalFile realizes a parsed module file into an Object: it has no
// prototype and its parent scope is Fundamentals, its body is the file's top-level member list, and its
// import bindings are rebuilt fresh (a module's Imports never persist
// across files, since each file is evaluated in its own Evaluator.Imports
// scope per the single-Evaluator-per-build model — callers that evaluate
// multiple files in one build reset Imports between them by calling this
// for each).
func (ev *Evaluator) EvalFile(file *ast.File, buf *source.Buffer) *object.Object {
	ev.SetBuffer(buf)
	ev.Imports = make(map[string]object.Node)

	mod := object.NewObject(file.Path, nil, ev.Fundamentals)
	mod.SetDefinition(file.Members)
	ev.Realize(mod)
	return mod
}
