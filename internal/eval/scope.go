package eval

import "mint.build/mint/internal/object"

// Frame is a lexical activation record: the scope introduced by a
// function call's parameter bindings or a `let NAME = VALUE in BODY`
// expression. Scope push/pop around these is strictly stack-disciplined,
// per the single mutable "current scope" the evaluator maintains.
type Frame struct {
	vars   map[string]object.Node
	parent object.Scope
}

// NewFrame creates a Frame with the given parent scope.
func NewFrame(parent object.Scope) *Frame {
	return &Frame{vars: make(map[string]object.Node), parent: parent}
}

func (f *Frame) Bind(name string, value object.Node) { f.vars[name] = value }

func (f *Frame) Lookup(name string) (object.Node, bool) {
	v, ok := f.vars[name]
	return v, ok
}

func (f *Frame) Parent() object.Scope { return f.parent }
