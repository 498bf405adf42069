// Package object implements Mint's runtime value representation: a small
// Node sum type for evaluated values (mirroring internal/ast's tagged
// interface pattern for the unevaluated tree) plus the prototype-based
// Object with lazy/cached attribute realization.
package object

import (
	"fmt"
	"strconv"
	"strings"

	"mint.build/mint/internal/ast"
	"mint.build/mint/internal/source"
	"mint.build/mint/internal/types"
)

// Node is any evaluated value: a literal, a list, a Function, an Object,
// or the singleton Undefined.
type Node interface {
	fmt.Stringer
	Type(*types.TypeRegistry) *types.Type
	nodeNode()
}

// Scope is implemented by anything that can resolve an identifier: an
// Object (via its prototype chain) or a lexical activation frame in
// internal/eval. Kept here, rather than in internal/eval, since Object
// itself must satisfy it to act as a module/object scope.
type Scope interface {
	// Lookup returns the attribute's realized value and true if name is
	// defined somewhere in this scope or anything it delegates to.
	Lookup(name string) (Node, bool)
	// Parent returns the enclosing lexical scope, or nil at the root.
	Parent() Scope
}

type Undefined struct{}

func (Undefined) String() string                            { return "undefined" }
func (Undefined) Type(r *types.TypeRegistry) *types.Type     { return r.Undefined() }
func (Undefined) nodeNode()                                  {}

var TheUndefined = Undefined{}

type Bool bool

func (b Bool) String() string                        { if b { return "true" }; return "false" }
func (Bool) Type(r *types.TypeRegistry) *types.Type   { return r.Bool() }
func (Bool) nodeNode()                                {}

type Int int64

func (i Int) String() string                       { return strconv.FormatInt(int64(i), 10) }
func (Int) Type(r *types.TypeRegistry) *types.Type  { return r.Int() }
func (Int) nodeNode()                               {}

type Float float64

func (f Float) String() string                       { return strconv.FormatFloat(float64(f), 'g', -1, 64) }
func (Float) Type(r *types.TypeRegistry) *types.Type { return r.Float() }
func (Float) nodeNode()                              {}

type String string

func (s String) String() string                       { return string(s) }
func (String) Type(r *types.TypeRegistry) *types.Type { return r.Str() }
func (String) nodeNode()                              {}

// List is a mutable, ordered value sequence (append-member semantics
// mutate in place, matching spec.md's `++=` member form).
type List struct {
	Elems []Node
}

func (l *List) String() string {
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (l *List) Type(r *types.TypeRegistry) *types.Type {
	if len(l.Elems) == 0 {
		return r.ListOf(r.Any())
	}
	return r.ListOf(l.Elems[0].Type(r))
}
func (*List) nodeNode() {}

// Function is a native intrinsic handler bound at evaluation time. Mint
// has no user-defined lambda literals; every callable value in the object
// namespace is a Go-implemented intrinsic registered in internal/intrinsics.
// The evaluator that constructed the handler is captured in its closure
// (there is exactly one, for the lifetime of a build), so Call only needs
// the call site's location plus the receiver and arguments.
type Function struct {
	Name string
	Call func(loc source.Pos, self Node, args []Node) (Node, error)
}

func (f *Function) String() string                       { return fmt.Sprintf("<function %s>", f.Name) }
func (*Function) Type(r *types.TypeRegistry) *types.Type { return r.Function() }
func (*Function) nodeNode()                               {}

// AttrFlags is a bitmask of the qualifiers a member declaration can carry.
type AttrFlags uint8

const (
	// LAZY: the value is an unevaluated ast.Expr re-evaluated on every
	// access (corresponds to a `=>` member).
	LAZY AttrFlags = 1 << iota
	// CACHED: the value is realized once and the result memoized
	// (corresponds to `cached param`).
	CACHED
	// EXPORT marks the attribute as exported. Nothing reads it: importers
	// see every attribute of a module whatever its flags.
	EXPORT
	// PARAM marks the attribute as a configurable command-line option.
	PARAM
)

func (f AttrFlags) Has(bit AttrFlags) bool { return f&bit != 0 }

// AttrDef is one realized attribute slot on an Object: either a concrete
// Node value, or (for LAZY attributes) the unevaluated expression
// re-evaluated on every access, closing over its owning Object's scope
// (the Object returned alongside the AttrDef by FindAttr).
type AttrDef struct {
	Name         string
	Value        Node
	DeclaredType *types.Type // nil if unannotated
	Flags        AttrFlags

	// Expr holds the unevaluated right-hand side for a LAZY attribute
	// (Value is never populated for these; it is re-evaluated on every
	// access in the scope of the Object that owns the definition).
	Expr ast.Expr
}
