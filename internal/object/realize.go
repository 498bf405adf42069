package object

import (
	"mint.build/mint/internal/ast"
	"mint.build/mint/internal/types"
)

// Object is a prototype-based value: a set of attributes plus an optional
// Proto it delegates to for anything it doesn't define itself. A module
// file, a `target { }` literal, and an `option NAME { }` block are all
// represented the same way — only the set of attributes and which
// prototype they inherit from differs.
type Object struct {
	Name  string // definition name, if any ("" for an anonymous object literal)
	Proto *Object
	Attrs *Attrs

	// parentScope is the lexically enclosing scope (the module or object
	// literal this Object was defined inside), used by the evaluator to
	// resolve identifiers that aren't attributes of this object or any of
	// its prototypes.
	parentScope Scope

	// defMembers holds this object's source-order member list, consumed by
	// one pass of Evaluator.Realize and then cleared (Realized becomes
	// true). Evaluation order within the pass is members' source order, per
	// the concurrency model; the realization itself is one-shot and
	// idempotent regardless of which attribute access triggered it. A
	// member's free variables close over parentScope, via Object.Parent.
	defMembers []ast.Member
	Realized   bool

	// DoActions collects `do EXPR` members in source order, deferred to
	// configuration time (run once realization and option resolution are
	// both complete) rather than evaluated as part of the member pass.
	DoActions []ast.Expr
}

// NewObject creates an Object inheriting from proto (nil for a root
// object with no prototype) with its own empty attribute set.
func NewObject(name string, proto *Object, parentScope Scope) *Object {
	return &Object{Name: name, Proto: proto, Attrs: NewAttrs(), parentScope: parentScope}
}

// SetDefinition attaches the member list that realization will walk the
// first time an unrealized attribute is looked up.
func (o *Object) SetDefinition(members []ast.Member) {
	o.defMembers = members
}

// PendingMembers returns the not-yet-evaluated member list used by
// Evaluator.Realize to run the one-shot realization pass; it is nil once
// Realized is true.
func (o *Object) PendingMembers() []ast.Member {
	if o.Realized {
		return nil
	}
	return o.defMembers
}

// MarkRealized records that realization has run, so repeated attribute
// accesses don't re-walk the definition (realization is idempotent: a
// second pass would just recompute the identical attribute map, but
// there's no reason to pay for it).
func (o *Object) MarkRealized() { o.Realized = true }

// FindAttr walks the prototype chain starting at o, returning the first
// AttrDef found by that name and the Object that owns it (needed so a
// lazy value re-evaluates closing over its defining object's scope, not
// the requesting object's).
func (o *Object) FindAttr(name string) (*AttrDef, *Object, bool) {
	for cur := o; cur != nil; cur = cur.Proto {
		if d, ok := cur.Attrs.Get(name); ok {
			return d, cur, true
		}
	}
	return nil, nil, false
}

// SetAttr defines or overwrites an attribute directly on o (not walking
// the prototype chain), per the semantics of a `NAME = EXPR` member:
// assignment always targets the object being realized, never a prototype.
func (o *Object) SetAttr(def *AttrDef) { o.Attrs.Set(def) }

// Lookup implements Scope by checking this object's own realized
// attributes only (not the prototype chain, which FindAttr covers, and
// not lazy re-evaluation, which requires an Evaluator). It exists so an
// Object can be threaded through code that expects a Scope, such as a
// lexical frame capturing "the module currently being evaluated".
func (o *Object) Lookup(name string) (Node, bool) {
	d, ok := o.Attrs.Get(name)
	if !ok || d.Value == nil {
		return nil, false
	}
	return d.Value, true
}

// Parent returns the lexically enclosing scope.
func (o *Object) Parent() Scope { return o.parentScope }

func (o *Object) String() string {
	if o.Name != "" {
		return o.Name
	}
	return "<object>"
}

func (o *Object) Type(r *types.TypeRegistry) *types.Type { return r.Object() }

func (o *Object) nodeNode() {}
