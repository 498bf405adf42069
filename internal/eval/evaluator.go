// Package eval implements the tree-walking evaluator over the object
// model in internal/object: scope resolution, prototype realization,
// coercion, and call dispatch for both native intrinsics and the
// structural operators of the expression grammar.
package eval

import (
	"mint.build/mint/internal/ast"
	"mint.build/mint/internal/diagnostics"
	"mint.build/mint/internal/object"
	"mint.build/mint/internal/source"
	"mint.build/mint/internal/strintern"
	"mint.build/mint/internal/types"
)

// Loader resolves an import path to the Object representing that loaded,
// realized module. Implemented by internal/module.Loader; declared here
// (rather than imported from there) so internal/module can depend on
// internal/eval without a cycle.
type Loader interface {
	Load(path string) (*object.Object, error)
}

// Evaluator is the evaluation context for one build invocation. Module
// loading and realization run against a single Evaluator. Running
// multiple targets' build actions concurrently (internal/schedule's
// JobMgr) uses Fork to give each in-flight job its own ActiveScope
// instead of sharing one mutable field across goroutines; everything
// Fork shares back (Diags, Loader) already guards its own state with a
// mutex, so forked Evaluators stay safe to use from separate goroutines
// at once.
type Evaluator struct {
	ActiveScope object.Scope
	Types       *types.TypeRegistry
	Interner    *strintern.Interner
	Diags       *diagnostics.Sink
	Loader      Loader

	// Fundamentals is the root prototype object: the last resolution step
	// for any unbound identifier, holding the intrinsic namespaces
	// (path, console, re, fs, shell) and the base prototypes object,
	// target, and Option.
	Fundamentals *object.Object

	// Imports holds the current module's import bindings (last-imported-
	// wins), consulted by resolveIdent after the lexical scope chain and
	// before falling back to Fundamentals. Rebuilt by EvalFile for every
	// module evaluated.
	Imports map[string]object.Node

	// ListMethods holds the native methods callable as LIST.method(...)
	// (map, filter, join, and so on), registered by internal/intrinsics
	// at startup rather than hardcoded here.
	ListMethods map[string]ListMethodFunc

	// buf is the source buffer of the module currently being evaluated,
	// threaded into diagnostics so caret-underline excerpts work.
	buf *source.Buffer
}

// ListMethodFunc is a native method bound to a list receiver.
type ListMethodFunc func(ev *Evaluator, list *object.List, args []object.Node) (object.Node, error)

// New creates an Evaluator rooted at the given Fundamentals object.
func New(reg *types.TypeRegistry, interner *strintern.Interner, diags *diagnostics.Sink, fundamentals *object.Object) *Evaluator {
	return &Evaluator{
		Types:        reg,
		Interner:     interner,
		Diags:        diags,
		Fundamentals: fundamentals,
		ActiveScope:  fundamentals,
	}
}

// SetBuffer records the source buffer backing the module currently being
// evaluated, so diagnostics raised during Eval can render a source excerpt.
func (ev *Evaluator) SetBuffer(buf *source.Buffer) { ev.buf = buf }

// Fork returns a shallow copy of ev with its own ActiveScope and buf,
// sharing everything else (Diags, Loader, Fundamentals, Imports, Types,
// Interner, ListMethods). Callers that need to evaluate more than one
// object concurrently — JobMgr running several targets' actions in
// parallel — fork once per job so scope pushes in one job's Eval calls
// never clobber another's.
func (ev *Evaluator) Fork() *Evaluator {
	forked := *ev
	return &forked
}

func (ev *Evaluator) errorf(code string, pos source.Pos, format string, args ...interface{}) {
	ev.Diags.Errorf(code, ev.buf, pos, format, args...)
}

// Eval evaluates one expression node against the current active scope.
// Literal nodes evaluate to themselves; everything else dispatches by
// concrete AST type, mirroring the teacher's switch-on-node-kind shape.
func (ev *Evaluator) Eval(n ast.Expr) object.Node {
	switch e := n.(type) {
	case *ast.Undefined:
		return object.TheUndefined
	case *ast.BoolLit:
		return object.Bool(e.Value)
	case *ast.IntLit:
		return object.Int(e.Value)
	case *ast.FloatLit:
		return object.Float(e.Value)
	case *ast.StringLit:
		return object.String(e.Value)
	case *ast.InterpString:
		return ev.evalInterpString(e)
	case *ast.Ident:
		return ev.resolveIdent(e)
	case *ast.Self:
		if obj, ok := ev.ActiveScope.(*object.Object); ok {
			return obj
		}
		return object.TheUndefined
	case *ast.Super:
		if obj, ok := ev.ActiveScope.(*object.Object); ok && obj.Proto != nil {
			return obj.Proto
		}
		return object.TheUndefined
	case *ast.ListLit:
		return ev.evalList(e)
	case *ast.ObjectLit:
		return ev.evalObjectLit(e, "")
	case *ast.UnaryExpr:
		return ev.evalUnary(e)
	case *ast.BinaryExpr:
		return ev.evalBinary(e)
	case *ast.GetMember:
		return ev.evalGetMember(e)
	case *ast.GetElement:
		return ev.evalGetElement(e)
	case *ast.CallExpr:
		return ev.evalCall(e)
	case *ast.IfExpr:
		cond := ev.Eval(e.Cond)
		if truthy(cond) {
			return ev.Eval(e.Then)
		}
		if e.Else != nil {
			return ev.Eval(e.Else)
		}
		return object.TheUndefined
	case *ast.LetExpr:
		value := ev.Eval(e.Value)
		frame := NewFrame(ev.ActiveScope)
		frame.Bind(e.Name, value)
		return ev.withScope(frame, func() object.Node { return ev.Eval(e.Body) })
	default:
		ev.errorf(diagnostics.SEM002, n.Position(), "cannot evaluate node of type %T", n)
		return object.TheUndefined
	}
}

// withScope pushes newScope as the active scope for the duration of fn,
// restoring the previous scope afterward. Push/pop is strictly stack
// disciplined: fn must return before the scope is restored.
func (ev *Evaluator) withScope(newScope object.Scope, fn func() object.Node) object.Node {
	prev := ev.ActiveScope
	ev.ActiveScope = newScope
	defer func() { ev.ActiveScope = prev }()
	return fn()
}

func (ev *Evaluator) evalInterpString(e *ast.InterpString) object.Node {
	result := e.Segments[0]
	for i, expr := range e.Exprs {
		result += ev.Eval(expr).String()
		result += e.Segments[i+1]
	}
	return object.String(result)
}

func (ev *Evaluator) evalList(e *ast.ListLit) object.Node {
	elems := make([]object.Node, len(e.Elems))
	for i, el := range e.Elems {
		elems[i] = ev.Eval(el)
	}
	return &object.List{Elems: elems}
}

// resolveIdent implements the three-step lookup chain: the current scope
// chain (via Parent(), which includes the module itself; the walk stops
// when it reaches Fundamentals without searching it), the current
// module's import list (last-imported-wins, checked only once the scope
// chain is exhausted), then a final direct check of Fundamentals. An
// object literal's parentScope is the lexical site of its definition,
// which eventually reaches the module and then Fundamentals; stopping
// the walk there is what lets Imports be consulted before Fundamentals.
// Unresolved yields Undefined plus a diagnostic.
func (ev *Evaluator) resolveIdent(id *ast.Ident) object.Node {
	name := ev.Interner.Intern(id.Name)

	for s := ev.ActiveScope; s != nil; s = s.Parent() {
		if obj, ok := s.(*object.Object); ok {
			if obj == ev.Fundamentals {
				break
			}
			if def, owner, found := obj.FindAttr(name); found {
				return ev.realizeAttr(def, owner)
			}
			continue
		}
		if v, ok := s.Lookup(name); ok {
			return v
		}
	}

	if v, ok := ev.Imports[name]; ok {
		return v
	}

	if def, owner, found := ev.Fundamentals.FindAttr(name); found {
		return ev.realizeAttr(def, owner)
	}

	ev.errorf(diagnostics.SEM001, id.Pos, "undefined symbol: %q", id.Name)
	return object.TheUndefined
}

func truthy(n object.Node) bool {
	switch v := n.(type) {
	case object.Bool:
		return bool(v)
	case object.Undefined:
		return false
	default:
		return true
	}
}
