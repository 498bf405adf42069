package eval

import (
	"mint.build/mint/internal/ast"
	"mint.build/mint/internal/diagnostics"
	"mint.build/mint/internal/object"
	"mint.build/mint/internal/types"
)

// Realize runs the one-shot member-list pass over obj: its prototype is
// realized first (so inherited declared types are available for
// coercion), then its own members are walked in source order with the
// active scope set to obj itself, per the object/module realization
// algorithm. A second call on an already-realized Object is a no-op.
func (ev *Evaluator) Realize(obj *object.Object) {
	if obj.Realized {
		return
	}
	if obj.Proto != nil {
		ev.Realize(obj.Proto)
	}
	members := obj.PendingMembers()
	ev.withScope(obj, func() object.Node {
		ev.realizeMembers(obj, members)
		return object.TheUndefined
	})
	obj.MarkRealized()
}

func (ev *Evaluator) realizeMembers(obj *object.Object, members []ast.Member) {
	for _, m := range members {
		ev.realizeMember(obj, m)
	}
}

func (ev *Evaluator) realizeMember(obj *object.Object, m ast.Member) {
	switch mm := m.(type) {
	case *ast.SetMember:
		ev.realizeSetMember(obj, mm)
	case *ast.AppendMember:
		ev.realizeAppendMember(obj, mm)
	case *ast.LazyMember:
		name := ev.Interner.Intern(mm.Name)
		obj.SetAttr(&object.AttrDef{Name: name, Flags: object.LAZY, Expr: mm.Value})
	case *ast.MakeParam:
		ev.realizeParam(obj, mm)
	case *ast.MakeOption:
		ev.realizeOption(obj, mm)
	case *ast.DoMember:
		obj.DoActions = append(obj.DoActions, mm.Value)
	case *ast.IfMember:
		cond := ev.Eval(mm.Cond)
		if truthy(cond) {
			ev.realizeMembers(obj, mm.Then)
		} else if mm.Else != nil {
			ev.realizeMembers(obj, mm.Else)
		}
	case *ast.ImportMember:
		ev.realizeImport(mm)
	default:
		ev.errorf(diagnostics.SEM002, m.Position(), "cannot realize member of type %T", m)
	}
}

// realizeSetMember implements `NAME = EXPR`: it is an error to redefine an
// attribute already set on this object; if the attribute exists on the
// prototype chain, that declaration's type is used to coerce the value.
func (ev *Evaluator) realizeSetMember(obj *object.Object, mm *ast.SetMember) {
	name := ev.Interner.Intern(mm.Name)
	if _, alreadySet := obj.Attrs.Get(name); alreadySet {
		ev.errorf(diagnostics.SEM005, mm.Pos, "attribute %q is already defined", mm.Name)
		return
	}

	var declaredType = ev.protoDeclaredType(obj, name)

	var value object.Node
	if lit, ok := mm.Value.(*ast.ObjectLit); ok {
		value = ev.evalObjectLit(lit, mm.Name)
	} else {
		value = ev.Eval(mm.Value)
	}
	if declaredType != nil {
		value = ev.Coerce(value, declaredType, mm.Pos)
	}
	obj.SetAttr(&object.AttrDef{Name: name, Value: value, DeclaredType: declaredType})
}

// realizeAppendMember implements `NAME ++= EXPR`: concatenates onto an
// existing list attribute. If the attribute is only inherited (not yet
// owned by obj), obj gets its own copy seeded from the prototype's list
// so the append doesn't mutate a shared prototype value.
func (ev *Evaluator) realizeAppendMember(obj *object.Object, mm *ast.AppendMember) {
	name := ev.Interner.Intern(mm.Name)
	value := ev.Eval(mm.Value)
	added := listElems(value)

	if own, ok := obj.Attrs.Get(name); ok {
		list, ok := own.Value.(*object.List)
		if !ok {
			ev.errorf(diagnostics.SEM002, mm.Pos, "attribute %q is not a list", mm.Name)
			return
		}
		list.Elems = append(list.Elems, added...)
		return
	}

	base := []object.Node{}
	var declaredType = ev.protoDeclaredType(obj, name)
	if def, _, found := obj.FindAttr(name); found {
		if protoList, ok := def.Value.(*object.List); ok {
			base = append(base, protoList.Elems...)
		}
	}
	base = append(base, added...)
	obj.SetAttr(&object.AttrDef{Name: name, Value: &object.List{Elems: base}, DeclaredType: declaredType})
}

func listElems(n object.Node) []object.Node {
	if l, ok := n.(*object.List); ok {
		return l.Elems
	}
	return []object.Node{n}
}

// protoDeclaredType looks up name on obj's prototype chain only (obj
// itself never has the attribute yet when this is called) and returns
// its declared type, or nil if there is none.
func (ev *Evaluator) protoDeclaredType(obj *object.Object, name string) *types.Type {
	if obj.Proto == nil {
		return nil
	}
	if def, _, found := obj.Proto.FindAttr(name); found {
		return def.DeclaredType
	}
	return nil
}

// realizeParam implements `[cached] param NAME [: TYPE] = EXPR`: the
// value is always evaluated immediately (Mint has no lazy param syntax);
// CACHED only marks the attribute for persistence in internal/config's
// build.mint round trip, it does not change evaluation order.
func (ev *Evaluator) realizeParam(obj *object.Object, mm *ast.MakeParam) {
	name := ev.Interner.Intern(mm.Name)
	flags := object.PARAM
	if mm.Cached {
		flags |= object.CACHED
	}
	var declaredType *types.Type
	if mm.Type != nil {
		declaredType = ev.evalTypeExpr(mm.Type)
	}
	value := ev.Eval(mm.Value)
	if declaredType != nil {
		value = ev.Coerce(value, declaredType, mm.Pos)
	}
	obj.SetAttr(&object.AttrDef{Name: name, Value: value, DeclaredType: declaredType, Flags: flags})
}

// realizeOption implements `option NAME [: TYPE] { members }`: it
// constructs an Object inheriting from the Option prototype on
// Fundamentals, realizes its member block, and defaults its `name`
// attribute to the option's own name when the block doesn't set one.
func (ev *Evaluator) realizeOption(obj *object.Object, mm *ast.MakeOption) {
	var proto *object.Object
	if def, _, found := ev.Fundamentals.FindAttr("Option"); found {
		if p, ok := def.Value.(*object.Object); ok {
			proto = p
		}
	}
	opt := object.NewObject(mm.Name, proto, obj)
	opt.SetDefinition(mm.Members)
	ev.Realize(opt)
	if _, found := opt.Attrs.Get("name"); !found {
		opt.SetAttr(&object.AttrDef{Name: "name", Value: object.String(mm.Name)})
	}
	if mm.Type != nil {
		if _, _, found := opt.FindAttr("type"); !found {
			opt.SetAttr(&object.AttrDef{Name: "type", Value: object.String(mm.Type.String())})
		}
	}
	name := ev.Interner.Intern(mm.Name)
	obj.SetAttr(&object.AttrDef{Name: name, Value: opt, Flags: object.PARAM})
}

// realizeImport implements `import NAME [as ALIAS]` and `from NAME
// import (* | a, b, ...)`, loading the module through ev.Loader and
// recording bindings in ev.Imports: last-imported-wins, consulted by
// resolveIdent only after the whole lexical scope chain is exhausted.
func (ev *Evaluator) realizeImport(mm *ast.ImportMember) {
	if ev.Loader == nil {
		ev.errorf(diagnostics.FS001, mm.Pos, "no loader configured to resolve import %q", mm.Path)
		return
	}
	mod, err := ev.Loader.Load(mm.Path)
	if err != nil {
		ev.errorf(diagnostics.FS001, mm.Pos, "cannot import %q: %v", mm.Path, err)
		return
	}
	if ev.Imports == nil {
		ev.Imports = make(map[string]object.Node)
	}

	switch {
	case mm.From && mm.All:
		for _, name := range mod.Attrs.Names() {
			if def, owner, found := mod.FindAttr(name); found {
				ev.Imports[name] = ev.realizeAttr(def, owner)
			}
		}
	case mm.From:
		for _, sym := range mm.Symbols {
			def, owner, found := mod.FindAttr(sym)
			if !found {
				ev.errorf(diagnostics.SEM001, mm.Pos, "module %q has no member %q", mm.Path, sym)
				continue
			}
			ev.Imports[sym] = ev.realizeAttr(def, owner)
		}
	default:
		alias := mm.Alias
		if alias == "" {
			alias = mm.Path
		}
		ev.Imports[alias] = mod
	}
}

// realizeAttr returns the Node value for def, owned by owner: a LAZY
// attribute is re-evaluated in owner's scope every time; anything else
// was already evaluated at realization time and just returns its Value.
func (ev *Evaluator) realizeAttr(def *object.AttrDef, owner *object.Object) object.Node {
	if def.Flags.Has(object.LAZY) {
		return ev.withScope(owner, func() object.Node { return ev.Eval(def.Expr) })
	}
	if def.Value == nil {
		return object.TheUndefined
	}
	return def.Value
}
