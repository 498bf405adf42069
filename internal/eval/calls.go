package eval

import (
	"mint.build/mint/internal/ast"
	"mint.build/mint/internal/diagnostics"
	"mint.build/mint/internal/object"
)

func (ev *Evaluator) evalUnary(e *ast.UnaryExpr) object.Node {
	x := ev.Eval(e.X)
	switch e.Op {
	case "not":
		return object.Bool(!truthy(x))
	case "-":
		switch v := x.(type) {
		case object.Int:
			return -v
		case object.Float:
			return -v
		}
		ev.errorf(diagnostics.SEM002, e.Pos, "cannot negate %s", x)
		return object.TheUndefined
	default:
		ev.errorf(diagnostics.SEM002, e.Pos, "unsupported unary operator %q", e.Op)
		return object.TheUndefined
	}
}

func (ev *Evaluator) evalBinary(e *ast.BinaryExpr) object.Node {
	switch e.Op {
	case "and":
		left := ev.Eval(e.Left)
		if !truthy(left) {
			return left
		}
		return ev.Eval(e.Right)
	case "or":
		left := ev.Eval(e.Left)
		if truthy(left) {
			return left
		}
		return ev.Eval(e.Right)
	}

	left := ev.Eval(e.Left)
	right := ev.Eval(e.Right)

	switch e.Op {
	case "+":
		if ls, ok := left.(object.String); ok {
			return ls + object.String(right.String())
		}
		return ev.arith(left, right, e.Op, e.Pos)
	case "-", "*", "/":
		return ev.arith(left, right, e.Op, e.Pos)
	case "%":
		return ev.mod(left, right, e.Pos)
	case "..":
		return ev.rangeList(left, right, e.Pos)
	case "==":
		return object.Bool(ev.equal(left, right))
	case "!=":
		return object.Bool(!ev.equal(left, right))
	case "<", "<=", ">", ">=":
		return ev.compare(left, right, e.Op, e.Pos)
	case "in":
		return object.Bool(ev.memberOf(left, right))
	case "not in":
		return object.Bool(!ev.memberOf(left, right))
	default:
		ev.errorf(diagnostics.SEM002, e.Pos, "unsupported operator %q", e.Op)
		return object.TheUndefined
	}
}

func (ev *Evaluator) arith(left, right object.Node, op string, pos ast.Pos) object.Node {
	li, lok := left.(object.Int)
	ri, rok := right.(object.Int)
	if lok && rok {
		switch op {
		case "+":
			return li + ri
		case "-":
			return li - ri
		case "*":
			return li * ri
		case "/":
			if ri == 0 {
				ev.errorf(diagnostics.SEM002, pos, "division by zero")
				return object.TheUndefined
			}
			return li / ri
		}
	}
	lf, lok2 := asFloat(left)
	rf, rok2 := asFloat(right)
	if lok2 && rok2 {
		switch op {
		case "+":
			return object.Float(lf + rf)
		case "-":
			return object.Float(lf - rf)
		case "*":
			return object.Float(lf * rf)
		case "/":
			if rf == 0 {
				ev.errorf(diagnostics.SEM002, pos, "division by zero")
				return object.TheUndefined
			}
			return object.Float(lf / rf)
		}
	}
	ev.errorf(diagnostics.SEM002, pos, "cannot apply %q to %s and %s", op, left, right)
	return object.TheUndefined
}

func asFloat(n object.Node) (float64, bool) {
	switch v := n.(type) {
	case object.Float:
		return float64(v), true
	case object.Int:
		return float64(v), true
	default:
		return 0, false
	}
}

func (ev *Evaluator) mod(left, right object.Node, pos ast.Pos) object.Node {
	li, lok := left.(object.Int)
	ri, rok := right.(object.Int)
	if !lok || !rok {
		ev.errorf(diagnostics.SEM002, pos, "%% requires two ints")
		return object.TheUndefined
	}
	if ri == 0 {
		ev.errorf(diagnostics.SEM002, pos, "division by zero")
		return object.TheUndefined
	}
	return li % ri
}

func (ev *Evaluator) rangeList(left, right object.Node, pos ast.Pos) object.Node {
	lo, lok := left.(object.Int)
	hi, hok := right.(object.Int)
	if !lok || !hok {
		ev.errorf(diagnostics.SEM002, pos, ".. requires two ints")
		return object.TheUndefined
	}
	var elems []object.Node
	for i := lo; i <= hi; i++ {
		elems = append(elems, i)
	}
	return &object.List{Elems: elems}
}

func (ev *Evaluator) compare(left, right object.Node, op string, pos ast.Pos) object.Node {
	if lf, lok := asFloat(left); lok {
		if rf, rok := asFloat(right); rok {
			return object.Bool(numCompare(lf, rf, op))
		}
	}
	if ls, ok := left.(object.String); ok {
		if rs, ok := right.(object.String); ok {
			return object.Bool(strCompare(string(ls), string(rs), op))
		}
	}
	ev.errorf(diagnostics.SEM002, pos, "cannot compare %s and %s", left, right)
	return object.TheUndefined
}

func numCompare(l, r float64, op string) bool {
	switch op {
	case "<":
		return l < r
	case "<=":
		return l <= r
	case ">":
		return l > r
	case ">=":
		return l >= r
	}
	return false
}

func strCompare(l, r string, op string) bool {
	switch op {
	case "<":
		return l < r
	case "<=":
		return l <= r
	case ">":
		return l > r
	case ">=":
		return l >= r
	}
	return false
}

// equal is structural for primitives and lists, pointer identity for
// objects (two distinct `target {}` literals are never equal even if
// their attributes happen to match), and always false for functions.
func (ev *Evaluator) equal(left, right object.Node) bool {
	switch l := left.(type) {
	case object.Undefined:
		_, ok := right.(object.Undefined)
		return ok
	case object.Bool:
		r, ok := right.(object.Bool)
		return ok && l == r
	case object.Int:
		if r, ok := right.(object.Int); ok {
			return l == r
		}
		if r, ok := right.(object.Float); ok {
			return float64(l) == float64(r)
		}
		return false
	case object.Float:
		rf, ok := asFloat(right)
		return ok && float64(l) == rf
	case object.String:
		r, ok := right.(object.String)
		return ok && l == r
	case *object.List:
		r, ok := right.(*object.List)
		if !ok || len(l.Elems) != len(r.Elems) {
			return false
		}
		for i := range l.Elems {
			if !ev.equal(l.Elems[i], r.Elems[i]) {
				return false
			}
		}
		return true
	case *object.Object:
		r, ok := right.(*object.Object)
		return ok && l == r
	default:
		return false
	}
}

func (ev *Evaluator) memberOf(left, right object.Node) bool {
	switch r := right.(type) {
	case *object.List:
		for _, elem := range r.Elems {
			if ev.equal(left, elem) {
				return true
			}
		}
		return false
	case object.String:
		ls, ok := left.(object.String)
		return ok && containsSubstr(string(r), string(ls))
	case *object.Object:
		ls, ok := left.(object.String)
		if !ok {
			return false
		}
		_, _, found := r.FindAttr(string(ls))
		return found
	default:
		return false
	}
}

func containsSubstr(s, sub string) bool {
	if sub == "" {
		return true
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

// memberValue looks up name on base, realizing it first if it is an
// unrealized Object, and returns the bound value (or a native method
// bound to a list, via internal/intrinsics' list method registry).
func (ev *Evaluator) memberValue(base object.Node, name string, pos ast.Pos) object.Node {
	if _, ok := base.(object.Undefined); ok {
		return base
	}
	switch b := base.(type) {
	case *object.Object:
		if !b.Realized {
			ev.Realize(b)
		}
		interned := ev.Interner.Intern(name)
		def, owner, found := b.FindAttr(interned)
		if !found {
			ev.errorf(diagnostics.SEM001, pos, "object has no member %q", name)
			return object.TheUndefined
		}
		return ev.realizeAttr(def, owner)
	case *object.List:
		if fn, ok := ev.ListMethods[name]; ok {
			list := b
			return &object.Function{Name: name, Call: func(loc ast.Pos, self object.Node, args []object.Node) (object.Node, error) {
				return fn(ev, list, args)
			}}
		}
		ev.errorf(diagnostics.SEM001, pos, "list has no member %q", name)
		return object.TheUndefined
	default:
		ev.errorf(diagnostics.SEM001, pos, "value of type %T has no member %q", base, name)
		return object.TheUndefined
	}
}

func (ev *Evaluator) evalGetMember(e *ast.GetMember) object.Node {
	base := ev.Eval(e.Base)
	return ev.memberValue(base, e.Name, e.Pos)
}

func (ev *Evaluator) evalGetElement(e *ast.GetElement) object.Node {
	base := ev.Eval(e.Base)
	if _, ok := base.(object.Undefined); ok {
		return base
	}
	idx := ev.Eval(e.Index)

	switch b := base.(type) {
	case *object.List:
		i, ok := idx.(object.Int)
		if !ok {
			ev.errorf(diagnostics.SEM002, e.Pos, "list index must be an int")
			return object.TheUndefined
		}
		if i < 0 || int(i) >= len(b.Elems) {
			ev.errorf(diagnostics.SEM002, e.Pos, "list index %d out of range (len %d)", i, len(b.Elems))
			return object.TheUndefined
		}
		return b.Elems[i]
	case *object.Object:
		key, ok := idx.(object.String)
		if !ok {
			ev.errorf(diagnostics.SEM002, e.Pos, "object key must be a string")
			return object.TheUndefined
		}
		return ev.memberValue(b, string(key), e.Pos)
	default:
		ev.errorf(diagnostics.SEM002, e.Pos, "value of type %T is not indexable", base)
		return object.TheUndefined
	}
}

func (ev *Evaluator) evalCall(e *ast.CallExpr) object.Node {
	var self object.Node = object.TheUndefined
	var callee object.Node

	if gm, ok := e.Callee.(*ast.GetMember); ok {
		base := ev.Eval(gm.Base)
		self = base
		callee = ev.memberValue(base, gm.Name, gm.Pos)
	} else {
		callee = ev.Eval(e.Callee)
	}

	args := make([]object.Node, len(e.Args))
	for i, a := range e.Args {
		args[i] = ev.Eval(a)
	}

	fn, ok := callee.(*object.Function)
	if !ok {
		ev.errorf(diagnostics.SEM002, e.Pos, "value is not callable: %s", callee)
		return object.TheUndefined
	}
	result, err := fn.Call(e.Pos, self, args)
	if err != nil {
		ev.errorf(diagnostics.SEM002, e.Pos, "%s: %v", fn.Name, err)
		return object.TheUndefined
	}
	return result
}

// evalObjectLit constructs a new Object from a PROTO { members } literal.
// name is the attribute name this literal is being bound to (for a
// top-level `NAME = proto { ... }` member) or "" for an anonymous literal
// (function argument, list element, and so on).
func (ev *Evaluator) evalObjectLit(e *ast.ObjectLit, name string) *object.Object {
	var proto *object.Object
	if e.Proto != nil {
		protoVal := ev.Eval(e.Proto)
		if p, ok := protoVal.(*object.Object); ok {
			proto = p
		} else if _, ok := protoVal.(object.Undefined); !ok {
			ev.errorf(diagnostics.SEM002, e.Pos, "prototype expression does not evaluate to an object")
		}
	}
	obj := object.NewObject(name, proto, ev.ActiveScope)
	obj.SetDefinition(e.Members)
	ev.Realize(obj)
	return obj
}
