package eval

import (
	"mint.build/mint/internal/ast"
	"mint.build/mint/internal/diagnostics"
	"mint.build/mint/internal/object"
	"mint.build/mint/internal/source"
	"mint.build/mint/internal/types"
)

// Coerce converts value to target's kind where a conversion exists
// (Integer widens to Float, and Float truncates toward zero to Integer),
// leaves it alone if it already matches, and
// reports a type mismatch otherwise. Undefined always flows through
// uncoerced: a missing value is never itself a type error.
func (ev *Evaluator) Coerce(value object.Node, target *types.Type, pos source.Pos) object.Node {
	if target == nil || target.Kind == types.Any {
		return value
	}
	if _, ok := value.(object.Undefined); ok {
		return value
	}

	switch target.Kind {
	case types.Integer:
		switch v := value.(type) {
		case object.Int:
			return v
		case object.Float:
			return object.Int(int64(v))
		}
	case types.Float:
		switch v := value.(type) {
		case object.Float:
			return v
		case object.Int:
			return object.Float(float64(v))
		}
	case types.Bool:
		if v, ok := value.(object.Bool); ok {
			return v
		}
	case types.String:
		if v, ok := value.(object.String); ok {
			return v
		}
	case types.List:
		if v, ok := value.(*object.List); ok {
			if target.Param == nil {
				return v
			}
			coerced := make([]object.Node, len(v.Elems))
			for i, elem := range v.Elems {
				coerced[i] = ev.Coerce(elem, target.Param, pos)
			}
			return &object.List{Elems: coerced}
		}
	case types.Object, types.Module, types.Project, types.Dictionary:
		if _, ok := value.(*object.Object); ok {
			return value
		}
	case types.Function:
		if _, ok := value.(*object.Function); ok {
			return value
		}
	case types.Void, types.Undefined:
		return value
	}

	ev.errorf(diagnostics.SEM002, pos, "cannot assign %s where %s is expected", value.Type(ev.Types), target)
	return value
}

// evalTypeExpr resolves a parsed type annotation to a registry Type.
func (ev *Evaluator) evalTypeExpr(t ast.TypeExpr) *types.Type {
	switch tt := t.(type) {
	case *ast.TypeName:
		if ty, ok := ev.Types.FromTypeName(tt.Name); ok {
			return ty
		}
		return ev.Types.Any()
	case *ast.ParamType:
		elem := ev.evalTypeExpr(tt.Elem)
		switch tt.Base.Name {
		case "list":
			return ev.Types.ListOf(elem)
		case "dict":
			return ev.Types.DictOf(elem)
		default:
			return ev.Types.Any()
		}
	default:
		return ev.Types.Any()
	}
}
