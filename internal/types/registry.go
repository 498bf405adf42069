package types

import "sync"

// TypeRegistry interns Type values: repeated requests for the same shape
// (kind plus, for List/Dictionary, the same element type) return the
// identical *Type pointer. One TypeRegistry is shared process-wide by an
// Evaluator, matching the single-evaluator-thread concurrency model —
// a future parallel evaluator would need to serialize Intern calls the
// same way strintern.Interner does.
type TypeRegistry struct {
	mu    sync.Mutex
	byKey map[key]*Type

	// Singletons for the unparameterised kinds, returned without a map
	// lookup since they never vary.
	voidT, anyT, boolT, intT, floatT, stringT *Type
	objectT, functionT, moduleT, projectT     *Type
	undefinedT                                *Type
}

// NewRegistry creates a registry pre-populated with the concrete-kind
// singletons.
func NewRegistry() *TypeRegistry {
	r := &TypeRegistry{byKey: make(map[key]*Type)}
	r.voidT = r.intern(Void, nil)
	r.anyT = r.intern(Any, nil)
	r.boolT = r.intern(Bool, nil)
	r.intT = r.intern(Integer, nil)
	r.floatT = r.intern(Float, nil)
	r.stringT = r.intern(String, nil)
	r.objectT = r.intern(Object, nil)
	r.functionT = r.intern(Function, nil)
	r.moduleT = r.intern(Module, nil)
	r.projectT = r.intern(Project, nil)
	r.undefinedT = r.intern(Undefined, nil)
	return r
}

func (r *TypeRegistry) intern(k Kind, param *Type) *Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	kk := key{kind: k, param: param}
	if t, ok := r.byKey[kk]; ok {
		return t
	}
	t := &Type{Kind: k, Param: param}
	r.byKey[kk] = t
	return t
}

func (r *TypeRegistry) Void() *Type      { return r.voidT }
func (r *TypeRegistry) Any() *Type       { return r.anyT }
func (r *TypeRegistry) Bool() *Type      { return r.boolT }
func (r *TypeRegistry) Int() *Type       { return r.intT }
func (r *TypeRegistry) Float() *Type     { return r.floatT }
func (r *TypeRegistry) Str() *Type       { return r.stringT }
func (r *TypeRegistry) Object() *Type    { return r.objectT }
func (r *TypeRegistry) Function() *Type  { return r.functionT }
func (r *TypeRegistry) Module() *Type    { return r.moduleT }
func (r *TypeRegistry) Project() *Type   { return r.projectT }
func (r *TypeRegistry) Undefined() *Type { return r.undefinedT }

// ListOf interns (or returns the existing) list[elem] type.
func (r *TypeRegistry) ListOf(elem *Type) *Type { return r.intern(List, elem) }

// DictOf interns (or returns the existing) dict[elem] type.
func (r *TypeRegistry) DictOf(elem *Type) *Type { return r.intern(Dictionary, elem) }

// FromTypeName resolves the bare type-name keywords parsed into
// ast.TypeName to their registry singleton.
func (r *TypeRegistry) FromTypeName(name string) (*Type, bool) {
	switch name {
	case "void":
		return r.voidT, true
	case "any":
		return r.anyT, true
	case "bool":
		return r.boolT, true
	case "int":
		return r.intT, true
	case "float":
		return r.floatT, true
	case "string":
		return r.stringT, true
	case "list":
		return r.intern(List, r.anyT), true
	case "dict":
		return r.intern(Dictionary, r.anyT), true
	case "object":
		return r.objectT, true
	case "function":
		return r.functionT, true
	default:
		return nil, false
	}
}

// Len reports how many distinct types have been interned, mostly useful
// for tests asserting that repeated lookups dedup correctly.
func (r *TypeRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byKey)
}
