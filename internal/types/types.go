// Package types implements Mint's declared-type system: a closed set of
// concrete kinds plus a small number of parameterised derived types
// (list[T], dict[T]), interned by structural key in a TypeRegistry so
// two requests for the same shape return the identical *Type.
package types

import "fmt"

// Kind enumerates the concrete type kinds a value or declaration can have.
type Kind int

const (
	Void Kind = iota
	Any
	Bool
	Integer
	Float
	String
	List
	Dictionary
	Object
	Function
	Module
	Project
	Undefined
)

var kindNames = [...]string{
	Void: "void", Any: "any", Bool: "bool", Integer: "int", Float: "float",
	String: "string", List: "list", Dictionary: "dict", Object: "object",
	Function: "function", Module: "module", Project: "project", Undefined: "undefined",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Type is an interned type value. Two *Type pointers are equal iff the
// types they describe are structurally equal: pointer identity can be used
// directly for type-equality checks once types come from a TypeRegistry.
type Type struct {
	Kind Kind
	// Param is the element type for List and Dictionary, nil otherwise.
	Param *Type
}

func (t *Type) String() string {
	if t == nil {
		return "<nil type>"
	}
	if t.Param != nil {
		return fmt.Sprintf("%s[%s]", t.Kind, t.Param)
	}
	return t.Kind.String()
}

// AssignableTo reports whether a value of type t may be used where a value
// of type target is expected. any accepts everything; undefined may flow
// into anything since it represents "not yet assigned"; otherwise the kind
// (and, for parameterised types, the element type) must match exactly.
func (t *Type) AssignableTo(target *Type) bool {
	if target == nil || target.Kind == Any {
		return true
	}
	if t == nil || t.Kind == Undefined {
		return true
	}
	if t.Kind != target.Kind {
		return false
	}
	if target.Param == nil {
		return true
	}
	return t.Param.AssignableTo(target.Param)
}

// key is the structural identity used to dedup entries in a TypeRegistry.
type key struct {
	kind  Kind
	param *Type
}
