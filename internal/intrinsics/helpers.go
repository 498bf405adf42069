package intrinsics

import (
	"fmt"

	"mint.build/mint/internal/object"
)

// oneString and twoStrings adapt a native method's loosely-typed args
// slice to the Go strings its implementation actually needs, matching
// the argument-count/type checks the teacher's intrinsics perform by
// hand at the top of each native method body.
func oneString(args []object.Node) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected 1 argument, got %d", len(args))
	}
	s, ok := args[0].(object.String)
	if !ok {
		return "", fmt.Errorf("expected a string argument, got %T", args[0])
	}
	return string(s), nil
}

func errArgCount(want, got int) error {
	return fmt.Errorf("expected %d arguments, got %d", want, got)
}

func errWantString(got object.Node) error {
	return fmt.Errorf("expected a string argument, got %T", got)
}

func errWantList(got object.Node) error {
	return fmt.Errorf("expected a list argument, got %T", got)
}

func twoStrings(args []object.Node) (string, string, error) {
	if len(args) != 2 {
		return "", "", fmt.Errorf("expected 2 arguments, got %d", len(args))
	}
	a, ok := args[0].(object.String)
	if !ok {
		return "", "", fmt.Errorf("expected a string argument, got %T", args[0])
	}
	b, ok := args[1].(object.String)
	if !ok {
		return "", "", fmt.Errorf("expected a string argument, got %T", args[1])
	}
	return string(a), string(b), nil
}
