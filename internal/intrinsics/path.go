package intrinsics

import (
	"path/filepath"
	"strings"

	"mint.build/mint/internal/object"
)

// buildPathNamespace implements Mint's `path.*` string-manipulation
// intrinsics. These operate on plain strings (never touching the
// filesystem), so they map onto Go's path/filepath package rather than
// any pack dependency — manipulating "/"-joined path strings is exactly
// what path/filepath is for, and none of the pack's third-party
// dependencies specialize in pure string path arithmetic (doublestar
// and fsnotify both operate on the filesystem itself, not bare strings).
func buildPathNamespace() *object.Object {
	ns := object.NewObject("path", nil, nil)

	ns.SetAttr(fn("add_ext", func(self object.Node, args []object.Node) (object.Node, error) {
		in, ext, err := twoStrings(args)
		if err != nil {
			return object.TheUndefined, err
		}
		return object.String(in + "." + ext), nil
	}))
	ns.SetAttr(fn("change_ext", func(self object.Node, args []object.Node) (object.Node, error) {
		in, ext, err := twoStrings(args)
		if err != nil {
			return object.TheUndefined, err
		}
		base := strings.TrimSuffix(in, filepath.Ext(in))
		return object.String(base + "." + ext), nil
	}))
	ns.SetAttr(fn("ext", func(self object.Node, args []object.Node) (object.Node, error) {
		s, err := oneString(args)
		if err != nil {
			return object.TheUndefined, err
		}
		return object.String(strings.TrimPrefix(filepath.Ext(s), ".")), nil
	}))
	ns.SetAttr(fn("basename", func(self object.Node, args []object.Node) (object.Node, error) {
		s, err := oneString(args)
		if err != nil {
			return object.TheUndefined, err
		}
		return object.String(filepath.Base(s)), nil
	}))
	ns.SetAttr(fn("dirname", func(self object.Node, args []object.Node) (object.Node, error) {
		s, err := oneString(args)
		if err != nil {
			return object.TheUndefined, err
		}
		return object.String(filepath.Dir(s)), nil
	}))
	ns.SetAttr(fn("join", func(self object.Node, args []object.Node) (object.Node, error) {
		base, rest, err := twoStrings(args)
		if err != nil {
			return object.TheUndefined, err
		}
		return object.String(filepath.Join(base, rest)), nil
	}))
	return ns
}
