// Package intrinsics builds Mint's root prototype object (Fundamentals)
// and its native method namespaces: object/target/option prototypes,
// path/console/re/fs/shell namespaces, and the list methods (map, filter,
// join) bound to every list value. Every callable Node in the object
// graph is constructed here — Mint has no user-defined function
// literals, so the full native surface is fixed at startup. The console
// and shell handlers close over the Sink and writer given to
// BuildFundamentals; the rest use only their arguments.
package intrinsics

import (
	"io"

	"mint.build/mint/internal/diagnostics"
	"mint.build/mint/internal/object"
	"mint.build/mint/internal/source"
	"mint.build/mint/internal/types"
)

// fn builds an AttrDef for a native method: name, the handler, and the
// EXPORT flag. Nothing reads EXPORT: `from NAME import *` binds every
// attribute whatever its flags.
func fn(name string, call func(self object.Node, args []object.Node) (object.Node, error)) *object.AttrDef {
	return &object.AttrDef{
		Name: name,
		Value: &object.Function{
			Name: name,
			Call: func(loc source.Pos, self object.Node, args []object.Node) (object.Node, error) {
				return call(self, args)
			},
		},
		Flags: object.EXPORT,
	}
}

// BuildFundamentals constructs the root object every Mint module
// ultimately resolves unbound identifiers against: the object/target/
// option prototypes plus the path, console, re, fs, and shell
// namespaces. reg is used to intern the declared types on Target's
// attributes (sources, outputs, depends); diags is where console.*
// methods report (they are a thin wrapper over the same Sink a build
// uses for its own diagnostics, matching the teacher's
// methodConsole*/diag::writeMessage indirection). shellOut is where
// shell.run sends a spawned process's stdout/stderr; callers running a
// concurrent job scheduler should pass a schedule.StreamBuffer writer so
// parallel jobs' output never interleaves mid-line. traceShell, when
// true, makes shell.run echo the program and its arguments to shellOut
// before spawning, implementing the CLI's `--trace-config` flag.
func BuildFundamentals(reg *types.TypeRegistry, diags *diagnostics.Sink, shellOut io.Writer, traceShell bool) *object.Object {
	root := object.NewObject("Fundamentals", nil, nil)

	objectProto := buildObjectProto(root)
	root.SetAttr(&object.AttrDef{Name: "object", Value: objectProto, Flags: object.EXPORT})

	targetProto := buildTargetProto(root, objectProto, reg)
	root.SetAttr(&object.AttrDef{Name: "target", Value: targetProto, Flags: object.EXPORT})

	optionProto := buildOptionProto(reg)
	root.SetAttr(&object.AttrDef{Name: "Option", Value: optionProto, Flags: object.EXPORT})

	root.SetAttr(&object.AttrDef{Name: "path", Value: buildPathNamespace(), Flags: object.EXPORT})
	root.SetAttr(&object.AttrDef{Name: "console", Value: buildConsoleNamespace(diags), Flags: object.EXPORT})
	root.SetAttr(&object.AttrDef{Name: "re", Value: buildRegexNamespace(), Flags: object.EXPORT})
	root.SetAttr(&object.AttrDef{Name: "fs", Value: buildFSNamespace(), Flags: object.EXPORT})
	root.SetAttr(&object.AttrDef{Name: "shell", Value: buildShellNamespace(shellOut, traceShell), Flags: object.EXPORT})

	return root
}

// buildObjectProto mirrors the teacher's `object` base prototype, holding
// the `name`, `prototype`, and `parent` methods. Of the prototypes built
// here, only `target` inherits from it.
func buildObjectProto(root *object.Object) *object.Object {
	proto := object.NewObject("object", nil, root)
	proto.SetAttr(fn("name", func(self object.Node, args []object.Node) (object.Node, error) {
		if o, ok := self.(*object.Object); ok {
			return object.String(o.Name), nil
		}
		return object.TheUndefined, nil
	}))
	proto.SetAttr(fn("prototype", func(self object.Node, args []object.Node) (object.Node, error) {
		if o, ok := self.(*object.Object); ok && o.Proto != nil {
			return o.Proto, nil
		}
		return object.TheUndefined, nil
	}))
	proto.SetAttr(fn("parent", func(self object.Node, args []object.Node) (object.Node, error) {
		if o, ok := self.(*object.Object); ok {
			if p, ok := o.Parent().(*object.Object); ok {
				return p, nil
			}
		}
		return object.TheUndefined, nil
	}))
	return proto
}

// buildTargetProto constructs the `target` prototype every `target { }`
// literal inherits from: `sources`, `outputs` (flagged EXPORT), and
// `depends`, all lists; internal/target reads them off a realized target
// by attribute name.
func buildTargetProto(root, objectProto *object.Object, reg *types.TypeRegistry) *object.Object {
	proto := object.NewObject("target", objectProto, root)
	stringList := reg.ListOf(reg.Str())
	targetList := reg.ListOf(reg.Object())

	proto.SetAttr(&object.AttrDef{Name: "sources", Value: &object.List{}, DeclaredType: stringList})
	proto.SetAttr(&object.AttrDef{Name: "outputs", Value: &object.List{}, DeclaredType: stringList, Flags: object.EXPORT})
	proto.SetAttr(&object.AttrDef{Name: "depends", Value: &object.List{}, DeclaredType: targetList})
	return proto
}

// buildOptionProto constructs the `option` prototype that every
// `option NAME { }` declaration inherits from. BuildFundamentals sets it
// on the root as `Option`, which is where realizeOption looks it up.
func buildOptionProto(reg *types.TypeRegistry) *object.Object {
	proto := object.NewObject("option", nil, nil)
	proto.SetAttr(&object.AttrDef{Name: "name", DeclaredType: reg.Str()})
	proto.SetAttr(&object.AttrDef{Name: "help", DeclaredType: reg.Str()})
	proto.SetAttr(&object.AttrDef{Name: "abbrev", DeclaredType: reg.Str()})
	return proto
}
