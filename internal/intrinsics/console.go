package intrinsics

import (
	"mint.build/mint/internal/diagnostics"
	"mint.build/mint/internal/object"
	"mint.build/mint/internal/source"
)

// buildConsoleNamespace implements `console.debug/status/info/warn/error/
// fatal(msg)`, grounded on the teacher's initConsoleMethods: each native
// method is a one-line forward onto the shared diagnostics sink at the
// matching severity, with no source location of its own (console.* calls
// are user-triggered reporting, not compiler diagnostics, so they carry
// no diagnostic code).
func buildConsoleNamespace(diags *diagnostics.Sink) *object.Object {
	ns := object.NewObject("console", nil, nil)

	report := func(write func(msg string)) func(self object.Node, args []object.Node) (object.Node, error) {
		return func(self object.Node, args []object.Node) (object.Node, error) {
			msg, err := oneString(args)
			if err != nil {
				return object.TheUndefined, err
			}
			write(msg)
			return object.TheUndefined, nil
		}
	}

	ns.SetAttr(fn("debug", report(func(msg string) {
		diags.Debugf(nil, source.Pos{}, "%s", msg)
	})))
	ns.SetAttr(fn("status", report(func(msg string) {
		diags.Statusf(nil, source.Pos{}, "%s", msg)
	})))
	ns.SetAttr(fn("info", report(func(msg string) {
		diags.Infof(nil, source.Pos{}, "%s", msg)
	})))
	ns.SetAttr(fn("warn", report(func(msg string) {
		diags.Warnf("", nil, source.Pos{}, "%s", msg)
	})))
	ns.SetAttr(fn("error", report(func(msg string) {
		diags.Errorf("", nil, source.Pos{}, "%s", msg)
	})))
	ns.SetAttr(fn("fatal", report(func(msg string) {
		diags.Fatalf("", nil, source.Pos{}, "%s", msg)
	})))

	return ns
}
