package intrinsics

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"mint.build/mint/internal/object"
)

// buildShellNamespace implements `shell.run(program, args, input)`,
// grounded on Subprocess.cpp's methodShell: spawn program with args,
// write input to its stdin, and return a dict-shaped Object carrying the
// exit status (the teacher's result->attrs()["status"] = exit code).
// os/exec replaces the teacher's raw popen/pclose pair; no pack
// dependency wraps process spawning, and os/exec is the Go standard
// answer for exactly this.
//
// Stdout and stderr go to out rather than being captured, matching the
// teacher's Process (child output flows to the shared ProcessListener,
// not back into the build script). out is the single writer passed to
// BuildFundamentals and is shared by every job of a build; nothing here
// keeps concurrently running targets' output from interleaving.
func buildShellNamespace(out io.Writer, trace bool) *object.Object {
	ns := object.NewObject("shell", nil, nil)

	ns.SetAttr(fn("run", func(self object.Node, args []object.Node) (object.Node, error) {
		if len(args) != 3 {
			return object.TheUndefined, errArgCount(3, len(args))
		}
		program, ok := args[0].(object.String)
		if !ok {
			return object.TheUndefined, errWantString(args[0])
		}
		argList, ok := args[1].(*object.List)
		if !ok {
			return object.TheUndefined, errWantList(args[1])
		}
		input, ok := args[2].(object.String)
		if !ok {
			return object.TheUndefined, errWantString(args[2])
		}

		cmdArgs := make([]string, len(argList.Elems))
		for i, e := range argList.Elems {
			s, ok := e.(object.String)
			if !ok {
				return object.TheUndefined, errWantString(e)
			}
			cmdArgs[i] = string(s)
		}

		if trace {
			fmt.Fprintf(out, "+ %s %s\n", program, strings.Join(cmdArgs, " "))
		}

		cmd := exec.Command(string(program), cmdArgs...)
		cmd.Stdin = bytes.NewBufferString(string(input))
		cmd.Stdout = out
		cmd.Stderr = out
		var status int
		if err := cmd.Run(); err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				status = exitErr.ExitCode()
			} else {
				return object.TheUndefined, err
			}
		}

		result := object.NewObject("", nil, nil)
		result.SetAttr(&object.AttrDef{Name: "status", Value: object.Int(status)})
		return result, nil
	}))

	return ns
}
