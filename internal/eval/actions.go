package eval

import (
	"mint.build/mint/internal/diagnostics"
	"mint.build/mint/internal/object"
)

// RunActions evaluates every `do EXPR` member collected on obj during
// realization, in source order, within obj's own scope. It does not
// clear obj.DoActions: internal/schedule re-invokes this once per job
// attempt, and a target's do-actions are meant to run exactly once per
// build, a guarantee the scheduler enforces by only ever handing a
// Target to a single Job.
//
// Success is judged by the ERROR/FATAL count rising during this call,
// not by Diags.HadError(): the Sink is shared across every concurrently
// running job, so a prior job's failure would otherwise make every
// later RunActions call on an unrelated, successful target look like it
// failed too.
func (ev *Evaluator) RunActions(obj *object.Object) error {
	before := ev.Diags.Count(diagnostics.ERROR) + ev.Diags.Count(diagnostics.FATAL)
	ev.withScope(obj, func() object.Node {
		for _, expr := range obj.DoActions {
			ev.Eval(expr)
		}
		return object.TheUndefined
	})
	after := ev.Diags.Count(diagnostics.ERROR) + ev.Diags.Count(diagnostics.FATAL)
	if after > before {
		return errActionFailed
	}
	return nil
}

var errActionFailed = actionError{}

type actionError struct{}

func (actionError) Error() string { return "one or more build actions reported an error" }
