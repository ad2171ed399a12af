package evaluator

import "github.com/cwbudde/minilang/internal/value"

// breakSignal and returnSignal are the internal control-flow signals of
// spec.md §7 (`LoopBreak`, `Return(Value)`). They travel as ordinary Go
// errors through execStmt so the existing error-propagation path also
// carries control flow, but they are caught at a loop or function-call
// boundary (and, as a last resort, at the outermost Run/Consume call) and
// must never reach the host as an *engerr.Error.
type breakSignal struct{}

func (breakSignal) Error() string { return "break outside of any loop" }

type returnSignal struct {
	Value value.Value
}

func (returnSignal) Error() string { return "return outside of any function" }

func isBreak(err error) bool {
	_, ok := err.(breakSignal)
	return ok
}

func asReturn(err error) (returnSignal, bool) {
	rs, ok := err.(returnSignal)
	return rs, ok
}
