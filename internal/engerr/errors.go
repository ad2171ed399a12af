// Package engerr defines the flat error enum described in spec.md §7.
//
// Grounded on the teacher's ErrorValue pattern (internal/interp/errors.go):
// one concrete type per meaning, each carrying its own formatted message,
// rather than wrapping a generic sentinel with ad-hoc text.
package engerr

import "fmt"

// Kind identifies one of the fixed error variants of spec.md §7.
type Kind int

const (
	FunctionNotFound Kind = iota
	FunctionArgMismatch
	FunctionCallNotSupported
	FunctionArityNotSupported
	IndexMismatch
	IfGuardMismatch
	VariableNotFound
	AssignmentToUnknownLHS
	MismatchOutputType
	CantOpenScriptFile
	InternalErrorMalformedDotExpression

	// The internal control signals of spec.md §7 (LoopBreak, Return) have no
	// Kind here: they are always caught at a loop or function-call boundary
	// and must never be visible to the host, so the evaluator carries them
	// in its own unexported breakSignal/returnSignal types instead (see
	// internal/evaluator/control.go).
)

var kindNames = map[Kind]string{
	FunctionNotFound:                    "FunctionNotFound",
	FunctionArgMismatch:                 "FunctionArgMismatch",
	FunctionCallNotSupported:            "FunctionCallNotSupported",
	FunctionArityNotSupported:           "FunctionArityNotSupported",
	IndexMismatch:                       "IndexMismatch",
	IfGuardMismatch:                     "IfGuardMismatch",
	VariableNotFound:                    "VariableNotFound",
	AssignmentToUnknownLHS:              "AssignmentToUnknownLHS",
	MismatchOutputType:                  "MismatchOutputType",
	CantOpenScriptFile:                  "CantOpenScriptFile",
	InternalErrorMalformedDotExpression: "InternalErrorMalformedDotExpression",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "Unknown"
}

// Error is the engine's single error type. Every error that evaluating a
// script through the evaluator or the engine facade returns to a host is an
// *Error with one of the Kinds above. Engine.RegisterFunction reports a
// rejected registration other than an over-arity one as a plain error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New constructs an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Is reports whether err is an *Error of kind k, so callers can branch on
// error kind without a type switch at every call site.
func Is(err error, k Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == k
}
