package evaluator

import (
	"github.com/cwbudde/minilang/internal/ast"
	"github.com/cwbudde/minilang/internal/engerr"
	"github.com/cwbudde/minilang/internal/registry"
	"github.com/cwbudde/minilang/internal/scope"
	"github.com/cwbudde/minilang/internal/value"
)

// dispatchCall evaluates a plain (non-method) call: arg values are already
// owned clones, so pointers into the local slice are safe to hand to a
// native callable without risking aliasing the caller's state.
func (ev *Evaluator) dispatchCall(name string, argVals []value.Value) (value.Value, error) {
	ptrs := make([]*value.Value, len(argVals))
	for i := range argVals {
		ptrs[i] = &argVals[i]
	}
	return ev.callByPtrs(name, ptrs)
}

// callByPtrs resolves name against the registry using the runtime types of
// *argPtrs and invokes whichever callable is found. Passing pointers (rather
// than values) is what lets a native method mutate its receiver (argPtrs[0])
// in place — the dot protocol relies on this for write-back.
func (ev *Evaluator) callByPtrs(name string, argPtrs []*value.Value) (value.Value, error) {
	types := make([]value.TypeToken, len(argPtrs))
	argVals := make([]value.Value, len(argPtrs))
	for i, p := range argPtrs {
		types[i] = p.TypeID()
		argVals[i] = *p
	}

	c, ok := ev.Reg.Resolve(name, types, ev.Names)
	if !ok {
		return value.Value{}, engerr.New(engerr.FunctionNotFound, "%s", registry.DisplaySignature(name, types, ev.Names))
	}

	switch fn := c.(type) {
	case *registry.NativeFn:
		if len(argPtrs) != fn.Arity {
			return value.Value{}, engerr.New(engerr.FunctionArgMismatch,
				"native function %q expects %d argument(s), got %d", name, fn.Arity, len(argPtrs))
		}
		return fn.Fn(argPtrs)
	case *registry.ScriptFn:
		// Script functions only ever see clones of their arguments (spec.md
		// §4.1): a script can't mutate its receiver in place the way a
		// native method can.
		return ev.callScript(fn.Def, argVals)
	default:
		return value.Value{}, engerr.New(engerr.FunctionNotFound, "%s", registry.DisplaySignature(name, types, ev.Names))
	}
}

// callScript pushes a fresh Scope with one binding per parameter (a clone of
// the corresponding argument), runs the body, and converts an uncaught
// Return(v) control signal into (v, nil); falling off the end of the body
// yields Unit.
func (ev *Evaluator) callScript(def *ast.FnDef, argVals []value.Value) (value.Value, error) {
	if len(argVals) != len(def.Params) {
		return value.Value{}, engerr.New(engerr.FunctionArgMismatch,
			"function %q expects %d argument(s), got %d", def.Name, len(def.Params), len(argVals))
	}

	fnScope := scope.New()
	for i, p := range def.Params {
		fnScope.Push(p, argVals[i].Clone())
	}

	err := ev.execStmt(def.Body, fnScope)
	if err == nil {
		return value.UnitValue, nil
	}
	if rs, ok := asReturn(err); ok {
		return rs.Value, nil
	}
	return value.Value{}, err
}

// RegisterScriptFn installs a parsed function definition into the registry
// under its wildcard signature, enforcing the dispatcher's arity cap
// (spec.md §4.1: "script functions with more than 6 parameters are silently
// ignored during registration"). Callers that must honor the "silently"
// part (Run, Consume) discard the returned error; callers that want to
// surface the compatibility quirk can inspect it.
func (ev *Evaluator) RegisterScriptFn(def *ast.FnDef) error {
	if len(def.Params) > ev.MaxScriptArity {
		return engerr.New(engerr.FunctionArityNotSupported,
			"function %q has %d parameters, the dispatcher supports at most %d", def.Name, len(def.Params), ev.MaxScriptArity)
	}
	ev.Reg.RegisterScript(def.Name, def)
	return nil
}

// CallFn dispatches a registered callable by name with already-evaluated
// arguments, for the embedding API's call_fn.
func (ev *Evaluator) CallFn(name string, args []value.Value) (value.Value, error) {
	return ev.dispatchCall(name, args)
}
