// Package registry implements the FnSpec → callable dispatch table described
// in spec.md §3–§4.1: a mapping from (name, optional ordered argument type
// signature) to either a host-provided native callable or a script-defined
// function, with typed-signature-first / wildcard-fallback resolution.
package registry

import (
	"strings"

	"github.com/cwbudde/minilang/internal/ast"
	"github.com/cwbudde/minilang/internal/value"
)

// NativeFn is a host function bound into the registry via register_fn. It
// receives mutable pointers to its evaluated arguments — arg 0 is the
// receiver for method-style calls (`a.b.method(...)`) — so a native getter
// or method can mutate its receiver in place; the evaluator is responsible
// for writing that mutation back to its source (spec.md §4.4 dot protocol).
type NativeFn struct {
	Arity int
	Fn    func(args []*value.Value) (value.Value, error)
}

// ScriptFn wraps a parsed function definition. Invocation (pushing
// parameter bindings into a fresh Scope, running the body, catching the
// Return control signal) is the evaluator's job, since it alone owns the
// Scope and the statement-execution machinery.
type ScriptFn struct {
	Def *ast.FnDef
}

// Callable is implemented by *NativeFn and *ScriptFn.
type Callable interface {
	callable()
}

func (*NativeFn) callable() {}
func (*ScriptFn) callable() {}

// Registry holds the typed and wildcard dispatch tables. It is read-only
// during a single evaluation: script function definitions in the source
// currently being evaluated are inserted before statement execution begins
// (spec.md §5).
type Registry struct {
	typed map[string]map[string]Callable // name -> joined type signature -> callable
	wild  map[string]Callable            // name -> wildcard callable
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		typed: make(map[string]map[string]Callable),
		wild:  make(map[string]Callable),
	}
}

func sigKey(types []value.TypeToken, names *value.TypeNames) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = names.NameOf(t)
	}
	return strings.Join(parts, ",")
}

// RegisterNative binds name+argTypes to a native callable (typed signature).
func (r *Registry) RegisterNative(name string, argTypes []value.TypeToken, names *value.TypeNames, fn *NativeFn) {
	bucket, ok := r.typed[name]
	if !ok {
		bucket = make(map[string]Callable)
		r.typed[name] = bucket
	}
	bucket[sigKey(argTypes, names)] = fn
}

// RegisterScript binds name to a script-defined function under the wildcard
// signature. A later definition with the same name silently overwrites the
// earlier one — spec.md §9 Open Questions: "two script functions with the
// same name silently overwrite".
func (r *Registry) RegisterScript(name string, def *ast.FnDef) {
	r.wild[name] = &ScriptFn{Def: def}
}

// Resolve implements the dispatch order of spec.md §4.1:
//  1. exact (name, argTypes) in the typed table
//  2. (name, wildcard) — only if it is a script callable
//  3. not found
func (r *Registry) Resolve(name string, argTypes []value.TypeToken, names *value.TypeNames) (Callable, bool) {
	if bucket, ok := r.typed[name]; ok {
		if c, ok := bucket[sigKey(argTypes, names)]; ok {
			return c, true
		}
	}
	if c, ok := r.wild[name]; ok {
		if sf, ok := c.(*ScriptFn); ok {
			return sf, true
		}
	}
	return nil, false
}

// DisplaySignature renders "name (t1,t2,...)" for FunctionNotFound error
// messages, per spec.md §7.
func DisplaySignature(name string, argTypes []value.TypeToken, names *value.TypeNames) string {
	return name + " (" + sigKey(argTypes, names) + ")"
}
