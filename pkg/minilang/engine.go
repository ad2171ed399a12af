// Package minilang is the embedding API described in spec.md §6: a thin
// facade over internal/{lexer,parser,evaluator} that a host program links
// against to evaluate script source, register native functions, and expose
// get/set-backed properties on host types through the dot protocol.
//
// Grounded on the teacher's pkg/dwscript facade (New(options...), Engine,
// RegisterFunction, Eval) — generalized here since minilang has no
// type-checking pass and no project/unit system to toggle.
package minilang

import (
	"fmt"
	"os"
	"reflect"

	"github.com/cwbudde/minilang/internal/engerr"
	"github.com/cwbudde/minilang/internal/evaluator"
	"github.com/cwbudde/minilang/internal/parser"
	"github.com/cwbudde/minilang/internal/registry"
	"github.com/cwbudde/minilang/internal/scope"
	"github.com/cwbudde/minilang/internal/value"
)

// Engine owns one function registry and type-name table. It is safe to run
// many independent Evaluate/Consume calls against the same Engine — each
// gets its own Scope — but, like the teacher's Engine, it is not safe for
// concurrent registration from multiple goroutines.
type Engine struct {
	reg   *registry.Registry
	names *value.TypeNames
	eval  *evaluator.Evaluator
}

// New creates an Engine with the default type names and operators installed
// (internal/evaluator.RegisterDefaults), then applies opts.
func New(opts ...Option) (*Engine, error) {
	reg := registry.New()
	names := value.NewTypeNames()
	evaluator.RegisterDefaults(reg, names)

	e := &Engine{reg: reg, names: names, eval: evaluator.New(reg, names)}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Evaluate parses and runs src against a fresh Scope, returning the value of
// its final top-level expression statement (Unit if there is none).
func (e *Engine) Evaluate(src string) (value.Value, error) {
	return e.EvaluateWithScope(src, scope.New())
}

// EvaluateWithScope runs src against sc, so a host can seed variables before
// evaluation and inspect them (via sc.Get) afterward.
func (e *Engine) EvaluateWithScope(src string, sc *scope.Scope) (value.Value, error) {
	prog, errs := parser.Parse(src)
	if len(errs) > 0 {
		return value.Value{}, engerr.New(engerr.FunctionArgMismatch, "%s", errs[0])
	}
	return e.eval.Run(prog, sc)
}

// Consume is Evaluate without a useful result: it runs src purely for side
// effects (registered native functions observing/mutating host state) and
// discards the final expression value.
func (e *Engine) Consume(src string) error {
	_, err := e.Evaluate(src)
	return err
}

// ConsumeWithScope is Consume against an explicit Scope.
func (e *Engine) ConsumeWithScope(src string, sc *scope.Scope) error {
	_, err := e.EvaluateWithScope(src, sc)
	return err
}

// EvaluateFile reads path and evaluates its contents, wrapping an I/O
// failure as CantOpenScriptFile per spec.md §7.
func (e *Engine) EvaluateFile(path string) (value.Value, error) {
	return e.EvaluateFileWithScope(path, scope.New())
}

// EvaluateFileWithScope is EvaluateFile against an explicit Scope.
func (e *Engine) EvaluateFileWithScope(path string, sc *scope.Scope) (value.Value, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return value.Value{}, engerr.New(engerr.CantOpenScriptFile, "%s: %v", path, err)
	}
	return e.EvaluateWithScope(string(src), sc)
}

// ConsumeFile is EvaluateFile without a useful result.
func (e *Engine) ConsumeFile(path string) error {
	_, err := e.EvaluateFile(path)
	return err
}

// CallFn invokes a registered callable by name with already-built Values,
// for a host that wants to drive script-defined functions directly instead
// of through Evaluate.
func (e *Engine) CallFn(name string, args []value.Value) (value.Value, error) {
	return e.eval.CallFn(name, args)
}

// TypeName renders v's runtime type using this Engine's name table.
func (e *Engine) TypeName(v value.Value) string { return v.TypeName(e.names) }

// String renders v using this Engine's name table.
func (e *Engine) String(v value.Value) string { return v.String(e.names) }

// reflectTypeToken maps a Go parameter type to its TypeToken under the
// built-in scalar mapping; it errors on any shape it doesn't recognize so
// registration fails loudly rather than silently accepting an uncallable
// signature.
func reflectTypeToken(t reflect.Type) (value.TypeToken, error) {
	switch t.Kind() {
	case reflect.Int64:
		return value.TokenOf[value.Int](), nil
	case reflect.Float64:
		return value.TokenOf[value.Float](), nil
	case reflect.String:
		return value.TokenOf[value.Str](), nil
	case reflect.Bool:
		return value.TokenOf[value.Bool](), nil
	case reflect.Int32:
		return value.TokenOf[value.Char](), nil
	case reflect.Slice:
		return value.TokenOf[value.Array](), nil
	default:
		return value.TypeToken{}, fmt.Errorf("minilang: unsupported parameter type %s", t)
	}
}

func valueToReflect(v value.Value, want reflect.Type) (reflect.Value, error) {
	switch want.Kind() {
	case reflect.Int64:
		n, ok := value.Downcast[value.Int](v)
		if !ok {
			return reflect.Value{}, fmt.Errorf("minilang: expected Int argument")
		}
		return reflect.ValueOf(n), nil
	case reflect.Float64:
		f, ok := value.Downcast[value.Float](v)
		if !ok {
			return reflect.Value{}, fmt.Errorf("minilang: expected Float argument")
		}
		return reflect.ValueOf(f), nil
	case reflect.String:
		s, ok := value.Downcast[value.Str](v)
		if !ok {
			return reflect.Value{}, fmt.Errorf("minilang: expected Str argument")
		}
		return reflect.ValueOf(s), nil
	case reflect.Bool:
		b, ok := value.Downcast[value.Bool](v)
		if !ok {
			return reflect.Value{}, fmt.Errorf("minilang: expected Bool argument")
		}
		return reflect.ValueOf(b), nil
	case reflect.Int32:
		c, ok := value.Downcast[value.Char](v)
		if !ok {
			return reflect.Value{}, fmt.Errorf("minilang: expected Char argument")
		}
		return reflect.ValueOf(c), nil
	case reflect.Slice:
		arr, ok := value.Downcast[value.Array](v)
		if !ok {
			return reflect.Value{}, fmt.Errorf("minilang: expected Array argument")
		}
		out := reflect.MakeSlice(want, arr.Len(), arr.Len())
		for i, el := range arr.Elems {
			rv, err := valueToReflect(el, want.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(rv)
		}
		return out, nil
	default:
		return reflect.Value{}, fmt.Errorf("minilang: unsupported parameter type %s", want)
	}
}

func reflectToValue(rv reflect.Value) (value.Value, error) {
	switch rv.Kind() {
	case reflect.Int64:
		return value.New[value.Int](rv.Int()), nil
	case reflect.Float64:
		return value.New[value.Float](rv.Float()), nil
	case reflect.String:
		return value.New[value.Str](rv.String()), nil
	case reflect.Bool:
		return value.New[value.Bool](rv.Bool()), nil
	case reflect.Int32:
		return value.New[value.Char](rune(rv.Int())), nil
	case reflect.Slice:
		elems := make([]value.Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			v, err := reflectToValue(rv.Index(i))
			if err != nil {
				return value.Value{}, err
			}
			elems[i] = v
		}
		return value.NewArray(elems), nil
	default:
		return value.Value{}, fmt.Errorf("minilang: unsupported return type %s", rv.Type())
	}
}

// errType is reflect.Type for the error interface, used to detect a
// func(...) (T, error) or func(...) error signature.
var errType = reflect.TypeOf((*error)(nil)).Elem()

// RegisterFunction reflects over fn (a Go func of arity 0–3, scalar/slice
// parameters, returning at most one value plus an optional trailing error)
// and installs it as a native callable under name. Grounded on the teacher's
// reflection-based RegisterFunction (pkg/dwscript), narrowed to minilang's
// flat scalar type set — a host type with struct fields should instead use
// RegisterType/RegisterGet/RegisterSet, which bypass reflection entirely.
func (e *Engine) RegisterFunction(name string, fn any) error {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func {
		return fmt.Errorf("minilang: RegisterFunction(%q): not a function", name)
	}
	rt := rv.Type()
	if rt.NumIn() > 3 {
		return engerr.New(engerr.FunctionArityNotSupported,
			"function %q has %d parameters, RegisterFunction supports at most 3", name, rt.NumIn())
	}

	argTypes := make([]value.TypeToken, rt.NumIn())
	for i := range argTypes {
		tok, err := reflectTypeToken(rt.In(i))
		if err != nil {
			return fmt.Errorf("minilang: RegisterFunction(%q): %w", name, err)
		}
		argTypes[i] = tok
	}

	returnsError, returnsValue := false, false
	switch rt.NumOut() {
	case 0:
	case 1:
		if rt.Out(0) == errType {
			returnsError = true
		} else {
			returnsValue = true
		}
	case 2:
		if rt.Out(1) != errType {
			return fmt.Errorf("minilang: RegisterFunction(%q): second return value must be error", name)
		}
		returnsValue, returnsError = true, true
	default:
		return fmt.Errorf("minilang: RegisterFunction(%q): at most two return values supported", name)
	}

	e.reg.RegisterNative(name, argTypes, e.names, &registry.NativeFn{
		Arity: rt.NumIn(),
		Fn: func(args []*value.Value) (value.Value, error) {
			ins := make([]reflect.Value, len(args))
			for i, a := range args {
				rv, err := valueToReflect(*a, rt.In(i))
				if err != nil {
					return value.Value{}, engerr.New(engerr.FunctionArgMismatch, "%s", err)
				}
				ins[i] = rv
			}
			outs := rv.Call(ins)
			if returnsError {
				errOut := outs[len(outs)-1]
				if !errOut.IsNil() {
					return value.Value{}, engerr.New(engerr.FunctionCallNotSupported, "%v", errOut.Interface())
				}
			}
			if returnsValue {
				return reflectToValue(outs[0])
			}
			return value.UnitValue, nil
		},
	})
	return nil
}
