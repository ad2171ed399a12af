package minilang

import (
	"github.com/cwbudde/minilang/internal/engerr"
	"github.com/cwbudde/minilang/internal/registry"
	"github.com/cwbudde/minilang/internal/value"
)

// RegisterMethod1 installs a one-argument, non-mutating native method
// callable as `recv.name(a)` through the dot protocol's FnCall chain
// (spec.md §4.4: the receiver travels as argument 0, the call arguments
// follow). fn's result is the call's result; the receiver is left as-is.
func RegisterMethod1[T, A, R any](e *Engine, name string, fn func(recv T, a A) (R, error)) {
	recvTok, aTok := value.TokenOf[T](), value.TokenOf[A]()
	e.reg.RegisterNative(name, []value.TypeToken{recvTok, aTok}, e.names, &registry.NativeFn{
		Arity: 2,
		Fn: func(args []*value.Value) (value.Value, error) {
			recv := value.MustDowncast[T](*args[0])
			a := value.MustDowncast[A](*args[1])
			result, err := fn(recv, a)
			if err != nil {
				return value.Value{}, engerr.New(engerr.FunctionCallNotSupported, "%s: %v", name, err)
			}
			return value.New(result), nil
		},
	})
}

// RegisterMethod2 is RegisterMethod1 for a two-argument method, e.g.
// `recv.name(a, b)`.
func RegisterMethod2[T, A, B, R any](e *Engine, name string, fn func(recv T, a A, b B) (R, error)) {
	recvTok, aTok, bTok := value.TokenOf[T](), value.TokenOf[A](), value.TokenOf[B]()
	e.reg.RegisterNative(name, []value.TypeToken{recvTok, aTok, bTok}, e.names, &registry.NativeFn{
		Arity: 3,
		Fn: func(args []*value.Value) (value.Value, error) {
			recv := value.MustDowncast[T](*args[0])
			a := value.MustDowncast[A](*args[1])
			b := value.MustDowncast[B](*args[2])
			result, err := fn(recv, a, b)
			if err != nil {
				return value.Value{}, engerr.New(engerr.FunctionCallNotSupported, "%s: %v", name, err)
			}
			return value.New(result), nil
		},
	})
}

// RegisterMutatingMethod3 covers the ledger demo's `transfer(from, to,
// amount)` shape: three plain arguments, returning the receiver's new state
// (which the dot protocol writes back) rather than an independent result.
func RegisterMutatingMethod3[T, A, B, C any](e *Engine, name string, fn func(recv T, a A, b B, c C) (T, error)) {
	recvTok := value.TokenOf[T]()
	aTok, bTok, cTok := value.TokenOf[A](), value.TokenOf[B](), value.TokenOf[C]()
	e.reg.RegisterNative(name, []value.TypeToken{recvTok, aTok, bTok, cTok}, e.names, &registry.NativeFn{
		Arity: 4,
		Fn: func(args []*value.Value) (value.Value, error) {
			recv := value.MustDowncast[T](*args[0])
			a := value.MustDowncast[A](*args[1])
			b := value.MustDowncast[B](*args[2])
			c := value.MustDowncast[C](*args[3])
			next, err := fn(recv, a, b, c)
			if err != nil {
				return value.Value{}, engerr.New(engerr.FunctionCallNotSupported, "%s: %v", name, err)
			}
			*args[0] = value.New(next)
			return value.UnitValue, nil
		},
	})
}
