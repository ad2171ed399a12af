package minilang

import (
	"github.com/cwbudde/minilang/internal/registry"
	"github.com/cwbudde/minilang/internal/value"
)

// RegisterType binds a friendly display name to T's TypeToken, so error
// messages and Engine.String render a host struct by name instead of
// "<unknown> ...". Call it once per host type before RegisterGet/RegisterSet.
func RegisterType[T any](e *Engine, name string) {
	value.Register[T](e.names, name)
}

// RegisterGet installs name's dot-protocol getter (spec.md §4.4's `get$name`
// convention) for receiver type T. fn receives the receiver by value — a
// getter never needs to mutate it — and its result is what `recv.name`
// evaluates to.
func RegisterGet[T, R any](e *Engine, name string, fn func(recv T) R) {
	recvTok := value.TokenOf[T]()
	e.reg.RegisterNative("get$"+name, []value.TypeToken{recvTok}, e.names, &registry.NativeFn{
		Arity: 1,
		Fn: func(args []*value.Value) (value.Value, error) {
			recv := value.MustDowncast[T](*args[0])
			return value.New(fn(recv)), nil
		},
	})
}

// RegisterSet installs name's dot-protocol setter (`set$name`) for receiver
// type T. fn receives the current receiver and the assigned R, and returns
// the receiver as it should be written back (spec.md §4.4: the evaluator
// writes this returned receiver into the scope slot or array cell the dot
// chain originated from — fn need not mutate anything in place).
func RegisterSet[T, R any](e *Engine, name string, fn func(recv T, v R) T) {
	recvTok := value.TokenOf[T]()
	valTok := value.TokenOf[R]()
	e.reg.RegisterNative("set$"+name, []value.TypeToken{recvTok, valTok}, e.names, &registry.NativeFn{
		Arity: 2,
		Fn: func(args []*value.Value) (value.Value, error) {
			recv := value.MustDowncast[T](*args[0])
			v := value.MustDowncast[R](*args[1])
			*args[0] = value.New(fn(recv, v))
			return value.UnitValue, nil
		},
	})
}

// RegisterGetSet is a convenience for the common case of both accessors at
// once.
func RegisterGetSet[T, R any](e *Engine, name string, get func(recv T) R, set func(recv T, v R) T) {
	RegisterGet[T, R](e, name, get)
	RegisterSet[T, R](e, name, set)
}
