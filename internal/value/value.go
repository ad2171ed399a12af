// Package value implements minilang's type-erased runtime Value and the
// stable per-type TypeToken used to key the function registry.
//
// Grounded on the teacher's tagged-union Value interface
// (internal/interp/value.go in the DWScript port), generalized here to an
// *open* set of types: the host can register any cloneable concrete type,
// not just the fixed built-ins.
package value

import "fmt"

// TypeToken is a stable, comparable identity for a concrete registered Go
// type. Two Values produced from the same concrete type always compare
// equal by TypeToken, in O(1), regardless of how many instances exist.
type TypeToken struct {
	name string // Go-level discriminator; unexported so only this package mints tokens
}

// TokenOf returns the TypeToken for any v of concrete type T, minting it on
// first use from T's reflect-free type name. minilang.RegisterType populates
// the human-readable type-name map for the same token (via Register).
func TokenOf[T any]() TypeToken {
	var zero T
	return TypeToken{name: fmt.Sprintf("%T", zero)}
}

// Cloner is implemented by host types whose clone is not a plain shallow Go
// copy (e.g. they hold a slice or pointer field that must be deep-copied).
// Types that are safe to copy by value need not implement it — Value.Clone
// falls back to the language-level copy.
type Cloner interface {
	CloneValue() any
}

// Value is the universal, type-erased, cloneable container for a single
// concrete instance: a built-in (Int, Float, Str, Char, Bool, Unit, Array)
// or any host-registered type.
type Value struct {
	token TypeToken
	data  any
}

// New wraps v (of concrete type T) into a Value carrying T's TypeToken.
func New[T any](v T) Value {
	return Value{token: TokenOf[T](), data: v}
}

// TypeID returns the Value's runtime TypeToken.
func (v Value) TypeID() TypeToken { return v.token }

// IsZero reports whether v was never assigned (the zero Value).
func (v Value) IsZero() bool { return v.data == nil }

// Clone produces a deep, fully-owned copy of v. Built-in Array clones every
// element recursively; a host type implementing Cloner is deep-copied via
// CloneValue; anything else is copied by Go's by-value assignment semantics
// (correct for every other built-in, and for host structs with no internal
// pointers/slices that need their own copies).
func (v Value) Clone() Value {
	if arr, ok := v.data.(Array); ok {
		return New(arr.clone())
	}
	if c, ok := v.data.(Cloner); ok {
		return Value{token: v.token, data: c.CloneValue()}
	}
	return Value{token: v.token, data: v.data}
}

// Downcast returns the concrete T wrapped by v, or the zero T and false if
// v does not hold a T.
func Downcast[T any](v Value) (T, bool) {
	t, ok := v.data.(T)
	return t, ok
}

// MustDowncast is Downcast without the ok return, for internal callers that
// have already checked TypeID.
func MustDowncast[T any](v Value) T {
	t, _ := v.data.(T)
	return t
}

// Array is minilang's dynamic array: an ordered, growable sequence of Value.
// Per spec.md §3, arrays hold *clones* of their inputs — there is no way to
// obtain a shared interior reference from script.
type Array struct {
	Elems []Value
}

// NewArray wraps a slice of already-owned Values into an Array Value.
func NewArray(elems []Value) Value {
	return New(Array{Elems: elems})
}

func (a Array) clone() Array {
	out := make([]Value, len(a.Elems))
	for i, e := range a.Elems {
		out[i] = e.Clone()
	}
	return Array{Elems: out}
}

// Len returns the element count.
func (a Array) Len() int { return len(a.Elems) }

// Built-in concrete Go types backing minilang's scalar values. Registering
// these in evaluator.RegisterDefaults gives them TypeTokens and display
// names exactly like any host type would get.
type (
	// Int is minilang's 64-bit signed integer type.
	Int = int64
	// Float is minilang's 64-bit floating point type.
	Float = float64
	// Str is minilang's Unicode string type.
	Str = string
	// Char is minilang's single Unicode character type.
	Char = rune
	// Bool is minilang's boolean type.
	Bool = bool
	// Unit is minilang's empty/unit type — a single valid instance,
	// analogous to Go's struct{}.
	Unit = struct{}
)

// UnitValue is the single Unit instance used whenever an operation "returns
// nothing" (e.g. the fallthrough of a body with no trailing expression).
var UnitValue = New(Unit{})

// TypeNames maps a TypeToken to the friendly name used in error messages and
// Value.String(). It is owned by the Engine (one map per engine instance,
// since different hosts may register different types under the same Go
// shape), but lives in this package so Value can format itself without an
// import cycle.
type TypeNames struct {
	names map[TypeToken]string
}

// NewTypeNames creates an empty name table.
func NewTypeNames() *TypeNames { return &TypeNames{names: make(map[TypeToken]string)} }

// Register binds a friendly name to the TypeToken of T.
func Register[T any](tn *TypeNames, name string) {
	tn.names[TokenOf[T]()] = name
}

// NameOf returns the registered friendly name for tok, or a placeholder
// rendering "<unknown> {token}" per spec.md §4.1 if none was registered.
func (tn *TypeNames) NameOf(tok TypeToken) string {
	if n, ok := tn.names[tok]; ok {
		return n
	}
	return fmt.Sprintf("<unknown> %s", tok.name)
}

// String renders v using names for its type-appropriate display form.
// Built-ins get their natural Go %v rendering; arrays render as
// "[e1, e2, ...]" recursively; anything else falls back to a generic
// "<TypeName>" form unless it implements fmt.Stringer.
func (v Value) String(names *TypeNames) string {
	switch d := v.data.(type) {
	case Array:
		s := "["
		for i, e := range d.Elems {
			if i > 0 {
				s += ", "
			}
			s += e.String(names)
		}
		return s + "]"
	case Bool:
		if d {
			return "true"
		}
		return "false"
	case Unit:
		return "()"
	case Int, Float, Str, Char:
		return fmt.Sprintf("%v", d)
	case fmt.Stringer:
		return d.String()
	default:
		return "<" + names.NameOf(v.token) + ">"
	}
}

// TypeName is a convenience for v.String's counterpart: the display name of
// v's runtime type.
func (v Value) TypeName(names *TypeNames) string {
	return names.NameOf(v.token)
}
