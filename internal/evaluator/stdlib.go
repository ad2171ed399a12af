package evaluator

import (
	"math"

	"github.com/cwbudde/minilang/internal/engerr"
	"github.com/cwbudde/minilang/internal/registry"
	"github.com/cwbudde/minilang/internal/value"
)

// RegisterDefaults installs the built-in type names and operator functions
// that every minilang program can rely on: the scalar type names of spec.md
// §3, and the arithmetic/comparison/logical operators that `+`, `==`, `&&`
// and friends desugar to (internal/parser's binOpName table). Grounded on
// the teacher's default-environment bootstrap (internal/interp's standard
// FFI registration pass), generalized to the registry's typed-signature
// dispatch instead of a single global symbol table.
func RegisterDefaults(reg *registry.Registry, names *value.TypeNames) {
	value.Register[value.Int](names, "Int")
	value.Register[value.Float](names, "Float")
	value.Register[value.Str](names, "Str")
	value.Register[value.Char](names, "Char")
	value.Register[value.Bool](names, "Bool")
	value.Register[value.Unit](names, "Unit")
	value.Register[value.Array](names, "Array")

	registerArithmetic(reg, names)
	registerBitwise(reg, names)
	registerComparisons(reg, names)
	registerLogical(reg, names)
	registerLocale(reg, names)
}

func binType[A, B any]() []value.TypeToken {
	return []value.TypeToken{value.TokenOf[A](), value.TokenOf[B]()}
}

func reg2[A, B any](r *registry.Registry, names *value.TypeNames, name string, fn func(a A, b B) (value.Value, error)) {
	r.RegisterNative(name, binType[A, B](), names, &registry.NativeFn{
		Arity: 2,
		Fn: func(args []*value.Value) (value.Value, error) {
			a, _ := value.Downcast[A](*args[0])
			b, _ := value.Downcast[B](*args[1])
			return fn(a, b)
		},
	})
}

func reg1[A any](r *registry.Registry, names *value.TypeNames, name string, fn func(a A) (value.Value, error)) {
	r.RegisterNative(name, []value.TypeToken{value.TokenOf[A]()}, names, &registry.NativeFn{
		Arity: 1,
		Fn: func(args []*value.Value) (value.Value, error) {
			a, _ := value.Downcast[A](*args[0])
			return fn(a)
		},
	})
}

func ok(v value.Value) (value.Value, error) { return v, nil }

// intPow raises base to exp (exp >= 0) using exact int64 repeated squaring,
// never round-tripping through float64 — grounded on Rhai's pow_i64_i64,
// which casts the exponent to u32 and computes the power natively
// (original_source/rhai/src/engine.rs:888-889).
func intPow(base, exp value.Int) value.Int {
	result := value.Int(1)
	b := base
	for e := exp; e > 0; e >>= 1 {
		if e&1 == 1 {
			result *= b
		}
		b *= b
	}
	return result
}

func registerArithmetic(r *registry.Registry, names *value.TypeNames) {
	reg2[value.Int, value.Int](r, names, "+", func(a, b value.Int) (value.Value, error) { return ok(value.New(a + b)) })
	reg2[value.Int, value.Int](r, names, "-", func(a, b value.Int) (value.Value, error) { return ok(value.New(a - b)) })
	reg2[value.Int, value.Int](r, names, "*", func(a, b value.Int) (value.Value, error) { return ok(value.New(a * b)) })
	reg2[value.Int, value.Int](r, names, "/", func(a, b value.Int) (value.Value, error) {
		if b == 0 {
			return value.Value{}, engerr.New(engerr.FunctionCallNotSupported, "integer division by zero")
		}
		return ok(value.New(a / b))
	})
	reg2[value.Int, value.Int](r, names, "%", func(a, b value.Int) (value.Value, error) {
		if b == 0 {
			return value.Value{}, engerr.New(engerr.FunctionCallNotSupported, "integer modulo by zero")
		}
		return ok(value.New(a % b))
	})
	reg1[value.Int](r, names, "neg", func(a value.Int) (value.Value, error) { return ok(value.New(-a)) })
	reg2[value.Int, value.Int](r, names, "~", func(a, b value.Int) (value.Value, error) {
		if b < 0 {
			return value.Value{}, engerr.New(engerr.FunctionCallNotSupported, "power exponent must be non-negative")
		}
		return ok(value.New(intPow(a, b)))
	})

	reg2[value.Float, value.Float](r, names, "+", func(a, b value.Float) (value.Value, error) { return ok(value.New(a + b)) })
	reg2[value.Float, value.Float](r, names, "-", func(a, b value.Float) (value.Value, error) { return ok(value.New(a - b)) })
	reg2[value.Float, value.Float](r, names, "*", func(a, b value.Float) (value.Value, error) { return ok(value.New(a * b)) })
	reg2[value.Float, value.Float](r, names, "/", func(a, b value.Float) (value.Value, error) {
		if b == 0 {
			return value.Value{}, engerr.New(engerr.FunctionCallNotSupported, "float division by zero")
		}
		return ok(value.New(a / b))
	})
	reg1[value.Float](r, names, "neg", func(a value.Float) (value.Value, error) { return ok(value.New(-a)) })
	reg2[value.Float, value.Float](r, names, "~", func(a, b value.Float) (value.Value, error) {
		return ok(value.New(math.Pow(a, b)))
	})

	reg2[value.Str, value.Str](r, names, "+", func(a, b value.Str) (value.Value, error) { return ok(value.New(a + b)) })
}

func registerBitwise(r *registry.Registry, names *value.TypeNames) {
	reg2[value.Int, value.Int](r, names, "&", func(a, b value.Int) (value.Value, error) { return ok(value.New(a & b)) })
	reg2[value.Int, value.Int](r, names, "|", func(a, b value.Int) (value.Value, error) { return ok(value.New(a | b)) })
	reg2[value.Int, value.Int](r, names, "^", func(a, b value.Int) (value.Value, error) { return ok(value.New(a ^ b)) })
	reg2[value.Int, value.Int](r, names, "<<", func(a, b value.Int) (value.Value, error) { return ok(value.New(a << uint(b))) })
	reg2[value.Int, value.Int](r, names, ">>", func(a, b value.Int) (value.Value, error) { return ok(value.New(a >> uint(b))) })
}

func registerComparisons(r *registry.Registry, names *value.TypeNames) {
	reg2[value.Int, value.Int](r, names, "==", func(a, b value.Int) (value.Value, error) { return ok(value.New(a == b)) })
	reg2[value.Int, value.Int](r, names, "!=", func(a, b value.Int) (value.Value, error) { return ok(value.New(a != b)) })
	reg2[value.Int, value.Int](r, names, "<", func(a, b value.Int) (value.Value, error) { return ok(value.New(a < b)) })
	reg2[value.Int, value.Int](r, names, "<=", func(a, b value.Int) (value.Value, error) { return ok(value.New(a <= b)) })
	reg2[value.Int, value.Int](r, names, ">", func(a, b value.Int) (value.Value, error) { return ok(value.New(a > b)) })
	reg2[value.Int, value.Int](r, names, ">=", func(a, b value.Int) (value.Value, error) { return ok(value.New(a >= b)) })

	reg2[value.Float, value.Float](r, names, "==", func(a, b value.Float) (value.Value, error) { return ok(value.New(a == b)) })
	reg2[value.Float, value.Float](r, names, "!=", func(a, b value.Float) (value.Value, error) { return ok(value.New(a != b)) })
	reg2[value.Float, value.Float](r, names, "<", func(a, b value.Float) (value.Value, error) { return ok(value.New(a < b)) })
	reg2[value.Float, value.Float](r, names, "<=", func(a, b value.Float) (value.Value, error) { return ok(value.New(a <= b)) })
	reg2[value.Float, value.Float](r, names, ">", func(a, b value.Float) (value.Value, error) { return ok(value.New(a > b)) })
	reg2[value.Float, value.Float](r, names, ">=", func(a, b value.Float) (value.Value, error) { return ok(value.New(a >= b)) })

	reg2[value.Str, value.Str](r, names, "==", func(a, b value.Str) (value.Value, error) { return ok(value.New(a == b)) })
	reg2[value.Str, value.Str](r, names, "!=", func(a, b value.Str) (value.Value, error) { return ok(value.New(a != b)) })
	reg2[value.Str, value.Str](r, names, "<", func(a, b value.Str) (value.Value, error) { return ok(value.New(a < b)) })
	reg2[value.Str, value.Str](r, names, "<=", func(a, b value.Str) (value.Value, error) { return ok(value.New(a <= b)) })
	reg2[value.Str, value.Str](r, names, ">", func(a, b value.Str) (value.Value, error) { return ok(value.New(a > b)) })
	reg2[value.Str, value.Str](r, names, ">=", func(a, b value.Str) (value.Value, error) { return ok(value.New(a >= b)) })

	reg2[value.Bool, value.Bool](r, names, "==", func(a, b value.Bool) (value.Value, error) { return ok(value.New(a == b)) })
	reg2[value.Bool, value.Bool](r, names, "!=", func(a, b value.Bool) (value.Value, error) { return ok(value.New(a != b)) })

	reg2[value.Char, value.Char](r, names, "==", func(a, b value.Char) (value.Value, error) { return ok(value.New(a == b)) })
	reg2[value.Char, value.Char](r, names, "!=", func(a, b value.Char) (value.Value, error) { return ok(value.New(a != b)) })
	reg2[value.Char, value.Char](r, names, "<", func(a, b value.Char) (value.Value, error) { return ok(value.New(a < b)) })
	reg2[value.Char, value.Char](r, names, "<=", func(a, b value.Char) (value.Value, error) { return ok(value.New(a <= b)) })
	reg2[value.Char, value.Char](r, names, ">", func(a, b value.Char) (value.Value, error) { return ok(value.New(a > b)) })
	reg2[value.Char, value.Char](r, names, ">=", func(a, b value.Char) (value.Value, error) { return ok(value.New(a >= b)) })

	reg2[value.Unit, value.Unit](r, names, "==", func(a, b value.Unit) (value.Value, error) { return ok(value.New(true)) })
	reg2[value.Unit, value.Unit](r, names, "!=", func(a, b value.Unit) (value.Value, error) { return ok(value.New(false)) })
}

func registerLogical(r *registry.Registry, names *value.TypeNames) {
	reg2[value.Bool, value.Bool](r, names, "&&", func(a, b value.Bool) (value.Value, error) { return ok(value.New(a && b)) })
	reg2[value.Bool, value.Bool](r, names, "||", func(a, b value.Bool) (value.Value, error) { return ok(value.New(a || b)) })
	reg1[value.Bool](r, names, "!", func(a value.Bool) (value.Value, error) { return ok(value.New(!a)) })
}
