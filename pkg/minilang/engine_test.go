package minilang

import (
	"errors"
	"strings"
	"testing"

	"github.com/cwbudde/minilang/internal/scope"
	"github.com/cwbudde/minilang/internal/value"
)

func mustEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(opts...)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return e
}

func TestEvaluateArithmetic(t *testing.T) {
	e := mustEngine(t)
	v, err := e.Evaluate("1 + 2 * 3;")
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if got, ok := value.Downcast[value.Int](v); !ok || got != 7 {
		t.Fatalf("want 7, got %#v", v)
	}
}

// TestRegisterFunctionSimple mirrors the teacher pack's "register a Go
// function, call it from script" FFI smoke test.
func TestRegisterFunctionSimple(t *testing.T) {
	e := mustEngine(t)
	if err := e.RegisterFunction("add_numbers", func(a, b int64) int64 { return a + b }); err != nil {
		t.Fatalf("failed to register function: %v", err)
	}

	v, err := e.Evaluate("add_numbers(40, 2);")
	if err != nil {
		t.Fatalf("execution failed: %v", err)
	}
	if got, ok := value.Downcast[value.Int](v); !ok || got != 42 {
		t.Fatalf("want 42, got %#v", v)
	}
}

func TestRegisterFunctionWithError(t *testing.T) {
	e := mustEngine(t)
	err := e.RegisterFunction("divide", func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, errors.New("division by zero")
		}
		return a / b, nil
	})
	if err != nil {
		t.Fatalf("failed to register function: %v", err)
	}

	v, err := e.Evaluate("divide(10, 2);")
	if err != nil {
		t.Fatalf("execution failed: %v", err)
	}
	if got, ok := value.Downcast[value.Int](v); !ok || got != 5 {
		t.Fatalf("want 5, got %#v", v)
	}

	_, err = e.Evaluate("divide(10, 0);")
	if err == nil || !strings.Contains(err.Error(), "division by zero") {
		t.Fatalf("want division-by-zero error, got %v", err)
	}
}

func TestRegisterFunctionArityOverThreeRejected(t *testing.T) {
	e := mustEngine(t)
	err := e.RegisterFunction("four_args", func(a, b, c, d int64) int64 { return a + b + c + d })
	if err == nil {
		t.Fatalf("expected error for a four-parameter RegisterFunction")
	}
}

func TestRegisterFunctionNotAFunction(t *testing.T) {
	e := mustEngine(t)
	if err := e.RegisterFunction("bad", "not a function"); err == nil {
		t.Fatalf("expected error for a non-function value")
	}
}

type accountBalance struct {
	cents int64
}

func TestRegisterTypeAndGetSet(t *testing.T) {
	e := mustEngine(t)
	RegisterType[accountBalance](e, "AccountBalance")
	RegisterGetSet[accountBalance, int64](e, "cents",
		func(recv accountBalance) int64 { return recv.cents },
		func(recv accountBalance, v int64) accountBalance { recv.cents = v; return recv })

	sc := scope.New()
	sc.Push("acct", value.New(accountBalance{cents: 100}))
	v, err := e.EvaluateWithScope("acct.cents = acct.cents + 50; acct.cents;", sc)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if got, ok := value.Downcast[value.Int](v); !ok || got != 150 {
		t.Fatalf("want 150, got %#v", v)
	}
}

func TestWithMaxScriptArityOption(t *testing.T) {
	e := mustEngine(t, WithMaxScriptArity(1))
	_, err := e.Evaluate(`
		fn two(a, b) { return a; }
		two(1, 2);
	`)
	if err == nil {
		t.Fatalf("expected FunctionNotFound: a 2-arity script fn should be rejected under a max arity of 1")
	}
}

func TestArrayRoundTrip(t *testing.T) {
	e := mustEngine(t)
	if err := e.RegisterFunction("evens", func(n []int64) []int64 {
		out := []int64{}
		for _, v := range n {
			if v%2 == 0 {
				out = append(out, v)
			}
		}
		return out
	}); err != nil {
		t.Fatalf("failed to register function: %v", err)
	}

	v, err := e.Evaluate("evens([1, 2, 3, 4, 5, 6]);")
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	arr, ok := value.Downcast[value.Array](v)
	if !ok || arr.Len() != 3 {
		t.Fatalf("want 3-element array, got %#v", v)
	}
}
