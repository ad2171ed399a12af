package evaluator

import (
	"testing"

	"github.com/cwbudde/minilang/internal/engerr"
	"github.com/cwbudde/minilang/internal/parser"
	"github.com/cwbudde/minilang/internal/registry"
	"github.com/cwbudde/minilang/internal/scope"
	"github.com/cwbudde/minilang/internal/value"
)

func newTestEvaluator() *Evaluator {
	reg := registry.New()
	names := value.NewTypeNames()
	RegisterDefaults(reg, names)
	return New(reg, names)
}

func run(t *testing.T, src string) (value.Value, error) {
	t.Helper()
	ev := newTestEvaluator()
	prog, errs := parser.Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return ev.Run(prog, scope.New())
}

func runWithEvaluator(t *testing.T, ev *Evaluator, src string) (value.Value, error) {
	t.Helper()
	prog, errs := parser.Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return ev.Run(prog, scope.New())
}

func mustInt(t *testing.T, v value.Value, err error) value.Int {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i, ok := value.Downcast[value.Int](v)
	if !ok {
		t.Fatalf("want Int, got %#v", v)
	}
	return i
}

func TestArithmeticPrecedence(t *testing.T) {
	v, err := run(t, "1 + 2 * 3;")
	if got := mustInt(t, v, err); got != 7 {
		t.Fatalf("want 7, got %d", got)
	}
}

func TestVariableShadowingInBlock(t *testing.T) {
	v, err := run(t, `
		let x = 1;
		{
			let x = 2;
		}
		x;
	`)
	if got := mustInt(t, v, err); got != 1 {
		t.Fatalf("inner let x should not leak out, want 1, got %d", got)
	}
}

func TestWhileLoopAndBreak(t *testing.T) {
	v, err := run(t, `
		let i = 0;
		let sum = 0;
		while true {
			if i >= 5 { break; }
			sum = sum + i;
			i = i + 1;
		}
		sum;
	`)
	if got := mustInt(t, v, err); got != 10 {
		t.Fatalf("want 10, got %d", got)
	}
}

func TestLoopWithReturnEscapesToTopLevel(t *testing.T) {
	v, err := run(t, `
		loop {
			return 42;
		}
	`)
	if got := mustInt(t, v, err); got != 42 {
		t.Fatalf("want stray top-level return to yield 42, got %d", got)
	}
}

func TestScriptFunctionCallAndRecursion(t *testing.T) {
	v, err := run(t, `
		fn fact(n) {
			if n <= 1 { return 1; }
			return n * fact(n - 1);
		}
		fact(5);
	`)
	if got := mustInt(t, v, err); got != 120 {
		t.Fatalf("want 120, got %d", got)
	}
}

func TestArrayIndexReadAndAssign(t *testing.T) {
	v, err := run(t, `
		let a = [1, 2, 3];
		a[1] = 99;
		a[1];
	`)
	if got := mustInt(t, v, err); got != 99 {
		t.Fatalf("want 99, got %d", got)
	}
}

func TestArrayCloneOnAssignDoesNotAlias(t *testing.T) {
	v, err := run(t, `
		let a = [1, 2, 3];
		let b = a;
		b[0] = 100;
		a[0];
	`)
	if got := mustInt(t, v, err); got != 1 {
		t.Fatalf("assigning b := a must clone; mutating b must not affect a, got %d", got)
	}
}

func TestIfGuardMismatchError(t *testing.T) {
	_, err := run(t, `if 1 { 2; }`)
	if !engerr.Is(err, engerr.IfGuardMismatch) {
		t.Fatalf("want IfGuardMismatch, got %v", err)
	}
}

func TestVariableNotFoundError(t *testing.T) {
	_, err := run(t, `missing_var;`)
	if !engerr.Is(err, engerr.VariableNotFound) {
		t.Fatalf("want VariableNotFound, got %v", err)
	}
}

func TestFunctionNotFoundError(t *testing.T) {
	_, err := run(t, `no_such_function(1, 2);`)
	if !engerr.Is(err, engerr.FunctionNotFound) {
		t.Fatalf("want FunctionNotFound, got %v", err)
	}
}

func TestIndexOutOfRangeError(t *testing.T) {
	_, err := run(t, `let a = [1]; a[5];`)
	if !engerr.Is(err, engerr.IndexMismatch) {
		t.Fatalf("want IndexMismatch, got %v", err)
	}
}

func TestIntegerDivisionByZeroError(t *testing.T) {
	_, err := run(t, `1 / 0;`)
	if !engerr.Is(err, engerr.FunctionCallNotSupported) {
		t.Fatalf("want FunctionCallNotSupported, got %v", err)
	}
}

func TestAssignmentToUnknownVariableError(t *testing.T) {
	_, err := run(t, `x = 1;`)
	if !engerr.Is(err, engerr.AssignmentToUnknownLHS) {
		t.Fatalf("want AssignmentToUnknownLHS, got %v", err)
	}
}

func TestScriptFunctionOverArityIsIgnoredAtRegistration(t *testing.T) {
	ev := newTestEvaluator()
	ev.MaxScriptArity = 2
	_, err := runWithEvaluator(t, ev, `
		fn tooMany(a, b, c) { return a; }
		tooMany(1, 2, 3);
	`)
	if !engerr.Is(err, engerr.FunctionNotFound) {
		t.Fatalf("over-arity script fn should never register, want FunctionNotFound, got %v", err)
	}
}

func TestDotProtocolGetSetAndWriteback(t *testing.T) {
	ev := newTestEvaluator()
	type point struct{ X, Y value.Int }
	ev.Reg.RegisterNative("get$x", []value.TypeToken{value.TokenOf[point]()}, ev.Names, &registry.NativeFn{
		Arity: 1,
		Fn: func(args []*value.Value) (value.Value, error) {
			p := value.MustDowncast[point](*args[0])
			return value.New(p.X), nil
		},
	})
	ev.Reg.RegisterNative("set$x", []value.TypeToken{value.TokenOf[point](), value.TokenOf[value.Int]()}, ev.Names, &registry.NativeFn{
		Arity: 2,
		Fn: func(args []*value.Value) (value.Value, error) {
			p := value.MustDowncast[point](*args[0])
			p.X = value.MustDowncast[value.Int](*args[1])
			*args[0] = value.New(p)
			return value.UnitValue, nil
		},
	})

	sc := scope.New()
	sc.Push("p", value.New(point{X: 1, Y: 2}))

	prog, errs := parser.Parse(`p.x = 41; p.x;`)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	v, err := ev.Run(prog, sc)
	if got := mustInt(t, v, err); got != 41 {
		t.Fatalf("want 41, got %d", got)
	}

	stored, _ := sc.Get("p")
	if got := value.MustDowncast[point](stored).X; got != 41 {
		t.Fatalf("setter write-back should update the scope slot, got %d", got)
	}
}

func TestComparisonsAcrossScalarTypes(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{`1 < 2;`, true},
		{`2.5 >= 2.5;`, true},
		{`"abc" < "abd";`, true},
		{`'a' == 'a';`, true},
		{`true != false;`, true},
		{`() == ();`, true},
	}
	for _, c := range cases {
		v, err := run(t, c.src)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", c.src, err)
		}
		b, ok := value.Downcast[value.Bool](v)
		if !ok || b != c.want {
			t.Fatalf("%q: want %v, got %#v", c.src, c.want, v)
		}
	}
}
