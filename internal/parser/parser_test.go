package parser

import (
	"testing"

	"github.com/cwbudde/minilang/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, errs := Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return prog
}

func TestParseLiteralsAndArithmeticPrecedence(t *testing.T) {
	prog := mustParse(t, "1 + 2 * 3;")
	if len(prog.Stmts) != 1 {
		t.Fatalf("want 1 statement, got %d", len(prog.Stmts))
	}
	es, ok := prog.Stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("want ExprStmt, got %T", prog.Stmts[0])
	}
	call, ok := es.X.(*ast.FnCall)
	if !ok || call.Name != "+" {
		t.Fatalf("want top-level '+' call, got %#v", es.X)
	}
	rhs, ok := call.Args[1].(*ast.FnCall)
	if !ok || rhs.Name != "*" {
		t.Fatalf("want '*' nested on the right (precedence), got %#v", call.Args[1])
	}
}

func TestParsePowerIsHigherThanUnary(t *testing.T) {
	prog := mustParse(t, "-5 ~ 2;")
	es := prog.Stmts[0].(*ast.ExprStmt)
	// unary neg wraps the whole power expression: -(5 ~ 2)
	call, ok := es.X.(*ast.FnCall)
	if !ok || call.Name != "neg" {
		t.Fatalf("want outer neg call, got %#v", es.X)
	}
	inner, ok := call.Args[0].(*ast.FnCall)
	if !ok || inner.Name != "~" {
		t.Fatalf("want inner '~' call, got %#v", call.Args[0])
	}
}

func TestParseAssignmentRightAssociative(t *testing.T) {
	prog := mustParse(t, "let a = 1; let b = 1; a = b = 2;")
	es := prog.Stmts[2].(*ast.ExprStmt)
	assign, ok := es.X.(*ast.Assignment)
	if !ok {
		t.Fatalf("want Assignment, got %#v", es.X)
	}
	if _, ok := assign.RHS.(*ast.Assignment); !ok {
		t.Fatalf("want nested assignment on RHS, got %#v", assign.RHS)
	}
}

func TestParseArrayIndexAndDot(t *testing.T) {
	prog := mustParse(t, "a[0].x = a[0].update();")
	es := prog.Stmts[0].(*ast.ExprStmt)
	assign := es.X.(*ast.Assignment)
	dot, ok := assign.LHS.(*ast.Dot)
	if !ok {
		t.Fatalf("want Dot LHS, got %#v", assign.LHS)
	}
	if _, ok := dot.LHS.(*ast.Index); !ok {
		t.Fatalf("want Index root, got %#v", dot.LHS)
	}
}

func TestParseDotChainRightNested(t *testing.T) {
	prog := mustParse(t, "a.b.c;")
	es := prog.Stmts[0].(*ast.ExprStmt)
	outer, ok := es.X.(*ast.Dot)
	if !ok {
		t.Fatalf("want Dot, got %#v", es.X)
	}
	if _, ok := outer.LHS.(*ast.Identifier); !ok {
		t.Fatalf("want Identifier root, got %#v", outer.LHS)
	}
	inner, ok := outer.RHS.(*ast.Dot)
	if !ok {
		t.Fatalf("want nested Dot on the right (a.b.c = Dot(a, Dot(b, c))), got %#v", outer.RHS)
	}
	if id, ok := inner.LHS.(*ast.Identifier); !ok || id.Name != "b" {
		t.Fatalf("want 'b' as the inner Dot's LHS, got %#v", inner.LHS)
	}
	if id, ok := inner.RHS.(*ast.Identifier); !ok || id.Name != "c" {
		t.Fatalf("want 'c' as the inner Dot's RHS, got %#v", inner.RHS)
	}
}

func TestParseIfWhileLoopBreakReturn(t *testing.T) {
	mustParse(t, `
		fn f(x) {
			if x { return 1; } else { return 0; }
		}
		let i = 0;
		while i < 3 { i = i + 1; }
		loop { break; }
		f(1);
	`)
}

func TestParseFnDefArity(t *testing.T) {
	prog := mustParse(t, "fn add(a, b) { return a + b; }")
	if len(prog.FnDefs) != 1 {
		t.Fatalf("want 1 fn def, got %d", len(prog.FnDefs))
	}
	if len(prog.FnDefs[0].Params) != 2 {
		t.Fatalf("want 2 params, got %d", len(prog.FnDefs[0].Params))
	}
}

func TestParseErrorOnMalformedInput(t *testing.T) {
	_, errs := Parse("let = ;")
	if len(errs) == 0 {
		t.Fatalf("expected parse errors")
	}
}

func TestParseUnitLiteral(t *testing.T) {
	prog := mustParse(t, "();")
	es := prog.Stmts[0].(*ast.ExprStmt)
	if _, ok := es.X.(*ast.UnitConst); !ok {
		t.Fatalf("want UnitConst, got %#v", es.X)
	}
}
