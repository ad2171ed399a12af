// Package evaluator implements the tree-walking interpreter of spec.md §5:
// given a parsed Program and a Scope, it executes statements and evaluates
// expressions directly against the AST, with no intermediate bytecode.
//
// Grounded on the teacher's internal/interp tree-walking core, narrowed here
// to the spec's expression-oriented semantics (no classes, no units, no
// bytecode compilation pass).
package evaluator

import (
	"github.com/cwbudde/minilang/internal/ast"
	"github.com/cwbudde/minilang/internal/engerr"
	"github.com/cwbudde/minilang/internal/registry"
	"github.com/cwbudde/minilang/internal/scope"
	"github.com/cwbudde/minilang/internal/value"
)

// Evaluator holds the two pieces of state shared across an entire script
// evaluation: the function registry and the type-name table. It carries no
// scope of its own — every entry point takes an explicit *scope.Scope, so
// one Evaluator can safely run several independent scopes (spec.md §5,
// "a Scope is exclusively owned by one evaluation").
type Evaluator struct {
	Reg   *registry.Registry
	Names *value.TypeNames

	// MaxScriptArity caps how many parameters a script-defined function may
	// declare before RegisterScriptFn starts silently discarding it (spec.md
	// §4.1). Defaults to 6; the embedding API exposes this as an Option.
	MaxScriptArity int
}

// DefaultMaxScriptArity is the dispatcher's built-in parameter-count cap
// absent an explicit override.
const DefaultMaxScriptArity = 6

// New creates an Evaluator over the given registry and type-name table.
func New(reg *registry.Registry, names *value.TypeNames) *Evaluator {
	return &Evaluator{Reg: reg, Names: names, MaxScriptArity: DefaultMaxScriptArity}
}

// Run registers every function definition found anywhere in prog (spec.md
// §5: "before executing any statement, register every FnDef in the program
// with the registry"), then executes prog.Stmts in order. If the final
// top-level statement is a bare expression statement, its value is the
// overall result; otherwise the result is Unit. A stray break or return
// reaching this outermost level — there being no enclosing loop or function
// call — is treated as an implicit function-call boundary: break yields
// Unit, return yields its carried value.
func (ev *Evaluator) Run(prog *ast.Program, sc *scope.Scope) (value.Value, error) {
	for _, def := range prog.FnDefs {
		_ = ev.RegisterScriptFn(def)
	}

	result := value.UnitValue
	for i, stmt := range prog.Stmts {
		if es, ok := stmt.(*ast.ExprStmt); ok {
			v, err := ev.evalExpr(es.X, sc)
			if err != nil {
				if isBreak(err) {
					return value.UnitValue, nil
				}
				if rs, ok := asReturn(err); ok {
					return rs.Value, nil
				}
				return value.Value{}, err
			}
			if i == len(prog.Stmts)-1 {
				result = v
			}
			continue
		}

		if err := ev.execStmt(stmt, sc); err != nil {
			if isBreak(err) {
				return value.UnitValue, nil
			}
			if rs, ok := asReturn(err); ok {
				return rs.Value, nil
			}
			return value.Value{}, err
		}
		if i == len(prog.Stmts)-1 {
			result = value.UnitValue
		}
	}
	return result, nil
}

// execStmt executes one statement. A non-nil error is either a genuine
// *engerr.Error or one of the internal control signals (control.go), which
// the caller (a loop, callScript, or Run) is responsible for catching.
func (ev *Evaluator) execStmt(stmt ast.Stmt, sc *scope.Scope) error {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		_, err := ev.evalExpr(s.X, sc)
		return err

	case *ast.Block:
		mark := sc.Len()
		defer sc.Truncate(mark)
		for _, inner := range s.Stmts {
			if err := ev.execStmt(inner, sc); err != nil {
				return err
			}
		}
		return nil

	case *ast.If:
		cond, err := ev.evalBoolCond(s.Cond, sc)
		if err != nil {
			return err
		}
		if cond {
			return ev.execStmt(s.Body, sc)
		}
		return nil

	case *ast.IfElse:
		cond, err := ev.evalBoolCond(s.Cond, sc)
		if err != nil {
			return err
		}
		if cond {
			return ev.execStmt(s.Body, sc)
		}
		return ev.execStmt(s.ElseBody, sc)

	case *ast.While:
		for {
			cond, err := ev.evalBoolCond(s.Cond, sc)
			if err != nil {
				return err
			}
			if !cond {
				return nil
			}
			if err := ev.execStmt(s.Body, sc); err != nil {
				if isBreak(err) {
					return nil
				}
				return err
			}
		}

	case *ast.Loop:
		for {
			if err := ev.execStmt(s.Body, sc); err != nil {
				if isBreak(err) {
					return nil
				}
				return err
			}
		}

	case *ast.Break:
		return breakSignal{}

	case *ast.Return:
		return returnSignal{Value: value.UnitValue}

	case *ast.ReturnWithVal:
		v, err := ev.evalExpr(s.Value, sc)
		if err != nil {
			return err
		}
		return returnSignal{Value: v}

	case *ast.Var:
		v := value.UnitValue
		if s.Init != nil {
			var err error
			v, err = ev.evalExpr(s.Init, sc)
			if err != nil {
				return err
			}
		}
		sc.Push(s.Name, v)
		return nil

	default:
		return engerr.New(engerr.InternalErrorMalformedDotExpression, "unsupported statement %T", stmt)
	}
}

// evalBoolCond evaluates cond and requires it to be Bool, per spec.md §7's
// IfGuardMismatch ("an if/while condition did not evaluate to Bool").
func (ev *Evaluator) evalBoolCond(cond ast.Expr, sc *scope.Scope) (bool, error) {
	v, err := ev.evalExpr(cond, sc)
	if err != nil {
		return false, err
	}
	b, ok := value.Downcast[value.Bool](v)
	if !ok {
		return false, engerr.New(engerr.IfGuardMismatch, "condition evaluated to %s, expected Bool", v.TypeName(ev.Names))
	}
	return b, nil
}

// evalExpr evaluates one expression node to a Value.
func (ev *Evaluator) evalExpr(expr ast.Expr, sc *scope.Scope) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.IntConst:
		return value.New[value.Int](e.Value), nil
	case *ast.FloatConst:
		return value.New[value.Float](e.Value), nil
	case *ast.StringConst:
		return value.New[value.Str](e.Value), nil
	case *ast.CharConst:
		return value.New[value.Char](e.Value), nil
	case *ast.BoolConst:
		return value.New[value.Bool](e.Value), nil
	case *ast.UnitConst:
		return value.UnitValue, nil

	case *ast.Identifier:
		v, ok := sc.Get(e.Name)
		if !ok {
			return value.Value{}, engerr.New(engerr.VariableNotFound, "%s", e.Name)
		}
		return v.Clone(), nil

	case *ast.Index:
		arrVal, ok := sc.Get(e.Name)
		if !ok {
			return value.Value{}, engerr.New(engerr.VariableNotFound, "%s", e.Name)
		}
		arr, ok := value.Downcast[value.Array](arrVal)
		if !ok {
			return value.Value{}, engerr.New(engerr.IndexMismatch, "%s is not an array", e.Name)
		}
		idxVal, err := ev.evalExpr(e.Index, sc)
		if err != nil {
			return value.Value{}, err
		}
		i, ok := value.Downcast[value.Int](idxVal)
		if !ok {
			return value.Value{}, engerr.New(engerr.IndexMismatch, "index must be an integer")
		}
		if i < 0 || int(i) >= arr.Len() {
			return value.Value{}, engerr.New(engerr.IndexMismatch, "index %d out of range (len %d)", i, arr.Len())
		}
		return arr.Elems[i].Clone(), nil

	case *ast.ArrayLit:
		elems := make([]value.Value, len(e.Elements))
		for i, el := range e.Elements {
			v, err := ev.evalExpr(el, sc)
			if err != nil {
				return value.Value{}, err
			}
			elems[i] = v
		}
		return value.NewArray(elems), nil

	case *ast.FnCall:
		args := make([]value.Value, len(e.Args))
		for i, a := range e.Args {
			v, err := ev.evalExpr(a, sc)
			if err != nil {
				return value.Value{}, err
			}
			args[i] = v
		}
		return ev.dispatchCall(e.Name, args)

	case *ast.Dot:
		return ev.getDot(e, sc)

	case *ast.Assignment:
		return ev.evalAssignment(e, sc)

	default:
		return value.Value{}, engerr.New(engerr.InternalErrorMalformedDotExpression, "unsupported expression %T", expr)
	}
}

// evalAssignment implements the three assignable lhs shapes of spec.md
// §4.4: a bare identifier, an array index, and a dot chain. Any other lhs
// shape is AssignmentToUnknownLHS.
func (ev *Evaluator) evalAssignment(a *ast.Assignment, sc *scope.Scope) (value.Value, error) {
	switch lhs := a.LHS.(type) {
	case *ast.Identifier:
		v, err := ev.evalExpr(a.RHS, sc)
		if err != nil {
			return value.Value{}, err
		}
		if !sc.Set(lhs.Name, v) {
			return value.Value{}, engerr.New(engerr.AssignmentToUnknownLHS, "%s", lhs.Name)
		}
		return v, nil

	case *ast.Index:
		arrVal, ok := sc.Get(lhs.Name)
		if !ok {
			return value.Value{}, engerr.New(engerr.VariableNotFound, "%s", lhs.Name)
		}
		arr, ok := value.Downcast[value.Array](arrVal)
		if !ok {
			return value.Value{}, engerr.New(engerr.IndexMismatch, "%s is not an array", lhs.Name)
		}
		idxVal, err := ev.evalExpr(lhs.Index, sc)
		if err != nil {
			return value.Value{}, err
		}
		i, ok := value.Downcast[value.Int](idxVal)
		if !ok {
			return value.Value{}, engerr.New(engerr.IndexMismatch, "index must be an integer")
		}
		if i < 0 || int(i) >= arr.Len() {
			return value.Value{}, engerr.New(engerr.IndexMismatch, "index %d out of range (len %d)", i, arr.Len())
		}
		v, err := ev.evalExpr(a.RHS, sc)
		if err != nil {
			return value.Value{}, err
		}
		arr.Elems[i] = v
		return v, nil

	case *ast.Dot:
		v, err := ev.evalExpr(a.RHS, sc)
		if err != nil {
			return value.Value{}, err
		}
		return ev.setDot(lhs, v, sc)

	default:
		return value.Value{}, engerr.New(engerr.AssignmentToUnknownLHS, "unsupported assignment target %T", a.LHS)
	}
}
