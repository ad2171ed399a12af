package evaluator

import (
	"github.com/cwbudde/minilang/internal/ast"
	"github.com/cwbudde/minilang/internal/engerr"
	"github.com/cwbudde/minilang/internal/scope"
	"github.com/cwbudde/minilang/internal/value"
)

// resolveDotRoot resolves the left-hand side of a Dot expression to an owned
// scratch copy plus a write-back closure that stores a (possibly mutated)
// scratch back to its origin — a scope slot or an array cell (spec.md §4.4,
// "Resolve lhs to an owned scratch Value ... write the scratch back into the
// originating storage").
func (ev *Evaluator) resolveDotRoot(lhs ast.Expr, sc *scope.Scope) (value.Value, func(value.Value), error) {
	switch l := lhs.(type) {
	case *ast.Identifier:
		v, ok := sc.Get(l.Name)
		if !ok {
			return value.Value{}, nil, engerr.New(engerr.VariableNotFound, "%s", l.Name)
		}
		name := l.Name
		return v.Clone(), func(nv value.Value) { sc.Set(name, nv) }, nil

	case *ast.Index:
		idxVal, err := ev.evalExpr(l.Index, sc)
		if err != nil {
			return value.Value{}, nil, err
		}
		i, ok := value.Downcast[value.Int](idxVal)
		if !ok {
			return value.Value{}, nil, engerr.New(engerr.IndexMismatch, "index must be an integer")
		}
		arrVal, ok := sc.Get(l.Name)
		if !ok {
			return value.Value{}, nil, engerr.New(engerr.VariableNotFound, "%s", l.Name)
		}
		arr, ok := value.Downcast[value.Array](arrVal)
		if !ok {
			return value.Value{}, nil, engerr.New(engerr.IndexMismatch, "%s is not an array", l.Name)
		}
		if i < 0 || int(i) >= arr.Len() {
			return value.Value{}, nil, engerr.New(engerr.IndexMismatch, "index %d out of range (len %d)", i, arr.Len())
		}
		idx := int(i)
		return arr.Elems[idx].Clone(), func(nv value.Value) { arr.Elems[idx] = nv }, nil

	default:
		return value.Value{}, nil, engerr.New(engerr.InternalErrorMalformedDotExpression, "unsupported dot root shape %T", lhs)
	}
}

// getDot implements spec.md §4.4's get_dot: resolve the root, walk the right
// chain against a mutable scratch, then write the (possibly mutated) scratch
// back to its origin regardless of which hop mutated it.
func (ev *Evaluator) getDot(d *ast.Dot, sc *scope.Scope) (value.Value, error) {
	scratch, writeBack, err := ev.resolveDotRoot(d.LHS, sc)
	if err != nil {
		return value.Value{}, err
	}
	result, newScratch, err := ev.getDotHelper(scratch, d.RHS, sc)
	if err != nil {
		return value.Value{}, err
	}
	writeBack(newScratch)
	return result, nil
}

// getDotHelper walks one hop of the right-hand chain against scratch and
// returns (the hop's result, scratch as it stands after the hop).
func (ev *Evaluator) getDotHelper(scratch value.Value, rhs ast.Expr, sc *scope.Scope) (value.Value, value.Value, error) {
	switch r := rhs.(type) {
	case *ast.Identifier:
		res, err := ev.callByPtrs("get$"+r.Name, []*value.Value{&scratch})
		if err != nil {
			return value.Value{}, value.Value{}, err
		}
		return res, scratch, nil

	case *ast.FnCall:
		args := make([]value.Value, len(r.Args)+1)
		args[0] = scratch
		for i, a := range r.Args {
			v, err := ev.evalExpr(a, sc)
			if err != nil {
				return value.Value{}, value.Value{}, err
			}
			args[i+1] = v
		}
		ptrs := make([]*value.Value, len(args))
		for i := range args {
			ptrs[i] = &args[i]
		}
		res, err := ev.callByPtrs(r.Name, ptrs)
		if err != nil {
			return value.Value{}, value.Value{}, err
		}
		return res, args[0], nil

	case *ast.Index:
		arrVal, err := ev.callByPtrs("get$"+r.Name, []*value.Value{&scratch})
		if err != nil {
			return value.Value{}, value.Value{}, err
		}
		idxVal, err := ev.evalExpr(r.Index, sc)
		if err != nil {
			return value.Value{}, value.Value{}, err
		}
		i, ok := value.Downcast[value.Int](idxVal)
		if !ok {
			return value.Value{}, value.Value{}, engerr.New(engerr.IndexMismatch, "index must be an integer")
		}
		arr, ok := value.Downcast[value.Array](arrVal)
		if !ok {
			return value.Value{}, value.Value{}, engerr.New(engerr.IndexMismatch, "get$%s did not return an array", r.Name)
		}
		if i < 0 || int(i) >= arr.Len() {
			return value.Value{}, value.Value{}, engerr.New(engerr.IndexMismatch, "index %d out of range (len %d)", i, arr.Len())
		}
		return arr.Elems[i].Clone(), scratch, nil

	case *ast.Dot:
		innerLHS, ok := r.LHS.(*ast.Identifier)
		if !ok {
			return value.Value{}, value.Value{}, engerr.New(engerr.InternalErrorMalformedDotExpression, "unsupported dot chain shape")
		}
		u, err := ev.callByPtrs("get$"+innerLHS.Name, []*value.Value{&scratch})
		if err != nil {
			return value.Value{}, value.Value{}, err
		}
		res, _, err := ev.getDotHelper(u, r.RHS, sc)
		if err != nil {
			return value.Value{}, value.Value{}, err
		}
		return res, scratch, nil

	default:
		return value.Value{}, value.Value{}, engerr.New(engerr.InternalErrorMalformedDotExpression, "unsupported dot chain shape %T", rhs)
	}
}

// setDot implements spec.md §4.4's set_dot.
func (ev *Evaluator) setDot(d *ast.Dot, v value.Value, sc *scope.Scope) (value.Value, error) {
	scratch, writeBack, err := ev.resolveDotRoot(d.LHS, sc)
	if err != nil {
		return value.Value{}, err
	}
	newScratch, err := ev.setDotHelper(scratch, d.RHS, v, sc)
	if err != nil {
		return value.Value{}, err
	}
	writeBack(newScratch)
	return v, nil
}

func (ev *Evaluator) setDotHelper(scratch value.Value, rhs ast.Expr, v value.Value, sc *scope.Scope) (value.Value, error) {
	switch r := rhs.(type) {
	case *ast.Identifier:
		if _, err := ev.callByPtrs("set$"+r.Name, []*value.Value{&scratch, &v}); err != nil {
			return value.Value{}, err
		}
		return scratch, nil

	case *ast.Dot:
		innerLHS, ok := r.LHS.(*ast.Identifier)
		if !ok {
			return value.Value{}, engerr.New(engerr.InternalErrorMalformedDotExpression, "unsupported dot chain shape")
		}
		u, err := ev.callByPtrs("get$"+innerLHS.Name, []*value.Value{&scratch})
		if err != nil {
			return value.Value{}, err
		}
		newU, err := ev.setDotHelper(u, r.RHS, v, sc)
		if err != nil {
			return value.Value{}, err
		}
		if _, err := ev.callByPtrs("set$"+innerLHS.Name, []*value.Value{&scratch, &newU}); err != nil {
			return value.Value{}, err
		}
		return scratch, nil

	default:
		return value.Value{}, engerr.New(engerr.InternalErrorMalformedDotExpression, "unsupported dot chain shape %T", rhs)
	}
}
