package interpreter

import "github.com/hc12r/filipeX/ast"

// completion is the outcome of a statement or block. returning marks a
// `return` that is still unwinding toward its function boundary.
type completion struct {
	value     Value
	hasValue  bool
	returning bool
}

func normal(v Value) completion { return completion{value: v, hasValue: true} }

func (i *Interpreter) execStmt(s ast.Stmt, env *Environment) (completion, error) {
	switch stmt := s.(type) {
	case *ast.LetStmt:
		return completion{}, i.execLet(stmt, env)

	case *ast.FunctionDecl:
		if env.Has(stmt.Name) {
			return completion{}, i.errAt(stmt.GetSpan(), NameError, "'%s' is already declared in this scope", stmt.Name)
		}
		seen := make(map[string]bool, len(stmt.Params))
		for _, p := range stmt.Params {
			if seen[p.Name] {
				return completion{}, i.errAt(stmt.GetSpan(), NameError, "'%s' is already declared in this scope", p.Name)
			}
			seen[p.Name] = true
		}
		fn := &Function{
			Name:       stmt.Name,
			Params:     stmt.Params,
			Body:       stmt.Body,
			ReturnType: stmt.ReturnType,
			Env:        env,
		}
		env.Define(stmt.Name, FunctionValue(fn), TypeFunction, false)
		return completion{}, nil

	case *ast.ReturnStmt:
		val := NullValue()
		if stmt.Value != nil {
			v, err := i.evalExpr(stmt.Value, env)
			if err != nil {
				return completion{}, err
			}
			val = v
		}
		return completion{value: val, hasValue: true, returning: true}, nil

	case *ast.ExprStmt:
		if assign, ok := stmt.Expr.(*ast.AssignExpr); ok {
			return completion{}, i.evalAssign(assign, env)
		}
		v, err := i.evalExpr(stmt.Expr, env)
		if err != nil {
			return completion{}, err
		}
		return normal(v), nil

	case *ast.IfStmt:
		cond, err := i.evalExpr(stmt.Condition, env)
		if err != nil {
			return completion{}, err
		}
		if isTruthy(cond) {
			return i.execBlock(stmt.Then, NewEnvironment(env, ScopeIfElse))
		}
		if stmt.Else != nil {
			return i.execBlock(stmt.Else, NewEnvironment(env, ScopeIfElse))
		}
		return completion{}, nil

	case *ast.ForStmt:
		return i.execFor(stmt, env)

	default:
		span, _ := ast.SpanOf(s)
		return completion{}, i.errAt(span, TypeError, "unsupported statement %s", s.NodeKind())
	}
}

// execBlock runs stmts in env and yields the completion of the last one. A
// returning completion stops the block early.
func (i *Interpreter) execBlock(stmts []ast.Stmt, env *Environment) (completion, error) {
	var last completion
	for _, s := range stmts {
		c, err := i.execStmt(s, env)
		if err != nil {
			return completion{}, err
		}
		if c.returning {
			return c, nil
		}
		last = c
	}
	return last, nil
}

func (i *Interpreter) execLet(stmt *ast.LetStmt, env *Environment) error {
	val, err := i.evalExpr(stmt.Value, env)
	if err != nil {
		return err
	}

	tag := TypeOf(val)
	if stmt.Type != ast.TypeNone {
		if want := TagFromAnnotation(stmt.Type); want != tag {
			return i.errAt(stmt.Value.GetSpan(), TypeError, "cannot initialize '%s' of type %s with a value of type %s", stmt.Name, want, tag)
		}
	}

	if !env.Define(stmt.Name, val, tag, !stmt.Const) {
		return i.errAt(stmt.GetSpan(), NameError, "'%s' is already declared in this scope", stmt.Name)
	}
	return nil
}

// execFor binds the cursor once in a loop scope and runs the body in a fresh
// block scope per iteration. The iteration count is fixed before the first
// pass; the cursor advances by step from whatever value the body left in it.
// The count is ceil((end-start)/step) rather than end-start, so a step other
// than 1 runs the body once per value the range yields.
func (i *Interpreter) execFor(stmt *ast.ForStmt, env *Environment) (completion, error) {
	iter, err := i.evalExpr(stmt.Iterable, env)
	if err != nil {
		return completion{}, err
	}
	if iter.Kind != ValRange {
		return completion{}, i.errAt(stmt.Iterable.GetSpan(), TypeError, "for loop works only with range, got %s", TypeOf(iter))
	}
	rng := iter.Rng
	if rng.Step == 0 {
		return completion{}, i.errAt(stmt.Iterable.GetSpan(), ValueError, "range step cannot be zero")
	}

	loop := NewEnvironment(env, ScopeLoop)
	loop.Define(stmt.Cursor, IntValue(rng.Start), TypeInt, true)

	count := rng.Len()
	for n := uint64(0); n < count; n++ {
		c, err := i.execBlock(stmt.Body, NewEnvironment(loop, ScopeBlock))
		if err != nil {
			return completion{}, err
		}
		if c.returning {
			return c, nil
		}

		cur, _ := loop.Resolve(stmt.Cursor)
		loop.Assign(stmt.Cursor, IntValue(cur.Value.Int+rng.Step))
	}
	return completion{}, nil
}

// isTruthy: null, false and numeric zero are false; everything else is true.
func isTruthy(v Value) bool {
	switch v.Kind {
	case ValNull:
		return false
	case ValBool:
		return v.Bool
	case ValInt:
		return v.Int != 0
	case ValFloat:
		return v.Float != 0
	default:
		return true
	}
}
