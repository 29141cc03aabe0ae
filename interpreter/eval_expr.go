package interpreter

import (
	"math"

	"github.com/hc12r/filipeX/ast"
)

func (i *Interpreter) evalExpr(e ast.Expr, env *Environment) (Value, error) {
	switch expr := e.(type) {
	case *ast.IntLiteral:
		return IntValue(expr.Value), nil

	case *ast.FloatLiteral:
		return FloatValue(expr.Value), nil

	case *ast.StringLiteral:
		return StringValue(expr.Value), nil

	case *ast.BoolLiteral:
		return BoolValue(expr.Value), nil

	case *ast.NullLiteral:
		return NullValue(), nil

	case *ast.ArrayLiteral:
		return i.evalArray(expr, env)

	case *ast.Identifier:
		b, ok := env.Resolve(expr.Name)
		if !ok {
			return Value{}, i.errAt(expr.GetSpan(), NameError, "'%s' is not declared", expr.Name)
		}
		return b.Value, nil

	case *ast.AssignExpr:
		// Nested assignments have no value of their own; null stands in.
		if err := i.evalAssign(expr, env); err != nil {
			return Value{}, err
		}
		return NullValue(), nil

	case *ast.CallExpr:
		return i.evalCall(expr, env)

	case *ast.InfixExpr:
		left, err := i.evalExpr(expr.Left, env)
		if err != nil {
			return Value{}, err
		}
		right, err := i.evalExpr(expr.Right, env)
		if err != nil {
			return Value{}, err
		}
		return i.evalInfix(expr, left, right)

	case *ast.PrefixExpr:
		right, err := i.evalExpr(expr.Right, env)
		if err != nil {
			return Value{}, err
		}
		return i.evalPrefix(expr, right)

	case *ast.PostfixExpr:
		left, err := i.evalExpr(expr.Left, env)
		if err != nil {
			return Value{}, err
		}
		if left.Kind != ValInt {
			return Value{}, i.errAt(expr.GetSpan(), TypeError, "operator %s requires int, got %s", expr.Op, TypeOf(left))
		}
		if expr.Op == ast.PostfixIncrement {
			return IntValue(left.Int + 1), nil
		}
		return IntValue(left.Int - 1), nil

	default:
		span, _ := ast.SpanOf(e)
		return Value{}, i.errAt(span, TypeError, "unsupported expression %s", e.NodeKind())
	}
}

func (i *Interpreter) evalArray(expr *ast.ArrayLiteral, env *Environment) (Value, error) {
	elemType := TypeUnknown
	elems := make([]Value, 0, len(expr.Elements))
	for idx, el := range expr.Elements {
		v, err := i.evalExpr(el, env)
		if err != nil {
			return Value{}, err
		}
		tag := TypeOf(v)
		if idx == 0 {
			elemType = tag
		} else if tag != elemType {
			return Value{}, i.errAt(el.GetSpan(), TypeError, "array elements must share one type: expected %s, got %s", elemType, tag)
		}
		elems = append(elems, v)
	}
	return ArrayValue(elems, elemType), nil
}

// evalAssign checks the name, evaluates the right-hand side, then lets the
// owning scope validate the type and mutability.
func (i *Interpreter) evalAssign(expr *ast.AssignExpr, env *Environment) error {
	if !env.IsDeclared(expr.Name) {
		return i.errAt(expr.GetSpan(), NameError, "'%s' is not declared", expr.Name)
	}

	val, err := i.evalExpr(expr.Value, env)
	if err != nil {
		return err
	}

	switch env.Assign(expr.Name, val) {
	case AssignTypeMismatch:
		want, _ := env.TypeOf(expr.Name)
		return i.errAt(expr.Value.GetSpan(), TypeError, "cannot assign mismatched type: '%s' is %s, got %s", expr.Name, want, TypeOf(val))
	case AssignImmutable:
		return i.errAt(expr.GetSpan(), NameError, "'%s' is not assignable", expr.Name)
	case AssignUndeclared:
		return i.errAt(expr.GetSpan(), NameError, "'%s' is not declared", expr.Name)
	}
	return nil
}

func (i *Interpreter) evalCall(call *ast.CallExpr, env *Environment) (Value, error) {
	callee, err := i.evalExpr(call.Callee, env)
	if err != nil {
		return Value{}, err
	}
	if callee.Kind != ValBuiltin && callee.Kind != ValFunction {
		return Value{}, i.errAt(call.Callee.GetSpan(), TypeError, "value of type %s is not callable", TypeOf(callee))
	}

	args := make([]Arg, 0, len(call.Args))
	for _, a := range call.Args {
		v, err := i.evalExpr(a, env)
		if err != nil {
			return Value{}, err
		}
		tag := TypeOf(v)
		if id, ok := a.(*ast.Identifier); ok {
			if stored, ok := env.TypeOf(id.Name); ok {
				tag = stored
			}
		}
		args = append(args, Arg{Value: v, Type: tag})
	}

	if callee.Kind == ValBuiltin {
		i.logger.Debug("builtin", "name", callee.Builtin.Name, "args", describeArgs(args), "caller", i.currentFunction())
		v, err := callee.Builtin.Fn(i.callContext(), args)
		if err != nil {
			return Value{}, i.locate(err, call.GetSpan())
		}
		return v, nil
	}
	return i.callFunction(callee.Func, args, call.GetSpan())
}

// callFunction runs fn in a fresh scope whose parent is the scope fn was
// declared in.
func (i *Interpreter) callFunction(fn *Function, args []Arg, span ast.Span) (Value, error) {
	if len(args) != len(fn.Params) {
		return Value{}, i.errAt(span, ArgumentError, "function '%s' expects %d args but %d were provided", fn.Name, len(fn.Params), len(args))
	}
	if i.frames.Len() >= i.maxDepth {
		return Value{}, i.errAt(span, ValueError, "maximum call depth exceeded (%d)", i.maxDepth)
	}

	scope := NewEnvironment(fn.Env, ScopeFunction)
	for idx, p := range fn.Params {
		arg := args[idx]
		if p.Type != ast.TypeNone {
			if want := TagFromAnnotation(p.Type); want != arg.Type {
				return Value{}, i.errAt(span, TypeError, "argument '%s' of '%s' must be %s, got %s", p.Name, fn.Name, want, arg.Type)
			}
		}
		if !scope.Define(p.Name, arg.Value, TypeOf(arg.Value), true) {
			return Value{}, i.errAt(span, NameError, "'%s' is already declared in this scope", p.Name)
		}
	}

	i.frames.PushBack(&frame{name: fn.Name, span: span})
	defer i.frames.PopBack()
	i.logger.Debug("call", "fn", fn.Name, "depth", i.frames.Len(), "scope", scope.Kind(), "nesting", scope.Depth())

	c, err := i.execBlock(fn.Body, scope)
	if err != nil {
		if rerr, ok := AsRuntimeError(err); ok {
			rerr.Stack = append(rerr.Stack, fn.Name)
		}
		return Value{}, err
	}

	result := NullValue()
	if c.hasValue {
		result = c.value
	}

	switch fn.ReturnType {
	case ast.TypeNone:
		return result, nil
	case ast.TypeVoid:
		return NullValue(), nil
	}
	if want := TagFromAnnotation(fn.ReturnType); want != TypeOf(result) {
		return Value{}, i.errAt(span, TypeError, "function '%s' must return %s, got %s", fn.Name, want, TypeOf(result))
	}
	return result, nil
}

func (i *Interpreter) evalInfix(expr *ast.InfixExpr, left, right Value) (Value, error) {
	lt, rt := TypeOf(left), TypeOf(right)
	if lt != rt {
		return Value{}, i.errAt(expr.GetSpan(), TypeError, "mismatched types for %s: %s and %s", expr.Op, lt, rt)
	}

	switch lt {
	case TypeInt:
		return i.intInfix(expr, left.Int, right.Int)
	case TypeFloat:
		return i.floatInfix(expr, left.Float, right.Float)
	case TypeString:
		switch expr.Op {
		case ast.OpPlus:
			return StringValue(left.Str + right.Str), nil
		case ast.OpEqual:
			return BoolValue(left.Str == right.Str), nil
		case ast.OpNotEqual:
			return BoolValue(left.Str != right.Str), nil
		}
		return Value{}, i.errAt(expr.GetSpan(), TypeError, "operation %s not implemented for type string", expr.Op)
	case TypeBoolean:
		if !expr.Op.IsComparison() {
			return Value{}, i.errAt(expr.GetSpan(), TypeError, "operation %s not implemented for type boolean", expr.Op)
		}
		return compare(expr.Op, boolRank(left.Bool), boolRank(right.Bool)), nil
	default:
		return Value{}, i.errAt(expr.GetSpan(), TypeError, "operation %s not implemented for type %s", expr.Op, lt)
	}
}

// intInfix uses native integer arithmetic. Division or remainder by zero is
// the host's runtime fault and is not turned into a RuntimeError.
func (i *Interpreter) intInfix(expr *ast.InfixExpr, a, b int64) (Value, error) {
	switch expr.Op {
	case ast.OpPlus:
		return IntValue(a + b), nil
	case ast.OpMinus:
		return IntValue(a - b), nil
	case ast.OpMultiply:
		return IntValue(a * b), nil
	case ast.OpDivide:
		return IntValue(a / b), nil
	case ast.OpRemainder:
		return IntValue(a % b), nil
	}
	if expr.Op.IsComparison() {
		return compare(expr.Op, a, b), nil
	}
	return Value{}, i.errAt(expr.GetSpan(), TypeError, "unknown operator %s for type int", expr.Op)
}

func (i *Interpreter) floatInfix(expr *ast.InfixExpr, a, b float64) (Value, error) {
	switch expr.Op {
	case ast.OpPlus:
		return FloatValue(a + b), nil
	case ast.OpMinus:
		return FloatValue(a - b), nil
	case ast.OpMultiply:
		return FloatValue(a * b), nil
	case ast.OpDivide:
		return FloatValue(a / b), nil
	case ast.OpRemainder:
		return FloatValue(math.Mod(a, b)), nil
	}
	if expr.Op.IsComparison() {
		return compare(expr.Op, a, b), nil
	}
	return Value{}, i.errAt(expr.GetSpan(), TypeError, "unknown operator %s for type float", expr.Op)
}

func compare[T int64 | float64](op ast.InfixOp, a, b T) Value {
	switch op {
	case ast.OpEqual:
		return BoolValue(a == b)
	case ast.OpNotEqual:
		return BoolValue(a != b)
	case ast.OpLessThan:
		return BoolValue(a < b)
	case ast.OpLessEqual:
		return BoolValue(a <= b)
	case ast.OpGreaterThan:
		return BoolValue(a > b)
	default:
		return BoolValue(a >= b)
	}
}

func boolRank(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// evalPrefix: `!` only looks at null and booleans, every other value negates
// to false. Unary plus and minus are numeric only.
func (i *Interpreter) evalPrefix(expr *ast.PrefixExpr, right Value) (Value, error) {
	switch expr.Op {
	case ast.PrefixNot:
		switch right.Kind {
		case ValNull:
			return BoolValue(true), nil
		case ValBool:
			return BoolValue(!right.Bool), nil
		default:
			return BoolValue(false), nil
		}

	case ast.PrefixPlus, ast.PrefixMinus:
		neg := expr.Op == ast.PrefixMinus
		switch right.Kind {
		case ValInt:
			if neg {
				return IntValue(-right.Int), nil
			}
			return right, nil
		case ValFloat:
			if neg {
				return FloatValue(-right.Float), nil
			}
			return right, nil
		}
		return Value{}, i.errAt(expr.GetSpan(), TypeError, "unary %s not supported for type %s", expr.Op, TypeOf(right))

	default:
		return Value{}, i.errAt(expr.GetSpan(), TypeError, "unknown prefix operator %s", expr.Op)
	}
}
