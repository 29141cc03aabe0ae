package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hc12r/filipeX/ast"
)

func TestTypeOf(t *testing.T) {
	tests := []struct {
		value Value
		want  TypeTag
	}{
		{NullValue(), TypeNull},
		{IntValue(1), TypeInt},
		{FloatValue(1), TypeFloat},
		{StringValue(""), TypeString},
		{BoolValue(false), TypeBoolean},
		{BuiltinValue(&Builtin{Name: "print"}), TypeFunction},
		{FunctionValue(&Function{Name: "f"}), TypeFunction},
		{RangeValue(0, 1, 1), TypeRange},
		{ArrayValue(nil, TypeUnknown), TypeArray},
		{TypeValue(TypeInt), TypeAnnotation},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TypeOf(tt.value), "%s", tt.value)
		assert.Equal(t, tt.want, tt.value.Type())
	}

	assert.True(t, SameType(IntValue(1), IntValue(2)))
	assert.False(t, SameType(IntValue(1), FloatValue(1)))
}

func TestTagFromAnnotation(t *testing.T) {
	name, ok := ast.LookupTypeName("Int")
	require.True(t, ok)
	assert.Equal(t, TypeInt, TagFromAnnotation(name))

	name, ok = ast.LookupTypeName("bool")
	require.True(t, ok)
	assert.Equal(t, TypeBoolean, TagFromAnnotation(name))

	assert.Equal(t, TypeUnknown, TagFromAnnotation(ast.TypeNone))
	assert.Equal(t, TypeAnnotation, TagFromAnnotation(ast.TypeType))
	assert.Equal(t, "type", TypeAnnotation.String())
}

func TestTypeOfExpr(t *testing.T) {
	env := NewGlobalEnvironment()
	env.Define("s", StringValue("x"), TypeString, true)

	tests := []struct {
		expr ast.Expr
		want TypeTag
	}{
		{ast.Int(1), TypeInt},
		{ast.Float(1.5), TypeFloat},
		{ast.Str("a"), TypeString},
		{ast.Bool(true), TypeBoolean},
		{ast.Null(), TypeNull},
		{ast.Arr(), TypeArray},
		{ast.ID("s"), TypeString},
		{ast.Infix(ast.Int(1), ast.OpPlus, ast.Int(2)), TypeUnknown},
	}
	for _, tt := range tests {
		got, err := TypeOfExpr(tt.expr, env)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.expr.String())
	}

	_, err := TypeOfExpr(ast.ID("missing"), env)
	assert.True(t, IsKind(err, NameError))
}

func TestValueToString(t *testing.T) {
	fn := &Function{
		Name:       "add",
		Params:     []ast.Param{ast.P("a", ast.TypeInt), ast.P("b", ast.TypeNone)},
		ReturnType: ast.TypeInt,
	}
	tests := []struct {
		value Value
		want  string
	}{
		{NullValue(), "null"},
		{IntValue(-3), "-3"},
		{FloatValue(1), "1"},
		{FloatValue(0.25), "0.25"},
		{StringValue("hi"), "hi"},
		{BoolValue(true), "true"},
		{FunctionValue(fn), "fn add(a: int, b): int"},
		{ArrayValue([]Value{StringValue("a"), StringValue("b")}, TypeString), `["a", "b"]`},
		{ArrayValue([]Value{IntValue(1), IntValue(2)}, TypeInt), "[1, 2]"},
		{TypeValue(TypeFloat), "float"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.value.ToString())
	}
	assert.Equal(t, `"hi"`, StringValue("hi").String())
}

func TestValueEqual(t *testing.T) {
	fn := &Function{Name: "f"}
	tests := []struct {
		a, b Value
		want bool
	}{
		{NullValue(), NullValue(), true},
		{IntValue(1), IntValue(1), true},
		{IntValue(1), FloatValue(1), false},
		{StringValue("a"), StringValue("b"), false},
		{FunctionValue(fn), FunctionValue(fn), true},
		{FunctionValue(fn), FunctionValue(&Function{Name: "f"}), false},
		{RangeValue(0, 3, 1), RangeValue(0, 3, 1), true},
		{ArrayValue([]Value{IntValue(1)}, TypeInt), ArrayValue([]Value{IntValue(1)}, TypeInt), true},
		{ArrayValue([]Value{IntValue(1)}, TypeInt), ArrayValue([]Value{IntValue(2)}, TypeInt), false},
		{TypeValue(TypeInt), TypeValue(TypeInt), true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.Equal(tt.b), "%s == %s", tt.a, tt.b)
	}
}
