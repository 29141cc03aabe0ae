package interpreter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentDefineRejectsRedeclaration(t *testing.T) {
	env := NewGlobalEnvironment()
	require.True(t, env.Define("x", IntValue(1), TypeInt, true))
	assert.False(t, env.Define("x", IntValue(2), TypeInt, true))

	b, ok := env.Resolve("x")
	require.True(t, ok)
	assert.Equal(t, IntValue(1), b.Value)
}

func TestEnvironmentShadowing(t *testing.T) {
	outer := NewGlobalEnvironment()
	outer.Define("x", IntValue(1), TypeInt, true)

	inner := NewEnvironment(outer, ScopeBlock)
	require.True(t, inner.Define("x", StringValue("s"), TypeString, true))

	b, _ := inner.Resolve("x")
	assert.Equal(t, StringValue("s"), b.Value)
	b, _ = outer.Resolve("x")
	assert.Equal(t, IntValue(1), b.Value)

	assert.True(t, inner.Has("x"))
	assert.False(t, NewEnvironment(inner, ScopeBlock).Has("x"))
}

func TestEnvironmentAssignWritesThroughToOwner(t *testing.T) {
	outer := NewGlobalEnvironment()
	outer.Define("n", IntValue(1), TypeInt, true)
	inner := NewEnvironment(NewEnvironment(outer, ScopeFunction), ScopeIfElse)

	assert.Equal(t, AssignOK, inner.Assign("n", IntValue(9)))
	b, _ := outer.Resolve("n")
	assert.Equal(t, IntValue(9), b.Value)
	assert.False(t, inner.Has("n"))
}

func TestEnvironmentAssignResults(t *testing.T) {
	env := NewGlobalEnvironment()
	env.Define("c", IntValue(1), TypeInt, false)
	env.Define("v", IntValue(1), TypeInt, true)

	tests := []struct {
		name  string
		value Value
		want  AssignResult
	}{
		{"missing", IntValue(1), AssignUndeclared},
		{"v", StringValue("x"), AssignTypeMismatch},
		{"c", StringValue("x"), AssignTypeMismatch},
		{"c", IntValue(2), AssignImmutable},
		{"v", IntValue(2), AssignOK},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, env.Assign(tt.name, tt.value), "assign %s = %s", tt.name, tt.value)
	}

	tag, ok := env.TypeOf("v")
	require.True(t, ok)
	assert.Equal(t, TypeInt, tag)
}

func TestEnvironmentIntrospection(t *testing.T) {
	env := NewGlobalEnvironment()
	env.Define("b", IntValue(1), TypeInt, true)
	env.Define("a", IntValue(2), TypeInt, true)

	if diff := cmp.Diff([]string{"a", "b"}, env.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b", "a"}, env.Declared()); diff != "" {
		t.Errorf("Declared mismatch (-want +got):\n%s", diff)
	}

	snap := env.Snapshot()
	snap["a"] = Binding{Value: IntValue(100), Type: TypeInt}
	b, _ := env.Resolve("a")
	assert.Equal(t, IntValue(2), b.Value, "snapshot must be a copy")

	child := NewEnvironment(NewEnvironment(env, ScopeLoop), ScopeBlock)
	assert.Equal(t, 2, child.Depth())
	assert.Equal(t, ScopeBlock, child.Kind())
	assert.Equal(t, ScopeLoop, child.Parent().Kind())
	assert.Equal(t, "if-else", ScopeIfElse.String())
}
