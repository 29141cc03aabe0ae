package interpreter

import (
	"bytes"
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exitRecorder struct {
	calls []int
}

func (r *exitRecorder) exit(code int) { r.calls = append(r.calls, code) }

func testContext(out io.Writer, rec *exitRecorder) *CallContext {
	return &CallContext{
		Out:    out,
		Exit:   rec.exit,
		Rand:   rand.New(rand.NewSource(7)),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func args(vals ...Value) []Arg {
	out := make([]Arg, 0, len(vals))
	for _, v := range vals {
		out = append(out, Arg{Value: v, Type: TypeOf(v)})
	}
	return out
}

func TestBuiltinsAreSeededImmutable(t *testing.T) {
	env := NewGlobalEnvironment()
	seedBuiltins(env)

	for _, name := range BuiltinNames() {
		b, ok := env.Resolve(name)
		require.True(t, ok, name)
		assert.False(t, b.Mutable, name)
	}
	b, _ := env.Resolve("null")
	assert.Equal(t, NullValue(), b.Value)
	b, _ = env.Resolve("print")
	assert.Equal(t, "[Builtin Function]", b.Value.ToString())
}

func TestBuiltinPrint(t *testing.T) {
	var out bytes.Buffer
	v, err := builtinPrint(testContext(&out, &exitRecorder{}), args(StringValue("a"), IntValue(1), BoolValue(true), FloatValue(0.5)))
	require.NoError(t, err)
	assert.Equal(t, NullValue(), v)
	assert.Equal(t, "a1true0.5\n", out.String())
}

func TestBuiltinExit(t *testing.T) {
	rec := &exitRecorder{}
	ctx := testContext(io.Discard, rec)

	_, err := builtinExit(ctx, nil)
	require.NoError(t, err)
	_, err = builtinExit(ctx, args(IntValue(3)))
	require.NoError(t, err)

	_, err = builtinExit(ctx, args(StringValue("x")))
	assert.True(t, IsKind(err, ArgumentError))
	_, err = builtinExit(ctx, args(IntValue(1), IntValue(2)))
	assert.True(t, IsKind(err, ArgumentError))

	assert.Equal(t, []int{0, 3}, rec.calls)
}

func TestBuiltinLen(t *testing.T) {
	ctx := testContext(io.Discard, &exitRecorder{})

	v, err := builtinLen(ctx, args(StringValue("hello")))
	require.NoError(t, err)
	assert.Equal(t, IntValue(5), v)

	_, err = builtinLen(ctx, args(IntValue(5)))
	assert.True(t, IsKind(err, TypeError))
	assert.Contains(t, err.Error(), "got int")

	_, err = builtinLen(ctx, nil)
	assert.True(t, IsKind(err, TypeError))
}

func TestBuiltinTypeofUsesTrackedTag(t *testing.T) {
	ctx := testContext(io.Discard, &exitRecorder{})

	v, err := builtinTypeof(ctx, []Arg{{Value: IntValue(1), Type: TypeInt}})
	require.NoError(t, err)
	assert.Equal(t, TypeValue(TypeInt), v)
	assert.Equal(t, "int", v.ToString())

	_, err = builtinTypeof(ctx, nil)
	assert.True(t, IsKind(err, TypeError))
}

func TestBuiltinRandom(t *testing.T) {
	ctx := testContext(io.Discard, &exitRecorder{})

	for n := 0; n < 1000; n++ {
		v, err := builtinRandom(ctx, nil)
		require.NoError(t, err)
		require.Equal(t, ValFloat, v.Kind)
		require.True(t, v.Float >= 0 && v.Float < 1, "random() = %v", v.Float)
	}

	for n := 0; n < 200; n++ {
		v, err := builtinRandom(ctx, args(IntValue(3)))
		require.NoError(t, err)
		require.True(t, v.Int >= 0 && v.Int <= 3)

		v, err = builtinRandom(ctx, args(IntValue(5), IntValue(7)))
		require.NoError(t, err)
		require.True(t, v.Int >= 5 && v.Int <= 7)
	}

	v, err := builtinRandom(ctx, args(IntValue(2), IntValue(2)))
	require.NoError(t, err)
	assert.Equal(t, IntValue(2), v)

	tests := []struct {
		name string
		args []Arg
		kind ErrorKind
	}{
		{"min greater than max", args(IntValue(5), IntValue(2)), ValueError},
		{"negative max", args(IntValue(-1)), ValueError},
		{"negative min", args(IntValue(-1), IntValue(2)), ValueError},
		{"float max", args(FloatValue(1.5)), TypeError},
		{"string bounds", args(StringValue("a"), IntValue(2)), TypeError},
		{"too many", args(IntValue(1), IntValue(2), IntValue(3)), ArgumentError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := builtinRandom(ctx, tt.args)
			assert.True(t, IsKind(err, tt.kind), "got %v", err)
		})
	}
}

func TestBuiltinRange(t *testing.T) {
	ctx := testContext(io.Discard, &exitRecorder{})

	v, err := builtinRange(ctx, args(IntValue(1), IntValue(4)))
	require.NoError(t, err)
	assert.Equal(t, Range{Start: 1, End: 4, Step: 1}, v.Rng)

	v, err = builtinRange(ctx, args(IntValue(10), IntValue(0), IntValue(-2)))
	require.NoError(t, err)
	assert.Equal(t, "range(10, 0, -2)", v.ToString())

	_, err = builtinRange(ctx, args(IntValue(1)))
	assert.True(t, IsKind(err, TypeError))
	_, err = builtinRange(ctx, args(IntValue(1), StringValue("a")))
	assert.True(t, IsKind(err, TypeError))
	assert.Contains(t, err.Error(), "argument 2 is string")
}

func TestRangeLen(t *testing.T) {
	tests := []struct {
		r    Range
		want uint64
	}{
		{Range{1, 4, 1}, 3},
		{Range{0, 10, 3}, 4},
		{Range{10, 0, -3}, 4},
		{Range{4, 1, 1}, 0},
		{Range{1, 4, -1}, 0},
		{Range{1, 1, 1}, 0},
		{Range{1, 4, 0}, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.r.Len(), "%+v", tt.r)
	}
}
