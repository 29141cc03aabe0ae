package interpreter

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"strings"
)

// Arg is an evaluated call argument paired with the type tag tracked for it:
// the stored tag of the binding for identifier arguments, the structural tag
// otherwise.
type Arg struct {
	Value Value
	Type  TypeTag
}

// CallContext is what a built-in may touch outside its arguments.
type CallContext struct {
	Out    io.Writer
	Exit   func(code int)
	Rand   *rand.Rand
	Logger *slog.Logger
}

// BuiltinFunc never records errors itself; a returned error is attached to the
// call site by the evaluator.
type BuiltinFunc func(ctx *CallContext, args []Arg) (Value, error)

type builtinEntry struct {
	name string
	fn   BuiltinFunc
}

var builtinTable = []builtinEntry{
	{"print", builtinPrint},
	{"exit", builtinExit},
	{"len", builtinLen},
	{"random", builtinRandom},
	{"typeof", builtinTypeof},
	{"range", builtinRange},
}

// BuiltinNames lists every name pre-seeded into the outermost scope.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinTable)+3)
	for _, b := range builtinTable {
		names = append(names, b.name)
	}
	return append(names, "true", "false", "null")
}

func seedBuiltins(env *Environment) {
	for _, b := range builtinTable {
		env.Define(b.name, BuiltinValue(&Builtin{Name: b.name, Fn: b.fn}), TypeFunction, false)
	}
	env.Define("true", BoolValue(true), TypeBoolean, false)
	env.Define("false", BoolValue(false), TypeBoolean, false)
	env.Define("null", NullValue(), TypeNull, false)
}

func builtinPrint(ctx *CallContext, args []Arg) (Value, error) {
	var b strings.Builder
	for _, arg := range args {
		b.WriteString(arg.Value.ToString())
	}
	b.WriteString("\n")
	if _, err := io.WriteString(ctx.Out, b.String()); err != nil {
		ctx.Logger.Warn("print failed", "error", err)
	}
	return NullValue(), nil
}

func builtinExit(ctx *CallContext, args []Arg) (Value, error) {
	if len(args) == 0 {
		ctx.Exit(0)
		return NullValue(), nil
	}

	if len(args) != 1 {
		return Value{}, ArgumentErrorf("'exit' expects 0 or 1 argument but %d were provided", len(args))
	}

	if args[0].Value.Kind != ValInt {
		return Value{}, ArgumentErrorf("'exit' only accepts an integer argument")
	}
	ctx.Exit(int(args[0].Value.Int))
	return NullValue(), nil
}

func builtinLen(ctx *CallContext, args []Arg) (Value, error) {
	if len(args) != 1 {
		return Value{}, TypeErrorf("'len' expects 1 arg but %d were provided", len(args))
	}

	if args[0].Value.Kind != ValString {
		return Value{}, TypeErrorf("'len' only accepts iterable types, got %s", args[0].Type)
	}
	return IntValue(int64(len(args[0].Value.Str))), nil
}

func builtinTypeof(ctx *CallContext, args []Arg) (Value, error) {
	if len(args) != 1 {
		return Value{}, TypeErrorf("'typeof' expects 1 arg but %d were provided", len(args))
	}
	return TypeValue(args[0].Type), nil
}

// randInclusive draws uniformly from [lo, hi]; both bounds are non-negative.
func randInclusive(r *rand.Rand, lo, hi int64) int64 {
	if hi-lo == math.MaxInt64 {
		return r.Int63()
	}
	return lo + r.Int63n(hi-lo+1)
}

func builtinRandom(ctx *CallContext, args []Arg) (Value, error) {
	switch len(args) {
	case 0:
		return FloatValue(ctx.Rand.Float64()), nil

	case 1:
		if args[0].Value.Kind != ValInt {
			return Value{}, TypeErrorf("'random' expects an integer argument")
		}
		hi := args[0].Value.Int
		if hi < 0 {
			return Value{}, ValueErrorf("Argument for 'random' must be a non-negative integer")
		}
		return IntValue(randInclusive(ctx.Rand, 0, hi)), nil

	case 2:
		if args[0].Value.Kind != ValInt || args[1].Value.Kind != ValInt {
			return Value{}, TypeErrorf("'random' expects two integer arguments")
		}
		lo, hi := args[0].Value.Int, args[1].Value.Int
		if lo < 0 || hi < 0 {
			return Value{}, ValueErrorf("Arguments for 'random' must be non-negative integers")
		}
		if lo > hi {
			return Value{}, ValueErrorf("The first argument for 'random' must be less than or equal to the second argument")
		}
		return IntValue(randInclusive(ctx.Rand, lo, hi)), nil

	default:
		return Value{}, ArgumentErrorf("'random' expects 0, 1, or 2 arguments")
	}
}

func builtinRange(ctx *CallContext, args []Arg) (Value, error) {
	if len(args) < 2 || len(args) > 3 {
		return Value{}, TypeErrorf("function 'range' takes 2 or 3 args but %d were provided", len(args))
	}

	bounds := make([]int64, 0, 3)
	for idx, arg := range args {
		if arg.Type != TypeInt || arg.Value.Kind != ValInt {
			return Value{}, TypeErrorf("args for function 'range' must be of type int (argument %d is %s)", idx+1, arg.Type)
		}
		bounds = append(bounds, arg.Value.Int)
	}
	if len(bounds) < 3 {
		bounds = append(bounds, 1)
	}
	return RangeValue(bounds[0], bounds[1], bounds[2]), nil
}

func defaultExit(code int) {
	os.Exit(code)
}

func describeArgs(args []Arg) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, fmt.Sprintf("%s:%s", a.Value, a.Type))
	}
	return strings.Join(parts, ", ")
}
