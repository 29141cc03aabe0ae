package interpreter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hc12r/filipeX/ast"
)

type ValueKind int

const (
	ValNull ValueKind = iota
	ValInt
	ValFloat
	ValString
	ValBool
	ValBuiltin
	ValFunction
	ValRange
	ValArray
	ValType
)

// Builtin is a native callable registered in the outermost scope.
type Builtin struct {
	Name string
	Fn   BuiltinFunc
}

// Function is a user-defined function. Env is the scope the function was
// declared in; calls open their scope as a child of it.
type Function struct {
	Name       string
	Params     []ast.Param
	Body       []ast.Stmt
	ReturnType ast.TypeName
	Env        *Environment
}

func (f *Function) Signature() string {
	parts := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		parts = append(parts, p.String())
	}
	sig := fmt.Sprintf("fn %s(%s)", f.Name, strings.Join(parts, ", "))
	if f.ReturnType != ast.TypeNone {
		sig += ": " + string(f.ReturnType)
	}
	return sig
}

type Range struct {
	Start int64
	End   int64
	Step  int64
}

// Len is the number of values the range yields: the distance to End divided
// by Step, rounded up. A zero step or a step pointing away from End yields 0.
func (r Range) Len() uint64 {
	switch {
	case r.Step > 0 && r.End > r.Start:
		span := uint64(r.End) - uint64(r.Start)
		return (span-1)/uint64(r.Step) + 1
	case r.Step < 0 && r.End < r.Start:
		span := uint64(r.Start) - uint64(r.End)
		return (span-1)/uint64(-r.Step) + 1
	default:
		return 0
	}
}

// ArrayObject gives arrays reference semantics.
type ArrayObject struct {
	Elems    []Value
	ElemType TypeTag
}

type Value struct {
	Kind    ValueKind
	Int     int64
	Float   float64
	Str     string
	Bool    bool
	Builtin *Builtin
	Func    *Function
	Rng     Range
	Arr     *ArrayObject
	Tag     TypeTag
}

func NullValue() Value              { return Value{Kind: ValNull} }
func IntValue(n int64) Value        { return Value{Kind: ValInt, Int: n} }
func FloatValue(f float64) Value    { return Value{Kind: ValFloat, Float: f} }
func StringValue(s string) Value    { return Value{Kind: ValString, Str: s} }
func BoolValue(b bool) Value        { return Value{Kind: ValBool, Bool: b} }
func BuiltinValue(b *Builtin) Value { return Value{Kind: ValBuiltin, Builtin: b} }
func FunctionValue(f *Function) Value {
	return Value{Kind: ValFunction, Func: f}
}
func RangeValue(start, end, step int64) Value {
	return Value{Kind: ValRange, Rng: Range{Start: start, End: end, Step: step}}
}
func ArrayValue(elems []Value, elemType TypeTag) Value {
	return Value{Kind: ValArray, Arr: &ArrayObject{Elems: elems, ElemType: elemType}}
}
func TypeValue(t TypeTag) Value { return Value{Kind: ValType, Tag: t} }

// Type is the structural tag of v.
func (v Value) Type() TypeTag { return TypeOf(v) }

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ToString is the textual form written by print.
func (v Value) ToString() string {
	switch v.Kind {
	case ValInt:
		return strconv.FormatInt(v.Int, 10)

	case ValFloat:
		return formatFloat(v.Float)

	case ValString:
		return v.Str

	case ValBool:
		if v.Bool {
			return "true"
		}
		return "false"

	case ValBuiltin:
		return "[Builtin Function]"

	case ValFunction:
		if v.Func == nil {
			return "fn"
		}
		return v.Func.Signature()

	case ValRange:
		return fmt.Sprintf("range(%d, %d, %d)", v.Rng.Start, v.Rng.End, v.Rng.Step)

	case ValArray:
		var b strings.Builder
		b.WriteString("[")
		if v.Arr != nil {
			for idx, el := range v.Arr.Elems {
				if idx > 0 {
					b.WriteString(", ")
				}
				if el.Kind == ValString {
					b.WriteString(strconv.Quote(el.Str))
					continue
				}
				b.WriteString(el.ToString())
			}
		}
		b.WriteString("]")
		return b.String()

	case ValType:
		return v.Tag.String()

	default:
		return "null"
	}
}

// Equal reports structural equality. Functions compare by identity.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case ValNull:
		return true
	case ValInt:
		return v.Int == o.Int
	case ValFloat:
		return v.Float == o.Float
	case ValString:
		return v.Str == o.Str
	case ValBool:
		return v.Bool == o.Bool
	case ValBuiltin:
		return v.Builtin == o.Builtin
	case ValFunction:
		return v.Func == o.Func
	case ValRange:
		return v.Rng == o.Rng
	case ValType:
		return v.Tag == o.Tag
	case ValArray:
		if v.Arr == nil || o.Arr == nil {
			return v.Arr == o.Arr
		}
		if len(v.Arr.Elems) != len(o.Arr.Elems) {
			return false
		}
		for idx := range v.Arr.Elems {
			if !v.Arr.Elems[idx].Equal(o.Arr.Elems[idx]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (v Value) String() string {
	if v.Kind == ValString {
		return strconv.Quote(v.Str)
	}
	return v.ToString()
}
