package interpreter

import (
	"fmt"

	"github.com/hc12r/filipeX/ast"
)

// TypeTag is the structural classification of a value. Type compatibility is
// always exact tag equality; no coercion is performed anywhere.
type TypeTag int

const (
	TypeNull TypeTag = iota
	TypeVoid
	TypeInt
	TypeFloat
	TypeString
	TypeBoolean
	TypeFunction
	TypeRange
	TypeArray
	TypeAnnotation
	TypeUnknown
)

func (t TypeTag) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeVoid:
		return "void"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeBoolean:
		return "boolean"
	case TypeFunction:
		return "function"
	case TypeRange:
		return "range"
	case TypeArray:
		return "array"
	case TypeAnnotation:
		return "type"
	case TypeUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("type_%d", int(t))
	}
}

// TypeOf returns the structural tag of v.
func TypeOf(v Value) TypeTag {
	switch v.Kind {
	case ValNull:
		return TypeNull
	case ValInt:
		return TypeInt
	case ValFloat:
		return TypeFloat
	case ValString:
		return TypeString
	case ValBool:
		return TypeBoolean
	case ValBuiltin, ValFunction:
		return TypeFunction
	case ValRange:
		return TypeRange
	case ValArray:
		return TypeArray
	case ValType:
		return TypeAnnotation
	default:
		return TypeUnknown
	}
}

func SameType(a, b Value) bool {
	return TypeOf(a) == TypeOf(b)
}

// TagFromAnnotation maps a source annotation to its tag. A missing
// annotation maps to TypeUnknown.
func TagFromAnnotation(name ast.TypeName) TypeTag {
	switch name {
	case ast.TypeNull:
		return TypeNull
	case ast.TypeVoid:
		return TypeVoid
	case ast.TypeInt:
		return TypeInt
	case ast.TypeFloat:
		return TypeFloat
	case ast.TypeString:
		return TypeString
	case ast.TypeBoolean:
		return TypeBoolean
	case ast.TypeFunction:
		return TypeFunction
	case ast.TypeRange:
		return TypeRange
	case ast.TypeArray:
		return TypeArray
	case ast.TypeType:
		return TypeAnnotation
	default:
		return TypeUnknown
	}
}

// TypeOfExpr classifies a literal or identifier without evaluating it.
// Identifiers report the tag stored on their binding. Any other expression
// kind yields TypeUnknown.
func TypeOfExpr(e ast.Expr, env *Environment) (TypeTag, error) {
	switch expr := e.(type) {
	case *ast.IntLiteral:
		return TypeInt, nil
	case *ast.FloatLiteral:
		return TypeFloat, nil
	case *ast.StringLiteral:
		return TypeString, nil
	case *ast.BoolLiteral:
		return TypeBoolean, nil
	case *ast.NullLiteral:
		return TypeNull, nil
	case *ast.ArrayLiteral:
		return TypeArray, nil
	case *ast.Identifier:
		tag, ok := env.TypeOf(expr.Name)
		if !ok {
			return TypeUnknown, NameErrorf("'%s' is not declared", expr.Name)
		}
		return tag, nil
	default:
		return TypeUnknown, nil
	}
}
