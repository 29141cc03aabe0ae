package ast

import "strings"

// TypeName is a type annotation as written in source. The empty name means
// no annotation was given.
type TypeName string

const (
	TypeNone     TypeName = ""
	TypeNull     TypeName = "null"
	TypeVoid     TypeName = "void"
	TypeInt      TypeName = "int"
	TypeFloat    TypeName = "float"
	TypeString   TypeName = "string"
	TypeBoolean  TypeName = "boolean"
	TypeFunction TypeName = "function"
	TypeRange    TypeName = "range"
	TypeArray    TypeName = "array"
	TypeType     TypeName = "type"
)

// LookupTypeName maps an annotation spelling to its canonical name.
// Matching is case-insensitive and "bool" is accepted for "boolean".
func LookupTypeName(s string) (TypeName, bool) {
	switch strings.ToLower(s) {
	case "null":
		return TypeNull, true
	case "void":
		return TypeVoid, true
	case "int":
		return TypeInt, true
	case "float":
		return TypeFloat, true
	case "string":
		return TypeString, true
	case "bool", "boolean":
		return TypeBoolean, true
	case "function", "fn":
		return TypeFunction, true
	case "range":
		return TypeRange, true
	case "array":
		return TypeArray, true
	case "type":
		return TypeType, true
	default:
		return TypeNone, false
	}
}

type Param struct {
	Name string
	Type TypeName
}

func (p Param) String() string {
	if p.Type == TypeNone {
		return p.Name
	}
	return p.Name + ": " + string(p.Type)
}
