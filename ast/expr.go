package ast

import (
	"fmt"
	"strconv"
	"strings"
)

type Expr interface {
	Node
	exprNode()
	String() string
	GetSpan() Span
}

type InfixOp string

const (
	OpPlus         InfixOp = "+"
	OpMinus        InfixOp = "-"
	OpMultiply     InfixOp = "*"
	OpDivide       InfixOp = "/"
	OpRemainder    InfixOp = "%"
	OpEqual        InfixOp = "=="
	OpNotEqual     InfixOp = "!="
	OpLessThan     InfixOp = "<"
	OpLessEqual    InfixOp = "<="
	OpGreaterThan  InfixOp = ">"
	OpGreaterEqual InfixOp = ">="
)

// IsComparison reports whether op is one of the six comparison operators.
func (op InfixOp) IsComparison() bool {
	switch op {
	case OpEqual, OpNotEqual, OpLessThan, OpLessEqual, OpGreaterThan, OpGreaterEqual:
		return true
	}
	return false
}

type PrefixOp string

const (
	PrefixNot   PrefixOp = "!"
	PrefixPlus  PrefixOp = "+"
	PrefixMinus PrefixOp = "-"
)

type PostfixOp string

const (
	PostfixIncrement PostfixOp = "++"
	PostfixDecrement PostfixOp = "--"
)

type IntLiteral struct {
	S     Span
	Value int64
}

func (n *IntLiteral) NodeKind() string { return "IntLiteral" }
func (n *IntLiteral) exprNode()        {}
func (n *IntLiteral) GetSpan() Span    { return n.S }
func (n *IntLiteral) String() string   { return fmt.Sprintf("Int(%d)", n.Value) }

type FloatLiteral struct {
	S     Span
	Value float64
}

func (n *FloatLiteral) NodeKind() string { return "FloatLiteral" }
func (n *FloatLiteral) exprNode()        {}
func (n *FloatLiteral) GetSpan() Span    { return n.S }
func (n *FloatLiteral) String() string {
	return fmt.Sprintf("Float(%s)", strconv.FormatFloat(n.Value, 'f', -1, 64))
}

type StringLiteral struct {
	S     Span
	Value string
}

func (s *StringLiteral) NodeKind() string { return "StringLiteral" }
func (s *StringLiteral) exprNode()        {}
func (s *StringLiteral) GetSpan() Span    { return s.S }
func (s *StringLiteral) String() string   { return fmt.Sprintf("String(%q)", s.Value) }

type BoolLiteral struct {
	S     Span
	Value bool
}

func (b *BoolLiteral) NodeKind() string { return "BoolLiteral" }
func (b *BoolLiteral) exprNode()        {}
func (b *BoolLiteral) GetSpan() Span    { return b.S }
func (b *BoolLiteral) String() string {
	if b.Value {
		return "Bool(true)"
	}
	return "Bool(false)"
}

type NullLiteral struct {
	S Span
}

func (n *NullLiteral) NodeKind() string { return "NullLiteral" }
func (n *NullLiteral) exprNode()        {}
func (n *NullLiteral) GetSpan() Span    { return n.S }
func (n *NullLiteral) String() string   { return "Null" }

type ArrayLiteral struct {
	S        Span
	Elements []Expr
}

func (a *ArrayLiteral) NodeKind() string { return "ArrayLiteral" }
func (a *ArrayLiteral) exprNode()        {}
func (a *ArrayLiteral) GetSpan() Span    { return a.S }
func (a *ArrayLiteral) String() string {
	if len(a.Elements) == 0 {
		return "Array([])"
	}
	parts := make([]string, 0, len(a.Elements))
	for _, e := range a.Elements {
		parts = append(parts, e.String())
	}
	return fmt.Sprintf("Array([%s])", strings.Join(parts, ", "))
}

type Identifier struct {
	S    Span
	Name string
}

func (i *Identifier) NodeKind() string { return "Identifier" }
func (i *Identifier) exprNode()        {}
func (i *Identifier) GetSpan() Span    { return i.S }
func (i *Identifier) String() string   { return fmt.Sprintf("Ident(%s)", i.Name) }

// AssignExpr is `name = value`. It yields no value.
type AssignExpr struct {
	S     Span
	Name  string
	Value Expr
}

func (a *AssignExpr) NodeKind() string { return "AssignExpr" }
func (a *AssignExpr) exprNode()        {}
func (a *AssignExpr) GetSpan() Span    { return a.S }
func (a *AssignExpr) String() string {
	return fmt.Sprintf("Assign(%s = %s)", a.Name, a.Value.String())
}

type CallExpr struct {
	S      Span
	Callee Expr
	Args   []Expr
}

func (c *CallExpr) NodeKind() string { return "CallExpr" }
func (c *CallExpr) exprNode()        {}
func (c *CallExpr) GetSpan() Span    { return c.S }
func (c *CallExpr) String() string {
	return fmt.Sprintf("Call(%s, args=%d)", c.Callee.String(), len(c.Args))
}

type InfixExpr struct {
	S     Span
	Left  Expr
	Op    InfixOp
	Right Expr
}

func (b *InfixExpr) NodeKind() string { return "InfixExpr" }
func (b *InfixExpr) exprNode()        {}
func (b *InfixExpr) GetSpan() Span    { return b.S }
func (b *InfixExpr) String() string {
	return fmt.Sprintf("Infix(%s %s %s)", b.Left.String(), b.Op, b.Right.String())
}

type PrefixExpr struct {
	S     Span
	Op    PrefixOp
	Right Expr
}

func (u *PrefixExpr) NodeKind() string { return "PrefixExpr" }
func (u *PrefixExpr) exprNode()        {}
func (u *PrefixExpr) GetSpan() Span    { return u.S }
func (u *PrefixExpr) String() string {
	return fmt.Sprintf("Prefix(%s %s)", u.Op, u.Right.String())
}

type PostfixExpr struct {
	S    Span
	Left Expr
	Op   PostfixOp
}

func (p *PostfixExpr) NodeKind() string { return "PostfixExpr" }
func (p *PostfixExpr) exprNode()        {}
func (p *PostfixExpr) GetSpan() Span    { return p.S }
func (p *PostfixExpr) String() string {
	return fmt.Sprintf("Postfix(%s %s)", p.Left.String(), p.Op)
}
