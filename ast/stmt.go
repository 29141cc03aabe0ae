package ast

import "fmt"

type Stmt interface {
	Node
	stmtNode()
	String() string
	GetSpan() Span
}

// Program is the ordered list of top-level statements.
type Program []Stmt

// LetStmt declares a binding in the current scope. Const bindings cannot be
// reassigned.
type LetStmt struct {
	S     Span
	Name  string
	Type  TypeName
	Value Expr
	Const bool
}

func (l *LetStmt) NodeKind() string { return "LetStmt" }
func (l *LetStmt) stmtNode()        {}
func (l *LetStmt) GetSpan() Span    { return l.S }
func (l *LetStmt) String() string {
	kw := "let"
	if l.Const {
		kw = "const"
	}
	if l.Type == TypeNone {
		return fmt.Sprintf("%s(%s = %s)", kw, l.Name, l.Value.String())
	}
	return fmt.Sprintf("%s(%s: %s = %s)", kw, l.Name, l.Type, l.Value.String())
}

type FunctionDecl struct {
	S          Span
	Name       string
	Params     []Param
	Body       []Stmt
	ReturnType TypeName
}

func (f *FunctionDecl) NodeKind() string { return "FunctionDecl" }
func (f *FunctionDecl) stmtNode()        {}
func (f *FunctionDecl) GetSpan() Span    { return f.S }
func (f *FunctionDecl) String() string {
	return fmt.Sprintf("Function(%s, params=%d, body=%d)", f.Name, len(f.Params), len(f.Body))
}

// ReturnStmt carries an optional value; nil means `return;`.
type ReturnStmt struct {
	S     Span
	Value Expr
}

func (r *ReturnStmt) NodeKind() string { return "ReturnStmt" }
func (r *ReturnStmt) stmtNode()        {}
func (r *ReturnStmt) GetSpan() Span    { return r.S }
func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "Return()"
	}
	return fmt.Sprintf("Return(%s)", r.Value.String())
}

type ExprStmt struct {
	S    Span
	Expr Expr
}

func (e *ExprStmt) NodeKind() string { return "ExprStmt" }
func (e *ExprStmt) stmtNode()        {}
func (e *ExprStmt) GetSpan() Span    { return e.S }
func (e *ExprStmt) String() string   { return fmt.Sprintf("ExprStmt(%s)", e.Expr.String()) }

// IfStmt has an optional alternative; a nil Else means there is none.
type IfStmt struct {
	S         Span
	Condition Expr
	Then      []Stmt
	Else      []Stmt
}

func (i *IfStmt) NodeKind() string { return "IfStmt" }
func (i *IfStmt) stmtNode()        {}
func (i *IfStmt) GetSpan() Span    { return i.S }
func (i *IfStmt) String() string {
	return fmt.Sprintf("IfStmt(%s, then=%d, else=%d)", i.Condition.String(), len(i.Then), len(i.Else))
}

// ForStmt is `for cursor in iterable { body }`.
type ForStmt struct {
	S        Span
	Cursor   string
	Iterable Expr
	Body     []Stmt
}

func (f *ForStmt) NodeKind() string { return "ForStmt" }
func (f *ForStmt) stmtNode()        {}
func (f *ForStmt) GetSpan() Span    { return f.S }
func (f *ForStmt) String() string {
	return fmt.Sprintf("ForStmt(%s in %s, body=%d)", f.Cursor, f.Iterable.String(), len(f.Body))
}
