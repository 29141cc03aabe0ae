package ast

// Builders for hand-assembled trees. Nodes built here carry zero spans.

func Int(v int64) *IntLiteral         { return &IntLiteral{Value: v} }
func Float(v float64) *FloatLiteral   { return &FloatLiteral{Value: v} }
func Str(v string) *StringLiteral     { return &StringLiteral{Value: v} }
func Bool(v bool) *BoolLiteral        { return &BoolLiteral{Value: v} }
func Null() *NullLiteral              { return &NullLiteral{} }
func ID(name string) *Identifier      { return &Identifier{Name: name} }
func Arr(elems ...Expr) *ArrayLiteral { return &ArrayLiteral{Elements: elems} }

func Assign(name string, value Expr) *AssignExpr {
	return &AssignExpr{Name: name, Value: value}
}

func Call(callee Expr, args ...Expr) *CallExpr {
	return &CallExpr{Callee: callee, Args: args}
}

// CallName calls the function bound to name.
func CallName(name string, args ...Expr) *CallExpr {
	return Call(ID(name), args...)
}

func Infix(left Expr, op InfixOp, right Expr) *InfixExpr {
	return &InfixExpr{Left: left, Op: op, Right: right}
}

func Prefix(op PrefixOp, right Expr) *PrefixExpr {
	return &PrefixExpr{Op: op, Right: right}
}

func Postfix(left Expr, op PostfixOp) *PostfixExpr {
	return &PostfixExpr{Left: left, Op: op}
}

func Let(name string, typ TypeName, value Expr) *LetStmt {
	return &LetStmt{Name: name, Type: typ, Value: value}
}

func Const(name string, typ TypeName, value Expr) *LetStmt {
	return &LetStmt{Name: name, Type: typ, Value: value, Const: true}
}

func P(name string, typ TypeName) Param { return Param{Name: name, Type: typ} }

func Fn(name string, params []Param, ret TypeName, body ...Stmt) *FunctionDecl {
	return &FunctionDecl{Name: name, Params: params, ReturnType: ret, Body: body}
}

func Ret(value Expr) *ReturnStmt { return &ReturnStmt{Value: value} }

func Eval(e Expr) *ExprStmt { return &ExprStmt{Expr: e} }

func Block(stmts ...Stmt) []Stmt { return stmts }

func If(cond Expr, then []Stmt, els []Stmt) *IfStmt {
	return &IfStmt{Condition: cond, Then: then, Else: els}
}

func For(cursor string, iterable Expr, body ...Stmt) *ForStmt {
	return &ForStmt{Cursor: cursor, Iterable: iterable, Body: body}
}

func Prog(stmts ...Stmt) Program { return Program(stmts) }
