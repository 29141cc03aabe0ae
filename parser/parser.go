package parser

import (
	"fmt"
	"strconv"

	"github.com/hc12r/filipeX/ast"
	"github.com/hc12r/filipeX/lexer"
)

type Parser struct {
	lx   *lexer.Lexer
	cur  lexer.Token
	peek lexer.Token
}

func New(lx *lexer.Lexer) *Parser {
	p := &Parser{lx: lx}
	p.cur = lx.NextToken()
	p.peek = lx.NextToken()
	return p
}

// ParseSource lexes and parses a complete program.
func ParseSource(src string) (ast.Program, error) {
	return New(lexer.New(src)).ParseProgram()
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lx.NextToken()
}

func sp(tok lexer.Token) ast.Span { return ast.Span{Line: tok.Line, Col: tok.Col} }

func (p *Parser) expect(tt lexer.TokenType, msg string) (lexer.Token, error) {
	tok := p.cur
	if tok.Type != tt {
		return tok, p.errAt(tok, msg)
	}
	p.next()
	return tok, nil
}

func (p *Parser) ParseProgram() (ast.Program, error) {
	prog := ast.Program{}
	for p.cur.Type != lexer.EOF {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		prog = append(prog, stmt)
	}
	return prog, nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.cur.Type {
	case lexer.LET, lexer.CONST:
		return p.parseLet()
	case lexer.FUNCTION:
		return p.parseFunctionDecl()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.IF:
		return p.parseIf()
	case lexer.FOR:
		return p.parseFor()
	default:
		return p.parseExprStmt()
	}
}

// let = ("let"|"const") IDENT [ ":" type ] "=" expr ";"
func (p *Parser) parseLet() (ast.Stmt, error) {
	kwTok := p.cur
	p.next()

	nameTok, err := p.expect(lexer.IDENT, fmt.Sprintf("Expected name after '%s'", kwTok.Lexeme))
	if err != nil {
		return nil, err
	}

	typ := ast.TypeNone
	if p.cur.Type == lexer.COLON {
		p.next()
		if typ, err = p.parseType(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.ASSIGN, "Expected '=' in declaration"); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON, "Expected ';' after declaration"); err != nil {
		return nil, err
	}

	return &ast.LetStmt{
		S:     sp(kwTok),
		Name:  nameTok.Lexeme,
		Type:  typ,
		Value: value,
		Const: kwTok.Type == lexer.CONST,
	}, nil
}

// type = IDENT | "null" | "fn", matched case-insensitively against the known names
func (p *Parser) parseType() (ast.TypeName, error) {
	tok := p.cur
	switch tok.Type {
	case lexer.IDENT, lexer.NULL, lexer.FUNCTION:
	default:
		return ast.TypeNone, p.errAt(tok, "Expected a type name")
	}
	name, ok := ast.LookupTypeName(tok.Lexeme)
	if !ok {
		return ast.TypeNone, p.errAt(tok, fmt.Sprintf("Unknown type %q", tok.Lexeme))
	}
	p.next()
	return name, nil
}

// fn = "fn" IDENT "(" [ param { "," param } ] ")" [ ":" type ] block
func (p *Parser) parseFunctionDecl() (ast.Stmt, error) {
	fnTok := p.cur
	p.next()

	nameTok, err := p.expect(lexer.IDENT, "Expected function name after 'fn'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN, "Expected '(' after function name"); err != nil {
		return nil, err
	}

	params := []ast.Param{}
	if p.cur.Type != lexer.RPAREN {
		for {
			paramTok, err := p.expect(lexer.IDENT, "Expected parameter name")
			if err != nil {
				return nil, err
			}
			param := ast.Param{Name: paramTok.Lexeme}
			if p.cur.Type == lexer.COLON {
				p.next()
				if param.Type, err = p.parseType(); err != nil {
					return nil, err
				}
			}
			params = append(params, param)

			if p.cur.Type == lexer.COMMA {
				p.next()
				continue
			}
			if p.cur.Type == lexer.RPAREN {
				break
			}
			return nil, p.errAt(p.cur, "Expected ',' or ')' in parameter list")
		}
	}
	p.next()

	ret := ast.TypeNone
	if p.cur.Type == lexer.COLON {
		p.next()
		if ret, err = p.parseType(); err != nil {
			return nil, err
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDecl{S: sp(fnTok), Name: nameTok.Lexeme, Params: params, Body: body, ReturnType: ret}, nil
}

// return = "return" [ expr ] ";"
func (p *Parser) parseReturn() (ast.Stmt, error) {
	retTok := p.cur
	p.next()
	if p.cur.Type == lexer.SEMICOLON {
		p.next()
		return &ast.ReturnStmt{S: sp(retTok)}, nil
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON, "Expected ';' after return value"); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{S: sp(retTok), Value: value}, nil
}

// if = "if" expr block [ "else" ( block | if ) ]
func (p *Parser) parseIf() (ast.Stmt, error) {
	ifTok := p.cur
	p.next()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	thenBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseBlock []ast.Stmt
	if p.cur.Type == lexer.ELSE {
		p.next()
		if p.cur.Type == lexer.IF {
			nested, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			elseBlock = []ast.Stmt{nested}
		} else {
			elseBlock, err = p.parseBlock()
			if err != nil {
				return nil, err
			}
		}
	}

	return &ast.IfStmt{S: sp(ifTok), Condition: cond, Then: thenBlock, Else: elseBlock}, nil
}

// for = "for" IDENT "in" expr block
func (p *Parser) parseFor() (ast.Stmt, error) {
	forTok := p.cur
	p.next()

	cursorTok, err := p.expect(lexer.IDENT, "Expected loop variable after 'for'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.IN, "Expected 'in' after loop variable"); err != nil {
		return nil, err
	}
	iter, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.ForStmt{S: sp(forTok), Cursor: cursorTok.Lexeme, Iterable: iter, Body: body}, nil
}

func (p *Parser) parseExprStmt() (ast.Stmt, error) {
	startTok := p.cur
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON, "Expected ';' after expression"); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{S: sp(startTok), Expr: expr}, nil
}

// block = "{" { stmt } "}"
func (p *Parser) parseBlock() ([]ast.Stmt, error) {
	if _, err := p.expect(lexer.LBRACE, "Expected '{' to open block"); err != nil {
		return nil, err
	}
	stmts := []ast.Stmt{}
	for p.cur.Type != lexer.RBRACE {
		if p.cur.Type == lexer.EOF {
			return nil, p.errAt(p.cur, "Expected '}' to close block")
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	p.next()
	return stmts, nil
}

// expr = assignment
func (p *Parser) parseExpr() (ast.Expr, error) { return p.parseAssignment() }

// assignment = IDENT "=" assignment | equality
func (p *Parser) parseAssignment() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.ASSIGN {
		return left, nil
	}

	eqTok := p.cur
	id, ok := left.(*ast.Identifier)
	if !ok {
		return nil, p.errAt(eqTok, "Invalid assignment target")
	}
	p.next()
	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return &ast.AssignExpr{S: id.S, Name: id.Name, Value: value}, nil
}

var infixOps = map[lexer.TokenType]ast.InfixOp{
	lexer.PLUS:    ast.OpPlus,
	lexer.MINUS:   ast.OpMinus,
	lexer.STAR:    ast.OpMultiply,
	lexer.SLASH:   ast.OpDivide,
	lexer.PERCENT: ast.OpRemainder,
	lexer.EQ:      ast.OpEqual,
	lexer.NEQ:     ast.OpNotEqual,
	lexer.LT:      ast.OpLessThan,
	lexer.LTE:     ast.OpLessEqual,
	lexer.GT:      ast.OpGreaterThan,
	lexer.GTE:     ast.OpGreaterEqual,
}

// parseLeftAssoc parses operand { op operand } for the given operator tokens.
func (p *Parser) parseLeftAssoc(operand func() (ast.Expr, error), ops ...lexer.TokenType) (ast.Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for p.isOneOf(p.cur.Type, ops...) {
		opTok := p.cur
		p.next()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &ast.InfixExpr{S: sp(opTok), Left: left, Op: infixOps[opTok.Type], Right: right}
	}
	return left, nil
}

func (p *Parser) isOneOf(t lexer.TokenType, list ...lexer.TokenType) bool {
	for _, x := range list {
		if t == x {
			return true
		}
	}
	return false
}

// equality = comparison { ("=="|"!=") comparison }
func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseComparison, lexer.EQ, lexer.NEQ)
}

// comparison = term { ("<"|"<="|">"|">=") term }
func (p *Parser) parseComparison() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseTerm, lexer.LT, lexer.LTE, lexer.GT, lexer.GTE)
}

func (p *Parser) parseTerm() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseFactor, lexer.PLUS, lexer.MINUS)
}

func (p *Parser) parseFactor() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseUnary, lexer.STAR, lexer.SLASH, lexer.PERCENT)
}

// unary = ("!"|"+"|"-") unary | postfix
func (p *Parser) parseUnary() (ast.Expr, error) {
	var op ast.PrefixOp
	switch p.cur.Type {
	case lexer.BANG:
		op = ast.PrefixNot
	case lexer.PLUS:
		op = ast.PrefixPlus
	case lexer.MINUS:
		op = ast.PrefixMinus
	default:
		return p.parsePostfix()
	}

	opTok := p.cur
	p.next()
	right, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.PrefixExpr{S: sp(opTok), Op: op, Right: right}, nil
}

// postfix = call { "++" | "--" }
func (p *Parser) parsePostfix() (ast.Expr, error) {
	left, err := p.parseCall()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.INCREMENT || p.cur.Type == lexer.DECREMENT {
		op := ast.PostfixIncrement
		if p.cur.Type == lexer.DECREMENT {
			op = ast.PostfixDecrement
		}
		left = &ast.PostfixExpr{S: sp(p.cur), Left: left, Op: op}
		p.next()
	}
	return left, nil
}

// call = primary { "(" [ expr { "," expr } ] ")" }
func (p *Parser) parseCall() (ast.Expr, error) {
	callee, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.LPAREN {
		p.next()
		args, err := p.parseList(lexer.RPAREN, "Expected ',' or ')' in call arguments")
		if err != nil {
			return nil, err
		}
		callee = &ast.CallExpr{S: callee.GetSpan(), Callee: callee, Args: args}
	}
	return callee, nil
}

// parseList parses `[ expr { "," expr } ] end`; the opening token is
// already consumed.
func (p *Parser) parseList(end lexer.TokenType, msg string) ([]ast.Expr, error) {
	items := []ast.Expr{}
	if p.cur.Type == end {
		p.next()
		return items, nil
	}
	for {
		item, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		if p.cur.Type == lexer.COMMA {
			p.next()
			continue
		}
		if p.cur.Type == end {
			p.next()
			return items, nil
		}
		return nil, p.errAt(p.cur, msg)
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur
	switch tok.Type {
	case lexer.INT:
		n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, p.errAt(tok, fmt.Sprintf("Invalid integer %q", tok.Lexeme))
		}
		p.next()
		return &ast.IntLiteral{S: sp(tok), Value: n}, nil

	case lexer.FLOAT:
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.errAt(tok, fmt.Sprintf("Invalid float %q", tok.Lexeme))
		}
		p.next()
		return &ast.FloatLiteral{S: sp(tok), Value: f}, nil

	case lexer.STRING:
		p.next()
		return &ast.StringLiteral{S: sp(tok), Value: tok.Lexeme}, nil

	case lexer.TRUE, lexer.FALSE:
		p.next()
		return &ast.BoolLiteral{S: sp(tok), Value: tok.Type == lexer.TRUE}, nil

	case lexer.NULL:
		p.next()
		return &ast.NullLiteral{S: sp(tok)}, nil

	case lexer.IDENT:
		p.next()
		return &ast.Identifier{S: sp(tok), Name: tok.Lexeme}, nil

	case lexer.LPAREN:
		p.next()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN, "Expected ')'"); err != nil {
			return nil, err
		}
		return expr, nil

	case lexer.LBRACKET:
		p.next()
		elems, err := p.parseList(lexer.RBRACKET, "Expected ',' or ']' in array literal")
		if err != nil {
			return nil, err
		}
		return &ast.ArrayLiteral{S: sp(tok), Elements: elems}, nil

	case lexer.ILLEGAL:
		return nil, p.errAt(tok, tok.Lexeme)

	default:
		return nil, p.errAt(tok, "Expected an expression")
	}
}

func (p *Parser) errAt(tok lexer.Token, msg string) error {
	if tok.Type == lexer.EOF {
		return fmt.Errorf("%s at end of file", msg)
	}
	return fmt.Errorf("%s at %d:%d (got %s)", msg, tok.Line, tok.Col, tok.Type)
}
