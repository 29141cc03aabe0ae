package lexer

import "fmt"

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	IDENT  TokenType = "IDENT"
	INT    TokenType = "INT"
	FLOAT  TokenType = "FLOAT"
	STRING TokenType = "STRING"

	LET      TokenType = "LET"
	CONST    TokenType = "CONST"
	FUNCTION TokenType = "FUNCTION"
	RETURN   TokenType = "RETURN"
	IF       TokenType = "IF"
	ELSE     TokenType = "ELSE"
	FOR      TokenType = "FOR"
	IN       TokenType = "IN"
	TRUE     TokenType = "TRUE"
	FALSE    TokenType = "FALSE"
	NULL     TokenType = "NULL"

	ASSIGN    TokenType = "ASSIGN"
	PLUS      TokenType = "PLUS"
	MINUS     TokenType = "MINUS"
	STAR      TokenType = "STAR"
	SLASH     TokenType = "SLASH"
	PERCENT   TokenType = "PERCENT"
	BANG      TokenType = "BANG"
	INCREMENT TokenType = "INCREMENT"
	DECREMENT TokenType = "DECREMENT"

	EQ  TokenType = "EQ"
	NEQ TokenType = "NEQ"
	LT  TokenType = "LT"
	GT  TokenType = "GT"
	LTE TokenType = "LTE"
	GTE TokenType = "GTE"

	LPAREN    TokenType = "LPAREN"
	RPAREN    TokenType = "RPAREN"
	LBRACE    TokenType = "LBRACE"
	RBRACE    TokenType = "RBRACE"
	LBRACKET  TokenType = "LBRACKET"
	RBRACKET  TokenType = "RBRACKET"
	COMMA     TokenType = "COMMA"
	COLON     TokenType = "COLON"
	SEMICOLON TokenType = "SEMICOLON"
)

type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Col    int
}

func (t Token) String() string {
	switch t.Type {
	case STRING:
		return fmt.Sprintf("%s(%q) @ %d:%d", t.Type, t.Lexeme, t.Line, t.Col)
	case IDENT, INT, FLOAT, ILLEGAL:
		return fmt.Sprintf("%s(%s) @ %d:%d", t.Type, t.Lexeme, t.Line, t.Col)
	default:
		return fmt.Sprintf("%s @ %d:%d", t.Type, t.Line, t.Col)
	}
}

var keywords = map[string]TokenType{
	"let":    LET,
	"const":  CONST,
	"fn":     FUNCTION,
	"return": RETURN,
	"if":     IF,
	"else":   ELSE,
	"for":    FOR,
	"in":     IN,
	"true":   TRUE,
	"false":  FALSE,
	"null":   NULL,
}

// LookupIdent maps a word to its keyword token, or IDENT. Keywords are
// lower-case only.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}
