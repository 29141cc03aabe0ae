package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestTokenizePositions(t *testing.T) {
	src := "let x: int = 1.5 + 2; // trailing\nx++ != \"a\\n\";"
	want := []Token{
		{LET, "let", 1, 1},
		{IDENT, "x", 1, 5},
		{COLON, ":", 1, 6},
		{IDENT, "int", 1, 8},
		{ASSIGN, "=", 1, 12},
		{FLOAT, "1.5", 1, 14},
		{PLUS, "+", 1, 18},
		{INT, "2", 1, 20},
		{SEMICOLON, ";", 1, 21},
		{IDENT, "x", 2, 1},
		{INCREMENT, "++", 2, 2},
		{NEQ, "!=", 2, 5},
		{STRING, "a\n", 2, 8},
		{SEMICOLON, ";", 2, 13},
		{EOF, "", 2, 14},
	}
	if diff := cmp.Diff(want, New(src).Tokenize()); diff != "" {
		t.Errorf("Tokenize mismatch (-want +got):\n%s", diff)
	}
}

func types(toks []Token) []TokenType {
	out := make([]TokenType, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Type)
	}
	return out
}

func TestTokenizeOperators(t *testing.T) {
	src := "== = != ! <= < >= > ++ + -- - * / % ( ) { } [ ] , : ;"
	want := []TokenType{
		EQ, ASSIGN, NEQ, BANG, LTE, LT, GTE, GT, INCREMENT, PLUS, DECREMENT, MINUS,
		STAR, SLASH, PERCENT, LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET,
		COMMA, COLON, SEMICOLON, EOF,
	}
	if diff := cmp.Diff(want, types(New(src).Tokenize())); diff != "" {
		t.Errorf("operator mismatch (-want +got):\n%s", diff)
	}
}

func TestKeywordsAreLowerCase(t *testing.T) {
	tests := []struct {
		word string
		want TokenType
	}{
		{"let", LET},
		{"const", CONST},
		{"fn", FUNCTION},
		{"return", RETURN},
		{"if", IF},
		{"else", ELSE},
		{"for", FOR},
		{"in", IN},
		{"true", TRUE},
		{"false", FALSE},
		{"null", NULL},
		{"Let", IDENT},
		{"function", IDENT},
		{"_tmp1", IDENT},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LookupIdent(tt.word), tt.word)
		assert.Equal(t, tt.want, New(tt.word).NextToken().Type, tt.word)
	}
}

func TestNumbers(t *testing.T) {
	toks := New("42 3.25 7.").Tokenize()
	want := []Token{
		{INT, "42", 1, 1},
		{FLOAT, "3.25", 1, 4},
		{INT, "7", 1, 9},
		{ILLEGAL, ".", 1, 10},
		{EOF, "", 1, 11},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Errorf("number mismatch (-want +got):\n%s", diff)
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		src  string
		want Token
	}{
		{`"plain"`, Token{STRING, "plain", 1, 1}},
		{`"tab\there"`, Token{STRING, "tab\there", 1, 1}},
		{`"q\"uote\\"`, Token{STRING, `q"uote\`, 1, 1}},
		{`""`, Token{STRING, "", 1, 1}},
		{`"open`, Token{ILLEGAL, "Unterminated string", 1, 1}},
		{"\"split\nline\"", Token{ILLEGAL, "Unterminated string", 1, 1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, New(tt.src).NextToken(), tt.src)
	}
}

func TestCommentsAndIllegal(t *testing.T) {
	toks := New("// only a comment\n  @ // again").Tokenize()
	want := []Token{
		{ILLEGAL, "@", 2, 3},
		{EOF, "", 2, 13},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	// a single slash is division, not a comment
	assert.Equal(t, []TokenType{INT, SLASH, INT, EOF}, types(New("4 / 2").Tokenize()))
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "IDENT(x) @ 1:5", Token{IDENT, "x", 1, 5}.String())
	assert.Equal(t, `STRING("a b") @ 2:1`, Token{STRING, "a b", 2, 1}.String())
	assert.Equal(t, "SEMICOLON @ 3:9", Token{SEMICOLON, ";", 3, 9}.String())
}
