package lexer

import "strings"

type Lexer struct {
	input []rune
	pos   int
	line  int
	col   int
}

func New(input string) *Lexer {
	return &Lexer{
		input: []rune(input),
		line:  1,
		col:   1,
	}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekNext() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) advance() rune {
	ch := l.peek()
	if ch == 0 {
		return 0
	}
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

// skipTrivia consumes whitespace (newlines included) and // comments.
func (l *Lexer) skipTrivia() {
	for {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
		case ch == '/' && l.peekNext() == '/':
			for l.peek() != 0 && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// Tokenize scans the whole input. The last token is always EOF.
func (l *Lexer) Tokenize() []Token {
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

func (l *Lexer) NextToken() Token {
	l.skipTrivia()

	startLine := l.line
	startCol := l.col
	ch := l.peek()

	tok := func(tt TokenType, lexeme string) Token {
		return Token{Type: tt, Lexeme: lexeme, Line: startLine, Col: startCol}
	}

	if ch == 0 {
		return tok(EOF, "")
	}

	// identifiers/keywords
	if isAlpha(ch) || ch == '_' {
		var b strings.Builder
		for isAlphaNum(l.peek()) || l.peek() == '_' {
			b.WriteRune(l.advance())
		}
		lex := b.String()
		return tok(LookupIdent(lex), lex)
	}

	// numbers: digits with at most one '.' followed by a digit
	if isDigit(ch) {
		var b strings.Builder
		tt := INT
		for {
			c := l.peek()
			if isDigit(c) {
				b.WriteRune(l.advance())
				continue
			}
			if c == '.' && tt == INT && isDigit(l.peekNext()) {
				tt = FLOAT
				b.WriteRune(l.advance())
				continue
			}
			break
		}
		return tok(tt, b.String())
	}

	// strings "..."
	if ch == '"' {
		l.advance()
		var b strings.Builder
		for {
			c := l.peek()
			if c == 0 || c == '\n' {
				return tok(ILLEGAL, "Unterminated string")
			}
			if c == '"' {
				l.advance()
				break
			}
			if c == '\\' {
				l.advance()
				esc := l.peek()
				if esc == 0 {
					return tok(ILLEGAL, "Bad escape")
				}
				l.advance()
				switch esc {
				case 'n':
					b.WriteString("\n")
				case 't':
					b.WriteString("\t")
				case 'r':
					b.WriteString("\r")
				case '0':
					b.WriteString("\x00")
				default:
					b.WriteRune(esc)
				}
				continue
			}
			b.WriteRune(l.advance())
		}
		return tok(STRING, b.String())
	}

	// two-char operators
	l.advance()
	next := l.peek()
	switch ch {
	case '=':
		if next == '=' {
			l.advance()
			return tok(EQ, "==")
		}
		return tok(ASSIGN, "=")
	case '!':
		if next == '=' {
			l.advance()
			return tok(NEQ, "!=")
		}
		return tok(BANG, "!")
	case '<':
		if next == '=' {
			l.advance()
			return tok(LTE, "<=")
		}
		return tok(LT, "<")
	case '>':
		if next == '=' {
			l.advance()
			return tok(GTE, ">=")
		}
		return tok(GT, ">")
	case '+':
		if next == '+' {
			l.advance()
			return tok(INCREMENT, "++")
		}
		return tok(PLUS, "+")
	case '-':
		if next == '-' {
			l.advance()
			return tok(DECREMENT, "--")
		}
		return tok(MINUS, "-")
	}

	// single-char tokens
	switch ch {
	case '*':
		return tok(STAR, "*")
	case '/':
		return tok(SLASH, "/")
	case '%':
		return tok(PERCENT, "%")
	case '(':
		return tok(LPAREN, "(")
	case ')':
		return tok(RPAREN, ")")
	case '{':
		return tok(LBRACE, "{")
	case '}':
		return tok(RBRACE, "}")
	case '[':
		return tok(LBRACKET, "[")
	case ']':
		return tok(RBRACKET, "]")
	case ',':
		return tok(COMMA, ",")
	case ':':
		return tok(COLON, ":")
	case ';':
		return tok(SEMICOLON, ";")
	}

	return tok(ILLEGAL, string(ch))
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlphaNum(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
