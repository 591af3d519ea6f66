// lexer.go — byte scanner for Mico source.
//
// The scanner is deliberately small: maximal-munch identifiers and decimal
// integers, fixed one/two-character operator tokens, a keyword lookup table,
// and nothing else. It exposes a pull interface (NextToken) that the parser
// consumes one token at a time; once the input is exhausted it returns EOF
// tokens forever. Unrecognized bytes are not errors — they become ILLEGAL
// tokens carrying the offending text, and the parser reports them with a
// proper source position.
package mico

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Identifiers & literals
	IDENT
	INT

	// Operators
	ASSIGN   // "="
	PLUS     // "+"
	MINUS    // "-"
	BANG     // "!"
	ASTERISK // "*"
	SLASH    // "/"
	LT       // "<"
	GT       // ">"
	EQ       // "=="
	NOT_EQ   // "!="

	// Punctuation
	COMMA     // ","
	SEMICOLON // ";"
	LPAREN    // "("
	RPAREN    // ")"
	LBRACE    // "{"
	RBRACE    // "}"

	// Keywords
	FUNCTION
	LET
	TRUE
	FALSE
	IF
	ELSE
	RETURN
)

// String renders the token kind the way diagnostics spell it: punctuation and
// operators by their source text, everything else by name.
func (tt TokenType) String() string {
	switch tt {
	case EOF:
		return "EOF"
	case ILLEGAL:
		return "ILLEGAL"
	case IDENT:
		return "IDENT"
	case INT:
		return "INT"
	case ASSIGN:
		return "="
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case BANG:
		return "!"
	case ASTERISK:
		return "*"
	case SLASH:
		return "/"
	case LT:
		return "<"
	case GT:
		return ">"
	case EQ:
		return "=="
	case NOT_EQ:
		return "!="
	case COMMA:
		return ","
	case SEMICOLON:
		return ";"
	case LPAREN:
		return "("
	case RPAREN:
		return ")"
	case LBRACE:
		return "{"
	case RBRACE:
		return "}"
	case FUNCTION:
		return "fn"
	case LET:
		return "let"
	case TRUE:
		return "true"
	case FALSE:
		return "false"
	case IF:
		return "if"
	case ELSE:
		return "else"
	case RETURN:
		return "return"
	default:
		return "UNKNOWN"
	}
}

// Token is a lexical token. Line is 1-based; Col is the 0-based column of the
// token's first byte (diagnostics render it 1-based).
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Col    int
}

// keywords map
var keywords = map[string]TokenType{
	"fn":     FUNCTION,
	"let":    LET,
	"true":   TRUE,
	"false":  FALSE,
	"if":     IF,
	"else":   ELSE,
	"return": RETURN,
}

// Lexer scans a Mico source string into tokens.
type Lexer struct {
	src   string
	start int // start index of current token
	cur   int // current index
	line  int // 1-based
	col   int // 0-based column within line

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
		col:  0,
	}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) mk(tt TokenType) Token {
	return Token{
		Type:   tt,
		Lexeme: l.src[l.start:l.cur],
		Line:   l.tokStartLine,
		Col:    l.tokStartCol,
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t':
			l.advance()
		default:
			return
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

// scanIdentifier parses [A-Za-z_][A-Za-z0-9_]* (the first byte was consumed).
func (l *Lexer) scanIdentifier() {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			return
		}
		l.advance()
	}
}

// scanNumber parses a run of decimal digits (the first byte was consumed).
func (l *Lexer) scanNumber() {
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			return
		}
		l.advance()
	}
}

// NextToken scans and returns the next token. At end of input it returns an
// EOF token, and keeps returning EOF on every subsequent call.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()
	l.start = l.cur
	l.tokStartLine = l.line
	l.tokStartCol = l.col

	if l.isAtEnd() {
		return l.mk(EOF)
	}

	ch, _ := l.advance()

	switch ch {
	case '(':
		return l.mk(LPAREN)
	case ')':
		return l.mk(RPAREN)
	case '{':
		return l.mk(LBRACE)
	case '}':
		return l.mk(RBRACE)
	case ',':
		return l.mk(COMMA)
	case ';':
		return l.mk(SEMICOLON)
	case '+':
		return l.mk(PLUS)
	case '-':
		return l.mk(MINUS)
	case '*':
		return l.mk(ASTERISK)
	case '/':
		return l.mk(SLASH)
	case '<':
		return l.mk(LT)
	case '>':
		return l.mk(GT)
	case '=':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.mk(EQ)
		}
		return l.mk(ASSIGN)
	case '!':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.mk(NOT_EQ)
		}
		return l.mk(BANG)
	}

	if isDigit(ch) {
		l.scanNumber()
		return l.mk(INT)
	}
	if isAlpha(ch) {
		l.scanIdentifier()
		if tt, ok := keywords[l.src[l.start:l.cur]]; ok {
			return l.mk(tt)
		}
		return l.mk(IDENT)
	}

	return l.mk(ILLEGAL)
}
