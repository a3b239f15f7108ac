package lexer

import (
	"strings"

	"github.com/chahine-labs/relquery/pkg/dialect"
)

// Lexer turns SQL source text into a stream of Tokens. It reads one byte at
// a time and looks at most one byte ahead; the only rewind is in readNumber,
// which backs up to the 'e' when an exponent marker has no digits after it,
// mirroring the dispatch table of the scanner this project was distilled
// from (original_source's parser/lexer.rs).
type Lexer struct {
	input string
	d     dialect.Dialect

	pos       int  // index of ch in input
	readPos   int  // index of next byte to read
	ch        byte // current byte under examination, 0 at EOF
	line      int
	column    int
	lineStart int // index in input where the current line begins
}

// New creates a Lexer for input using the default dialect.
func New(input string) *Lexer {
	return NewWithDialect(input, dialect.GetDialect(""))
}

// NewWithDialect creates a Lexer for input using dialect d. The core scanner
// is dialect-neutral; d is accepted so callers (and the parser above it) can
// keep a single pluggable construction path even though only one dialect is
// registered today.
func NewWithDialect(input string, d dialect.Dialect) *Lexer {
	l := &Lexer{input: input, d: d, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.lineStart = l.readPos
		l.column = 0
	} else {
		l.column = l.pos - l.lineStart + 1
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// NextToken scans and returns the next token, advancing the lexer.
func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	tok := Token{Line: l.line, Column: l.column, Position: l.pos}

	switch {
	case l.ch == 0:
		tok.Type = EOF
		tok.Literal = ""
		return tok

	case l.ch == '\'' || l.ch == '"':
		// NOTE: ' and " are treated as interchangeable closing delimiters,
		// a quirk inherited from this scanner's original implementation
		// rather than a deliberate design choice.
		tok.Type = STRING
		tok.Literal = l.readQuoted()
		return tok

	case isDigit(l.ch):
		tok.Type = NUMBER
		tok.Literal = l.readNumber()
		return tok

	case isIdentStart(l.ch):
		lit := l.readIdentifier()
		tok.Literal = lit
		tok.Type = LookupIdent(strings.ToUpper(lit))
		return tok
	}

	switch l.ch {
	case '=':
		tok.Type = ASSIGN
		tok.Literal = "="
		l.readChar()
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Literal = "!="
			tok.Type = NOT_EQ
		} else {
			tok.Type = BANG
			tok.Literal = "!"
		}
		l.readChar()
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok.Literal = "<="
			tok.Type = LTE
		case '>':
			l.readChar()
			tok.Literal = "<>"
			tok.Type = NOT_EQ
		default:
			tok.Literal = "<"
			tok.Type = LT
		}
		l.readChar()
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Literal = ">="
			tok.Type = GTE
		} else {
			tok.Literal = ">"
			tok.Type = GT
		}
		l.readChar()
	case ',':
		tok.Type = COMMA
		tok.Literal = ","
		l.readChar()
	case ';':
		tok.Type = SEMICOLON
		tok.Literal = ";"
		l.readChar()
	case '(':
		tok.Type = LPAREN
		tok.Literal = "("
		l.readChar()
	case ')':
		tok.Type = RPAREN
		tok.Literal = ")"
		l.readChar()
	case '.':
		if isDigit(l.peekChar()) {
			tok.Type = NUMBER
			tok.Literal = l.readNumber()
			return tok
		}
		tok.Type = DOT
		tok.Literal = "."
		l.readChar()
	case '*':
		tok.Type = ASTERISK
		tok.Literal = "*"
		l.readChar()
	case '+':
		tok.Type = PLUS
		tok.Literal = "+"
		l.readChar()
	case '-':
		tok.Type = MINUS
		tok.Literal = "-"
		l.readChar()
	case '/':
		tok.Type = SLASH
		tok.Literal = "/"
		l.readChar()
	case '%':
		tok.Type = PERCENT
		tok.Literal = "%"
		l.readChar()
	default:
		tok.Type = ILLEGAL
		tok.Literal = string(l.ch)
		l.readChar()
	}

	return tok
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '-' && l.peekChar() == '-':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for !(l.ch == '*' && l.peekChar() == '/') && l.ch != 0 {
				l.readChar()
			}
			if l.ch != 0 {
				l.readChar()
				l.readChar()
			}
		default:
			return
		}
	}
}

// readQuoted consumes a quoted literal. The opening delimiter may be ' or "
// and, per this scanner's inherited quirk, the closing delimiter may be
// either regardless of which one opened the literal.
func (l *Lexer) readQuoted() string {
	l.readChar() // consume opening quote
	var sb strings.Builder
	for l.ch != '\'' && l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' && l.peekChar() != 0 {
			l.readChar()
		}
		sb.WriteByte(l.ch)
		l.readChar()
	}
	if l.ch != 0 {
		l.readChar() // consume closing quote
	}
	return sb.String()
}

func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		save := l.pos
		saveLine, saveLineStart := l.line, l.lineStart
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		if isDigit(l.ch) {
			for isDigit(l.ch) {
				l.readChar()
			}
		} else {
			// not actually an exponent; rewind so the 'e' is scanned again
			// as the start of the next token.
			l.readPos = save
			l.line, l.lineStart = saveLine, saveLineStart
			l.readChar()
			return l.input[start:save]
		}
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isIdentPart(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
