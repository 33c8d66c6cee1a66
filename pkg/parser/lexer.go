package parser

import (
	"unicode"
	"unicode/utf8"
)

const eof = -1

// Lexer converts an expression string into a sequence of tokens.
// The implementation is based on Rob Pike's "Lexical Scanning in Go"
// technique.
type Lexer struct {
	input   string // Input string being scanned
	length  int    // Length of input string
	start   int    // Start position of current token
	current int    // Current position in input
	width   int    // Width of last rune read
}

// NewLexer creates a new lexer from the provided input string.
// The input is tokenized by successive calls to the Next method.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		length: len(input),
	}
}

// Next returns the next token from the input.
// When the end of the input is reached, Next returns TokenEOF for all
// subsequent calls.
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	ch := l.nextRune()
	if ch == eof {
		return l.eofToken()
	}

	switch ch {
	case '(':
		return l.newToken(TokenParenOpen)
	case ')':
		return l.newToken(TokenParenClose)
	case '[':
		return l.newToken(TokenBracketOpen)
	case ']':
		return l.newToken(TokenBracketClose)
	case '{':
		return l.newToken(TokenBraceOpen)
	case '}':
		return l.newToken(TokenBraceClose)
	case ',':
		return l.newToken(TokenComma)
	case ';':
		return l.newToken(TokenSemicolon)
	case '+':
		return l.newToken(TokenPlus)
	case '-':
		return l.newToken(TokenMinus)
	case '*':
		return l.newToken(TokenMult)
	case '/':
		return l.newToken(TokenDiv)
	case '=':
		if l.acceptRune('=') {
			return l.newToken(TokenEqual)
		}
		return l.newToken(TokenAssign)
	case '!':
		if l.acceptRune('=') {
			return l.newToken(TokenNotEqual)
		}
		return l.errorToken("unexpected character '!'")
	case '<':
		if l.acceptRune('=') {
			return l.newToken(TokenLessEqual)
		}
		return l.newToken(TokenLess)
	case '>':
		if l.acceptRune('=') {
			return l.newToken(TokenGreaterEqual)
		}
		return l.newToken(TokenGreater)
	case ':':
		l.ignore()
		return l.scanAtom()
	case '"', '\'':
		l.ignore()
		return l.scanString(ch)
	}

	if ch >= '0' && ch <= '9' {
		l.backup()
		return l.scanNumber()
	}

	if isNameStart(ch) {
		l.backup()
		return l.scanName()
	}

	return l.errorToken("unexpected character " + string(ch))
}

// scanString reads a string literal up to the closing delimiter.
// The opening delimiter has already been consumed and ignored.
func (l *Lexer) scanString(delim rune) Token {
	for {
		switch l.nextRune() {
		case delim:
			tok := Token{Type: TokenString, Value: l.input[l.start : l.current-l.width], Position: l.start}
			l.start = l.current
			return tok
		case eof:
			return l.errorToken("string literal not closed")
		}
	}
}

// scanNumber reads a numeric literal: digits, optional fraction,
// optional exponent. The literal text is kept verbatim; parsing into a
// decimal value is the rewriter's job.
func (l *Lexer) scanNumber() Token {
	l.acceptDigits()
	if l.acceptRune('.') {
		if !l.acceptDigits() {
			return l.errorToken("digit expected after decimal point")
		}
	}
	if l.acceptRune('e') || l.acceptRune('E') {
		if !l.acceptRune('+') {
			l.acceptRune('-')
		}
		if !l.acceptDigits() {
			return l.errorToken("digit expected in exponent")
		}
	}
	return l.newToken(TokenNumber)
}

// scanAtom reads the name after a ':' prefix.
func (l *Lexer) scanAtom() Token {
	if !l.acceptNameRunes() {
		return l.errorToken("name expected after ':'")
	}
	return l.newToken(TokenAtom)
}

// scanName reads an identifier or keyword. A single trailing '?' is part
// of the name, allowing predicate names like nan? and inf?.
func (l *Lexer) scanName() Token {
	l.acceptNameRunes()
	l.acceptRune('?')
	tok := l.newToken(TokenName)
	if tt, ok := keywords[tok.Value]; ok {
		tok.Type = tt
	}
	return tok
}

func (l *Lexer) skipWhitespace() {
	for {
		ch := l.nextRune()
		if ch == eof {
			break
		}
		if !unicode.IsSpace(ch) {
			l.backup()
			break
		}
	}
	l.start = l.current
}

func (l *Lexer) nextRune() rune {
	if l.current >= l.length {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.current:])
	l.width = w
	l.current += w
	return r
}

func (l *Lexer) backup() {
	l.current -= l.width
	l.width = 0
}

func (l *Lexer) acceptRune(r rune) bool {
	if l.nextRune() == r {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptDigits() bool {
	accepted := false
	for {
		ch := l.nextRune()
		if ch < '0' || ch > '9' {
			if ch != eof {
				l.backup()
			}
			return accepted
		}
		accepted = true
	}
}

func (l *Lexer) acceptNameRunes() bool {
	accepted := false
	for {
		ch := l.nextRune()
		if !isNameRune(ch) {
			if ch != eof {
				l.backup()
			}
			return accepted
		}
		accepted = true
	}
}

func (l *Lexer) ignore() {
	l.start = l.current
}

func (l *Lexer) newToken(tt TokenType) Token {
	tok := Token{Type: tt, Value: l.input[l.start:l.current], Position: l.start}
	l.start = l.current
	return tok
}

func (l *Lexer) eofToken() Token {
	return Token{Type: TokenEOF, Position: l.current}
}

func (l *Lexer) errorToken(msg string) Token {
	return Token{Type: TokenError, Value: msg, Position: l.start}
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
