package parser

import (
	"testing"
)

func collect(t *testing.T, input string) []Token {
	t.Helper()
	l := NewLexer(input)
	var toks []Token
	for {
		tok := l.Next()
		if tok.Type == TokenEOF {
			return toks
		}
		toks = append(toks, tok)
		if tok.Type == TokenError {
			return toks
		}
	}
}

func TestLexerTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		types []TokenType
	}{
		{"number", "42", []TokenType{TokenNumber}},
		{"float", "3.14", []TokenType{TokenNumber}},
		{"exponent", "1e-10", []TokenType{TokenNumber}},
		{"string double", `"hello"`, []TokenType{TokenString}},
		{"string single", "'hello'", []TokenType{TokenString}},
		{"atom", ":half_up", []TokenType{TokenAtom}},
		{"name", "price", []TokenType{TokenName}},
		{"predicate name", "nan?", []TokenType{TokenName}},
		{"arithmetic", "1 + 2 - 3 * 4 / 5", []TokenType{
			TokenNumber, TokenPlus, TokenNumber, TokenMinus, TokenNumber,
			TokenMult, TokenNumber, TokenDiv, TokenNumber,
		}},
		{"comparisons", "a == b != c < d <= e > f >= g", []TokenType{
			TokenName, TokenEqual, TokenName, TokenNotEqual, TokenName,
			TokenLess, TokenName, TokenLessEqual, TokenName,
			TokenGreater, TokenName, TokenGreaterEqual, TokenName,
		}},
		{"assignment vs equality", "a = b == c", []TokenType{
			TokenName, TokenAssign, TokenName, TokenEqual, TokenName,
		}},
		{"keywords", "if a then b else c and d or not e", []TokenType{
			TokenIf, TokenName, TokenThen, TokenName, TokenElse,
			TokenName, TokenAnd, TokenName, TokenOr, TokenNot, TokenName,
		}},
		{"grouping", "([{}])", []TokenType{
			TokenParenOpen, TokenBracketOpen, TokenBraceOpen,
			TokenBraceClose, TokenBracketClose, TokenParenClose,
		}},
		{"call", "max(1, 2)", []TokenType{
			TokenName, TokenParenOpen, TokenNumber, TokenComma, TokenNumber, TokenParenClose,
		}},
		{"statements", "a; b", []TokenType{TokenName, TokenSemicolon, TokenName}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := collect(t, tt.input)
			if len(toks) != len(tt.types) {
				t.Fatalf("got %d tokens, want %d: %v", len(toks), len(tt.types), toks)
			}
			for i, tok := range toks {
				if tok.Type != tt.types[i] {
					t.Errorf("token %d: got %s, want %s", i, tok.Type, tt.types[i])
				}
			}
		})
	}
}

func TestLexerValues(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42.5", "42.5"},
		{"1e-10", "1e-10"},
		{`"hi there"`, "hi there"},
		{":ceiling", "ceiling"},
		{"nan?", "nan?"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := NewLexer(tt.input).Next()
			if tok.Value != tt.want {
				t.Errorf("got %q, want %q", tok.Value, tt.want)
			}
		})
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unterminated string", `"hello`},
		{"bare bang", "!x"},
		{"dangling decimal point", "1."},
		{"empty exponent", "1e"},
		{"empty atom", ": "},
		{"unexpected character", "@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLexer(tt.input)
			for {
				tok := l.Next()
				if tok.Type == TokenError {
					return
				}
				if tok.Type == TokenEOF {
					t.Fatal("expected an error token")
				}
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	l := NewLexer("ab + cd")
	first := l.Next()
	op := l.Next()
	second := l.Next()

	if first.Position != 0 || op.Position != 3 || second.Position != 5 {
		t.Errorf("positions: got %d %d %d, want 0 3 5", first.Position, op.Position, second.Position)
	}
}
