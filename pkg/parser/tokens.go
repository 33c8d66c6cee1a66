package parser

// TokenType represents the type of a lexical token.
type TokenType uint8

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Literals
	TokenString // "hello" or 'hello'
	TokenNumber // 123, 3.14, 1e-10
	TokenName   // identifier, possibly with a trailing ? (nan?, inf?)
	TokenAtom   // :half_up, :ceiling

	// Grouping symbols
	TokenBracketOpen  // [
	TokenBracketClose // ]
	TokenBraceOpen    // {
	TokenBraceClose   // }
	TokenParenOpen    // (
	TokenParenClose   // )

	// Basic symbols
	TokenComma     // ,
	TokenSemicolon // ;

	// Arithmetic operators
	TokenPlus  // +
	TokenMinus // -
	TokenMult  // *
	TokenDiv   // /

	// Comparison operators
	TokenEqual        // ==
	TokenNotEqual     // !=
	TokenLess         // <
	TokenLessEqual    // <=
	TokenGreater      // >
	TokenGreaterEqual // >=

	// Assignment
	TokenAssign // =

	// Keywords
	TokenIf   // if
	TokenThen // then
	TokenElse // else
	TokenAnd  // and
	TokenOr   // or
	TokenNot  // not
)

// String returns a string representation of the token type.
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "(eof)"
	case TokenError:
		return "(error)"
	case TokenString:
		return "(string)"
	case TokenNumber:
		return "(number)"
	case TokenName:
		return "(name)"
	case TokenAtom:
		return "(atom)"
	case TokenBracketOpen:
		return "["
	case TokenBracketClose:
		return "]"
	case TokenBraceOpen:
		return "{"
	case TokenBraceClose:
		return "}"
	case TokenParenOpen:
		return "("
	case TokenParenClose:
		return ")"
	case TokenComma:
		return ","
	case TokenSemicolon:
		return ";"
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenMult:
		return "*"
	case TokenDiv:
		return "/"
	case TokenEqual:
		return "=="
	case TokenNotEqual:
		return "!="
	case TokenLess:
		return "<"
	case TokenLessEqual:
		return "<="
	case TokenGreater:
		return ">"
	case TokenGreaterEqual:
		return ">="
	case TokenAssign:
		return "="
	case TokenIf:
		return "if"
	case TokenThen:
		return "then"
	case TokenElse:
		return "else"
	case TokenAnd:
		return "and"
	case TokenOr:
		return "or"
	case TokenNot:
		return "not"
	default:
		return "(unknown)"
	}
}

// Token is a single lexical token with its source position.
type Token struct {
	Type     TokenType
	Value    string
	Position int
}

// keywords maps reserved identifiers to their token types.
var keywords = map[string]TokenType{
	"if":   TokenIf,
	"then": TokenThen,
	"else": TokenElse,
	"and":  TokenAnd,
	"or":   TokenOr,
	"not":  TokenNot,
}
