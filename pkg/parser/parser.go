// Package parser implements a parser for the decimal expression grammar.
//
// The grammar is a fixed infix subset: number/string/atom literals,
// arithmetic and comparison operators, a closed set of named functions,
// tuples and lists, simple assignment, if/then/else, and/or, and
// semicolon-separated blocks. The parser produces raw trees; folding and
// operator resolution happen in the rewriter.
//
// The parser uses Pratt's "Top Down Operator Precedence" algorithm to
// handle operator precedence correctly. Expressions can equally be built
// programmatically with the pkg/types constructors; the parser is a
// convenience front end.
package parser

import (
	"fmt"

	"github.com/sandrolain/decexpr/pkg/types"
)

// Parse parses an expression and returns the raw tree. A semicolon
// separated sequence parses to a block node.
func Parse(input string) (*types.ASTNode, error) {
	p := newParser(input)
	return p.parse()
}

// Operator precedence table (binding power).
// Higher values bind more tightly.
var precedence = map[TokenType]int{
	TokenAssign:       10, // =
	TokenOr:           25, // or
	TokenAnd:          30, // and
	TokenEqual:        40, // ==
	TokenNotEqual:     40, // !=
	TokenLess:         40, // <
	TokenLessEqual:    40, // <=
	TokenGreater:      40, // >
	TokenGreaterEqual: 40, // >=
	TokenPlus:         50, // +
	TokenMinus:        50, // -
	TokenMult:         60, // *
	TokenDiv:          60, // /
}

// unaryPrecedence binds prefix +/-/not tighter than any binary operator.
const unaryPrecedence = 70

type parser struct {
	lexer   *Lexer
	current Token
}

func newParser(input string) *parser {
	p := &parser{lexer: NewLexer(input)}
	p.advance()
	return p
}

func (p *parser) parse() (*types.ASTNode, error) {
	if p.current.Type == TokenEOF {
		return nil, p.errorf(types.ErrSyntaxError, "empty expression")
	}

	node, err := p.parseStatements(TokenEOF)
	if err != nil {
		return nil, err
	}
	if p.current.Type != TokenEOF {
		return nil, p.errorf(types.ErrSyntaxError, "unexpected token %q", p.current.Value)
	}
	return node, nil
}

// parseStatements parses semicolon-separated statements up to the
// terminator. A single statement is returned bare; several become a
// block preserving order.
func (p *parser) parseStatements(terminator TokenType) (*types.ASTNode, error) {
	var stmts []*types.ASTNode
	for {
		stmt, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if p.current.Type != TokenSemicolon {
			break
		}
		p.advance()
		if p.current.Type == terminator {
			break // trailing semicolon
		}
	}
	if len(stmts) == 1 {
		return stmts[0], nil
	}
	block := types.Block(stmts...)
	block.Position = stmts[0].Position
	return block, nil
}

// parseExpression implements the Pratt loop: a prefix form, then binary
// operators while they bind tighter than rbp.
func (p *parser) parseExpression(rbp int) (*types.ASTNode, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for precedence[p.current.Type] > rbp {
		left, err = p.parseInfix(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *parser) parsePrefix() (*types.ASTNode, error) {
	tok := p.current
	switch tok.Type {
	case TokenError:
		return nil, p.errorf(types.ErrSyntaxError, "%s", tok.Value)

	case TokenEOF:
		return nil, p.errorf(types.ErrUnexpectedEnd, "unexpected end of expression")

	case TokenNumber:
		p.advance()
		return p.leaf(types.NodeNumber, tok), nil

	case TokenString:
		p.advance()
		return p.leaf(types.NodeString, tok), nil

	case TokenAtom:
		p.advance()
		return p.leaf(types.NodeAtom, tok), nil

	case TokenName:
		p.advance()
		if p.current.Type == TokenParenOpen {
			return p.parseCall(tok)
		}
		return p.leaf(types.NodeVariable, tok), nil

	case TokenPlus, TokenMinus:
		p.advance()
		operand, err := p.parseExpression(unaryPrecedence)
		if err != nil {
			return nil, err
		}
		node := types.Unary(tok.Value, operand)
		node.Position = tok.Position
		return node, nil

	case TokenNot:
		p.advance()
		operand, err := p.parseExpression(unaryPrecedence)
		if err != nil {
			return nil, err
		}
		node := types.Unary("not", operand)
		node.Position = tok.Position
		return node, nil

	case TokenIf:
		return p.parseIf(tok)

	case TokenParenOpen:
		p.advance()
		node, err := p.parseStatements(TokenParenClose)
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenParenClose); err != nil {
			return nil, err
		}
		return node, nil

	case TokenBracketOpen:
		members, err := p.parseMembers(tok, TokenBracketClose)
		if err != nil {
			return nil, err
		}
		node := types.List(members...)
		node.Position = tok.Position
		return node, nil

	case TokenBraceOpen:
		members, err := p.parseMembers(tok, TokenBraceClose)
		if err != nil {
			return nil, err
		}
		node := types.Tuple(members...)
		node.Position = tok.Position
		return node, nil

	default:
		return nil, p.errorf(types.ErrSyntaxError, "unexpected token %q", tok.Value)
	}
}

func (p *parser) parseInfix(left *types.ASTNode) (*types.ASTNode, error) {
	tok := p.current
	bp := precedence[tok.Type]
	p.advance()

	if tok.Type == TokenAssign {
		// Right-associative; the target may be any expression here so
		// that non-name targets reach the rewriter's static check.
		rhs, err := p.parseExpression(bp - 1)
		if err != nil {
			return nil, err
		}
		node := types.Assign(left, rhs)
		node.Position = tok.Position
		return node, nil
	}

	rhs, err := p.parseExpression(bp)
	if err != nil {
		return nil, err
	}
	node := types.Binary(tok.Type.String(), left, rhs)
	node.Position = tok.Position
	return node, nil
}

func (p *parser) parseCall(name Token) (*types.ASTNode, error) {
	args, err := p.parseMembers(p.current, TokenParenClose)
	if err != nil {
		return nil, err
	}
	node := types.Call(name.Value, args...)
	node.Position = name.Position
	return node, nil
}

// parseMembers parses a comma-separated member list from the opening
// token through the closing one.
func (p *parser) parseMembers(open Token, terminator TokenType) ([]*types.ASTNode, error) {
	p.advance() // consume opening token
	var members []*types.ASTNode
	if p.current.Type == terminator {
		p.advance()
		return members, nil
	}
	for {
		member, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
		if p.current.Type == TokenComma {
			p.advance()
			continue
		}
		break
	}
	if err := p.expect(terminator); err != nil {
		return nil, err
	}
	return members, nil
}

func (p *parser) parseIf(tok Token) (*types.ASTNode, error) {
	p.advance() // consume "if"
	cond, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenThen); err != nil {
		return nil, err
	}
	then, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	var els *types.ASTNode
	if p.current.Type == TokenElse {
		p.advance()
		els, err = p.parseExpression(0)
		if err != nil {
			return nil, err
		}
	}
	node := types.If(cond, then, els)
	node.Position = tok.Position
	return node, nil
}

func (p *parser) leaf(nodeType types.NodeType, tok Token) *types.ASTNode {
	return &types.ASTNode{Type: nodeType, StrValue: tok.Value, Position: tok.Position}
}

func (p *parser) advance() {
	p.current = p.lexer.Next()
}

func (p *parser) expect(tt TokenType) error {
	if p.current.Type != tt {
		return p.errorf(types.ErrExpectedToken, "expected %s, got %q", tt, p.current.Value)
	}
	p.advance()
	return nil
}

func (p *parser) errorf(code types.ErrorCode, format string, args ...interface{}) error {
	return types.NewError(code, fmt.Sprintf(format, args...), p.current.Position)
}
