package types

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// NodeType identifies the type of an AST node.
type NodeType string

// AST node types for the decimal expression grammar.
const (
	// Literals
	NodeNumber NodeType = "number" // numeric literal, text in StrValue
	NodeString NodeType = "string" // string literal
	NodeAtom   NodeType = "atom"   // bare symbol, e.g. a rounding strategy tag

	// Operators
	NodeBinary NodeType = "binary" // + - * / > < >= <= == != and or
	NodeUnary  NodeType = "unary"  // + - not

	// Calls
	NodeCall NodeType = "call" // named function call

	// Control flow
	NodeIf     NodeType = "if"     // if/then/else
	NodeBlock  NodeType = "block"  // ordered statement sequence
	NodeAssign NodeType = "assign" // name = expr

	// Constructors
	NodeTuple NodeType = "tuple" // fixed-shape member group
	NodeList  NodeType = "list"  // [...]

	// Leaves resolved at evaluation time
	NodeVariable NodeType = "variable" // named binding, unknown until run
	NodeOpaque   NodeType = "opaque"   // unrecognized form delegated whole

	// Introduced by the rewriter
	NodeDecimal NodeType = "decimal" // folded literal, Decimal holds the value
)

// ASTNode represents a node in the expression tree.
//
// Trees may be produced by the parser or built directly with the
// constructor helpers below; the rewriter and evaluator accept either.
type ASTNode struct {
	Type     NodeType
	Value    interface{}
	StrValue string // operator, call name, variable name, atom or literal text
	Position int

	// Relations
	LHS         *ASTNode     // left operand; if condition; assignment target
	RHS         *ASTNode     // right operand; if "then" branch; assigned expr
	Else        *ASTNode     // if "else" branch
	Arguments   []*ASTNode   // call arguments
	Expressions []*ASTNode   // block statements, tuple/list members
	Decimal     *apd.Decimal // folded literal value (NodeDecimal only)
}

// NewASTNode creates a new AST node of the specified type.
func NewASTNode(nodeType NodeType, position int) *ASTNode {
	return &ASTNode{
		Type:     nodeType,
		Position: position,
	}
}

// Constructor helpers for building trees without the parser.

// Num builds a numeric literal node from its source text.
func Num(text string) *ASTNode {
	return &ASTNode{Type: NodeNumber, StrValue: text, Position: -1}
}

// Str builds a string literal node.
func Str(s string) *ASTNode {
	return &ASTNode{Type: NodeString, StrValue: s, Position: -1}
}

// Atom builds a bare symbol node.
func Atom(name string) *ASTNode {
	return &ASTNode{Type: NodeAtom, StrValue: name, Position: -1}
}

// Var builds a variable reference node.
func Var(name string) *ASTNode {
	return &ASTNode{Type: NodeVariable, StrValue: name, Position: -1}
}

// Binary builds a binary operator node.
func Binary(op string, lhs, rhs *ASTNode) *ASTNode {
	return &ASTNode{Type: NodeBinary, StrValue: op, LHS: lhs, RHS: rhs, Position: -1}
}

// Unary builds a unary operator node.
func Unary(op string, operand *ASTNode) *ASTNode {
	return &ASTNode{Type: NodeUnary, StrValue: op, LHS: operand, Position: -1}
}

// Call builds a function call node.
func Call(name string, args ...*ASTNode) *ASTNode {
	return &ASTNode{Type: NodeCall, StrValue: name, Arguments: args, Position: -1}
}

// Assign builds an assignment node. target is a full node so that invalid
// (non-name) targets can be represented and rejected by the rewriter.
func Assign(target, expr *ASTNode) *ASTNode {
	return &ASTNode{Type: NodeAssign, LHS: target, RHS: expr, Position: -1}
}

// If builds a conditional node. elseExpr may be nil.
func If(cond, then, elseExpr *ASTNode) *ASTNode {
	return &ASTNode{Type: NodeIf, LHS: cond, RHS: then, Else: elseExpr, Position: -1}
}

// Block builds an ordered statement sequence.
func Block(stmts ...*ASTNode) *ASTNode {
	return &ASTNode{Type: NodeBlock, Expressions: stmts, Position: -1}
}

// Tuple builds a fixed-shape member group.
func Tuple(members ...*ASTNode) *ASTNode {
	return &ASTNode{Type: NodeTuple, Expressions: members, Position: -1}
}

// List builds a list literal.
func List(members ...*ASTNode) *ASTNode {
	return &ASTNode{Type: NodeList, Expressions: members, Position: -1}
}

// Opaque wraps an arbitrary runtime value (or a thunk, see OpaqueFunc)
// as a leaf delegated whole to runtime coercion.
func Opaque(value interface{}) *ASTNode {
	return &ASTNode{Type: NodeOpaque, Value: value, Position: -1}
}

// OpaqueFunc is the thunk shape an opaque node may carry. The evaluator
// invokes it on every visit and coerces the result.
type OpaqueFunc func() (interface{}, error)

// FoldedDecimal builds a node embedding an already-parsed decimal value.
func FoldedDecimal(d *apd.Decimal) *ASTNode {
	return &ASTNode{Type: NodeDecimal, Decimal: d, Position: -1}
}

// String renders the node as a canonical s-expression. The rendering is
// stable for identical trees and serves as the cache key for rewritten
// expressions.
func (n *ASTNode) String() string {
	if n == nil {
		return "()"
	}
	var b strings.Builder
	n.render(&b)
	return b.String()
}

func (n *ASTNode) render(b *strings.Builder) {
	switch n.Type {
	case NodeNumber, NodeAtom:
		b.WriteString(n.StrValue)
	case NodeString:
		fmt.Fprintf(b, "%q", n.StrValue)
	case NodeDecimal:
		b.WriteString(n.Decimal.String())
	case NodeVariable:
		b.WriteString("$")
		b.WriteString(n.StrValue)
	case NodeOpaque:
		fmt.Fprintf(b, "(opaque %p)", n)
	case NodeBinary:
		b.WriteString("(")
		b.WriteString(n.StrValue)
		b.WriteString(" ")
		n.LHS.render(b)
		b.WriteString(" ")
		n.RHS.render(b)
		b.WriteString(")")
	case NodeUnary:
		b.WriteString("(")
		b.WriteString(n.StrValue)
		b.WriteString(" ")
		n.LHS.render(b)
		b.WriteString(")")
	case NodeCall:
		b.WriteString("(")
		b.WriteString(n.StrValue)
		for _, a := range n.Arguments {
			b.WriteString(" ")
			a.render(b)
		}
		b.WriteString(")")
	case NodeAssign:
		b.WriteString("(= ")
		n.LHS.render(b)
		b.WriteString(" ")
		n.RHS.render(b)
		b.WriteString(")")
	case NodeIf:
		b.WriteString("(if ")
		n.LHS.render(b)
		b.WriteString(" ")
		n.RHS.render(b)
		if n.Else != nil {
			b.WriteString(" ")
			n.Else.render(b)
		}
		b.WriteString(")")
	case NodeBlock, NodeTuple, NodeList:
		b.WriteString("(")
		b.WriteString(string(n.Type))
		for _, e := range n.Expressions {
			b.WriteString(" ")
			e.render(b)
		}
		b.WriteString(")")
	default:
		fmt.Fprintf(b, "(%s)", n.Type)
	}
}
