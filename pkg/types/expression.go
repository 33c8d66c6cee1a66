// Package types defines the core type system for DecExpr.
//
// This package contains type definitions for:
//   - Expression: rewritten expression trees ready for evaluation
//   - ASTNode: expression tree nodes and builder helpers
//   - Error types: structured errors with codes
package types

// Expression represents a rewritten expression.
//
// An Expression can be evaluated multiple times, each time against its own
// variable bindings and decimal context. It is safe for concurrent use by
// multiple goroutines: the rewritten tree is never mutated by evaluation.
type Expression struct {
	ast    *ASTNode
	source string
}

// NewExpression creates a new Expression from a rewritten AST.
func NewExpression(ast *ASTNode, source string) *Expression {
	return &Expression{
		ast:    ast,
		source: source,
	}
}

// AST returns the rewritten tree of the expression.
func (e *Expression) AST() *ASTNode {
	return e.ast
}

// Source returns the source text the expression was built from, when it
// came through the parser; for programmatically built trees it is the
// canonical rendering of the input tree.
func (e *Expression) Source() string {
	return e.source
}

// String returns a string representation of the expression.
func (e *Expression) String() string {
	return e.source
}
