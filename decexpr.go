// Package decexpr evaluates infix arithmetic/comparison expressions over
// arbitrary-precision decimals.
//
// Expressions are ordinary infix notation, written as text or built as
// trees, whose numbers resolve to an arbitrary-precision decimal backend
// (github.com/cockroachdb/apd/v3) instead of machine floats, with no
// manual conversion calls at the operands.
//
// # Quick Start
//
//	// Simple evaluation
//	result, err := decexpr.EvalString(`21.0 + "21.0"`)
//
//	// Rewrite once, evaluate many times
//	expr, err := decexpr.Rewrite(tree)
//	ev := evaluator.New(evaluator.WithPrecision(2))
//	result1, _ := ev.Eval(ctx, expr)
//	result2, _ := ev.EvalWithBindings(ctx, expr, bindings)
//
//	// With options
//	result, err := decexpr.EvalString("1/3",
//	    decexpr.WithPrecision(2),
//	    decexpr.WithOutput(decimal.OutputString),
//	)
//
// # Architecture
//
// The engine is two cooperating passes. The rewriter (pkg/rewriter) runs
// once per expression: a pure structural transform that folds literals to
// concrete decimal values, resolves operators to primitive calls, and
// delegates unrecognized forms to runtime coercion. The evaluator
// (pkg/evaluator) then runs the rewritten tree against bindings under a
// precision/rounding/trap record resolved once per invocation and carried
// in the context.Context, so overrides never leak past the evaluation.
//
// # More Information
//
// For detailed documentation, see:
//   - Parser: github.com/sandrolain/decexpr/pkg/parser
//   - Rewriter: github.com/sandrolain/decexpr/pkg/rewriter
//   - Evaluator: github.com/sandrolain/decexpr/pkg/evaluator
//   - Decimal primitives: github.com/sandrolain/decexpr/pkg/decimal
//   - Types: github.com/sandrolain/decexpr/pkg/types
package decexpr

import (
	"context"
	"fmt"

	"github.com/sandrolain/decexpr/pkg/cache"
	"github.com/sandrolain/decexpr/pkg/evaluator"
	"github.com/sandrolain/decexpr/pkg/parser"
	"github.com/sandrolain/decexpr/pkg/rewriter"
	"github.com/sandrolain/decexpr/pkg/types"
)

// Version returns the current version of DecExpr.
func Version() string {
	return "v0.1.0-dev"
}

// Re-exported option constructors so single-call users need only this
// package and pkg/decimal for the output tags.
var (
	WithContext   = evaluator.WithContext
	WithPrecision = evaluator.WithPrecision
	WithRounding  = evaluator.WithRounding
	WithTraps     = evaluator.WithTraps
	WithOutput    = evaluator.WithOutput
	WithBind      = evaluator.WithBind
	WithBindValue = evaluator.WithBindValue
	WithLogger    = evaluator.WithLogger
	WithDebug     = evaluator.WithDebug
)

// rewriteCache caches rewritten expressions by canonical source when
// caching is enabled through EvalCached.
var rewriteCache = cache.New(256)

// Rewrite transforms a raw expression tree for repeated evaluation.
//
// Static errors (non-name assignment targets, unknown literal rounding
// strategies, arity mismatches) surface here, before any evaluation. The
// returned Expression is safe for concurrent use.
func Rewrite(tree *types.ASTNode) (*types.Expression, error) {
	return rewriter.Rewrite(tree)
}

// MustRewrite is like Rewrite but panics if the tree cannot be rewritten.
// It simplifies safe initialization of global variables.
func MustRewrite(tree *types.ASTNode) *types.Expression {
	expr, err := rewriter.Rewrite(tree)
	if err != nil {
		panic(fmt.Sprintf("decexpr: Rewrite(%s): %v", tree, err))
	}
	return expr
}

// Parse parses expression text into a raw tree.
func Parse(input string) (*types.ASTNode, error) {
	return parser.Parse(input)
}

// Eval is a convenience function that rewrites and evaluates a tree in a
// single call, under the ambient decimal context.
//
// For repeated evaluations of the same expression, use Rewrite with an
// evaluator instead.
func Eval(tree *types.ASTNode, opts ...evaluator.EvalOption) (interface{}, error) {
	expr, err := rewriter.Rewrite(tree)
	if err != nil {
		return nil, err
	}
	return evaluator.New(opts...).Eval(context.Background(), expr)
}

// EvalWithContext evaluates a tree with a custom context, which may carry
// an ambient decimal record installed by decimal.WithContext.
func EvalWithContext(ctx context.Context, tree *types.ASTNode, opts ...evaluator.EvalOption) (interface{}, error) {
	expr, err := rewriter.Rewrite(tree)
	if err != nil {
		return nil, err
	}
	return evaluator.New(opts...).Eval(ctx, expr)
}

// EvalString parses, rewrites and evaluates expression text.
func EvalString(input string, opts ...evaluator.EvalOption) (interface{}, error) {
	tree, err := parser.Parse(input)
	if err != nil {
		return nil, err
	}
	return Eval(tree, opts...)
}

// EvalCached is like Eval but caches the rewritten form keyed by the
// tree's canonical rendering, so repeated calls with identical trees skip
// the rewrite pass.
func EvalCached(ctx context.Context, tree *types.ASTNode, opts ...evaluator.EvalOption) (interface{}, error) {
	expr, err := rewriteCache.GetOrRewrite(tree.String(), func() (*types.Expression, error) {
		return rewriter.Rewrite(tree)
	})
	if err != nil {
		return nil, err
	}
	return evaluator.New(opts...).Eval(ctx, expr)
}
