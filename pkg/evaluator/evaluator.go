// Package evaluator interprets rewritten decimal expression trees.
//
// The evaluator receives a rewritten tree from the rewriter and runs it:
// primitive calls dispatch into the decimal library, variables resolve
// against bindings through runtime coercion, blocks introduce scopes.
// The precision/rounding/trap record for one evaluation is resolved once
// per invocation and travels in the context.Context, so overrides never
// leak into the caller's scope and concurrent evaluations stay isolated.
//
// # Example
//
//	expr, err := rewriter.Rewrite(tree)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ev := evaluator.New(evaluator.WithPrecision(2))
//	result, err := ev.Eval(context.Background(), expr)
package evaluator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cockroachdb/apd/v3"

	"github.com/sandrolain/decexpr/pkg/decimal"
	"github.com/sandrolain/decexpr/pkg/rewriter"
	"github.com/sandrolain/decexpr/pkg/types"
)

// Bind is one entry of the ordered bind list: a name bound to the result
// of coercing a source expression (or a ready value) exactly once, before
// the block body runs. A bound name shadows any outer variable of the
// same name for the rest of the block.
type Bind struct {
	Name  string
	Expr  *types.ASTNode // source expression; nil when Value is used
	Value interface{}    // ready value, coerced directly
}

// Evaluator evaluates rewritten expressions.
type Evaluator struct {
	opts   EvalOptions
	logger *slog.Logger
}

// EvalOptions configures evaluator behavior.
type EvalOptions struct {
	// Context, when non-nil, replaces the ambient decimal record
	// verbatim for the evaluation.
	Context *apd.Context
	// Precision/Rounding/Traps are partial overrides merged onto the
	// ambient (or Context) record; nil fields keep the ambient value.
	Precision *uint32
	Rounding  *string
	Traps     *apd.Condition
	// Output selects the representation of the final result.
	// Defaults to decimal (the value unchanged).
	Output decimal.Output
	// Binds is the ordered pre-block bind list.
	Binds []Bind
	// MaxDepth limits tree recursion depth.
	MaxDepth int
	// Debug enables debug logging.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
}

// New creates a new Evaluator with default options.
func New(opts ...EvalOption) *Evaluator {
	options := EvalOptions{
		Output:   decimal.OutputDecimal,
		MaxDepth: 10000,
	}

	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	return &Evaluator{
		opts:   options,
		logger: options.Logger,
	}
}

// Eval evaluates a rewritten expression.
func (e *Evaluator) Eval(ctx context.Context, expr *types.Expression) (interface{}, error) {
	return e.EvalWithBindings(ctx, expr, nil)
}

// EvalWithBindings evaluates a rewritten expression with outer variable
// bindings. Bind-list entries shadow same-named outer bindings.
func (e *Evaluator) EvalWithBindings(ctx context.Context, expr *types.Expression, bindings map[string]interface{}) (interface{}, error) {
	if expr == nil || expr.AST() == nil {
		return nil, fmt.Errorf("invalid expression")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// Resolve the effective decimal record once per invocation and
	// carry it in a derived context. The caller's context is untouched,
	// so the prior ambient record is in effect again on every exit path.
	resolved, err := e.resolveContext(ctx)
	if err != nil {
		return nil, err
	}
	ctx = decimal.WithContext(ctx, resolved)

	evalCtx := NewContext()
	evalCtx.SetBindings(bindings)

	// Each bind entry is coerced exactly once, regardless of how many
	// times the bound name recurs in the block body.
	for _, b := range e.opts.Binds {
		value, err := e.evalBindEntry(ctx, b, evalCtx)
		if err != nil {
			return nil, err
		}
		evalCtx.SetBinding(b.Name, value)
	}

	result, err := e.evalNode(ctx, expr.AST(), evalCtx, 0)
	if err != nil {
		return nil, err
	}

	return decimal.Convert(ctx, result, e.opts.Output)
}

func (e *Evaluator) evalBindEntry(ctx context.Context, b Bind, evalCtx *EvalContext) (interface{}, error) {
	if b.Expr == nil {
		return decimal.Coerce(b.Value), nil
	}
	compiled, err := rewriter.Rewrite(b.Expr)
	if err != nil {
		return nil, err
	}
	value, err := e.evalNode(ctx, compiled.AST(), evalCtx, 0)
	if err != nil {
		return nil, err
	}
	return decimal.Coerce(value), nil
}

// resolveContext computes the effective decimal record for one
// invocation: the full replacement record when given, otherwise the
// ambient record from ctx, with any partial overrides merged on top.
func (e *Evaluator) resolveContext(ctx context.Context) (*apd.Context, error) {
	base := e.opts.Context
	if base == nil {
		base = decimal.FromContext(ctx)
	}
	if e.opts.Precision == nil && e.opts.Rounding == nil && e.opts.Traps == nil {
		return base, nil
	}
	return decimal.Resolve(base, &decimal.Overrides{
		Precision: e.opts.Precision,
		Rounding:  e.opts.Rounding,
		Traps:     e.opts.Traps,
	})
}

// EvalOption configures evaluation behavior.
type EvalOption func(*EvalOptions)

// WithContext installs a full decimal record, replacing the ambient one
// verbatim for the evaluation.
func WithContext(dctx *apd.Context) EvalOption {
	return func(opts *EvalOptions) {
		opts.Context = dctx
	}
}

// WithPrecision overrides the precision field of the ambient record.
func WithPrecision(precision uint32) EvalOption {
	return func(opts *EvalOptions) {
		opts.Precision = &precision
	}
}

// WithRounding overrides the rounding strategy of the ambient record.
// The name must be one of the seven strategy names; resolution fails on
// anything else.
func WithRounding(name string) EvalOption {
	return func(opts *EvalOptions) {
		opts.Rounding = &name
	}
}

// WithTraps overrides the trap flag set of the ambient record.
func WithTraps(traps apd.Condition) EvalOption {
	return func(opts *EvalOptions) {
		opts.Traps = &traps
	}
}

// WithOutput selects the output representation of the final result.
func WithOutput(tag decimal.Output) EvalOption {
	return func(opts *EvalOptions) {
		opts.Output = tag
	}
}

// WithBind appends a bind entry whose value is the one-time coercion of
// the given source expression.
func WithBind(name string, expr *types.ASTNode) EvalOption {
	return func(opts *EvalOptions) {
		opts.Binds = append(opts.Binds, Bind{Name: name, Expr: expr})
	}
}

// WithBindValue appends a bind entry for an already-computed value,
// coerced once.
func WithBindValue(name string, value interface{}) EvalOption {
	return func(opts *EvalOptions) {
		opts.Binds = append(opts.Binds, Bind{Name: name, Value: value})
	}
}

// WithMaxDepth sets the maximum tree recursion depth.
func WithMaxDepth(depth int) EvalOption {
	return func(opts *EvalOptions) {
		opts.MaxDepth = depth
	}
}

// WithDebug enables or disables debug logging.
func WithDebug(enabled bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Debug = enabled
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) EvalOption {
	return func(opts *EvalOptions) {
		opts.Logger = logger
	}
}
