package evaluator

import (
	"context"
	"fmt"

	"github.com/sandrolain/decexpr/pkg/types"
)

// evalNode evaluates a rewritten AST node in the given scope.
func (e *Evaluator) evalNode(ctx context.Context, node *types.ASTNode, evalCtx *EvalContext, depth int) (interface{}, error) {
	if node == nil {
		return nil, nil
	}

	if e.opts.MaxDepth > 0 && depth > e.opts.MaxDepth {
		return nil, types.NewError(types.ErrMaxDepth, "maximum recursion depth exceeded", node.Position)
	}

	if e.opts.Debug {
		e.logger.Debug("evaluating node",
			"type", node.Type,
			"value", node.StrValue,
			"depth", depth)
	}

	switch node.Type {
	case types.NodeDecimal:
		// Folded at rewrite time, embedded verbatim; never re-parsed.
		return node.Decimal, nil
	case types.NodeString:
		return node.StrValue, nil
	case types.NodeAtom:
		return node.StrValue, nil
	case types.NodeVariable:
		return e.evalVariable(node, evalCtx)
	case types.NodeOpaque:
		return e.evalOpaque(node)
	case types.NodeCall:
		return e.evalCall(ctx, node, evalCtx, depth)
	case types.NodeUnary:
		return e.evalUnary(ctx, node, evalCtx, depth)
	case types.NodeBinary:
		return e.evalBinary(ctx, node, evalCtx, depth)
	case types.NodeAssign:
		return e.evalAssign(ctx, node, evalCtx, depth)
	case types.NodeIf:
		return e.evalIf(ctx, node, evalCtx, depth)
	case types.NodeBlock:
		return e.evalBlock(ctx, node, evalCtx, depth)
	case types.NodeTuple, types.NodeList:
		return e.evalMembers(ctx, node, evalCtx, depth)
	default:
		return nil, fmt.Errorf("unsupported node type: %s", node.Type)
	}
}

// evalVariable resolves a named binding. The raw value is returned here;
// the rewriter guarantees a coercion call wraps every variable read.
func (e *Evaluator) evalVariable(node *types.ASTNode, evalCtx *EvalContext) (interface{}, error) {
	value, ok := evalCtx.GetBinding(node.StrValue)
	if !ok {
		return nil, types.NewError(types.ErrUndefinedVariable,
			fmt.Sprintf("undefined variable %q", node.StrValue), node.Position)
	}
	return value, nil
}

// evalOpaque yields the value of a delegated form: a thunk is invoked on
// every visit, any other payload (including a whole undelegatable
// sub-tree) is handed back as-is for the wrapping coercion call.
func (e *Evaluator) evalOpaque(node *types.ASTNode) (interface{}, error) {
	if fn, ok := node.Value.(types.OpaqueFunc); ok {
		return fn()
	}
	return node.Value, nil
}

func (e *Evaluator) evalCall(ctx context.Context, node *types.ASTNode, evalCtx *EvalContext, depth int) (interface{}, error) {
	fn, ok := GetFunction(node.StrValue)
	if !ok {
		return nil, types.NewError(types.ErrUndefinedFunction,
			fmt.Sprintf("unknown function %q", node.StrValue), node.Position)
	}
	if len(node.Arguments) < fn.MinArgs || (fn.MaxArgs >= 0 && len(node.Arguments) > fn.MaxArgs) {
		return nil, types.NewError(types.ErrArgumentCount,
			fmt.Sprintf("%s expects %d..%d arguments, got %d",
				fn.Name, fn.MinArgs, fn.MaxArgs, len(node.Arguments)), node.Position)
	}

	args := make([]interface{}, len(node.Arguments))
	for i, arg := range node.Arguments {
		value, err := e.evalNode(ctx, arg, evalCtx, depth+1)
		if err != nil {
			return nil, err
		}
		args[i] = value
	}
	return fn.Impl(ctx, e, evalCtx, args)
}

func (e *Evaluator) evalUnary(ctx context.Context, node *types.ASTNode, evalCtx *EvalContext, depth int) (interface{}, error) {
	operand, err := e.evalNode(ctx, node.LHS, evalCtx, depth+1)
	if err != nil {
		return nil, err
	}
	switch node.StrValue {
	case "not":
		return !isTruthy(operand), nil
	default:
		return nil, fmt.Errorf("unsupported unary operator: %s", node.StrValue)
	}
}

// evalBinary handles the operators that survive rewriting: the
// short-circuit logical forms. Arithmetic and comparisons arrive as
// primitive calls instead.
func (e *Evaluator) evalBinary(ctx context.Context, node *types.ASTNode, evalCtx *EvalContext, depth int) (interface{}, error) {
	switch node.StrValue {
	case "and":
		return e.evalAnd(ctx, node, evalCtx, depth)
	case "or":
		return e.evalOr(ctx, node, evalCtx, depth)
	default:
		return nil, fmt.Errorf("unsupported binary operator: %s", node.StrValue)
	}
}

// evalAnd evaluates logical AND (short-circuit, left first).
func (e *Evaluator) evalAnd(ctx context.Context, node *types.ASTNode, evalCtx *EvalContext, depth int) (interface{}, error) {
	left, err := e.evalNode(ctx, node.LHS, evalCtx, depth+1)
	if err != nil {
		return nil, err
	}

	if !isTruthy(left) {
		return false, nil
	}

	right, err := e.evalNode(ctx, node.RHS, evalCtx, depth+1)
	if err != nil {
		return nil, err
	}

	return isTruthy(right), nil
}

// evalOr evaluates logical OR (short-circuit, left first).
func (e *Evaluator) evalOr(ctx context.Context, node *types.ASTNode, evalCtx *EvalContext, depth int) (interface{}, error) {
	left, err := e.evalNode(ctx, node.LHS, evalCtx, depth+1)
	if err != nil {
		return nil, err
	}

	if isTruthy(left) {
		return true, nil
	}

	right, err := e.evalNode(ctx, node.RHS, evalCtx, depth+1)
	if err != nil {
		return nil, err
	}

	return isTruthy(right), nil
}

func (e *Evaluator) evalAssign(ctx context.Context, node *types.ASTNode, evalCtx *EvalContext, depth int) (interface{}, error) {
	value, err := e.evalNode(ctx, node.RHS, evalCtx, depth+1)
	if err != nil {
		return nil, err
	}
	evalCtx.SetBinding(node.StrValue, value)
	return value, nil
}

func (e *Evaluator) evalIf(ctx context.Context, node *types.ASTNode, evalCtx *EvalContext, depth int) (interface{}, error) {
	cond, err := e.evalNode(ctx, node.LHS, evalCtx, depth+1)
	if err != nil {
		return nil, err
	}
	if isTruthy(cond) {
		return e.evalNode(ctx, node.RHS, evalCtx, depth+1)
	}
	if node.Else != nil {
		return e.evalNode(ctx, node.Else, evalCtx, depth+1)
	}
	return nil, nil
}

// evalBlock evaluates an ordered statement sequence. The result is the
// result of the last statement. Each block introduces a binding scope.
func (e *Evaluator) evalBlock(ctx context.Context, node *types.ASTNode, evalCtx *EvalContext, depth int) (interface{}, error) {
	if len(node.Expressions) == 0 {
		return nil, nil
	}

	blockCtx := evalCtx.NewChildContext()

	var result interface{}
	var err error
	for _, stmt := range node.Expressions {
		result, err = e.evalNode(ctx, stmt, blockCtx, depth+1)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// evalMembers evaluates tuple/list members independently, preserving
// shape and order at any arity.
func (e *Evaluator) evalMembers(ctx context.Context, node *types.ASTNode, evalCtx *EvalContext, depth int) (interface{}, error) {
	out := make([]interface{}, len(node.Expressions))
	for i, member := range node.Expressions {
		value, err := e.evalNode(ctx, member, evalCtx, depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = value
	}
	return out, nil
}

// isTruthy: false and nil are falsy, everything else is truthy.
func isTruthy(v interface{}) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}
