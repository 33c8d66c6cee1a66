// Package rewriter implements the static rewrite pass that turns a raw
// expression tree into one whose leaves and operators resolve to the
// decimal primitive library.
//
// The rewrite is a pure structural transform: children are rewritten
// first, then each node is re-wrapped with its decimal-operation
// equivalent. Numeric literals (and string literals that fully parse as
// decimals) are folded to concrete decimal values once, at rewrite time.
// Leaves whose value is unknown until execution (variables, delegated
// opaque forms) become runtime-coercion calls. Input trees are never
// mutated.
package rewriter

import (
	"fmt"

	"github.com/sandrolain/decexpr/pkg/decimal"
	"github.com/sandrolain/decexpr/pkg/types"
)

// knownFunction describes a recognized call and its arity range.
type knownFunction struct {
	minArgs int
	maxArgs int
}

// The closed set of recognized function names. Calls to anything else are
// delegated whole, unevaluated, to a single runtime-coercion call.
var knownFunctions = map[string]knownFunction{
	"abs":      {1, 1},
	"inf?":     {1, 1},
	"nan?":     {1, 1},
	"max":      {2, 2},
	"min":      {2, 2},
	"div":      {2, 2},
	"rem":      {2, 2},
	"reduce":   {1, 1},
	"round":    {1, 3},
	"sqrt":     {1, 1},
	"ceil":     {1, 1},
	"floor":    {1, 1},
	"inf":      {0, 0},
	"number?":  {1, 1},
	"integer?": {1, 1},
}

// Rewrite transforms node into an evaluatable expression. Static errors
// (non-name assignment targets, unknown literal rounding strategies,
// arity mismatches on recognized calls) surface here, before any
// evaluation.
func Rewrite(node *types.ASTNode) (*types.Expression, error) {
	source := node.String()
	rewritten, err := rewriteNode(node)
	if err != nil {
		return nil, err
	}
	return types.NewExpression(rewritten, source), nil
}

func rewriteNode(node *types.ASTNode) (*types.ASTNode, error) {
	if node == nil {
		return nil, nil
	}

	switch node.Type {
	case types.NodeNumber:
		d, ok := decimal.Parse(node.StrValue)
		if !ok {
			return nil, types.NewError(types.ErrNumberInvalid,
				fmt.Sprintf("invalid numeric literal %q", node.StrValue), node.Position)
		}
		return types.FoldedDecimal(d), nil

	case types.NodeString:
		// A string literal that fully parses as a decimal folds; any
		// other string passes through unchanged.
		if d, ok := decimal.Parse(node.StrValue); ok {
			return types.FoldedDecimal(d), nil
		}
		return copyNode(node), nil

	case types.NodeAtom, types.NodeDecimal:
		return copyNode(node), nil

	case types.NodeBlock:
		return rewriteChildren(node)

	case types.NodeTuple, types.NodeList:
		// Member-wise, arity-independent: every member is rewritten
		// independently, shape and order preserved.
		return rewriteChildren(node)

	case types.NodeUnary:
		return rewriteUnary(node)

	case types.NodeBinary:
		return rewriteBinary(node)

	case types.NodeCall:
		return rewriteCall(node)

	case types.NodeAssign:
		return rewriteAssign(node)

	case types.NodeIf:
		cond, err := rewriteNode(node.LHS)
		if err != nil {
			return nil, err
		}
		then, err := rewriteNode(node.RHS)
		if err != nil {
			return nil, err
		}
		els, err := rewriteNode(node.Else)
		if err != nil {
			return nil, err
		}
		return &types.ASTNode{Type: types.NodeIf, LHS: cond, RHS: then, Else: els, Position: node.Position}, nil

	case types.NodeVariable:
		// The raw binding value is never operated on directly.
		return coerceCall(copyNode(node)), nil

	case types.NodeOpaque:
		return coerceCall(copyNode(node)), nil

	default:
		return delegate(node), nil
	}
}

func rewriteUnary(node *types.ASTNode) (*types.ASTNode, error) {
	operand, err := rewriteNode(node.LHS)
	if err != nil {
		return nil, err
	}
	switch node.StrValue {
	case "+":
		return primitiveCall("pos", node.Position, operand), nil
	case "-":
		return primitiveCall("neg", node.Position, operand), nil
	case "not":
		return &types.ASTNode{Type: types.NodeUnary, StrValue: "not", LHS: operand, Position: node.Position}, nil
	default:
		return delegate(node), nil
	}
}

func rewriteBinary(node *types.ASTNode) (*types.ASTNode, error) {
	switch node.StrValue {
	case "+", "-", "*", "/":
		lhs, rhs, err := rewriteSides(node)
		if err != nil {
			return nil, err
		}
		name := map[string]string{"+": "add", "-": "sub", "*": "mult", "/": "divide"}[node.StrValue]
		return primitiveCall(name, node.Position, lhs, rhs), nil

	case ">":
		lhs, rhs, err := rewriteSides(node)
		if err != nil {
			return nil, err
		}
		return primitiveCall("gt", node.Position, lhs, rhs), nil

	case "<":
		// No dedicated less-than primitive: swap the operands.
		lhs, rhs, err := rewriteSides(node)
		if err != nil {
			return nil, err
		}
		return primitiveCall("gt", node.Position, rhs, lhs), nil

	case "==":
		lhs, rhs, err := rewriteSides(node)
		if err != nil {
			return nil, err
		}
		return primitiveCall("eq", node.Position, lhs, rhs), nil

	case "!=":
		lhs, rhs, err := rewriteSides(node)
		if err != nil {
			return nil, err
		}
		eq := primitiveCall("eq", node.Position, lhs, rhs)
		return &types.ASTNode{Type: types.NodeUnary, StrValue: "not", LHS: eq, Position: node.Position}, nil

	case ">=", "<=":
		// Composed as (strict) or (equal). Each leg is built from its own
		// independent rewrite of the operand sources, so operand
		// sub-expressions are evaluated once per leg; this mirrors the
		// observed behavior rather than caching one rewrite.
		strictL, strictR, err := rewriteSides(node)
		if err != nil {
			return nil, err
		}
		eqL, eqR, err := rewriteSides(node)
		if err != nil {
			return nil, err
		}
		var strict *types.ASTNode
		if node.StrValue == ">=" {
			strict = primitiveCall("gt", node.Position, strictL, strictR)
		} else {
			strict = primitiveCall("gt", node.Position, strictR, strictL)
		}
		eq := primitiveCall("eq", node.Position, eqL, eqR)
		return &types.ASTNode{Type: types.NodeBinary, StrValue: "or", LHS: strict, RHS: eq, Position: node.Position}, nil

	case "and", "or":
		// Short-circuit order is preserved by the evaluator; only the
		// operands are rewritten here.
		lhs, rhs, err := rewriteSides(node)
		if err != nil {
			return nil, err
		}
		return &types.ASTNode{Type: types.NodeBinary, StrValue: node.StrValue, LHS: lhs, RHS: rhs, Position: node.Position}, nil

	default:
		return delegate(node), nil
	}
}

func rewriteCall(node *types.ASTNode) (*types.ASTNode, error) {
	fn, ok := knownFunctions[node.StrValue]
	if !ok {
		return delegate(node), nil
	}
	if len(node.Arguments) < fn.minArgs || len(node.Arguments) > fn.maxArgs {
		return nil, types.NewError(types.ErrArgumentCount,
			fmt.Sprintf("%s expects %d..%d arguments, got %d",
				node.StrValue, fn.minArgs, fn.maxArgs, len(node.Arguments)), node.Position)
	}

	args := make([]*types.ASTNode, len(node.Arguments))
	for i, arg := range node.Arguments {
		// Non-expression trailing arguments (the rounding-strategy tag)
		// pass through unchanged.
		if node.StrValue == "round" && i == 2 {
			if err := checkStrategy(arg); err != nil {
				return nil, err
			}
			args[i] = copyNode(arg)
			continue
		}
		rewritten, err := rewriteNode(arg)
		if err != nil {
			return nil, err
		}
		args[i] = rewritten
	}
	return &types.ASTNode{Type: types.NodeCall, StrValue: node.StrValue, Arguments: args, Position: node.Position}, nil
}

// checkStrategy rejects unknown literal strategy tags at rewrite time.
// A non-literal strategy (variable, opaque) is left to runtime.
func checkStrategy(arg *types.ASTNode) error {
	var name string
	switch arg.Type {
	case types.NodeAtom, types.NodeString:
		name = arg.StrValue
	default:
		return nil
	}
	if _, ok := decimal.RounderFromName(name); !ok {
		return types.NewError(types.ErrUnknownStrategy,
			fmt.Sprintf("unknown rounding strategy %q", name), arg.Position)
	}
	return nil
}

func rewriteAssign(node *types.ASTNode) (*types.ASTNode, error) {
	target := node.LHS
	if target == nil || target.Type != types.NodeVariable {
		return nil, types.NewError(types.ErrAssignTarget,
			fmt.Sprintf("assignment target must be a plain name, got %s", describeTarget(target)),
			node.Position)
	}
	rhs, err := rewriteNode(node.RHS)
	if err != nil {
		return nil, err
	}
	return &types.ASTNode{
		Type:     types.NodeAssign,
		StrValue: target.StrValue,
		LHS:      copyNode(target),
		RHS:      rhs,
		Position: node.Position,
	}, nil
}

func describeTarget(target *types.ASTNode) string {
	if target == nil {
		return "nothing"
	}
	return fmt.Sprintf("%s %s", target.Type, target.String())
}

func rewriteSides(node *types.ASTNode) (*types.ASTNode, *types.ASTNode, error) {
	lhs, err := rewriteNode(node.LHS)
	if err != nil {
		return nil, nil, err
	}
	rhs, err := rewriteNode(node.RHS)
	if err != nil {
		return nil, nil, err
	}
	return lhs, rhs, nil
}

func rewriteChildren(node *types.ASTNode) (*types.ASTNode, error) {
	out := &types.ASTNode{Type: node.Type, Position: node.Position}
	out.Expressions = make([]*types.ASTNode, len(node.Expressions))
	for i, child := range node.Expressions {
		rewritten, err := rewriteNode(child)
		if err != nil {
			return nil, err
		}
		out.Expressions[i] = rewritten
	}
	return out, nil
}

// delegate hands an unrecognized form, unevaluated and unrewritten, to a
// single runtime-coercion call.
func delegate(node *types.ASTNode) *types.ASTNode {
	opaque := &types.ASTNode{Type: types.NodeOpaque, Value: node, Position: node.Position}
	return coerceCall(opaque)
}

func coerceCall(arg *types.ASTNode) *types.ASTNode {
	return &types.ASTNode{
		Type:      types.NodeCall,
		StrValue:  "coerce",
		Arguments: []*types.ASTNode{arg},
		Position:  arg.Position,
	}
}

func primitiveCall(name string, pos int, args ...*types.ASTNode) *types.ASTNode {
	return &types.ASTNode{Type: types.NodeCall, StrValue: name, Arguments: args, Position: pos}
}

func copyNode(node *types.ASTNode) *types.ASTNode {
	if node == nil {
		return nil
	}
	out := *node
	return &out
}
