package evaluator

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/sandrolain/decexpr/pkg/decimal"
	"github.com/sandrolain/decexpr/pkg/types"
)

// FunctionDef defines a primitive the rewriter targets.
type FunctionDef struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 for unlimited
	Impl    FunctionImpl
}

// FunctionImpl is the implementation of a primitive.
type FunctionImpl func(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error)

var (
	primitives     map[string]*FunctionDef
	primitivesOnce sync.Once
)

// initPrimitives initializes the primitive registry.
func initPrimitives() {
	primitivesOnce.Do(func() {
		primitives = map[string]*FunctionDef{
			// Runtime coercion
			"coerce": {Name: "coerce", MinArgs: 1, MaxArgs: 1, Impl: fnCoerce},

			// Arithmetic
			"add":    {Name: "add", MinArgs: 2, MaxArgs: 2, Impl: fnAdd},
			"sub":    {Name: "sub", MinArgs: 2, MaxArgs: 2, Impl: fnSub},
			"mult":   {Name: "mult", MinArgs: 2, MaxArgs: 2, Impl: fnMult},
			"divide": {Name: "divide", MinArgs: 2, MaxArgs: 2, Impl: fnDivide},
			"div":    {Name: "div", MinArgs: 2, MaxArgs: 2, Impl: fnDiv},
			"rem":    {Name: "rem", MinArgs: 2, MaxArgs: 2, Impl: fnRem},
			"pos":    {Name: "pos", MinArgs: 1, MaxArgs: 1, Impl: fnPos},
			"neg":    {Name: "neg", MinArgs: 1, MaxArgs: 1, Impl: fnNeg},

			// Comparison
			"gt": {Name: "gt", MinArgs: 2, MaxArgs: 2, Impl: fnGt},
			"eq": {Name: "eq", MinArgs: 2, MaxArgs: 2, Impl: fnEq},

			// Math functions
			"abs":    {Name: "abs", MinArgs: 1, MaxArgs: 1, Impl: fnAbs},
			"min":    {Name: "min", MinArgs: 2, MaxArgs: 2, Impl: fnMin},
			"max":    {Name: "max", MinArgs: 2, MaxArgs: 2, Impl: fnMax},
			"sqrt":   {Name: "sqrt", MinArgs: 1, MaxArgs: 1, Impl: fnSqrt},
			"round":  {Name: "round", MinArgs: 1, MaxArgs: 3, Impl: fnRound},
			"ceil":   {Name: "ceil", MinArgs: 1, MaxArgs: 1, Impl: fnCeil},
			"floor":  {Name: "floor", MinArgs: 1, MaxArgs: 1, Impl: fnFloor},
			"reduce": {Name: "reduce", MinArgs: 1, MaxArgs: 1, Impl: fnReduce},
			"inf":    {Name: "inf", MinArgs: 0, MaxArgs: 0, Impl: fnInf},

			// Predicates
			"inf?":     {Name: "inf?", MinArgs: 1, MaxArgs: 1, Impl: fnIsInf},
			"nan?":     {Name: "nan?", MinArgs: 1, MaxArgs: 1, Impl: fnIsNaN},
			"number?":  {Name: "number?", MinArgs: 1, MaxArgs: 1, Impl: fnIsNumber},
			"integer?": {Name: "integer?", MinArgs: 1, MaxArgs: 1, Impl: fnIsInteger},
		}
	})
}

// GetFunction retrieves a primitive by name.
func GetFunction(name string) (*FunctionDef, bool) {
	initPrimitives()
	fn, ok := primitives[name]
	return fn, ok
}

// --- Coercion ---

func fnCoerce(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.Coerce(args[0]), nil
}

// --- Arithmetic ---

func fnAdd(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.Add(ctx, args[0], args[1])
}

func fnSub(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.Sub(ctx, args[0], args[1])
}

func fnMult(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.Mul(ctx, args[0], args[1])
}

func fnDivide(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.Divide(ctx, args[0], args[1])
}

func fnDiv(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.Div(ctx, args[0], args[1])
}

func fnRem(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.Rem(ctx, args[0], args[1])
}

func fnPos(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.Pos(ctx, args[0])
}

func fnNeg(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.Neg(ctx, args[0])
}

// --- Comparison ---

func fnGt(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.Greater(ctx, args[0], args[1])
}

func fnEq(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.Equal(ctx, args[0], args[1])
}

// --- Math functions ---

func fnAbs(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.Abs(ctx, args[0])
}

func fnMin(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.Min(ctx, args[0], args[1])
}

func fnMax(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.Max(ctx, args[0], args[1])
}

func fnSqrt(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.Sqrt(ctx, args[0])
}

func fnRound(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	places := int32(0)
	if len(args) >= 2 {
		d, err := decimal.ToDecimal(args[1])
		if err != nil {
			return nil, err
		}
		n, err := d.Int64()
		if err != nil {
			return nil, types.NewError(types.ErrInvalidInput,
				fmt.Sprintf("round places must be an integer, got %v", args[1]), -1).WithCause(err)
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, types.NewError(types.ErrInvalidInput,
				fmt.Sprintf("round places %d out of range", n), -1)
		}
		places = int32(n)
	}

	strategy := decimal.RoundHalfUp
	if len(args) >= 3 {
		name, ok := args[2].(string)
		if !ok {
			return nil, types.NewError(types.ErrInvalidInput,
				fmt.Sprintf("round strategy must be a name, got %T", args[2]), -1)
		}
		strategy = name
	}

	return decimal.Round(ctx, args[0], places, strategy)
}

func fnCeil(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.Ceil(ctx, args[0])
}

func fnFloor(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.Floor(ctx, args[0])
}

func fnReduce(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.Reduce(ctx, args[0])
}

func fnInf(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.Inf(1), nil
}

// --- Predicates ---

func fnIsInf(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.IsInf(args[0])
}

func fnIsNaN(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.IsNaN(args[0])
}

func fnIsNumber(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.IsNumber(args[0]), nil
}

func fnIsInteger(ctx context.Context, e *Evaluator, evalCtx *EvalContext, args []interface{}) (interface{}, error) {
	return decimal.IsInteger(args[0])
}
