package decimal

import (
	"context"
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"github.com/sandrolain/decexpr/pkg/types"
)

// Arithmetic primitives. Each coerces its inputs strictly and applies the
// ambient record carried by ctx.

// Add returns a + b.
func Add(ctx context.Context, a, b interface{}) (*apd.Decimal, error) {
	x, y, err := toPair(a, b)
	if err != nil {
		return nil, err
	}
	var res apd.Decimal
	_, err = FromContext(ctx).Add(&res, x, y)
	if err != nil {
		return nil, opErr("add", err)
	}
	return &res, nil
}

// Sub returns a - b.
func Sub(ctx context.Context, a, b interface{}) (*apd.Decimal, error) {
	x, y, err := toPair(a, b)
	if err != nil {
		return nil, err
	}
	var res apd.Decimal
	_, err = FromContext(ctx).Sub(&res, x, y)
	if err != nil {
		return nil, opErr("sub", err)
	}
	return &res, nil
}

// Mul returns a * b.
func Mul(ctx context.Context, a, b interface{}) (*apd.Decimal, error) {
	x, y, err := toPair(a, b)
	if err != nil {
		return nil, err
	}
	var res apd.Decimal
	_, err = FromContext(ctx).Mul(&res, x, y)
	if err != nil {
		return nil, opErr("mult", err)
	}
	return &res, nil
}

// Divide returns a / b under the ambient precision and rounding.
func Divide(ctx context.Context, a, b interface{}) (*apd.Decimal, error) {
	x, y, err := toPair(a, b)
	if err != nil {
		return nil, err
	}
	var res apd.Decimal
	_, err = FromContext(ctx).Quo(&res, x, y)
	if err != nil {
		return nil, opErr("divide", err)
	}
	return &res, nil
}

// Div returns the integer quotient of a / b.
func Div(ctx context.Context, a, b interface{}) (*apd.Decimal, error) {
	x, y, err := toPair(a, b)
	if err != nil {
		return nil, err
	}
	var res apd.Decimal
	_, err = FromContext(ctx).QuoInteger(&res, x, y)
	if err != nil {
		return nil, opErr("div", err)
	}
	return &res, nil
}

// Rem returns the remainder of the integer division a / b.
func Rem(ctx context.Context, a, b interface{}) (*apd.Decimal, error) {
	x, y, err := toPair(a, b)
	if err != nil {
		return nil, err
	}
	var res apd.Decimal
	_, err = FromContext(ctx).Rem(&res, x, y)
	if err != nil {
		return nil, opErr("rem", err)
	}
	return &res, nil
}

// Sqrt returns the square root of v.
func Sqrt(ctx context.Context, v interface{}) (*apd.Decimal, error) {
	x, err := ToDecimal(v)
	if err != nil {
		return nil, err
	}
	var res apd.Decimal
	_, err = FromContext(ctx).Sqrt(&res, x)
	if err != nil {
		return nil, opErr("sqrt", err)
	}
	return &res, nil
}

// Abs returns the absolute value of v.
func Abs(ctx context.Context, v interface{}) (*apd.Decimal, error) {
	x, err := ToDecimal(v)
	if err != nil {
		return nil, err
	}
	var res apd.Decimal
	_, err = FromContext(ctx).Abs(&res, x)
	if err != nil {
		return nil, opErr("abs", err)
	}
	return &res, nil
}

// Neg returns -v.
func Neg(ctx context.Context, v interface{}) (*apd.Decimal, error) {
	x, err := ToDecimal(v)
	if err != nil {
		return nil, err
	}
	var res apd.Decimal
	_, err = FromContext(ctx).Neg(&res, x)
	if err != nil {
		return nil, opErr("neg", err)
	}
	return &res, nil
}

// Pos returns +v: the operand coerced and rounded to the ambient record.
func Pos(ctx context.Context, v interface{}) (*apd.Decimal, error) {
	x, err := ToDecimal(v)
	if err != nil {
		return nil, err
	}
	var res apd.Decimal
	_, err = FromContext(ctx).Round(&res, x)
	if err != nil {
		return nil, opErr("pos", err)
	}
	return &res, nil
}

// Min returns the smaller of a and b. When exactly one operand is NaN the
// other is returned.
func Min(ctx context.Context, a, b interface{}) (*apd.Decimal, error) {
	x, y, err := toPair(a, b)
	if err != nil {
		return nil, err
	}
	switch {
	case isNaN(x):
		return y, nil
	case isNaN(y):
		return x, nil
	case x.Cmp(y) <= 0:
		return x, nil
	default:
		return y, nil
	}
}

// Max returns the larger of a and b. When exactly one operand is NaN the
// other is returned.
func Max(ctx context.Context, a, b interface{}) (*apd.Decimal, error) {
	x, y, err := toPair(a, b)
	if err != nil {
		return nil, err
	}
	switch {
	case isNaN(x):
		return y, nil
	case isNaN(y):
		return x, nil
	case x.Cmp(y) >= 0:
		return x, nil
	default:
		return y, nil
	}
}

// Reduce strips trailing zeros from v's coefficient, preserving numeric
// value.
func Reduce(ctx context.Context, v interface{}) (*apd.Decimal, error) {
	x, err := ToDecimal(v)
	if err != nil {
		return nil, err
	}
	var res apd.Decimal
	res.Reduce(x)
	return &res, nil
}

// Round rounds v to the given number of decimal places using the named
// strategy. places defaults to 0 and strategy to half_up at the call
// sites that omit them.
func Round(ctx context.Context, v interface{}, places int32, strategy string) (*apd.Decimal, error) {
	x, err := ToDecimal(v)
	if err != nil {
		return nil, err
	}
	rounder, ok := RounderFromName(strategy)
	if !ok {
		return nil, errUnknownStrategy(strategy)
	}
	dctx := *FromContext(ctx)
	dctx.Rounding = rounder
	// Quantizing needs room for every integral digit of x.
	if digits := uint32(x.NumDigits()); dctx.Precision < digits {
		dctx.Precision = digits
	}
	var res apd.Decimal
	_, err = dctx.Quantize(&res, x, -places)
	if err != nil {
		return nil, opErr("round", err)
	}
	return &res, nil
}

// Ceil is Round with the ceiling strategy and zero places.
func Ceil(ctx context.Context, v interface{}) (*apd.Decimal, error) {
	return Round(ctx, v, 0, RoundCeiling)
}

// Floor is Round with the floor strategy and zero places.
func Floor(ctx context.Context, v interface{}) (*apd.Decimal, error) {
	return Round(ctx, v, 0, RoundFloor)
}

// Inf returns positive infinity for sign >= 0 and negative infinity
// otherwise.
func Inf(sign int) *apd.Decimal {
	d := new(apd.Decimal)
	d.Form = apd.Infinite
	d.Negative = sign < 0
	return d
}

func toPair(a, b interface{}) (*apd.Decimal, *apd.Decimal, error) {
	x, err := ToDecimal(a)
	if err != nil {
		return nil, nil, err
	}
	y, err := ToDecimal(b)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

func errUnknownStrategy(name string) error {
	return types.NewError(types.ErrUnknownStrategy,
		fmt.Sprintf("unknown rounding strategy %q", name), -1)
}

// opErr wraps a backend arithmetic failure, naming the primitive.
func opErr(op string, err error) error {
	return types.NewError(types.ErrArithmetic,
		fmt.Sprintf("%s: %v", op, err), -1).WithCause(err)
}
