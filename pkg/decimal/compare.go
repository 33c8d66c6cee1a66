package decimal

import (
	"context"

	"github.com/cockroachdb/apd/v3"
)

// Comparison primitives. Equality is numeric: representation differences
// (trailing zeros, exponent form) never break it. NaN compares false in
// every relation; only IsNaN reports it.

func isNaN(d *apd.Decimal) bool {
	return d.Form == apd.NaN || d.Form == apd.NaNSignaling
}

// Equal reports whether a and b are numerically equal.
func Equal(ctx context.Context, a, b interface{}) (bool, error) {
	x, y, err := toPair(a, b)
	if err != nil {
		return false, err
	}
	if isNaN(x) || isNaN(y) {
		return false, nil
	}
	return x.Cmp(y) == 0, nil
}

// NotEqual is the logical negation of Equal.
func NotEqual(ctx context.Context, a, b interface{}) (bool, error) {
	eq, err := Equal(ctx, a, b)
	if err != nil {
		return false, err
	}
	return !eq, nil
}

// Greater reports a > b.
func Greater(ctx context.Context, a, b interface{}) (bool, error) {
	x, y, err := toPair(a, b)
	if err != nil {
		return false, err
	}
	if isNaN(x) || isNaN(y) {
		return false, nil
	}
	return x.Cmp(y) > 0, nil
}

// Less reports a < b, expressed as Greater with swapped operands.
func Less(ctx context.Context, a, b interface{}) (bool, error) {
	return Greater(ctx, b, a)
}

// GreaterEqual composes Greater and Equal.
func GreaterEqual(ctx context.Context, a, b interface{}) (bool, error) {
	gt, err := Greater(ctx, a, b)
	if err != nil {
		return false, err
	}
	if gt {
		return true, nil
	}
	return Equal(ctx, a, b)
}

// LessEqual composes Less and Equal.
func LessEqual(ctx context.Context, a, b interface{}) (bool, error) {
	lt, err := Less(ctx, a, b)
	if err != nil {
		return false, err
	}
	if lt {
		return true, nil
	}
	return Equal(ctx, a, b)
}

// IsNaN reports whether v is the NaN value. This is the only predicate
// through which NaN compares positively to anything.
func IsNaN(v interface{}) (bool, error) {
	x, err := ToDecimal(v)
	if err != nil {
		return false, err
	}
	return isNaN(x), nil
}

// IsInf reports whether v is positive or negative infinity.
func IsInf(v interface{}) (bool, error) {
	x, err := ToDecimal(v)
	if err != nil {
		return false, err
	}
	return x.Form == apd.Infinite, nil
}

// IsNumber reports whether v is a decimal or coercible to one. Unlike the
// other predicates it never errors: a non-numeric value is simply not a
// number.
func IsNumber(v interface{}) bool {
	_, err := ToDecimal(v)
	return err == nil
}

// IsInteger reports whether v is a finite decimal with no fractional
// part.
func IsInteger(v interface{}) (bool, error) {
	x, err := ToDecimal(v)
	if err != nil {
		return false, err
	}
	if x.Form != apd.Finite {
		return false, nil
	}
	if x.Exponent >= 0 {
		return true, nil
	}
	var integ, frac apd.Decimal
	x.Modf(&integ, &frac)
	return frac.IsZero(), nil
}
