package decimal

import (
	"fmt"
	"math"

	"github.com/cockroachdb/apd/v3"

	"github.com/sandrolain/decexpr/pkg/types"
)

// Parse attempts a full decimal parse of s. ok is false when s is not a
// complete decimal literal.
func Parse(s string) (*apd.Decimal, bool) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, false
	}
	return d, true
}

// FromFloat converts a float64 to an exact decimal. NaN and infinities
// map onto the corresponding special forms.
func FromFloat(f float64) *apd.Decimal {
	d := new(apd.Decimal)
	switch {
	case math.IsNaN(f):
		d.Form = apd.NaN
	case math.IsInf(f, 1):
		d.Form = apd.Infinite
	case math.IsInf(f, -1):
		d.Form = apd.Infinite
		d.Negative = true
	default:
		// SetFloat64 cannot fail for a finite float.
		_, _ = d.SetFloat64(f)
	}
	return d
}

// fromUint converts an unsigned value exactly; the high half of the
// uint64 range does not fit an int64 coefficient.
func fromUint(u uint64) *apd.Decimal {
	if u <= math.MaxInt64 {
		return apd.New(int64(u), 0)
	}
	return apd.NewWithBigInt(new(apd.BigInt).SetUint64(u), 0)
}

// Coerce converts a value of unknown runtime shape to a decimal where
// possible and returns it unchanged otherwise.
//
// Dispatch by shape: numeric string -> decimal; non-numeric string ->
// unchanged; integer/float -> exact decimal; slice -> member-wise
// recursion preserving order; already a decimal -> unchanged; anything
// else (booleans, nil, arbitrary types) -> unchanged.
//
// Coerce is idempotent: Coerce(Coerce(x)) == Coerce(x).
func Coerce(v interface{}) interface{} {
	switch val := v.(type) {
	case *apd.Decimal:
		return val
	case string:
		if d, ok := Parse(val); ok {
			return d
		}
		return val
	case int:
		return apd.New(int64(val), 0)
	case int32:
		return apd.New(int64(val), 0)
	case int64:
		return apd.New(val, 0)
	case uint:
		return fromUint(uint64(val))
	case uint32:
		return apd.New(int64(val), 0)
	case uint64:
		return fromUint(val)
	case float32:
		return FromFloat(float64(val))
	case float64:
		return FromFloat(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = Coerce(item)
		}
		return out
	default:
		return v
	}
}

// ToDecimal is the strict variant of Coerce used by the operator and
// function primitives: the entries promise a decimal result, so a value
// that cannot become one is an input-validation error naming it.
func ToDecimal(v interface{}) (*apd.Decimal, error) {
	switch val := v.(type) {
	case *apd.Decimal:
		return val, nil
	case string:
		if d, ok := Parse(val); ok {
			return d, nil
		}
		return nil, types.NewError(types.ErrNotANumber,
			fmt.Sprintf("string %q is not a valid decimal", val), -1)
	case int:
		return apd.New(int64(val), 0), nil
	case int32:
		return apd.New(int64(val), 0), nil
	case int64:
		return apd.New(val, 0), nil
	case uint:
		return fromUint(uint64(val)), nil
	case uint32:
		return apd.New(int64(val), 0), nil
	case uint64:
		return fromUint(val), nil
	case float32:
		return FromFloat(float64(val)), nil
	case float64:
		return FromFloat(val), nil
	default:
		return nil, types.NewError(types.ErrInvalidInput,
			fmt.Sprintf("cannot coerce %T value %v to decimal", v, v), -1)
	}
}
