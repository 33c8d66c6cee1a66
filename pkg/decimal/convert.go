package decimal

import (
	"context"
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"github.com/sandrolain/decexpr/pkg/types"
)

// Output names the representation a final decimal result is rendered to.
type Output string

// Output tags.
const (
	OutputDecimal    Output = "decimal"
	OutputFloat      Output = "float"
	OutputInteger    Output = "integer"
	OutputString     Output = "string"
	OutputScientific Output = "scientific"
	OutputXSD        Output = "xsd"
	OutputRaw        Output = "raw"
)

// Convert renders a final result to the representation named by tag.
//
// Decimal values are converted; slices are converted member-wise; any
// other value (opaque pass-through) is returned unchanged. The "decimal"
// tag and unrecognized tags return the value untouched. Conversions that
// cannot represent the value (float/integer overflow, fractional
// integer) raise rather than silently wrap.
func Convert(ctx context.Context, v interface{}, tag Output) (interface{}, error) {
	switch val := v.(type) {
	case *apd.Decimal:
		return convertDecimal(ctx, val, tag)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			c, err := Convert(ctx, item, tag)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	default:
		return v, nil
	}
}

func convertDecimal(ctx context.Context, d *apd.Decimal, tag Output) (interface{}, error) {
	switch tag {
	case OutputFloat:
		f, err := d.Float64()
		if err != nil {
			return nil, types.NewError(types.ErrConversionOverflow,
				fmt.Sprintf("decimal %s does not fit a float64", d), -1).WithCause(err)
		}
		return f, nil

	case OutputInteger:
		dctx := FromContext(ctx)
		rounded := *dctx
		if digits := uint32(d.NumDigits()); rounded.Precision < digits {
			rounded.Precision = digits
		}
		var integ apd.Decimal
		if _, err := rounded.Quantize(&integ, d, 0); err != nil {
			return nil, types.NewError(types.ErrConversionOverflow,
				fmt.Sprintf("decimal %s cannot be rounded to an integer", d), -1).WithCause(err)
		}
		n, err := integ.Int64()
		if err != nil {
			return nil, types.NewError(types.ErrConversionOverflow,
				fmt.Sprintf("decimal %s does not fit an int64", d), -1).WithCause(err)
		}
		return n, nil

	case OutputString:
		return d.Text('f'), nil

	case OutputScientific:
		return d.Text('E'), nil

	case OutputXSD:
		var reduced apd.Decimal
		reduced.Reduce(d)
		return reduced.Text('f'), nil

	case OutputRaw:
		return d.String(), nil

	default:
		// decimal and unrecognized tags pass the value through.
		return d, nil
	}
}
