// Package decimal wraps the arbitrary-precision backend
// (github.com/cockroachdb/apd/v3) with automatic input coercion, ambient
// context propagation and output conversion.
//
// Every operation accepts a number, a numeric string or an *apd.Decimal
// interchangeably. The precision/rounding/trap record governing an
// evaluation travels as a context.Context value: derive a context with
// [WithContext] and every operation below it observes the record, while
// the caller's own context stays untouched.
package decimal

import (
	"context"

	"github.com/cockroachdb/apd/v3"
)

// DefaultPrecision is the precision of the ambient record when none has
// been installed.
const DefaultPrecision = 28

// Rounding strategy names, matching the backend's rounder identifiers.
const (
	RoundDown     = string(apd.RoundDown)
	RoundHalfUp   = string(apd.RoundHalfUp)
	RoundHalfEven = string(apd.RoundHalfEven)
	RoundCeiling  = string(apd.RoundCeiling)
	RoundFloor    = string(apd.RoundFloor)
	RoundHalfDown = string(apd.RoundHalfDown)
	RoundUp       = string(apd.RoundUp)
)

var rounders = map[string]apd.Rounder{
	RoundDown:     apd.RoundDown,
	RoundHalfUp:   apd.RoundHalfUp,
	RoundHalfEven: apd.RoundHalfEven,
	RoundCeiling:  apd.RoundCeiling,
	RoundFloor:    apd.RoundFloor,
	RoundHalfDown: apd.RoundHalfDown,
	RoundUp:       apd.RoundUp,
}

// RounderFromName maps a rounding strategy name to the backend rounder.
func RounderFromName(name string) (apd.Rounder, bool) {
	r, ok := rounders[name]
	return r, ok
}

type decimalContextKey struct{}

// NewContext returns a fresh default record: DefaultPrecision digits,
// half_up rounding, backend default traps.
func NewContext() *apd.Context {
	c := apd.BaseContext.WithPrecision(DefaultPrecision)
	c.Rounding = apd.RoundHalfUp
	return c
}

// WithContext returns a context carrying dctx as the ambient decimal
// record. Operations reached through the returned context observe dctx;
// the parent context is not modified, so the previous ambient record is
// "restored" on every exit path simply by the derived context going out
// of scope.
func WithContext(ctx context.Context, dctx *apd.Context) context.Context {
	return context.WithValue(ctx, decimalContextKey{}, dctx)
}

// FromContext returns the ambient decimal record carried by ctx, or a
// fresh default record when none is installed.
func FromContext(ctx context.Context) *apd.Context {
	if ctx != nil {
		if dctx, ok := ctx.Value(decimalContextKey{}).(*apd.Context); ok && dctx != nil {
			return dctx
		}
	}
	return NewContext()
}

// Overrides is a partial field list merged onto an ambient record by
// [Resolve]. Nil fields keep the ambient value.
type Overrides struct {
	Precision *uint32
	Rounding  *string
	Traps     *apd.Condition
}

// Resolve merges overrides onto ambient and returns a new record. The
// ambient record is never mutated. A nil overrides returns ambient
// unchanged. An unknown rounding name is an input-validation error.
func Resolve(ambient *apd.Context, o *Overrides) (*apd.Context, error) {
	if o == nil {
		return ambient, nil
	}
	merged := *ambient
	if o.Precision != nil {
		merged.Precision = *o.Precision
	}
	if o.Rounding != nil {
		r, ok := RounderFromName(*o.Rounding)
		if !ok {
			return nil, errUnknownStrategy(*o.Rounding)
		}
		merged.Rounding = r
	}
	if o.Traps != nil {
		merged.Traps = *o.Traps
	}
	return &merged, nil
}
