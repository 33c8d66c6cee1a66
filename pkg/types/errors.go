package types

import "fmt"

// ErrorCode identifies a structured engine error.
type ErrorCode string

// Error codes, grouped by phase.
const (
	// S0xxx: Parser/Syntax errors
	ErrNumberInvalid ErrorCode = "S0102"
	ErrUnexpectedEnd ErrorCode = "S0104"
	ErrSyntaxError   ErrorCode = "S0201"
	ErrExpectedToken ErrorCode = "S0202"

	// S1xxx: Rewrite (static) errors
	ErrAssignTarget     ErrorCode = "S1001"
	ErrUnknownStrategy  ErrorCode = "S1002"
	ErrArgumentCount    ErrorCode = "S1003"

	// T1xxx: Input validation errors
	ErrNotANumber   ErrorCode = "T1001"
	ErrInvalidInput ErrorCode = "T1002"

	// D1xxx: Conversion/evaluation errors
	ErrConversionOverflow ErrorCode = "D1001"
	ErrArithmetic         ErrorCode = "D1002"

	// U1xxx: Runtime errors
	ErrUndefinedVariable ErrorCode = "U1001"
	ErrUndefinedFunction ErrorCode = "U1002"
	ErrMaxDepth          ErrorCode = "U1003"
)

// Error represents a structured engine error.
type Error struct {
	Code     ErrorCode
	Message  string
	Position int
	Token    string
	Err      error
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string, position int) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Position: position,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("%s at position %d: %s", e.Code, e.Position, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithToken adds token information to the error.
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}
