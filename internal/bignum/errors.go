package bignum

import "errors"

var (
	// ErrDivisionByZero indicates an attempt to divide by zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInvalidArgument indicates an operand outside the operation's domain.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMalformed indicates text or encoded input that is not a decimal integer.
	ErrMalformed = errors.New("malformed integer")
	// ErrOverflow indicates an input larger than the operation allows.
	ErrOverflow = errors.New("input too large")
)
