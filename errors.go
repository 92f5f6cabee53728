package ui512

import "errors"

// ErrDivideByZero is returned by Divide and DivideUint64 when the divisor is
// zero. The value methods (Quo, Rem, QuoRem) panic with the same message
// instead, like Go's integer division.
var ErrDivideByZero = errors.New("ui512: division by zero")
