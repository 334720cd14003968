// Package calc evaluates restricted arithmetic expressions.
package calc

import (
	"errors"
	"fmt"
)

// ErrUnsafeInput is returned when an expression contains a denylisted token.
var ErrUnsafeInput = errors.New("potentially unsafe expression detected")

// Categories of evaluation failures. An *EvalError wraps exactly one of them.
var (
	ErrSyntax       = errors.New("syntax error")
	ErrName         = errors.New("name error")
	ErrType         = errors.New("type error")
	ErrValue        = errors.New("value error")
	ErrZeroDivision = errors.New("zero division error")
	ErrDomain       = errors.New("math domain error")
	ErrOverflow     = errors.New("overflow error")
)

// EvalError reports a failure while parsing or evaluating an expression.
type EvalError struct {
	Err error
}

func (e *EvalError) Error() string {
	return "error evaluating expression: " + e.Err.Error()
}

func (e *EvalError) Unwrap() error {
	return e.Err
}

// causeError carries a user-facing message and the failure category it belongs to.
type causeError struct {
	kind error
	msg  string
}

func (e *causeError) Error() string {
	return e.msg
}

func (e *causeError) Unwrap() error {
	return e.kind
}

func failf(kind error, format string, args ...any) error {
	return &causeError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func syntaxErrorf(format string, args ...any) error {
	return failf(ErrSyntax, format, args...)
}
