package script

import (
	"errors"
	"fmt"
)

var (
	ErrCompileFailed = errors.New("failed to compile expression")
	ErrNotDeclared   = errors.New("unit not declared")
	ErrTypeMismatch  = errors.New("result type mismatch")
)

// EvalError is a runtime failure raised while invoking a unit. Class is an
// exception class name such as "ZeroDivisionError".
type EvalError struct {
	Class   string
	Message string

	// Err is the interpreter error the failure was classified from.
	Err error
}

// NewEvalError creates an EvalError with the given class and message.
func NewEvalError(class, message string, cause error) *EvalError {
	return &EvalError{Class: class, Message: message, Err: cause}
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Class, e.Message)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}
