package meshin

import (
	"errors"
	"fmt"
)

// ErrorCode classifies errors returned by the engine.
type ErrorCode int

const (
	// Unknown is an unclassified failure.
	Unknown ErrorCode = iota
	// WrongType means a key holds a value of the wrong kind for the operation.
	WrongType
	// SyntaxError means the command arguments are malformed.
	SyntaxError
	// NotAnInteger means an argument expected to be an integer is not.
	NotAnInteger
	// NotAFloat means an argument expected to be a float is not.
	NotAFloat
	// BackendFailure is an I/O failure reported by the store backend.
	BackendFailure
)

var (
	// ErrWrongType is wrapped by errors with the WrongType code.
	ErrWrongType = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")
	// ErrSyntax is wrapped by errors with the SyntaxError code.
	ErrSyntax = errors.New("syntax error")
)

// Error is the meshin custom error.
type Error struct {
	Code     ErrorCode
	Err      error
	UserData any
}

func (e Error) Error() string {
	if e.UserData == nil {
		return fmt.Sprintf("error code: %d, details: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("error code: %d, user data: %v, details: %v", e.Code, e.UserData, e.Err)
}

// Unwrap returns the wrapped error so errors.Is/As work through Error.
func (e Error) Unwrap() error {
	return e.Err
}

// NewWrongTypeError reports that key holds a value of the wrong kind.
func NewWrongTypeError(key string) error {
	return Error{Code: WrongType, Err: ErrWrongType, UserData: key}
}

// NewSyntaxError reports malformed command arguments.
func NewSyntaxError(format string, args ...any) error {
	return Error{Code: SyntaxError, Err: fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...))}
}

// CodeOf returns the ErrorCode carried by err, or Unknown.
func CodeOf(err error) ErrorCode {
	var e Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Unknown
}
