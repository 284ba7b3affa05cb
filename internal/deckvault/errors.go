package deckvault

import "errors"

// Code classifies an operation failure. The transport layer maps codes to
// its own representation (HTTP statuses); the core only ever returns them.
type Code int

const (
	CodeInternal Code = iota
	CodeUnauthenticated
	CodeNotFound
	CodeForbidden
	CodeAlreadyExists
	CodeInvalidArgument
)

type Error struct {
	code Code
	err  error
}

func (e *Error) Error() string { return e.err.Error() }

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Code() Code { return e.code }

func NewError(code Code, err error) *Error {
	return &Error{code: code, err: err}
}

// CodeOf returns the code carried by err, or CodeInternal for anything
// that is not one of ours (storage failures included).
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return CodeInternal
}

func unauthenticated(msg string) *Error {
	return &Error{CodeUnauthenticated, errors.New(msg)}
}

func invalidArgError(msg string) *Error {
	return &Error{CodeInvalidArgument, errors.New(msg)}
}

func notFoundError(msg string) *Error {
	return &Error{CodeNotFound, errors.New(msg)}
}

func forbiddenError(msg string) *Error {
	return &Error{CodeForbidden, errors.New(msg)}
}

func alreadyExistsError(msg string) *Error {
	return &Error{CodeAlreadyExists, errors.New(msg)}
}
