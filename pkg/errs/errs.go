// Package errs defines the error categories shared by the note, storage and
// collaborator layers.
package errs

import (
	"errors"
	"fmt"
)

// Kind categorizes an Error.
type Kind string

const (
	// KindValidation marks malformed or incomplete entities. The operation
	// that returned it did not mutate anything.
	KindValidation Kind = "validation"
	// KindStorage marks persistence read/write failures.
	KindStorage Kind = "storage"
	// KindExternal marks AI suggestion or cloud service failures.
	KindExternal Kind = "external"
)

// Error is a categorized failure with the operation that produced it.
type Error struct {
	Kind  Kind
	Op    string
	Field string
	Err   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Field != "" {
		msg += fmt.Sprintf(" (%s)", e.Field)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports a missing or invalid field.
func Validation(op, field, reason string) error {
	return &Error{Kind: KindValidation, Op: op, Field: field, Err: errors.New(reason)}
}

// Storage wraps a persistence failure.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindStorage, Op: op, Err: err}
}

// External wraps a collaborator failure.
func External(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindExternal, Op: op, Err: err}
}

// Is reports whether err, or anything it wraps, is an *Error of kind k.
func Is(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

// IsValidation is shorthand for Is(err, KindValidation).
func IsValidation(err error) bool { return Is(err, KindValidation) }

// IsStorage is shorthand for Is(err, KindStorage).
func IsStorage(err error) bool { return Is(err, KindStorage) }

// IsExternal is shorthand for Is(err, KindExternal).
func IsExternal(err error) bool { return Is(err, KindExternal) }
