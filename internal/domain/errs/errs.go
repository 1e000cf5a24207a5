package errs

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindSchemaNotFound           Kind = "SchemaNotFound"
	KindSchemaInvariantViolation Kind = "SchemaInvariantViolation"
	KindValidationFailed         Kind = "ValidationFailed"
	KindIllegalTransition        Kind = "IllegalTransition"
	KindConcurrentModification   Kind = "ConcurrentModification"
	KindStorageUnavailable       Kind = "StorageUnavailable"
	KindForbidden                Kind = "Forbidden"
	KindNotFound                 Kind = "NotFound"
)

// Sentinels for errors.Is. Every *Error matches the sentinel of its kind.
var (
	ErrSchemaNotFound           = &Error{Kind: KindSchemaNotFound}
	ErrSchemaInvariantViolation = &Error{Kind: KindSchemaInvariantViolation}
	ErrValidationFailed         = &Error{Kind: KindValidationFailed}
	ErrIllegalTransition        = &Error{Kind: KindIllegalTransition}
	ErrConcurrentModification   = &Error{Kind: KindConcurrentModification}
	ErrStorageUnavailable       = &Error{Kind: KindStorageUnavailable}
	ErrForbidden                = &Error{Kind: KindForbidden}
	ErrNotFound                 = &Error{Kind: KindNotFound}
)

// Error is the tagged error returned by the form engine.
// Detail carries structured data for the caller, e.g. the validation result
// for KindValidationFailed.
type Error struct {
	Kind   Kind
	Op     string
	Msg    string
	Err    error
	Detail any
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Msg == "" && t.Err == nil
}

func New(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// DetailOf returns the Detail of the first *Error in err's chain.
func DetailOf(err error) any {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return nil
}
