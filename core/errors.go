package core

import (
	"context"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
// Error holds a message key when the message is translatable.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

// ErrInUse is returned when deleting a record that other records still reference.
var ErrInUse = errors.New("this record is in use and cannot be deleted")

// NewInUseError reports that the records cannot be removed because of field.
func NewInUseError(field string) error {
	return NewValidationError(ErrInUse, FieldError{Field: field, Error: MsgInUse})
}

func IsInUse(err error) bool {
	vErr, ok := errors.Cause(err).(*ValidationError)
	return ok && vErr.Err == ErrInUse
}

// NotFoundError is returned by repositories when a record does not exist.
type NotFoundError struct {
	Entity string
}

func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

func (err NotFoundError) Error() string {
	return err.Entity + " not found"
}

func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundError)
	return ok
}

// Reference counts the records pointing at any of ids through Field.
type Reference struct {
	Field string
	Count func(ctx context.Context, ids []string) (int, error)
}

// CheckReferences fails with an in-use error on the first reference still pointing at ids.
func CheckReferences(ctx context.Context, ids []string, refs ...Reference) error {
	for _, ref := range refs {
		n, err := ref.Count(ctx, ids)
		if err != nil {
			return errors.Wrap(err, "counting "+ref.Field)
		}
		if n > 0 {
			return NewInUseError(ref.Field)
		}
	}
	return nil
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
