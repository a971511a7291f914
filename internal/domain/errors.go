package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every typed error below matches exactly one of these through
// errors.Is, and the delivery layer maps them to response codes.
var (
	ErrInvalidFilter            = errors.New("invalid filter")
	ErrMultipleInequalityFields = errors.New("inequality filter is allowed on only one field")
	ErrInvalidInput             = errors.New("invalid input")
	ErrNotFound                 = errors.New("not found")
	ErrConflict                 = errors.New("conflict")
	ErrForbidden                = errors.New("forbidden")
	ErrUnauthorized             = errors.New("unauthorized")
	ErrTransient                = errors.New("transaction aborted")
)

// InvalidFilterError reports a malformed filter triple.
type InvalidFilterError struct {
	Field  string
	Reason string
}

func (e *InvalidFilterError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid filter on %q: %s", e.Field, e.Reason)
	}
	return "invalid filter: " + e.Reason
}

func (e *InvalidFilterError) Is(target error) bool {
	return target == ErrInvalidFilter
}

// MultipleInequalityFieldsError reports a second field used with a non-equality
// operator. It is also an InvalidFilterError.
type MultipleInequalityFieldsError struct {
	First  Field
	Second Field
}

func (e *MultipleInequalityFieldsError) Error() string {
	return fmt.Sprintf("inequality filter is allowed on only one field (got %s and %s)", e.First, e.Second)
}

func (e *MultipleInequalityFieldsError) Is(target error) bool {
	return target == ErrMultipleInequalityFields || target == ErrInvalidFilter
}

// InvalidInputError reports a malformed request value other than a filter.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return "invalid input: " + e.Reason
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NotFoundError reports a referenced aggregate that does not exist.
type NotFoundError struct {
	Kind Kind
	Key  string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("no %s found", kindNoun(e.Kind))
	}
	return fmt.Sprintf("no %s found with key: %s", kindNoun(e.Kind), e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func kindNoun(k Kind) string {
	switch k {
	case KindConference:
		return "conference"
	case KindSession:
		return "session"
	case KindProfile:
		return "profile"
	case KindSpeaker:
		return "speaker"
	}
	return "entity"
}

// ConflictError reports a business-rule violation such as a duplicate
// registration or a sold-out conference.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ForbiddenError reports an ownership or prerequisite violation.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string { return e.Reason }

func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}

// TransientError reports a transaction that was aborted by contention. The
// same call may be retried with identical inputs.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	if e.Err == nil {
		return e.Op + ": transaction aborted"
	}
	return fmt.Sprintf("%s: transaction aborted: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

func (e *TransientError) Is(target error) bool {
	return target == ErrTransient
}

// Conflict reasons surfaced by the ledger.
const (
	ReasonAlreadyRegistered = "You have already registered for this conference"
	ReasonNoSeats           = "There are no seats available."
	ReasonAlreadyWishlisted = "You have already added this session to your wishlist."
	ReasonRegisterFirst     = "You have to register for the conference before you can add this session to your wishlist."
)

// NewInvalidFilterError returns an *InvalidFilterError.
func NewInvalidFilterError(field, reason string) error {
	return &InvalidFilterError{Field: field, Reason: reason}
}

// NewInvalidInputError returns an *InvalidInputError.
func NewInvalidInputError(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

// NewNotFoundError returns a *NotFoundError for key.
func NewNotFoundError(key Key) error {
	return &NotFoundError{Kind: key.Kind, Key: key.Encode()}
}

// NewConflictError returns a *ConflictError.
func NewConflictError(reason string) error {
	return &ConflictError{Reason: reason}
}

// NewForbiddenError returns a *ForbiddenError.
func NewForbiddenError(reason string) error {
	return &ForbiddenError{Reason: reason}
}

// NewTransientError wraps err as a *TransientError for op.
func NewTransientError(op string, err error) error {
	return &TransientError{Op: op, Err: err}
}
