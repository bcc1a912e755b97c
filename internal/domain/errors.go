package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownVariant  = errors.New("unknown variant")
	ErrUnresolvedShape = errors.New("unresolved content shape")
	ErrNotFound        = errors.New("not found")
	ErrStorage         = errors.New("storage error")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindInvalidInput    ErrorKind = "invalid_input"
	KindUnknownVariant  ErrorKind = "unknown_variant"
	KindUnresolvedShape ErrorKind = "unresolved_shape"
	KindNotFound        ErrorKind = "not_found"
	KindStorage         ErrorKind = "storage"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op    string
	Kind  ErrorKind
	Path  string // optional: fixture file
	Field string // optional: offending field, e.g. requests[0].status.views
	Err   error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Field != "" {
		base += fmt.Sprintf(" (field=%s)", e.Field)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// UnhandledVariantError reports a family member that a dispatch has no case
// for. It is raised with panic: reaching it means a variant was added without
// updating every switch over its family.
type UnhandledVariantError struct {
	Family FamilyName
	Value  any
}

func (e *UnhandledVariantError) Error() string {
	return fmt.Sprintf("unhandled %s variant %T", e.Family, e.Value)
}

// Unhandled builds the panic value for a missing case.
func Unhandled(family FamilyName, value any) error {
	return &UnhandledVariantError{Family: family, Value: value}
}
