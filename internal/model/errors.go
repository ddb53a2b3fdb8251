package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies domain failures so the HTTP layer can map them to a
// status without inspecting messages.
type ErrorKind string

const (
	KindValidation          ErrorKind = "VALIDATION"
	KindNotFound            ErrorKind = "NOT_FOUND"
	KindEditInProgress      ErrorKind = "EDIT_IN_PROGRESS"
	KindResourceUnavailable ErrorKind = "RESOURCE_UNAVAILABLE"
	KindExportFailure       ErrorKind = "EXPORT_FAILURE"
	KindPrintFailure        ErrorKind = "PRINT_FAILURE"
)

// DomainError is returned by the catalog, billing and document layers.
type DomainError struct {
	Kind    ErrorKind
	Field   string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Err }

// Is matches any DomainError of the same kind, so callers can write
// errors.Is(err, model.ErrNotFound).
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Kind sentinels for errors.Is.
var (
	ErrValidation          = &DomainError{Kind: KindValidation, Message: "validation failed"}
	ErrNotFound            = &DomainError{Kind: KindNotFound, Message: "not found"}
	ErrEditInProgress      = &DomainError{Kind: KindEditInProgress, Message: "another line is being edited"}
	ErrResourceUnavailable = &DomainError{Kind: KindResourceUnavailable, Message: "resource unavailable"}
	ErrExportFailure       = &DomainError{Kind: KindExportFailure, Message: "export failed"}
	ErrPrintFailure        = &DomainError{Kind: KindPrintFailure, Message: "print failed"}
)

func NewValidationError(field, message string) *DomainError {
	return &DomainError{Kind: KindValidation, Field: field, Message: message}
}

func NewNotFoundError(resource string, id fmt.Stringer) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", resource, id)}
}

func NewEditInProgressError(editing fmt.Stringer) *DomainError {
	return &DomainError{
		Kind:    KindEditInProgress,
		Message: fmt.Sprintf("line %s is being edited; save or cancel it first", editing),
	}
}

func NewResourceUnavailableError(resource string, err error) *DomainError {
	return &DomainError{Kind: KindResourceUnavailable, Message: resource + " unavailable", Err: err}
}

func NewExportFailure(err error) *DomainError {
	return &DomainError{Kind: KindExportFailure, Message: "Could not export the bill, please try again", Err: err}
}

func NewPrintFailure(err error) *DomainError {
	return &DomainError{Kind: KindPrintFailure, Message: "Could not prepare the bill for printing, please try again", Err: err}
}

// KindOf returns the kind of the first DomainError in err's chain, or "".
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
