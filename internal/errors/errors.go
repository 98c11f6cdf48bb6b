// Package errors defines the service error taxonomy shared by all services.
// Every domain failure is a ServiceError carrying a fixed HTTP status; the
// boundary layer never invents status codes of its own.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind classifies a service error.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindUnauthenticated Kind = "unauthenticated"
	KindConflict        Kind = "conflict"
	KindNotFound        Kind = "not_found"
	KindUpstream        Kind = "upstream"
	KindUnavailable     Kind = "unavailable"
	KindInternal        Kind = "internal"
)

// ServiceError is the error type returned by domain operations.
// Message is safe to return to clients; Err carries internal detail for logs.
type ServiceError struct {
	Kind       Kind
	Message    string
	HTTPStatus int
	Err        error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the wrapped error to errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Validation reports malformed or missing input.
func Validation(message string) *ServiceError {
	return &ServiceError{Kind: KindValidation, Message: message, HTTPStatus: http.StatusBadRequest}
}

// Unauthenticated reports a missing, invalid, or expired credential.
func Unauthenticated(message string) *ServiceError {
	return &ServiceError{Kind: KindUnauthenticated, Message: message, HTTPStatus: http.StatusUnauthorized}
}

// Conflict reports a duplicate unique field. The status is deliberately 400
// with a generic message so callers cannot enumerate which field collided.
func Conflict(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: message, HTTPStatus: http.StatusBadRequest}
}

// NotFound unifies "does not exist" and "not owned by the caller".
func NotFound(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: message, HTTPStatus: http.StatusNotFound}
}

// Upstream reports a failed call to an external service.
func Upstream(message string, err error) *ServiceError {
	return &ServiceError{Kind: KindUpstream, Message: message, HTTPStatus: http.StatusBadGateway, Err: err}
}

// Unavailable reports that the persistence layer is not reachable.
func Unavailable(message string) *ServiceError {
	return &ServiceError{Kind: KindUnavailable, Message: message, HTTPStatus: http.StatusInternalServerError}
}

// Internal reports an unexpected failure. Detail stays in Err.
func Internal(message string, err error) *ServiceError {
	return &ServiceError{Kind: KindInternal, Message: message, HTTPStatus: http.StatusInternalServerError, Err: err}
}

// From extracts a *ServiceError from err, wrapping unknown errors as Internal
// so no raw fault ever reaches the response writer.
func From(err error) *ServiceError {
	var se *ServiceError
	if stderrors.As(err, &se) {
		return se
	}
	return Internal("Internal server error", err)
}

// IsKind reports whether err is a ServiceError of the given kind.
func IsKind(err error, kind Kind) bool {
	var se *ServiceError
	return stderrors.As(err, &se) && se.Kind == kind
}
