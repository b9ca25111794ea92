// internal/apperrors/apperrors.go
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error so the transport layer can pick a status code
// without parsing messages.
type Kind string

const (
	InvalidInput       Kind = "invalid_input"
	NotFound           Kind = "not_found"
	Conflict           Kind = "conflict"
	ServiceUnavailable Kind = "service_unavailable"
	UploadFailed       Kind = "upload_failed"
)

type Error struct {
	Kind    Kind
	Message string
	Details map[string]interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithDetails attaches extra fields that are merged into the JSON error body.
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	e.Details = details
	return e
}

// KindOf returns the kind of err, or an empty kind for unclassified errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// StatusOf maps an error to its HTTP status. Conflict maps to 400 rather than
// 409: the delete-guard contract reports "shop has active products" as a plain
// bad request.
func StatusOf(err error) int {
	switch KindOf(err) {
	case InvalidInput, Conflict:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case ServiceUnavailable, UploadFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
