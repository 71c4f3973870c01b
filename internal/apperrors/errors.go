package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so handlers can map it to an HTTP status without
// string matching.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindForbidden          Kind = "forbidden"
	KindInvalidInput       Kind = "invalid_input"
	KindInvalidState       Kind = "invalid_state"
	KindAlreadyExists      Kind = "already_exists"
	KindAlreadyProvisioned Kind = "already_provisioned"
	KindPartialFailure     Kind = "partial_failure"
	KindUpstreamFailure    Kind = "upstream_failure"
	KindTimeout            Kind = "timeout"
	KindInternal           Kind = "internal"
)

// Error is the canonical service error. Message is human-readable; Field
// names the offending input field when the kind is invalid_input.
type Error struct {
	Kind    Kind
	Message string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %s)", e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// InvalidField reports a malformed or unparseable input field by name.
func InvalidField(field, message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message, Field: field}
}

// KindOf extracts the error kind, defaulting to internal for plain errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error kind to the response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindInvalidState:
		return http.StatusConflict
	case KindAlreadyExists, KindAlreadyProvisioned:
		return http.StatusConflict
	case KindPartialFailure:
		return http.StatusMultiStatus
	case KindUpstreamFailure:
		return http.StatusBadGateway
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
