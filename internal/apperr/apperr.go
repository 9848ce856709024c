package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindValidation
	KindConflict
	KindDownload
	KindExtraction
	KindGeneration
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindDownload:
		return "download"
	case KindExtraction:
		return "extraction"
	case KindGeneration:
		return "generation"
	default:
		return "internal"
	}
}

// Error is a failure with a kind that decides how it is reported to the caller.
// Message is safe to show to users, Err keeps the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
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

func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

var (
	ErrNotAuthenticated = New(KindAuthentication, "Not authenticated")
	ErrNotAuthorized    = New(KindAuthorization, "Not authorized")
)

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, fmt.Sprintf(format, args...))
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, fmt.Sprintf(format, args...))
}

func Conflict(format string, args ...any) *Error {
	return New(KindConflict, fmt.Sprintf(format, args...))
}

// KindOf returns the kind of the first *Error in err's chain, KindInternal otherwise.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindDownload, KindGeneration:
		return http.StatusBadGateway
	case KindExtraction:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage hides causes of internal errors from API responses.
// Download and extraction failures report their message only, the cause stays in the logs.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		switch {
		case appErr.Kind == KindInternal && appErr.Message == "":
			return "Internal error"
		case (appErr.Kind == KindDownload || appErr.Kind == KindExtraction) && appErr.Message != "":
			return appErr.Message
		}
		return appErr.Error()
	}
	return "Internal error"
}
