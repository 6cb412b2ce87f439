package apperror

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation          Kind = "validation"
	KindBadRequest          Kind = "bad_request"
	KindUnauthorized        Kind = "unauthorized"
	KindConflict            Kind = "conflict"
	KindNotFound            Kind = "not_found"
	KindRateLimited         Kind = "rate_limited"
	KindInvalidCredentials  Kind = "invalid_credentials"
	KindExpiredOrInvalidOtp Kind = "expired_or_invalid_otp"
	KindInvalidToken        Kind = "invalid_token"
	KindServerMisconfigured Kind = "server_misconfigured"
	KindInternal            Kind = "internal"
)

// Error is the error type services return to controllers. Message is safe to
// show to clients; Err is kept for logs only.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind so callers can write errors.Is(err, apperror.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func (e *Error) StatusCode() int {
	return StatusCode(e.Kind)
}

func StatusCode(kind Kind) int {
	switch kind {
	case KindValidation, KindBadRequest, KindConflict, KindInvalidCredentials,
		KindExpiredOrInvalidOtp, KindInvalidToken:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Sentinels for errors.Is checks.
var (
	ErrValidation          = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrBadRequest          = &Error{Kind: KindBadRequest, Message: "bad request"}
	ErrUnauthorized        = &Error{Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrConflict            = &Error{Kind: KindConflict, Message: "already exists"}
	ErrNotFound            = &Error{Kind: KindNotFound, Message: "not found"}
	ErrRateLimited         = &Error{Kind: KindRateLimited, Message: "too many requests"}
	ErrInvalidCredentials  = &Error{Kind: KindInvalidCredentials, Message: "Invalid email or password"}
	ErrExpiredOrInvalidOtp = &Error{Kind: KindExpiredOrInvalidOtp, Message: "Invalid or expired OTP."}
	ErrInvalidToken        = &Error{Kind: KindInvalidToken, Message: "Invalid Google token"}
	ErrServerMisconfigured = &Error{Kind: KindServerMisconfigured, Message: "Server misconfigured"}
	ErrInternal            = &Error{Kind: KindInternal, Message: "Internal Server Error"}
)

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func BadRequest(message string) *Error {
	return New(KindBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

func Conflict(message string) *Error {
	return New(KindConflict, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Internal(message string, err error) *Error {
	return Wrap(KindInternal, message, err)
}

// KindOf returns the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
