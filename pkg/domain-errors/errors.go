// Package domainerrors defines the coded error type shared by services and transports.
//
// Services return *Error values (optionally wrapping a cause). Transports map the Code
// to a status via HTTPStatus; they never inspect messages.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code is a machine-readable error classification.
type Code string

const (
	CodeInternal           Code = "internal_error"
	CodeInvariantViolation Code = "invariant_violation"
	CodeValidation         Code = "validation_error"
	CodeBadRequest         Code = "bad_request"
	CodeInvalidInput       Code = "invalid_input"
	CodeInvalidRequest     Code = "invalid_request"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeLocked             Code = "locked"
	CodePaymentRequired    Code = "payment_required"
	CodeUnavailable        Code = "service_unavailable"
	CodeTimeout            Code = "timeout"
)

// Detail is one entry of a structured error array, e.g. a failed field.
type Detail struct {
	Error string `json:"error"`
	Path  string `json:"path,omitempty"`
}

// Error is a coded domain error.
type Error struct {
	Code    Code
	Message string
	Details []Detail
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches another *Error by code and message so callers can compare
// against freshly constructed values.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New creates a coded error.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// WithDetails returns a validation-style error carrying structured details.
func WithDetails(code Code, msg string, details ...Detail) *Error {
	return &Error{Code: code, Message: msg, Details: details}
}

// As extracts the first *Error in the chain.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether any coded error in the chain carries code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var de *Error
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.cause
	}
	return false
}

// CodeOf returns the outermost code or CodeInternal for uncoded errors.
func CodeOf(err error) Code {
	if de, ok := As(err); ok {
		return de.Code
	}
	return CodeInternal
}

var statusByCode = map[Code]int{
	CodeInternal:           http.StatusInternalServerError,
	CodeInvariantViolation: http.StatusBadRequest,
	CodeValidation:         http.StatusBadRequest,
	CodeBadRequest:         http.StatusBadRequest,
	CodeInvalidInput:       http.StatusBadRequest,
	CodeInvalidRequest:     http.StatusBadRequest,
	CodeUnauthorized:       http.StatusUnauthorized,
	CodeForbidden:          http.StatusForbidden,
	CodeNotFound:           http.StatusNotFound,
	CodeConflict:           http.StatusForbidden,
	CodeLocked:             http.StatusUnauthorized,
	CodePaymentRequired:    http.StatusPaymentRequired,
	CodeUnavailable:        http.StatusServiceUnavailable,
	CodeTimeout:            http.StatusGatewayTimeout,
}

// HTTPStatus maps a code to its transport status.
func HTTPStatus(code Code) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}
