// Package apperrors holds the structured errors shared by the services,
// repositories and transports.
package apperrors

import (
	"errors"
	"fmt"
)

// Error codes use the CATEGORY.SPECIFIC format.
const (
	CodeValidation        = "VALIDATION.FAILED"
	CodeNotFound          = "STORE.NOT_FOUND"
	CodeWriteFailed       = "STORE.WRITE_FAILED"
	CodeInsufficientStock = "STOCK.INSUFFICIENT"
	CodeForbidden         = "AUTH.FORBIDDEN"
)

// Sentinels for errors.Is. Matching is done by Code, so any AppError with the
// same code matches regardless of message or cause.
var (
	ErrValidation        = &AppError{Code: CodeValidation, Message: "validation failed"}
	ErrNotFound          = &AppError{Code: CodeNotFound, Message: "record not found"}
	ErrPersistence       = &AppError{Code: CodeWriteFailed, Message: "store write failed"}
	ErrInsufficientStock = &AppError{Code: CodeInsufficientStock, Message: "insufficient stock"}
	ErrForbidden         = &AppError{Code: CodeForbidden, Message: "forbidden"}
)

// AppError is a machine readable error with an optional cause.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func New(code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// Validation reports a malformed input field.
func Validation(field, reason string) *AppError {
	return &AppError{Code: CodeValidation, Message: fmt.Sprintf("%s: %s", field, reason)}
}

// NotFound reports a missing entity of the given kind.
func NotFound(kind, key string) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf("%s %q not found", kind, key)}
}

// Persistence wraps a failed repository write. Callers may retry.
func Persistence(op string, cause error) *AppError {
	return &AppError{Code: CodeWriteFailed, Message: op, Cause: cause}
}

// InsufficientStock reports a movement that would drive quantity below zero.
func InsufficientStock(code string, have, delta float64) *AppError {
	return &AppError{
		Code:    CodeInsufficientStock,
		Message: fmt.Sprintf("material %q: on hand %.2f, change %+.2f", code, have, delta),
	}
}

func Forbidden(action string) *AppError {
	return &AppError{Code: CodeForbidden, Message: action}
}

// CodeOf returns the code of the first AppError in the chain, or "".
func CodeOf(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// IsDomain reports whether err already carries a classified AppError,
// i.e. it should be passed through instead of being wrapped as a write failure.
func IsDomain(err error) bool {
	return CodeOf(err) != ""
}
