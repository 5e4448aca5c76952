// Package apperrors collects the sentinel errors ALICE-Search returns
// across its public surface, plus an AppError wrapper for bridge
// components that need an HTTP-style status code alongside the error.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidStep    = errors.New("sa sample step must be >= 1")
	ErrEmptyText      = errors.New("text must be non-empty")
	ErrPatternTooLong = errors.New("pattern longer than indexed text")
	ErrCacheMiss      = errors.New("query cache miss")
	ErrNotConnected   = errors.New("backing store not connected")
	ErrInternal       = errors.New("internal error")
)

type AppError struct {
	Err        error
	Message    string
	StatusCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, statusCode int, message string) *AppError {
	return &AppError{Err: sentinel, Message: message, StatusCode: statusCode}
}

func Newf(sentinel error, statusCode int, format string, args ...any) *AppError {
	return &AppError{Err: sentinel, Message: fmt.Sprintf(format, args...), StatusCode: statusCode}
}

func HTTPStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, ErrInvalidStep), errors.Is(err, ErrEmptyText), errors.Is(err, ErrPatternTooLong):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotConnected):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
