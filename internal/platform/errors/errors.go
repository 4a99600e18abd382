// Package errors wraps the standard errors package with context wrapping and
// the sentinels used by the analysis HTTP client.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels for the analysis endpoint. StatusError unwraps to one of them.
var (
	ErrTimeout            = errors.New("operation timed out")
	ErrRateLimit          = errors.New("rate limit exceeded")
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrInvalidResponse    = errors.New("invalid response")
)

type wrappedError struct {
	msg   string
	cause error
}

func (e *wrappedError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *wrappedError) Unwrap() error {
	return e.cause
}

// Wrap prefixes err with msg. Wrap(nil, ...) is nil.
//
//	if err := writeSummary(path); err != nil {
//	    return errors.Wrap(err, "summary")
//	}
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: msg, cause: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: fmt.Sprintf(format, args...), cause: err}
}

// StatusError is a non-2xx HTTP answer. Kind is the sentinel the status maps
// to, or nil for statuses without one.
type StatusError struct {
	Code   int
	Status string
	Kind   error
}

func (e *StatusError) Error() string {
	if e.Kind != nil {
		return fmt.Sprintf("HTTP %d: %v", e.Code, e.Kind)
	}
	if e.Status != "" {
		return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
	}
	return fmt.Sprintf("HTTP %d", e.Code)
}

func (e *StatusError) Unwrap() error {
	return e.Kind
}

// FromStatus builds the error for an HTTP status code, nil for 2xx.
func FromStatus(code int, status string) error {
	if code >= 200 && code < 300 {
		return nil
	}
	var kind error
	switch code {
	case http.StatusTooManyRequests:
		kind = ErrRateLimit
	case http.StatusNotFound:
		kind = ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = ErrUnauthorized
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		kind = ErrServiceUnavailable
	case http.StatusRequestTimeout:
		kind = ErrTimeout
	}
	return &StatusError{Code: code, Status: status, Kind: kind}
}

// StatusCode returns the HTTP status carried in err's chain, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// IsTemporary reports whether retrying later may succeed.
func IsTemporary(err error) bool {
	return Is(err, ErrRateLimit) || Is(err, ErrServiceUnavailable) || Is(err, ErrTimeout)
}

func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target interface{}) bool { return errors.As(err, target) }

func Unwrap(err error) error { return errors.Unwrap(err) }

func New(msg string) error { return errors.New(msg) }

func Errorf(format string, args ...interface{}) error { return fmt.Errorf(format, args...) }

// Join discards nil errors; it returns nil when all are nil.
func Join(errs ...error) error { return errors.Join(errs...) }
