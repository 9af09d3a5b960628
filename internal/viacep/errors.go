package viacep

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"syscall"

	"github.com/muurk/buscacep/internal/urls"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error (reset, unreachable, ...)
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates the request did not finish in time
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the service refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates the service hostname could not be resolved
	ErrTypeDNS
	// ErrTypeHTTP indicates an unexpected HTTP status code
	ErrTypeHTTP
	// ErrTypeRateLimited indicates the service or the local limiter throttled the request
	ErrTypeRateLimited
	// ErrTypeParse indicates a body that could not be read as directory JSON
	ErrTypeParse
	// ErrTypeValidation indicates invalid search arguments
	ErrTypeValidation
	// ErrTypeCanceled indicates the caller abandoned the request
	ErrTypeCanceled
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeRateLimited:
		return "Rate Limited"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeCanceled:
		return "Canceled"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error is a failed exchange with the directory service.
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int   // HTTP status code, when there was a response
	Err        error // underlying cause
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// classify inspects a transport error and picks the matching type.
func classify(err error) ErrorType {
	switch {
	case errors.Is(err, context.Canceled):
		return ErrTypeCanceled
	case errors.Is(err, context.DeadlineExceeded), os.IsTimeout(err):
		return ErrTypeTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ErrTypeDNS
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return ErrTypeConnectionRefused
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return ErrTypeTimeout
	}

	return ErrTypeNetwork
}

// NewNetworkError creates a transport error with automatic classification
func NewNetworkError(message string, err error) *Error {
	return &Error{
		Type:    classify(err),
		Message: message,
		Err:     err,
	}
}

// NewHTTPError creates an error for an unexpected status code
func NewHTTPError(statusCode int) *Error {
	typ := ErrTypeHTTP
	if statusCode == http.StatusTooManyRequests {
		typ = ErrTypeRateLimited
	}
	return &Error{
		Type:       typ,
		Message:    fmt.Sprintf("unexpected status code: %d %s", statusCode, http.StatusText(statusCode)),
		StatusCode: statusCode,
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *Error {
	return &Error{
		Type:    ErrTypeParse,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *Error {
	return &Error{
		Type:    ErrTypeValidation,
		Message: message,
	}
}

func errorType(err error) (ErrorType, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Type, true
	}
	return 0, false
}

func isType(err error, types ...ErrorType) bool {
	typ, ok := errorType(err)
	if !ok {
		return false
	}
	for _, t := range types {
		if typ == t {
			return true
		}
	}
	return false
}

// IsNetworkError reports a connection-level failure (including timeout, refused and DNS).
func IsNetworkError(err error) bool {
	return isType(err, ErrTypeNetwork, ErrTypeTimeout, ErrTypeConnectionRefused, ErrTypeDNS)
}

// IsTimeout reports whether err is a timeout.
func IsTimeout(err error) bool { return isType(err, ErrTypeTimeout) }

// IsHTTPError reports an unexpected status code.
func IsHTTPError(err error) bool { return isType(err, ErrTypeHTTP, ErrTypeRateLimited) }

// IsParseError reports an undecodable body.
func IsParseError(err error) bool { return isType(err, ErrTypeParse) }

// IsValidationError reports invalid search arguments.
func IsValidationError(err error) bool { return isType(err, ErrTypeValidation) }

// IsCanceled reports a request abandoned by its caller.
func IsCanceled(err error) bool { return isType(err, ErrTypeCanceled) }

// ShortMessage returns a concise, user-friendly error message
func ShortMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	switch e.Type {
	case ErrTypeTimeout:
		return "Directory service not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Directory service refused the connection"
	case ErrTypeDNS:
		return "Cannot resolve the directory service hostname"
	case ErrTypeNetwork:
		return "Network error - check your connection"
	case ErrTypeHTTP:
		return fmt.Sprintf("Directory service error (HTTP %d)", e.StatusCode)
	case ErrTypeRateLimited:
		return "Too many requests - wait a moment and search again"
	case ErrTypeParse:
		return "Unexpected response from the directory service"
	case ErrTypeCanceled:
		return "Lookup canceled"
	default:
		return e.Message
	}
}

// TroubleshootingHint returns user-facing advice for an error, one tip per line.
func TroubleshootingHint(err error) []string {
	typ, ok := errorType(err)
	if !ok {
		return []string{"An unexpected error occurred. Please try again."}
	}

	switch typ {
	case ErrTypeTimeout:
		return []string{
			"Check your internet connection",
			"Try a longer --timeout",
			"The directory service may be under load; search again shortly",
		}
	case ErrTypeConnectionRefused, ErrTypeNetwork:
		return []string{
			"Check your internet connection",
			"Verify proxy or firewall settings allow HTTPS",
			"Check the base URL in your configuration",
		}
	case ErrTypeDNS:
		return []string{
			"Check your DNS settings",
			"Verify the base URL hostname in your configuration",
		}
	case ErrTypeRateLimited:
		return []string{
			"The service limits request rates; wait before searching again",
			"Lower requests_per_second in your configuration",
			"Service limits are described at " + urls.ServiceDocs,
		}
	case ErrTypeHTTP:
		return []string{
			"The directory service returned an error",
			"Search again later",
		}
	case ErrTypeParse:
		return []string{
			"The response was not valid directory JSON",
			"Check that the base URL points at a ViaCEP-compatible service",
			"If it does, report it at " + urls.Issues,
		}
	default:
		return nil
	}
}
