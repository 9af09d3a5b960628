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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTypeString(t *testing.T) {
	assert.Equal(t, "Timeout", ErrTypeTimeout.String())
	assert.Equal(t, "Parse Error", ErrTypeParse.String())
	assert.Equal(t, "ErrorType(99)", ErrorType(99).String())
}

func TestError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &Error{Type: ErrTypeNetwork, Message: "GET request failed", Err: cause}

	assert.Equal(t, "Network Error: GET request failed (caused by: connection reset)", err.Error())
	assert.ErrorIs(t, err, cause)

	plain := &Error{Type: ErrTypeHTTP, Message: "unexpected status code: 502"}
	assert.Equal(t, "HTTP Error: unexpected status code: 502", plain.Error())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"canceled", context.Canceled, ErrTypeCanceled},
		{"wrapped canceled", &url.Error{Op: "Get", URL: "x", Err: context.Canceled}, ErrTypeCanceled},
		{"deadline", context.DeadlineExceeded, ErrTypeTimeout},
		{"os timeout", os.ErrDeadlineExceeded, ErrTypeTimeout},
		{"dns", &net.DNSError{Name: "viacep.invalid", Err: "no such host"}, ErrTypeDNS},
		{"refused", &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}, ErrTypeConnectionRefused},
		{"generic", errors.New("broken pipe"), ErrTypeNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewNetworkError("request failed", tt.err).Type)
		})
	}
}

func TestNewHTTPError(t *testing.T) {
	err := NewHTTPError(http.StatusInternalServerError)
	assert.Equal(t, ErrTypeHTTP, err.Type)
	assert.Equal(t, 500, err.StatusCode)
	assert.Contains(t, err.Message, "Internal Server Error")

	assert.Equal(t, ErrTypeRateLimited, NewHTTPError(http.StatusTooManyRequests).Type)
}

func TestPredicates_SeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("lookup 01310930: %w", NewParseError("bad json", errors.New("eof")))

	assert.True(t, IsParseError(wrapped))
	assert.False(t, IsNetworkError(wrapped))
	assert.False(t, IsParseError(errors.New("plain")))
	assert.False(t, IsTimeout(nil))
}

func TestShortMessage(t *testing.T) {
	assert.Equal(t, "", ShortMessage(nil))
	assert.Equal(t, "plain", ShortMessage(errors.New("plain")))
	assert.Equal(t, "Directory service not responding (timeout)", ShortMessage(NewNetworkError("x", context.DeadlineExceeded)))
	assert.Equal(t, "Directory service error (HTTP 503)", ShortMessage(NewHTTPError(503)))
	assert.Equal(t, "city must have at least 3 characters", ShortMessage(NewValidationError("city must have at least 3 characters")))
}

func TestTroubleshootingHint(t *testing.T) {
	assert.NotEmpty(t, TroubleshootingHint(NewNetworkError("x", context.DeadlineExceeded)))
	assert.NotEmpty(t, TroubleshootingHint(NewHTTPError(429)))
	assert.NotEmpty(t, TroubleshootingHint(NewParseError("x", nil)))
	assert.Equal(t, []string{"An unexpected error occurred. Please try again."}, TroubleshootingHint(errors.New("x")))
	assert.Nil(t, TroubleshootingHint(NewValidationError("x")))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "empty_body", EmptyBody().String())
	assert.Equal(t, "success(01310930)", Success(paulistaRecord()).String())
	assert.Contains(t, TransportError(errors.New("boom")).String(), "boom")
	assert.Equal(t, "OutcomeKind(7)", OutcomeKind(7).String())
}
