package apiclient

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"testing"

	"github.com/muurk/logconsole/internal/urls"
)

func TestNewStatusError(t *testing.T) {
	tests := []struct {
		status    int
		wantType  ErrorType
		retryable bool
	}{
		{http.StatusUnauthorized, ErrTypeAuth, false},
		{http.StatusForbidden, ErrTypeAuth, false},
		{http.StatusNotFound, ErrTypeNotFound, false},
		{http.StatusBadRequest, ErrTypeHTTP, false},
		{http.StatusTooManyRequests, ErrTypeHTTP, true},
		{http.StatusInternalServerError, ErrTypeHTTP, true},
		{http.StatusServiceUnavailable, ErrTypeHTTP, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			err := NewStatusError(tt.status, "boom")
			if err.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", err.Type, tt.wantType)
			}
			if err.Retryable != tt.retryable {
				t.Errorf("Retryable = %v, want %v", err.Retryable, tt.retryable)
			}
			if err.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", err.StatusCode, tt.status)
			}
		})
	}
}

func TestClassifyNetworkError(t *testing.T) {
	refused := &url.Error{Op: "Get", URL: "http://x", Err: &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}}
	dns := &url.Error{Op: "Get", URL: "http://x", Err: &net.DNSError{Name: "graylog.invalid", Err: "no such host"}}
	timeout := &url.Error{Op: "Get", URL: "http://x", Err: &net.DNSError{Name: "slow", IsTimeout: true}}

	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, ErrTypeUnknown},
		{"refused", refused, ErrTypeConnectionRefused},
		{"dns", dns, ErrTypeDNS},
		{"timeout", timeout, ErrTypeTimeout},
		{"generic", errors.New("reset"), ErrTypeNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyNetworkError(tt.err)
			if tt.err == nil {
				if got != nil {
					t.Errorf("ClassifyNetworkError(nil) = %v, want nil", got)
				}
				return
			}
			if got.Type != tt.want {
				t.Errorf("ClassifyNetworkError() = %v, want %v", got.Type, tt.want)
			}
		})
	}
}

func TestErrorPredicatesSeeWrappedErrors(t *testing.T) {
	err := fmt.Errorf("loading searches config: %w", NewStatusError(http.StatusNotFound, "gone"))

	if !IsNotFound(err) {
		t.Error("IsNotFound() should unwrap")
	}
	if IsRetryable(err) {
		t.Error("404 should not be retryable")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("plain errors are not retryable")
	}
	if IsNetworkError(err) || IsAuthError(err) {
		t.Error("404 is neither a network nor an auth error")
	}
}

func TestAPIErrorMessage(t *testing.T) {
	inner := errors.New("eof")
	err := &APIError{Type: ErrTypeParse, Message: "bad body", Err: inner}

	if !strings.Contains(err.Error(), "Parse Error: bad body") {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is() should find the wrapped error")
	}
}

func TestHints(t *testing.T) {
	if got := GetShortErrorMessage(NewStatusError(http.StatusBadGateway, "x")); got != "Server error (HTTP 502)" {
		t.Errorf("GetShortErrorMessage() = %q", got)
	}
	if got := GetShortErrorMessage(errors.New("plain")); got != "plain" {
		t.Errorf("GetShortErrorMessage() = %q", got)
	}
	if hint := GetTroubleshootingHint(NewStatusError(http.StatusUnauthorized, "x")); !strings.Contains(hint, "LOGCONSOLE_PASSWORD") {
		t.Errorf("auth hint = %q", hint)
	}
}

func TestHintsLinkDocumentation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth", NewStatusError(http.StatusUnauthorized, "x"), urls.Authentication},
		{"network", NewNetworkError("down", errors.New("reset")), urls.TroubleshootingGuide},
		{"not found", NewStatusError(http.StatusNotFound, "x"), urls.SystemConfigurations},
	}

	for _, tt := range tests {
		if hint := GetTroubleshootingHint(tt.err); !strings.Contains(hint, tt.want) {
			t.Errorf("%s: GetTroubleshootingHint() = %q, want link %s", tt.name, hint, tt.want)
		}
	}
}
