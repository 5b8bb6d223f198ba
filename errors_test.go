package linguahub

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
	}{
		{"translation", &TranslationError{Message: "batch failed", Cause: cause}},
		{"token", &TokenError{Message: "endpoint returned 403", Cause: cause}},
		{"detection", &DetectionError{Cause: cause}},
		{"provider", &ProviderError{Message: "post failed", Cause: cause}},
		{"cache", &CacheError{Message: "set failed", Cause: cause}},
		{"processor", &ProcessorError{Message: "parse failed", ContentType: "html", Cause: cause}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, cause) {
				t.Errorf("%v does not unwrap to cause", tt.err)
			}
			if !strings.Contains(tt.err.Error(), "connection refused") {
				t.Errorf("Error() = %q, want cause included", tt.err.Error())
			}
		})
	}
}

func TestErrorWithoutCause(t *testing.T) {
	err := &TokenError{Message: "no token header in response"}
	if !strings.Contains(err.Error(), "no token header") {
		t.Errorf("Error() = %q", err.Error())
	}
	if errors.Unwrap(err) != nil {
		t.Error("expected nil unwrap without cause")
	}
}

func TestReassemblyError(t *testing.T) {
	err := &ReassemblyError{Expected: 3, Got: 2}
	if !strings.Contains(err.Error(), "expected 3") || !strings.Contains(err.Error(), "got 2") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestProviderErrorRetryable(t *testing.T) {
	retryable := &ProviderError{Message: "timeout", Retryable: true}
	fatal := &ProviderError{Message: "bad request"}

	if !IsRetryable(retryable) {
		t.Error("timeout should be retryable")
	}
	if IsRetryable(fatal) {
		t.Error("bad request should not be retryable")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("plain errors should not be retryable")
	}
}
