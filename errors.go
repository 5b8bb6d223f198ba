package linguahub

import "fmt"

// TranslationError is the base error type for translation failures.
type TranslationError struct {
	Message string
	Cause   error
}

func (e *TranslationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TranslationError) Unwrap() error {
	return e.Cause
}

// TokenError indicates the vendor token endpoint rejected the request or
// returned no token header.
type TokenError struct {
	Message string
	Cause   error
}

func (e *TokenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("token error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("token error: %s", e.Message)
}

func (e *TokenError) Unwrap() error {
	return e.Cause
}

// DetectionError indicates the source language could not be resolved.
// The pipeline aborts before any translation call is made.
type DetectionError struct {
	Cause error
}

func (e *DetectionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("language detection failed: %v", e.Cause)
	}
	return "language detection failed"
}

func (e *DetectionError) Unwrap() error {
	return e.Cause
}

// ProviderError indicates a vendor API or transport failure.
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a cache operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// ProcessorError indicates a content processing failure (parse error, etc.).
type ProcessorError struct {
	Message     string
	Cause       error
	ContentType string
}

func (e *ProcessorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("processor error (%s): %s: %v", e.ContentType, e.Message, e.Cause)
	}
	return fmt.Sprintf("processor error (%s): %s", e.ContentType, e.Message)
}

func (e *ProcessorError) Unwrap() error {
	return e.Cause
}

// ReassemblyError indicates the vendor returned a different number of
// wrapped blocks than fragments were sent. The document is left untouched.
type ReassemblyError struct {
	Expected int
	Got      int
}

func (e *ReassemblyError) Error() string {
	return fmt.Sprintf("reassembly mismatch: expected %d blocks, got %d", e.Expected, e.Got)
}
