package lang

import (
	"context"
	"errors"

	wlg "github.com/abadojack/whatlanggo"
)

// ErrUnreliable is returned when the local detector cannot classify the
// input with confidence.
var ErrUnreliable = errors.New("language detection unreliable")

// Local detects languages offline with a trigram classifier. It needs no
// network round trip, which makes it a usable fallback when the vendor
// detection endpoint is unreachable.
type Local struct{}

// NewLocal creates an offline detector.
func NewLocal() *Local {
	return &Local{}
}

// Detect returns the ISO-639-1 code of the detected language, or
// ErrUnreliable when classification is not trustworthy.
func (l *Local) Detect(_ context.Context, text string) (string, error) {
	if len(text) == 0 {
		return "", ErrUnreliable
	}
	info := wlg.Detect(text)
	if !info.IsReliable() {
		return "", ErrUnreliable
	}
	code := info.Lang.Iso6391()
	if code == "" {
		return "", ErrUnreliable
	}
	return code, nil
}

// Fallback chains two detectors: the secondary is consulted only when the
// primary fails. The default pipeline uses the vendor detector alone; wire
// a Fallback over it when degraded detection beats none.
type Fallback struct {
	Primary   Detector
	Secondary Detector
}

// NewFallback creates a detector chain.
func NewFallback(primary, secondary Detector) *Fallback {
	return &Fallback{Primary: primary, Secondary: secondary}
}

// Detect implements Detector.
func (f *Fallback) Detect(ctx context.Context, text string) (string, error) {
	code, err := f.Primary.Detect(ctx, text)
	if err == nil {
		return code, nil
	}
	if f.Secondary == nil {
		return "", err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", err
	}
	return f.Secondary.Detect(ctx, text)
}

// Verify implementations
var (
	_ Detector = (*Local)(nil)
	_ Detector = (*Fallback)(nil)
)
