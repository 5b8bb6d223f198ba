package provider

import (
	"context"
	"strings"

	"github.com/forumkit/linguahub"
)

// Mock is a scriptable batch translator for testing.
type Mock struct {
	// Translations maps batch text to translated text. Batches without an
	// entry are echoed back unchanged (identity translation).
	Translations map[string]string

	// Results, when non-empty, overrides the outcome per call in order.
	Results []linguahub.Result

	CallCount int      // number of TranslateBatch calls
	Batches   []string // batches received, in order
	LastFrom  string
	LastTo    string
}

// NewMock creates a mock that translates every batch as identity.
func NewMock() *Mock {
	return &Mock{Translations: map[string]string{}}
}

// TranslateBatch returns scripted results, mapped translations, or the
// batch itself.
func (m *Mock) TranslateBatch(_ context.Context, batch, from, to string) linguahub.Result {
	call := m.CallCount
	m.CallCount++
	m.Batches = append(m.Batches, batch)
	m.LastFrom = from
	m.LastTo = to

	if call < len(m.Results) {
		return m.Results[call]
	}
	if translated, ok := m.Translations[batch]; ok {
		return linguahub.OK(translated)
	}
	return linguahub.OK(batch)
}

// MockDetector is a scriptable language detector for testing.
type MockDetector struct {
	Lang      string
	Err       error
	CallCount int
	LastText  string
}

// Detect returns the scripted language or error.
func (d *MockDetector) Detect(_ context.Context, text string) (string, error) {
	d.CallCount++
	d.LastText = text
	if d.Err != nil {
		return "", d.Err
	}
	if d.Lang == "" {
		return "en", nil
	}
	return d.Lang, nil
}

// TranslateWords is a helper for building mock translations: it maps each
// word through the table, leaving markup intact.
func TranslateWords(batch string, words map[string]string) string {
	out := batch
	for src, dst := range words {
		out = strings.ReplaceAll(out, src, dst)
	}
	return out
}

// Verify mocks implement the engine interfaces
var (
	_ Translator         = (*Mock)(nil)
	_ linguahub.Detector = (*MockDetector)(nil)
)
