package linguahub

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Cache stores rendered translations and auth tokens with per-entry TTL.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// DefaultContentTTL is how long a rendered content translation stays cached.
const DefaultContentTTL = 24 * time.Hour

// Translator is the translation engine: it decomposes content into
// fragments, batches them, drives the vendor backend one batch at a time,
// and reassembles the result.
type Translator struct {
	provider   BatchTranslator
	detector   Detector
	cache      Cache
	cacheTTL   time.Duration
	processors map[string]ContentProcessor
	overrides  map[string]string
	batchLimit int
	logger     *zap.Logger
}

// Option is a functional option for configuring the Translator.
type Option func(*Translator)

// WithCache sets the content-level translation cache.
func WithCache(cache Cache) Option {
	return func(t *Translator) {
		t.cache = cache
	}
}

// WithCacheTTL sets the TTL for cached content translations.
func WithCacheTTL(ttl time.Duration) Option {
	return func(t *Translator) {
		t.cacheTTL = ttl
	}
}

// WithProcessor registers a content processor.
func WithProcessor(processor ContentProcessor) Option {
	return func(t *Translator) {
		t.processors[processor.ContentType()] = processor
	}
}

// WithBatchLimit overrides the serialized byte limit per batch.
func WithBatchLimit(limit int) Option {
	return func(t *Translator) {
		t.batchLimit = limit
	}
}

// WithLocaleOverrides sets site-specific locale to vendor code mappings.
func WithLocaleOverrides(overrides map[string]string) Option {
	return func(t *Translator) {
		t.overrides = overrides
	}
}

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Translator) {
		t.logger = logger
	}
}

// New creates a Translator backed by the given batch translator and
// language detector.
func New(provider BatchTranslator, detector Detector, opts ...Option) *Translator {
	t := &Translator{
		provider:   provider,
		detector:   detector,
		cacheTTL:   DefaultContentTTL,
		processors: make(map[string]ContentProcessor),
		batchLimit: DefaultBatchLimit,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Translate translates content of the given type into the target locale.
//
// The pipeline is strictly sequential: batches are translated one at a
// time, in order, each a blocking round trip. Sentinel batch results fall
// back to the original text; a block count mismatch fails the whole
// operation and leaves the document untouched.
func (t *Translator) Translate(ctx context.Context, content, contentType, targetLocale string) (*ProcessedContent, error) {
	processor, ok := t.processors[contentType]
	if !ok {
		return nil, &ProcessorError{
			Message:     "no processor registered for content type",
			ContentType: contentType,
		}
	}

	targetLocale = NormalizeLocale(targetLocale)

	cacheKey := ContentCacheKey(HashText(content), targetLocale)
	if t.cache != nil {
		if cached, hit := t.cache.Get(ctx, cacheKey); hit {
			return &ProcessedContent{
				Content:    cached,
				TargetLang: targetLocale,
				Cached:     true,
			}, nil
		}
	}

	parsed, fragments, err := processor.Extract(content)
	if err != nil {
		return nil, err
	}

	if len(fragments) == 0 {
		return &ProcessedContent{
			Content:    content,
			TargetLang: targetLocale,
		}, nil
	}

	from, err := t.detectSource(ctx, fragments)
	if err != nil {
		return nil, err
	}

	if SameBaseLang(from, targetLocale) {
		return &ProcessedContent{
			Content:       content,
			SourceLang:    from,
			TargetLang:    targetLocale,
			FragmentCount: len(fragments),
		}, nil
	}

	to := VendorCode(targetLocale, t.overrides)
	batches := BuildBatches(fragments, t.batchLimit)

	results := make([]Result, len(batches))
	fallbacks := 0
	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res := t.provider.TranslateBatch(ctx, batch, from, to)
		if res.Kind != ResultOK {
			fallbacks++
			t.logger.Warn("batch fell back to original text",
				zap.Int("batch", i),
				zap.Int("kind", int(res.Kind)),
				zap.Error(res.Err),
			)
		}
		results[i] = res
	}

	replacements, err := Reassemble(results, batches, len(fragments))
	if err != nil {
		return nil, err
	}

	translated, err := processor.Apply(parsed, replacements)
	if err != nil {
		return nil, err
	}

	if contentType == "html" {
		translated = t.setHTMLAttributes(translated, targetLocale)
	}

	if t.cache != nil {
		if err := t.cache.Set(ctx, cacheKey, translated, t.cacheTTL); err != nil {
			t.logger.Warn("content cache set failed", zap.Error(err))
		}
	}

	return &ProcessedContent{
		Content:         translated,
		SourceLang:      from,
		TargetLang:      targetLocale,
		FragmentCount:   len(fragments),
		BatchCount:      len(batches),
		FallbackBatches: fallbacks,
	}, nil
}

// TranslateHTML is a convenience method for translating HTML content.
func (t *Translator) TranslateHTML(ctx context.Context, html, targetLocale string) (*ProcessedContent, error) {
	return t.Translate(ctx, html, "html", targetLocale)
}

// TranslateContent translates a forum content entity into the target
// locale. Rendered HTML is preferred; raw markdown is used when the entity
// has not been cooked yet.
func (t *Translator) TranslateContent(ctx context.Context, c Content, targetLocale string) (*ProcessedContent, error) {
	if c.Cooked != "" {
		return t.Translate(ctx, c.Cooked, "html", targetLocale)
	}
	if c.Raw != "" {
		return t.Translate(ctx, c.Raw, "markdown", targetLocale)
	}
	return &ProcessedContent{TargetLang: NormalizeLocale(targetLocale)}, nil
}

// DetectLanguage resolves the source language of a content entity.
func (t *Translator) DetectLanguage(ctx context.Context, c Content) (string, error) {
	text := c.Cooked
	if proc, ok := t.processors["html"]; ok && c.Cooked != "" {
		if _, fragments, err := proc.Extract(c.Cooked); err == nil {
			text = joinFragments(fragments)
		}
	}
	if text == "" {
		text = c.Raw
	}

	lang, err := t.detector.Detect(ctx, text)
	if err != nil {
		return "", &DetectionError{Cause: err}
	}
	return lang, nil
}

// detectSource resolves the source language over the joined fragment text.
func (t *Translator) detectSource(ctx context.Context, fragments []Fragment) (string, error) {
	lang, err := t.detector.Detect(ctx, joinFragments(fragments))
	if err != nil {
		return "", &DetectionError{Cause: err}
	}
	return lang, nil
}

// setHTMLAttributes stamps lang and dir on the <html> tag for full
// documents. Forum post fragments have no <html> tag and pass through.
func (t *Translator) setHTMLAttributes(content, targetLocale string) string {
	if !strings.Contains(strings.ToLower(content), "<html") {
		return content
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return content
	}

	htmlTag := doc.Find("html")
	if htmlTag.Length() > 0 {
		htmlTag.SetAttr("lang", ToHTMLLang(targetLocale))
		htmlTag.SetAttr("dir", GetDirection(targetLocale))
	}

	result, err := doc.Html()
	if err != nil {
		return content
	}

	return result
}

func joinFragments(fragments []Fragment) string {
	parts := make([]string, len(fragments))
	for i, f := range fragments {
		parts[i] = f.Text
	}
	return strings.Join(parts, "\n")
}
