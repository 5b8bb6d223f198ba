package linguahub

import "context"

// Fragment is a text-bearing leaf node extracted from a markup document,
// translated as an indivisible unit of content. Index is the node's
// document-order position and is how replacements find their way back.
type Fragment struct {
	Index int
	Text  string
}

// Content is a piece of forum content handed to the translator.
type Content struct {
	ID     string // host-assigned identifier (post id, topic id)
	Raw    string // author-written markdown, may be empty
	Cooked string // rendered HTML
	Locale string // locale recorded on the content, "" when unknown
}

// ProcessedContent is the result of a translation operation.
type ProcessedContent struct {
	Content         string // translated markup
	SourceLang      string // detected source language code
	TargetLang      string
	FragmentCount   int  // translatable leaves found
	BatchCount      int  // batches sent to the vendor
	FallbackBatches int  // batches substituted with their original text
	Cached          bool // served from the content cache
}

// ResultKind discriminates per-batch translation outcomes.
type ResultKind int

const (
	// ResultOK carries translated batch text.
	ResultOK ResultKind = iota
	// ResultUnsupportedLanguage means the vendor rejected the language pair.
	ResultUnsupportedLanguage
	// ResultAPIError covers every other vendor or transport failure.
	ResultAPIError
)

// Result is the tagged outcome of translating one batch.
type Result struct {
	Kind ResultKind
	Text string // translated text, set when Kind is ResultOK
	Err  error  // underlying failure, set when Kind is ResultAPIError
}

// OK returns a successful batch result.
func OK(text string) Result { return Result{Kind: ResultOK, Text: text} }

// Unsupported returns the unsupported-language-pair result.
func Unsupported() Result { return Result{Kind: ResultUnsupportedLanguage} }

// Failed returns a failed batch result wrapping err.
func Failed(err error) Result { return Result{Kind: ResultAPIError, Err: err} }

// BatchTranslator sends one wrapped batch string for translation.
type BatchTranslator interface {
	TranslateBatch(ctx context.Context, batch, from, to string) Result
}

// Detector resolves the source language of a piece of text.
type Detector interface {
	Detect(ctx context.Context, text string) (string, error)
}

// ContentProcessor extracts ordered fragments from content and writes
// index-aligned replacements back into it.
type ContentProcessor interface {
	Extract(content string) (parsed interface{}, fragments []Fragment, err error)
	Apply(parsed interface{}, replacements []string) (string, error)
	ContentType() string
}

// IgnoredTags contains HTML tags whose content should not be translated.
var IgnoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"code":     true,
	"pre":      true,
	"textarea": true,
	"noscript": true,
}

// RTLLanguages contains language codes that use right-to-left text direction.
var RTLLanguages = map[string]bool{
	"ar": true, // Arabic
	"he": true, // Hebrew
	"fa": true, // Persian/Farsi
	"ur": true, // Urdu
	"ps": true, // Pashto
	"sd": true, // Sindhi
	"ug": true, // Uyghur
}
