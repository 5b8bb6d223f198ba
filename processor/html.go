package processor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/forumkit/linguahub"
	"golang.org/x/net/html"
)

// HTMLProcessor extracts and applies translations to HTML content.
//
// Extraction walks the DOM in document order and collects non-empty text
// leaves; Apply writes index-aligned replacements back into the recorded
// leaf nodes, so extraction and substitution can never disagree on
// traversal order.
type HTMLProcessor struct {
	ignoredTags map[string]bool
}

// NewHTMLProcessor creates a new HTML processor with default ignored tags.
func NewHTMLProcessor() *HTMLProcessor {
	return &HTMLProcessor{
		ignoredTags: linguahub.IgnoredTags,
	}
}

// NewHTMLProcessorWithIgnoredTags creates a new HTML processor with custom ignored tags.
func NewHTMLProcessorWithIgnoredTags(tags []string) *HTMLProcessor {
	ignored := make(map[string]bool)
	for _, tag := range tags {
		ignored[strings.ToLower(tag)] = true
	}
	return &HTMLProcessor{
		ignoredTags: ignored,
	}
}

// parsedHTML holds the parsed document and the extracted leaves, in
// document order, index-aligned with the returned fragments.
type parsedHTML struct {
	doc          *goquery.Document
	leaves       []*html.Node
	fullDocument bool
}

// Extract parses HTML and extracts translatable text leaves in document order.
func (p *HTMLProcessor) Extract(content string) (interface{}, []linguahub.Fragment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, nil, &linguahub.ProcessorError{
			Message:     "failed to parse HTML",
			Cause:       err,
			ContentType: "html",
		}
	}

	var fragments []linguahub.Fragment
	var leaves []*html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if p.ignoredTags[strings.ToLower(n.Data)] {
				return
			}
			for _, attr := range n.Attr {
				if attr.Key == "data-no-translate" {
					return
				}
			}
		}

		if n.Type == html.TextNode {
			trimmed := strings.TrimSpace(n.Data)
			if trimmed != "" {
				fragments = append(fragments, linguahub.Fragment{
					Index: len(fragments),
					Text:  trimmed,
				})
				leaves = append(leaves, n)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	doc.Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			walk(n)
		}
	})

	parsed := &parsedHTML{
		doc:          doc,
		leaves:       leaves,
		fullDocument: strings.Contains(strings.ToLower(content), "<html"),
	}
	return parsed, fragments, nil
}

// Apply writes replacements back into the document by leaf index and
// renders it. The replacement count must match the extracted fragments.
func (p *HTMLProcessor) Apply(parsed interface{}, replacements []string) (string, error) {
	ph, ok := parsed.(*parsedHTML)
	if !ok {
		return "", &linguahub.ProcessorError{
			Message:     "invalid parsed content type",
			ContentType: "html",
		}
	}

	if len(replacements) != len(ph.leaves) {
		return "", &linguahub.ProcessorError{
			Message:     "replacement count does not match extracted fragments",
			ContentType: "html",
		}
	}

	for i, n := range ph.leaves {
		n.Data = preserveWhitespace(n.Data, replacements[i])
	}

	return p.render(ph)
}

// ContentType returns "html".
func (p *HTMLProcessor) ContentType() string {
	return "html"
}

// render serializes the document. Fragment input (forum posts) renders the
// body inner HTML so the parser's implicit html/body wrapper does not leak
// into the output.
func (p *HTMLProcessor) render(ph *parsedHTML) (string, error) {
	if ph.fullDocument {
		out, err := ph.doc.Html()
		if err != nil {
			return "", &linguahub.ProcessorError{
				Message:     "failed to serialize HTML",
				Cause:       err,
				ContentType: "html",
			}
		}
		return out, nil
	}

	out, err := ph.doc.Find("body").Html()
	if err != nil {
		return "", &linguahub.ProcessorError{
			Message:     "failed to serialize HTML",
			Cause:       err,
			ContentType: "html",
		}
	}
	return out, nil
}

// preserveWhitespace preserves the original leading/trailing whitespace.
func preserveWhitespace(original, translated string) string {
	leadingLen := len(original) - len(strings.TrimLeft(original, " \t\n\r"))
	leading := original[:leadingLen]

	trailingLen := len(original) - len(strings.TrimRight(original, " \t\n\r"))
	trailing := ""
	if trailingLen > 0 {
		trailing = original[len(original)-trailingLen:]
	}

	return leading + translated + trailing
}

// Verify HTMLProcessor implements ContentProcessor
var _ ContentProcessor = (*HTMLProcessor)(nil)
