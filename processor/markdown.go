package processor

import (
	"sort"
	"strings"

	"github.com/forumkit/linguahub"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// MarkdownProcessor extracts and applies translations to raw markdown, for
// content that has not been rendered to HTML yet. Block-level text spans
// are located through the goldmark AST and replaced by byte-range splice,
// which leaves markup, code blocks, and raw HTML untouched.
type MarkdownProcessor struct{}

// NewMarkdownProcessor creates a new markdown processor.
func NewMarkdownProcessor() *MarkdownProcessor {
	return &MarkdownProcessor{}
}

// span is a byte range of translatable text in the source.
type span struct {
	start int
	stop  int
}

// parsedMarkdown holds the source bytes and the extracted spans, in
// document order, index-aligned with the returned fragments.
type parsedMarkdown struct {
	source []byte
	spans  []span
}

// Extract parses markdown and extracts block-level text spans.
func (p *MarkdownProcessor) Extract(content string) (interface{}, []linguahub.Fragment, error) {
	source := []byte(content)
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)
	doc := md.Parser().Parse(text.NewReader(source))

	var spans []span
	skipDepth := 0
	var lastBlock ast.Node

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n.(type) {
		case *ast.CodeBlock, *ast.FencedCodeBlock, *ast.CodeSpan, *ast.HTMLBlock, *ast.RawHTML:
			if entering {
				skipDepth++
			} else {
				skipDepth--
			}
			return ast.WalkContinue, nil
		}

		if !entering || skipDepth > 0 {
			return ast.WalkContinue, nil
		}

		textNode, ok := n.(*ast.Text)
		if !ok {
			return ast.WalkContinue, nil
		}
		block := blockParent(textNode)
		if block == nil {
			return ast.WalkContinue, nil
		}
		if strings.TrimSpace(string(textNode.Segment.Value(source))) == "" {
			return ast.WalkContinue, nil
		}

		start := textNode.Segment.Start
		stop := textNode.Segment.Stop

		// Merge with the previous span when the only gap is whitespace
		// inside the same block, so soft line breaks stay in one fragment.
		if len(spans) > 0 && lastBlock == block {
			last := &spans[len(spans)-1]
			if strings.TrimSpace(string(source[last.stop:start])) == "" {
				last.stop = stop
				return ast.WalkContinue, nil
			}
		}

		spans = append(spans, span{start: start, stop: stop})
		lastBlock = block
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, nil, &linguahub.ProcessorError{
			Message:     "failed to parse markdown",
			Cause:       err,
			ContentType: "markdown",
		}
	}

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].start < spans[j].start
	})

	fragments := make([]linguahub.Fragment, 0, len(spans))
	kept := make([]span, 0, len(spans))
	for _, s := range spans {
		trimmed := strings.TrimSpace(string(source[s.start:s.stop]))
		if trimmed == "" {
			continue
		}
		fragments = append(fragments, linguahub.Fragment{
			Index: len(fragments),
			Text:  trimmed,
		})
		kept = append(kept, s)
	}

	return &parsedMarkdown{source: source, spans: kept}, fragments, nil
}

// Apply splices replacements into the source by span, preserving the
// whitespace that surrounded each original span.
func (p *MarkdownProcessor) Apply(parsed interface{}, replacements []string) (string, error) {
	pm, ok := parsed.(*parsedMarkdown)
	if !ok {
		return "", &linguahub.ProcessorError{
			Message:     "invalid parsed content type",
			ContentType: "markdown",
		}
	}

	if len(replacements) != len(pm.spans) {
		return "", &linguahub.ProcessorError{
			Message:     "replacement count does not match extracted fragments",
			ContentType: "markdown",
		}
	}

	var out strings.Builder
	last := 0
	for i, s := range pm.spans {
		out.Write(pm.source[last:s.start])
		out.WriteString(preserveWhitespace(string(pm.source[s.start:s.stop]), replacements[i]))
		last = s.stop
	}
	out.Write(pm.source[last:])

	return out.String(), nil
}

// ContentType returns "markdown".
func (p *MarkdownProcessor) ContentType() string {
	return "markdown"
}

// blockParent returns the nearest translatable block ancestor, or nil.
func blockParent(n ast.Node) ast.Node {
	for node := n.Parent(); node != nil; node = node.Parent() {
		switch node.(type) {
		case *ast.Paragraph, *ast.Heading, *ast.ListItem, *ast.Blockquote:
			return node
		}
	}
	return nil
}

// Verify MarkdownProcessor implements ContentProcessor
var _ ContentProcessor = (*MarkdownProcessor)(nil)
