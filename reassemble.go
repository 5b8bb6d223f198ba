package linguahub

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Reassemble turns ordered per-batch results back into one replacement
// string per original fragment.
//
// Batches that came back as unsupported-language or API-failure results are
// substituted with their original untranslated text, so a single bad batch
// degrades to untranslated content instead of failing the document. The
// concatenated output is then split back into per-fragment strings; if the
// vendor merged, dropped, or split wrapped blocks the count check fails and
// a ReassemblyError is returned with no replacements at all.
func Reassemble(results []Result, batches []string, fragmentCount int) ([]string, error) {
	if len(results) != len(batches) {
		return nil, &ReassemblyError{Expected: len(batches), Got: len(results)}
	}

	var joined strings.Builder
	for i, res := range results {
		if res.Kind == ResultOK {
			joined.WriteString(res.Text)
		} else {
			// Fallback to the original batch text.
			joined.WriteString(batches[i])
		}
	}

	return splitWrapped(joined.String(), fragmentCount)
}

// splitWrapped recovers per-fragment strings from concatenated batch output.
//
// Each line is unwrapped by stripping the leading opening tag and the
// closing tag matched from the END of the line — vendors occasionally move
// sentence punctuation after the tag, so "Hola </p>." must still unwrap.
// Newline placeholders are restored, the line is rewrapped canonically, and
// the whole thing is reparsed so entity escapes the vendor introduced decode
// back to text.
func splitWrapped(joined string, want int) ([]string, error) {
	var rewrapped strings.Builder

	for _, line := range strings.Split(joined, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		content := line
		if i := strings.Index(content, "<p>"); i >= 0 {
			content = content[i+len("<p>"):]
		}
		if i := strings.LastIndex(content, "</p>"); i >= 0 {
			content = content[:i]
		}
		content = strings.ReplaceAll(content, newlinePlaceholder, "\n")
		rewrapped.WriteString("<p>")
		rewrapped.WriteString(content)
		rewrapped.WriteString(" </p>\n")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rewrapped.String()))
	if err != nil {
		return nil, &ProcessorError{
			Message:     "failed to reparse translated batches",
			Cause:       err,
			ContentType: "html",
		}
	}

	var out []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})

	if len(out) != want {
		return nil, &ReassemblyError{Expected: want, Got: len(out)}
	}

	return out, nil
}
