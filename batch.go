package linguahub

import "strings"

// DefaultBatchLimit is the maximum serialized byte length of one batch.
const DefaultBatchLimit = 2000

// newlinePlaceholder stands in for literal newlines inside a wrapped
// fragment so that one fragment always occupies one line of the batch.
const newlinePlaceholder = "<br>"

// WrapFragment serializes a fragment for transport. The trailing space
// before the closing tag keeps the vendor from gluing sentence-final
// punctuation onto the tag.
func WrapFragment(text string) string {
	return "<p>" + strings.ReplaceAll(text, "\n", newlinePlaceholder) + " </p>\n"
}

// BuildBatches greedily packs wrapped fragments into batch strings whose
// serialized byte length stays within limit. Fragment order is preserved
// across and within batches and no batch is ever empty.
//
// A single fragment whose wrapped form alone exceeds the limit is emitted
// as its own oversized batch. It is never dropped and never split
// mid-fragment; the vendor may reject it, which surfaces as a per-batch
// failure and falls back to the original text.
func BuildBatches(fragments []Fragment, limit int) []string {
	if len(fragments) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultBatchLimit
	}

	var batches []string
	var current strings.Builder

	for _, f := range fragments {
		wrapped := WrapFragment(f.Text)
		if current.Len() > 0 && current.Len()+len(wrapped) > limit {
			batches = append(batches, current.String())
			current.Reset()
		}
		current.WriteString(wrapped)
	}

	if current.Len() > 0 {
		batches = append(batches, current.String())
	}

	return batches
}
