package utils

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TextNormalizer wraps transform.Transformer to provide convenient string normalization methods.
// It is safe for concurrent use.
type TextNormalizer struct {
	mu          sync.Mutex
	transformer transform.Transformer
}

// NewTextNormalizer creates a new TextNormalizer instance.
func NewTextNormalizer() *TextNormalizer {
	return &TextNormalizer{
		transformer: transform.Chain(
			norm.NFKD,                          // Decompose with compatibility decomposition
			runes.Remove(runes.In(unicode.Mn)), // Remove non-spacing marks
			runes.Map(unicode.ToLower),         // Convert to lowercase before normalization
			norm.NFKC,                          // Normalize with compatibility composition
		),
	}
}

// Normalize cleans up text using the normalizer.
// Returns empty string if normalization fails or input is empty.
func (n *TextNormalizer) Normalize(s string) string {
	s = CompressWhitespacePreserveNewlines(s)
	if s == "" {
		return ""
	}

	n.mu.Lock()
	result, _, err := transform.String(n.transformer, s)
	n.mu.Unlock()
	if err != nil {
		return ""
	}

	return result
}

// TagName converts a free-form label into a tag name: normalized, lowercased,
// with whitespace runs collapsed to a single dash.
func (n *TextNormalizer) TagName(s string) string {
	normalized := n.Normalize(CompressAllWhitespace(s))
	if normalized == "" {
		return ""
	}
	return strings.Join(strings.Fields(normalized), "-")
}

// similarityMinLength is the normalized length below which texts must match exactly to be similar.
const similarityMinLength = 16

// Similar reports whether one text contains the other after normalization.
// Short texts are only similar when identical. Empty texts are never similar.
func (n *TextNormalizer) Similar(a, b string) bool {
	na := n.Normalize(a)
	nb := n.Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	if min(len(na), len(nb)) < similarityMinLength {
		return na == nb
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}
