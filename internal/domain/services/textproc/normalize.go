// Package textproc holds the text primitives behind campaign matching:
// normalization, indicator extraction, n-gram similarity, and the content
// sketch used for report deduplication.
package textproc

import (
	"regexp"
	"strings"
)

// urlToken replaces URL-like substrings during normalization so wording
// similarity is not skewed by per-victim link variations.
const urlToken = "urltoken"

var (
	urlLikeRe    = regexp.MustCompile(`(?i)\bhttps?://\S+|\bwww\.\S+`)
	nonWordRe    = regexp.MustCompile(`[^a-z0-9]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize lowercases text, collapses URL-like substrings to a placeholder
// token, replaces non-word characters with spaces, and collapses runs of
// whitespace. It must be applied identically to both sides of any n-gram
// comparison. Idempotent; empty input yields empty output.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	s := strings.ToLower(text)
	s = urlLikeRe.ReplaceAllString(s, " "+urlToken+" ")
	s = nonWordRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Tokenize splits normalized text into words
func Tokenize(normalized string) []string {
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}
