package textproc

import (
	"regexp"
	"strings"

	"scamtrace/internal/domain/models"
	"scamtrace/pkg/logger"
)

// Extracted holds the deduplicated indicator sets pulled from free text
type Extracted struct {
	Phones  []string `json:"phones,omitempty"`
	Emails  []string `json:"emails,omitempty"`
	URLs    []string `json:"urls,omitempty"`
	Wallets []string `json:"wallets,omitempty"`
}

// IsEmpty reports whether extraction produced nothing
func (e *Extracted) IsEmpty() bool {
	return len(e.Phones) == 0 && len(e.Emails) == 0 && len(e.URLs) == 0 && len(e.Wallets) == 0
}

// All returns every extracted value with its indicator type, in a stable
// order: phones, emails, URLs, wallets.
func (e *Extracted) All() []TypedValue {
	out := make([]TypedValue, 0, len(e.Phones)+len(e.Emails)+len(e.URLs)+len(e.Wallets))
	for _, v := range e.Phones {
		out = append(out, TypedValue{Type: models.IndicatorTypePhone, Value: v})
	}
	for _, v := range e.Emails {
		out = append(out, TypedValue{Type: models.IndicatorTypeEmail, Value: v})
	}
	for _, v := range e.URLs {
		out = append(out, TypedValue{Type: models.IndicatorTypeURL, Value: v})
	}
	for _, v := range e.Wallets {
		out = append(out, TypedValue{Type: models.IndicatorTypeCryptoWallet, Value: v})
	}
	return out
}

// TypedValue pairs an extracted value with its inferred type
type TypedValue struct {
	Type  models.IndicatorType `json:"type"`
	Value string               `json:"value"`
}

// Extraction patterns. Shape-only checks: nothing here validates that an
// artifact exists in the real world.
var extractionPatterns = map[string]string{
	"phone":   `(?:\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`,
	"email":   `[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`,
	"url":     `(?i)\bhttps?://[^\s<>"']+`,
	"btc":     `\b[13][a-km-zA-HJ-NP-Z1-9]{25,34}\b`,
	"bech32":  `\bbc1[a-z0-9]{25,62}\b`,
	"eth":     `\b0x[a-fA-F0-9]{40}\b`,
}

// compiled holds the patterns that compiled successfully. A pattern that
// fails to compile contributes nothing; it must not take down extraction
// for the remaining rules.
var compiled = compilePatterns(extractionPatterns)

func compilePatterns(patterns map[string]string) map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(patterns))
	for name, expr := range patterns {
		re, err := regexp.Compile(expr)
		if err != nil {
			logger.Warn().Str("pattern", name).Err(err).Msg("skipping invalid extraction pattern")
			continue
		}
		out[name] = re
	}
	return out
}

// ExtractIndicators pulls phone numbers, email addresses, URLs, and crypto
// wallet addresses out of free text. Each set is deduplicated and
// canonicalized: phones to bare national digits, emails and URLs lowercased
// with trailing punctuation stripped from URLs.
func ExtractIndicators(text string) *Extracted {
	out := &Extracted{}
	if text == "" {
		return out
	}

	out.Phones = matchAll(text, "phone", NormalizePhone)
	out.Emails = matchAll(text, "email", strings.ToLower)
	out.URLs = matchAll(text, "url", NormalizeURL)

	seen := make(map[string]struct{})
	for _, name := range []string{"btc", "bech32", "eth"} {
		for _, w := range matchAll(text, name, normalizeWallet) {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			out.Wallets = append(out.Wallets, w)
		}
	}

	return out
}

// matchAll applies a named pattern and canonicalizes + dedups the matches
func matchAll(text, pattern string, canon func(string) string) []string {
	re, ok := compiled[pattern]
	if !ok {
		return nil
	}
	var out []string
	seen := make(map[string]struct{})
	for _, m := range re.FindAllString(text, -1) {
		v := canon(m)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// NormalizePhone strips formatting and the North American country code:
// "+1 (647) 555-1234", "16475551234" and "647-555-1234" all canonicalize
// to "6475551234".
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	return digits
}

// NormalizeURL lowercases a URL and strips trailing punctuation that
// sentence context tends to glue onto it.
func NormalizeURL(raw string) string {
	return strings.ToLower(strings.TrimRight(raw, ".,;:!?)]}'\""))
}

// Ethereum addresses are case-insensitive hex; Base58 is case-sensitive.
func normalizeWallet(raw string) string {
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		return strings.ToLower(raw)
	}
	return raw
}
