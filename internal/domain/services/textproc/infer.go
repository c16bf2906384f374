package textproc

import (
	"regexp"
	"strings"

	"scamtrace/internal/domain/models"
)

// Shape tests for bare-indicator queries. Checked in priority order because
// the shapes overlap: a domain can look like part of an email without the
// "@", and a wallet is just alphanumerics.
var (
	emailShapeRe  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	btcShapeRe    = regexp.MustCompile(`^[13][a-km-zA-HJ-NP-Z1-9]{25,34}$`)
	bech32ShapeRe = regexp.MustCompile(`^bc1[a-z0-9]{25,62}$`)
	ethShapeRe    = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	ledgerShapeRe = regexp.MustCompile(`^r[0-9a-zA-Z]{24,34}$`)
	phoneShapeRe  = regexp.MustCompile(`^\+?[\d\s().\-]{7,20}$`)
	domainShapeRe = regexp.MustCompile(`^[a-z0-9\-]+(\.[a-z0-9\-]+)*\.[a-z]{2,}$`)
)

// InferIndicatorType guesses what kind of indicator a bare query string is.
// Priority: email, URL, crypto wallet, phone, domain, then unknown.
func InferIndicatorType(query string) models.IndicatorType {
	q := strings.TrimSpace(query)
	if q == "" {
		return models.IndicatorTypeUnknown
	}

	switch {
	case emailShapeRe.MatchString(q):
		return models.IndicatorTypeEmail
	case strings.Contains(q, "://"):
		return models.IndicatorTypeURL
	case btcShapeRe.MatchString(q), bech32ShapeRe.MatchString(q),
		ethShapeRe.MatchString(q), ledgerShapeRe.MatchString(q):
		return models.IndicatorTypeCryptoWallet
	case isPhoneShape(q):
		return models.IndicatorTypePhone
	case domainShapeRe.MatchString(strings.ToLower(q)):
		return models.IndicatorTypeDomain
	default:
		return models.IndicatorTypeUnknown
	}
}

// isPhoneShape accepts 7-15 digits with optional separators
func isPhoneShape(q string) bool {
	if !phoneShapeRe.MatchString(q) {
		return false
	}
	digits := 0
	for _, r := range q {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7 && digits <= 15
}

// NormalizeIndicator canonicalizes a query value for index search according
// to its type. Unknown values are just lowercased and trimmed so they can
// still be searched.
func NormalizeIndicator(typ models.IndicatorType, value string) string {
	v := strings.TrimSpace(value)
	switch typ {
	case models.IndicatorTypePhone:
		return NormalizePhone(v)
	case models.IndicatorTypeURL:
		return NormalizeURL(v)
	case models.IndicatorTypeCryptoWallet:
		return normalizeWallet(v)
	default:
		return strings.ToLower(v)
	}
}
