package errors

import (
	"math"
	"net/url"
	"strings"
	"unicode"
)

// Limits applied at the input boundary.
const (
	maxURLLength  = 2048
	maxWordLength = 256
)

// ValidateURL validates an article URL before it is sent to the analysis
// service. It requires an http or https scheme and a host.
func ValidateURL(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return New(ErrCodeInvalidURL, "URL cannot be empty")
	}
	if len(rawURL) > maxURLLength {
		return New(ErrCodeInvalidURL, "URL too long (max %d characters)", maxURLLength)
	}
	for _, r := range rawURL {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidURL, "URL contains control characters")
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidURL, err, "malformed URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidURL, "URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidURL, "URL must include a host")
	}
	return nil
}

// ValidateWord validates one weighted word at index i of an input sequence.
//
// Words must be non-empty, free of control characters and at most 256 bytes.
// Weights must be finite. Negative weights are accepted here; the layout
// engine clamps them to zero.
func ValidateWord(i int, word string, weight float64) error {
	if strings.TrimSpace(word) == "" {
		return New(ErrCodeInvalidWords, "word %d is empty", i)
	}
	if len(word) > maxWordLength {
		return New(ErrCodeInvalidWords, "word %d too long (max %d characters)", i, maxWordLength)
	}
	for _, r := range word {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidWords, "word %d contains control characters", i)
		}
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return New(ErrCodeInvalidWords, "word %d (%q) has non-finite weight", i, word)
	}
	return nil
}
