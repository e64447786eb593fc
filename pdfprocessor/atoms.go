// Package pdfprocessor turns a financial PDF into a saved summary, extracted
// figures and a chart.
//
// The package is organised the same way throughout: small pure helpers in
// atoms.go, the Extractor and Summarizer steps, and the Processor that
// runs them in order.
package pdfprocessor

import (
	"unicode/utf8"
)

// EstimateTokenCount approximates tokens at four bytes per token.
//
// Example:
//
//	EstimateTokenCount("Hello, world!") // 3
func EstimateTokenCount(text string) int {
	return len(text) / 4
}

// TruncateRunes returns the first maxRunes characters of text. The cut may
// land mid-word or mid-sentence. The second result reports whether anything
// was dropped.
//
// Example:
//
//	TruncateRunes("Résumé", 3) // "Rés", true
func TruncateRunes(text string, maxRunes int) (string, bool) {
	if maxRunes <= 0 {
		return "", text != ""
	}
	if utf8.RuneCountInString(text) <= maxRunes {
		return text, false
	}
	n := 0
	for i := range text {
		if n == maxRunes {
			return text[:i], true
		}
		n++
	}
	return text, false
}

// Preview returns at most maxRunes characters of text followed by "..." when
// it was cut.
func Preview(text string, maxRunes int) string {
	cut, truncated := TruncateRunes(text, maxRunes)
	if truncated {
		return cut + "..."
	}
	return cut
}
