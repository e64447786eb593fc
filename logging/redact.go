package logging

import (
	"regexp"
	"strings"
)

// RedactedPlaceholder replaces sensitive values in log output.
const RedactedPlaceholder = "[REDACTED]"

// secretPatterns match credentials that may leak into error strings, such as
// a request URL carrying ?key=... from the Gemini REST client.
var secretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(sk-[a-zA-Z0-9_-]{20,})`),          // OpenAI
	regexp.MustCompile(`(AIza[a-zA-Z0-9_-]{35})`),          // Google
	regexp.MustCompile(`(?i)(bearer\s+[a-zA-Z0-9._-]{20,})`), // Authorization headers
	regexp.MustCompile(`(?i)([?&]key=[^&\s"']+)`),          // query-string keys
	regexp.MustCompile(`(?i)(api_?key\s*[:=]\s*[^\s,;]{8,})`),
	regexp.MustCompile(`(?i)(token\s*[:=]\s*[^\s,;]{8,})`),
}

// sensitiveKeyParts mark a field name as holding a secret.
var sensitiveKeyParts = []string{
	"API_KEY",
	"APIKEY",
	"SECRET",
	"TOKEN",
	"PASSWORD",
}

// RedactSensitiveData replaces every detected credential in value.
//
// Example:
//
//	RedactSensitiveData("calling with key sk-abcdefghijklmnopqrstu")
//	// "calling with key [REDACTED]"
func RedactSensitiveData(value string) string {
	if value == "" {
		return value
	}
	for _, p := range secretPatterns {
		value = p.ReplaceAllString(value, RedactedPlaceholder)
	}
	return value
}

// IsSensitiveField reports whether a field name such as "gemini_api_key"
// indicates a secret. Matching is case-insensitive.
func IsSensitiveField(name string) bool {
	upper := strings.ToUpper(name)
	for _, part := range sensitiveKeyParts {
		if strings.Contains(upper, part) {
			return true
		}
	}
	return false
}

// ContainsSensitiveData reports whether any credential pattern matches value.
func ContainsSensitiveData(value string) bool {
	for _, p := range secretPatterns {
		if p.MatchString(value) {
			return true
		}
	}
	return false
}
