package financial

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// SafeFloat converts a matched figure to a float.
//
// Thousands separators are stripped first. The remainder must be ASCII
// digits with at most one decimal point and at least one digit; anything
// else (a sign, an exponent, an empty string) reports ok=false instead of
// an error. So does a figure too large to fit a float64.
//
// Example:
//
//	SafeFloat("1,234")  // 1234, true
//	SafeFloat("-5")     // 0, false
func SafeFloat(raw string) (value float64, ok bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	if !isPlainDecimal(cleaned) {
		return 0, false
	}
	if strings.HasPrefix(cleaned, ".") {
		cleaned = "0" + cleaned
	}
	if strings.HasSuffix(cleaned, ".") {
		cleaned += "0"
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, false
	}
	value, _ = d.Float64()
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, false
	}
	return value, true
}

func isPlainDecimal(s string) bool {
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
