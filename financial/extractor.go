package financial

import (
	"regexp"
)

// FieldExtractor turns summary text into Fields. Implementations must not
// fail: a figure that cannot be found is simply left nil.
type FieldExtractor interface {
	Extract(summary string) Fields
}

// Label-anchored patterns. Each captures the first numeric-looking run after
// its label on the same line.
//
// The comma-and-digit patterns are loose: with no figure next to the label
// they capture whatever digits come next, such as a year, and a lone comma
// is captured too (SafeFloat then rejects it).
var (
	revenueGrowthPattern = regexp.MustCompile(`(?i)Revenue growth.*?([\d.]+)%`)
	netProfitPattern     = regexp.MustCompile(`(?i)Net Profit.*?([\d,]+)`)
	debtPattern          = regexp.MustCompile(`(?i)Debt.*?([\d,]+)`)
	cashFlowPattern      = regexp.MustCompile(`(?i)Cash flow.*?([\d,]+)`)
)

// PatternExtractor is the default FieldExtractor. Only the first match of
// each pattern is used.
type PatternExtractor struct{}

// NewPatternExtractor returns the default extractor.
func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

// Extract applies the four patterns to summary.
func (PatternExtractor) Extract(summary string) Fields {
	return Fields{
		RevenueGrowth: firstFigure(revenueGrowthPattern, summary),
		NetProfit:     firstFigure(netProfitPattern, summary),
		Debt:          firstFigure(debtPattern, summary),
		CashFlow:      firstFigure(cashFlowPattern, summary),
	}
}

func firstFigure(re *regexp.Regexp, text string) *float64 {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, ok := SafeFloat(m[1])
	if !ok {
		return nil
	}
	return &v
}
