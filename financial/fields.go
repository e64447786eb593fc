// Package financial pulls a fixed set of numeric figures out of a generated
// report summary.
package financial

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Display labels, in chart order.
const (
	LabelRevenueGrowth = "Revenue Growth (%)"
	LabelNetProfit     = "Net Profit (Million)"
	LabelDebt          = "Debt (Million)"
	LabelCashFlow      = "Cash Flow (Million)"
)

// NotAvailable is printed in place of an absent value.
const NotAvailable = "n/a"

// Fields holds the four figures. A nil pointer means no match was found.
type Fields struct {
	RevenueGrowth *float64 // percent
	NetProfit     *float64 // millions
	Debt          *float64 // millions
	CashFlow      *float64 // millions
}

// Entry is one labelled figure.
type Entry struct {
	Label string
	Value *float64
}

// Present reports whether the entry holds a value.
func (e Entry) Present() bool {
	return e.Value != nil
}

// Entries returns the figures in the fixed order revenue growth, net profit,
// debt, cash flow.
func (f Fields) Entries() []Entry {
	return []Entry{
		{Label: LabelRevenueGrowth, Value: f.RevenueGrowth},
		{Label: LabelNetProfit, Value: f.NetProfit},
		{Label: LabelDebt, Value: f.Debt},
		{Label: LabelCashFlow, Value: f.CashFlow},
	}
}

// Present returns the number of figures that were found.
func (f Fields) Present() int {
	n := 0
	for _, e := range f.Entries() {
		if e.Present() {
			n++
		}
	}
	return n
}

// HasAny reports whether at least one figure was found. A chart is drawn
// only when this is true.
func (f Fields) HasAny() bool {
	return f.Present() > 0
}

// String renders the figures as "Label: value" pairs joined by ", ".
func (f Fields) String() string {
	parts := make([]string, 0, 4)
	for _, e := range f.Entries() {
		parts = append(parts, e.Label+": "+FormatValue(e.Value))
	}
	return strings.Join(parts, ", ")
}

// FormatValue prints a value without float noise, e.g. 1250 rather than
// 1250.000000, or NotAvailable for nil.
func FormatValue(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return decimal.NewFromFloat(*v).String()
}

// Float returns a pointer to v. Handy for building Fields literals.
func Float(v float64) *float64 {
	return &v
}
