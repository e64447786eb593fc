package financial

// Row is the flat, one-line form of Fields used for CSV export. Absent
// figures are empty strings.
type Row struct {
	Document      string `csv:"document"`
	RevenueGrowth string `csv:"revenue_growth_pct"`
	NetProfit     string `csv:"net_profit_million"`
	Debt          string `csv:"debt_million"`
	CashFlow      string `csv:"cash_flow_million"`
}

// NewRow flattens fields for document.
func NewRow(document string, f Fields) Row {
	return Row{
		Document:      document,
		RevenueGrowth: rowValue(f.RevenueGrowth),
		NetProfit:     rowValue(f.NetProfit),
		Debt:          rowValue(f.Debt),
		CashFlow:      rowValue(f.CashFlow),
	}
}

func rowValue(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatValue(v)
}
