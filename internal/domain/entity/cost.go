package entity

import "github.com/shopspring/decimal"

// TotalUsageType labels the synthetic summary row appended to the cost
// sheet.
const TotalUsageType = "ALL"

// CostRecord is one usage-type cost line for a billing period.
type CostRecord struct {
	Period    string          `json:"period"`
	UsageType string          `json:"usage_type"`
	Amount    decimal.Decimal `json:"amount"`
}

// WithTotalRow returns the records followed by a final TotalUsageType
// row summing all amounts. An empty input stays empty: no records means
// no cost sheet at all.
func WithTotalRow(records []CostRecord) []CostRecord {
	if len(records) == 0 {
		return records
	}
	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(rec.Amount)
	}
	out := make([]CostRecord, len(records), len(records)+1)
	copy(out, records)
	return append(out, CostRecord{
		Period:    records[0].Period,
		UsageType: TotalUsageType,
		Amount:    total,
	})
}
