// Package analytics derives dashboard figures from a user's document
// records: summary statistics, a monthly spend series, a contract risk
// distribution, and a categorical risk filter.
//
// Every function here is a pure function of its input slice. Malformed or
// missing fields degrade to zero/absent values instead of producing errors,
// and record order never changes any numeric result. The single
// order-sensitive output is the monthly series' label order, which follows
// first occurrence during iteration rather than the calendar: records
// inserted out of chronological order produce an insertion-ordered axis.
package analytics

import (
	"time"

	"github.com/documind/go-documind-backend/internal/domain"
)

// Filter modes accepted by FilterByRisk.
const (
	FilterAll      = "all"
	FilterHighRisk = "high_risk"
)

// Stats is the dashboard summary computed over one user's records.
type Stats struct {
	// TotalSpend sums total_amount across invoices; missing amounts count
	// as zero. Contract amounts are ignored.
	TotalSpend float64 `json:"total_spend"`
	// DocCount is the full record count, regardless of type.
	DocCount int `json:"doc_count"`
	// ContractCount is the number of contract records.
	ContractCount int `json:"contract_count"`
	// HighRiskCount is the number of contracts classifying as high risk.
	HighRiskCount int `json:"high_risk_count"`

	// Medium/low tallies feed the risk distribution. Contracts whose risk
	// text names none of the three levels appear in none of these buckets.
	mediumRiskCount int
	lowRiskCount    int
}

// MonthlyPoint is one bar of the monthly spend series.
type MonthlyPoint struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// RiskSlice is one slice of the risk distribution.
type RiskSlice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// ComputeStats tallies the summary statistics for records. The result is
// independent of record order.
func ComputeStats(records []domain.Document) Stats {
	var s Stats
	s.DocCount = len(records)
	for i := range records {
		d := &records[i]
		switch {
		case d.IsInvoice():
			s.TotalSpend += d.TotalAmount
		case d.IsContract():
			s.ContractCount++
			switch d.Risk() {
			case domain.RiskHigh:
				s.HighRiskCount++
			case domain.RiskMedium:
				s.mediumRiskCount++
			case domain.RiskLow:
				s.lowRiskCount++
			}
		}
	}
	return s
}

// ComputeMonthlySeries groups invoice spend by the calendar month of each
// record's creation time (not any invoice-stated date), summing
// total_amount per month. One point is emitted per distinct month label, in
// order of first occurrence.
func ComputeMonthlySeries(records []domain.Document) []MonthlyPoint {
	sums := make(map[string]float64)
	order := make([]string, 0, 12)
	for i := range records {
		d := &records[i]
		if !d.IsInvoice() {
			continue
		}
		label := monthLabel(d.CreatedAt)
		if _, seen := sums[label]; !seen {
			order = append(order, label)
		}
		sums[label] += d.TotalAmount
	}
	out := make([]MonthlyPoint, 0, len(order))
	for _, label := range order {
		out = append(out, MonthlyPoint{Label: label, Amount: sums[label]})
	}
	return out
}

// ComputeRiskSeries builds the contract risk distribution from s. Labels
// appear in the fixed order Low, Medium, High, and zero-valued slices are
// dropped entirely: with no classifiable contracts the result is empty, so
// downstream renders "no data" instead of a zero-filled chart.
func ComputeRiskSeries(s Stats) []RiskSlice {
	all := []RiskSlice{
		{Label: "Low Risk", Value: s.lowRiskCount},
		{Label: "Medium Risk", Value: s.mediumRiskCount},
		{Label: "High Risk", Value: s.HighRiskCount},
	}
	out := make([]RiskSlice, 0, len(all))
	for _, sl := range all {
		if sl.Value > 0 {
			out = append(out, sl)
		}
	}
	return out
}

// FilterByRisk returns the records matching mode. Mode "all" returns the
// input unchanged; "high_risk" keeps records whose risk text classifies as
// high. The filter deliberately does not gate on document type: any record
// whose payload happens to carry high-risk text matches, preserving the
// historical type-agnostic behavior. Unknown modes behave like "all".
func FilterByRisk(records []domain.Document, mode string) []domain.Document {
	if mode != FilterHighRisk {
		return records
	}
	out := make([]domain.Document, 0, len(records))
	for i := range records {
		if records[i].Risk() == domain.RiskHigh {
			out = append(out, records[i])
		}
	}
	return out
}

// monthLabel renders t as a three-letter month abbreviation ("Jan").
func monthLabel(t time.Time) string { return t.Format("Jan") }
