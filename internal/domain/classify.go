// Package domain – boundary classification shims.
//
// The extraction capability signals validation and risk outcomes as free
// text ("Fixed by Engineering Validator (Missing Tax)", "Risk Level: High").
// Internally everything operates on the enumerated DocumentStatus and
// RiskLevel types; these shims perform the historical case-insensitive
// substring matching exactly once, at the boundary.
package domain

import "strings"

// ClassifyValidationLog derives the ingestion status of an invoice from the
// validator's free-text log. A log containing "Fixed" wins over one
// containing a review marker; anything else (including an empty log) is a
// clean success.
func ClassifyValidationLog(log string) DocumentStatus {
	l := strings.ToLower(log)
	switch {
	case strings.Contains(l, "fixed"):
		return StatusFixed
	case strings.Contains(l, "flagged"), strings.Contains(l, "review"):
		return StatusReviewNeeded
	default:
		return StatusSuccess
	}
}

// ClassifyRiskLevel maps free-text contract risk into the three-bucket
// enumeration. Matching is by lower-cased substring, so "High Risk",
// "HIGH", and "Likely high exposure" all classify as RiskHigh. Text naming
// none of the buckets yields RiskUnknown, which is deliberately invisible
// in the risk distribution.
func ClassifyRiskLevel(s string) RiskLevel {
	l := strings.ToLower(s)
	switch {
	case strings.Contains(l, "high"):
		return RiskHigh
	case strings.Contains(l, "medium"):
		return RiskMedium
	case strings.Contains(l, "low"):
		return RiskLow
	default:
		return RiskUnknown
	}
}
