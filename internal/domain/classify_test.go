package domain

import "testing"

func TestClassifyValidationLog(t *testing.T) {
	cases := []struct {
		log  string
		want DocumentStatus
	}{
		{"", StatusSuccess},
		{"all good", StatusSuccess},
		{"Fixed by Engineering Validator (Missing Tax)", StatusFixed},
		{"Fixed: Missing Tax Auto-Calculated", StatusFixed},
		{"fixed", StatusFixed},
		{"Manual Review Needed", StatusReviewNeeded},
		{"Flagged for manual check", StatusReviewNeeded},
		// "Fixed" wins even when a review marker is also present.
		{"Fixed after review", StatusFixed},
	}
	for _, c := range cases {
		if got := ClassifyValidationLog(c.log); got != c.want {
			t.Errorf("ClassifyValidationLog(%q) = %q, want %q", c.log, got, c.want)
		}
	}
}

func TestClassifyRiskLevel(t *testing.T) {
	cases := []struct {
		in   string
		want RiskLevel
	}{
		{"High", RiskHigh},
		{"HIGH", RiskHigh},
		{"Likely high exposure", RiskHigh},
		{"Medium", RiskMedium},
		{"Low", RiskLow},
		{"low-ish", RiskLow},
		{"Unknown", RiskUnknown},
		{"", RiskUnknown},
		{"severe", RiskUnknown},
	}
	for _, c := range cases {
		if got := ClassifyRiskLevel(c.in); got != c.want {
			t.Errorf("ClassifyRiskLevel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDocumentHelpers(t *testing.T) {
	inv := &Document{Extracted: ExtractionResult{DocumentType: TypeInvoice}}
	if !inv.IsInvoice() || inv.IsContract() {
		t.Fatalf("invoice helpers wrong: IsInvoice=%v IsContract=%v", inv.IsInvoice(), inv.IsContract())
	}
	con := &Document{Extracted: ExtractionResult{DocumentType: TypeContract, OverallRiskLevel: "High"}}
	if !con.IsContract() || con.Risk() != RiskHigh {
		t.Fatalf("contract helpers wrong: IsContract=%v Risk=%v", con.IsContract(), con.Risk())
	}
	if (&Document{}).Risk() != RiskUnknown {
		t.Fatalf("empty document should classify as RiskUnknown")
	}
}
