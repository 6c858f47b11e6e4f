// Package domain – extraction payload types.
//
// ExtractionResult mirrors the flat JSON document returned by the external
// extraction capability. The service fills the invoice fields for invoices
// and the contract fields for contracts, but always returns a single flat
// object (contracts carry placeholder invoice fields for table rendering),
// so one struct covers both variants.
package domain

// LineItem is a single invoice line as extracted by the capability.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// ExtractionResult is the structured payload produced by the extraction
// capability for one file. Which fields are meaningful depends on
// DocumentType; absent fields decode to zero values and degrade to
// zero/absent in analytics rather than failing.
type ExtractionResult struct {
	DocumentType DocumentType `json:"document_type"`

	// Shared / invoice fields.
	VendorName    string     `json:"vendor_name"`
	InvoiceNumber string     `json:"invoice_number,omitempty"`
	InvoiceDate   string     `json:"invoice_date,omitempty"`
	Currency      string     `json:"currency,omitempty"`
	TotalAmount   float64    `json:"total_amount"`
	TaxAmount     float64    `json:"tax_amount,omitempty"`
	LineItems     []LineItem `json:"line_items,omitempty"`

	// ValidationLog is the free-text signal from the extraction-side
	// validator ("Fixed …" or "Manual Review Needed"). Classification into
	// a DocumentStatus happens once, at ingestion, via ClassifyValidationLog.
	ValidationLog string `json:"validation_log,omitempty"`

	// Contract fields.
	ContractType     string   `json:"contract_type,omitempty"`
	PartiesInvolved  []string `json:"parties_involved,omitempty"`
	EffectiveDate    string   `json:"effective_date,omitempty"`
	KeyTerms         []string `json:"key_terms,omitempty"`
	RiskAnalysis     string   `json:"risk_analysis,omitempty"`
	OverallRiskLevel string   `json:"overall_risk_level,omitempty"`
}
