// Package domain defines the persistence models for users, extracted
// documents, and idempotency records. These types are mapped with GORM and
// form the core data layer of the application.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// DocumentType identifies which extraction schema a document followed.
type DocumentType string

// Known document types. The extraction capability may return other values;
// they are stored verbatim and simply fall outside invoice/contract analytics.
const (
	TypeInvoice  DocumentType = "invoice"
	TypeContract DocumentType = "contract"
)

// DocumentStatus is the ingestion-time classification of an extraction
// result. It is derived exactly once, when the record is created, and is
// never recomputed from the payload afterwards.
type DocumentStatus string

const (
	// StatusSuccess means the extraction passed validation untouched.
	StatusSuccess DocumentStatus = "Success"
	// StatusFixed means the validator auto-corrected the extracted numbers
	// (e.g. a missing tax amount was reconstructed from the document text).
	StatusFixed DocumentStatus = "Fixed"
	// StatusReviewNeeded means the validator flagged the result for a human.
	StatusReviewNeeded DocumentStatus = "Review Needed"
)

// RiskLevel is the enumerated contract risk classification. RiskUnknown
// covers any free-text value that names none of the three known levels;
// such contracts are counted in document totals but excluded from the risk
// distribution entirely.
type RiskLevel string

const (
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskUnknown RiskLevel = "unknown"
)

// Document represents one persisted extraction result owned by a user.
//
// Fields:
//   - ID: stable UUID primary key (char(36)), assigned on insert.
//   - UserID: identifier of the owner; indexed for per-user retrieval.
//     Guest submissions are processed but never persisted, so every row
//     has a real owner.
//   - Filename: original upload name, informational only.
//   - VendorName: extracted vendor/party name, denormalized for list views.
//   - TotalAmount: extracted grand total; meaningful only for invoices.
//   - Status: ingestion-time classification, fixed at creation.
//   - Extracted: the full structured extraction payload (JSON column).
//   - CreatedAt: insert time; drives history ordering and month bucketing.
//   - DeletedAt: soft deletion marker (manual cleanup only).
type Document struct {
	ID          string           `json:"id"           gorm:"type:char(36);primaryKey"`
	UserID      string           `json:"user_id"      gorm:"type:varchar(64);not null;index:idx_user_docs"`
	Filename    string           `json:"filename"     gorm:"type:varchar(255);not null"`
	VendorName  string           `json:"vendor_name"  gorm:"type:varchar(255)"`
	TotalAmount float64          `json:"total_amount"`
	Status      DocumentStatus   `json:"status"       gorm:"type:varchar(16);not null;check:status IN ('Success','Fixed','Review Needed')"`
	Extracted   ExtractionResult `json:"extracted_data" gorm:"serializer:json"`
	CreatedAt   time.Time        `json:"created_at"   gorm:"index"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `json:"-"            gorm:"index"`
}

// TableName returns the database table name for Document.
func (Document) TableName() string { return "documents" }

// IsInvoice reports whether the stored payload followed the invoice schema.
func (d *Document) IsInvoice() bool { return d.Extracted.DocumentType == TypeInvoice }

// IsContract reports whether the stored payload followed the contract schema.
func (d *Document) IsContract() bool { return d.Extracted.DocumentType == TypeContract }

// Risk returns the enumerated risk level carried by the payload. For
// invoices (and anything without risk text) this is RiskUnknown.
func (d *Document) Risk() RiskLevel { return ClassifyRiskLevel(d.Extracted.OverallRiskLevel) }
