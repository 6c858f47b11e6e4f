// Package services – ReportService
//
// This file implements the ReportService, which turns an extraction payload
// into a downloadable artifact. Spreadsheets apply to invoices and text
// summaries to contracts; the kind/type pairing is validated here before
// the remote generation call. The service also derives the user-facing
// download filename from the payload.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/documind/go-documind-backend/internal/clients/extraction"
	"github.com/documind/go-documind-backend/internal/domain"
)

// ReportClient is the subset of the extraction capability used for report
// generation.
type ReportClient interface {
	GenerateReport(ctx context.Context, result *domain.ExtractionResult, kind extraction.ReportKind) (*extraction.Report, error)
}

// Artifact is a generated report ready to stream to the client.
type Artifact struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ReportService generates downloadable report artifacts.
type ReportService struct {
	// Client talks to the external report generator.
	Client ReportClient

	titler cases.Caser
}

// NewReportService constructs a ReportService.
func NewReportService(c ReportClient) *ReportService {
	return &ReportService{Client: c, titler: cases.Title(language.English)}
}

// Generate validates the kind against the payload's document type, calls
// the remote generator, and names the artifact. Spreadsheet reports require
// an invoice payload and summaries a contract payload; a mismatch yields
// ErrWrongReportKind.
func (s *ReportService) Generate(ctx context.Context, result *domain.ExtractionResult, kind extraction.ReportKind) (*Artifact, error) {
	switch kind {
	case extraction.ReportSpreadsheet:
		if result.DocumentType != domain.TypeInvoice {
			return nil, ErrWrongReportKind
		}
	case extraction.ReportSummary:
		if result.DocumentType != domain.TypeContract {
			return nil, ErrWrongReportKind
		}
	default:
		return nil, ErrWrongReportKind
	}

	rep, err := s.Client.GenerateReport(ctx, result, kind)
	if err != nil {
		switch {
		case errors.Is(err, extraction.ErrRateLimited):
			return nil, ErrExtractRateLimited
		case errors.Is(err, extraction.ErrUnavailable):
			return nil, ErrExtractUnavailable
		}
		return nil, err
	}

	return &Artifact{
		Filename:    s.filename(result, kind),
		ContentType: rep.ContentType,
		Content:     rep.Content,
	}, nil
}

// filename derives the download name from the payload: the vendor name for
// invoices, the contract type for contracts, title-cased with spaces
// collapsed to underscores.
func (s *ReportService) filename(result *domain.ExtractionResult, kind extraction.ReportKind) string {
	if kind == extraction.ReportSpreadsheet {
		return fmt.Sprintf("Invoice_%s.xlsx", s.slug(result.VendorName, "Export"))
	}
	return fmt.Sprintf("Summary_%s.txt", s.slug(result.ContractType, "Contract"))
}

// slug title-cases a free-text label and makes it filename-safe.
func (s *ReportService) slug(label, fallback string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return fallback
	}
	return strings.ReplaceAll(s.titler.String(label), " ", "_")
}
