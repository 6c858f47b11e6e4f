package services

import (
	"context"
	"errors"
	"testing"

	"github.com/documind/go-documind-backend/internal/clients/extraction"
	"github.com/documind/go-documind-backend/internal/domain"
)

// fakeReportClient records the requested kind.
type fakeReportClient struct {
	lastKind extraction.ReportKind
	report   *extraction.Report
	err      error
}

func (f *fakeReportClient) GenerateReport(_ context.Context, _ *domain.ExtractionResult, kind extraction.ReportKind) (*extraction.Report, error) {
	f.lastKind = kind
	if f.err != nil {
		return nil, f.err
	}
	if f.report != nil {
		return f.report, nil
	}
	return &extraction.Report{Content: []byte("data"), ContentType: "application/octet-stream"}, nil
}

func TestReport_Generate_InvoiceSpreadsheet(t *testing.T) {
	client := &fakeReportClient{report: &extraction.Report{
		Content:     []byte("xlsx-bytes"),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}}
	svc := NewReportService(client)

	res := &domain.ExtractionResult{DocumentType: domain.TypeInvoice, VendorName: "acme office supplies"}
	art, err := svc.Generate(context.Background(), res, extraction.ReportSpreadsheet)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if art.Filename != "Invoice_Acme_Office_Supplies.xlsx" {
		t.Fatalf("unexpected filename %q", art.Filename)
	}
	if string(art.Content) != "xlsx-bytes" {
		t.Fatalf("unexpected content %q", art.Content)
	}
	if client.lastKind != extraction.ReportSpreadsheet {
		t.Fatalf("unexpected kind %q", client.lastKind)
	}
}

func TestReport_Generate_ContractSummary(t *testing.T) {
	svc := NewReportService(&fakeReportClient{})

	res := &domain.ExtractionResult{DocumentType: domain.TypeContract, ContractType: "service agreement"}
	art, err := svc.Generate(context.Background(), res, extraction.ReportSummary)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if art.Filename != "Summary_Service_Agreement.txt" {
		t.Fatalf("unexpected filename %q", art.Filename)
	}
}

func TestReport_Generate_FallbackNames(t *testing.T) {
	svc := NewReportService(&fakeReportClient{})
	ctx := context.Background()

	inv := &domain.ExtractionResult{DocumentType: domain.TypeInvoice}
	art, err := svc.Generate(ctx, inv, extraction.ReportSpreadsheet)
	if err != nil || art.Filename != "Invoice_Export.xlsx" {
		t.Fatalf("expected fallback invoice name, got %v err=%v", art, err)
	}

	con := &domain.ExtractionResult{DocumentType: domain.TypeContract}
	art, err = svc.Generate(ctx, con, extraction.ReportSummary)
	if err != nil || art.Filename != "Summary_Contract.txt" {
		t.Fatalf("expected fallback contract name, got %v err=%v", art, err)
	}
}

func TestReport_Generate_KindMismatch(t *testing.T) {
	svc := NewReportService(&fakeReportClient{})
	ctx := context.Background()

	con := &domain.ExtractionResult{DocumentType: domain.TypeContract}
	if _, err := svc.Generate(ctx, con, extraction.ReportSpreadsheet); !errors.Is(err, ErrWrongReportKind) {
		t.Fatalf("spreadsheet for contract: expected ErrWrongReportKind, got %v", err)
	}

	inv := &domain.ExtractionResult{DocumentType: domain.TypeInvoice}
	if _, err := svc.Generate(ctx, inv, extraction.ReportSummary); !errors.Is(err, ErrWrongReportKind) {
		t.Fatalf("summary for invoice: expected ErrWrongReportKind, got %v", err)
	}
	if _, err := svc.Generate(ctx, inv, extraction.ReportKind("pdf")); !errors.Is(err, ErrWrongReportKind) {
		t.Fatalf("unknown kind: expected ErrWrongReportKind, got %v", err)
	}
}

func TestReport_Generate_MapsClientErrors(t *testing.T) {
	ctx := context.Background()
	inv := &domain.ExtractionResult{DocumentType: domain.TypeInvoice}

	svc := NewReportService(&fakeReportClient{err: extraction.ErrRateLimited})
	if _, err := svc.Generate(ctx, inv, extraction.ReportSpreadsheet); !errors.Is(err, ErrExtractRateLimited) {
		t.Fatalf("expected ErrExtractRateLimited, got %v", err)
	}

	svc = NewReportService(&fakeReportClient{err: extraction.ErrUnavailable})
	if _, err := svc.Generate(ctx, inv, extraction.ReportSpreadsheet); !errors.Is(err, ErrExtractUnavailable) {
		t.Fatalf("expected ErrExtractUnavailable, got %v", err)
	}
}
