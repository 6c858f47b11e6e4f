package extraction

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/documind/go-documind-backend/internal/domain"
)

func TestExtract_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/extract-data" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("doc_type"); got != "auto" {
			t.Errorf("doc_type = %q, want auto", got)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close()
		if hdr.Filename != "invoice.pdf" {
			t.Errorf("filename = %q", hdr.Filename)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"document_type": "invoice",
			"vendor_name": "Acme Corp",
			"total_amount": 123.45,
			"validation_log": "Fixed: Missing Tax Auto-Calculated",
			"line_items": [{"description": "Widget", "quantity": 2, "unit_price": 10, "total_price": 20}]
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret", time.Second)
	res, err := c.Extract(context.Background(), "invoice.pdf", []byte("%PDF-1.4"), "")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.DocumentType != domain.TypeInvoice || res.VendorName != "Acme Corp" || res.TotalAmount != 123.45 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(res.LineItems) != 1 || res.LineItems[0].TotalPrice != 20 {
		t.Fatalf("line items not decoded: %+v", res.LineItems)
	}
}

func TestExtract_TypeHintForwarded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(1 << 20)
		if got := r.FormValue("doc_type"); got != "contract" {
			t.Errorf("doc_type = %q, want contract", got)
		}
		w.Write([]byte(`{"document_type": "contract", "overall_risk_level": "High"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", time.Second)
	res, err := c.Extract(context.Background(), "nda.pdf", []byte("x"), "contract")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.DocumentType != domain.TypeContract || res.OverallRiskLevel != "High" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestExtract_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "quota exhausted"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, "", time.Second)
	_, err := c.Extract(context.Background(), "a.pdf", []byte("x"), "")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestExtract_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "Parse Failed: corrupt PDF"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", time.Second)
	_, err := c.Extract(context.Background(), "a.pdf", []byte("x"), "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError || !strings.Contains(apiErr.Detail, "corrupt PDF") {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestExtract_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, "", time.Second)
	_, err := c.Extract(context.Background(), "a.pdf", []byte("x"), "")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestGenerateReport_RoutesByKind(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("LEGAL REPORT"))
	}))
	defer srv.Close()

	c := New(srv.URL, "", time.Second)
	res := &domain.ExtractionResult{DocumentType: domain.TypeContract}

	rep, err := c.GenerateReport(context.Background(), res, ReportSummary)
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}
	if gotPath != "/generate-summary" {
		t.Errorf("path = %q, want /generate-summary", gotPath)
	}
	if string(rep.Content) != "LEGAL REPORT" || rep.ContentType != "text/plain" {
		t.Errorf("unexpected report: %+v", rep)
	}

	if _, err := c.GenerateReport(context.Background(), res, ReportSpreadsheet); err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}
	if gotPath != "/generate-excel" {
		t.Errorf("path = %q, want /generate-excel", gotPath)
	}
}
