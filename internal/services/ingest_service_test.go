package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/documind/go-documind-backend/internal/clients/extraction"
	"github.com/documind/go-documind-backend/internal/domain"
	"github.com/documind/go-documind-backend/internal/ingest"
)

// fakeExtractionClient scripts one response per filename.
type fakeExtractionClient struct {
	results map[string]*domain.ExtractionResult
	errs    map[string]error
	calls   []string
}

func (c *fakeExtractionClient) Extract(_ context.Context, filename string, _ []byte, _ string) (*domain.ExtractionResult, error) {
	c.calls = append(c.calls, filename)
	if err, ok := c.errs[filename]; ok {
		return nil, err
	}
	if res, ok := c.results[filename]; ok {
		return res, nil
	}
	return &domain.ExtractionResult{DocumentType: domain.TypeInvoice, VendorName: "Vendor"}, nil
}

// fakeDocWriter records inserted documents.
type fakeDocWriter struct {
	inserted []*domain.Document
}

func (w *fakeDocWriter) CreateDocument(_ context.Context, _ *gorm.DB, doc *domain.Document) error {
	w.inserted = append(w.inserted, doc)
	return nil
}

func TestIngest_Process_EmptyBatch(t *testing.T) {
	svc := NewIngestService(nil, &fakeExtractionClient{}, &fakeDocWriter{}, IngestOptions{})

	if _, err := svc.Process(context.Background(), "u1", nil); !errors.Is(err, ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}
}

func TestIngest_Process_BatchTooLarge(t *testing.T) {
	svc := NewIngestService(nil, &fakeExtractionClient{}, &fakeDocWriter{}, IngestOptions{MaxBatchFiles: 2})

	files := []ingest.File{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	if _, err := svc.Process(context.Background(), "u1", files); !errors.Is(err, ErrBatchTooLarge) {
		t.Fatalf("expected ErrBatchTooLarge, got %v", err)
	}
}

func TestIngest_Process_PersistsAndOrders(t *testing.T) {
	client := &fakeExtractionClient{}
	writer := &fakeDocWriter{}
	svc := NewIngestService(nil, client, writer, IngestOptions{})

	files := []ingest.File{{Name: "a.pdf"}, {Name: "b.pdf"}}
	outcomes, err := svc.Process(context.Background(), "u1", files)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(outcomes) != 2 || outcomes[0].Filename != "a.pdf" || outcomes[1].Filename != "b.pdf" {
		t.Fatalf("unexpected outcomes: %+v", outcomes)
	}
	if len(writer.inserted) != 2 {
		t.Fatalf("expected 2 inserts, got %d", len(writer.inserted))
	}
	if writer.inserted[0].UserID != "u1" {
		t.Fatalf("expected owner u1, got %q", writer.inserted[0].UserID)
	}
	if got := client.calls; len(got) != 2 || got[0] != "a.pdf" {
		t.Fatalf("expected sequential submission order, got %v", got)
	}
}

func TestIngest_Process_MapsRateLimit(t *testing.T) {
	client := &fakeExtractionClient{
		errs: map[string]error{"limited.pdf": extraction.ErrRateLimited},
	}
	writer := &fakeDocWriter{}
	svc := NewIngestService(nil, client, writer, IngestOptions{})

	outcomes, err := svc.Process(context.Background(), "u1", []ingest.File{{Name: "limited.pdf"}, {Name: "ok.pdf"}})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !outcomes[0].RateLimited || outcomes[0].State != ingest.StateFailed {
		t.Fatalf("expected rate-limited failure, got %+v", outcomes[0])
	}
	if outcomes[1].State != ingest.StateRecorded {
		t.Fatalf("expected second item to succeed, got %+v", outcomes[1])
	}
	if len(writer.inserted) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(writer.inserted))
	}
}

func TestIngest_Process_GuestNeverPersists(t *testing.T) {
	writer := &fakeDocWriter{}
	svc := NewIngestService(nil, &fakeExtractionClient{}, writer, IngestOptions{})

	outcomes, err := svc.Process(context.Background(), "", []ingest.File{{Name: "guest.pdf"}})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if outcomes[0].Result == nil {
		t.Fatal("expected guest outcome to carry the extraction result")
	}
	if len(writer.inserted) != 0 {
		t.Fatalf("expected no inserts for guest, got %d", len(writer.inserted))
	}
}
