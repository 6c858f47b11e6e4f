// Package services – IngestService
//
// This file implements the IngestService, which validates extraction
// batches and drives them through the ingestion workflow. The service owns
// the adapters that bind the external extraction client and the document
// repository to the workflow's narrow interfaces, including the mapping of
// the client's rate-limit error onto the workflow's sentinel.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/documind/go-documind-backend/internal/clients/extraction"
	"github.com/documind/go-documind-backend/internal/domain"
	"github.com/documind/go-documind-backend/internal/ingest"
)

// ExtractionClient is the subset of the extraction capability used for
// batch ingestion.
type ExtractionClient interface {
	Extract(ctx context.Context, filename string, content []byte, typeHint string) (*domain.ExtractionResult, error)
}

// DocumentWriter persists classified documents.
type DocumentWriter interface {
	CreateDocument(ctx context.Context, db *gorm.DB, doc *domain.Document) error
}

// IngestService runs sequential extraction batches.
type IngestService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Workflow processes one batch per call.
	Workflow *ingest.Workflow

	// MaxBatchFiles caps files per request; 0 disables the cap.
	MaxBatchFiles int
}

// NewIngestService wires the extraction client and document repository into
// a ready-to-run workflow. delay is the inter-item throttle; maxFiles caps
// batch size (0 disables the cap).
func NewIngestService(db *gorm.DB, client ExtractionClient, writer DocumentWriter, opts IngestOptions) *IngestService {
	wf := ingest.New(
		&clientExtractor{client: client},
		&repoStore{db: db, writer: writer},
		opts.Delay,
	)
	wf.OnProgress = opts.OnProgress
	return &IngestService{DB: db, Workflow: wf, MaxBatchFiles: opts.MaxBatchFiles}
}

// IngestOptions configures batch pacing and limits.
type IngestOptions struct {
	Delay         time.Duration
	MaxBatchFiles int
	OnProgress    func(ingest.Progress)
}

// Process validates the batch and runs it to completion, returning one
// outcome per file in submission order. An empty userID marks a guest
// batch: files are extracted and classified but nothing is persisted.
func (s *IngestService) Process(ctx context.Context, userID string, files []ingest.File) ([]ingest.Outcome, error) {
	if len(files) == 0 {
		return nil, ErrEmptyBatch
	}
	if s.MaxBatchFiles > 0 && len(files) > s.MaxBatchFiles {
		return nil, ErrBatchTooLarge
	}
	return s.Workflow.Run(ctx, userID, files), nil
}

// clientExtractor adapts the HTTP extraction client to ingest.Extractor,
// translating the client's error taxonomy into the workflow's.
type clientExtractor struct {
	client ExtractionClient
}

func (e *clientExtractor) Extract(ctx context.Context, f ingest.File) (*domain.ExtractionResult, error) {
	res, err := e.client.Extract(ctx, f.Name, f.Content, f.TypeHint)
	if err != nil {
		if errors.Is(err, extraction.ErrRateLimited) {
			return nil, ingest.ErrRateLimited
		}
		return nil, err
	}
	return res, nil
}

// repoStore adapts the document repository to ingest.Store.
type repoStore struct {
	db     *gorm.DB
	writer DocumentWriter
}

func (s *repoStore) Insert(ctx context.Context, doc *domain.Document) error {
	return s.writer.CreateDocument(ctx, s.db, doc)
}
