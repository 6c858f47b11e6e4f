// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the service contracts the handlers depend on, the
// Handlers aggregate, and small shared helpers. Handlers are
// transport-thin: they validate input, call application services, and
// translate results into HTTP responses.
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/documind/go-documind-backend/internal/clients/extraction"
	"github.com/documind/go-documind-backend/internal/domain"
	"github.com/documind/go-documind-backend/internal/http/middleware"
	"github.com/documind/go-documind-backend/internal/ingest"
	"github.com/documind/go-documind-backend/internal/services"
	"github.com/documind/go-documind-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// AuthService defines account and session operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AuthService interface {
	// Register creates a new account from an email and password.
	Register(ctx context.Context, email, password string) (*domain.User, error)
	// Login verifies credentials and returns a session token plus the account.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// CurrentUser resolves a session token to its account.
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}

// IngestService runs extraction batches sequentially.
type IngestService interface {
	// Process extracts, classifies, and (for account holders) persists each
	// file, returning one outcome per file in submission order.
	Process(ctx context.Context, userID string, files []ingest.File) ([]ingest.Outcome, error)
}

// DocumentService serves document history and the dashboard.
type DocumentService interface {
	// Dashboard aggregates stats, monthly spend, and risk distribution.
	Dashboard(ctx context.Context, userID string) (*services.Dashboard, error)
	// List returns a page of documents after applying the risk filter.
	List(ctx context.Context, userID, riskFilter string, page, pageSize int) ([]domain.Document, int64, error)
}

// ChatService proxies validated prompts to the document-aware assistant.
type ChatService interface {
	Ask(ctx context.Context, userID, message string) (string, error)
}

// ReportService generates downloadable report artifacts.
type ReportService interface {
	Generate(ctx context.Context, result *domain.ExtractionResult, kind extraction.ReportKind) (*services.Artifact, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for auth, ingestion, documents, chat, and
// reports. It depends on abstract service interfaces to keep transport
// concerns separate from business logic.
type Handlers struct {
	authSvc   AuthService
	ingestSvc IngestService
	docSvc    DocumentService
	chatSvc   ChatService
	reportSvc ReportService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(authSvc AuthService, ingestSvc IngestService, docSvc DocumentService, chatSvc ChatService, reportSvc ReportService) *Handlers {
	return &Handlers{
		authSvc:   authSvc,
		ingestSvc: ingestSvc,
		docSvc:    docSvc,
		chatSvc:   chatSvc,
		reportSvc: reportSvc,
	}
}

// userID extracts the authenticated user id from Gin context (set by the
// auth middleware). An empty string marks a guest request; routes that
// require an account are guarded by middleware.RequireAuth upstream.
func userID(c *gin.Context) string {
	return middleware.UserID(c)
}

//
// Shared DTOs / helpers
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}
