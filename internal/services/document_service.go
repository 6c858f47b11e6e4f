// Package services – DocumentService
//
// This file implements the DocumentService, which serves document history
// and the dashboard. Both operations fetch the user's full record set and
// hand it to the pure aggregation functions; dashboards therefore always
// reflect exactly the rows the history view shows. History pagination is
// applied in memory after the risk filter so page numbers count filtered
// rows, not raw ones.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/documind/go-documind-backend/internal/analytics"
	"github.com/documind/go-documind-backend/internal/domain"
)

// DocumentRepo defines the repository contract required by DocumentService.
type DocumentRepo interface {
	// ListDocuments returns every document owned by userID, newest first.
	ListDocuments(ctx context.Context, db *gorm.DB, userID string) ([]domain.Document, error)

	// GetDocument fetches a document by ID ensuring it belongs to the user.
	GetDocument(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Document, error)
}

// Dashboard bundles the aggregate view computed over a user's documents.
type Dashboard struct {
	Stats            analytics.Stats          `json:"stats"`
	MonthlySpend     []analytics.MonthlyPoint `json:"monthly_spend"`
	RiskDistribution []analytics.RiskSlice    `json:"risk_distribution"`
}

// DocumentService provides read operations over persisted documents.
type DocumentService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the document repository used by this service.
	Repo DocumentRepo
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(db *gorm.DB, r DocumentRepo) *DocumentService {
	return &DocumentService{DB: db, Repo: r}
}

// Dashboard computes the stats, monthly spend series, and risk
// distribution over all of the user's documents.
func (s *DocumentService) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	records, err := s.Repo.ListDocuments(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	stats := analytics.ComputeStats(records)
	return &Dashboard{
		Stats:            stats,
		MonthlySpend:     analytics.ComputeMonthlySeries(records),
		RiskDistribution: analytics.ComputeRiskSeries(stats),
	}, nil
}

// List returns a page of the user's documents after applying the risk
// filter. The returned total counts filtered rows. Page and pageSize get
// the usual defaults for out-of-range values.
func (s *DocumentService) List(ctx context.Context, userID, riskFilter string, page, pageSize int) ([]domain.Document, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	records, err := s.Repo.ListDocuments(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	filtered := analytics.FilterByRisk(records, riskFilter)

	total := int64(len(filtered))
	start := (page - 1) * pageSize
	if start >= len(filtered) {
		return []domain.Document{}, total, nil
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], total, nil
}

// Get fetches one document owned by userID, mapping missing rows to
// ErrDocumentNotFound.
func (s *DocumentService) Get(ctx context.Context, id, userID string) (*domain.Document, error) {
	d, err := s.Repo.GetDocument(ctx, s.DB, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return d, nil
}
