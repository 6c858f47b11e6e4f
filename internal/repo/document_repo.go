// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Document
// model.
//
// Documents follow a create-once lifecycle: a row is inserted by the
// ingestion workflow immediately after a successful extraction and is never
// updated afterwards. Reads are always scoped to an owner.
//
// Error semantics:
//   - When a document is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On other DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/documind/go-documind-backend/internal/domain"
)

// ErrNotFound aliases gorm.ErrRecordNotFound for callers that do not want
// to import gorm directly.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateDocument inserts the given document, assigning its identity and
// creation time. The caller fills every other field beforehand; nothing is
// recomputed later.
func CreateDocument(ctx context.Context, db *gorm.DB, doc *domain.Document) error {
	doc.ID = uuid.NewString()
	doc.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(doc).Error
}

// ListDocuments returns every document owned by userID, newest first.
// Ordering is deterministic (CreatedAt DESC, ID DESC) so paginated views
// never show a row twice.
func ListDocuments(ctx context.Context, db *gorm.DB, userID string) ([]domain.Document, error) {
	var out []domain.Document
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// CountDocuments returns the total number of documents owned by userID.
func CountDocuments(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Document{}).Where("user_id = ?", userID).Count(&total).Error
	return total, err
}

// GetDocument fetches one document by ID, enforcing ownership.
func GetDocument(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Document, error) {
	var d domain.Document
	if err := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}
