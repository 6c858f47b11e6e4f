// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries used for
// conditional responses (ETag generation) in the HTTP layer; dashboard
// analytics live in the analytics package, not here.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/documind/go-documind-backend/internal/domain"
)

// DocumentsStats returns aggregate metadata for a user's documents: the
// total number of rows and the maximum UpdatedAt timestamp among those
// rows. When the user has no documents, count is 0 and maxUpdatedAt is nil.
//
// Return values:
//   - count:        total documents for userID
//   - maxUpdatedAt: pointer to the greatest UpdatedAt, or nil if no rows
//   - err:          database error, if any
func DocumentsStats(ctx context.Context, db *gorm.DB, userID string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Document{}).Where("user_id = ?", userID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
