// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Bug model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They do
// no validation: callers (see services.BugService) hand them normalized
// values only.
//
// Error semantics:
//   - When a bug is not found, functions return ErrNotFound
//     (an alias of gorm.ErrRecordNotFound).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-bug-tracker/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateBug inserts b with a fresh UUID and UTC timestamps. Any ID or
// timestamps already set on b are overwritten.
func CreateBug(ctx context.Context, db *gorm.DB, b *domain.Bug) (*domain.Bug, error) {
	now := time.Now().UTC()
	b.ID = uuid.NewString()
	b.CreatedAt = now
	b.UpdatedAt = now
	if err := db.WithContext(ctx).Create(b).Error; err != nil {
		return nil, err
	}
	return b, nil
}

// ListBugs returns every bug, most recently created first. It returns an
// empty (non-nil) slice when there are none.
func ListBugs(ctx context.Context, db *gorm.DB) ([]domain.Bug, error) {
	out := []domain.Bug{}
	err := db.WithContext(ctx).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// GetBug fetches a single bug by ID, or ErrNotFound.
func GetBug(ctx context.Context, db *gorm.DB, id string) (*domain.Bug, error) {
	var b domain.Bug
	if err := db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBug applies the column/value pairs in fields to the bug identified by
// id, refreshes updated_at, and returns the stored row after the write. If no
// row matched (the bug is missing or was deleted concurrently), it returns
// ErrNotFound.
//
// Keys must be column names (e.g. "reported_by").
func UpdateBug(ctx context.Context, db *gorm.DB, id string, fields map[string]any) (*domain.Bug, error) {
	updates := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["updated_at"] = time.Now().UTC()

	res := db.WithContext(ctx).
		Model(&domain.Bug{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetBug(ctx, db, id)
}

// DeleteBug hard-deletes the bug identified by id. It returns ErrNotFound if
// no row was removed.
func DeleteBug(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Bug{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
