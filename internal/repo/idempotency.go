// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository helpers for the Idempotency
// model used to implement safe-retry semantics for POST /bugs.
package repo

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-bug-tracker/internal/domain"
)

// ErrDuplicate indicates that an idempotency record already exists for the
// given key.
var ErrDuplicate = errors.New("duplicate")

// GetIdempotency returns a non-expired record for key or ErrNotFound.
func GetIdempotency(ctx context.Context, db *gorm.DB, key string, now time.Time) (*domain.Idempotency, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrNotFound
	}
	var rec domain.Idempotency
	err := db.WithContext(ctx).
		Where("key = ? AND expires_at > ?", key, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateIdempotency inserts a record and returns ErrDuplicate on unique violation.
func CreateIdempotency(ctx context.Context, db *gorm.DB, key, bugID string, status int, ttl time.Duration) (*domain.Idempotency, error) {
	now := time.Now().UTC()
	rec := &domain.Idempotency{
		ID:        uuid.NewString(),
		Key:       key,
		BugID:     bugID,
		Status:    status,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}

// CreateBugOnce inserts b and records it under key in one transaction. If a
// live record for key already points at an existing bug, that bug is returned
// with replayed=true and nothing is written.
//
// Expired records, and records whose bug has since been deleted, are replaced.
// If a concurrent request claims key first, the insert rolls back and the
// winner's bug is returned as a replay.
func CreateBugOnce(ctx context.Context, db *gorm.DB, key string, b *domain.Bug, ttl time.Duration) (bug *domain.Bug, replayed bool, err error) {
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		var rec domain.Idempotency
		lookErr := tx.Where("key = ?", key).First(&rec).Error
		switch {
		case lookErr == nil && !rec.Expired(now):
			prev, gerr := GetBug(ctx, tx, rec.BugID)
			if gerr == nil {
				bug, replayed = prev, true
				return nil
			}
			if !errors.Is(gerr, ErrNotFound) {
				return gerr
			}
			fallthrough
		case lookErr == nil:
			// Stale: drop it so the key can be claimed again.
			if derr := tx.Delete(&domain.Idempotency{}, "id = ?", rec.ID).Error; derr != nil {
				return derr
			}
		case !errors.Is(lookErr, gorm.ErrRecordNotFound):
			return lookErr
		}

		created, cerr := CreateBug(ctx, tx, b)
		if cerr != nil {
			return cerr
		}
		if _, ierr := CreateIdempotency(ctx, tx, key, created.ID, http.StatusCreated, ttl); ierr != nil {
			return ierr
		}
		bug = created
		return nil
	})
	if errors.Is(err, ErrDuplicate) {
		// Lost the race for key: serve the winner.
		rec, gerr := GetIdempotency(ctx, db, key, time.Now().UTC())
		if gerr != nil {
			return nil, false, gerr
		}
		prev, gerr := GetBug(ctx, db, rec.BugID)
		if gerr != nil {
			return nil, false, gerr
		}
		return prev, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return bug, replayed, nil
}

// isUniqueViolation detects unique-constraint errors across drivers.
// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key")
}
