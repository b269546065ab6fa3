package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/go-bug-tracker/internal/domain"
)

func newBug(title string) *domain.Bug {
	return &domain.Bug{
		Title:       title,
		Description: "desc",
		Status:      domain.StatusOpen,
		Priority:    domain.PriorityMedium,
		ReportedBy:  "tester",
	}
}

func TestCreateBug_Error_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	b, err := CreateBug(context.Background(), db, newBug("t"))
	if err == nil || b != nil {
		t.Fatalf("expected error creating without table, got bug=%v err=%v", b, err)
	}
}

func TestCreateBug_AssignsIDAndTimestamps(t *testing.T) {
	db := newTestDB(t, &domain.Bug{})
	start := time.Now().UTC().Add(-time.Second)

	in := newBug("Crash on save")
	in.ID = "caller-supplied"
	b, err := CreateBug(context.Background(), db, in)
	if err != nil {
		t.Fatalf("CreateBug: %v", err)
	}
	if b.ID == "" || b.ID == "caller-supplied" {
		t.Fatalf("expected a generated ID, got %q", b.ID)
	}
	if b.CreatedAt.Before(start) || !b.UpdatedAt.Equal(b.CreatedAt) {
		t.Fatalf("unexpected timestamps: created=%v updated=%v", b.CreatedAt, b.UpdatedAt)
	}

	got, err := GetBug(context.Background(), db, b.ID)
	if err != nil {
		t.Fatalf("GetBug: %v", err)
	}
	if got.Title != "Crash on save" || got.Status != domain.StatusOpen || got.ReportedBy != "tester" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestCreateBug_UniqueIDs(t *testing.T) {
	db := newTestDB(t, &domain.Bug{})
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		b, err := CreateBug(context.Background(), db, newBug("t"))
		if err != nil {
			t.Fatalf("CreateBug: %v", err)
		}
		if seen[b.ID] {
			t.Fatalf("duplicate id %q", b.ID)
		}
		seen[b.ID] = true
	}
}

func TestListBugs_EmptyIsNonNil(t *testing.T) {
	db := newTestDB(t, &domain.Bug{})
	list, err := ListBugs(context.Background(), db)
	if err != nil {
		t.Fatalf("ListBugs: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", list)
	}
}

func TestListBugs_OrderDescending(t *testing.T) {
	db := newTestDB(t, &domain.Bug{})

	t1 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	seed := []domain.Bug{
		{ID: "a", Title: "A", Description: "d", Status: domain.StatusOpen, Priority: domain.PriorityLow, ReportedBy: "u", CreatedAt: t1},
		{ID: "b", Title: "B", Description: "d", Status: domain.StatusOpen, Priority: domain.PriorityLow, ReportedBy: "u", CreatedAt: t1.Add(time.Hour)},
		{ID: "c", Title: "C", Description: "d", Status: domain.StatusOpen, Priority: domain.PriorityLow, ReportedBy: "u", CreatedAt: t1.Add(2 * time.Hour)},
	}
	for _, b := range seed {
		b := b
		if err := db.Create(&b).Error; err != nil {
			t.Fatalf("seed %s: %v", b.ID, err)
		}
	}

	list, err := ListBugs(context.Background(), db)
	if err != nil {
		t.Fatalf("ListBugs: %v", err)
	}
	if len(list) != 3 || list[0].ID != "c" || list[1].ID != "b" || list[2].ID != "a" {
		t.Fatalf("unexpected order: %#v", list)
	}
}

func TestGetBug_NotFound(t *testing.T) {
	db := newTestDB(t, &domain.Bug{})
	if _, err := GetBug(context.Background(), db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateBug_MergesAndRefreshesUpdatedAt(t *testing.T) {
	db := newTestDB(t, &domain.Bug{})
	ctx := context.Background()

	b, err := CreateBug(ctx, db, newBug("before"))
	if err != nil {
		t.Fatalf("CreateBug: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	got, err := UpdateBug(ctx, db, b.ID, map[string]any{"status": domain.StatusResolved})
	if err != nil {
		t.Fatalf("UpdateBug: %v", err)
	}
	if got.Status != domain.StatusResolved {
		t.Fatalf("status not merged: %+v", got)
	}
	if got.Title != "before" || got.Priority != domain.PriorityMedium {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if !got.UpdatedAt.After(b.UpdatedAt) {
		t.Fatalf("UpdatedAt not refreshed: before=%v after=%v", b.UpdatedAt, got.UpdatedAt)
	}
	if !got.CreatedAt.Equal(b.CreatedAt) {
		t.Fatalf("CreatedAt mutated: before=%v after=%v", b.CreatedAt, got.CreatedAt)
	}
}

func TestUpdateBug_NotFound(t *testing.T) {
	db := newTestDB(t, &domain.Bug{})
	if _, err := UpdateBug(context.Background(), db, "missing", map[string]any{"title": "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteBug(t *testing.T) {
	db := newTestDB(t, &domain.Bug{})
	ctx := context.Background()

	b, err := CreateBug(ctx, db, newBug("gone"))
	if err != nil {
		t.Fatalf("CreateBug: %v", err)
	}
	if err := DeleteBug(ctx, db, b.ID); err != nil {
		t.Fatalf("DeleteBug: %v", err)
	}
	if _, err := GetBug(ctx, db, b.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	// Hard delete: the row is gone, not flagged.
	var n int64
	db.Unscoped().Model(&domain.Bug{}).Where("id = ?", b.ID).Count(&n)
	if n != 0 {
		t.Fatalf("expected row removed, found %d", n)
	}
	if err := DeleteBug(ctx, db, b.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}
