// Package services – BugService
//
// This file implements BugService, the pipeline between the HTTP handlers and
// the bug store: validate raw input, sanitize free text, call the repository,
// and translate repository not-found signals into *NotFoundError.
//
// Update and Delete check existence first and then write; the two steps are
// not one transaction. A concurrent Delete between them surfaces as
// *NotFoundError from the conditional write, and concurrent Updates are
// last-write-wins.
//
// Observability: all public methods are OpenTelemetry-instrumented.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-bug-tracker/internal/domain"
	"github.com/tbourn/go-bug-tracker/internal/repo"
	"github.com/tbourn/go-bug-tracker/internal/validation"
)

// BugRepo is the storage contract BugService depends on. It carries no
// storage-engine types so the backing store can be swapped freely.
type BugRepo interface {
	// ListBugs returns every bug, newest first; empty is not an error.
	ListBugs(ctx context.Context) ([]domain.Bug, error)
	// GetBug returns the bug or repo.ErrNotFound.
	GetBug(ctx context.Context, id string) (*domain.Bug, error)
	// CreateBug persists b, assigning ID and timestamps.
	CreateBug(ctx context.Context, b *domain.Bug) (*domain.Bug, error)
	// UpdateBug merges column values into the bug and returns the stored
	// result, or repo.ErrNotFound.
	UpdateBug(ctx context.Context, id string, fields map[string]any) (*domain.Bug, error)
	// DeleteBug removes the bug, or returns repo.ErrNotFound.
	DeleteBug(ctx context.Context, id string) error
	// BugsStats returns the bug count and the latest UpdatedAt.
	BugsStats(ctx context.Context) (int64, *time.Time, error)
	// CreateBugOnce creates b under an idempotency key, or returns the bug
	// previously created with that key (replayed=true).
	CreateBugOnce(ctx context.Context, key string, b *domain.Bug, ttl time.Duration) (*domain.Bug, bool, error)
}

// Fields is a decoded JSON request body. Values keep their JSON types
// (string, float64, bool, nil, ...) so validators can reject wrong types.
type Fields map[string]any

// DefaultIdempotencyTTL applies when BugService.IdempotencyTTL is unset.
const DefaultIdempotencyTTL = 24 * time.Hour

// BugService validates, sanitizes and persists bug records.
type BugService struct {
	Repo BugRepo
	// IdempotencyTTL bounds how long an Idempotency-Key replays its bug.
	IdempotencyTTL time.Duration
}

// NewBugService constructs a BugService with the default idempotency TTL.
func NewBugService(r BugRepo) *BugService {
	return &BugService{Repo: r, IdempotencyTTL: DefaultIdempotencyTTL}
}

var tracer = otel.Tracer("services/BugService")

// List returns all bugs, most recently created first.
func (s *BugService) List(ctx context.Context) ([]domain.Bug, error) {
	ctx, span := tracer.Start(ctx, "List")
	defer span.End()

	bugs, err := s.Repo.ListBugs(ctx)
	if err != nil {
		return nil, err
	}
	if bugs == nil {
		bugs = []domain.Bug{}
	}
	span.SetAttributes(attribute.Int("bug.count", len(bugs)))
	return bugs, nil
}

// Stats returns the bug count and latest UpdatedAt for conditional responses.
func (s *BugService) Stats(ctx context.Context) (int64, *time.Time, error) {
	return s.Repo.BugsStats(ctx)
}

// Get returns a single bug or *NotFoundError.
func (s *BugService) Get(ctx context.Context, id string) (*domain.Bug, error) {
	ctx, span := tracer.Start(ctx, "Get", trace.WithAttributes(attribute.String("bug.id", id)))
	defer span.End()

	return s.get(ctx, id)
}

// Create validates in and persists a new bug.
//
// title and description are required. status and priority are validated
// only when supplied (a missing, null or empty value means "not supplied")
// and defaulted otherwise. reportedBy defaults to "Anonymous". Free-text
// fields are sanitized before persistence.
func (s *BugService) Create(ctx context.Context, in Fields) (*domain.Bug, error) {
	ctx, span := tracer.Start(ctx, "Create")
	defer span.End()

	b, err := newBugFrom(in)
	if err != nil {
		return nil, err
	}
	created, err := s.Repo.CreateBug(ctx, b)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("bug.id", created.ID))
	return created, nil
}

// CreateOnce behaves like Create, but a repeated key within the TTL returns
// the bug created by the first request (replayed=true) instead of inserting
// another. Input is still validated on replays.
func (s *BugService) CreateOnce(ctx context.Context, key string, in Fields) (*domain.Bug, bool, error) {
	ctx, span := tracer.Start(ctx, "CreateOnce")
	defer span.End()

	b, err := newBugFrom(in)
	if err != nil {
		return nil, false, err
	}
	ttl := s.IdempotencyTTL
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	created, replayed, err := s.Repo.CreateBugOnce(ctx, key, b, ttl)
	if err != nil {
		return nil, false, err
	}
	span.SetAttributes(
		attribute.String("bug.id", created.ID),
		attribute.Bool("idempotency.replayed", replayed),
	)
	return created, replayed, nil
}

// Update merges patch into the bug identified by id.
//
// Every supplied field is validated: status and priority must be enum
// members, title and description must satisfy their length rules, and
// reportedBy must be a string. Unknown keys (including id and timestamps) are
// ignored. Any status may follow any other.
func (s *BugService) Update(ctx context.Context, id string, patch Fields) (*domain.Bug, error) {
	ctx, span := tracer.Start(ctx, "Update", trace.WithAttributes(attribute.String("bug.id", id)))
	defer span.End()

	if _, err := s.get(ctx, id); err != nil {
		return nil, err
	}

	fields, err := patchColumns(patch)
	if err != nil {
		return nil, err
	}

	updated, err := s.Repo.UpdateBug(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes the bug identified by id.
func (s *BugService) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Delete", trace.WithAttributes(attribute.String("bug.id", id)))
	defer span.End()

	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.DeleteBug(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return &NotFoundError{ID: id}
		}
		return err
	}
	return nil
}

func (s *BugService) get(ctx context.Context, id string) (*domain.Bug, error) {
	b, err := s.Repo.GetBug(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, err
	}
	return b, nil
}

// newBugFrom runs the create-time validation and sanitization.
func newBugFrom(in Fields) (*domain.Bug, error) {
	title, err := cleanText(validation.ValidateTitle, in["title"])
	if err != nil {
		return nil, err
	}
	desc, err := cleanText(validation.ValidateDescription, in["description"])
	if err != nil {
		return nil, err
	}

	status := domain.DefaultStatus
	if v, ok := supplied(in, "status"); ok {
		r := validation.ValidateStatus(v)
		if !r.Valid {
			return nil, invalid(r.Error)
		}
		status = domain.Status(r.Value)
	}

	priority := domain.DefaultPriority
	if v, ok := supplied(in, "priority"); ok {
		r := validation.ValidatePriority(v)
		if !r.Valid {
			return nil, invalid(r.Error)
		}
		priority = domain.Priority(r.Value)
	}

	reporter, err := cleanReporter(in["reportedBy"])
	if err != nil {
		return nil, err
	}

	return &domain.Bug{
		Title:       title,
		Description: desc,
		Status:      status,
		Priority:    priority,
		ReportedBy:  reporter,
	}, nil
}

// patchColumns validates the keys present in patch and maps them to column
// names.
func patchColumns(patch Fields) (map[string]any, error) {
	out := make(map[string]any, len(patch))

	if v, ok := patch["title"]; ok {
		title, err := cleanText(validation.ValidateTitle, v)
		if err != nil {
			return nil, err
		}
		out["title"] = title
	}
	if v, ok := patch["description"]; ok {
		desc, err := cleanText(validation.ValidateDescription, v)
		if err != nil {
			return nil, err
		}
		out["description"] = desc
	}
	if v, ok := patch["status"]; ok {
		r := validation.ValidateStatus(v)
		if !r.Valid {
			return nil, invalid(r.Error)
		}
		out["status"] = r.Value
	}
	if v, ok := patch["priority"]; ok {
		r := validation.ValidatePriority(v)
		if !r.Valid {
			return nil, invalid(r.Error)
		}
		out["priority"] = r.Value
	}
	if v, ok := patch["reportedBy"]; ok {
		reporter, err := cleanReporter(v)
		if err != nil {
			return nil, err
		}
		out["reported_by"] = reporter
	}
	return out, nil
}

// cleanText validates raw, strips script elements, and validates again so a
// value consisting only of a script element cannot be stored as empty text.
func cleanText(validate func(any) validation.Result, raw any) (string, error) {
	r := validate(raw)
	if !r.Valid {
		return "", invalid(r.Error)
	}
	r = validate(validation.SanitizeString(r.Value))
	if !r.Valid {
		return "", invalid(r.Error)
	}
	return r.Value, nil
}

// cleanReporter trims and sanitizes reportedBy, falling back to
// domain.DefaultReporter when it is absent or blank.
func cleanReporter(raw any) (string, error) {
	if raw == nil {
		return domain.DefaultReporter, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", invalid("reportedBy must be a string")
	}
	s = strings.TrimSpace(validation.SanitizeString(s))
	if s == "" {
		return domain.DefaultReporter, nil
	}
	return s, nil
}

// supplied reports whether key carries a value. Missing keys, null and the
// empty string all count as not supplied.
func supplied(in Fields, key string) (any, bool) {
	v, ok := in[key]
	if !ok || v == nil {
		return nil, false
	}
	if s, isStr := v.(string); isStr && s == "" {
		return nil, false
	}
	return v, true
}
