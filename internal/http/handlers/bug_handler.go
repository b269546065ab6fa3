// Bug HTTP handlers.
//
// This file exposes REST endpoints for bug resources:
//   - GET    /bugs       (list, ETag support)
//   - GET    /bugs/{id}  (fetch one)
//   - POST   /bugs       (create, optional Idempotency-Key)
//   - PUT    /bugs/{id}  (partial update)
//   - DELETE /bugs/{id}  (hard delete)
//
// Handlers are transport-thin: they decode the body, call BugService, and
// translate results into HTTP responses. Every failure goes through
// respondError.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-bug-tracker/internal/domain"
	"github.com/tbourn/go-bug-tracker/internal/http/middleware"
	"github.com/tbourn/go-bug-tracker/internal/services"
)

// HeaderReplayed marks a POST response served from an earlier request with
// the same Idempotency-Key.
const HeaderReplayed = "Idempotent-Replayed"

// BugService defines the bug operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type BugService interface {
	List(ctx context.Context) ([]domain.Bug, error)
	Stats(ctx context.Context) (int64, *time.Time, error)
	Get(ctx context.Context, id string) (*domain.Bug, error)
	Create(ctx context.Context, in services.Fields) (*domain.Bug, error)
	CreateOnce(ctx context.Context, key string, in services.Fields) (*domain.Bug, bool, error)
	Update(ctx context.Context, id string, patch services.Fields) (*domain.Bug, error)
	Delete(ctx context.Context, id string) error
}

// Handlers groups the bug endpoints.
type Handlers struct {
	bugs BugService
}

// New constructs Handlers bound to svc.
func New(svc BugService) *Handlers {
	return &Handlers{bugs: svc}
}

// BugInput documents the accepted JSON body for create and update. Handlers
// decode into services.Fields so that wrong JSON types reach validation.
type BugInput struct {
	Title       string `json:"title" example:"Login button unresponsive"`
	Description string `json:"description" example:"Clicking login does nothing on Safari 17"`
	Status      string `json:"status" enums:"open,in-progress,resolved" example:"open"`
	Priority    string `json:"priority" enums:"low,medium,high,critical" example:"high"`
	ReportedBy  string `json:"reportedBy" example:"alice"`
}

// bindFields decodes the request body as a JSON object. An empty body is
// treated as {}.
func bindFields(c *gin.Context) (services.Fields, error) {
	in := services.Fields{}
	if err := c.ShouldBindJSON(&in); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return services.Fields{}, nil
		case errors.As(err, &tooBig):
			return nil, err
		default:
			return nil, &services.ValidationError{Message: "invalid JSON body"}
		}
	}
	if in == nil {
		// literal `null`
		in = services.Fields{}
	}
	return in, nil
}

// ListBugs godoc
// @ID          listBugs
// @Summary     List bugs
// @Description Returns every bug, most recently created first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Bugs
// @Produce     json
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"bugs:3:1735689600\")
// @Success     200  {object} handlers.BugListResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /bugs [get]
func (h *Handlers) ListBugs(c *gin.Context) {
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	if count, maxTS, err := h.bugs.Stats(ctx); err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.UnixNano()
		}
		etag := fmt.Sprintf(`W/"bugs:%d:%d"`, count, ts)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	bugs, err := h.bugs.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, BugListResponse{Success: true, Count: len(bugs), Data: bugs})
}

// GetBug godoc
// @ID          getBug
// @Summary     Get a bug
// @Tags        Bugs
// @Produce     json
// @Param       id   path     string  true  "Bug ID"  example(141add05-4415-4938-b5a1-17e0d3171aff)
// @Success     200  {object} handlers.BugResponse
// @Failure     404  {object} handlers.ErrorResponse "Bug not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /bugs/{id} [get]
func (h *Handlers) GetBug(c *gin.Context) {
	b, err := h.bugs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, BugResponse{Success: true, Data: *b})
}

// CreateBug godoc
// @ID          createBug
// @Summary     Report a bug
// @Description Validates and sanitizes the payload and stores a new bug. status defaults to "open", priority to "medium", reportedBy to "Anonymous". With an Idempotency-Key, a repeated request returns the original bug and sets Idempotent-Replayed.
// @Tags        Bugs
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string  false "Deduplicates retries"  example(7d1f4c1e-create-1)
// @Param       body  body     handlers.BugInput  true  "Bug payload"
// @Success     201   {object} handlers.BugResponse
// @Header      201   {string} Idempotent-Replayed "true when served from an earlier request"
// @Failure     400   {object} handlers.ErrorResponse "Validation failed"
// @Failure     500   {object} handlers.ErrorResponse "Internal error"
// @Router      /bugs [post]
func (h *Handlers) CreateBug(c *gin.Context) {
	in, err := bindFields(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	var b *domain.Bug
	if key, has := middleware.GetIdempotencyKey(c); has {
		var replayed bool
		b, replayed, err = h.bugs.CreateOnce(ctx, key, in)
		if err == nil && replayed {
			c.Header(HeaderReplayed, "true")
		}
	} else {
		b, err = h.bugs.Create(ctx, in)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusCreated, BugResponse{Success: true, Data: *b})
}

// UpdateBug godoc
// @ID          updateBug
// @Summary     Update a bug
// @Description Merges the supplied fields into the bug. Any status may follow any other.
// @Tags        Bugs
// @Accept      json
// @Produce     json
// @Param       id    path     string  true  "Bug ID"
// @Param       body  body     handlers.BugInput  true  "Fields to change"
// @Success     200   {object} handlers.BugResponse
// @Failure     400   {object} handlers.ErrorResponse "Validation failed"
// @Failure     404   {object} handlers.ErrorResponse "Bug not found"
// @Failure     500   {object} handlers.ErrorResponse "Internal error"
// @Router      /bugs/{id} [put]
func (h *Handlers) UpdateBug(c *gin.Context) {
	patch, err := bindFields(c)
	if err != nil {
		respondError(c, err)
		return
	}
	b, err := h.bugs.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, BugResponse{Success: true, Data: *b})
}

// DeleteBug godoc
// @ID          deleteBug
// @Summary     Delete a bug
// @Tags        Bugs
// @Produce     json
// @Param       id   path     string  true  "Bug ID"
// @Success     200  {object} handlers.DeleteResponse
// @Failure     404  {object} handlers.ErrorResponse "Bug not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /bugs/{id} [delete]
func (h *Handlers) DeleteBug(c *gin.Context) {
	if err := h.bugs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, DeleteResponse{Success: true})
}

// Health godoc
// @ID          health
// @Summary     Liveness probe
// @Tags        System
// @Produce     json
// @Success     200  {object} handlers.HealthResponse
// @Router      /health [get]
func Health(c *gin.Context) {
	ok(c, http.StatusOK, HealthResponse{Success: true, Message: "Server is running"})
}
