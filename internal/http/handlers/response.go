// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response envelopes shared by every endpoint and the
// helpers that write them. Every body carries a boolean `success`; successful
// responses add `data` (and `count` for lists), failures add `error`, `code`
// and the correlation id.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "success": false,
//	  "error": "Bug not found with id of 42",
//	  "code": "not_found",
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000"
//	}
//
// Example success response:
//
//	HTTP/1.1 200 OK
//	{ "success": true, "data": { "id": "...", "title": "Login broken", ... } }
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-bug-tracker/internal/domain"
	"github.com/tbourn/go-bug-tracker/internal/http/middleware"
)

// ErrorResponse is the failure envelope returned by all endpoints.
type ErrorResponse struct {
	Success bool `json:"success" example:"false"`
	// Human-readable message (safe to show to users)
	Error string `json:"error" example:"Bug not found with id of 42"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// BugResponse wraps a single bug.
type BugResponse struct {
	Success bool       `json:"success" example:"true"`
	Data    domain.Bug `json:"data"`
}

// BugListResponse wraps every bug plus the number returned.
type BugListResponse struct {
	Success bool         `json:"success" example:"true"`
	Count   int          `json:"count" example:"1"`
	Data    []domain.Bug `json:"data"`
}

// DeleteResponse is returned after a successful delete; data is always {}.
type DeleteResponse struct {
	Success bool     `json:"success" example:"true"`
	Data    struct{} `json:"data"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Server is running"`
}

// fail aborts the request with a structured error and logs server-side errors.
//
// Server errors (>=500) are logged using the request-scoped logger from
// middleware; detail, when non-nil, is logged but never sent to the client.
func fail(c *gin.Context, status int, code, msg string, detail error) {
	resp := ErrorResponse{
		Success:   false,
		Error:     msg,
		Code:      code,
		RequestID: c.Writer.Header().Get("X-Request-ID"),
	}

	middleware.RecordAPIError(code)
	if status >= http.StatusInternalServerError {
		ev := middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code)
		if detail != nil {
			ev = ev.Err(detail)
		}
		ev.Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail() for router-level fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg, nil) }

// respondError classifies err and writes the matching failure envelope.
func respondError(c *gin.Context, err error) {
	status, code, msg := classify(err)
	fail(c, status, code, msg, err)
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
