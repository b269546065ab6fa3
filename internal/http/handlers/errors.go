// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants and the single place
// where service-layer errors are translated into an HTTP status, a code and a
// client-safe message (classify). Handlers never pick a status for a service
// error themselves; they call respondError.
//
// Conventions:
//   - Codes are lowercase, snake_case and mirror HTTP status semantics.
//   - Every error response carries both an HTTP status and one of these codes.
//
// Example response:
//
//	{
//	  "success": false,
//	  "error": "Bug not found with id of 42",
//	  "code": "not_found",
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-bug-tracker/internal/services"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeTooLarge         = "payload_too_large"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeInternal         = "internal_error"
)

// msgInternal is returned for unclassified failures outside debug mode.
const msgInternal = "internal server error"

// classify maps an error returned by the service layer to a response status,
// code and message.
//
//   - *services.ValidationError -> 400 with the field message
//   - *services.NotFoundError   -> 404 "Bug not found with id of <id>"
//   - oversized request body    -> 413
//   - anything else             -> 500; the raw error text is exposed only when
//     gin runs in debug mode
func classify(err error) (status int, code, msg string) {
	var ve *services.ValidationError
	var nf *services.NotFoundError
	var tooBig *http.MaxBytesError

	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ErrCodeBadRequest, ve.Message
	case errors.As(err, &nf):
		return http.StatusNotFound, ErrCodeNotFound, nf.Error()
	case errors.As(err, &tooBig):
		return http.StatusRequestEntityTooLarge, ErrCodeTooLarge, "request body too large"
	}

	msg = msgInternal
	if gin.Mode() == gin.DebugMode && err != nil {
		msg = err.Error()
	}
	return http.StatusInternalServerError, ErrCodeInternal, msg
}
