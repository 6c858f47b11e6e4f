// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response helpers every endpoint goes through, so
// successes and failures always come back in the same shape. Errors carry a
// stable machine-readable code and the request id, which is what the frontend
// surfaces when an extraction batch fails:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "document not found"
//	}
//
// Successes serialize the payload directly with no envelope:
//
//	HTTP/1.1 200 OK
//	{ "id": "doc-1", "filename": "invoice.pdf", "status": "Success" }
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/documind/go-documind-backend/internal/http/middleware"
)

// ErrorResponse is the error envelope returned by all endpoints. Code is one
// of the constants in errors.go; RequestID echoes X-Request-ID so a client
// error can be matched to its server logs. Referenced by the Swagger
// annotations on every handler.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"document not found"`
}

// fail aborts the request with the standard error envelope. Server-side
// failures (>= 500) are additionally logged through the request-scoped logger
// so they show up with the request id and route attached.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported form of fail for callers outside this package, such as
// the router's NoRoute and NoMethod fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok serializes body as JSON with the given status.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent answers 204 for operations with nothing to return, like logout.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
