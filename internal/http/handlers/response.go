// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all
// endpoints: a structured error envelope with a stable machine-readable
// code, plus helpers for consistent success responses.
//
// Example error response:
//
//	HTTP/1.1 409 Conflict
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "conflict",
//	  "message": "user with this email already exists"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupath/go-edupath-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// RequestID correlates server logs and client errors.
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Code is a stable, machine-readable code (see errors.go constants).
	Code string `json:"code" example:"not_found"`
	// Message is a human-readable description, safe to show to users.
	Message string `json:"message" example:"resource not found"`
}

// fail aborts the request with a structured error. Server errors (>= 500)
// are additionally logged with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail() for use by router fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
