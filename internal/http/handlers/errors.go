// Package handlers defines HTTP-layer error codes used across all API
// endpoints. The codes are lowercase snake_case and stable: clients branch
// on them for programmatic error handling, with the HTTP status carrying
// the coarse semantics and the code the specific condition.
package handlers

const (
	ErrCodeBadRequest  = "bad_request"
	ErrCodeNotFound    = "not_found"
	ErrCodeConflict    = "conflict"
	ErrCodeRateLimited = "too_many_requests"
	ErrCodeInternal    = "internal_error"

	// Domain-specific:
	ErrCodeCreateFailed     = "create_failed"
	ErrCodeListFailed       = "list_failed"
	ErrCodeUpstreamError    = "upstream_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
