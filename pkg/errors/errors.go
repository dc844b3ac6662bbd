package errors

import (
	"fmt"
	"time"
)

// Error codes
const (
	CodeResolution  = "RESOLUTION_ERROR"
	CodeQuota       = "QUOTA_EXCEEDED"
	CodeUpstream    = "UPSTREAM_ERROR"
	CodePersistence = "PERSISTENCE_ERROR"
	CodeCache       = "CACHE_ERROR"
	CodeValidation  = "VALIDATION_ERROR"
)

type AnalysisError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

func (e *AnalysisError) WithCause(cause error) *AnalysisError {
	e.Cause = cause
	return e
}

// ResolutionError means a user-supplied identifier could not be mapped to a
// channel or community. Fatal to the request; the original input is echoed
// back to the user.
type ResolutionError struct {
	*AnalysisError
	Identifier string
}

func NewResolutionError(identifier string, cause error) *ResolutionError {
	return &ResolutionError{
		AnalysisError: &AnalysisError{
			Message:    fmt.Sprintf("could not resolve identifier: %q", identifier),
			Code:       CodeResolution,
			StatusCode: 404,
			Context:    map[string]any{"identifier": identifier},
			Cause:      cause,
		},
		Identifier: identifier,
	}
}

// QuotaExceededError means the daily request budget for a platform is spent.
// The quota resets at the next UTC day boundary.
type QuotaExceededError struct {
	*AnalysisError
	Platform  string
	Used      int
	Limit     int
	ResetTime time.Time
}

func NewQuotaExceededError(platform string, used, limit int, resetTime time.Time) *QuotaExceededError {
	return &QuotaExceededError{
		AnalysisError: &AnalysisError{
			Message: fmt.Sprintf("%s daily quota exceeded: used %d/%d, resets at %s (UTC midnight)",
				platform, used, limit, resetTime.Format(time.RFC3339)),
			Code:       CodeQuota,
			StatusCode: 429,
			Context: map[string]any{
				"platform": platform,
				"used":     used,
				"limit":    limit,
			},
		},
		Platform:  platform,
		Used:      used,
		Limit:     limit,
		ResetTime: resetTime,
	}
}

// UpstreamError wraps any failure returned by an external API.
type UpstreamError struct {
	*AnalysisError
	Platform  string
	Operation string
}

func NewUpstreamError(platform, operation string, statusCode int, cause error) *UpstreamError {
	return &UpstreamError{
		AnalysisError: &AnalysisError{
			Message:    fmt.Sprintf("%s API error during %s", platform, operation),
			Code:       CodeUpstream,
			StatusCode: statusCode,
			Context: map[string]any{
				"platform":  platform,
				"operation": operation,
			},
			Cause: cause,
		},
		Platform:  platform,
		Operation: operation,
	}
}

// PersistenceError is a quota-store or history-store I/O failure. Callers log
// and swallow it: tracking degrades to always-allow rather than blocking the
// user on a storage fault.
type PersistenceError struct {
	*AnalysisError
	Operation string
	Path      string
}

func NewPersistenceError(message, operation, path string, cause error) *PersistenceError {
	return &PersistenceError{
		AnalysisError: &AnalysisError{
			Message:    message,
			Code:       CodePersistence,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"path":      path,
			},
			Cause: cause,
		},
		Operation: operation,
		Path:      path,
	}
}

type CacheError struct {
	*AnalysisError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		AnalysisError: &AnalysisError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

type ValidationError struct {
	*AnalysisError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		AnalysisError: &AnalysisError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}
