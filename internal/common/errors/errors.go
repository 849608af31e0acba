// Package errors provides standardized error handling for the match engine.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeScoreUpsertFailed        ErrorCode = "SCORE_UPSERT_FAILED"

	ErrCodeQueueClaimFailed   ErrorCode = "QUEUE_CLAIM_FAILED"
	ErrCodeQueueUpdateFailed  ErrorCode = "QUEUE_UPDATE_FAILED"
	ErrCodeUnknownEntityType  ErrorCode = "UNKNOWN_ENTITY_TYPE"
	ErrCodeEntityNotFound     ErrorCode = "ENTITY_NOT_FOUND"

	ErrCodeEmbeddingUnavailable ErrorCode = "EMBEDDING_UNAVAILABLE"
	ErrCodeEmbeddingMalformed   ErrorCode = "EMBEDDING_MALFORMED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(queryName string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("query: %s, error: %s", queryName, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewScoreUpsertFailedError creates a retryable score persistence error.
func NewScoreUpsertFailedError(table string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoreUpsertFailed,
		Message:   "Match score upsert failed",
		Details:   fmt.Sprintf("table: %s, error: %s", table, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueueClaimFailedError creates a retryable queue claim error.
func NewQueueClaimFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueueClaimFailed,
		Message:   "Recompute queue claim failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueueUpdateFailedError creates a retryable queue status update error.
func NewQueueUpdateFailedError(itemID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueueUpdateFailed,
		Message:   "Recompute queue status update failed",
		Details:   fmt.Sprintf("itemId: %s, error: %s", itemID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownEntityTypeError creates a non-retryable dispatch error.
func NewUnknownEntityTypeError(entityType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownEntityType,
		Message:   "Unsupported queue entity type",
		Details:   fmt.Sprintf("entityType: %s", entityType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEntityNotFoundError creates a non-retryable missing entity error.
func NewEntityNotFoundError(entityType, entityID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEntityNotFound,
		Message:   "Entity referenced by queue item not found",
		Details:   fmt.Sprintf("entityType: %s, entityId: %s", entityType, entityID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmbeddingUnavailableError creates a retryable embedding provider error.
// Callers degrade the affected pair to rules-only scoring instead of failing it.
func NewEmbeddingUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmbeddingUnavailable,
		Message:   "Embedding provider unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmbeddingMalformedError creates a non-retryable embedding payload error.
func NewEmbeddingMalformedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmbeddingMalformed,
		Message:   "Embedding provider returned malformed payload",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeScoreUpsertFailed,
		ErrCodeQueueClaimFailed,
		ErrCodeQueueUpdateFailed:
		return 3 // Retryable technical errors

	case ErrCodeEmbeddingUnavailable:
		return 1 // One in-line retry at most; scoring degrades instead

	default:
		return 0 // Data errors: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// AsStandardError normalizes any error into a StandardError.
func AsStandardError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
