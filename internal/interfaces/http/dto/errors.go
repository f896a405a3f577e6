package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// Bulk and multi-row commit error codes. These carry structured details
// so the caller can resume where the batch stopped.
const (
	ErrCodeBulkIngestFailed         = "BULK_INGEST_FAILED"
	ErrCodeQualityCommitInterrupted = "QUALITY_CHECK_COMMIT_INTERRUPTED"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes absent from the map fall back to 500.
var ErrorCodeHTTPStatus = map[string]int{
	// Form and input validation -> 400 Bad Request
	"INCOMPLETE_ARRIVAL_FORM": http.StatusBadRequest,
	"INVALID_VEHICLE_SIZE":    http.StatusBadRequest,
	"INVALID_LOAD_TYPE":       http.StatusBadRequest,
	"INVALID_DESCRIPTION":     http.StatusBadRequest,
	"INVALID_QUANTITY":        http.StatusBadRequest,
	"INVALID_ORDINAL_KEY":     http.StatusBadRequest,
	"INVALID_QUALITY_STATUS":  http.StatusBadRequest,
	"INVALID_CONTENT_TYPE":    http.StatusBadRequest,
	"INVALID_STORAGE_KEY":     http.StatusBadRequest,
	"INVALID_NAME":            http.StatusBadRequest,
	"INVALID_STATUS":          http.StatusBadRequest,
	"INVALID_ITEM":            http.StatusBadRequest,
	"INVALID_ARRIVAL":         http.StatusBadRequest,
	"INVALID_INPUT":           http.StatusBadRequest,
	ErrCodeBadRequest:         http.StatusBadRequest,

	// Missing resources -> 404 Not Found
	"NOT_FOUND":         http.StatusNotFound,
	"SESSION_NOT_FOUND": http.StatusNotFound,
	"ITEM_NOT_FOUND":    http.StatusNotFound,

	// Conflicts -> 409 Conflict
	"OPERATION_IN_FLIGHT":       http.StatusConflict,
	"DUPLICATE_SLOT_ASSIGNMENT": http.StatusConflict,
	"SLOT_OCCUPIED":             http.StatusConflict,
	"ALREADY_EXISTS":            http.StatusConflict,
	"CONCURRENCY_CONFLICT":      http.StatusConflict,

	// Stage and business rule violations -> 422 Unprocessable Entity
	"INVALID_STAGE":              http.StatusUnprocessableEntity,
	"INVALID_STATE":              http.StatusUnprocessableEntity,
	"NO_ITEMS":                   http.StatusUnprocessableEntity,
	"ITEM_NOT_REMOVABLE":         http.StatusUnprocessableEntity,
	"MISSING_SUPERVISOR":         http.StatusUnprocessableEntity,
	"QUALITY_CHECK_INCOMPLETE":   http.StatusUnprocessableEntity,
	"INCOMPLETE_SLOT_ASSIGNMENT": http.StatusUnprocessableEntity,

	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not mapped.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
