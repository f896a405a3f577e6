package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"INCOMPLETE_ARRIVAL_FORM", http.StatusBadRequest},
		{"SESSION_NOT_FOUND", http.StatusNotFound},
		{"DUPLICATE_SLOT_ASSIGNMENT", http.StatusConflict},
		{"OPERATION_IN_FLIGHT", http.StatusConflict},
		{"INVALID_STAGE", http.StatusUnprocessableEntity},
		{"QUALITY_CHECK_INCOMPLETE", http.StatusUnprocessableEntity},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestGetHTTPStatus_UnknownCodeIs500(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("SOMETHING_NEW"))
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID("NOT_FOUND", "gone", "req-1")

	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
}
