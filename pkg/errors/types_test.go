package errors

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		code     ErrorCode
		httpCode int
	}{
		{"missing field", MissingField("color"), ErrCodeMissingField, http.StatusBadRequest},
		{"validation", Validation("timeIntervalstart", "not a timestamp"), ErrCodeValidation, http.StatusBadRequest},
		{"not found", NotFound("tag", "abc"), ErrCodeNotFound, http.StatusNotFound},
		{"generation", Generation("analyzer failed", "boom", nil), ErrCodeGeneration, http.StatusInternalServerError},
		{"sync", Sync("bridge already destroyed"), ErrCodeSync, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpCode, GetHTTPCode(tt.err))
			assert.True(t, Is(tt.err, tt.code))
		})
	}
}

func TestMissingFieldNamesField(t *testing.T) {
	err := MissingField("color")
	assert.Contains(t, err.Error(), "color")
	assert.Equal(t, "color", err.Details["field"])
}

func TestGenerationTruncatesDiagnostics(t *testing.T) {
	long := strings.Repeat("x", 5000)
	err := Generation("analyzer failed", long, fmt.Errorf("exit status 1"))

	diag, ok := err.Details["diagnostics"].(string)
	assert.True(t, ok)
	assert.Len(t, diag, MaxDiagnosticLen)
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Database("create", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}

func TestGetHTTPCodeForPlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPCode(fmt.Errorf("plain")))
	assert.Equal(t, ErrCodeInternal, GetCode(fmt.Errorf("plain")))
}
