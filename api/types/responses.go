package types

import "encoding/json"

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusDone  = "done"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Error   string      `json:"error"`             // Human-readable message
	Code    string      `json:"code,omitempty"`    // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// GenerateTagsResponse for the tag generation endpoint. Tags carries the
// analyzer's raw timestamp-to-names mapping, in the analyzer's own key order.
type GenerateTagsResponse struct {
	Status string          `json:"status"`
	Tags   json.RawMessage `json:"tags"`
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	BaseResponse
	Version  string                 `json:"version,omitempty"`
	Services map[string]interface{} `json:"services,omitempty"`
}

// VersionResponse for the version endpoint
type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
}
