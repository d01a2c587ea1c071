package types

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/screenlab/screener-api/pkg/errors"
)

// Handler utility functions to reduce duplication across handlers

// RequireParam extracts a URL parameter and sends an error response when it
// is empty
func RequireParam(c *gin.Context, paramName string) (string, bool) {
	value := c.Param(paramName)
	if value == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status: StatusError,
			Error:  "Missing " + paramName,
		})
		return "", false
	}
	return value, true
}

// BindJSONOrError attempts to bind JSON request body to target struct
// Returns false and sends error response if binding fails
func BindJSONOrError(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status:  StatusError,
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// SendError maps an application error to its HTTP status and a structured
// error body
func SendError(c *gin.Context, err error) {
	resp := ErrorResponse{
		Status: StatusError,
		Error:  err.Error(),
	}
	if appErr, ok := err.(*apperrors.AppError); ok {
		resp.Error = appErr.Message
		resp.Code = string(appErr.Code)
		if appErr.Details != nil {
			resp.Details = appErr.Details
		}
	}
	c.JSON(apperrors.GetHTTPCode(err), resp)
}

// SendBadRequest sends a standardized bad request response
func SendBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Status: StatusError, Error: message})
}

// SendNotFound sends a standardized not found response
func SendNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Status: StatusError, Error: message})
}

// SendInternalError sends a standardized internal server error response
func SendInternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{Status: StatusError, Error: message})
}
