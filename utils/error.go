package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorBody is the error object embedded in every non-2xx response.
type ErrorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// ErrorResponse defines the structure of error responses.
type ErrorResponse struct {
	Error     ErrorBody `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Error: ErrorBody{
						Code:    "internal_error",
						Message: "An unexpected error occurred. Please try again later.",
					},
					RequestID: c.GetString(RequestIDKey),
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response.
func JSONError(c *gin.Context, status int, code, message string, details ...string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("code", code), zap.Strings("details", details))
	c.JSON(status, ErrorResponse{
		Error:     ErrorBody{Code: code, Message: message, Details: details},
		RequestID: c.GetString(RequestIDKey),
	})
}

// RequestIDKey is the gin context key under which the request id middleware
// stores the current id.
const RequestIDKey = "requestID"
