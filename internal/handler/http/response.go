package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainErrors "github.com/Manavv007/GlobeTrotter-sub000/internal/domain/errors"
)

// ResponseError is the error body returned by the API.
type ResponseError struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// RespondWithError sends an error response and logs it.
func RespondWithError(c *gin.Context, statusCode int, message string, logger *zap.Logger) {
	logger.Warn("API error response",
		zap.Int("status_code", statusCode),
		zap.String("error_message", message),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
	)
	c.JSON(statusCode, ResponseError{Error: message})
}

// RespondWithData sends a success response carrying only data.
func RespondWithData(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// RespondWithMessage sends a success response carrying only a message.
func RespondWithMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

// RespondDomainError maps a domain error onto an HTTP status and sends it.
// Unclassified errors become an opaque 500.
func RespondDomainError(c *gin.Context, err error, logger *zap.Logger) {
	switch {
	case domainErrors.IsUnauthorized(err):
		RespondWithError(c, http.StatusUnauthorized, err.Error(), logger)
	case domainErrors.IsConflict(err):
		RespondWithError(c, http.StatusConflict, err.Error(), logger)
	case domainErrors.IsBadRequest(err):
		RespondWithError(c, http.StatusBadRequest, err.Error(), logger)
	case domainErrors.IsNotFound(err):
		RespondWithError(c, http.StatusNotFound, err.Error(), logger)
	default:
		logger.Error("Unhandled service error", zap.Error(err))
		RespondWithError(c, http.StatusInternalServerError, "internal server error", logger)
	}
}
