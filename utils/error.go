package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error codes for domain failures surfaced to API callers.
const (
	CodeNotFound        = "not_found"
	CodeInvalidArgument = "invalid_argument"
	CodeInvalidState    = "invalid_state"
	CodeForbidden       = "forbidden"
	CodeConflict        = "conflict"
	CodeExternal        = "external_service_error"
)

// DomainError is a coded error carried from services up to the HTTP layer.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewDomainError(code, format string, args ...interface{}) *DomainError {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func NotFoundError(format string, args ...interface{}) *DomainError {
	return NewDomainError(CodeNotFound, format, args...)
}

func InvalidArgumentError(format string, args ...interface{}) *DomainError {
	return NewDomainError(CodeInvalidArgument, format, args...)
}

func InvalidStateError(format string, args ...interface{}) *DomainError {
	return NewDomainError(CodeInvalidState, format, args...)
}

func ForbiddenError(format string, args ...interface{}) *DomainError {
	return NewDomainError(CodeForbidden, format, args...)
}

func ConflictError(format string, args ...interface{}) *DomainError {
	return NewDomainError(CodeConflict, format, args...)
}

func ExternalError(format string, args ...interface{}) *DomainError {
	return NewDomainError(CodeExternal, format, args...)
}

// HTTPStatus maps a domain error code to an HTTP status. Unknown errors map to 500.
func HTTPStatus(err error) int {
	var de *DomainError
	if !errors.As(err, &de) {
		return http.StatusInternalServerError
	}
	switch de.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeInvalidState:
		return http.StatusUnprocessableEntity
	case CodeForbidden:
		return http.StatusForbidden
	case CodeConflict:
		return http.StatusConflict
	case CodeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RespondError sends a standardized JSON error response.
func RespondError(c *gin.Context, err error) {
	logger := GetLogger()
	status := HTTPStatus(err)

	message := "Internal server error"
	var de *DomainError
	if errors.As(err, &de) {
		message = de.Message
		logger.Warn("request failed", zap.String("code", de.Code), zap.String("message", de.Message))
	} else {
		logger.Error("request failed", zap.Error(err))
	}

	c.JSON(status, gin.H{"success": false, "message": message})
}

// ErrorHandler is a middleware to catch panics and return structured errors.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger := GetLogger()
				logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"message": "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
