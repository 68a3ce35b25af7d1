package helpers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"allocation-tracker/internal/allocationerrors"
	"allocation-tracker/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware
const (
	UserIDKey = "userID"
	RoleKey   = "role"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload", string(allocationerrors.ReasonInvalidInput))
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code, client message and reason code.
// Unclassified errors never leak their text to the client.
func MapErrorToHTTP(err error) (int, string, string) {
	message, classified := allocationerrors.MessageOf(err)
	reason := string(allocationerrors.ReasonOf(err))

	switch {
	case errors.Is(err, allocationerrors.ErrValidation):
		return http.StatusBadRequest, message, reason
	case errors.Is(err, allocationerrors.ErrNotFound):
		return http.StatusNotFound, message, reason
	case errors.Is(err, allocationerrors.ErrPolicyViolation):
		return http.StatusUnprocessableEntity, message, reason
	case errors.Is(err, allocationerrors.ErrDuplicateSubmission), errors.Is(err, allocationerrors.ErrConflict):
		return http.StatusConflict, message, reason
	case errors.Is(err, allocationerrors.ErrRateLimited):
		return http.StatusTooManyRequests, message, reason
	case errors.Is(err, allocationerrors.ErrTransientFailure):
		return http.StatusServiceUnavailable, message, reason
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "request timed out", ""
	case classified:
		return http.StatusBadRequest, message, reason
	default:
		return http.StatusInternalServerError, "internal server error", ""
	}
}

// RespondError writes the error envelope for err and logs it with fields; server-side failures log at error level
func RespondError(c *gin.Context, handlerName, logMessage string, err error, fields map[string]any) {
	status, message, reason := MapErrorToHTTP(err)
	utils.JSONError(c, status, errors.New(message), message, reason)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["status"] = status
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": "+logMessage, fields)
		return
	}
	utils.Warn(handlerName+": "+logMessage, fields)
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}

// RequestContext bounds the work of one request; a zero timeout only inherits the client's cancellation
func RequestContext(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}

// CurrentUser returns the authenticated user id and role
func CurrentUser(c *gin.Context) (string, string) {
	return c.GetString(UserIDKey), c.GetString(RoleKey)
}
