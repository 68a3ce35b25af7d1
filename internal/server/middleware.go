package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"allocation-tracker/internal/allocationerrors"
	"allocation-tracker/internal/auth"
	"allocation-tracker/internal/metrics"
	"allocation-tracker/internal/throttle"
	"allocation-tracker/services/allocation/helpers"
	"allocation-tracker/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	fields := map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	}
	if userID := c.GetString(helpers.UserIDKey); userID != "" {
		fields["user_id"] = userID
	}
	utils.Info("HTTP Request", fields)
}

// AuthMiddleware verifies the bearer token and stores the caller's id and role in the context
func AuthMiddleware(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			utils.AbortWithError(c, http.StatusUnauthorized, errors.New("missing bearer token"), "Unauthorized", "")
			return
		}

		claims, err := verifier.Parse(strings.TrimSpace(token))
		if err != nil {
			utils.AbortWithError(c, http.StatusUnauthorized, auth.ErrInvalidToken, "Unauthorized", "")
			utils.Warn("AuthMiddleware: token rejected", map[string]any{"path": c.Request.URL.Path, "error": err.Error()})
			return
		}

		c.Set(helpers.UserIDKey, claims.Sub)
		c.Set(helpers.RoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not one of roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, role := helpers.CurrentUser(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		utils.AbortWithError(c, http.StatusForbidden, errors.New("insufficient role"), "Forbidden", "")
	}
}

// ThrottleMiddleware limits each user to the limiter's budget. A failing limiter lets the request through.
func ThrottleMiddleware(limiter throttle.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := helpers.CurrentUser(c)
		allowed, err := limiter.Allow(c.Request.Context(), userID)
		if err != nil {
			utils.Warn("ThrottleMiddleware: limiter unavailable, allowing request", map[string]any{"user_id": userID, "error": err.Error()})
			c.Next()
			return
		}
		if !allowed {
			metrics.RecordThrottled()
			rejected := allocationerrors.New(allocationerrors.ErrRateLimited, allocationerrors.ReasonRateLimited, "Too many requests, slow down")
			status, message, reason := helpers.MapErrorToHTTP(rejected)
			utils.AbortWithError(c, status, rejected, message, reason)
			utils.Warn("ThrottleMiddleware: request throttled", map[string]any{"user_id": userID, "path": c.Request.URL.Path})
			return
		}
		c.Next()
	}
}
