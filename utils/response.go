package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends a structured JSON response
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends a structured error response. reason is omitted when empty.
func JSONError(c *gin.Context, status int, err error, message string, reason string) {
	body := gin.H{
		"status":  status,
		"message": message,
		"error":   err.Error(),
	}
	if reason != "" {
		body["reason"] = reason
	}
	c.JSON(status, body)
}

// AbortWithError sends the error envelope and stops the handler chain
func AbortWithError(c *gin.Context, status int, err error, message string, reason string) {
	JSONError(c, status, err, message, reason)
	c.Abort()
}
