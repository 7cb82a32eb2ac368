package auth

import "github.com/gin-gonic/gin"

// Context keys set by AuthRequired and read by handlers.
const (
	ctxUserIDKey = "authUserID"
	ctxEmailKey  = "authUserEmail"
)

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get(ctxUserIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetUserEmail returns the authenticated user's email or empty string.
func GetUserEmail(c *gin.Context) string {
	if v, ok := c.Get(ctxEmailKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
