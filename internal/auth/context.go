package auth

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetOperatorID helper - the gateway in front of this service authenticates
// the operator and forwards the numeric user id in a header.
func GetOperatorID(c *gin.Context) *int64 {
	// Check if added to context by middleware
	if val, ok := c.Get("user_id"); ok {
		if id, ok := val.(int64); ok {
			return &id
		}
	}

	// Fallback to the forwarded header
	if raw := c.GetHeader("X-User-Id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return &id
		}
	}
	return nil
}
