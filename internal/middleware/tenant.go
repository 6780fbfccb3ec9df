package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	tenantIDKey = contextKey("tenantID")
	userIDKey   = contextKey("userID")

	// Headers set by the upstream gateway, which has already authenticated
	// and authorized the caller. No permission logic lives in this service.
	tenantIDHeader = "X-Tenant-ID"
	userIDHeader   = "X-User-ID"
)

// TenantResolverMiddleware extracts the tenant and user identity resolved by
// the upstream gateway and stores them in the Gin context. Requests without a
// tenant are rejected: every read and write in this service is tenant-scoped.
func TenantResolverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(tenantIDHeader)
		if tenantID == "" {
			GetLoggerFromCtx(c.Request.Context()).Warn("Request missing tenant header",
				slog.String("header", tenantIDHeader))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing tenant identity"})
			return
		}
		c.Set(string(tenantIDKey), tenantID)

		if userID := c.GetHeader(userIDHeader); userID != "" {
			c.Set(string(userIDKey), userID)
		}

		c.Next()
	}
}

// GetTenantIDFromContext retrieves the resolved tenant ID from the Gin context.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(tenantIDKey))
	if !exists {
		return "", false
	}
	tenantID, ok := val.(string)
	return tenantID, ok && tenantID != ""
}

// GetUserIDFromContext retrieves the acting user ID from the Gin context.
// Falls back to the tenant ID so audit fields are never empty when the
// gateway does not forward a user.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(userIDKey))
	if exists {
		if userID, ok := val.(string); ok && userID != "" {
			return userID, true
		}
	}
	return GetTenantIDFromContext(c)
}
