package middleware

import (
	"context"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey is the key under which the authenticated caller's id is stored.
// Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// userRoleKey is the key under which the caller's role is stored.
const userRoleKey = contextKey("userRole")

// GetUserIDFromContext retrieves the authenticated user id from the Gin
// context, checking the request context as well.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		if userID, ok := v.(string); ok {
			return userID, true
		}
		return "", false
	}
	if v := c.Request.Context().Value(userIDKey); v != nil {
		if userID, ok := v.(string); ok {
			return userID, true
		}
	}
	return "", false
}

// GetUserRoleFromContext retrieves the caller's role from the Gin context.
func GetUserRoleFromContext(c *gin.Context) (domain.UserRole, bool) {
	if v, exists := c.Get(string(userRoleKey)); exists {
		if role, ok := v.(domain.UserRole); ok {
			return role, true
		}
		return "", false
	}
	if v := c.Request.Context().Value(userRoleKey); v != nil {
		if role, ok := v.(domain.UserRole); ok {
			return role, true
		}
	}
	return "", false
}

// GetUserIDFromCtx retrieves the caller id from a standard context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
