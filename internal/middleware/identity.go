// Package middleware carries the caller identity supplied by the upstream
// session/auth layer into the request context. This service trusts the
// gateway that sets the headers; it performs no authentication itself.
package middleware

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
)

type contextKey string

const (
	userIDKey  contextKey = "user_id"
	isAdminKey contextKey = "is_admin"

	headerUserID = "X-User-ID"
	headerRole   = "X-User-Role"
)

// Identity copies X-User-ID and X-User-Role into the request context.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if raw := c.GetHeader(headerUserID); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				ctx = context.WithValue(ctx, userIDKey, id)
			}
		}
		if c.GetHeader(headerRole) == "admin" {
			ctx = context.WithValue(ctx, isAdminKey, true)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

func IsAdmin(ctx context.Context) bool {
	admin, _ := ctx.Value(isAdminKey).(bool)
	return admin
}
