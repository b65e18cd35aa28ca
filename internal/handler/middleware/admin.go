package middleware

import (
	"github.com/gin-gonic/gin"

	"ourhour/weddinghub/internal/model"
	"ourhour/weddinghub/pkg/response"
)

// AdminAuth checks that the authenticated user carries the ADMIN role.
// Must be used after JWTAuth middleware.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			response.Unauthorized(c, "missing authentication")
			c.Abort()
			return
		}

		if claims.Role != string(model.UserRoleAdmin) {
			response.Forbidden(c, "admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
