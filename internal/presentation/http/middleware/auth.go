package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tofrito/till-api/internal/presentation/http/dto/response"
	"github.com/tofrito/till-api/pkg/utils"
)

// ManagerAuthMiddleware guards the manager-only endpoints (reports,
// cancellation, reset) with a manager session token.
func ManagerAuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateManagerToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("manager_session_id", claims.SessionID)
		c.Next()
	}
}
