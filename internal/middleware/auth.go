package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/utils"
)

// Context keys set for downstream handlers.
const (
	CtxUserID = "userID"
	CtxRole   = "userRole"
)

// RequireRole gates a route on a verified token carrying the given role.
// Missing or invalid tokens are 401; a valid token with the wrong role is
// 403. The token's embedded role is authoritative, never the request body.
func RequireRole(tokens *utils.TokenService, required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "msg": "authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.Validate(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "msg": "invalid token"})
			return
		}

		if claims.Role != required {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false})
			return
		}

		// Set user info in the context for handlers to use
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)

		c.Next()
	}
}
