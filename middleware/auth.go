// middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DC111-ui/hss-storage-platform/models"
	"github.com/DC111-ui/hss-storage-platform/utils"
)

// Context keys set by the auth middleware.
const (
	ContextEmail = "authEmail"
	ContextRole  = "authRole"
)

// JWTAuthMiddleware validates the bearer token and, when a token cache is
// provided, checks that this deployment actually issued it. The resolved
// role is stored on the context for role gates downstream.
func JWTAuthMiddleware(cache utils.TokenCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		email, role, err := utils.ExtractClaims(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if cache != nil {
			computedHash := utils.HashToken(tokenString)
			if !cache.Known(c.Request.Context(), computedHash) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch or session expired"})
				return
			}
		}

		c.Set(ContextEmail, email)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// RequireRoles gates a route group to the given roles. It trusts the role
// claim resolved by JWTAuthMiddleware; the X-HSS-Role header is advisory
// only and never widens access.
func RequireRoles(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(ContextRole)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		current, _ := role.(models.Role)
		for _, a := range allowed {
			if current == a {
				c.Next()
				return
			}
		}
		utils.JSONError(c, http.StatusForbidden, "forbidden", "Insufficient permissions",
			"required_roles="+rolesString(allowed))
		c.Abort()
	}
}

func rolesString(roles []models.Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ",")
}
