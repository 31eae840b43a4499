package middleware

import (
	"net/http"
	"strings"

	"velora/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the bearer token and stores the authenticated
// subject on the context. Handlers read it as the clientID or professionalID
// depending on the route group.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "Missing or invalid Authorization header")
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("subjectID", subject)
		c.Next()
	}
}

// SubjectID returns the authenticated subject set by JWTAuthMiddleware.
func SubjectID(c *gin.Context) string {
	if v, ok := c.Get("subjectID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
