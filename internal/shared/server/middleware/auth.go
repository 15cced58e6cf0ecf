package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobapply-backend/internal/shared/auth"
	"jobapply-backend/internal/shared/server/respond"
)

const (
	userEmailKey = "userEmail"
	anonymousKey = "isAnonymous"
)

// Auth resolves the caller's identity from a bearer token. A missing or
// invalid token does not abort the request; the caller is marked anonymous
// and protected handlers decide whether to reject. A malformed Authorization
// header is rejected outright.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.Set(anonymousKey, true)
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims, err := auth.Verify(token)
		if err != nil || auth.IsExpired(claims) || claims.Purpose != "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		c.Set(userEmailKey, claims.Email)
		c.Set(anonymousKey, false)
		c.Next()
	}
}

// UserEmailFromContext fetches the user email set by the auth middleware.
func UserEmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userEmailKey)
	if email, ok := val.(string); ok {
		return email
	}
	return ""
}

// IsAnonymous reports whether the request carries no verified identity.
func IsAnonymous(c *gin.Context) bool {
	if c == nil {
		return true
	}
	val, ok := c.Get(anonymousKey)
	if !ok {
		return true
	}
	anon, ok := val.(bool)
	return !ok || anon
}
