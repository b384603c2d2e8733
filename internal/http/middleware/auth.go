package middleware

import (
	"net/http"
	"slices"
	"strings"

	"transitbook/internal/auth"
	"transitbook/internal/domain"

	"github.com/gin-gonic/gin"
)

const claimsKey = "auth_claims"

// Authenticate parses a bearer token when one is sent and stores its claims.
// Requests without a token pass through; RequireRoles decides access.
func Authenticate(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			c.Next()
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "authorization header must be a bearer token")
			return
		}
		claims, err := auth.Parse(secret, strings.TrimSpace(token))
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRoles rejects requests without a valid token or with a role not in roles.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentUser(c)
		if !ok {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "login required")
			return
		}
		if !slices.Contains(roles, claims.Role) {
			abortJSON(c, http.StatusForbidden, "forbidden", "role "+string(claims.Role)+" may not access this resource")
			return
		}
		c.Next()
	}
}

// CurrentUser returns the claims stored by Authenticate.
func CurrentUser(c *gin.Context) (auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := v.(auth.Claims)
	return claims, ok
}

func abortJSON(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      message,
		"code":       code,
		"message":    message,
		"request_id": GetRequestID(c),
	})
}
