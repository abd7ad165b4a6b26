package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mkragh/cereald/internal/common"
	"github.com/mkragh/cereald/internal/server/auth"
)

// claimsContextKey is the gin context key under which authenticate stores
// the verified claims for downstream handlers.
const claimsContextKey = "authClaims"

// authenticate verifies the bearer token: signature, issuer, audience and
// expiry. Requests without a valid token are rejected with 401 before any
// handler runs.
func (s *HTTPServer) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		claims, err := auth.ParseToken(tokenString, s.jwtSecret, s.jwtIssuer, s.jwtAudience)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// requireRole rejects with 403 when the authenticated token's role claim
// does not match. Runs after authenticate, so a missing claim means a wiring
// mistake rather than a client error.
func (s *HTTPServer) requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(claimsContextKey)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, ok := v.(*auth.Claims)
		if !ok || claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": common.ErrorForbidden.Error()})
			return
		}

		c.Next()
	}
}
