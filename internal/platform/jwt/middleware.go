package jwtmw

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"message_backend/internal/feature/auth/domain/entity"
)

// ContextClaims is the gin context key holding the decoded entity.ClaimSet.
const ContextClaims = "claims"

// Parser decodes a bearer token into its claim set.
type Parser interface {
	Parse(tokenStr string) (entity.ClaimSet, error)
}

// AuthRequired returns a Gin middleware function that validates bearer tokens
// and restricts access to authenticated users only. Rejected requests get a
// 401 pointing at signInPath.
func AuthRequired(parser Parser, signInPath string) gin.HandlerFunc {
	unauthorized := func(c *gin.Context, msg string) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg, "sign_in": signInPath})
	}

	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			unauthorized(c, "missing bearer token")
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Verify signature, algorithm and expiry
		claims, err := parser.Parse(tokenStr)
		if err != nil {
			slog.Debug("bearer token rejected", "error", err, "remote_addr", c.ClientIP())
			unauthorized(c, "invalid token")
			return
		}

		// 3. Hand the claims to downstream handlers
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the claims stored by AuthRequired.
func ClaimsFromContext(c *gin.Context) (entity.ClaimSet, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return entity.ClaimSet{}, false
	}
	claims, ok := v.(entity.ClaimSet)
	return claims, ok
}
