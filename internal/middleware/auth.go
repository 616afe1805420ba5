package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/openedu/conductor-api/internal/auth"
	"github.com/openedu/conductor-api/internal/constants"
	apierrors "github.com/openedu/conductor-api/internal/errors"
)

// TokenVerifier validates a bearer token and returns its claims
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequireAuth checks the Authorization bearer token
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			apierrors.Respond(c, auth.ErrMissingToken)
			c.Abort()
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			apierrors.Respond(c, err)
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, claims.UUID)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
