package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/group-study-api/internal/models"
	appErrors "github.com/noah-isme/group-study-api/pkg/errors"
	"github.com/noah-isme/group-study-api/pkg/response"
)

// ContextUserKey is the gin context key storing token claims.
const ContextUserKey = "currentUser"

// TokenVerifier validates a signed credential.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*models.TokenClaims, error)
}

// CookieAuth protects routes by requiring a valid token in the named cookie.
func CookieAuth(verifier TokenVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			response.Abort(c, appErrors.ErrUnauthorized)
			return
		}

		claims, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			response.Abort(c, err)
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the claims bound by CookieAuth, if any.
func ClaimsFromContext(c *gin.Context) *models.TokenClaims {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.TokenClaims)
	if !ok {
		return nil
	}
	return claims
}
