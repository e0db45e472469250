package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/acadflow/academy-api/internal/api/handler/v1/response"
	"github.com/acadflow/academy-api/internal/domain"
)

// IdentityKey is the gin context key under which the authenticated
// caller's identity is stored.
const IdentityKey = "identity"

type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
}

// Authenticate resolves the Authorization header to an identity and
// aborts with 401 when the token is missing, unknown or expired.
func Authenticate(auth SessionAuthenticator) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := extractToken(ctx.GetHeader("Authorization"))
		if token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized())
			return
		}

		identity, err := auth.Authenticate(ctx, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized())
			return
		}

		ctx.Set(IdentityKey, identity)
		ctx.Next()
	}
}

// extractToken accepts both "Bearer <token>" and a raw token.
func extractToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}

	return header
}
