package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/acadflow/academy-api/internal/api/middleware"
	"github.com/acadflow/academy-api/internal/domain"
)

// identityFromContext returns the authenticated caller set by the
// session middleware.
func identityFromContext(ctx *gin.Context) (domain.Identity, bool) {
	value, ok := ctx.Get(middleware.IdentityKey)
	if !ok {
		return domain.Identity{}, false
	}

	identity, ok := value.(domain.Identity)

	return identity, ok
}
