package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthcheckHandler struct{}

func NewHealthcheckHandler() *HealthcheckHandler {
	return &HealthcheckHandler{}
}

// Healthcheck godoc
//
//	@Summary	Liveness probe
//	@Tags		healthcheck
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/healthcheck [get]
func (h *HealthcheckHandler) Healthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
