package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadflow/academy-api/internal/api/handler/v1/response"
	"github.com/acadflow/academy-api/internal/domain"
	"github.com/acadflow/academy-api/internal/service"
)

type DashboardService interface {
	Stats(ctx context.Context) (service.DashboardStats, error)
}

type DashboardHandler struct {
	svc DashboardService
}

func NewDashboardHandler(svc DashboardService) *DashboardHandler {
	return &DashboardHandler{
		svc: svc,
	}
}

// HandleStats godoc
//
//	@Summary	Academy-wide financial and CRM roll-up
//	@Tags		dashboard
//	@Produce	json
//	@Success	200	{object}	service.DashboardStats
//	@Failure	403	{object}	response.Err
//	@Router		/dashboard [get]
//	@Security	BearerAuth
func (h *DashboardHandler) HandleStats(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return
	}
	if !identity.Role.HasRole(domain.RoleTeacher) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("staff access required")))
		return
	}

	stats, err := h.svc.Stats(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.Stats -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
