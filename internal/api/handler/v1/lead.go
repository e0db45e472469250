package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadflow/academy-api/internal/api/handler/v1/request"
	"github.com/acadflow/academy-api/internal/api/handler/v1/response"
	"github.com/acadflow/academy-api/internal/domain"
	"github.com/acadflow/academy-api/internal/service"
)

type LeadService interface {
	ListLeads(ctx context.Context) ([]domain.Lead, error)
	GetLead(ctx context.Context, id string) (domain.Lead, error)
	CreateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error)
	UpdateLead(ctx context.Context, lead domain.Lead, confirmConversion bool) (domain.Lead, error)
	DeleteLead(ctx context.Context, id string) error
}

type LeadHandler struct {
	svc LeadService
}

func NewLeadHandler(svc LeadService) *LeadHandler {
	return &LeadHandler{
		svc: svc,
	}
}

// requireSalesAccess aborts unless the caller may work the lead
// pipeline.
func (h *LeadHandler) requireSalesAccess(ctx *gin.Context) (domain.Identity, bool) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return domain.Identity{}, false
	}
	if !identity.Role.HasRole(domain.RoleSales) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("sales access required")))
		return domain.Identity{}, false
	}

	return identity, true
}

// HandleListLeads godoc
//
//	@Summary	List leads
//	@Tags		leads
//	@Produce	json
//	@Success	200	{array}		domain.Lead
//	@Failure	403	{object}	response.Err
//	@Router		/leads [get]
//	@Security	BearerAuth
func (h *LeadHandler) HandleListLeads(ctx *gin.Context) {
	if _, ok := h.requireSalesAccess(ctx); !ok {
		return
	}

	leads, err := h.svc.ListLeads(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.ListLeads -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, leads)
}

// HandleGetLead godoc
//
//	@Summary	Get one lead
//	@Tags		leads
//	@Produce	json
//	@Param		id	path		string	true	"lead id"
//	@Success	200	{object}	domain.Lead
//	@Failure	403	{object}	response.Err
//	@Failure	404	{object}	response.Err
//	@Router		/leads/{id} [get]
//	@Security	BearerAuth
func (h *LeadHandler) HandleGetLead(ctx *gin.Context) {
	if _, ok := h.requireSalesAccess(ctx); !ok {
		return
	}

	id := ctx.Param("id")
	lead, err := h.svc.GetLead(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("lead", "id", id))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.GetLead -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, lead)
}

// HandleCreateLead godoc
//
//	@Summary	Register a lead
//	@Tags		leads
//	@Accept		json
//	@Produce	json
//	@Param		request	body		request.CreateLeadRequest	true	"lead"
//	@Success	201		{object}	domain.Lead
//	@Failure	400		{object}	response.Err
//	@Failure	403		{object}	response.Err
//	@Router		/leads [post]
//	@Security	BearerAuth
func (h *LeadHandler) HandleCreateLead(ctx *gin.Context) {
	if _, ok := h.requireSalesAccess(ctx); !ok {
		return
	}

	var req request.CreateLeadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	lead, err := h.svc.CreateLead(ctx, domain.Lead{
		Name:   req.Name,
		Phone:  req.Phone,
		Source: req.Source,
		Notes:  req.Notes,
	})
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.CreateLead -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, lead)
}

// HandleUpdateLead godoc
//
//	@Summary	Update a lead, optionally converting it to a student
//	@Tags		leads
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"lead id"
//	@Param		request	body		request.UpdateLeadRequest	true	"lead"
//	@Success	200		{object}	domain.Lead
//	@Failure	400		{object}	response.Err
//	@Failure	403		{object}	response.Err
//	@Failure	404		{object}	response.Err
//	@Failure	409		{object}	response.Err
//	@Router		/leads/{id} [put]
//	@Security	BearerAuth
func (h *LeadHandler) HandleUpdateLead(ctx *gin.Context) {
	if _, ok := h.requireSalesAccess(ctx); !ok {
		return
	}

	var req request.UpdateLeadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	id := ctx.Param("id")
	lead, err := h.svc.UpdateLead(ctx, domain.Lead{
		ID:     id,
		Name:   req.Name,
		Phone:  req.Phone,
		Status: domain.LeadStatus(req.Status),
		Source: req.Source,
		Notes:  req.Notes,
	}, req.ConfirmConversion)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLeadNotFound):
			response.RenderErr(ctx, response.ErrNotFound("lead", "id", id))
		case errors.Is(err, service.ErrLeadConverted):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrConversionNotConfirmed):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.UpdateLead -> %w", err)))
		}
		return
	}

	ctx.JSON(http.StatusOK, lead)
}

// HandleDeleteLead godoc
//
//	@Summary	Delete a lead
//	@Tags		leads
//	@Produce	json
//	@Param		id	path	string	true	"lead id"
//	@Success	204
//	@Failure	403	{object}	response.Err
//	@Failure	404	{object}	response.Err
//	@Router		/leads/{id} [delete]
//	@Security	BearerAuth
func (h *LeadHandler) HandleDeleteLead(ctx *gin.Context) {
	if _, ok := h.requireSalesAccess(ctx); !ok {
		return
	}

	id := ctx.Param("id")
	if err := h.svc.DeleteLead(ctx, id); err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("lead", "id", id))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.DeleteLead -> %w", err)))
		return
	}

	ctx.Status(http.StatusNoContent)
}
