package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acadflow/academy-api/internal/api/handler/v1/request"
	"github.com/acadflow/academy-api/internal/api/handler/v1/response"
	"github.com/acadflow/academy-api/internal/domain"
	"github.com/acadflow/academy-api/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (domain.User, domain.Session, error)
	Logout(ctx context.Context, token string) error
	GetUser(ctx context.Context, id string) (domain.User, error)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

// HandleLogin godoc
//
//	@Summary	Exchange credentials for a session token
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		request.LoginRequest	true	"credentials"
//	@Success	200		{object}	response.LoginResponse
//	@Failure	400		{object}	response.Err
//	@Failure	401		{object}	response.Err
//	@Router		/auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	var req request.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, session, err := h.svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.RenderErr(ctx, response.ErrUnauthorized())
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.Login -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		User:      user,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
	})
}

// HandleLogout godoc
//
//	@Summary	Revoke the current session
//	@Tags		auth
//	@Produce	json
//	@Success	204
//	@Failure	401	{object}	response.Err
//	@Router		/auth/logout [delete]
//	@Security	BearerAuth
func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return
	}

	if err := h.svc.Logout(ctx, identity.Token); err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.Logout -> %w", err)))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleMe godoc
//
//	@Summary	Return the authenticated user
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	domain.User
//	@Failure	401	{object}	response.Err
//	@Router		/auth/me [get]
//	@Security	BearerAuth
func (h *AuthHandler) HandleMe(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return
	}

	user, err := h.svc.GetUser(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrUnauthorized())
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.GetUser -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, user)
}
