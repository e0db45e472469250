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

type UserService interface {
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleCreateUser godoc
//
//	@Summary	Provision a staff or student account
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		request	body		request.CreateUserRequest	true	"account"
//	@Success	201		{object}	domain.User
//	@Failure	400		{object}	response.Err
//	@Failure	403		{object}	response.Err
//	@Failure	409		{object}	response.Err
//	@Router		/users [post]
//	@Security	BearerAuth
func (h *UserHandler) HandleCreateUser(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return
	}
	if identity.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("only admins may provision accounts")))
		return
	}

	var req request.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.CreateUser(ctx, domain.User{
		Username:  req.Username,
		Password:  req.Password,
		Role:      domain.Role(req.Role),
		StudentID: req.StudentID,
	})
	if err != nil {
		if errors.Is(err, service.ErrUsernameExists) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.CreateUser -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, user)
}
