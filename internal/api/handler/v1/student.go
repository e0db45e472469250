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

type StudentService interface {
	ListStudents(ctx context.Context) ([]domain.Student, error)
	GetStudent(ctx context.Context, id string) (domain.Student, error)
	CreateStudent(ctx context.Context, student domain.Student) (domain.Student, error)
	UpdateStudent(ctx context.Context, student domain.Student) (domain.Student, error)
	DeleteStudent(ctx context.Context, id string) error
	UploadProof(ctx context.Context, caller domain.Identity, studentID string, slot domain.InstallmentSlot, proofURL string) (domain.Student, error)
	ReviewProof(ctx context.Context, studentID string, slot domain.InstallmentSlot, decision domain.ReviewDecision) (domain.Student, error)
	ToggleInstallment(ctx context.Context, caller domain.Identity, studentID string, slot domain.InstallmentSlot) (domain.Student, error)
}

type StudentHandler struct {
	svc StudentService
}

func NewStudentHandler(svc StudentService) *StudentHandler {
	return &StudentHandler{
		svc: svc,
	}
}

// HandleListStudents godoc
//
//	@Summary	List students with derived payment summaries
//	@Tags		students
//	@Produce	json
//	@Success	200	{array}		response.StudentResponse
//	@Failure	403	{object}	response.Err
//	@Router		/students [get]
//	@Security	BearerAuth
func (h *StudentHandler) HandleListStudents(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return
	}
	if !identity.Role.HasRole(domain.RoleTeacher) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("staff access required")))
		return
	}

	students, err := h.svc.ListStudents(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.ListStudents -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, response.NewStudentListResponse(students))
}

// HandleGetStudent godoc
//
//	@Summary	Get one student
//	@Tags		students
//	@Produce	json
//	@Param		id	path		string	true	"student id"
//	@Success	200	{object}	response.StudentResponse
//	@Failure	403	{object}	response.Err
//	@Failure	404	{object}	response.Err
//	@Router		/students/{id} [get]
//	@Security	BearerAuth
func (h *StudentHandler) HandleGetStudent(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return
	}

	id := ctx.Param("id")
	if !identity.Role.HasRole(domain.RoleTeacher) && !identity.Owns(id) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("students may only view their own record")))
		return
	}

	student, err := h.svc.GetStudent(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("student", "id", id))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.GetStudent -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, response.NewStudentResponse(student))
}

// HandleCreateStudent godoc
//
//	@Summary	Enroll a student
//	@Tags		students
//	@Accept		json
//	@Produce	json
//	@Param		request	body		request.CreateStudentRequest	true	"student"
//	@Success	201		{object}	response.StudentResponse
//	@Failure	400		{object}	response.Err
//	@Failure	403		{object}	response.Err
//	@Router		/students [post]
//	@Security	BearerAuth
func (h *StudentHandler) HandleCreateStudent(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return
	}
	if !identity.Role.HasRole(domain.RoleTeacher) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("staff access required")))
		return
	}

	var req request.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	student, err := h.svc.CreateStudent(ctx, domain.Student{
		Name:  req.Name,
		Phone: req.Phone,
		Plan:  domain.Plan(req.Plan),
	})
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.CreateStudent -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewStudentResponse(student))
}

// HandleUpdateStudent godoc
//
//	@Summary	Update a student's profile
//	@Tags		students
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"student id"
//	@Param		request	body		request.UpdateStudentRequest	true	"student"
//	@Success	200		{object}	response.StudentResponse
//	@Failure	400		{object}	response.Err
//	@Failure	403		{object}	response.Err
//	@Failure	404		{object}	response.Err
//	@Router		/students/{id} [put]
//	@Security	BearerAuth
func (h *StudentHandler) HandleUpdateStudent(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return
	}
	if !identity.Role.HasRole(domain.RoleTeacher) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("staff access required")))
		return
	}

	var req request.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	id := ctx.Param("id")
	student, err := h.svc.UpdateStudent(ctx, domain.Student{
		ID:    id,
		Name:  req.Name,
		Phone: req.Phone,
		Plan:  domain.Plan(req.Plan),
	})
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("student", "id", id))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.UpdateStudent -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, response.NewStudentResponse(student))
}

// HandleDeleteStudent godoc
//
//	@Summary	Delete a student and dependent classroom records
//	@Tags		students
//	@Produce	json
//	@Param		id	path	string	true	"student id"
//	@Success	204
//	@Failure	403	{object}	response.Err
//	@Failure	404	{object}	response.Err
//	@Router		/students/{id} [delete]
//	@Security	BearerAuth
func (h *StudentHandler) HandleDeleteStudent(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return
	}
	if !identity.Role.HasRole(domain.RoleTeacher) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("staff access required")))
		return
	}

	id := ctx.Param("id")
	if err := h.svc.DeleteStudent(ctx, id); err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("student", "id", id))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.DeleteStudent -> %w", err)))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUploadProof godoc
//
//	@Summary	Submit a payment proof for an installment slot
//	@Tags		students
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"student id"
//	@Param		slot	path		string						true	"installment slot"	Enums(inst1, inst2, inst3)
//	@Param		request	body		request.UploadProofRequest	true	"proof"
//	@Success	200		{object}	response.StudentResponse
//	@Failure	400		{object}	response.Err
//	@Failure	403		{object}	response.Err
//	@Failure	404		{object}	response.Err
//	@Router		/students/{id}/installments/{slot}/proof [put]
//	@Security	BearerAuth
func (h *StudentHandler) HandleUploadProof(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return
	}

	var req request.UploadProofRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	id := ctx.Param("id")
	slot := domain.InstallmentSlot(ctx.Param("slot"))

	student, err := h.svc.UploadProof(ctx, identity, id, slot, req.ProofURL)
	if err != nil {
		h.renderInstallmentErr(ctx, id, err, "svc.UploadProof")
		return
	}

	ctx.JSON(http.StatusOK, response.NewStudentResponse(student))
}

// HandleReviewProof godoc
//
//	@Summary	Accept or reject a pending payment proof
//	@Tags		students
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"student id"
//	@Param		slot	path		string						true	"installment slot"	Enums(inst1, inst2, inst3)
//	@Param		request	body		request.ReviewProofRequest	true	"decision"
//	@Success	200		{object}	response.StudentResponse
//	@Failure	400		{object}	response.Err
//	@Failure	403		{object}	response.Err
//	@Failure	404		{object}	response.Err
//	@Failure	409		{object}	response.Err
//	@Router		/students/{id}/installments/{slot}/review [post]
//	@Security	BearerAuth
func (h *StudentHandler) HandleReviewProof(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return
	}
	if !identity.Role.HasRole(domain.RoleTeacher) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("staff access required")))
		return
	}

	var req request.ReviewProofRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	id := ctx.Param("id")
	slot := domain.InstallmentSlot(ctx.Param("slot"))

	student, err := h.svc.ReviewProof(ctx, id, slot, domain.ReviewDecision(req.Decision))
	if err != nil {
		h.renderInstallmentErr(ctx, id, err, "svc.ReviewProof")
		return
	}

	ctx.JSON(http.StatusOK, response.NewStudentResponse(student))
}

// HandleToggleInstallment godoc
//
//	@Summary	Flip an installment between PAID and UNPAID
//	@Tags		students
//	@Produce	json
//	@Param		id		path		string	true	"student id"
//	@Param		slot	path		string	true	"installment slot"	Enums(inst1, inst2, inst3)
//	@Success	200		{object}	response.StudentResponse
//	@Failure	403		{object}	response.Err
//	@Failure	404		{object}	response.Err
//	@Failure	409		{object}	response.Err
//	@Router		/students/{id}/installments/{slot}/toggle [post]
//	@Security	BearerAuth
func (h *StudentHandler) HandleToggleInstallment(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return
	}
	if identity.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("only admins may toggle installments")))
		return
	}

	id := ctx.Param("id")
	slot := domain.InstallmentSlot(ctx.Param("slot"))

	student, err := h.svc.ToggleInstallment(ctx, identity, id, slot)
	if err != nil {
		h.renderInstallmentErr(ctx, id, err, "svc.ToggleInstallment")
		return
	}

	ctx.JSON(http.StatusOK, response.NewStudentResponse(student))
}

// renderInstallmentErr maps the shared error surface of the
// installment operations onto HTTP statuses.
func (h *StudentHandler) renderInstallmentErr(ctx *gin.Context, studentID string, err error, op string) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.RenderErr(ctx, response.ErrNotFound("student", "id", studentID))
	case errors.Is(err, service.ErrNotRecordOwner):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	case errors.Is(err, domain.ErrUnknownSlot), errors.Is(err, domain.ErrInvalidDecision):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, domain.ErrNotReviewable),
		errors.Is(err, domain.ErrSlotPendingReview),
		errors.Is(err, domain.ErrSlotNotTogglable):
		response.RenderErr(ctx, response.ErrConflict(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
	}
}
