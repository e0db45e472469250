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

type ClassroomService interface {
	CreateMaterial(ctx context.Context, material domain.CourseMaterial) (domain.CourseMaterial, error)
	GetMaterial(ctx context.Context, id string) (domain.CourseMaterial, error)
	ListMaterials(ctx context.Context) ([]domain.CourseMaterial, error)
	UpdateMaterial(ctx context.Context, material domain.CourseMaterial) (domain.CourseMaterial, error)
	DeleteMaterial(ctx context.Context, id string) error

	CreateLesson(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error)
	GetLesson(ctx context.Context, id string) (domain.Lesson, error)
	ListLessons(ctx context.Context) ([]domain.Lesson, error)
	UpdateLesson(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error)
	DeleteLesson(ctx context.Context, id string) error

	CreateAssignment(ctx context.Context, assignment domain.Assignment) (domain.Assignment, error)
	GetAssignment(ctx context.Context, id string) (domain.Assignment, error)
	ListAssignments(ctx context.Context) ([]domain.Assignment, error)
	UpdateAssignment(ctx context.Context, assignment domain.Assignment) (domain.Assignment, error)
	DeleteAssignment(ctx context.Context, id string) error

	SubmitAssignment(ctx context.Context, caller domain.Identity, submission domain.Submission) (domain.Submission, error)
	ListSubmissions(ctx context.Context, assignmentID string) ([]domain.Submission, error)

	CreateQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error)
	GetQuiz(ctx context.Context, caller domain.Identity, id string) (domain.Quiz, error)
	ListQuizzes(ctx context.Context, caller domain.Identity) ([]domain.Quiz, error)
	UpdateQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error)
	DeleteQuiz(ctx context.Context, id string) error

	AttemptQuiz(ctx context.Context, caller domain.Identity, quizID string, studentID string, answers []int) (domain.Attempt, error)
	ListAttempts(ctx context.Context, quizID string) ([]domain.Attempt, error)

	RecordProgress(ctx context.Context, progress domain.Progress) (domain.Progress, error)
	ListProgress(ctx context.Context, studentID string) ([]domain.Progress, error)

	RecordGrade(ctx context.Context, grade domain.Grade) (domain.Grade, error)
	ListGrades(ctx context.Context, studentID string) ([]domain.Grade, error)
}

type ClassroomHandler struct {
	svc ClassroomService
}

func NewClassroomHandler(svc ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{
		svc: svc,
	}
}

func (h *ClassroomHandler) requireTeacherAccess(ctx *gin.Context) (domain.Identity, bool) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return domain.Identity{}, false
	}
	if !identity.Role.HasRole(domain.RoleTeacher) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("staff access required")))
		return domain.Identity{}, false
	}

	return identity, true
}

// HandleListMaterials godoc
//
//	@Summary	List course materials
//	@Tags		classroom
//	@Produce	json
//	@Success	200	{array}	domain.CourseMaterial
//	@Router		/materials [get]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleListMaterials(ctx *gin.Context) {
	materials, err := h.svc.ListMaterials(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.ListMaterials -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, materials)
}

// HandleGetMaterial godoc
//
//	@Summary	Get one course material
//	@Tags		classroom
//	@Produce	json
//	@Param		id	path		string	true	"material id"
//	@Success	200	{object}	domain.CourseMaterial
//	@Failure	404	{object}	response.Err
//	@Router		/materials/{id} [get]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleGetMaterial(ctx *gin.Context) {
	id := ctx.Param("id")
	material, err := h.svc.GetMaterial(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrMaterialNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("material", "id", id))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.GetMaterial -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, material)
}

// HandleCreateMaterial godoc
//
//	@Summary	Create a course material
//	@Tags		classroom
//	@Accept		json
//	@Produce	json
//	@Param		request	body		request.MaterialRequest	true	"material"
//	@Success	201		{object}	domain.CourseMaterial
//	@Failure	400		{object}	response.Err
//	@Failure	403		{object}	response.Err
//	@Router		/materials [post]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleCreateMaterial(ctx *gin.Context) {
	if _, ok := h.requireTeacherAccess(ctx); !ok {
		return
	}

	var req request.MaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	material, err := h.svc.CreateMaterial(ctx, domain.CourseMaterial{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		URL:         req.URL,
	})
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.CreateMaterial -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, material)
}

// HandleUpdateMaterial godoc
//
//	@Summary	Update a course material
//	@Tags		classroom
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"material id"
//	@Param		request	body		request.MaterialRequest	true	"material"
//	@Success	200		{object}	domain.CourseMaterial
//	@Failure	400		{object}	response.Err
//	@Failure	403		{object}	response.Err
//	@Failure	404		{object}	response.Err
//	@Router		/materials/{id} [put]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleUpdateMaterial(ctx *gin.Context) {
	if _, ok := h.requireTeacherAccess(ctx); !ok {
		return
	}

	var req request.MaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	id := ctx.Param("id")
	material, err := h.svc.UpdateMaterial(ctx, domain.CourseMaterial{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		URL:         req.URL,
	})
	if err != nil {
		if errors.Is(err, service.ErrMaterialNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("material", "id", id))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.UpdateMaterial -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, material)
}

// HandleDeleteMaterial godoc
//
//	@Summary	Delete a course material
//	@Tags		classroom
//	@Produce	json
//	@Param		id	path	string	true	"material id"
//	@Success	204
//	@Failure	403	{object}	response.Err
//	@Failure	404	{object}	response.Err
//	@Router		/materials/{id} [delete]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleDeleteMaterial(ctx *gin.Context) {
	if _, ok := h.requireTeacherAccess(ctx); !ok {
		return
	}

	id := ctx.Param("id")
	if err := h.svc.DeleteMaterial(ctx, id); err != nil {
		if errors.Is(err, service.ErrMaterialNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("material", "id", id))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.DeleteMaterial -> %w", err)))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListLessons godoc
//
//	@Summary	List lessons
//	@Tags		classroom
//	@Produce	json
//	@Success	200	{array}	domain.Lesson
//	@Router		/lessons [get]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleListLessons(ctx *gin.Context) {
	lessons, err := h.svc.ListLessons(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.ListLessons -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, lessons)
}

// HandleGetLesson godoc
//
//	@Summary	Get one lesson
//	@Tags		classroom
//	@Produce	json
//	@Param		id	path		string	true	"lesson id"
//	@Success	200	{object}	domain.Lesson
//	@Failure	404	{object}	response.Err
//	@Router		/lessons/{id} [get]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleGetLesson(ctx *gin.Context) {
	id := ctx.Param("id")
	lesson, err := h.svc.GetLesson(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("lesson", "id", id))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.GetLesson -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, lesson)
}

// HandleCreateLesson godoc
//
//	@Summary	Create a lesson
//	@Tags		classroom
//	@Accept		json
//	@Produce	json
//	@Param		request	body		request.LessonRequest	true	"lesson"
//	@Success	201		{object}	domain.Lesson
//	@Failure	400		{object}	response.Err
//	@Failure	403		{object}	response.Err
//	@Router		/lessons [post]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleCreateLesson(ctx *gin.Context) {
	if _, ok := h.requireTeacherAccess(ctx); !ok {
		return
	}

	var req request.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	lesson, err := h.svc.CreateLesson(ctx, domain.Lesson{
		Title:      req.Title,
		Content:    req.Content,
		MaterialID: req.MaterialID,
		Position:   req.Position,
	})
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.CreateLesson -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, lesson)
}

// HandleUpdateLesson godoc
//
//	@Summary	Update a lesson
//	@Tags		classroom
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"lesson id"
//	@Param		request	body		request.LessonRequest	true	"lesson"
//	@Success	200		{object}	domain.Lesson
//	@Failure	400		{object}	response.Err
//	@Failure	403		{object}	response.Err
//	@Failure	404		{object}	response.Err
//	@Router		/lessons/{id} [put]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleUpdateLesson(ctx *gin.Context) {
	if _, ok := h.requireTeacherAccess(ctx); !ok {
		return
	}

	var req request.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	id := ctx.Param("id")
	lesson, err := h.svc.UpdateLesson(ctx, domain.Lesson{
		ID:         id,
		Title:      req.Title,
		Content:    req.Content,
		MaterialID: req.MaterialID,
		Position:   req.Position,
	})
	if err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("lesson", "id", id))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.UpdateLesson -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, lesson)
}

// HandleDeleteLesson godoc
//
//	@Summary	Delete a lesson and its progress records
//	@Tags		classroom
//	@Produce	json
//	@Param		id	path	string	true	"lesson id"
//	@Success	204
//	@Failure	403	{object}	response.Err
//	@Failure	404	{object}	response.Err
//	@Router		/lessons/{id} [delete]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleDeleteLesson(ctx *gin.Context) {
	if _, ok := h.requireTeacherAccess(ctx); !ok {
		return
	}

	id := ctx.Param("id")
	if err := h.svc.DeleteLesson(ctx, id); err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("lesson", "id", id))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.DeleteLesson -> %w", err)))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListAssignments godoc
//
//	@Summary	List assignments
//	@Tags		classroom
//	@Produce	json
//	@Success	200	{array}	domain.Assignment
//	@Router		/assignments [get]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleListAssignments(ctx *gin.Context) {
	assignments, err := h.svc.ListAssignments(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.ListAssignments -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, assignments)
}

// HandleGetAssignment godoc
//
//	@Summary	Get one assignment
//	@Tags		classroom
//	@Produce	json
//	@Param		id	path		string	true	"assignment id"
//	@Success	200	{object}	domain.Assignment
//	@Failure	404	{object}	response.Err
//	@Router		/assignments/{id} [get]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleGetAssignment(ctx *gin.Context) {
	id := ctx.Param("id")
	assignment, err := h.svc.GetAssignment(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("assignment", "id", id))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.GetAssignment -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, assignment)
}

// HandleCreateAssignment godoc
//
//	@Summary	Create an assignment
//	@Tags		classroom
//	@Accept		json
//	@Produce	json
//	@Param		request	body		request.AssignmentRequest	true	"assignment"
//	@Success	201		{object}	domain.Assignment
//	@Failure	400		{object}	response.Err
//	@Failure	403		{object}	response.Err
//	@Router		/assignments [post]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleCreateAssignment(ctx *gin.Context) {
	if _, ok := h.requireTeacherAccess(ctx); !ok {
		return
	}

	assignment, ok := h.bindAssignment(ctx)
	if !ok {
		return
	}

	created, err := h.svc.CreateAssignment(ctx, assignment)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.CreateAssignment -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateAssignment godoc
//
//	@Summary	Update an assignment
//	@Tags		classroom
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"assignment id"
//	@Param		request	body		request.AssignmentRequest	true	"assignment"
//	@Success	200		{object}	domain.Assignment
//	@Failure	400		{object}	response.Err
//	@Failure	403		{object}	response.Err
//	@Failure	404		{object}	response.Err
//	@Router		/assignments/{id} [put]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleUpdateAssignment(ctx *gin.Context) {
	if _, ok := h.requireTeacherAccess(ctx); !ok {
		return
	}

	assignment, ok := h.bindAssignment(ctx)
	if !ok {
		return
	}
	assignment.ID = ctx.Param("id")

	updated, err := h.svc.UpdateAssignment(ctx, assignment)
	if err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("assignment", "id", assignment.ID))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.UpdateAssignment -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteAssignment godoc
//
//	@Summary	Delete an assignment with its submissions and grades
//	@Tags		classroom
//	@Produce	json
//	@Param		id	path	string	true	"assignment id"
//	@Success	204
//	@Failure	403	{object}	response.Err
//	@Failure	404	{object}	response.Err
//	@Router		/assignments/{id} [delete]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleDeleteAssignment(ctx *gin.Context) {
	if _, ok := h.requireTeacherAccess(ctx); !ok {
		return
	}

	id := ctx.Param("id")
	if err := h.svc.DeleteAssignment(ctx, id); err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("assignment", "id", id))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.DeleteAssignment -> %w", err)))
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ClassroomHandler) bindAssignment(ctx *gin.Context) (domain.Assignment, bool) {
	var req request.AssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return domain.Assignment{}, false
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return domain.Assignment{}, false
	}

	assignment := domain.Assignment{
		Title:       req.Title,
		Description: req.Description,
		LessonID:    req.LessonID,
	}
	if req.DueAt != "" {
		dueAt, err := time.Parse(time.RFC3339, req.DueAt)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("due_at: %w", err)))
			return domain.Assignment{}, false
		}
		assignment.DueAt = &dueAt
	}

	return assignment, true
}

// HandleSubmitAssignment godoc
//
//	@Summary	Submit work for an assignment
//	@Tags		classroom
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"assignment id"
//	@Param		request	body		request.SubmissionRequest	true	"submission"
//	@Success	201		{object}	domain.Submission
//	@Failure	400		{object}	response.Err
//	@Failure	403		{object}	response.Err
//	@Failure	404		{object}	response.Err
//	@Router		/assignments/{id}/submissions [post]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleSubmitAssignment(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return
	}

	var req request.SubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	assignmentID := ctx.Param("id")
	submission, err := h.svc.SubmitAssignment(ctx, identity, domain.Submission{
		AssignmentID: assignmentID,
		StudentID:    identity.StudentID,
		Content:      req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotRecordOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrAssignmentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("assignment", "id", assignmentID))
		default:
			response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.SubmitAssignment -> %w", err)))
		}
		return
	}

	ctx.JSON(http.StatusCreated, submission)
}

// HandleListSubmissions godoc
//
//	@Summary	List submissions for an assignment
//	@Tags		classroom
//	@Produce	json
//	@Param		id	path	string	true	"assignment id"
//	@Success	200	{array}		domain.Submission
//	@Failure	403	{object}	response.Err
//	@Router		/assignments/{id}/submissions [get]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleListSubmissions(ctx *gin.Context) {
	if _, ok := h.requireTeacherAccess(ctx); !ok {
		return
	}

	submissions, err := h.svc.ListSubmissions(ctx, ctx.Param("id"))
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.ListSubmissions -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, submissions)
}

// HandleListQuizzes godoc
//
//	@Summary	List quizzes (answer keys stripped for students)
//	@Tags		classroom
//	@Produce	json
//	@Success	200	{array}	domain.Quiz
//	@Router		/quizzes [get]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleListQuizzes(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return
	}

	quizzes, err := h.svc.ListQuizzes(ctx, identity)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.ListQuizzes -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, quizzes)
}

// HandleGetQuiz godoc
//
//	@Summary	Get one quiz (answer key stripped for students)
//	@Tags		classroom
//	@Produce	json
//	@Param		id	path		string	true	"quiz id"
//	@Success	200	{object}	domain.Quiz
//	@Failure	404	{object}	response.Err
//	@Router		/quizzes/{id} [get]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleGetQuiz(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return
	}

	id := ctx.Param("id")
	quiz, err := h.svc.GetQuiz(ctx, identity, id)
	if err != nil {
		if errors.Is(err, service.ErrQuizNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("quiz", "id", id))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.GetQuiz -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, quiz)
}

// HandleCreateQuiz godoc
//
//	@Summary	Create a quiz with its questions
//	@Tags		classroom
//	@Accept		json
//	@Produce	json
//	@Param		request	body		request.QuizRequest	true	"quiz"
//	@Success	201		{object}	domain.Quiz
//	@Failure	400		{object}	response.Err
//	@Failure	403		{object}	response.Err
//	@Router		/quizzes [post]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleCreateQuiz(ctx *gin.Context) {
	if _, ok := h.requireTeacherAccess(ctx); !ok {
		return
	}

	quiz, ok := h.bindQuiz(ctx)
	if !ok {
		return
	}

	created, err := h.svc.CreateQuiz(ctx, quiz)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.CreateQuiz -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateQuiz godoc
//
//	@Summary	Update a quiz, replacing its question set
//	@Tags		classroom
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"quiz id"
//	@Param		request	body		request.QuizRequest	true	"quiz"
//	@Success	200		{object}	domain.Quiz
//	@Failure	400		{object}	response.Err
//	@Failure	403		{object}	response.Err
//	@Failure	404		{object}	response.Err
//	@Router		/quizzes/{id} [put]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleUpdateQuiz(ctx *gin.Context) {
	if _, ok := h.requireTeacherAccess(ctx); !ok {
		return
	}

	quiz, ok := h.bindQuiz(ctx)
	if !ok {
		return
	}
	quiz.ID = ctx.Param("id")

	updated, err := h.svc.UpdateQuiz(ctx, quiz)
	if err != nil {
		if errors.Is(err, service.ErrQuizNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("quiz", "id", quiz.ID))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.UpdateQuiz -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteQuiz godoc
//
//	@Summary	Delete a quiz with its questions and attempts
//	@Tags		classroom
//	@Produce	json
//	@Param		id	path	string	true	"quiz id"
//	@Success	204
//	@Failure	403	{object}	response.Err
//	@Failure	404	{object}	response.Err
//	@Router		/quizzes/{id} [delete]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleDeleteQuiz(ctx *gin.Context) {
	if _, ok := h.requireTeacherAccess(ctx); !ok {
		return
	}

	id := ctx.Param("id")
	if err := h.svc.DeleteQuiz(ctx, id); err != nil {
		if errors.Is(err, service.ErrQuizNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("quiz", "id", id))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.DeleteQuiz -> %w", err)))
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ClassroomHandler) bindQuiz(ctx *gin.Context) (domain.Quiz, bool) {
	var req request.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return domain.Quiz{}, false
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return domain.Quiz{}, false
	}

	questions := make([]domain.QuizQuestion, len(req.Questions))
	for i, question := range req.Questions {
		questions[i] = domain.QuizQuestion{
			Prompt:        question.Prompt,
			Options:       question.Options,
			CorrectAnswer: question.CorrectAnswer,
			Explanation:   question.Explanation,
		}
	}

	return domain.Quiz{
		Title:     req.Title,
		LessonID:  req.LessonID,
		Questions: questions,
	}, true
}

// HandleAttemptQuiz godoc
//
//	@Summary	Submit quiz answers for automatic scoring
//	@Tags		classroom
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"quiz id"
//	@Param		request	body		request.AttemptRequest	true	"answers"
//	@Success	201		{object}	domain.Attempt
//	@Failure	400		{object}	response.Err
//	@Failure	403		{object}	response.Err
//	@Failure	404		{object}	response.Err
//	@Router		/quizzes/{id}/attempts [post]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleAttemptQuiz(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return
	}

	var req request.AttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	quizID := ctx.Param("id")
	attempt, err := h.svc.AttemptQuiz(ctx, identity, quizID, identity.StudentID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotRecordOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrQuizNotFound):
			response.RenderErr(ctx, response.ErrNotFound("quiz", "id", quizID))
		default:
			response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.AttemptQuiz -> %w", err)))
		}
		return
	}

	ctx.JSON(http.StatusCreated, attempt)
}

// HandleListAttempts godoc
//
//	@Summary	List attempts for a quiz
//	@Tags		classroom
//	@Produce	json
//	@Param		id	path	string	true	"quiz id"
//	@Success	200	{array}		domain.Attempt
//	@Failure	403	{object}	response.Err
//	@Router		/quizzes/{id}/attempts [get]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleListAttempts(ctx *gin.Context) {
	if _, ok := h.requireTeacherAccess(ctx); !ok {
		return
	}

	attempts, err := h.svc.ListAttempts(ctx, ctx.Param("id"))
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.ListAttempts -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, attempts)
}

// HandleRecordProgress godoc
//
//	@Summary	Record lesson completion for the calling student
//	@Tags		classroom
//	@Accept		json
//	@Produce	json
//	@Param		request	body		request.ProgressRequest	true	"progress"
//	@Success	200		{object}	domain.Progress
//	@Failure	400		{object}	response.Err
//	@Failure	403		{object}	response.Err
//	@Failure	404		{object}	response.Err
//	@Router		/progress [post]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleRecordProgress(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return
	}
	if identity.Role != domain.RoleStudent {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("only students record their own progress")))
		return
	}

	var req request.ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	progress, err := h.svc.RecordProgress(ctx, domain.Progress{
		StudentID: identity.StudentID,
		LessonID:  req.LessonID,
		Completed: req.Completed,
	})
	if err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("lesson", "id", req.LessonID))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.RecordProgress -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, progress)
}

// HandleListProgress godoc
//
//	@Summary	List a student's lesson progress
//	@Tags		classroom
//	@Produce	json
//	@Param		id	path	string	true	"student id"
//	@Success	200	{array}		domain.Progress
//	@Failure	403	{object}	response.Err
//	@Router		/students/{id}/progress [get]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleListProgress(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return
	}

	studentID := ctx.Param("id")
	if !identity.Role.HasRole(domain.RoleTeacher) && !identity.Owns(studentID) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("students may only view their own progress")))
		return
	}

	records, err := h.svc.ListProgress(ctx, studentID)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.ListProgress -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, records)
}

// HandleRecordGrade godoc
//
//	@Summary	Grade a student's assignment
//	@Tags		classroom
//	@Accept		json
//	@Produce	json
//	@Param		request	body		request.GradeRequest	true	"grade"
//	@Success	201		{object}	domain.Grade
//	@Failure	400		{object}	response.Err
//	@Failure	403		{object}	response.Err
//	@Failure	404		{object}	response.Err
//	@Failure	409		{object}	response.Err
//	@Router		/grades [post]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleRecordGrade(ctx *gin.Context) {
	if _, ok := h.requireTeacherAccess(ctx); !ok {
		return
	}

	var req request.GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	grade, err := h.svc.RecordGrade(ctx, domain.Grade{
		AssignmentID: req.AssignmentID,
		StudentID:    req.StudentID,
		Score:        req.Score,
		Feedback:     req.Feedback,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("assignment", "id", req.AssignmentID))
		case errors.Is(err, service.ErrGradeExists):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.RecordGrade -> %w", err)))
		}
		return
	}

	ctx.JSON(http.StatusCreated, grade)
}

// HandleListGrades godoc
//
//	@Summary	List grades, optionally filtered by student
//	@Tags		classroom
//	@Produce	json
//	@Param		student_id	query	string	false	"student id"
//	@Success	200	{array}		domain.Grade
//	@Failure	403	{object}	response.Err
//	@Router		/grades [get]
//	@Security	BearerAuth
func (h *ClassroomHandler) HandleListGrades(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return
	}

	studentID := ctx.Query("student_id")
	if identity.Role == domain.RoleStudent {
		// Students see their own grades only.
		studentID = identity.StudentID
	} else if !identity.Role.HasRole(domain.RoleTeacher) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("staff access required")))
		return
	}

	grades, err := h.svc.ListGrades(ctx, studentID)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("svc.ListGrades -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, grades)
}
