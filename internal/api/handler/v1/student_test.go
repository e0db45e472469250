package v1

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadflow/academy-api/internal/domain"
	"github.com/acadflow/academy-api/internal/service"
)

// fakeStudentService keeps a single student and drives the real domain
// state machine, so handler status mapping is exercised end to end.
type fakeStudentService struct {
	student domain.Student
}

func newFakeStudentService() *fakeStudentService {
	return &fakeStudentService{
		student: domain.Student{
			ID:           "stu-1",
			Name:         "Kylian",
			Phone:        "0611223344",
			Plan:         domain.PlanHalf,
			Installments: domain.NewInstallments(),
		},
	}
}

func (f *fakeStudentService) ListStudents(context.Context) ([]domain.Student, error) {
	return []domain.Student{f.student}, nil
}

func (f *fakeStudentService) GetStudent(_ context.Context, id string) (domain.Student, error) {
	if id != f.student.ID {
		return domain.Student{}, service.ErrStudentNotFound
	}

	return f.student, nil
}

func (f *fakeStudentService) CreateStudent(_ context.Context, student domain.Student) (domain.Student, error) {
	student.ID = "stu-new"
	student.Installments = domain.NewInstallments()

	return student, nil
}

func (f *fakeStudentService) UpdateStudent(_ context.Context, student domain.Student) (domain.Student, error) {
	if student.ID != f.student.ID {
		return domain.Student{}, service.ErrStudentNotFound
	}
	f.student.Name = student.Name
	f.student.Phone = student.Phone
	f.student.Plan = student.Plan

	return f.student, nil
}

func (f *fakeStudentService) DeleteStudent(_ context.Context, id string) error {
	if id != f.student.ID {
		return service.ErrStudentNotFound
	}

	return nil
}

func (f *fakeStudentService) UploadProof(_ context.Context, caller domain.Identity, studentID string, slot domain.InstallmentSlot, proofURL string) (domain.Student, error) {
	if !caller.Owns(studentID) {
		return domain.Student{}, service.ErrNotRecordOwner
	}
	if studentID != f.student.ID {
		return domain.Student{}, service.ErrStudentNotFound
	}

	inst, err := f.student.Installments.Slot(slot)
	if err != nil {
		return domain.Student{}, err
	}
	inst.Upload(proofURL)

	return f.student, nil
}

func (f *fakeStudentService) ReviewProof(_ context.Context, studentID string, slot domain.InstallmentSlot, decision domain.ReviewDecision) (domain.Student, error) {
	if studentID != f.student.ID {
		return domain.Student{}, service.ErrStudentNotFound
	}

	inst, err := f.student.Installments.Slot(slot)
	if err != nil {
		return domain.Student{}, err
	}
	if err = inst.Review(decision, time.Now()); err != nil {
		return domain.Student{}, err
	}

	return f.student, nil
}

func (f *fakeStudentService) ToggleInstallment(_ context.Context, _ domain.Identity, studentID string, slot domain.InstallmentSlot) (domain.Student, error) {
	if studentID != f.student.ID {
		return domain.Student{}, service.ErrStudentNotFound
	}

	inst, err := f.student.Installments.Slot(slot)
	if err != nil {
		return domain.Student{}, err
	}
	if err = inst.Toggle(time.Now()); err != nil {
		return domain.Student{}, err
	}

	return f.student, nil
}

func newStudentRouter(svc StudentService, identity domain.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewStudentHandler(svc)
	router := gin.New()
	group := router.Group("", withIdentity(identity))
	group.GET("/students", handler.HandleListStudents)
	group.GET("/students/:id", handler.HandleGetStudent)
	group.POST("/students", handler.HandleCreateStudent)
	group.PUT("/students/:id", handler.HandleUpdateStudent)
	group.DELETE("/students/:id", handler.HandleDeleteStudent)
	group.PUT("/students/:id/installments/:slot/proof", handler.HandleUploadProof)
	group.POST("/students/:id/installments/:slot/review", handler.HandleReviewProof)
	group.POST("/students/:id/installments/:slot/toggle", handler.HandleToggleInstallment)

	return router
}

var (
	adminIdentity   = domain.Identity{UserID: "admin", Role: domain.RoleAdmin}
	teacherIdentity = domain.Identity{UserID: "teacher", Role: domain.RoleTeacher}
	salesIdentity   = domain.Identity{UserID: "sales", Role: domain.RoleSales}
	ownerIdentity   = domain.Identity{UserID: "user-1", Role: domain.RoleStudent, StudentID: "stu-1"}
)

func TestStudentHandler_RoleGating(t *testing.T) {
	t.Run("sales cannot list students", func(t *testing.T) {
		router := newStudentRouter(newFakeStudentService(), salesIdentity)
		w := doJSON(t, router, http.MethodGet, "/students", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("student cannot list students", func(t *testing.T) {
		router := newStudentRouter(newFakeStudentService(), ownerIdentity)
		w := doJSON(t, router, http.MethodGet, "/students", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("teacher lists students with payment summary", func(t *testing.T) {
		router := newStudentRouter(newFakeStudentService(), teacherIdentity)
		w := doJSON(t, router, http.MethodGet, "/students", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"payments"`)
		assert.Contains(t, w.Body.String(), `"remaining":3000`)
	})

	t.Run("student reads own record", func(t *testing.T) {
		router := newStudentRouter(newFakeStudentService(), ownerIdentity)
		w := doJSON(t, router, http.MethodGet, "/students/stu-1", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("student cannot read another record", func(t *testing.T) {
		stranger := domain.Identity{UserID: "user-2", Role: domain.RoleStudent, StudentID: "stu-2"}
		router := newStudentRouter(newFakeStudentService(), stranger)
		w := doJSON(t, router, http.MethodGet, "/students/stu-1", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("teacher cannot toggle", func(t *testing.T) {
		router := newStudentRouter(newFakeStudentService(), teacherIdentity)
		w := doJSON(t, router, http.MethodPost, "/students/stu-1/installments/inst1/toggle", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestStudentHandler_ProofLifecycle(t *testing.T) {
	svc := newFakeStudentService()

	owner := newStudentRouter(svc, ownerIdentity)
	staff := newStudentRouter(svc, teacherIdentity)

	// Review before any upload conflicts.
	w := doJSON(t, staff, http.MethodPost, "/students/stu-1/installments/inst1/review", `{"decision":"accept"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, owner, http.MethodPut, "/students/stu-1/installments/inst1/proof", `{"proof_url":"receipt.png"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// Staff cannot upload on a student's behalf.
	w = doJSON(t, staff, http.MethodPut, "/students/stu-1/installments/inst1/proof", `{"proof_url":"x.png"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, staff, http.MethodPost, "/students/stu-1/installments/inst1/review", `{"decision":"accept"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"paid":4000`)

	// Unknown slot is a 400.
	w = doJSON(t, owner, http.MethodPut, "/students/stu-1/installments/inst9/proof", `{"proof_url":"x.png"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown decision never reaches the service.
	w = doJSON(t, staff, http.MethodPost, "/students/stu-1/installments/inst2/review", `{"decision":"maybe"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStudentHandler_Toggle(t *testing.T) {
	svc := newFakeStudentService()
	admin := newStudentRouter(svc, adminIdentity)

	w := doJSON(t, admin, http.MethodPost, "/students/stu-1/installments/inst1/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"paid":4000`)

	// Toggling a pending slot conflicts.
	owner := newStudentRouter(svc, ownerIdentity)
	w = doJSON(t, owner, http.MethodPut, "/students/stu-1/installments/inst2/proof", `{"proof_url":"x.png"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, admin, http.MethodPost, "/students/stu-1/installments/inst2/toggle", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, admin, http.MethodPost, "/students/missing/installments/inst1/toggle", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStudentHandler_CreateValidation(t *testing.T) {
	router := newStudentRouter(newFakeStudentService(), adminIdentity)

	w := doJSON(t, router, http.MethodPost, "/students", `{"name":"New","phone":"0655555555","plan":"HALF"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/students", `{"name":"New","phone":"0655555555","plan":"QUARTERLY"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/students", `{"name":"","phone":"0655555555","plan":"FULL"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
