package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/acadflow/academy-api/internal/domain"
)

type Err struct {
	StatusCode int    `json:"-"`
	Msg        string `json:"error"`
}

func (e *Err) Error() string {
	return e.Msg
}

func RenderErr(ctx *gin.Context, err *Err) {
	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Msg:        err.Error(),
	}
}

// ErrUnauthorized deliberately carries a generic message so callers
// cannot tell which credential check failed.
func ErrUnauthorized() *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Msg:        "authentication required",
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		Msg:        err.Error(),
	}
}

func ErrNotFound(resource, key string, value interface{}) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Msg:        fmt.Sprintf("%v not found (%v = %v)", resource, key, value),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		Msg:        err.Error(),
	}
}

// ErrInternalServerError logs the full error server-side and returns
// an opaque message to the caller.
func ErrInternalServerError(err error) *Err {
	zap.L().Error("internal server error", zap.Error(err))

	return &Err{
		StatusCode: http.StatusInternalServerError,
		Msg:        "internal server error",
	}
}

type LoginResponse struct {
	User      domain.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt string      `json:"expires_at"`
}

// StudentResponse pairs a student record with its derived financial
// position.
type StudentResponse struct {
	domain.Student
	Payments domain.PaymentSummary `json:"payments"`
}

func NewStudentResponse(student domain.Student) StudentResponse {
	return StudentResponse{
		Student:  student,
		Payments: student.Payments(),
	}
}

func NewStudentListResponse(students []domain.Student) []StudentResponse {
	out := make([]StudentResponse, len(students))
	for i, student := range students {
		out[i] = NewStudentResponse(student)
	}

	return out
}
