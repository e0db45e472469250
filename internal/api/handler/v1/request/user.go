package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/acadflow/academy-api/internal/domain"
)

// Staff passwords need at least one letter and one digit; lookaheads
// are not supported by the stdlib regexp package.
var passwordPattern = regexp2.MustCompile(`^(?=.*[a-zA-Z])(?=.*\d).{8,72}$`, regexp2.None)

type CreateUserRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	StudentID string `json:"student_id"`
}

func (req *CreateUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required, validation.Length(3, 64)),
		validation.Field(&req.Password, validation.Required, validation.By(validPassword)),
		validation.Field(&req.Role, validation.Required, validation.In(
			string(domain.RoleAdmin),
			string(domain.RoleTeacher),
			string(domain.RoleSales),
			string(domain.RoleStudent),
		)),
	)
}

func validPassword(value interface{}) error {
	password, _ := value.(string)

	ok, err := passwordPattern.MatchString(password)
	if err != nil || !ok {
		return errors.New("must be 8-72 characters with at least one letter and one digit")
	}

	return nil
}
