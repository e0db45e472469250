package domain

import "time"

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleSales   Role = "SALES"
	RoleStudent Role = "STUDENT"
)

// HasRole decides whether a caller with role r satisfies a required role.
// ADMIN passes every check. TEACHER passes every check except ADMIN-only
// ones. SALES and STUDENT only pass checks for their own role.
func (r Role) HasRole(required Role) bool {
	if r == RoleAdmin {
		return true
	}
	if r == RoleTeacher {
		return required != RoleAdmin
	}

	return r == required
}

// OneOf reports exact membership in a role set. Route checks that span
// siloed roles (e.g. leads are open to ADMIN, TEACHER and SALES) cannot
// be expressed through HasRole alone.
func (r Role) OneOf(roles ...Role) bool {
	for _, role := range roles {
		if r == role {
			return true
		}
	}

	return false
}

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	StudentID string    `json:"student_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Identity is the resolved caller of a request, threaded from the auth
// middleware down into services that need ownership checks.
type Identity struct {
	UserID    string
	Role      Role
	StudentID string
	Token     string
}

// Owns reports whether the identity is the student account linked to
// the given student record.
func (id Identity) Owns(studentID string) bool {
	return id.Role == RoleStudent && id.StudentID != "" && id.StudentID == studentID
}
