package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_HasRole(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		required Role
		want     bool
	}{
		{"admin covers admin", RoleAdmin, RoleAdmin, true},
		{"admin covers teacher", RoleAdmin, RoleTeacher, true},
		{"admin covers sales", RoleAdmin, RoleSales, true},
		{"admin covers student", RoleAdmin, RoleStudent, true},
		{"teacher covers teacher", RoleTeacher, RoleTeacher, true},
		{"teacher covers sales", RoleTeacher, RoleSales, true},
		{"teacher covers student", RoleTeacher, RoleStudent, true},
		{"teacher does not cover admin", RoleTeacher, RoleAdmin, false},
		{"sales covers sales only", RoleSales, RoleSales, true},
		{"sales does not cover student", RoleSales, RoleStudent, false},
		{"sales does not cover teacher", RoleSales, RoleTeacher, false},
		{"student covers student only", RoleStudent, RoleStudent, true},
		{"student does not cover sales", RoleStudent, RoleSales, false},
		{"student does not cover admin", RoleStudent, RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.HasRole(tt.required))
		})
	}
}

func TestRole_OneOf(t *testing.T) {
	assert.True(t, RoleSales.OneOf(RoleAdmin, RoleTeacher, RoleSales))
	assert.False(t, RoleStudent.OneOf(RoleAdmin, RoleTeacher, RoleSales))
	assert.False(t, RoleAdmin.OneOf())
}

func TestIdentity_Owns(t *testing.T) {
	student := Identity{Role: RoleStudent, StudentID: "stu-1"}
	assert.True(t, student.Owns("stu-1"))
	assert.False(t, student.Owns("stu-2"))

	admin := Identity{Role: RoleAdmin}
	assert.False(t, admin.Owns("stu-1"))

	unlinked := Identity{Role: RoleStudent}
	assert.False(t, unlinked.Owns(""))
}
