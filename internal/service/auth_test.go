package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadflow/academy-api/internal/domain"
)

func newAuthFixture() (*AuthService, *memUserRepo, *memStudentRepo, *memSessionRepo) {
	users := newMemUserRepo()
	students := newMemStudentRepo()
	sessions := newMemSessionRepo()

	return NewAuthService(users, students, sessions), users, students, sessions
}

func TestAuthService_Login_Bootstrap(t *testing.T) {
	svc, users, _, _ := newAuthFixture()
	ctx := context.Background()

	user, session, err := svc.Login(ctx, "admin", "123")
	require.NoError(t, err)

	assert.Equal(t, "admin", user.ID)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.NotEmpty(t, session.Token)
	assert.WithinDuration(t, time.Now().Add(domain.SessionTTL), session.ExpiresAt, time.Minute)

	// The account is now stored; a second login takes the bcrypt path.
	stored, err := users.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.NotEqual(t, "123", stored.Password)

	again, session2, err := svc.Login(ctx, "admin", "123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.NotEqual(t, session.Token, session2.Token)
}

func TestAuthService_Login_BootstrapWrongPassword(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, _, err := svc.Login(context.Background(), "teacher", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_StudentByPhone(t *testing.T) {
	svc, users, students, _ := newAuthFixture()
	ctx := context.Background()

	student, err := students.Create(ctx, domain.Student{
		Name:         "Lionel",
		Phone:        "0601020304",
		Plan:         domain.PlanHalf,
		Installments: domain.NewInstallments(),
	})
	require.NoError(t, err)

	user, session, err := svc.Login(ctx, "0601020304", "0601020304")
	require.NoError(t, err)

	assert.Equal(t, domain.RoleStudent, user.Role)
	assert.Equal(t, student.ID, user.StudentID)
	assert.NotEmpty(t, session.Token)

	// The provisioned account is linked and reused on the next login.
	linked, err := users.FindByStudentID(ctx, student.ID)
	require.NoError(t, err)

	again, _, err := svc.Login(ctx, "0601020304", "0601020304")
	require.NoError(t, err)
	assert.Equal(t, linked.ID, again.ID)
}

func TestAuthService_Login_PhoneMismatch(t *testing.T) {
	svc, _, students, _ := newAuthFixture()
	ctx := context.Background()

	_, err := students.Create(ctx, domain.Student{Phone: "0601020304", Plan: domain.PlanHalf})
	require.NoError(t, err)

	// Password must equal the phone number for the student path.
	_, _, err = svc.Login(ctx, "0601020304", "other")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_Unknown(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, _, err := svc.Login(context.Background(), "nobody", "nothing")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	ctx := context.Background()

	_, session, err := svc.Login(ctx, "teacher", "123")
	require.NoError(t, err)

	identity, err := svc.Authenticate(ctx, session.Token)
	require.NoError(t, err)

	assert.Equal(t, "teacher", identity.UserID)
	assert.Equal(t, domain.RoleTeacher, identity.Role)
	assert.Equal(t, session.Token, identity.Token)
}

func TestAuthService_Authenticate_UnknownToken(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, err := svc.Authenticate(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_Authenticate_ExpiredSessionIsPurged(t *testing.T) {
	svc, users, _, sessions := newAuthFixture()
	ctx := context.Background()

	user, err := users.Create(ctx, domain.User{Username: "expired", Role: domain.RoleSales})
	require.NoError(t, err)

	_, err = sessions.Create(ctx, domain.Session{
		UserID:    user.ID,
		Token:     "stale-token",
		Role:      user.Role,
		CreatedAt: time.Now().Add(-8 * 24 * time.Hour),
		ExpiresAt: time.Now().Add(-24 * time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "stale-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = sessions.FindByToken(ctx, "stale-token")
	assert.Error(t, err, "expired session should have been deleted")
}

func TestAuthService_Authenticate_OrphanedSessionIsPurged(t *testing.T) {
	svc, _, _, sessions := newAuthFixture()
	ctx := context.Background()

	_, err := sessions.Create(ctx, domain.Session{
		UserID:    "deleted-user",
		Token:     "orphan-token",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "orphan-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = sessions.FindByToken(ctx, "orphan-token")
	assert.Error(t, err, "orphaned session should have been deleted")
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	ctx := context.Background()

	_, session, err := svc.Login(ctx, "sales", "123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.Token))

	_, err = svc.Authenticate(ctx, session.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Logging out twice is fine.
	assert.NoError(t, svc.Logout(ctx, session.Token))
}

func TestAuthService_CreateUser(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, domain.User{Username: "coach", Password: "s3cretpass", Role: domain.RoleTeacher})
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretpass", user.Password, "password must be stored hashed")

	_, _, err = svc.Login(ctx, "coach", "s3cretpass")
	assert.NoError(t, err)

	_, err = svc.CreateUser(ctx, domain.User{Username: "coach", Password: "anotherpass1", Role: domain.RoleTeacher})
	assert.ErrorIs(t, err, ErrUsernameExists)
}
