package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/acadflow/academy-api/internal/domain"
	"github.com/acadflow/academy-api/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUsernameExists     = repository.ErrUsernameExists
	ErrUserNotFound       = repository.ErrUserNotFound
)

// Bootstrap accounts are auto-provisioned into the store on their
// first successful login.
var bootstrapAccounts = map[string]domain.Role{
	"admin":   domain.RoleAdmin,
	"teacher": domain.RoleTeacher,
	"sales":   domain.RoleSales,
}

const bootstrapPassword = "123"

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByStudentID(ctx context.Context, studentID string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type AuthStudentRepository interface {
	FindByPhone(ctx context.Context, phone string) (domain.Student, error)
}

type AuthSessionRepository interface {
	Create(ctx context.Context, session domain.Session) (domain.Session, error)
	FindByToken(ctx context.Context, token string) (domain.Session, error)
	DeleteByToken(ctx context.Context, token string) error
}

type AuthService struct {
	users    AuthUserRepository
	students AuthStudentRepository
	sessions AuthSessionRepository
}

func NewAuthService(users AuthUserRepository, students AuthStudentRepository, sessions AuthSessionRepository) *AuthService {
	return &AuthService{
		users:    users,
		students: students,
		sessions: sessions,
	}
}

// Login resolves credentials in order: stored user + bcrypt, enrolled
// student using the phone number as both username and password, then
// the hardcoded bootstrap accounts. Every failure collapses into the
// same generic error so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, domain.Session, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil {
			return s.issueSession(ctx, user)
		}
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return domain.User{}, domain.Session{}, fmt.Errorf("s.users.FindByUsername -> %w", err)
	}

	if username == password {
		user, err = s.loginStudentByPhone(ctx, username)
		if err == nil {
			return s.issueSession(ctx, user)
		}
		if !errors.Is(err, ErrInvalidCredentials) {
			return domain.User{}, domain.Session{}, err
		}
	}

	if role, ok := bootstrapAccounts[username]; ok && password == bootstrapPassword {
		user, err = s.provisionBootstrapAccount(ctx, username, role)
		if err != nil {
			return domain.User{}, domain.Session{}, err
		}

		return s.issueSession(ctx, user)
	}

	return domain.User{}, domain.Session{}, ErrInvalidCredentials
}

// Logout deletes the session for the given token. Deleting an unknown
// token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("s.sessions.DeleteByToken -> %w", err)
	}

	return nil
}

// Authenticate resolves a bearer token to the caller's identity.
// Expired and orphaned sessions are purged on the spot, so a lookup
// can trigger a write.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return domain.Identity{}, ErrInvalidToken
		}

		return domain.Identity{}, fmt.Errorf("s.sessions.FindByToken -> %w", err)
	}

	if session.IsExpired(time.Now()) {
		if err = s.sessions.DeleteByToken(ctx, token); err != nil {
			return domain.Identity{}, fmt.Errorf("s.sessions.DeleteByToken -> %w", err)
		}

		return domain.Identity{}, ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// The user was deleted out from under the session.
			if delErr := s.sessions.DeleteByToken(ctx, token); delErr != nil {
				return domain.Identity{}, fmt.Errorf("s.sessions.DeleteByToken -> %w", delErr)
			}

			return domain.Identity{}, ErrInvalidToken
		}

		return domain.Identity{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	return domain.Identity{
		UserID:    user.ID,
		Role:      user.Role,
		StudentID: user.StudentID,
		Token:     token,
	}, nil
}

func (s *AuthService) GetUser(ctx context.Context, id string) (domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	return user, nil
}

// CreateUser provisions a staff account with a hashed password.
func (s *AuthService) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}
	user.Password = string(hash)

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return domain.User{}, ErrUsernameExists
		}

		return domain.User{}, fmt.Errorf("s.users.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) loginStudentByPhone(ctx context.Context, phone string) (domain.User, error) {
	student, err := s.students.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}

		return domain.User{}, fmt.Errorf("s.students.FindByPhone -> %w", err)
	}

	user, err := s.users.FindByStudentID(ctx, student.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return domain.User{}, fmt.Errorf("s.users.FindByStudentID -> %w", err)
	}

	// First login of an enrolled student: provision the linked account.
	hash, err := bcrypt.GenerateFromPassword([]byte(phone), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	created, err := s.users.Create(ctx, domain.User{
		Username:  student.Phone,
		Password:  string(hash),
		Role:      domain.RoleStudent,
		StudentID: student.ID,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("s.users.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) provisionBootstrapAccount(ctx context.Context, username string, role domain.Role) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(bootstrapPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	created, err := s.users.Create(ctx, domain.User{
		ID:       username, // bootstrap accounts keep human-readable ids
		Username: username,
		Password: string(hash),
		Role:     role,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("s.users.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) issueSession(ctx context.Context, user domain.User) (domain.User, domain.Session, error) {
	now := time.Now()

	session, err := s.sessions.Create(ctx, domain.Session{
		UserID:    user.ID,
		Token:     generateToken(now),
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(domain.SessionTTL),
	})
	if err != nil {
		return domain.User{}, domain.Session{}, fmt.Errorf("s.sessions.Create -> %w", err)
	}

	return user, session, nil
}

// generateToken builds an unguessable opaque token: a random UUID with
// a timestamp-derived suffix.
func generateToken(now time.Time) string {
	return uuid.NewString() + "-" + strconv.FormatInt(now.UnixNano(), 36)
}
