package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/acadflow/academy-api/internal/domain"
	"github.com/acadflow/academy-api/internal/repository/dao"
)

var (
	ErrUsernameExists = dao.ErrUsernameExists
	ErrUserNotFound   = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id string) (dao.User, error)
	FindByUsername(ctx context.Context, username string) (dao.User, error)
	FindByStudentID(ctx context.Context, studentID string) (dao.User, error)
	List(ctx context.Context) ([]dao.User, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

// Create persists a user. When user.ID is empty a fresh UUID is
// assigned; bootstrap accounts keep their human-readable ids.
func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	var studentID *string
	if user.StudentID != "" {
		studentID = &user.StudentID
	}

	created, err := r.dao.Insert(ctx, dao.User{
		ID:        user.ID,
		Username:  user.Username,
		Password:  user.Password,
		Role:      string(user.Role),
		StudentID: studentID,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	found, err := r.dao.FindByUsername(ctx, username)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByUsername -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByStudentID(ctx context.Context, studentID string) (domain.User, error) {
	found, err := r.dao.FindByStudentID(ctx, studentID)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByStudentID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	found, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	users := make([]domain.User, len(found))
	for i, u := range found {
		users[i] = r.daoToDomain(u)
	}

	return users, nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	var studentID string
	if u.StudentID != nil {
		studentID = *u.StudentID
	}

	return domain.User{
		ID:        u.ID,
		Username:  u.Username,
		Password:  u.Password,
		Role:      domain.Role(u.Role),
		StudentID: studentID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
