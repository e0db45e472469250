package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/acadflow/academy-api/internal/domain"
	"github.com/acadflow/academy-api/internal/repository/dao"
)

var ErrSessionNotFound = dao.ErrSessionNotFound

type SessionDAO interface {
	Insert(ctx context.Context, session dao.Session) (dao.Session, error)
	FindByToken(ctx context.Context, token string) (dao.Session, error)
	DeleteByToken(ctx context.Context, token string) error
}

type SessionRepository struct {
	dao SessionDAO
}

func NewSessionRepository(dao SessionDAO) *SessionRepository {
	return &SessionRepository{
		dao: dao,
	}
}

func (r *SessionRepository) Create(ctx context.Context, session domain.Session) (domain.Session, error) {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	created, err := r.dao.Insert(ctx, dao.Session{
		ID:        session.ID,
		UserID:    session.UserID,
		Token:     session.Token,
		Role:      string(session.Role),
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SessionRepository) FindByToken(ctx context.Context, token string) (domain.Session, error) {
	found, err := r.dao.FindByToken(ctx, token)
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.FindByToken -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	if err := r.dao.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("r.dao.DeleteByToken -> %w", err)
	}

	return nil
}

func (r *SessionRepository) daoToDomain(s dao.Session) domain.Session {
	return domain.Session{
		ID:        s.ID,
		UserID:    s.UserID,
		Token:     s.Token,
		Role:      domain.Role(s.Role),
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
}
