package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/acadflow/academy-api/internal/domain"
	"github.com/acadflow/academy-api/internal/repository/dao"
)

var ErrLeadNotFound = dao.ErrLeadNotFound

type LeadDAO interface {
	Insert(ctx context.Context, lead dao.Lead) (dao.Lead, error)
	FindByID(ctx context.Context, id string) (dao.Lead, error)
	List(ctx context.Context) ([]dao.Lead, error)
	Update(ctx context.Context, lead dao.Lead) (dao.Lead, error)
	Delete(ctx context.Context, id string) error
}

type LeadRepository struct {
	dao LeadDAO
}

func NewLeadRepository(dao LeadDAO) *LeadRepository {
	return &LeadRepository{
		dao: dao,
	}
}

func (r *LeadRepository) Create(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}

	created, err := r.dao.Insert(ctx, r.domainToDAO(lead))
	if err != nil {
		return domain.Lead{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (domain.Lead, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *LeadRepository) List(ctx context.Context) ([]domain.Lead, error) {
	found, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	leads := make([]domain.Lead, len(found))
	for i, l := range found {
		leads[i] = r.daoToDomain(l)
	}

	return leads, nil
}

func (r *LeadRepository) Update(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(lead))
	if err != nil {
		return domain.Lead{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *LeadRepository) domainToDAO(l domain.Lead) dao.Lead {
	return dao.Lead{
		ID:     l.ID,
		Name:   l.Name,
		Phone:  l.Phone,
		Status: string(l.Status),
		Source: l.Source,
		Notes:  l.Notes,
	}
}

func (r *LeadRepository) daoToDomain(l dao.Lead) domain.Lead {
	return domain.Lead{
		ID:        l.ID,
		Name:      l.Name,
		Phone:     l.Phone,
		Status:    domain.LeadStatus(l.Status),
		Source:    l.Source,
		Notes:     l.Notes,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
