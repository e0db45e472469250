package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/acadflow/academy-api/internal/domain"
	"github.com/acadflow/academy-api/internal/repository"
)

var (
	ErrLeadNotFound           = repository.ErrLeadNotFound
	ErrLeadConverted          = errors.New("lead is converted and can no longer be edited")
	ErrConversionNotConfirmed = errors.New("conversion must be confirmed before a student is enrolled")
)

type LeadRepository interface {
	Create(ctx context.Context, lead domain.Lead) (domain.Lead, error)
	FindByID(ctx context.Context, id string) (domain.Lead, error)
	List(ctx context.Context) ([]domain.Lead, error)
	Update(ctx context.Context, lead domain.Lead) (domain.Lead, error)
	Delete(ctx context.Context, id string) error
}

type LeadService struct {
	repo     LeadRepository
	students StudentRepository
}

func NewLeadService(repo LeadRepository, students StudentRepository) *LeadService {
	return &LeadService{
		repo:     repo,
		students: students,
	}
}

func (s *LeadService) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	leads, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return leads, nil
}

func (s *LeadService) GetLead(ctx context.Context, id string) (domain.Lead, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return lead, nil
}

func (s *LeadService) CreateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	if lead.Status == "" {
		lead.Status = domain.LeadNew
	}

	created, err := s.repo.Create(ctx, lead)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// UpdateLead applies a field update. A transition into CONVERTED runs
// the conversion workflow; once a lead is CONVERTED it is terminal and
// every further mutation is rejected. All other transitions are plain
// field writes with no side effects.
func (s *LeadService) UpdateLead(ctx context.Context, lead domain.Lead, confirmConversion bool) (domain.Lead, error) {
	current, err := s.repo.FindByID(ctx, lead.ID)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if current.IsTerminal() {
		return domain.Lead{}, ErrLeadConverted
	}

	if lead.Status == domain.LeadConverted {
		if err = s.convert(ctx, lead, confirmConversion); err != nil {
			return domain.Lead{}, err
		}
	}

	updated, err := s.repo.Update(ctx, lead)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *LeadService) DeleteLead(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// convert enrolls the lead as a student unless one with the same phone
// number already exists. Without an existing match the caller must
// have confirmed the enrollment; a declined confirmation abandons the
// whole update so the lead keeps its prior status.
func (s *LeadService) convert(ctx context.Context, lead domain.Lead, confirmed bool) error {
	_, err := s.students.FindByPhone(ctx, lead.Phone)
	if err == nil {
		// Already enrolled; just mark the lead converted.
		return nil
	}
	if !errors.Is(err, repository.ErrStudentNotFound) {
		return fmt.Errorf("s.students.FindByPhone -> %w", err)
	}

	if !confirmed {
		return ErrConversionNotConfirmed
	}

	student, err := s.students.Create(ctx, domain.Student{
		Name:         lead.Name,
		Phone:        lead.Phone,
		Plan:         domain.PlanHalf,
		Installments: domain.NewInstallments(),
	})
	if err != nil {
		return fmt.Errorf("s.students.Create -> %w", err)
	}

	zap.L().Info("lead converted to student",
		zap.String("lead_id", lead.ID),
		zap.String("student_id", student.ID),
	)

	return nil
}
