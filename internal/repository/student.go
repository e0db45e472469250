package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/acadflow/academy-api/internal/domain"
	"github.com/acadflow/academy-api/internal/repository/dao"
)

var ErrStudentNotFound = dao.ErrStudentNotFound

type StudentDAO interface {
	Insert(ctx context.Context, student dao.Student) (dao.Student, error)
	FindByID(ctx context.Context, id string) (dao.Student, error)
	FindByPhone(ctx context.Context, phone string) (dao.Student, error)
	List(ctx context.Context) ([]dao.Student, error)
	Update(ctx context.Context, student dao.Student) (dao.Student, error)
	UpdateInstallment(ctx context.Context, studentID, slot, status, proof string, paidAt *time.Time) error
	Delete(ctx context.Context, id string) error
}

type StudentRepository struct {
	dao StudentDAO
}

func NewStudentRepository(dao StudentDAO) *StudentRepository {
	return &StudentRepository{
		dao: dao,
	}
}

func (r *StudentRepository) Create(ctx context.Context, student domain.Student) (domain.Student, error) {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}

	created, err := r.dao.Insert(ctx, r.domainToDAO(student))
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *StudentRepository) FindByID(ctx context.Context, id string) (domain.Student, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StudentRepository) FindByPhone(ctx context.Context, phone string) (domain.Student, error) {
	found, err := r.dao.FindByPhone(ctx, phone)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.FindByPhone -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StudentRepository) List(ctx context.Context) ([]domain.Student, error) {
	found, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	students := make([]domain.Student, len(found))
	for i, s := range found {
		students[i] = r.daoToDomain(s)
	}

	return students, nil
}

func (r *StudentRepository) Update(ctx context.Context, student domain.Student) (domain.Student, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(student))
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

// UpdateInstallment persists one slot as a single row-level UPDATE.
func (r *StudentRepository) UpdateInstallment(ctx context.Context, studentID string, slot domain.InstallmentSlot, inst domain.Installment) error {
	err := r.dao.UpdateInstallment(ctx, studentID, string(slot), string(inst.Status), inst.ProofURL, inst.PaidAt)
	if err != nil {
		return fmt.Errorf("r.dao.UpdateInstallment -> %w", err)
	}

	return nil
}

func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *StudentRepository) domainToDAO(s domain.Student) dao.Student {
	return dao.Student{
		ID:          s.ID,
		Name:        s.Name,
		Phone:       s.Phone,
		Plan:        string(s.Plan),
		Inst1Status: string(s.Installments.Inst1.Status),
		Inst1Proof:  s.Installments.Inst1.ProofURL,
		Inst1PaidAt: s.Installments.Inst1.PaidAt,
		Inst2Status: string(s.Installments.Inst2.Status),
		Inst2Proof:  s.Installments.Inst2.ProofURL,
		Inst2PaidAt: s.Installments.Inst2.PaidAt,
		Inst3Status: string(s.Installments.Inst3.Status),
		Inst3Proof:  s.Installments.Inst3.ProofURL,
		Inst3PaidAt: s.Installments.Inst3.PaidAt,
	}
}

func (r *StudentRepository) daoToDomain(s dao.Student) domain.Student {
	return domain.Student{
		ID:    s.ID,
		Name:  s.Name,
		Phone: s.Phone,
		Plan:  domain.Plan(s.Plan),
		Installments: domain.Installments{
			Inst1: domain.Installment{Status: domain.InstallmentStatus(s.Inst1Status), ProofURL: s.Inst1Proof, PaidAt: s.Inst1PaidAt},
			Inst2: domain.Installment{Status: domain.InstallmentStatus(s.Inst2Status), ProofURL: s.Inst2Proof, PaidAt: s.Inst2PaidAt},
			Inst3: domain.Installment{Status: domain.InstallmentStatus(s.Inst3Status), ProofURL: s.Inst3Proof, PaidAt: s.Inst3PaidAt},
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
