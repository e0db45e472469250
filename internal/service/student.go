package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/acadflow/academy-api/internal/domain"
	"github.com/acadflow/academy-api/internal/repository"
)

var (
	ErrStudentNotFound = repository.ErrStudentNotFound
	ErrNotRecordOwner  = errors.New("students may only act on their own record")
)

type StudentRepository interface {
	Create(ctx context.Context, student domain.Student) (domain.Student, error)
	FindByID(ctx context.Context, id string) (domain.Student, error)
	FindByPhone(ctx context.Context, phone string) (domain.Student, error)
	List(ctx context.Context) ([]domain.Student, error)
	Update(ctx context.Context, student domain.Student) (domain.Student, error)
	UpdateInstallment(ctx context.Context, studentID string, slot domain.InstallmentSlot, inst domain.Installment) error
	Delete(ctx context.Context, id string) error
}

type StudentService struct {
	repo StudentRepository
}

func NewStudentService(repo StudentRepository) *StudentService {
	return &StudentService{
		repo: repo,
	}
}

func (s *StudentService) ListStudents(ctx context.Context) ([]domain.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return students, nil
}

func (s *StudentService) GetStudent(ctx context.Context, id string) (domain.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return student, nil
}

func (s *StudentService) CreateStudent(ctx context.Context, student domain.Student) (domain.Student, error) {
	student.Installments = domain.NewInstallments()

	created, err := s.repo.Create(ctx, student)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *StudentService) UpdateStudent(ctx context.Context, student domain.Student) (domain.Student, error) {
	updated, err := s.repo.Update(ctx, student)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *StudentService) DeleteStudent(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// UploadProof moves a slot to PENDING with the supplied proof image.
// Only the student account linked to the record may upload.
func (s *StudentService) UploadProof(ctx context.Context, caller domain.Identity, studentID string, slot domain.InstallmentSlot, proofURL string) (domain.Student, error) {
	if !caller.Owns(studentID) {
		return domain.Student{}, ErrNotRecordOwner
	}

	student, err := s.repo.FindByID(ctx, studentID)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	inst, err := student.Installments.Slot(slot)
	if err != nil {
		return domain.Student{}, err
	}

	inst.Upload(proofURL)

	if err = s.repo.UpdateInstallment(ctx, studentID, slot, *inst); err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.UpdateInstallment -> %w", err)
	}

	return student, nil
}

// ReviewProof settles a PENDING slot. Role gating (ADMIN/TEACHER) is
// enforced at the route level.
func (s *StudentService) ReviewProof(ctx context.Context, studentID string, slot domain.InstallmentSlot, decision domain.ReviewDecision) (domain.Student, error) {
	student, err := s.repo.FindByID(ctx, studentID)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	inst, err := student.Installments.Slot(slot)
	if err != nil {
		return domain.Student{}, err
	}

	if err = inst.Review(decision, time.Now()); err != nil {
		return domain.Student{}, err
	}

	if err = s.repo.UpdateInstallment(ctx, studentID, slot, *inst); err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.UpdateInstallment -> %w", err)
	}

	return student, nil
}

// ToggleInstallment is the administrative override that flips a slot
// between PAID and UNPAID without any proof review. Every use is
// written to the audit log.
func (s *StudentService) ToggleInstallment(ctx context.Context, caller domain.Identity, studentID string, slot domain.InstallmentSlot) (domain.Student, error) {
	student, err := s.repo.FindByID(ctx, studentID)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	inst, err := student.Installments.Slot(slot)
	if err != nil {
		return domain.Student{}, err
	}

	previous := inst.Status
	if err = inst.Toggle(time.Now()); err != nil {
		return domain.Student{}, err
	}

	if err = s.repo.UpdateInstallment(ctx, studentID, slot, *inst); err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.UpdateInstallment -> %w", err)
	}

	zap.L().Info("installment manually toggled",
		zap.String("admin_user_id", caller.UserID),
		zap.String("student_id", studentID),
		zap.String("slot", string(slot)),
		zap.String("from", string(previous)),
		zap.String("to", string(inst.Status)),
	)

	return student, nil
}
