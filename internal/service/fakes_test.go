package service

import (
	"context"
	"fmt"
	"time"

	"github.com/acadflow/academy-api/internal/domain"
	"github.com/acadflow/academy-api/internal/repository"
)

// In-memory fakes standing in for the gorm-backed repositories.

type memUserRepo struct {
	seq   int
	users map[string]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return domain.User{}, repository.ErrUsernameExists
		}
	}

	if user.ID == "" {
		r.seq++
		user.ID = fmt.Sprintf("user-%d", r.seq)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user

	return user, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

func (r *memUserRepo) FindByStudentID(_ context.Context, studentID string) (domain.User, error) {
	for _, user := range r.users {
		if user.StudentID == studentID {
			return user, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

func (r *memUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, user)
	}

	return out, nil
}

type memSessionRepo struct {
	sessions map[string]domain.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]domain.Session)}
}

func (r *memSessionRepo) Create(_ context.Context, session domain.Session) (domain.Session, error) {
	r.sessions[session.Token] = session

	return session, nil
}

func (r *memSessionRepo) FindByToken(_ context.Context, token string) (domain.Session, error) {
	session, ok := r.sessions[token]
	if !ok {
		return domain.Session{}, repository.ErrSessionNotFound
	}

	return session, nil
}

func (r *memSessionRepo) DeleteByToken(_ context.Context, token string) error {
	delete(r.sessions, token)

	return nil
}

type memStudentRepo struct {
	seq      int
	students map[string]domain.Student
}

func newMemStudentRepo() *memStudentRepo {
	return &memStudentRepo{students: make(map[string]domain.Student)}
}

func (r *memStudentRepo) Create(_ context.Context, student domain.Student) (domain.Student, error) {
	r.seq++
	student.ID = fmt.Sprintf("stu-%d", r.seq)
	student.CreatedAt = time.Now()
	student.UpdatedAt = student.CreatedAt
	r.students[student.ID] = student

	return student, nil
}

func (r *memStudentRepo) FindByID(_ context.Context, id string) (domain.Student, error) {
	student, ok := r.students[id]
	if !ok {
		return domain.Student{}, repository.ErrStudentNotFound
	}

	return student, nil
}

func (r *memStudentRepo) FindByPhone(_ context.Context, phone string) (domain.Student, error) {
	for _, student := range r.students {
		if student.Phone == phone {
			return student, nil
		}
	}

	return domain.Student{}, repository.ErrStudentNotFound
}

func (r *memStudentRepo) List(_ context.Context) ([]domain.Student, error) {
	out := make([]domain.Student, 0, len(r.students))
	for _, student := range r.students {
		out = append(out, student)
	}

	return out, nil
}

func (r *memStudentRepo) Update(_ context.Context, student domain.Student) (domain.Student, error) {
	current, ok := r.students[student.ID]
	if !ok {
		return domain.Student{}, repository.ErrStudentNotFound
	}

	current.Name = student.Name
	current.Phone = student.Phone
	current.Plan = student.Plan
	current.UpdatedAt = time.Now()
	r.students[current.ID] = current

	return current, nil
}

func (r *memStudentRepo) UpdateInstallment(_ context.Context, studentID string, slot domain.InstallmentSlot, inst domain.Installment) error {
	student, ok := r.students[studentID]
	if !ok {
		return repository.ErrStudentNotFound
	}

	target, err := student.Installments.Slot(slot)
	if err != nil {
		return err
	}
	*target = inst
	r.students[studentID] = student

	return nil
}

func (r *memStudentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.students[id]; !ok {
		return repository.ErrStudentNotFound
	}
	delete(r.students, id)

	return nil
}

type memLeadRepo struct {
	seq   int
	leads map[string]domain.Lead
}

func newMemLeadRepo() *memLeadRepo {
	return &memLeadRepo{leads: make(map[string]domain.Lead)}
}

func (r *memLeadRepo) Create(_ context.Context, lead domain.Lead) (domain.Lead, error) {
	r.seq++
	lead.ID = fmt.Sprintf("lead-%d", r.seq)
	lead.CreatedAt = time.Now()
	lead.UpdatedAt = lead.CreatedAt
	r.leads[lead.ID] = lead

	return lead, nil
}

func (r *memLeadRepo) FindByID(_ context.Context, id string) (domain.Lead, error) {
	lead, ok := r.leads[id]
	if !ok {
		return domain.Lead{}, repository.ErrLeadNotFound
	}

	return lead, nil
}

func (r *memLeadRepo) List(_ context.Context) ([]domain.Lead, error) {
	out := make([]domain.Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		out = append(out, lead)
	}

	return out, nil
}

func (r *memLeadRepo) Update(_ context.Context, lead domain.Lead) (domain.Lead, error) {
	current, ok := r.leads[lead.ID]
	if !ok {
		return domain.Lead{}, repository.ErrLeadNotFound
	}

	lead.CreatedAt = current.CreatedAt
	lead.UpdatedAt = time.Now()
	r.leads[lead.ID] = lead

	return lead, nil
}

func (r *memLeadRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.leads[id]; !ok {
		return repository.ErrLeadNotFound
	}
	delete(r.leads, id)

	return nil
}
