package service

import (
	"context"
	"fmt"
	"time"

	"github.com/acadflow/academy-api/internal/domain"
	"github.com/acadflow/academy-api/internal/repository"
)

var (
	ErrMaterialNotFound   = repository.ErrMaterialNotFound
	ErrLessonNotFound     = repository.ErrLessonNotFound
	ErrAssignmentNotFound = repository.ErrAssignmentNotFound
	ErrQuizNotFound       = repository.ErrQuizNotFound
	ErrGradeExists        = repository.ErrGradeExists
)

type ClassroomRepository interface {
	CreateMaterial(ctx context.Context, material domain.CourseMaterial) (domain.CourseMaterial, error)
	FindMaterialByID(ctx context.Context, id string) (domain.CourseMaterial, error)
	ListMaterials(ctx context.Context) ([]domain.CourseMaterial, error)
	UpdateMaterial(ctx context.Context, material domain.CourseMaterial) (domain.CourseMaterial, error)
	DeleteMaterial(ctx context.Context, id string) error

	CreateLesson(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error)
	FindLessonByID(ctx context.Context, id string) (domain.Lesson, error)
	ListLessons(ctx context.Context) ([]domain.Lesson, error)
	UpdateLesson(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error)
	DeleteLesson(ctx context.Context, id string) error

	CreateAssignment(ctx context.Context, assignment domain.Assignment) (domain.Assignment, error)
	FindAssignmentByID(ctx context.Context, id string) (domain.Assignment, error)
	ListAssignments(ctx context.Context) ([]domain.Assignment, error)
	UpdateAssignment(ctx context.Context, assignment domain.Assignment) (domain.Assignment, error)
	DeleteAssignment(ctx context.Context, id string) error

	CreateSubmission(ctx context.Context, submission domain.Submission) (domain.Submission, error)
	ListSubmissionsByAssignment(ctx context.Context, assignmentID string) ([]domain.Submission, error)

	CreateQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error)
	FindQuizByID(ctx context.Context, id string) (domain.Quiz, error)
	ListQuizzes(ctx context.Context) ([]domain.Quiz, error)
	UpdateQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error)
	DeleteQuiz(ctx context.Context, id string) error

	CreateAttempt(ctx context.Context, attempt domain.Attempt) (domain.Attempt, error)
	ListAttemptsByQuiz(ctx context.Context, quizID string) ([]domain.Attempt, error)

	UpsertProgress(ctx context.Context, progress domain.Progress) (domain.Progress, error)
	ListProgressByStudent(ctx context.Context, studentID string) ([]domain.Progress, error)

	CreateGrade(ctx context.Context, grade domain.Grade) (domain.Grade, error)
	ListGradesByStudent(ctx context.Context, studentID string) ([]domain.Grade, error)
	ListGrades(ctx context.Context) ([]domain.Grade, error)
}

type ClassroomService struct {
	repo ClassroomRepository
}

func NewClassroomService(repo ClassroomRepository) *ClassroomService {
	return &ClassroomService{
		repo: repo,
	}
}

func (s *ClassroomService) CreateMaterial(ctx context.Context, material domain.CourseMaterial) (domain.CourseMaterial, error) {
	created, err := s.repo.CreateMaterial(ctx, material)
	if err != nil {
		return domain.CourseMaterial{}, fmt.Errorf("s.repo.CreateMaterial -> %w", err)
	}

	return created, nil
}

func (s *ClassroomService) GetMaterial(ctx context.Context, id string) (domain.CourseMaterial, error) {
	material, err := s.repo.FindMaterialByID(ctx, id)
	if err != nil {
		return domain.CourseMaterial{}, fmt.Errorf("s.repo.FindMaterialByID -> %w", err)
	}

	return material, nil
}

func (s *ClassroomService) ListMaterials(ctx context.Context) ([]domain.CourseMaterial, error) {
	materials, err := s.repo.ListMaterials(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListMaterials -> %w", err)
	}

	return materials, nil
}

func (s *ClassroomService) UpdateMaterial(ctx context.Context, material domain.CourseMaterial) (domain.CourseMaterial, error) {
	updated, err := s.repo.UpdateMaterial(ctx, material)
	if err != nil {
		return domain.CourseMaterial{}, fmt.Errorf("s.repo.UpdateMaterial -> %w", err)
	}

	return updated, nil
}

func (s *ClassroomService) DeleteMaterial(ctx context.Context, id string) error {
	if err := s.repo.DeleteMaterial(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteMaterial -> %w", err)
	}

	return nil
}

func (s *ClassroomService) CreateLesson(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error) {
	created, err := s.repo.CreateLesson(ctx, lesson)
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("s.repo.CreateLesson -> %w", err)
	}

	return created, nil
}

func (s *ClassroomService) GetLesson(ctx context.Context, id string) (domain.Lesson, error) {
	lesson, err := s.repo.FindLessonByID(ctx, id)
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("s.repo.FindLessonByID -> %w", err)
	}

	return lesson, nil
}

func (s *ClassroomService) ListLessons(ctx context.Context) ([]domain.Lesson, error) {
	lessons, err := s.repo.ListLessons(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListLessons -> %w", err)
	}

	return lessons, nil
}

func (s *ClassroomService) UpdateLesson(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error) {
	updated, err := s.repo.UpdateLesson(ctx, lesson)
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("s.repo.UpdateLesson -> %w", err)
	}

	return updated, nil
}

func (s *ClassroomService) DeleteLesson(ctx context.Context, id string) error {
	if err := s.repo.DeleteLesson(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteLesson -> %w", err)
	}

	return nil
}

func (s *ClassroomService) CreateAssignment(ctx context.Context, assignment domain.Assignment) (domain.Assignment, error) {
	created, err := s.repo.CreateAssignment(ctx, assignment)
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("s.repo.CreateAssignment -> %w", err)
	}

	return created, nil
}

func (s *ClassroomService) GetAssignment(ctx context.Context, id string) (domain.Assignment, error) {
	assignment, err := s.repo.FindAssignmentByID(ctx, id)
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("s.repo.FindAssignmentByID -> %w", err)
	}

	return assignment, nil
}

func (s *ClassroomService) ListAssignments(ctx context.Context) ([]domain.Assignment, error) {
	assignments, err := s.repo.ListAssignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListAssignments -> %w", err)
	}

	return assignments, nil
}

func (s *ClassroomService) UpdateAssignment(ctx context.Context, assignment domain.Assignment) (domain.Assignment, error) {
	updated, err := s.repo.UpdateAssignment(ctx, assignment)
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("s.repo.UpdateAssignment -> %w", err)
	}

	return updated, nil
}

// DeleteAssignment also removes the assignment's submissions and
// grades, per the declared cascade policy.
func (s *ClassroomService) DeleteAssignment(ctx context.Context, id string) error {
	if err := s.repo.DeleteAssignment(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteAssignment -> %w", err)
	}

	return nil
}

// SubmitAssignment records a student's submission. Students may only
// submit as themselves.
func (s *ClassroomService) SubmitAssignment(ctx context.Context, caller domain.Identity, submission domain.Submission) (domain.Submission, error) {
	if !caller.Owns(submission.StudentID) {
		return domain.Submission{}, ErrNotRecordOwner
	}

	if _, err := s.repo.FindAssignmentByID(ctx, submission.AssignmentID); err != nil {
		return domain.Submission{}, fmt.Errorf("s.repo.FindAssignmentByID -> %w", err)
	}

	submission.SubmittedAt = time.Now()

	created, err := s.repo.CreateSubmission(ctx, submission)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("s.repo.CreateSubmission -> %w", err)
	}

	return created, nil
}

func (s *ClassroomService) ListSubmissions(ctx context.Context, assignmentID string) ([]domain.Submission, error) {
	submissions, err := s.repo.ListSubmissionsByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListSubmissionsByAssignment -> %w", err)
	}

	return submissions, nil
}

func (s *ClassroomService) CreateQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	created, err := s.repo.CreateQuiz(ctx, quiz)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("s.repo.CreateQuiz -> %w", err)
	}

	return created, nil
}

// GetQuiz returns the quiz with answer keys and explanations stripped
// for student callers.
func (s *ClassroomService) GetQuiz(ctx context.Context, caller domain.Identity, id string) (domain.Quiz, error) {
	quiz, err := s.repo.FindQuizByID(ctx, id)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("s.repo.FindQuizByID -> %w", err)
	}

	if caller.Role == domain.RoleStudent {
		return quiz.Sanitized(), nil
	}

	return quiz, nil
}

func (s *ClassroomService) ListQuizzes(ctx context.Context, caller domain.Identity) ([]domain.Quiz, error) {
	quizzes, err := s.repo.ListQuizzes(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListQuizzes -> %w", err)
	}

	if caller.Role == domain.RoleStudent {
		for i, quiz := range quizzes {
			quizzes[i] = quiz.Sanitized()
		}
	}

	return quizzes, nil
}

func (s *ClassroomService) UpdateQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	updated, err := s.repo.UpdateQuiz(ctx, quiz)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("s.repo.UpdateQuiz -> %w", err)
	}

	return updated, nil
}

// DeleteQuiz also removes the quiz's questions and attempts, per the
// declared cascade policy.
func (s *ClassroomService) DeleteQuiz(ctx context.Context, id string) error {
	if err := s.repo.DeleteQuiz(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteQuiz -> %w", err)
	}

	return nil
}

// AttemptQuiz grades the submitted answers against the stored answer
// key and records the attempt. Students may only attempt as themselves.
func (s *ClassroomService) AttemptQuiz(ctx context.Context, caller domain.Identity, quizID string, studentID string, answers []int) (domain.Attempt, error) {
	if !caller.Owns(studentID) {
		return domain.Attempt{}, ErrNotRecordOwner
	}

	quiz, err := s.repo.FindQuizByID(ctx, quizID)
	if err != nil {
		return domain.Attempt{}, fmt.Errorf("s.repo.FindQuizByID -> %w", err)
	}

	created, err := s.repo.CreateAttempt(ctx, domain.Attempt{
		QuizID:      quizID,
		StudentID:   studentID,
		Answers:     answers,
		Score:       quiz.Score(answers),
		AttemptedAt: time.Now(),
	})
	if err != nil {
		return domain.Attempt{}, fmt.Errorf("s.repo.CreateAttempt -> %w", err)
	}

	return created, nil
}

func (s *ClassroomService) ListAttempts(ctx context.Context, quizID string) ([]domain.Attempt, error) {
	attempts, err := s.repo.ListAttemptsByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListAttemptsByQuiz -> %w", err)
	}

	return attempts, nil
}

// RecordProgress marks a lesson complete (or not) for a student,
// stamping CompletedAt on completion.
func (s *ClassroomService) RecordProgress(ctx context.Context, progress domain.Progress) (domain.Progress, error) {
	if _, err := s.repo.FindLessonByID(ctx, progress.LessonID); err != nil {
		return domain.Progress{}, fmt.Errorf("s.repo.FindLessonByID -> %w", err)
	}

	if progress.Completed && progress.CompletedAt == nil {
		now := time.Now()
		progress.CompletedAt = &now
	}
	if !progress.Completed {
		progress.CompletedAt = nil
	}

	saved, err := s.repo.UpsertProgress(ctx, progress)
	if err != nil {
		return domain.Progress{}, fmt.Errorf("s.repo.UpsertProgress -> %w", err)
	}

	return saved, nil
}

func (s *ClassroomService) ListProgress(ctx context.Context, studentID string) ([]domain.Progress, error) {
	records, err := s.repo.ListProgressByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListProgressByStudent -> %w", err)
	}

	return records, nil
}

// RecordGrade stores a grade; at most one grade may exist per
// assignment/student pair.
func (s *ClassroomService) RecordGrade(ctx context.Context, grade domain.Grade) (domain.Grade, error) {
	if _, err := s.repo.FindAssignmentByID(ctx, grade.AssignmentID); err != nil {
		return domain.Grade{}, fmt.Errorf("s.repo.FindAssignmentByID -> %w", err)
	}

	created, err := s.repo.CreateGrade(ctx, grade)
	if err != nil {
		return domain.Grade{}, fmt.Errorf("s.repo.CreateGrade -> %w", err)
	}

	return created, nil
}

func (s *ClassroomService) ListGrades(ctx context.Context, studentID string) ([]domain.Grade, error) {
	if studentID != "" {
		grades, err := s.repo.ListGradesByStudent(ctx, studentID)
		if err != nil {
			return nil, fmt.Errorf("s.repo.ListGradesByStudent -> %w", err)
		}

		return grades, nil
	}

	grades, err := s.repo.ListGrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListGrades -> %w", err)
	}

	return grades, nil
}
