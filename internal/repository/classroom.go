package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/acadflow/academy-api/internal/domain"
	"github.com/acadflow/academy-api/internal/repository/dao"
)

var (
	ErrMaterialNotFound   = dao.ErrMaterialNotFound
	ErrLessonNotFound     = dao.ErrLessonNotFound
	ErrAssignmentNotFound = dao.ErrAssignmentNotFound
	ErrQuizNotFound       = dao.ErrQuizNotFound
	ErrGradeExists        = dao.ErrGradeExists
)

type ClassroomDAO interface {
	InsertMaterial(ctx context.Context, material dao.CourseMaterial) (dao.CourseMaterial, error)
	FindMaterialByID(ctx context.Context, id string) (dao.CourseMaterial, error)
	ListMaterials(ctx context.Context) ([]dao.CourseMaterial, error)
	UpdateMaterial(ctx context.Context, material dao.CourseMaterial) (dao.CourseMaterial, error)
	DeleteMaterial(ctx context.Context, id string) error

	InsertLesson(ctx context.Context, lesson dao.Lesson) (dao.Lesson, error)
	FindLessonByID(ctx context.Context, id string) (dao.Lesson, error)
	ListLessons(ctx context.Context) ([]dao.Lesson, error)
	UpdateLesson(ctx context.Context, lesson dao.Lesson) (dao.Lesson, error)
	DeleteLesson(ctx context.Context, id string) error

	InsertAssignment(ctx context.Context, assignment dao.Assignment) (dao.Assignment, error)
	FindAssignmentByID(ctx context.Context, id string) (dao.Assignment, error)
	ListAssignments(ctx context.Context) ([]dao.Assignment, error)
	UpdateAssignment(ctx context.Context, assignment dao.Assignment) (dao.Assignment, error)
	DeleteAssignment(ctx context.Context, id string) error

	InsertSubmission(ctx context.Context, submission dao.Submission) (dao.Submission, error)
	ListSubmissionsByAssignment(ctx context.Context, assignmentID string) ([]dao.Submission, error)

	InsertQuiz(ctx context.Context, quiz dao.Quiz) (dao.Quiz, error)
	FindQuizByID(ctx context.Context, id string) (dao.Quiz, error)
	ListQuizzes(ctx context.Context) ([]dao.Quiz, error)
	UpdateQuiz(ctx context.Context, quiz dao.Quiz) (dao.Quiz, error)
	DeleteQuiz(ctx context.Context, id string) error

	InsertAttempt(ctx context.Context, attempt dao.Attempt) (dao.Attempt, error)
	ListAttemptsByQuiz(ctx context.Context, quizID string) ([]dao.Attempt, error)

	UpsertProgress(ctx context.Context, progress dao.Progress) (dao.Progress, error)
	ListProgressByStudent(ctx context.Context, studentID string) ([]dao.Progress, error)

	InsertGrade(ctx context.Context, grade dao.Grade) (dao.Grade, error)
	ListGradesByStudent(ctx context.Context, studentID string) ([]dao.Grade, error)
	ListGrades(ctx context.Context) ([]dao.Grade, error)
}

type ClassroomRepository struct {
	dao ClassroomDAO
}

func NewClassroomRepository(dao ClassroomDAO) *ClassroomRepository {
	return &ClassroomRepository{
		dao: dao,
	}
}

func (r *ClassroomRepository) CreateMaterial(ctx context.Context, material domain.CourseMaterial) (domain.CourseMaterial, error) {
	if material.ID == "" {
		material.ID = uuid.NewString()
	}

	created, err := r.dao.InsertMaterial(ctx, dao.CourseMaterial{
		ID:          material.ID,
		Title:       material.Title,
		Description: material.Description,
		Type:        material.Type,
		URL:         material.URL,
	})
	if err != nil {
		return domain.CourseMaterial{}, fmt.Errorf("r.dao.InsertMaterial -> %w", err)
	}

	return materialToDomain(created), nil
}

func (r *ClassroomRepository) FindMaterialByID(ctx context.Context, id string) (domain.CourseMaterial, error) {
	found, err := r.dao.FindMaterialByID(ctx, id)
	if err != nil {
		return domain.CourseMaterial{}, fmt.Errorf("r.dao.FindMaterialByID -> %w", err)
	}

	return materialToDomain(found), nil
}

func (r *ClassroomRepository) ListMaterials(ctx context.Context) ([]domain.CourseMaterial, error) {
	found, err := r.dao.ListMaterials(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListMaterials -> %w", err)
	}

	materials := make([]domain.CourseMaterial, len(found))
	for i, m := range found {
		materials[i] = materialToDomain(m)
	}

	return materials, nil
}

func (r *ClassroomRepository) UpdateMaterial(ctx context.Context, material domain.CourseMaterial) (domain.CourseMaterial, error) {
	updated, err := r.dao.UpdateMaterial(ctx, dao.CourseMaterial{
		ID:          material.ID,
		Title:       material.Title,
		Description: material.Description,
		Type:        material.Type,
		URL:         material.URL,
	})
	if err != nil {
		return domain.CourseMaterial{}, fmt.Errorf("r.dao.UpdateMaterial -> %w", err)
	}

	return materialToDomain(updated), nil
}

func (r *ClassroomRepository) DeleteMaterial(ctx context.Context, id string) error {
	if err := r.dao.DeleteMaterial(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteMaterial -> %w", err)
	}

	return nil
}

func (r *ClassroomRepository) CreateLesson(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error) {
	if lesson.ID == "" {
		lesson.ID = uuid.NewString()
	}

	created, err := r.dao.InsertLesson(ctx, lessonToDAO(lesson))
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("r.dao.InsertLesson -> %w", err)
	}

	return lessonToDomain(created), nil
}

func (r *ClassroomRepository) FindLessonByID(ctx context.Context, id string) (domain.Lesson, error) {
	found, err := r.dao.FindLessonByID(ctx, id)
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("r.dao.FindLessonByID -> %w", err)
	}

	return lessonToDomain(found), nil
}

func (r *ClassroomRepository) ListLessons(ctx context.Context) ([]domain.Lesson, error) {
	found, err := r.dao.ListLessons(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListLessons -> %w", err)
	}

	lessons := make([]domain.Lesson, len(found))
	for i, l := range found {
		lessons[i] = lessonToDomain(l)
	}

	return lessons, nil
}

func (r *ClassroomRepository) UpdateLesson(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error) {
	updated, err := r.dao.UpdateLesson(ctx, lessonToDAO(lesson))
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("r.dao.UpdateLesson -> %w", err)
	}

	return lessonToDomain(updated), nil
}

func (r *ClassroomRepository) DeleteLesson(ctx context.Context, id string) error {
	if err := r.dao.DeleteLesson(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteLesson -> %w", err)
	}

	return nil
}

func (r *ClassroomRepository) CreateAssignment(ctx context.Context, assignment domain.Assignment) (domain.Assignment, error) {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}

	created, err := r.dao.InsertAssignment(ctx, assignmentToDAO(assignment))
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("r.dao.InsertAssignment -> %w", err)
	}

	return assignmentToDomain(created), nil
}

func (r *ClassroomRepository) FindAssignmentByID(ctx context.Context, id string) (domain.Assignment, error) {
	found, err := r.dao.FindAssignmentByID(ctx, id)
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("r.dao.FindAssignmentByID -> %w", err)
	}

	return assignmentToDomain(found), nil
}

func (r *ClassroomRepository) ListAssignments(ctx context.Context) ([]domain.Assignment, error) {
	found, err := r.dao.ListAssignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListAssignments -> %w", err)
	}

	assignments := make([]domain.Assignment, len(found))
	for i, a := range found {
		assignments[i] = assignmentToDomain(a)
	}

	return assignments, nil
}

func (r *ClassroomRepository) UpdateAssignment(ctx context.Context, assignment domain.Assignment) (domain.Assignment, error) {
	updated, err := r.dao.UpdateAssignment(ctx, assignmentToDAO(assignment))
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("r.dao.UpdateAssignment -> %w", err)
	}

	return assignmentToDomain(updated), nil
}

func (r *ClassroomRepository) DeleteAssignment(ctx context.Context, id string) error {
	if err := r.dao.DeleteAssignment(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteAssignment -> %w", err)
	}

	return nil
}

func (r *ClassroomRepository) CreateSubmission(ctx context.Context, submission domain.Submission) (domain.Submission, error) {
	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}

	created, err := r.dao.InsertSubmission(ctx, dao.Submission{
		ID:           submission.ID,
		AssignmentID: submission.AssignmentID,
		StudentID:    submission.StudentID,
		Content:      submission.Content,
		SubmittedAt:  submission.SubmittedAt,
	})
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.InsertSubmission -> %w", err)
	}

	return submissionToDomain(created), nil
}

func (r *ClassroomRepository) ListSubmissionsByAssignment(ctx context.Context, assignmentID string) ([]domain.Submission, error) {
	found, err := r.dao.ListSubmissionsByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListSubmissionsByAssignment -> %w", err)
	}

	submissions := make([]domain.Submission, len(found))
	for i, s := range found {
		submissions[i] = submissionToDomain(s)
	}

	return submissions, nil
}

func (r *ClassroomRepository) CreateQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	if quiz.ID == "" {
		quiz.ID = uuid.NewString()
	}

	created, err := r.dao.InsertQuiz(ctx, quizToDAO(quiz))
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("r.dao.InsertQuiz -> %w", err)
	}

	return quizToDomain(created), nil
}

func (r *ClassroomRepository) FindQuizByID(ctx context.Context, id string) (domain.Quiz, error) {
	found, err := r.dao.FindQuizByID(ctx, id)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("r.dao.FindQuizByID -> %w", err)
	}

	return quizToDomain(found), nil
}

func (r *ClassroomRepository) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	found, err := r.dao.ListQuizzes(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListQuizzes -> %w", err)
	}

	quizzes := make([]domain.Quiz, len(found))
	for i, q := range found {
		quizzes[i] = quizToDomain(q)
	}

	return quizzes, nil
}

func (r *ClassroomRepository) UpdateQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	updated, err := r.dao.UpdateQuiz(ctx, quizToDAO(quiz))
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("r.dao.UpdateQuiz -> %w", err)
	}

	return quizToDomain(updated), nil
}

func (r *ClassroomRepository) DeleteQuiz(ctx context.Context, id string) error {
	if err := r.dao.DeleteQuiz(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteQuiz -> %w", err)
	}

	return nil
}

func (r *ClassroomRepository) CreateAttempt(ctx context.Context, attempt domain.Attempt) (domain.Attempt, error) {
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}

	created, err := r.dao.InsertAttempt(ctx, dao.Attempt{
		ID:          attempt.ID,
		QuizID:      attempt.QuizID,
		StudentID:   attempt.StudentID,
		Answers:     attempt.Answers,
		Score:       attempt.Score,
		AttemptedAt: attempt.AttemptedAt,
	})
	if err != nil {
		return domain.Attempt{}, fmt.Errorf("r.dao.InsertAttempt -> %w", err)
	}

	return attemptToDomain(created), nil
}

func (r *ClassroomRepository) ListAttemptsByQuiz(ctx context.Context, quizID string) ([]domain.Attempt, error) {
	found, err := r.dao.ListAttemptsByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListAttemptsByQuiz -> %w", err)
	}

	attempts := make([]domain.Attempt, len(found))
	for i, a := range found {
		attempts[i] = attemptToDomain(a)
	}

	return attempts, nil
}

func (r *ClassroomRepository) UpsertProgress(ctx context.Context, progress domain.Progress) (domain.Progress, error) {
	if progress.ID == "" {
		progress.ID = uuid.NewString()
	}

	saved, err := r.dao.UpsertProgress(ctx, dao.Progress{
		ID:          progress.ID,
		StudentID:   progress.StudentID,
		LessonID:    progress.LessonID,
		Completed:   progress.Completed,
		CompletedAt: progress.CompletedAt,
	})
	if err != nil {
		return domain.Progress{}, fmt.Errorf("r.dao.UpsertProgress -> %w", err)
	}

	return progressToDomain(saved), nil
}

func (r *ClassroomRepository) ListProgressByStudent(ctx context.Context, studentID string) ([]domain.Progress, error) {
	found, err := r.dao.ListProgressByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListProgressByStudent -> %w", err)
	}

	records := make([]domain.Progress, len(found))
	for i, p := range found {
		records[i] = progressToDomain(p)
	}

	return records, nil
}

func (r *ClassroomRepository) CreateGrade(ctx context.Context, grade domain.Grade) (domain.Grade, error) {
	if grade.ID == "" {
		grade.ID = uuid.NewString()
	}

	created, err := r.dao.InsertGrade(ctx, dao.Grade{
		ID:           grade.ID,
		AssignmentID: grade.AssignmentID,
		StudentID:    grade.StudentID,
		Score:        grade.Score,
		Feedback:     grade.Feedback,
	})
	if err != nil {
		return domain.Grade{}, fmt.Errorf("r.dao.InsertGrade -> %w", err)
	}

	return gradeToDomain(created), nil
}

func (r *ClassroomRepository) ListGradesByStudent(ctx context.Context, studentID string) ([]domain.Grade, error) {
	found, err := r.dao.ListGradesByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListGradesByStudent -> %w", err)
	}

	grades := make([]domain.Grade, len(found))
	for i, g := range found {
		grades[i] = gradeToDomain(g)
	}

	return grades, nil
}

func (r *ClassroomRepository) ListGrades(ctx context.Context) ([]domain.Grade, error) {
	found, err := r.dao.ListGrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListGrades -> %w", err)
	}

	grades := make([]domain.Grade, len(found))
	for i, g := range found {
		grades[i] = gradeToDomain(g)
	}

	return grades, nil
}

func materialToDomain(m dao.CourseMaterial) domain.CourseMaterial {
	return domain.CourseMaterial{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Type:        m.Type,
		URL:         m.URL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func lessonToDAO(l domain.Lesson) dao.Lesson {
	var materialID *string
	if l.MaterialID != "" {
		materialID = &l.MaterialID
	}

	return dao.Lesson{
		ID:         l.ID,
		Title:      l.Title,
		Content:    l.Content,
		MaterialID: materialID,
		Position:   l.Position,
	}
}

func lessonToDomain(l dao.Lesson) domain.Lesson {
	var materialID string
	if l.MaterialID != nil {
		materialID = *l.MaterialID
	}

	return domain.Lesson{
		ID:         l.ID,
		Title:      l.Title,
		Content:    l.Content,
		MaterialID: materialID,
		Position:   l.Position,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

func assignmentToDAO(a domain.Assignment) dao.Assignment {
	var lessonID *string
	if a.LessonID != "" {
		lessonID = &a.LessonID
	}

	return dao.Assignment{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		LessonID:    lessonID,
		DueAt:       a.DueAt,
	}
}

func assignmentToDomain(a dao.Assignment) domain.Assignment {
	var lessonID string
	if a.LessonID != nil {
		lessonID = *a.LessonID
	}

	return domain.Assignment{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		LessonID:    lessonID,
		DueAt:       a.DueAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func submissionToDomain(s dao.Submission) domain.Submission {
	return domain.Submission{
		ID:           s.ID,
		AssignmentID: s.AssignmentID,
		StudentID:    s.StudentID,
		Content:      s.Content,
		SubmittedAt:  s.SubmittedAt,
	}
}

func quizToDAO(q domain.Quiz) dao.Quiz {
	var lessonID *string
	if q.LessonID != "" {
		lessonID = &q.LessonID
	}

	questions := make([]dao.QuizQuestion, len(q.Questions))
	for i, question := range q.Questions {
		id := question.ID
		if id == "" {
			id = uuid.NewString()
		}
		questions[i] = dao.QuizQuestion{
			ID:            id,
			QuizID:        q.ID,
			Prompt:        question.Prompt,
			Options:       question.Options,
			CorrectAnswer: question.CorrectAnswer,
			Explanation:   question.Explanation,
			Position:      i,
		}
	}

	return dao.Quiz{
		ID:        q.ID,
		Title:     q.Title,
		LessonID:  lessonID,
		Questions: questions,
	}
}

func quizToDomain(q dao.Quiz) domain.Quiz {
	var lessonID string
	if q.LessonID != nil {
		lessonID = *q.LessonID
	}

	questions := make([]domain.QuizQuestion, len(q.Questions))
	for i, question := range q.Questions {
		questions[i] = domain.QuizQuestion{
			ID:            question.ID,
			Prompt:        question.Prompt,
			Options:       question.Options,
			CorrectAnswer: question.CorrectAnswer,
			Explanation:   question.Explanation,
		}
	}

	return domain.Quiz{
		ID:        q.ID,
		Title:     q.Title,
		LessonID:  lessonID,
		Questions: questions,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}

func attemptToDomain(a dao.Attempt) domain.Attempt {
	return domain.Attempt{
		ID:          a.ID,
		QuizID:      a.QuizID,
		StudentID:   a.StudentID,
		Answers:     a.Answers,
		Score:       a.Score,
		AttemptedAt: a.AttemptedAt,
	}
}

func progressToDomain(p dao.Progress) domain.Progress {
	return domain.Progress{
		ID:          p.ID,
		StudentID:   p.StudentID,
		LessonID:    p.LessonID,
		Completed:   p.Completed,
		CompletedAt: p.CompletedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func gradeToDomain(g dao.Grade) domain.Grade {
	return domain.Grade{
		ID:           g.ID,
		AssignmentID: g.AssignmentID,
		StudentID:    g.StudentID,
		Score:        g.Score,
		Feedback:     g.Feedback,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}
