package service

import (
	"context"
	"fmt"
	"time"

	"github.com/acadflow/academy-api/internal/domain"
	"github.com/acadflow/academy-api/internal/repository"
)

type memClassroomRepo struct {
	seq         int
	materials   map[string]domain.CourseMaterial
	lessons     map[string]domain.Lesson
	assignments map[string]domain.Assignment
	submissions map[string]domain.Submission
	quizzes     map[string]domain.Quiz
	attempts    map[string]domain.Attempt
	progress    map[string]domain.Progress
	grades      map[string]domain.Grade
}

func newMemClassroomRepo() *memClassroomRepo {
	return &memClassroomRepo{
		materials:   make(map[string]domain.CourseMaterial),
		lessons:     make(map[string]domain.Lesson),
		assignments: make(map[string]domain.Assignment),
		submissions: make(map[string]domain.Submission),
		quizzes:     make(map[string]domain.Quiz),
		attempts:    make(map[string]domain.Attempt),
		progress:    make(map[string]domain.Progress),
		grades:      make(map[string]domain.Grade),
	}
}

func (r *memClassroomRepo) nextID(prefix string) string {
	r.seq++

	return fmt.Sprintf("%s-%d", prefix, r.seq)
}

func (r *memClassroomRepo) CreateMaterial(_ context.Context, material domain.CourseMaterial) (domain.CourseMaterial, error) {
	material.ID = r.nextID("mat")
	r.materials[material.ID] = material

	return material, nil
}

func (r *memClassroomRepo) FindMaterialByID(_ context.Context, id string) (domain.CourseMaterial, error) {
	material, ok := r.materials[id]
	if !ok {
		return domain.CourseMaterial{}, repository.ErrMaterialNotFound
	}

	return material, nil
}

func (r *memClassroomRepo) ListMaterials(_ context.Context) ([]domain.CourseMaterial, error) {
	out := make([]domain.CourseMaterial, 0, len(r.materials))
	for _, material := range r.materials {
		out = append(out, material)
	}

	return out, nil
}

func (r *memClassroomRepo) UpdateMaterial(_ context.Context, material domain.CourseMaterial) (domain.CourseMaterial, error) {
	if _, ok := r.materials[material.ID]; !ok {
		return domain.CourseMaterial{}, repository.ErrMaterialNotFound
	}
	r.materials[material.ID] = material

	return material, nil
}

func (r *memClassroomRepo) DeleteMaterial(_ context.Context, id string) error {
	if _, ok := r.materials[id]; !ok {
		return repository.ErrMaterialNotFound
	}
	delete(r.materials, id)

	return nil
}

func (r *memClassroomRepo) CreateLesson(_ context.Context, lesson domain.Lesson) (domain.Lesson, error) {
	lesson.ID = r.nextID("les")
	r.lessons[lesson.ID] = lesson

	return lesson, nil
}

func (r *memClassroomRepo) FindLessonByID(_ context.Context, id string) (domain.Lesson, error) {
	lesson, ok := r.lessons[id]
	if !ok {
		return domain.Lesson{}, repository.ErrLessonNotFound
	}

	return lesson, nil
}

func (r *memClassroomRepo) ListLessons(_ context.Context) ([]domain.Lesson, error) {
	out := make([]domain.Lesson, 0, len(r.lessons))
	for _, lesson := range r.lessons {
		out = append(out, lesson)
	}

	return out, nil
}

func (r *memClassroomRepo) UpdateLesson(_ context.Context, lesson domain.Lesson) (domain.Lesson, error) {
	if _, ok := r.lessons[lesson.ID]; !ok {
		return domain.Lesson{}, repository.ErrLessonNotFound
	}
	r.lessons[lesson.ID] = lesson

	return lesson, nil
}

func (r *memClassroomRepo) DeleteLesson(_ context.Context, id string) error {
	if _, ok := r.lessons[id]; !ok {
		return repository.ErrLessonNotFound
	}
	delete(r.lessons, id)
	for key, progress := range r.progress {
		if progress.LessonID == id {
			delete(r.progress, key)
		}
	}

	return nil
}

func (r *memClassroomRepo) CreateAssignment(_ context.Context, assignment domain.Assignment) (domain.Assignment, error) {
	assignment.ID = r.nextID("asg")
	r.assignments[assignment.ID] = assignment

	return assignment, nil
}

func (r *memClassroomRepo) FindAssignmentByID(_ context.Context, id string) (domain.Assignment, error) {
	assignment, ok := r.assignments[id]
	if !ok {
		return domain.Assignment{}, repository.ErrAssignmentNotFound
	}

	return assignment, nil
}

func (r *memClassroomRepo) ListAssignments(_ context.Context) ([]domain.Assignment, error) {
	out := make([]domain.Assignment, 0, len(r.assignments))
	for _, assignment := range r.assignments {
		out = append(out, assignment)
	}

	return out, nil
}

func (r *memClassroomRepo) UpdateAssignment(_ context.Context, assignment domain.Assignment) (domain.Assignment, error) {
	if _, ok := r.assignments[assignment.ID]; !ok {
		return domain.Assignment{}, repository.ErrAssignmentNotFound
	}
	r.assignments[assignment.ID] = assignment

	return assignment, nil
}

func (r *memClassroomRepo) DeleteAssignment(_ context.Context, id string) error {
	if _, ok := r.assignments[id]; !ok {
		return repository.ErrAssignmentNotFound
	}
	delete(r.assignments, id)
	for key, submission := range r.submissions {
		if submission.AssignmentID == id {
			delete(r.submissions, key)
		}
	}
	for key, grade := range r.grades {
		if grade.AssignmentID == id {
			delete(r.grades, key)
		}
	}

	return nil
}

func (r *memClassroomRepo) CreateSubmission(_ context.Context, submission domain.Submission) (domain.Submission, error) {
	submission.ID = r.nextID("sub")
	r.submissions[submission.ID] = submission

	return submission, nil
}

func (r *memClassroomRepo) ListSubmissionsByAssignment(_ context.Context, assignmentID string) ([]domain.Submission, error) {
	out := make([]domain.Submission, 0)
	for _, submission := range r.submissions {
		if submission.AssignmentID == assignmentID {
			out = append(out, submission)
		}
	}

	return out, nil
}

func (r *memClassroomRepo) CreateQuiz(_ context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	quiz.ID = r.nextID("qz")
	r.quizzes[quiz.ID] = quiz

	return quiz, nil
}

func (r *memClassroomRepo) FindQuizByID(_ context.Context, id string) (domain.Quiz, error) {
	quiz, ok := r.quizzes[id]
	if !ok {
		return domain.Quiz{}, repository.ErrQuizNotFound
	}

	return quiz, nil
}

func (r *memClassroomRepo) ListQuizzes(_ context.Context) ([]domain.Quiz, error) {
	out := make([]domain.Quiz, 0, len(r.quizzes))
	for _, quiz := range r.quizzes {
		out = append(out, quiz)
	}

	return out, nil
}

func (r *memClassroomRepo) UpdateQuiz(_ context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	if _, ok := r.quizzes[quiz.ID]; !ok {
		return domain.Quiz{}, repository.ErrQuizNotFound
	}
	r.quizzes[quiz.ID] = quiz

	return quiz, nil
}

func (r *memClassroomRepo) DeleteQuiz(_ context.Context, id string) error {
	if _, ok := r.quizzes[id]; !ok {
		return repository.ErrQuizNotFound
	}
	delete(r.quizzes, id)
	for key, attempt := range r.attempts {
		if attempt.QuizID == id {
			delete(r.attempts, key)
		}
	}

	return nil
}

func (r *memClassroomRepo) CreateAttempt(_ context.Context, attempt domain.Attempt) (domain.Attempt, error) {
	attempt.ID = r.nextID("att")
	r.attempts[attempt.ID] = attempt

	return attempt, nil
}

func (r *memClassroomRepo) ListAttemptsByQuiz(_ context.Context, quizID string) ([]domain.Attempt, error) {
	out := make([]domain.Attempt, 0)
	for _, attempt := range r.attempts {
		if attempt.QuizID == quizID {
			out = append(out, attempt)
		}
	}

	return out, nil
}

func (r *memClassroomRepo) UpsertProgress(_ context.Context, progress domain.Progress) (domain.Progress, error) {
	for _, existing := range r.progress {
		if existing.StudentID == progress.StudentID && existing.LessonID == progress.LessonID {
			progress.ID = existing.ID
			progress.CreatedAt = existing.CreatedAt
			progress.UpdatedAt = time.Now()
			r.progress[progress.ID] = progress

			return progress, nil
		}
	}

	progress.ID = r.nextID("prg")
	progress.CreatedAt = time.Now()
	progress.UpdatedAt = progress.CreatedAt
	r.progress[progress.ID] = progress

	return progress, nil
}

func (r *memClassroomRepo) ListProgressByStudent(_ context.Context, studentID string) ([]domain.Progress, error) {
	out := make([]domain.Progress, 0)
	for _, progress := range r.progress {
		if progress.StudentID == studentID {
			out = append(out, progress)
		}
	}

	return out, nil
}

func (r *memClassroomRepo) CreateGrade(_ context.Context, grade domain.Grade) (domain.Grade, error) {
	for _, existing := range r.grades {
		if existing.AssignmentID == grade.AssignmentID && existing.StudentID == grade.StudentID {
			return domain.Grade{}, repository.ErrGradeExists
		}
	}

	grade.ID = r.nextID("grd")
	r.grades[grade.ID] = grade

	return grade, nil
}

func (r *memClassroomRepo) ListGradesByStudent(_ context.Context, studentID string) ([]domain.Grade, error) {
	out := make([]domain.Grade, 0)
	for _, grade := range r.grades {
		if grade.StudentID == studentID {
			out = append(out, grade)
		}
	}

	return out, nil
}

func (r *memClassroomRepo) ListGrades(_ context.Context) ([]domain.Grade, error) {
	out := make([]domain.Grade, 0, len(r.grades))
	for _, grade := range r.grades {
		out = append(out, grade)
	}

	return out, nil
}
