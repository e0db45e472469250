package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrMaterialNotFound   = errors.New("course material not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrAttemptNotFound    = errors.New("attempt not found")
	ErrProgressNotFound   = errors.New("progress not found")
	ErrGradeNotFound      = errors.New("grade not found")
	ErrGradeExists        = errors.New("grade already recorded for this assignment and student")
)

type CourseMaterial struct {
	ID string `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Description string
	Type        string
	URL         string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Lesson struct {
	ID string `gorm:"primaryKey"`

	Title      string `gorm:"not null"`
	Content    string `gorm:"type:text"`
	MaterialID *string
	Position   int

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Assignment struct {
	ID string `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	LessonID    *string
	DueAt       *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Submission struct {
	ID string `gorm:"primaryKey"`

	AssignmentID string `gorm:"not null;index"`
	StudentID    string `gorm:"not null;index"`
	Content      string `gorm:"type:text"`

	SubmittedAt time.Time `gorm:"not null"`
}

type Quiz struct {
	ID string `gorm:"primaryKey"`

	Title    string `gorm:"not null"`
	LessonID *string

	Questions []QuizQuestion `gorm:"foreignKey:QuizID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type QuizQuestion struct {
	ID     string `gorm:"primaryKey"`
	QuizID string `gorm:"not null;index"`

	Prompt        string   `gorm:"not null"`
	Options       []string `gorm:"serializer:json"`
	CorrectAnswer int      `gorm:"not null"`
	Explanation   string
	Position      int
}

type Attempt struct {
	ID string `gorm:"primaryKey"`

	QuizID    string `gorm:"not null;index"`
	StudentID string `gorm:"not null;index"`
	Answers   []int  `gorm:"serializer:json"`
	Score     int    `gorm:"not null"`

	AttemptedAt time.Time `gorm:"not null"`
}

type Progress struct {
	ID string `gorm:"primaryKey"`

	StudentID   string `gorm:"not null;index:idx_progress_student_lesson,unique"`
	LessonID    string `gorm:"not null;index:idx_progress_student_lesson,unique"`
	Completed   bool   `gorm:"not null"`
	CompletedAt *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Grade struct {
	ID string `gorm:"primaryKey"`

	AssignmentID string `gorm:"not null;index:idx_grades_assignment_student,unique"`
	StudentID    string `gorm:"not null;index:idx_grades_assignment_student,unique"`
	Score        int    `gorm:"not null"`
	Feedback     string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ClassroomDAO struct {
	db *gorm.DB
}

func NewClassroomDAO(db *gorm.DB) *ClassroomDAO {
	return &ClassroomDAO{
		db: db,
	}
}

func (d *ClassroomDAO) InsertMaterial(ctx context.Context, material CourseMaterial) (CourseMaterial, error) {
	result := d.db.WithContext(ctx).Create(&material)
	if result.Error != nil {
		return CourseMaterial{}, result.Error
	}

	return material, nil
}

func (d *ClassroomDAO) FindMaterialByID(ctx context.Context, id string) (CourseMaterial, error) {
	var material CourseMaterial

	result := d.db.WithContext(ctx).First(&material, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return CourseMaterial{}, ErrMaterialNotFound
		}

		return CourseMaterial{}, result.Error
	}

	return material, nil
}

func (d *ClassroomDAO) ListMaterials(ctx context.Context) ([]CourseMaterial, error) {
	var materials []CourseMaterial

	result := d.db.WithContext(ctx).Order("created_at").Find(&materials)
	if result.Error != nil {
		return nil, result.Error
	}

	return materials, nil
}

func (d *ClassroomDAO) UpdateMaterial(ctx context.Context, material CourseMaterial) (CourseMaterial, error) {
	result := d.db.WithContext(ctx).Model(&CourseMaterial{}).
		Where("id = ?", material.ID).
		Updates(map[string]interface{}{
			"title":       material.Title,
			"description": material.Description,
			"type":        material.Type,
			"url":         material.URL,
		})
	if result.Error != nil {
		return CourseMaterial{}, result.Error
	}
	if result.RowsAffected == 0 {
		return CourseMaterial{}, ErrMaterialNotFound
	}

	return d.FindMaterialByID(ctx, material.ID)
}

func (d *ClassroomDAO) DeleteMaterial(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&CourseMaterial{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMaterialNotFound
	}

	return nil
}

func (d *ClassroomDAO) InsertLesson(ctx context.Context, lesson Lesson) (Lesson, error) {
	result := d.db.WithContext(ctx).Create(&lesson)
	if result.Error != nil {
		return Lesson{}, result.Error
	}

	return lesson, nil
}

func (d *ClassroomDAO) FindLessonByID(ctx context.Context, id string) (Lesson, error) {
	var lesson Lesson

	result := d.db.WithContext(ctx).First(&lesson, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Lesson{}, ErrLessonNotFound
		}

		return Lesson{}, result.Error
	}

	return lesson, nil
}

func (d *ClassroomDAO) ListLessons(ctx context.Context) ([]Lesson, error) {
	var lessons []Lesson

	result := d.db.WithContext(ctx).Order("position, created_at").Find(&lessons)
	if result.Error != nil {
		return nil, result.Error
	}

	return lessons, nil
}

func (d *ClassroomDAO) UpdateLesson(ctx context.Context, lesson Lesson) (Lesson, error) {
	result := d.db.WithContext(ctx).Model(&Lesson{}).
		Where("id = ?", lesson.ID).
		Updates(map[string]interface{}{
			"title":       lesson.Title,
			"content":     lesson.Content,
			"material_id": lesson.MaterialID,
			"position":    lesson.Position,
		})
	if result.Error != nil {
		return Lesson{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Lesson{}, ErrLessonNotFound
	}

	return d.FindLessonByID(ctx, lesson.ID)
}

// DeleteLesson cascades to the lesson's progress records.
func (d *ClassroomDAO) DeleteLesson(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Progress{}, "lesson_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&Lesson{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrLessonNotFound
		}

		return nil
	})
}

func (d *ClassroomDAO) InsertAssignment(ctx context.Context, assignment Assignment) (Assignment, error) {
	result := d.db.WithContext(ctx).Create(&assignment)
	if result.Error != nil {
		return Assignment{}, result.Error
	}

	return assignment, nil
}

func (d *ClassroomDAO) FindAssignmentByID(ctx context.Context, id string) (Assignment, error) {
	var assignment Assignment

	result := d.db.WithContext(ctx).First(&assignment, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Assignment{}, ErrAssignmentNotFound
		}

		return Assignment{}, result.Error
	}

	return assignment, nil
}

func (d *ClassroomDAO) ListAssignments(ctx context.Context) ([]Assignment, error) {
	var assignments []Assignment

	result := d.db.WithContext(ctx).Order("created_at").Find(&assignments)
	if result.Error != nil {
		return nil, result.Error
	}

	return assignments, nil
}

func (d *ClassroomDAO) UpdateAssignment(ctx context.Context, assignment Assignment) (Assignment, error) {
	result := d.db.WithContext(ctx).Model(&Assignment{}).
		Where("id = ?", assignment.ID).
		Updates(map[string]interface{}{
			"title":       assignment.Title,
			"description": assignment.Description,
			"lesson_id":   assignment.LessonID,
			"due_at":      assignment.DueAt,
		})
	if result.Error != nil {
		return Assignment{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Assignment{}, ErrAssignmentNotFound
	}

	return d.FindAssignmentByID(ctx, assignment.ID)
}

// DeleteAssignment cascades to the assignment's submissions and grades.
func (d *ClassroomDAO) DeleteAssignment(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Submission{}, "assignment_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&Grade{}, "assignment_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&Assignment{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAssignmentNotFound
		}

		return nil
	})
}

func (d *ClassroomDAO) InsertSubmission(ctx context.Context, submission Submission) (Submission, error) {
	result := d.db.WithContext(ctx).Create(&submission)
	if result.Error != nil {
		return Submission{}, result.Error
	}

	return submission, nil
}

func (d *ClassroomDAO) ListSubmissionsByAssignment(ctx context.Context, assignmentID string) ([]Submission, error) {
	var submissions []Submission

	result := d.db.WithContext(ctx).Where("assignment_id = ?", assignmentID).Order("submitted_at").Find(&submissions)
	if result.Error != nil {
		return nil, result.Error
	}

	return submissions, nil
}

func (d *ClassroomDAO) InsertQuiz(ctx context.Context, quiz Quiz) (Quiz, error) {
	result := d.db.WithContext(ctx).Create(&quiz)
	if result.Error != nil {
		return Quiz{}, result.Error
	}

	return quiz, nil
}

func (d *ClassroomDAO) FindQuizByID(ctx context.Context, id string) (Quiz, error) {
	var quiz Quiz

	result := d.db.WithContext(ctx).Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("quiz_questions.position")
	}).First(&quiz, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Quiz{}, ErrQuizNotFound
		}

		return Quiz{}, result.Error
	}

	return quiz, nil
}

func (d *ClassroomDAO) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	var quizzes []Quiz

	result := d.db.WithContext(ctx).Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("quiz_questions.position")
	}).Order("created_at").Find(&quizzes)
	if result.Error != nil {
		return nil, result.Error
	}

	return quizzes, nil
}

// UpdateQuiz replaces the quiz and its full question set.
func (d *ClassroomDAO) UpdateQuiz(ctx context.Context, quiz Quiz) (Quiz, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Quiz{}).
			Where("id = ?", quiz.ID).
			Updates(map[string]interface{}{
				"title":     quiz.Title,
				"lesson_id": quiz.LessonID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrQuizNotFound
		}

		if err := tx.Delete(&QuizQuestion{}, "quiz_id = ?", quiz.ID).Error; err != nil {
			return err
		}
		if len(quiz.Questions) > 0 {
			if err := tx.Create(&quiz.Questions).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return Quiz{}, err
	}

	return d.FindQuizByID(ctx, quiz.ID)
}

// DeleteQuiz cascades to the quiz's questions and attempts.
func (d *ClassroomDAO) DeleteQuiz(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&QuizQuestion{}, "quiz_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&Attempt{}, "quiz_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&Quiz{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrQuizNotFound
		}

		return nil
	})
}

func (d *ClassroomDAO) InsertAttempt(ctx context.Context, attempt Attempt) (Attempt, error) {
	result := d.db.WithContext(ctx).Create(&attempt)
	if result.Error != nil {
		return Attempt{}, result.Error
	}

	return attempt, nil
}

func (d *ClassroomDAO) ListAttemptsByQuiz(ctx context.Context, quizID string) ([]Attempt, error) {
	var attempts []Attempt

	result := d.db.WithContext(ctx).Where("quiz_id = ?", quizID).Order("attempted_at").Find(&attempts)
	if result.Error != nil {
		return nil, result.Error
	}

	return attempts, nil
}

func (d *ClassroomDAO) UpsertProgress(ctx context.Context, progress Progress) (Progress, error) {
	var existing Progress

	err := d.db.WithContext(ctx).
		First(&existing, "student_id = ? AND lesson_id = ?", progress.StudentID, progress.LessonID).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return Progress{}, err
		}

		if createErr := d.db.WithContext(ctx).Create(&progress).Error; createErr != nil {
			return Progress{}, createErr
		}

		return progress, nil
	}

	result := d.db.WithContext(ctx).Model(&Progress{}).
		Where("id = ?", existing.ID).
		Updates(map[string]interface{}{
			"completed":    progress.Completed,
			"completed_at": progress.CompletedAt,
		})
	if result.Error != nil {
		return Progress{}, result.Error
	}
	progress.ID = existing.ID
	progress.CreatedAt = existing.CreatedAt

	return progress, nil
}

func (d *ClassroomDAO) ListProgressByStudent(ctx context.Context, studentID string) ([]Progress, error) {
	var records []Progress

	result := d.db.WithContext(ctx).Where("student_id = ?", studentID).Order("updated_at").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

func (d *ClassroomDAO) InsertGrade(ctx context.Context, grade Grade) (Grade, error) {
	result := d.db.WithContext(ctx).Create(&grade)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Grade{}, ErrGradeExists
		}

		return Grade{}, result.Error
	}

	return grade, nil
}

func (d *ClassroomDAO) ListGradesByStudent(ctx context.Context, studentID string) ([]Grade, error) {
	var grades []Grade

	result := d.db.WithContext(ctx).Where("student_id = ?", studentID).Order("created_at").Find(&grades)
	if result.Error != nil {
		return nil, result.Error
	}

	return grades, nil
}

func (d *ClassroomDAO) ListGrades(ctx context.Context) ([]Grade, error) {
	var grades []Grade

	result := d.db.WithContext(ctx).Order("created_at").Find(&grades)
	if result.Error != nil {
		return nil, result.Error
	}

	return grades, nil
}
