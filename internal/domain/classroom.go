package domain

import (
	"math"
	"time"
)

type CourseMaterial struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Lesson struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	MaterialID string    `json:"material_id,omitempty"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Assignment struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	LessonID    string     `json:"lesson_id,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Submission struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignment_id"`
	StudentID    string    `json:"student_id"`
	Content      string    `json:"content"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

type QuizQuestion struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
}

type Quiz struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	LessonID  string         `json:"lesson_id,omitempty"`
	Questions []QuizQuestion `json:"questions"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Sanitized strips answer keys and explanations from the questions, for
// serialization to student callers prior to attempt submission.
func (q Quiz) Sanitized() Quiz {
	questions := make([]QuizQuestion, len(q.Questions))
	for i, question := range q.Questions {
		question.CorrectAnswer = 0
		question.Explanation = ""
		questions[i] = question
	}
	q.Questions = questions

	return q
}

// Score grades a set of answers (option index per question, -1 for
// unanswered) as a 0-100 percentage, rounded half away from zero.
func (q Quiz) Score(answers []int) int {
	if len(q.Questions) == 0 {
		return 0
	}

	correct := 0
	for i, question := range q.Questions {
		if i < len(answers) && answers[i] == question.CorrectAnswer {
			correct++
		}
	}

	return int(math.Round(float64(correct) / float64(len(q.Questions)) * 100))
}

type Attempt struct {
	ID          string    `json:"id"`
	QuizID      string    `json:"quiz_id"`
	StudentID   string    `json:"student_id"`
	Answers     []int     `json:"answers"`
	Score       int       `json:"score"`
	AttemptedAt time.Time `json:"attempted_at"`
}

type Progress struct {
	ID          string     `json:"id"`
	StudentID   string     `json:"student_id"`
	LessonID    string     `json:"lesson_id"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Grade struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignment_id"`
	StudentID    string    `json:"student_id"`
	Score        int       `json:"score"`
	Feedback     string    `json:"feedback"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
