package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type MaterialRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	URL         string `json:"url"`
}

func (req *MaterialRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.Type, validation.Required, validation.In("video", "document", "link")),
		validation.Field(&req.URL, validation.Required, validation.Length(1, 2048)),
	)
}

type LessonRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	MaterialID string `json:"material_id"`
	Position   int    `json:"position"`
}

func (req *LessonRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Content, validation.Length(0, 20000)),
		validation.Field(&req.Position, validation.Min(0)),
	)
}

type AssignmentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	LessonID    string `json:"lesson_id"`
	DueAt       string `json:"due_at"` // RFC 3339, optional
}

func (req *AssignmentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Description, validation.Length(0, 5000)),
	)
}

type SubmissionRequest struct {
	Content string `json:"content"`
}

func (req *SubmissionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Content, validation.Required, validation.Length(1, 20000)),
	)
}

type QuizQuestionRequest struct {
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

func (req QuizQuestionRequest) Validate() error {
	return validation.ValidateStruct(
		&req,
		validation.Field(&req.Prompt, validation.Required, validation.Length(1, 1000)),
		validation.Field(&req.Options, validation.Required, validation.Length(2, 10)),
		validation.Field(&req.CorrectAnswer, validation.Min(0), validation.Max(len(req.Options)-1)),
	)
}

type QuizRequest struct {
	Title     string                `json:"title"`
	LessonID  string                `json:"lesson_id"`
	Questions []QuizQuestionRequest `json:"questions"`
}

func (req *QuizRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Questions, validation.Required),
	)
}

type AttemptRequest struct {
	Answers []int `json:"answers"`
}

func (req *AttemptRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Answers, validation.Required),
	)
}

type ProgressRequest struct {
	LessonID  string `json:"lesson_id"`
	Completed bool   `json:"completed"`
}

func (req *ProgressRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.LessonID, validation.Required),
	)
}

type GradeRequest struct {
	AssignmentID string `json:"assignment_id"`
	StudentID    string `json:"student_id"`
	Score        int    `json:"score"`
	Feedback     string `json:"feedback"`
}

func (req *GradeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.AssignmentID, validation.Required),
		validation.Field(&req.StudentID, validation.Required),
		validation.Field(&req.Score, validation.Min(0), validation.Max(100)),
		validation.Field(&req.Feedback, validation.Length(0, 2000)),
	)
}
