package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuiz_Score(t *testing.T) {
	quiz := Quiz{Questions: []QuizQuestion{
		{Prompt: "q1", Options: []string{"a", "b"}, CorrectAnswer: 0},
		{Prompt: "q2", Options: []string{"a", "b"}, CorrectAnswer: 1},
		{Prompt: "q3", Options: []string{"a", "b", "c"}, CorrectAnswer: 2},
	}}

	tests := []struct {
		name    string
		answers []int
		want    int
	}{
		{"all correct", []int{0, 1, 2}, 100},
		{"none correct", []int{1, 0, 0}, 0},
		{"two of three rounds up", []int{0, 1, 0}, 67},
		{"one of three rounds down", []int{0, 0, 0}, 33},
		{"short answer slice", []int{0}, 33},
		{"unanswered marker", []int{-1, -1, 2}, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, quiz.Score(tt.answers))
		})
	}
}

func TestQuiz_Score_NoQuestions(t *testing.T) {
	assert.Equal(t, 0, Quiz{}.Score([]int{0, 1}))
}

func TestQuiz_Sanitized(t *testing.T) {
	quiz := Quiz{Questions: []QuizQuestion{
		{Prompt: "q1", Options: []string{"a", "b"}, CorrectAnswer: 1, Explanation: "because"},
	}}

	sanitized := quiz.Sanitized()

	assert.Equal(t, "q1", sanitized.Questions[0].Prompt)
	assert.Zero(t, sanitized.Questions[0].CorrectAnswer)
	assert.Empty(t, sanitized.Questions[0].Explanation)

	// The original keeps its answer key.
	assert.Equal(t, 1, quiz.Questions[0].CorrectAnswer)
	assert.Equal(t, "because", quiz.Questions[0].Explanation)
}
