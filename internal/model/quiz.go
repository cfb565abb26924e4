package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quiz is a timed, scored assessment linked one-to-one with a QUIZ resource.
// Owned by the authoring side; the grading engine only ever reads it.
type Quiz struct {
	ID               uuid.UUID       `json:"id"`
	ResourceID       int             `json:"resource_id"`
	Title            string          `json:"title"`
	PassingScore     decimal.Decimal `json:"passing_score"`
	TimeLimitMinutes int             `json:"time_limit_minutes"` // 0 = unlimited
	CreatedAt        time.Time       `json:"created_at"`
}

// Question belongs to exactly one quiz. Marks are non-negative decimals;
// the negative mark is subtracted on a wrong answer, never on no answer.
type Question struct {
	ID            uuid.UUID       `json:"id"`
	QuizID        uuid.UUID       `json:"quiz_id"`
	QuestionText  string          `json:"question_text"`
	ImageURL      string          `json:"image_url,omitempty"`
	MarksPositive decimal.Decimal `json:"marks_positive"`
	MarksNegative decimal.Decimal `json:"marks_negative"`
	SortOrder     int             `json:"sort_order"`
}

// Option belongs to exactly one question. IsCorrect never leaves the server
// on a student-facing path.
type Option struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	OptionText string    `json:"option_text"`
	IsCorrect  bool      `json:"is_correct"`
}

// QuizPayload is the student-facing quiz shape: questions and options with
// all correctness information stripped. This is what gets cached in Redis.
type QuizPayload struct {
	QuizID           uuid.UUID            `json:"quiz_id"`
	Title            string               `json:"title"`
	TimeLimitMinutes int                  `json:"time_limit_minutes"`
	Questions        []QuestionForStudent `json:"questions"`
}

// QuestionForStudent is a question without marks or correct-option data.
type QuestionForStudent struct {
	ID           uuid.UUID          `json:"id"`
	QuestionText string             `json:"question_text"`
	ImageURL     string             `json:"image_url,omitempty"`
	SortOrder    int                `json:"sort_order"`
	Options      []OptionForStudent `json:"options"`
}

// OptionForStudent is an option stripped of its correctness flag.
type OptionForStudent struct {
	ID         uuid.UUID `json:"id"`
	OptionText string    `json:"option_text"`
}

// CreateQuizRequest is the authoring payload for creating a quiz.
type CreateQuizRequest struct {
	ResourceID       int             `json:"resource_id" binding:"required,min=1"`
	Title            string          `json:"title" binding:"required,min=1,max=255"`
	PassingScore     decimal.Decimal `json:"passing_score"`
	TimeLimitMinutes int             `json:"time_limit_minutes" binding:"min=0,max=600"`
}

// QuestionInput is one question in a bulk authoring payload.
type QuestionInput struct {
	QuestionText  string          `json:"question_text" binding:"required,min=1,max=4000"`
	ImageURL      string          `json:"image_url" binding:"omitempty,url"`
	MarksPositive decimal.Decimal `json:"marks_positive"`
	MarksNegative decimal.Decimal `json:"marks_negative"`
	SortOrder     int             `json:"sort_order" binding:"min=0"`
	Options       []OptionInput   `json:"options" binding:"required,min=2,dive"`
}

// OptionInput is one option in a bulk authoring payload.
type OptionInput struct {
	OptionText string `json:"option_text" binding:"required,min=1,max=1000"`
	IsCorrect  bool   `json:"is_correct"`
}

// ReplaceQuestionsRequest replaces a quiz's full question set.
type ReplaceQuestionsRequest struct {
	Questions []QuestionInput `json:"questions" binding:"required,min=1,dive"`
}
