package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxAttemptsPerQuiz caps completed-or-in-flight attempts per (user, quiz).
// A business invariant, deliberately not an ops knob.
const MaxAttemptsPerQuiz = 3

// QuizAttempt is one scored run of a user through a quiz. Created and
// finalized inside a single transaction; an attempt is never observable
// without its final score.
type QuizAttempt struct {
	ID            uuid.UUID        `json:"id"`
	QuizID        uuid.UUID        `json:"quiz_id"`
	UserID        int              `json:"user_id"`
	AttemptNumber int              `json:"attempt_number"`
	StartedAt     time.Time        `json:"started_at"`
	EndedAt       *time.Time       `json:"ended_at,omitempty"`
	TotalScore    *decimal.Decimal `json:"total_score,omitempty"`
	IsCompleted   bool             `json:"is_completed"`
}

// QuestionResponse is one recorded answer row per (attempt, question).
// SelectedOptionID is nil when the question was submitted without a valid
// selection. Never mutated after finalization.
type QuestionResponse struct {
	AttemptID        uuid.UUID  `json:"attempt_id"`
	QuestionID       uuid.UUID  `json:"question_id"`
	SelectedOptionID *uuid.UUID `json:"selected_option_id,omitempty"`
}

// SubmittedAnswer is one raw {question_id, option_id?} pair as posted by a
// client. Untrusted until validated against the catalog snapshot.
type SubmittedAnswer struct {
	QuestionID uuid.UUID  `json:"question_id" binding:"required"`
	OptionID   *uuid.UUID `json:"option_id"`
}

// SubmitAttemptRequest is the submission payload.
type SubmitAttemptRequest struct {
	Answers []SubmittedAnswer `json:"answers" binding:"dive"`
}

// AttemptResult is what a successful submission returns: the finalized
// attempt plus the per-question correctness breakdown for review UIs.
type AttemptResult struct {
	AttemptID     uuid.UUID        `json:"attempt_id"`
	QuizID        uuid.UUID        `json:"quiz_id"`
	AttemptNumber int              `json:"attempt_number"`
	TotalScore    decimal.Decimal  `json:"total_score"`
	IsCompleted   bool             `json:"is_completed"`
	StartedAt     time.Time        `json:"started_at"`
	EndedAt       time.Time        `json:"ended_at"`
	PerQuestion   []QuestionReview `json:"per_question"`
}

// QuestionReview is the per-question outcome of a graded attempt.
type QuestionReview struct {
	QuestionID       uuid.UUID       `json:"question_id"`
	SelectedOptionID *uuid.UUID      `json:"selected_option_id,omitempty"`
	Answered         bool            `json:"answered"`
	IsCorrect        bool            `json:"is_correct"`
	ScoreDelta       decimal.Decimal `json:"score_delta"`
}
