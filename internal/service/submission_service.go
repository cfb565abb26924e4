package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/qubitgyan/qubitgyan-backend/internal/grading"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CatalogReader loads the authoritative quiz shape for grading.
type CatalogReader interface {
	GetCatalogSnapshot(ctx context.Context, quizID uuid.UUID) (*grading.CatalogSnapshot, error)
}

// AttemptStore persists a graded attempt atomically.
type AttemptStore interface {
	CreateFinalized(ctx context.Context, a *model.QuizAttempt, score decimal.Decimal, responses []model.QuestionResponse) error
}

// SubmissionService runs the whole submission pipeline: load catalog,
// validate answers, score, persist atomically, notify progress.
type SubmissionService struct {
	catalog       CatalogReader
	attempts      AttemptStore
	notifier      ProgressNotifier
	submitTimeout time.Duration
	log           zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(catalog CatalogReader, attempts AttemptStore, notifier ProgressNotifier, submitTimeout time.Duration, log zerolog.Logger) *SubmissionService {
	return &SubmissionService{
		catalog:       catalog,
		attempts:      attempts,
		notifier:      notifier,
		submitTimeout: submitTimeout,
		log:           log.With().Str("component", "submission_service").Logger(),
	}
}

// Submit grades and persists one attempt.
//
// Malformed entries in the payload (duplicates, foreign questions, spoofed
// options) are dropped and logged, never rejected: the attempt proceeds on
// whatever validates. Hard failures are only: unknown quiz, attempt cap
// reached, or a persistence error — in which case nothing was written and
// the client may retry without burning an attempt.
func (s *SubmissionService) Submit(ctx context.Context, userID int, quizID uuid.UUID, req *model.SubmitAttemptRequest) (*model.AttemptResult, error) {
	snap, err := s.catalog.GetCatalogSnapshot(ctx, quizID)
	if err != nil {
		return nil, err
	}

	validated, dropped := grading.ValidateSubmission(snap, req.Answers)
	for _, d := range dropped {
		s.log.Info().
			Int("user_id", userID).
			Str("quiz_id", quizID.String()).
			Str("question_id", d.QuestionID.String()).
			Str("reason", string(d.Reason)).
			Msg("dropped submitted answer")
	}

	outcome := grading.ScoreSubmission(snap, validated)

	responses := make([]model.QuestionResponse, len(validated))
	for i, v := range validated {
		responses[i] = model.QuestionResponse{
			QuestionID:       v.QuestionID,
			SelectedOptionID: v.OptionID,
		}
	}

	attempt := &model.QuizAttempt{QuizID: quizID, UserID: userID}

	writeCtx, cancel := context.WithTimeout(ctx, s.submitTimeout)
	defer cancel()
	if err := s.attempts.CreateFinalized(writeCtx, attempt, outcome.TotalScore, responses); err != nil {
		return nil, err
	}
	if attempt.EndedAt == nil {
		return nil, fmt.Errorf("finalized attempt %s missing end time", attempt.ID)
	}

	// The attempt is committed; the notification rides on a detached context
	// so a client disconnect cannot suppress it. A failure here costs a
	// progress update, not the attempt.
	if err := s.notifier.NotifyCompleted(context.WithoutCancel(ctx), userID, snap.Quiz.ResourceID); err != nil {
		s.log.Error().Err(err).
			Int("user_id", userID).
			Int("resource_id", snap.Quiz.ResourceID).
			Msg("progress notification failed")
	}

	return &model.AttemptResult{
		AttemptID:     attempt.ID,
		QuizID:        attempt.QuizID,
		AttemptNumber: attempt.AttemptNumber,
		TotalScore:    outcome.TotalScore,
		IsCompleted:   attempt.IsCompleted,
		StartedAt:     attempt.StartedAt,
		EndedAt:       *attempt.EndedAt,
		PerQuestion:   outcome.PerQuestion,
	}, nil
}
