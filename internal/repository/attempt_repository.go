package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
	"github.com/shopspring/decimal"
)

// ErrAttemptLimitExceeded is returned when a user already holds the maximum
// number of attempt slots for a quiz. Checked before any write.
var ErrAttemptLimitExceeded = errors.New("attempt limit exceeded")

// AttemptRepository owns quiz_attempts and question_responses rows during
// the write phase. Nothing else mutates them.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

// AttemptWithResponses pairs an attempt with its recorded answers, for the
// student history view.
type AttemptWithResponses struct {
	model.QuizAttempt
	Responses []model.QuestionResponse `json:"responses"`
}

// CreateFinalized performs the whole submission write phase as one
// transaction: reserve the attempt slot, bulk-insert response rows, set end
// time + score + completed flag, commit. On any failure the entire attempt
// rolls back — a partially graded attempt is never observable.
//
// The slot reservation is a conditional insert over MAX(attempt_number),
// backed by the unique (quiz_id, user_id, attempt_number) index, not a
// count-then-act: two concurrent submissions racing for the last slot
// collide on the index, and the loser's retry re-reads the new maximum and
// observes the cap.
func (r *AttemptRepository) CreateFinalized(ctx context.Context, a *model.QuizAttempt, score decimal.Decimal, responses []model.QuestionResponse) error {
	for retry := 0; retry < model.MaxAttemptsPerQuiz; retry++ {
		err := r.createFinalizedOnce(ctx, a, score, responses)
		if isSlotCollision(err) {
			continue
		}
		return err
	}
	return ErrAttemptLimitExceeded
}

func (r *AttemptRepository) createFinalizedOnce(ctx context.Context, a *model.QuizAttempt, score decimal.Decimal, responses []model.QuestionResponse) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	// Reserve the next attempt slot. No row back means the cap is reached:
	// fail fast with zero writes.
	err = tx.QueryRow(ctx,
		`INSERT INTO quiz_attempts (quiz_id, user_id, attempt_number)
		 SELECT $1, $2, COALESCE(MAX(attempt_number), 0) + 1
		 FROM quiz_attempts
		 WHERE quiz_id = $1 AND user_id = $2
		 HAVING COALESCE(MAX(attempt_number), 0) < $3
		 RETURNING id, attempt_number, started_at`,
		a.QuizID, a.UserID, model.MaxAttemptsPerQuiz,
	).Scan(&a.ID, &a.AttemptNumber, &a.StartedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAttemptLimitExceeded
		}
		return fmt.Errorf("reserve attempt slot: %w", err)
	}

	if len(responses) > 0 {
		questionIDs := make([]uuid.UUID, len(responses))
		optionIDs := make([]*uuid.UUID, len(responses))
		for i, resp := range responses {
			questionIDs[i] = resp.QuestionID
			optionIDs[i] = resp.SelectedOptionID
		}

		// The (attempt_id, question_id) unique index makes double-recording
		// a question inside one attempt impossible even if a validator bug
		// let a duplicate through.
		_, err = tx.Exec(ctx,
			`INSERT INTO question_responses (attempt_id, question_id, selected_option_id)
			 SELECT $1, u.question_id, u.selected_option_id
			 FROM UNNEST($2::uuid[], $3::uuid[]) AS u (question_id, selected_option_id)`,
			a.ID, questionIDs, optionIDs,
		)
		if err != nil {
			return fmt.Errorf("insert responses: %w", err)
		}
	}

	var endedAt time.Time
	err = tx.QueryRow(ctx,
		`UPDATE quiz_attempts
		 SET ended_at = NOW(), total_score = $2::numeric, is_completed = TRUE
		 WHERE id = $1
		 RETURNING ended_at`,
		a.ID, score.String(),
	).Scan(&endedAt)
	if err != nil {
		return fmt.Errorf("finalize attempt: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	a.EndedAt = &endedAt
	a.TotalScore = &score
	a.IsCompleted = true
	return nil
}

// isSlotCollision reports whether err is a unique violation on the attempt
// slot index — a concurrent submission reserved the same attempt_number.
func isSlotCollision(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == "23505" &&
		pgErr.ConstraintName == "quiz_attempts_slot_key"
}

// CountByQuizAndUser returns how many attempts a user holds for a quiz.
func (r *AttemptRepository) CountByQuizAndUser(ctx context.Context, quizID uuid.UUID, userID int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM quiz_attempts WHERE quiz_id = $1 AND user_id = $2`,
		quizID, userID,
	).Scan(&count)
	return count, err
}

// ListByUser returns a user's attempts newest-first, each with its response
// rows. Two queries total, regardless of attempt count.
func (r *AttemptRepository) ListByUser(ctx context.Context, userID int) ([]AttemptWithResponses, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, quiz_id, user_id, attempt_number, started_at, ended_at, total_score::text, is_completed
		 FROM quiz_attempts
		 WHERE user_id = $1
		 ORDER BY started_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		attempts []AttemptWithResponses
		ids      []uuid.UUID
		index    = make(map[uuid.UUID]int)
	)
	for rows.Next() {
		var (
			a     AttemptWithResponses
			score *string
		)
		if err := rows.Scan(&a.ID, &a.QuizID, &a.UserID, &a.AttemptNumber, &a.StartedAt, &a.EndedAt, &score, &a.IsCompleted); err != nil {
			return nil, err
		}
		if score != nil {
			d, err := decimal.NewFromString(*score)
			if err != nil {
				return nil, fmt.Errorf("parse total_score: %w", err)
			}
			a.TotalScore = &d
		}
		index[a.ID] = len(attempts)
		ids = append(ids, a.ID)
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return attempts, nil
	}

	respRows, err := r.pool.Query(ctx,
		`SELECT attempt_id, question_id, selected_option_id
		 FROM question_responses
		 WHERE attempt_id = ANY($1)
		 ORDER BY id`, ids,
	)
	if err != nil {
		return nil, err
	}
	defer respRows.Close()

	for respRows.Next() {
		var resp model.QuestionResponse
		if err := respRows.Scan(&resp.AttemptID, &resp.QuestionID, &resp.SelectedOptionID); err != nil {
			return nil, err
		}
		if i, ok := index[resp.AttemptID]; ok {
			attempts[i].Responses = append(attempts[i].Responses, resp)
		}
	}
	return attempts, respRows.Err()
}
