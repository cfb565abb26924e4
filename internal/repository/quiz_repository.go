package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qubitgyan/qubitgyan-backend/internal/grading"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
	"github.com/shopspring/decimal"
)

// ErrQuizNotFound is returned when a quiz id does not resolve.
var ErrQuizNotFound = errors.New("quiz not found")

// QuizRepository handles quiz/question/option data access. The grading side
// only reads; writes belong to the authoring surface.
type QuizRepository struct {
	pool *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

// GetByID retrieves a quiz row.
func (r *QuizRepository) GetByID(ctx context.Context, quizID uuid.UUID) (*model.Quiz, error) {
	q := &model.Quiz{}
	var passing string
	err := r.pool.QueryRow(ctx,
		`SELECT id, resource_id, title, passing_score::text, time_limit_minutes, created_at
		 FROM quizzes WHERE id = $1`, quizID,
	).Scan(&q.ID, &q.ResourceID, &q.Title, &passing, &q.TimeLimitMinutes, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	q.PassingScore, err = decimal.NewFromString(passing)
	if err != nil {
		return nil, fmt.Errorf("parse passing_score: %w", err)
	}
	return q, nil
}

// GetCatalogSnapshot loads the complete authoritative shape of a quiz in one
// read round: the quiz row, all its questions with mark values, and all
// options with ownership and correctness. No per-question lookups.
func (r *QuizRepository) GetCatalogSnapshot(ctx context.Context, quizID uuid.UUID) (*grading.CatalogSnapshot, error) {
	quiz, err := r.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	snap := &grading.CatalogSnapshot{
		Quiz:      *quiz,
		Questions: make(map[uuid.UUID]grading.QuestionInfo),
		Options:   make(map[uuid.UUID]grading.OptionInfo),
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, marks_positive::text, marks_negative::text
		 FROM questions WHERE quiz_id = $1
		 ORDER BY sort_order, id`, quizID,
	)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id       uuid.UUID
			pos, neg string
		)
		if err := rows.Scan(&id, &pos, &neg); err != nil {
			return nil, err
		}
		info := grading.QuestionInfo{}
		if info.MarksPositive, err = decimal.NewFromString(pos); err != nil {
			return nil, fmt.Errorf("parse marks_positive: %w", err)
		}
		if info.MarksNegative, err = decimal.NewFromString(neg); err != nil {
			return nil, fmt.Errorf("parse marks_negative: %w", err)
		}
		snap.QuestionOrder = append(snap.QuestionOrder, id)
		snap.Questions[id] = info
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	optRows, err := r.pool.Query(ctx,
		`SELECT o.id, o.question_id, o.is_correct
		 FROM options o
		 JOIN questions q ON q.id = o.question_id
		 WHERE q.quiz_id = $1`, quizID,
	)
	if err != nil {
		return nil, fmt.Errorf("load options: %w", err)
	}
	defer optRows.Close()

	for optRows.Next() {
		var (
			id   uuid.UUID
			info grading.OptionInfo
		)
		if err := optRows.Scan(&id, &info.QuestionID, &info.IsCorrect); err != nil {
			return nil, err
		}
		snap.Options[id] = info
	}
	return snap, optRows.Err()
}

// GetStudentPayload returns the quiz with questions and options, with all
// correctness and mark data stripped.
func (r *QuizRepository) GetStudentPayload(ctx context.Context, quizID uuid.UUID) (*model.QuizPayload, error) {
	quiz, err := r.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	payload := &model.QuizPayload{
		QuizID:           quiz.ID,
		Title:            quiz.Title,
		TimeLimitMinutes: quiz.TimeLimitMinutes,
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, question_text, COALESCE(image_url, ''), sort_order
		 FROM questions WHERE quiz_id = $1
		 ORDER BY sort_order, id`, quizID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var q model.QuestionForStudent
		if err := rows.Scan(&q.ID, &q.QuestionText, &q.ImageURL, &q.SortOrder); err != nil {
			return nil, err
		}
		index[q.ID] = len(payload.Questions)
		payload.Questions = append(payload.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	optRows, err := r.pool.Query(ctx,
		`SELECT o.id, o.question_id, o.option_text
		 FROM options o
		 JOIN questions q ON q.id = o.question_id
		 WHERE q.quiz_id = $1
		 ORDER BY o.id`, quizID,
	)
	if err != nil {
		return nil, err
	}
	defer optRows.Close()

	for optRows.Next() {
		var (
			opt model.OptionForStudent
			qid uuid.UUID
		)
		if err := optRows.Scan(&opt.ID, &qid, &opt.OptionText); err != nil {
			return nil, err
		}
		if i, ok := index[qid]; ok {
			payload.Questions[i].Options = append(payload.Questions[i].Options, opt)
		}
	}
	return payload, optRows.Err()
}

// GetFull returns a quiz with its questions and options including
// correctness — authoring surface only.
func (r *QuizRepository) GetFull(ctx context.Context, quizID uuid.UUID) (*model.Quiz, []model.Question, []model.Option, error) {
	quiz, err := r.GetByID(ctx, quizID)
	if err != nil {
		return nil, nil, nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, quiz_id, question_text, COALESCE(image_url, ''), marks_positive::text, marks_negative::text, sort_order
		 FROM questions WHERE quiz_id = $1
		 ORDER BY sort_order, id`, quizID,
	)
	if err != nil {
		return nil, nil, nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var (
			q        model.Question
			pos, neg string
		)
		if err := rows.Scan(&q.ID, &q.QuizID, &q.QuestionText, &q.ImageURL, &pos, &neg, &q.SortOrder); err != nil {
			return nil, nil, nil, err
		}
		if q.MarksPositive, err = decimal.NewFromString(pos); err != nil {
			return nil, nil, nil, err
		}
		if q.MarksNegative, err = decimal.NewFromString(neg); err != nil {
			return nil, nil, nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, nil, err
	}

	optRows, err := r.pool.Query(ctx,
		`SELECT o.id, o.question_id, o.option_text, o.is_correct
		 FROM options o
		 JOIN questions q ON q.id = o.question_id
		 WHERE q.quiz_id = $1
		 ORDER BY o.id`, quizID,
	)
	if err != nil {
		return nil, nil, nil, err
	}
	defer optRows.Close()

	var options []model.Option
	for optRows.Next() {
		var o model.Option
		if err := optRows.Scan(&o.ID, &o.QuestionID, &o.OptionText, &o.IsCorrect); err != nil {
			return nil, nil, nil, err
		}
		options = append(options, o)
	}
	return quiz, questions, options, optRows.Err()
}

// Create inserts a new quiz.
func (r *QuizRepository) Create(ctx context.Context, q *model.Quiz) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO quizzes (resource_id, title, passing_score, time_limit_minutes)
		 VALUES ($1, $2, $3::numeric, $4)
		 RETURNING id, created_at`,
		q.ResourceID, q.Title, q.PassingScore.String(), q.TimeLimitMinutes,
	).Scan(&q.ID, &q.CreatedAt)
}

// ReplaceQuestions swaps a quiz's full question set in one transaction.
// Existing responses cascade away with the old questions; the authoring
// side only does this before publication.
func (r *QuizRepository) ReplaceQuestions(ctx context.Context, quizID uuid.UUID, inputs []model.QuestionInput) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE quiz_id = $1`, quizID); err != nil {
		return fmt.Errorf("clear questions: %w", err)
	}

	for _, in := range inputs {
		var qID uuid.UUID
		err := tx.QueryRow(ctx,
			`INSERT INTO questions (quiz_id, question_text, image_url, marks_positive, marks_negative, sort_order)
			 VALUES ($1, $2, NULLIF($3, ''), $4::numeric, $5::numeric, $6)
			 RETURNING id`,
			quizID, in.QuestionText, in.ImageURL,
			in.MarksPositive.String(), in.MarksNegative.String(), in.SortOrder,
		).Scan(&qID)
		if err != nil {
			return fmt.Errorf("insert question: %w", err)
		}

		for _, opt := range in.Options {
			if _, err := tx.Exec(ctx,
				`INSERT INTO options (question_id, option_text, is_correct)
				 VALUES ($1, $2, $3)`,
				qID, opt.OptionText, opt.IsCorrect,
			); err != nil {
				return fmt.Errorf("insert option: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}
