package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/qubitgyan/qubitgyan-backend/internal/config"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
	"github.com/qubitgyan/qubitgyan-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// QuizService handles quiz authoring and the cached student-facing payload.
// The cache only ever holds the stripped payload; grading always reads the
// database directly.
type QuizService struct {
	cfg     *config.Config
	quizzes *repository.QuizRepository
	rdb     *redis.Client
	log     zerolog.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(cfg *config.Config, quizzes *repository.QuizRepository, rdb *redis.Client, log zerolog.Logger) *QuizService {
	return &QuizService{
		cfg:     cfg,
		quizzes: quizzes,
		rdb:     rdb,
		log:     log.With().Str("component", "quiz_service").Logger(),
	}
}

// GetStudentPayload returns the stripped quiz payload, served from Redis
// when possible. Cache failures degrade to a database read, never an error.
func (s *QuizService) GetStudentPayload(ctx context.Context, quizID uuid.UUID) (*model.QuizPayload, error) {
	key := config.CacheKey.QuizPayloadKey(quizID.String())

	cached, err := s.rdb.Get(ctx, key).Result()
	if err == nil {
		payload := &model.QuizPayload{}
		if err := json.Unmarshal([]byte(cached), payload); err == nil {
			return payload, nil
		}
		s.log.Warn().Str("key", key).Msg("corrupt cached payload, rebuilding")
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}

	payload, err := s.quizzes.GetStudentPayload(ctx, quizID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(payload); err == nil {
		if err := s.rdb.Set(ctx, key, raw, s.cfg.QuizCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	return payload, nil
}

// InvalidatePayload drops the cached student payload for a quiz.
func (s *QuizService) InvalidatePayload(ctx context.Context, quizID uuid.UUID) {
	key := config.CacheKey.QuizPayloadKey(quizID.String())
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache invalidation failed")
	}
}

// CreateQuiz creates a quiz attached to a resource.
func (s *QuizService) CreateQuiz(ctx context.Context, req *model.CreateQuizRequest) (*model.Quiz, error) {
	q := &model.Quiz{
		ResourceID:       req.ResourceID,
		Title:            req.Title,
		PassingScore:     req.PassingScore,
		TimeLimitMinutes: req.TimeLimitMinutes,
	}
	if err := s.quizzes.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	return q, nil
}

// AuthoredQuiz is the full authoring view including correctness flags.
type AuthoredQuiz struct {
	model.Quiz
	Questions []AuthoredQuestion `json:"questions"`
}

// AuthoredQuestion is a question with its options for the authoring view.
type AuthoredQuestion struct {
	model.Question
	Options []model.Option `json:"options"`
}

// GetAuthoredQuiz returns the full quiz for editors.
func (s *QuizService) GetAuthoredQuiz(ctx context.Context, quizID uuid.UUID) (*AuthoredQuiz, error) {
	quiz, questions, options, err := s.quizzes.GetFull(ctx, quizID)
	if err != nil {
		return nil, err
	}

	out := &AuthoredQuiz{Quiz: *quiz}
	index := make(map[uuid.UUID]int, len(questions))
	for _, q := range questions {
		index[q.ID] = len(out.Questions)
		out.Questions = append(out.Questions, AuthoredQuestion{Question: q})
	}
	for _, o := range options {
		if i, ok := index[o.QuestionID]; ok {
			out.Questions[i].Options = append(out.Questions[i].Options, o)
		}
	}
	return out, nil
}

// ReplaceQuestions swaps the quiz's question set and drops the cached
// payload so students see the new content immediately.
func (s *QuizService) ReplaceQuestions(ctx context.Context, quizID uuid.UUID, req *model.ReplaceQuestionsRequest) error {
	if _, err := s.quizzes.GetByID(ctx, quizID); err != nil {
		return err
	}
	if err := s.quizzes.ReplaceQuestions(ctx, quizID, req.Questions); err != nil {
		return fmt.Errorf("replace questions: %w", err)
	}
	s.InvalidatePayload(ctx, quizID)
	return nil
}
