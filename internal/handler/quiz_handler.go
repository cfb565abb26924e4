package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
	"github.com/qubitgyan/qubitgyan-backend/internal/repository"
	"github.com/qubitgyan/qubitgyan-backend/internal/response"
	"github.com/qubitgyan/qubitgyan-backend/internal/service"
	"github.com/qubitgyan/qubitgyan-backend/internal/validator"
)

// QuizHandler handles the quiz authoring surface.
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// CreateQuiz godoc
// POST /api/v1/manager/quizzes
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req model.CreateQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	quiz, err := h.quizService.CreateQuiz(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"quiz": quiz})
}

// GetQuiz godoc
// GET /api/v1/manager/quizzes/:quiz_id
// Returns the full quiz including correct-option flags.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	quiz, err := h.quizService.GetAuthoredQuiz(c.Request.Context(), quizID)
	if err != nil {
		if errors.Is(err, repository.ErrQuizNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrQuizNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"quiz": quiz})
}

// ReplaceQuestions godoc
// PUT /api/v1/manager/quizzes/:quiz_id/questions
// Replaces the quiz's full question set and drops the cached payload.
func (h *QuizHandler) ReplaceQuestions(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ReplaceQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.quizService.ReplaceQuestions(c.Request.Context(), quizID, &req); err != nil {
		if errors.Is(err, repository.ErrQuizNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrQuizNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// RefreshCache godoc
// POST /api/v1/manager/quizzes/:quiz_id/refresh-cache
// Drops the cached student payload without touching content.
func (h *QuizHandler) RefreshCache(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	h.quizService.InvalidatePayload(c.Request.Context(), quizID)
	response.Success(c, http.StatusOK, gin.H{})
}
