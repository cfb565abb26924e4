package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/qubitgyan/qubitgyan-backend/internal/middleware"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
	"github.com/qubitgyan/qubitgyan-backend/internal/repository"
	"github.com/qubitgyan/qubitgyan-backend/internal/response"
	"github.com/qubitgyan/qubitgyan-backend/internal/service"
	"github.com/qubitgyan/qubitgyan-backend/internal/validator"
)

// StudentHandler handles the student learning surface: quiz taking,
// attempt history and progress.
type StudentHandler struct {
	quizService       *service.QuizService
	submissionService *service.SubmissionService
	progressService   *service.ProgressService
	attempts          *repository.AttemptRepository
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(
	quizService *service.QuizService,
	submissionService *service.SubmissionService,
	progressService *service.ProgressService,
	attempts *repository.AttemptRepository,
) *StudentHandler {
	return &StudentHandler{
		quizService:       quizService,
		submissionService: submissionService,
		progressService:   progressService,
		attempts:          attempts,
	}
}

// GetQuiz godoc
// GET /api/v1/student/quizzes/:quiz_id
// Returns the stripped quiz payload plus how many attempts remain.
func (h *StudentHandler) GetQuiz(c *gin.Context) {
	claims := middleware.GetClaims(c)
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	payload, err := h.quizService.GetStudentPayload(c.Request.Context(), quizID)
	if err != nil {
		if errors.Is(err, repository.ErrQuizNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrQuizNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	used, err := h.attempts.CountByQuizAndUser(c.Request.Context(), quizID, claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	remaining := model.MaxAttemptsPerQuiz - used
	if remaining < 0 {
		remaining = 0
	}

	response.Success(c, http.StatusOK, gin.H{
		"quiz":               payload,
		"attempts_used":      used,
		"attempts_remaining": remaining,
	})
}

// SubmitAttempt godoc
// POST /api/v1/student/quizzes/:quiz_id/attempts
// Grades and records one attempt atomically.
func (h *StudentHandler) SubmitAttempt(c *gin.Context) {
	claims := middleware.GetClaims(c)
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SubmitAttemptRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.submissionService.Submit(c.Request.Context(), claims.UserID, quizID, &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrQuizNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrQuizNotFound)
		case errors.Is(err, repository.ErrAttemptLimitExceeded):
			response.Fail(c, http.StatusForbidden, response.ErrAttemptLimitExceeded)
		default:
			// Nothing was written; the client may retry without burning
			// an attempt.
			response.Fail(c, http.StatusServiceUnavailable, response.ErrSubmitFailed)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"attempt": result})
}

// GetMyAttempts godoc
// GET /api/v1/student/attempts
// Returns the user's attempt history, newest first.
func (h *StudentHandler) GetMyAttempts(c *gin.Context) {
	claims := middleware.GetClaims(c)

	attempts, err := h.attempts.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"attempts": attempts})
}

// GetMyProgress godoc
// GET /api/v1/student/progress
func (h *StudentHandler) GetMyProgress(c *gin.Context) {
	claims := middleware.GetClaims(c)

	items, err := h.progressService.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"progress": items})
}

// TouchProgress godoc
// POST /api/v1/student/resources/:id/progress
// Records that the user opened a resource, optionally marking it completed.
func (h *StudentHandler) TouchProgress(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resourceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req struct {
		Completed bool `json:"completed"`
	}
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.progressService.Touch(c.Request.Context(), claims.UserID, resourceID, req.Completed); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
