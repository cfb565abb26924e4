package service

import (
	"context"

	"github.com/qubitgyan/qubitgyan-backend/internal/model"
	"github.com/qubitgyan/qubitgyan-backend/internal/repository"
)

// ProgressService handles the student-facing progress surface. Quiz
// completion arrives through the worker; this only covers direct access
// tracking (opening a PDF, finishing a video).
type ProgressService struct {
	progress *repository.ProgressRepository
}

// NewProgressService creates a new ProgressService.
func NewProgressService(progress *repository.ProgressRepository) *ProgressService {
	return &ProgressService{progress: progress}
}

// ListByUser retrieves a user's progress rows.
func (s *ProgressService) ListByUser(ctx context.Context, userID int) ([]model.StudentProgress, error) {
	return s.progress.ListByUser(ctx, userID)
}

// Touch records that a user accessed a resource, optionally marking it done.
func (s *ProgressService) Touch(ctx context.Context, userID, resourceID int, completed bool) error {
	return s.progress.Touch(ctx, userID, resourceID, completed)
}
