package service

import (
	"context"
	"errors"

	"github.com/qubitgyan/qubitgyan-backend/internal/model"
	"github.com/qubitgyan/qubitgyan-backend/internal/repository"
)

// ErrAdmissionNotFound is returned when an admission request id does not
// resolve.
var ErrAdmissionNotFound = errors.New("admission request not found")

// AdmissionService handles the public signup funnel.
type AdmissionService struct {
	admissions *repository.AdmissionRepository
}

// NewAdmissionService creates a new AdmissionService.
func NewAdmissionService(admissions *repository.AdmissionRepository) *AdmissionService {
	return &AdmissionService{admissions: admissions}
}

// Submit records a new admission request.
func (s *AdmissionService) Submit(ctx context.Context, req *model.CreateAdmissionRequest) (*model.AdmissionRequest, error) {
	a := &model.AdmissionRequest{
		StudentName:  req.StudentName,
		Email:        req.Email,
		Phone:        req.Phone,
		ClassGrade:   req.ClassGrade,
		LearningGoal: req.LearningGoal,
	}
	if err := s.admissions.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// List retrieves admission requests for review.
func (s *AdmissionService) List(ctx context.Context, status model.AdmissionStatus, page, perPage int) ([]model.AdmissionRequest, int64, error) {
	return s.admissions.List(ctx, status, page, perPage)
}

// Review updates a request's status.
func (s *AdmissionService) Review(ctx context.Context, id int, status model.AdmissionStatus) error {
	affected, err := s.admissions.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAdmissionNotFound
	}
	return nil
}
