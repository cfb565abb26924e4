package service

import (
	"context"

	"github.com/qubitgyan/qubitgyan-backend/internal/model"
	"github.com/qubitgyan/qubitgyan-backend/internal/repository"
)

// ResourceService handles learning resources and their context tags.
type ResourceService struct {
	resources *repository.ResourceRepository
	contexts  *repository.ContextRepository
}

// NewResourceService creates a new ResourceService.
func NewResourceService(resources *repository.ResourceRepository, contexts *repository.ContextRepository) *ResourceService {
	return &ResourceService{resources: resources, contexts: contexts}
}

// ResourceView is a resource with its derived preview link.
type ResourceView struct {
	model.Resource
	PreviewURL string `json:"preview_url,omitempty"`
}

// GetResource retrieves a resource with its preview link.
func (s *ResourceService) GetResource(ctx context.Context, id int) (*ResourceView, error) {
	res, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ResourceView{Resource: *res, PreviewURL: res.PreviewLink()}, nil
}

// ListByNode retrieves a node's resources with preview links.
func (s *ResourceService) ListByNode(ctx context.Context, nodeID int) ([]ResourceView, error) {
	resources, err := s.resources.ListByNode(ctx, nodeID)
	if err != nil {
		return nil, err
	}

	views := make([]ResourceView, len(resources))
	for i := range resources {
		views[i] = ResourceView{Resource: resources[i], PreviewURL: resources[i].PreviewLink()}
	}
	return views, nil
}

// CreateResource creates a resource with optional context tags.
func (s *ResourceService) CreateResource(ctx context.Context, req *model.CreateResourceRequest) (*model.Resource, error) {
	res := &model.Resource{
		Title:        req.Title,
		ResourceType: req.ResourceType,
		NodeID:       req.NodeID,
		DriveFileID:  req.DriveFileID,
		ExternalURL:  req.ExternalURL,
		ContentText:  req.ContentText,
		SortOrder:    req.SortOrder,
		ContextIDs:   req.ContextIDs,
	}
	if err := s.resources.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// UpdateResource patches a resource. The resource type is immutable; to
// change a PDF into a quiz, delete and recreate.
func (s *ResourceService) UpdateResource(ctx context.Context, id int, req *model.UpdateResourceRequest) (*model.Resource, error) {
	res, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		res.Title = req.Title
	}
	if req.NodeID != nil {
		res.NodeID = *req.NodeID
	}
	if req.DriveFileID != nil {
		res.DriveFileID = *req.DriveFileID
	}
	if req.ExternalURL != nil {
		res.ExternalURL = *req.ExternalURL
	}
	if req.ContentText != nil {
		res.ContentText = *req.ContentText
	}
	if req.SortOrder != nil {
		res.SortOrder = *req.SortOrder
	}

	replaceContexts := req.ContextIDs != nil
	if replaceContexts {
		res.ContextIDs = req.ContextIDs
	}

	if err := s.resources.Update(ctx, res, replaceContexts); err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteResource removes a resource.
func (s *ResourceService) DeleteResource(ctx context.Context, id int) error {
	return s.resources.Delete(ctx, id)
}

// ListContexts retrieves all program contexts.
func (s *ResourceService) ListContexts(ctx context.Context) ([]model.ProgramContext, error) {
	return s.contexts.List(ctx)
}

// CreateContext creates a program context.
func (s *ResourceService) CreateContext(ctx context.Context, req *model.CreateContextRequest) (*model.ProgramContext, error) {
	c := &model.ProgramContext{Name: req.Name, Description: req.Description}
	if err := s.contexts.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateContext rewrites a program context.
func (s *ResourceService) UpdateContext(ctx context.Context, id int, req *model.CreateContextRequest) (*model.ProgramContext, error) {
	c := &model.ProgramContext{ID: id, Name: req.Name, Description: req.Description}
	if err := s.contexts.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteContext removes a program context.
func (s *ResourceService) DeleteContext(ctx context.Context, id int) error {
	return s.contexts.Delete(ctx, id)
}
