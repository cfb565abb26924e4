package service

import (
	"context"

	"github.com/qubitgyan/qubitgyan-backend/internal/model"
	"github.com/qubitgyan/qubitgyan-backend/internal/repository"
)

// NodeService handles the knowledge tree.
type NodeService struct {
	nodes *repository.NodeRepository
}

// NewNodeService creates a new NodeService.
func NewNodeService(nodes *repository.NodeRepository) *NodeService {
	return &NodeService{nodes: nodes}
}

// GetTree assembles the full knowledge tree from the flat node list. Roots
// come back ordered by sort_order; each node's children likewise. Orphans
// (parent filtered out or missing) are dropped rather than promoted.
func (s *NodeService) GetTree(ctx context.Context, activeOnly bool) ([]*model.KnowledgeNode, error) {
	flat, err := s.nodes.ListAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return assembleTree(flat), nil
}

func assembleTree(flat []model.KnowledgeNode) []*model.KnowledgeNode {
	byID := make(map[int]*model.KnowledgeNode, len(flat))
	for i := range flat {
		byID[flat[i].ID] = &flat[i]
	}

	roots := []*model.KnowledgeNode{}
	for i := range flat {
		n := &flat[i]
		if n.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		if parent, ok := byID[*n.ParentID]; ok {
			parent.Children = append(parent.Children, n)
		}
	}
	return roots
}

// GetNode retrieves a single node.
func (s *NodeService) GetNode(ctx context.Context, id int) (*model.KnowledgeNode, error) {
	return s.nodes.GetByID(ctx, id)
}

// CreateNode creates a knowledge node.
func (s *NodeService) CreateNode(ctx context.Context, req *model.CreateNodeRequest) (*model.KnowledgeNode, error) {
	n := &model.KnowledgeNode{
		Name:         req.Name,
		NodeType:     req.NodeType,
		ParentID:     req.ParentID,
		SortOrder:    req.SortOrder,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		IsActive:     true,
	}
	if err := s.nodes.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// UpdateNode patches a knowledge node.
func (s *NodeService) UpdateNode(ctx context.Context, id int, req *model.UpdateNodeRequest) (*model.KnowledgeNode, error) {
	n, err := s.nodes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		n.Name = req.Name
	}
	if req.NodeType != nil {
		n.NodeType = *req.NodeType
	}
	if req.ParentID != nil {
		n.ParentID = req.ParentID
	}
	if req.SortOrder != nil {
		n.SortOrder = *req.SortOrder
	}
	if req.Description != nil {
		n.Description = *req.Description
	}
	if req.ThumbnailURL != nil {
		n.ThumbnailURL = *req.ThumbnailURL
	}
	if req.IsActive != nil {
		n.IsActive = *req.IsActive
	}

	if err := s.nodes.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// DeleteNode removes a node and its subtree.
func (s *NodeService) DeleteNode(ctx context.Context, id int) error {
	return s.nodes.Delete(ctx, id)
}
