package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
	"github.com/qubitgyan/qubitgyan-backend/internal/response"
	"github.com/qubitgyan/qubitgyan-backend/internal/service"
	"github.com/qubitgyan/qubitgyan-backend/internal/validator"
)

// NodeHandler handles knowledge tree endpoints.
type NodeHandler struct {
	nodeService     *service.NodeService
	resourceService *service.ResourceService
}

// NewNodeHandler creates a new NodeHandler.
func NewNodeHandler(nodeService *service.NodeService, resourceService *service.ResourceService) *NodeHandler {
	return &NodeHandler{nodeService: nodeService, resourceService: resourceService}
}

// GetPublicTree godoc
// GET /api/v1/public/nodes
// Returns the active knowledge tree for browsing.
func (h *NodeHandler) GetPublicTree(c *gin.Context) {
	tree, err := h.nodeService.GetTree(c.Request.Context(), true)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"nodes": tree})
}

// GetFullTree godoc
// GET /api/v1/manager/nodes
// Returns the whole tree including inactive nodes.
func (h *NodeHandler) GetFullTree(c *gin.Context) {
	tree, err := h.nodeService.GetTree(c.Request.Context(), false)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"nodes": tree})
}

// GetNodeResources godoc
// GET /api/v1/student/nodes/:id/resources
// Returns a node's resources with preview links.
func (h *NodeHandler) GetNodeResources(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if _, err := h.nodeService.GetNode(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	resources, err := h.resourceService.ListByNode(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"resources": resources})
}

// CreateNode godoc
// POST /api/v1/manager/nodes
func (h *NodeHandler) CreateNode(c *gin.Context) {
	var req model.CreateNodeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	node, err := h.nodeService.CreateNode(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"node": node})
}

// UpdateNode godoc
// PATCH /api/v1/manager/nodes/:id
func (h *NodeHandler) UpdateNode(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateNodeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	node, err := h.nodeService.UpdateNode(c.Request.Context(), id, &req)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"node": node})
}

// DeleteNode godoc
// DELETE /api/v1/manager/nodes/:id
func (h *NodeHandler) DeleteNode(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.nodeService.DeleteNode(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
