package model

// NodeType enumerates levels of the knowledge tree.
type NodeType string

const (
	NodeTypeDomain  NodeType = "DOMAIN"
	NodeTypeSubject NodeType = "SUBJECT"
	NodeTypeSection NodeType = "SECTION"
	NodeTypeTopic   NodeType = "TOPIC"
)

// KnowledgeNode is one node of the recursive content tree
// (Science → Physics → Thermodynamics → Entropy).
type KnowledgeNode struct {
	ID           int              `json:"id"`
	Name         string           `json:"name"`
	NodeType     NodeType         `json:"node_type"`
	ParentID     *int             `json:"parent_id,omitempty"`
	SortOrder    int              `json:"sort_order"`
	Description  string           `json:"description,omitempty"`
	ThumbnailURL string           `json:"thumbnail_url,omitempty"`
	IsActive     bool             `json:"is_active"`
	Children     []*KnowledgeNode `json:"children,omitempty"`
}

// ProgramContext tags content for a goal ("Class 11", "JEE Mains", "Olympiad").
type ProgramContext struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateNodeRequest is the payload for creating a knowledge node.
type CreateNodeRequest struct {
	Name         string   `json:"name" binding:"required,min=1,max=255"`
	NodeType     NodeType `json:"node_type" binding:"required,oneof=DOMAIN SUBJECT SECTION TOPIC"`
	ParentID     *int     `json:"parent_id"`
	SortOrder    int      `json:"sort_order" binding:"min=0"`
	Description  string   `json:"description" binding:"max=2000"`
	ThumbnailURL string   `json:"thumbnail_url" binding:"omitempty,url"`
}

// UpdateNodeRequest is the payload for updating a knowledge node.
type UpdateNodeRequest struct {
	Name         string    `json:"name" binding:"omitempty,min=1,max=255"`
	ParentID     *int      `json:"parent_id"`
	SortOrder    *int      `json:"sort_order" binding:"omitempty,min=0"`
	Description  *string   `json:"description" binding:"omitempty,max=2000"`
	ThumbnailURL *string   `json:"thumbnail_url" binding:"omitempty,url"`
	IsActive     *bool     `json:"is_active"`
	NodeType     *NodeType `json:"node_type" binding:"omitempty,oneof=DOMAIN SUBJECT SECTION TOPIC"`
}

// CreateContextRequest is the payload for creating a program context.
type CreateContextRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=1000"`
}
