package model

import (
	"fmt"
	"time"
)

// ResourceType enumerates the kinds of learning material.
type ResourceType string

const (
	ResourceTypePDF      ResourceType = "PDF"
	ResourceTypeVideo    ResourceType = "VIDEO"
	ResourceTypeQuiz     ResourceType = "QUIZ"
	ResourceTypeExercise ResourceType = "EXERCISE"
)

// Resource is a piece of learning material attached to a knowledge node.
type Resource struct {
	ID           int          `json:"id"`
	Title        string       `json:"title"`
	ResourceType ResourceType `json:"resource_type"`
	NodeID       int          `json:"node_id"`
	DriveFileID  string       `json:"drive_file_id,omitempty"`
	ExternalURL  string       `json:"external_url,omitempty"`
	ContentText  string       `json:"content_text,omitempty"`
	SortOrder    int          `json:"sort_order"`
	ContextIDs   []int        `json:"context_ids,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// PreviewLink derives a viewable URL for the client app.
func (r *Resource) PreviewLink() string {
	if r.ResourceType == ResourceTypePDF && r.DriveFileID != "" {
		return fmt.Sprintf("https://drive.google.com/file/d/%s/preview", r.DriveFileID)
	}
	if r.ResourceType == ResourceTypeVideo && r.ExternalURL != "" {
		return r.ExternalURL
	}
	return ""
}

// CreateResourceRequest is the payload for creating a resource.
type CreateResourceRequest struct {
	Title        string       `json:"title" binding:"required,min=1,max=255"`
	ResourceType ResourceType `json:"resource_type" binding:"required,oneof=PDF VIDEO QUIZ EXERCISE"`
	NodeID       int          `json:"node_id" binding:"required,min=1"`
	DriveFileID  string       `json:"drive_file_id" binding:"max=255"`
	ExternalURL  string       `json:"external_url" binding:"omitempty,url"`
	ContentText  string       `json:"content_text"`
	SortOrder    int          `json:"sort_order" binding:"min=0"`
	ContextIDs   []int        `json:"context_ids"`
}

// UpdateResourceRequest is the payload for updating a resource.
type UpdateResourceRequest struct {
	Title       string  `json:"title" binding:"omitempty,min=1,max=255"`
	NodeID      *int    `json:"node_id" binding:"omitempty,min=1"`
	DriveFileID *string `json:"drive_file_id" binding:"omitempty,max=255"`
	ExternalURL *string `json:"external_url" binding:"omitempty,url"`
	ContentText *string `json:"content_text"`
	SortOrder   *int    `json:"sort_order" binding:"omitempty,min=0"`
	ContextIDs  []int   `json:"context_ids"`
}
