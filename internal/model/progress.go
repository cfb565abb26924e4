package model

import (
	"time"
)

// StudentProgress tracks a user's completion state for a resource.
// Upserted by the progress worker; unique per (user, resource).
type StudentProgress struct {
	UserID       int       `json:"user_id"`
	ResourceID   int       `json:"resource_id"`
	IsCompleted  bool      `json:"is_completed"`
	LastAccessed time.Time `json:"last_accessed"`
}

// ProgressMessage is the queue payload pushed after a graded attempt commits
// and drained by the progress worker. Losing one is acceptable; losing an
// attempt is not.
type ProgressMessage struct {
	UserID     int `json:"user_id"`
	ResourceID int `json:"resource_id"`
}
