package model

import (
	"time"
)

// AdmissionStatus enumerates the review states of an admission request.
type AdmissionStatus string

const (
	AdmissionStatusPending  AdmissionStatus = "PENDING"
	AdmissionStatusApproved AdmissionStatus = "APPROVED"
	AdmissionStatusRejected AdmissionStatus = "REJECTED"
)

// AdmissionRequest is a public, rate-limited signup funnel entry.
type AdmissionRequest struct {
	ID           int             `json:"id"`
	StudentName  string          `json:"student_name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	ClassGrade   string          `json:"class_grade"`
	LearningGoal string          `json:"learning_goal,omitempty"`
	Status       AdmissionStatus `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CreateAdmissionRequest is the public payload for requesting an account.
type CreateAdmissionRequest struct {
	StudentName  string `json:"student_name" binding:"required,min=2,max=150"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required,min=7,max=20"`
	ClassGrade   string `json:"class_grade" binding:"required,max=20"`
	LearningGoal string `json:"learning_goal" binding:"max=1000"`
}

// UpdateAdmissionStatusRequest is the manager payload for reviewing a request.
type UpdateAdmissionStatusRequest struct {
	Status AdmissionStatus `json:"status" binding:"required,oneof=PENDING APPROVED REJECTED"`
}
