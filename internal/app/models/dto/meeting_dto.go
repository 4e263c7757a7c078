package dto

import (
	"time"

	"github.com/liqa/liqa-backend/internal/app/models"
)

// CreateMeetingRequest is the admin payload for creating a meeting
type CreateMeetingRequest struct {
	Title          string    `json:"title" binding:"required"`
	Description    string    `json:"description" binding:"required"`
	Date           time.Time `json:"date" binding:"required"`
	VideoURL       *string   `json:"videoUrl,omitempty"`
	IsUpcoming     *bool     `json:"isUpcoming,omitempty"`
	Categories     []string  `json:"categories"`
	Topics         []string  `json:"topics"`
	TargetAudience []string  `json:"targetAudience"`
}

// UpdateMeetingRequest is the admin payload for a partial meeting update
type UpdateMeetingRequest struct {
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Date           *time.Time `json:"date,omitempty"`
	VideoURL       *string    `json:"videoUrl,omitempty"`
	IsUpcoming     *bool      `json:"isUpcoming,omitempty"`
	Categories     []string   `json:"categories,omitempty"`
	Topics         []string   `json:"topics,omitempty"`
	TargetAudience []string   `json:"targetAudience,omitempty"`
}

// RegistrationDetailResponse joins a registration with its user and meeting
// for the admin dashboard listing.
type RegistrationDetailResponse struct {
	models.Registration
	User    *UserResponse   `json:"user,omitempty"`
	Meeting *models.Meeting `json:"meeting,omitempty"`
}
