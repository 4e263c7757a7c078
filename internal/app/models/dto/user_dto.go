package dto

import (
	"time"

	"github.com/liqa/liqa-backend/internal/app/models"
)

// UserResponse is the public view of a user
type UserResponse struct {
	ID          int64                   `json:"id" example:"1"`
	Email       string                  `json:"email" example:"user@example.com"`
	Name        string                  `json:"name" example:"Amira Haddad"`
	IsAdmin     bool                    `json:"isAdmin" example:"false"`
	Preferences *models.UserPreferences `json:"preferences,omitempty"`
	CreatedAt   time.Time               `json:"createdAt"`
}

// NewUserResponse maps a user model onto its public view
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		IsAdmin:     u.IsAdmin,
		Preferences: u.Preferences,
		CreatedAt:   u.CreatedAt,
	}
}

// UpdateProfileRequest updates the caller's display name and preferences
type UpdateProfileRequest struct {
	Name        *string                 `json:"name,omitempty"`
	Preferences *models.UserPreferences `json:"preferences,omitempty"`
}

// UpdateUserRoleRequest toggles a user's admin flag (admin only)
type UpdateUserRoleRequest struct {
	IsAdmin *bool `json:"isAdmin" binding:"required"`
}

// UserListResponse is the paginated admin user listing
type UserListResponse struct {
	Users          []UserResponse `json:"users"`
	PaginationInfo PaginationInfo `json:"pagination"`
}
