package models

import (
	"time"
)

// UserPreferences holds the optional personalization settings stored as JSONB.
// The whole blob is nullable; individual slices may be empty.
type UserPreferences struct {
	Interests          []string `json:"interests"`
	PreferredDays      []string `json:"preferredDays"`
	PreferredTimeOfDay []string `json:"preferredTimeOfDay"`
}

// User defines the user model based on the 'users' table
type User struct {
	ID               int64            `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email            string           `json:"email" db:"email" example:"user@example.com"`              // User's email address
	Password         string           `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	Name             string           `json:"name" db:"name" example:"Amira Haddad"`                    // User's display name
	IsAdmin          bool             `json:"isAdmin" db:"is_admin" example:"false"`                    // Whether the user has admin privileges
	ResetToken       *string          `json:"-" db:"reset_token"`                                       // Password reset token (nullable)
	ResetTokenExpiry *time.Time       `json:"-" db:"reset_token_expiry"`                                // Expiry of the reset token (nullable)
	Preferences      *UserPreferences `json:"preferences,omitempty" db:"preferences"`                   // Personalization preferences (nullable)
	CreatedAt        time.Time        `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt        time.Time        `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
}

// HasInterests reports whether the user declared any interest tags.
func (u *User) HasInterests() bool {
	return u.Preferences != nil && len(u.Preferences.Interests) > 0
}

// HasPreferredDays reports whether the user declared any preferred weekdays.
func (u *User) HasPreferredDays() bool {
	return u.Preferences != nil && len(u.Preferences.PreferredDays) > 0
}
