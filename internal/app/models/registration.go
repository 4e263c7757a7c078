package models

import (
	"time"
)

// RegistrationFeedback holds the optional post-meeting feedback stored as JSONB.
type RegistrationFeedback struct {
	Rating    int      `json:"rating"`
	Interests []string `json:"interests"`
	Comments  string   `json:"comments"`
}

// Registration links a user to a meeting. At most one registration exists per
// (user, meeting) pair; registrations are never deleted by business flows.
type Registration struct {
	ID               int64                 `json:"id" db:"id" example:"1"`              // Unique identifier for the registration
	UserID           int64                 `json:"userId" db:"user_id" example:"3"`     // Registered user
	MeetingID        int64                 `json:"meetingId" db:"meeting_id" example:"7"` // Target meeting
	RegistrationDate time.Time             `json:"registrationDate" db:"registration_date"` // When the user registered
	Attended         bool                  `json:"attended" db:"attended" example:"false"`  // Whether the user attended
	Feedback         *RegistrationFeedback `json:"feedback,omitempty" db:"feedback"`        // Post-meeting feedback (nullable)
}
