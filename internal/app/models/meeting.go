package models

import (
	"time"
)

// Meeting defines the meeting model based on the 'meetings' table.
// An upcoming meeting is a future/live one; a past meeting is recorded and
// should carry a video URL (enforced at the validation boundary).
type Meeting struct {
	ID             int64     `json:"id" db:"id" example:"1"`                                       // Unique identifier for the meeting
	Title          string    `json:"title" db:"title" example:"Rebuilding Old Homs"`              // Meeting title
	Description    string    `json:"description" db:"description"`                                 // Meeting description
	Date           time.Time `json:"date" db:"date" example:"2025-09-15T18:00:00Z"`                // Scheduled date and time
	VideoURL       *string   `json:"videoUrl,omitempty" db:"video_url"`                            // Recording URL (nullable, required for past meetings)
	IsUpcoming     bool      `json:"isUpcoming" db:"is_upcoming" example:"true"`                   // true = future/live, false = past/recorded
	Categories     []string  `json:"categories" db:"categories" example:"housing,urbanism"`        // Category tags
	Topics         []string  `json:"topics" db:"topics"`                                           // Topic tags
	TargetAudience []string  `json:"targetAudience" db:"target_audience"`                          // Target-audience tags
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`                                    // Timestamp when the meeting was created
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`                                    // Timestamp when the meeting was last updated
}

// SharesCategoryWith reports whether the two meetings have at least one
// category tag in common.
func (m *Meeting) SharesCategoryWith(other *Meeting) bool {
	for _, c := range m.Categories {
		for _, oc := range other.Categories {
			if c == oc {
				return true
			}
		}
	}
	return false
}
