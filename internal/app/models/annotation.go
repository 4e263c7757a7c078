package models

import (
	"time"
)

// Annotation is a timestamped note a user takes on a meeting recording.
// Timestamp is the offset into the recording in seconds.
type Annotation struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	MeetingID int64     `json:"meetingId" db:"meeting_id" example:"7"`
	UserID    int64     `json:"userId" db:"user_id" example:"3"`
	Timestamp int       `json:"timestamp" db:"timestamp" example:"745"`
	Text      string    `json:"text" db:"text" example:"Key point about zoning"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
