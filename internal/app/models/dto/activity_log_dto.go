package dto

import (
	"time"
)

// ActivityLogFilterRequest narrows the admin audit-log query. All fields are
// optional; the date range is inclusive on both ends.
type ActivityLogFilterRequest struct {
	UserID     *int64     `form:"userId"`
	EntityType *string    `form:"entityType"`
	Action     *string    `form:"action"`
	StartDate  *time.Time `form:"startDate" time_format:"2006-01-02T15:04:05Z07:00"`
	EndDate    *time.Time `form:"endDate" time_format:"2006-01-02T15:04:05Z07:00"`
}
