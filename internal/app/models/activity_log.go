package models

import (
	"time"
)

// ActionType is the closed set of auditable actions.
type ActionType string

const (
	ActionUserLogin          ActionType = "USER_LOGIN"
	ActionUserLogout         ActionType = "USER_LOGOUT"
	ActionUserCreate         ActionType = "USER_CREATE"
	ActionUserUpdate         ActionType = "USER_UPDATE"
	ActionUserDelete         ActionType = "USER_DELETE"
	ActionMeetingCreate      ActionType = "MEETING_CREATE"
	ActionMeetingUpdate      ActionType = "MEETING_UPDATE"
	ActionMeetingDelete      ActionType = "MEETING_DELETE"
	ActionMeetingRegister    ActionType = "MEETING_REGISTER"
	ActionAdmin              ActionType = "ADMIN_ACTION"
	ActionRegistrationCreate ActionType = "REGISTRATION_CREATE"
	ActionAnnotationCreate   ActionType = "ANNOTATION_CREATE"
)

// EntityType identifies the kind of entity an audit entry refers to.
type EntityType string

const (
	EntityUser         EntityType = "USER"
	EntityMeeting      EntityType = "MEETING"
	EntityRegistration EntityType = "REGISTRATION"
	EntityAnnotation   EntityType = "ANNOTATION"
)

// ActivityMetadata carries optional state snapshots and free-form details
// for an audit entry, stored as JSONB.
type ActivityMetadata struct {
	PreviousState map[string]interface{} `json:"previousState,omitempty"`
	NewState      map[string]interface{} `json:"newState,omitempty"`
	Details       map[string]interface{} `json:"details,omitempty"`
}

// ActivityLog is an append-only audit record of a user or system action.
// UserID is nil for anonymous/system-initiated actions. Entries are never
// mutated or deleted.
type ActivityLog struct {
	ID         int64             `json:"id" db:"id" example:"1"`
	UserID     *int64            `json:"userId,omitempty" db:"user_id"`
	Action     ActionType        `json:"action" db:"action" example:"MEETING_CREATE"`
	EntityType EntityType        `json:"entityType" db:"entity_type" example:"MEETING"`
	EntityID   *int64            `json:"entityId,omitempty" db:"entity_id"`
	Metadata   *ActivityMetadata `json:"metadata,omitempty" db:"metadata"`
	IPAddress  *string           `json:"ipAddress,omitempty" db:"ip_address"`
	UserAgent  *string           `json:"userAgent,omitempty" db:"user_agent"`
	Timestamp  time.Time         `json:"timestamp" db:"timestamp"`
}
