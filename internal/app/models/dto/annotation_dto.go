package dto

// CreateAnnotationRequest adds a timestamped note to a meeting recording.
// Timestamp is the offset into the recording in seconds.
type CreateAnnotationRequest struct {
	Timestamp *int   `json:"timestamp" binding:"required,min=0"`
	Text      string `json:"text" binding:"required,min=1"`
}
