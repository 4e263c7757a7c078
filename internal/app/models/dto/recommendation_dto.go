package dto

import (
	"github.com/liqa/liqa-backend/internal/app/models"
)

// MeetingRecommendation is a scored upcoming meeting with the reasons it
// was recommended
type MeetingRecommendation struct {
	Meeting models.Meeting `json:"meeting"`
	Score   int            `json:"score"`
	Reasons []string       `json:"reasons"`
}
