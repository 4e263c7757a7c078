package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/liqa/liqa-backend/internal/app/models"
	"github.com/liqa/liqa-backend/internal/app/repositories"
)

// AnnotationService handles timestamped notes on meeting recordings
type AnnotationService struct {
	annotationRepo *repositories.AnnotationRepository
	meetingRepo    *repositories.MeetingRepository
	logger         zerolog.Logger
}

// NewAnnotationService creates a new AnnotationService
func NewAnnotationService(
	annotationRepo *repositories.AnnotationRepository,
	meetingRepo *repositories.MeetingRepository,
	logger zerolog.Logger,
) *AnnotationService {
	return &AnnotationService{
		annotationRepo: annotationRepo,
		meetingRepo:    meetingRepo,
		logger:         logger,
	}
}

// CreateAnnotation attaches a note to a point in a meeting recording
func (s *AnnotationService) CreateAnnotation(ctx context.Context, userID, meetingID int64, timestamp int, text string) (*models.Annotation, error) {
	if _, err := s.meetingRepo.GetByID(ctx, meetingID); err != nil {
		return nil, err
	}

	annotation := &models.Annotation{
		MeetingID: meetingID,
		UserID:    userID,
		Timestamp: timestamp,
		Text:      text,
	}
	if err := s.annotationRepo.Create(ctx, annotation); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int64("meetingID", meetingID).
		Int64("userID", userID).
		Int("timestamp", timestamp).
		Msg("Annotation created")
	return annotation, nil
}

// GetAnnotations returns a meeting's annotations ordered by their position
// in the recording
func (s *AnnotationService) GetAnnotations(ctx context.Context, meetingID int64) ([]models.Annotation, error) {
	if _, err := s.meetingRepo.GetByID(ctx, meetingID); err != nil {
		return nil, err
	}
	return s.annotationRepo.GetByMeeting(ctx, meetingID)
}
