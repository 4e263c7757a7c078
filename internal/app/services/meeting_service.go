package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/liqa/liqa-backend/internal/app/models"
	"github.com/liqa/liqa-backend/internal/app/models/dto"
	"github.com/liqa/liqa-backend/internal/app/repositories"
	"github.com/liqa/liqa-backend/internal/pkg/apperrors"
	"github.com/liqa/liqa-backend/internal/pkg/email"
	"github.com/liqa/liqa-backend/internal/pkg/websocket"
)

// MeetingService handles meeting listing and admin meeting management
type MeetingService struct {
	meetingRepo  *repositories.MeetingRepository
	userRepo     *repositories.UserRepository
	emailService email.EmailService
	broadcaster  notificationBroadcaster
	logger       zerolog.Logger
}

// NewMeetingService creates a new MeetingService
func NewMeetingService(
	meetingRepo *repositories.MeetingRepository,
	userRepo *repositories.UserRepository,
	emailService email.EmailService,
	broadcaster notificationBroadcaster,
	logger zerolog.Logger,
) *MeetingService {
	return &MeetingService{
		meetingRepo:  meetingRepo,
		userRepo:     userRepo,
		emailService: emailService,
		broadcaster:  broadcaster,
		logger:       logger,
	}
}

// GetAllMeetings lists meetings, optionally filtered to upcoming or past
func (s *MeetingService) GetAllMeetings(ctx context.Context, isUpcoming *bool) ([]models.Meeting, error) {
	return s.meetingRepo.GetAll(ctx, isUpcoming)
}

// GetMeetingByID returns a single meeting
func (s *MeetingService) GetMeetingByID(ctx context.Context, id int64) (*models.Meeting, error) {
	return s.meetingRepo.GetByID(ctx, id)
}

// CreateMeeting creates a meeting, announces it to connected clients and
// emails every user about it. Announcements are best-effort.
func (s *MeetingService) CreateMeeting(ctx context.Context, req *dto.CreateMeetingRequest) (*models.Meeting, error) {
	isUpcoming := true
	if req.IsUpcoming != nil {
		isUpcoming = *req.IsUpcoming
	}
	// A recorded (past) meeting is useless without its recording.
	if !isUpcoming && (req.VideoURL == nil || *req.VideoURL == "") {
		return nil, apperrors.ErrVideoURLRequired
	}

	meeting := &models.Meeting{
		Title:          req.Title,
		Description:    req.Description,
		Date:           req.Date,
		VideoURL:       req.VideoURL,
		IsUpcoming:     isUpcoming,
		Categories:     req.Categories,
		Topics:         req.Topics,
		TargetAudience: req.TargetAudience,
	}
	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("meetingID", meeting.ID).
		Str("title", meeting.Title).
		Msg("Meeting created")

	if meeting.IsUpcoming {
		s.broadcaster.Broadcast(&websocket.Notification{
			Type:    "new-meeting",
			Message: fmt.Sprintf("New meeting scheduled: %s", meeting.Title),
		})
		s.announceByEmail(ctx, meeting)
	}

	return meeting, nil
}

// announceByEmail sends the new-meeting announcement to every user,
// skipping individual failures
func (s *MeetingService) announceByEmail(ctx context.Context, meeting *models.Meeting) {
	users, err := s.userRepo.GetEmailRecipients(ctx)
	if err != nil {
		s.logger.Error().Err(err).
			Int64("meetingID", meeting.ID).
			Msg("Failed to load users for new meeting announcement")
		return
	}

	for _, user := range users {
		if err := s.emailService.SendNewMeetingAnnouncement(user.Email, user.Name, meeting.Title, meeting.Date); err != nil {
			s.logger.Warn().
				Err(err).
				Str("email", user.Email).
				Int64("meetingID", meeting.ID).
				Msg("Failed to send new meeting announcement")
		}
	}
}

// UpdateMeeting applies a partial update and returns both the previous and
// the updated state so callers can audit the change
func (s *MeetingService) UpdateMeeting(ctx context.Context, id int64, req *dto.UpdateMeetingRequest) (previous, updated *models.Meeting, err error) {
	previous, err = s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Date != nil {
		fields["date"] = *req.Date
	}
	if req.VideoURL != nil {
		fields["video_url"] = *req.VideoURL
	}
	if req.IsUpcoming != nil {
		fields["is_upcoming"] = *req.IsUpcoming
	}
	if req.Categories != nil {
		fields["categories"] = req.Categories
	}
	if req.Topics != nil {
		fields["topics"] = req.Topics
	}
	if req.TargetAudience != nil {
		fields["target_audience"] = req.TargetAudience
	}

	if len(fields) == 0 {
		return previous, previous, nil
	}

	// Marking a meeting as past requires a recording, either already
	// present or arriving in this update.
	if v, ok := fields["is_upcoming"].(bool); ok && !v {
		videoURL := previous.VideoURL
		if u, ok := fields["video_url"]; ok {
			url := u.(string)
			videoURL = &url
		}
		if videoURL == nil || *videoURL == "" {
			return nil, nil, apperrors.ErrVideoURLRequired
		}
	}

	updated, err = s.meetingRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().
		Int64("meetingID", id).
		Msg("Meeting updated")
	return previous, updated, nil
}

// DeleteMeeting removes a meeting and returns its last state for auditing
func (s *MeetingService) DeleteMeeting(ctx context.Context, id int64) (*models.Meeting, error) {
	meeting, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.meetingRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("meetingID", id).
		Str("title", meeting.Title).
		Msg("Meeting deleted")
	return meeting, nil
}
