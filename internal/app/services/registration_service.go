package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/liqa/liqa-backend/internal/app/models"
	"github.com/liqa/liqa-backend/internal/app/models/dto"
	"github.com/liqa/liqa-backend/internal/app/repositories"
	"github.com/liqa/liqa-backend/internal/pkg/apperrors"
	"github.com/liqa/liqa-backend/internal/pkg/email"
)

// RegistrationService handles meeting registrations
type RegistrationService struct {
	registrationRepo *repositories.RegistrationRepository
	meetingRepo      *repositories.MeetingRepository
	userRepo         *repositories.UserRepository
	emailService     email.EmailService
	logger           zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	registrationRepo *repositories.RegistrationRepository,
	meetingRepo *repositories.MeetingRepository,
	userRepo *repositories.UserRepository,
	emailService email.EmailService,
	logger zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		registrationRepo: registrationRepo,
		meetingRepo:      meetingRepo,
		userRepo:         userRepo,
		emailService:     emailService,
		logger:           logger,
	}
}

// RegisterForMeeting registers a user for a meeting once and sends a
// best-effort confirmation email. Registering twice is a conflict.
func (s *RegistrationService) RegisterForMeeting(ctx context.Context, userID, meetingID int64) (*models.Registration, error) {
	meeting, err := s.meetingRepo.GetByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	registration, err := s.registrationRepo.Create(ctx, userID, meetingID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("userID", userID).
		Int64("meetingID", meetingID).
		Msg("User registered for meeting")

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Int64("userID", userID).
			Msg("Skipping confirmation email, failed to load user")
		return registration, nil
	}
	if err := s.emailService.SendRegistrationConfirmation(user.Email, user.Name, meeting.Title, meeting.Date); err != nil {
		s.logger.Warn().
			Err(err).
			Str("email", user.Email).
			Int64("meetingID", meetingID).
			Msg("Failed to send registration confirmation email")
	}

	return registration, nil
}

// GetAllRegistrations returns every registration joined with its user and
// meeting for the admin dashboard. Rows whose user or meeting has vanished
// are still listed, just without the detail.
func (s *RegistrationService) GetAllRegistrations(ctx context.Context) ([]dto.RegistrationDetailResponse, error) {
	registrations, err := s.registrationRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing registrations: %w", err)
	}

	details := make([]dto.RegistrationDetailResponse, 0, len(registrations))
	for _, registration := range registrations {
		detail := dto.RegistrationDetailResponse{Registration: registration}

		user, err := s.userRepo.GetByID(ctx, registration.UserID)
		if err == nil {
			resp := dto.NewUserResponse(user)
			detail.User = &resp
		} else if !errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, err
		}

		meeting, err := s.meetingRepo.GetByID(ctx, registration.MeetingID)
		if err == nil {
			detail.Meeting = meeting
		} else if !errors.Is(err, apperrors.ErrMeetingNotFound) {
			return nil, err
		}

		details = append(details, detail)
	}

	return details, nil
}
