package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/liqa/liqa-backend/internal/app/models"
	"github.com/liqa/liqa-backend/internal/pkg/email"
	"github.com/liqa/liqa-backend/internal/pkg/helpers"
	"github.com/liqa/liqa-backend/internal/pkg/websocket"
)

// Reminder thresholds in minutes before a meeting starts
const (
	dayReminderMinutes  = 24 * 60
	hourReminderMinutes = 60
)

// notificationBroadcaster fans a notification out to connected clients
type notificationBroadcaster interface {
	Broadcast(notification *websocket.Notification)
}

// reminderMeetingStore loads meetings for the two reminder sweeps
type reminderMeetingStore interface {
	GetUpcomingAfter(ctx context.Context, after time.Time) ([]models.Meeting, error)
	GetUpcomingBetween(ctx context.Context, start, end time.Time) ([]models.Meeting, error)
}

// reminderRegistrationStore loads the recipients of email reminders
type reminderRegistrationStore interface {
	GetByMeeting(ctx context.Context, meetingID int64) ([]models.Registration, error)
}

// reminderUserStore resolves registration user IDs to addresses
type reminderUserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// ReminderService runs the periodic reminder sweeps: a minutely broadcast
// sweep that fires exactly at the 24-hour and 1-hour marks, and a coarser
// email sweep over everything starting within the next 24 hours.
type ReminderService interface {
	Start() error
	Stop()
}

// reminderServiceImpl implements ReminderService
type reminderServiceImpl struct {
	meetingStore      reminderMeetingStore
	registrationStore reminderRegistrationStore
	userStore         reminderUserStore
	broadcaster       notificationBroadcaster
	emailService      email.EmailService
	logger            zerolog.Logger

	broadcastSpec string
	emailSpec     string

	cron *cron.Cron
	now  func() time.Time
}

// NewReminderService creates a new ReminderService. broadcastSpec and
// emailSpec are cron expressions; the broadcast sweep is expected to run
// every minute for the exact-match thresholds to fire.
func NewReminderService(
	meetingStore reminderMeetingStore,
	registrationStore reminderRegistrationStore,
	userStore reminderUserStore,
	broadcaster notificationBroadcaster,
	emailService email.EmailService,
	broadcastSpec string,
	emailSpec string,
	logger zerolog.Logger,
) ReminderService {
	return &reminderServiceImpl{
		meetingStore:      meetingStore,
		registrationStore: registrationStore,
		userStore:         userStore,
		broadcaster:       broadcaster,
		emailService:      emailService,
		broadcastSpec:     broadcastSpec,
		emailSpec:         emailSpec,
		cron:              cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		logger:            logger,
		now:               time.Now,
	}
}

// Start schedules both sweeps and starts the cron runner
func (s *reminderServiceImpl) Start() error {
	if _, err := s.cron.AddFunc(s.broadcastSpec, s.broadcastSweep); err != nil {
		return fmt.Errorf("failed to schedule broadcast sweep: %w", err)
	}
	if _, err := s.cron.AddFunc(s.emailSpec, s.emailSweep); err != nil {
		return fmt.Errorf("failed to schedule email sweep: %w", err)
	}
	s.cron.Start()

	s.logger.Info().
		Str("broadcastSpec", s.broadcastSpec).
		Str("emailSpec", s.emailSpec).
		Msg("Reminder scheduler started")
	return nil
}

// Stop halts the cron runner and waits for running sweeps to finish
func (s *reminderServiceImpl) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("Reminder scheduler stopped")
}

// broadcastSweep pushes a notification for every upcoming meeting that is
// exactly 24 hours or exactly 1 hour away. Minutes are floored, so each
// threshold matches during a single one-minute window and the reminder
// fires once per threshold.
func (s *reminderServiceImpl) broadcastSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := s.now()
	meetings, err := s.meetingStore.GetUpcomingAfter(ctx, now)
	if err != nil {
		s.logger.Error().Err(err).Msg("Reminder broadcast sweep failed to load meetings")
		return
	}

	for _, meeting := range meetings {
		var message string
		switch helpers.MinutesUntil(now, meeting.Date) {
		case dayReminderMinutes:
			message = fmt.Sprintf("Meeting %q starts in 24 hours", meeting.Title)
		case hourReminderMinutes:
			message = fmt.Sprintf("Meeting %q starts in 1 hour", meeting.Title)
		default:
			continue
		}

		s.broadcaster.Broadcast(&websocket.Notification{
			Type:    "upcoming-meeting",
			Message: message,
		})
		s.logger.Info().
			Int64("meetingID", meeting.ID).
			Str("title", meeting.Title).
			Msg("Broadcasted meeting reminder")
	}
}

// emailSweep emails every registered user of every meeting starting within
// the next 24 hours. There is no persisted send log, so consecutive sweeps
// may email the same meeting again; recipients get at most a handful of
// reminders and the sweep stays stateless.
func (s *reminderServiceImpl) emailSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	now := s.now()
	meetings, err := s.meetingStore.GetUpcomingBetween(ctx, now, now.Add(24*time.Hour))
	if err != nil {
		s.logger.Error().Err(err).Msg("Reminder email sweep failed to load meetings")
		return
	}

	for _, meeting := range meetings {
		registrations, err := s.registrationStore.GetByMeeting(ctx, meeting.ID)
		if err != nil {
			s.logger.Error().
				Err(err).
				Int64("meetingID", meeting.ID).
				Msg("Failed to load registrations for reminder emails")
			continue
		}

		for _, registration := range registrations {
			user, err := s.userStore.GetByID(ctx, registration.UserID)
			if err != nil {
				s.logger.Warn().
					Err(err).
					Int64("userID", registration.UserID).
					Int64("meetingID", meeting.ID).
					Msg("Skipping reminder email, failed to load user")
				continue
			}

			if err := s.emailService.SendMeetingReminder(user.Email, user.Name, meeting.Title, meeting.Date); err != nil {
				s.logger.Warn().
					Err(err).
					Str("email", user.Email).
					Int64("meetingID", meeting.ID).
					Msg("Failed to send reminder email")
			}
		}
	}
}
