package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liqa/liqa-backend/internal/app/models"
	"github.com/liqa/liqa-backend/internal/pkg/websocket"
)

type stubBroadcaster struct {
	notifications []*websocket.Notification
}

func (s *stubBroadcaster) Broadcast(notification *websocket.Notification) {
	s.notifications = append(s.notifications, notification)
}

type stubUserDirectory struct {
	users map[int64]*models.User
}

func (s *stubUserDirectory) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

type sentReminder struct {
	toEmail      string
	meetingTitle string
}

type stubEmailService struct {
	reminders []sentReminder
	failFor   map[string]bool
}

func (s *stubEmailService) SendRegistrationConfirmation(toEmail, toName, meetingTitle string, meetingDate time.Time) error {
	return nil
}

func (s *stubEmailService) SendMeetingReminder(toEmail, toName, meetingTitle string, meetingDate time.Time) error {
	if s.failFor[toEmail] {
		return errors.New("smtp rejected recipient")
	}
	s.reminders = append(s.reminders, sentReminder{toEmail: toEmail, meetingTitle: meetingTitle})
	return nil
}

func (s *stubEmailService) SendNewMeetingAnnouncement(toEmail, toName, meetingTitle string, meetingDate time.Time) error {
	return nil
}

func (s *stubEmailService) SendPasswordResetEmail(toEmail, toName, token string) error {
	return nil
}

var reminderNow = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

func newReminderServiceForTest(
	meetings *stubMeetingStore,
	registrations *stubRegistrationStore,
	users *stubUserDirectory,
	broadcaster *stubBroadcaster,
	emails *stubEmailService,
) *reminderServiceImpl {
	return &reminderServiceImpl{
		meetingStore:      meetings,
		registrationStore: registrations,
		userStore:         users,
		broadcaster:       broadcaster,
		emailService:      emails,
		logger:            zerolog.Nop(),
		now:               func() time.Time { return reminderNow },
	}
}

func meetingStartingIn(id int64, title string, until time.Duration) models.Meeting {
	return models.Meeting{
		ID:         id,
		Title:      title,
		Date:       reminderNow.Add(until),
		IsUpcoming: true,
	}
}

func TestBroadcastSweepFiresAtExactThresholds(t *testing.T) {
	broadcaster := &stubBroadcaster{}
	meetings := &stubMeetingStore{meetings: []models.Meeting{
		meetingStartingIn(1, "Go Clinic", time.Hour),
		meetingStartingIn(2, "Design Review", 24*time.Hour),
	}}

	svc := newReminderServiceForTest(meetings, &stubRegistrationStore{}, &stubUserDirectory{}, broadcaster, &stubEmailService{})
	svc.broadcastSweep()

	require.Len(t, broadcaster.notifications, 2)
	assert.Equal(t, "upcoming-meeting", broadcaster.notifications[0].Type)
	assert.Equal(t, `Meeting "Go Clinic" starts in 1 hour`, broadcaster.notifications[0].Message)
	assert.Equal(t, `Meeting "Design Review" starts in 24 hours`, broadcaster.notifications[1].Message)
}

func TestBroadcastSweepSilentOutsideThresholds(t *testing.T) {
	broadcaster := &stubBroadcaster{}
	meetings := &stubMeetingStore{meetings: []models.Meeting{
		meetingStartingIn(1, "Too Soon", 59*time.Minute),
		meetingStartingIn(2, "Just Over", 61*time.Minute),
		meetingStartingIn(3, "Almost A Day", 1439*time.Minute),
		meetingStartingIn(4, "Over A Day", 1441*time.Minute),
	}}

	svc := newReminderServiceForTest(meetings, &stubRegistrationStore{}, &stubUserDirectory{}, broadcaster, &stubEmailService{})
	svc.broadcastSweep()

	assert.Empty(t, broadcaster.notifications)
}

func TestBroadcastSweepFiresWithinTheMinuteWindow(t *testing.T) {
	broadcaster := &stubBroadcaster{}
	// 60 minutes and 30 seconds away still floors to 60 minutes.
	meetings := &stubMeetingStore{meetings: []models.Meeting{
		meetingStartingIn(1, "Standup", 60*time.Minute+30*time.Second),
	}}

	svc := newReminderServiceForTest(meetings, &stubRegistrationStore{}, &stubUserDirectory{}, broadcaster, &stubEmailService{})
	svc.broadcastSweep()

	require.Len(t, broadcaster.notifications, 1)
	assert.Equal(t, `Meeting "Standup" starts in 1 hour`, broadcaster.notifications[0].Message)
}

func TestEmailSweepWindowAndRecipients(t *testing.T) {
	meetings := &stubMeetingStore{meetings: []models.Meeting{
		meetingStartingIn(1, "Inside Window", 3*time.Hour),
		meetingStartingIn(2, "Outside Window", 30*time.Hour),
	}}
	registrations := &stubRegistrationStore{registrations: []models.Registration{
		{ID: 1, UserID: 10, MeetingID: 1},
		{ID: 2, UserID: 11, MeetingID: 1},
		{ID: 3, UserID: 10, MeetingID: 2},
	}}
	users := &stubUserDirectory{users: map[int64]*models.User{
		10: {ID: 10, Email: "ada@example.com", Name: "Ada"},
		11: {ID: 11, Email: "grace@example.com", Name: "Grace"},
	}}
	emails := &stubEmailService{}

	svc := newReminderServiceForTest(meetings, registrations, users, &stubBroadcaster{}, emails)
	svc.emailSweep()

	require.Len(t, emails.reminders, 2)
	assert.Equal(t, "Inside Window", emails.reminders[0].meetingTitle)
	assert.Equal(t, "Inside Window", emails.reminders[1].meetingTitle)
}

func TestEmailSweepSkipsFailedRecipients(t *testing.T) {
	meetings := &stubMeetingStore{meetings: []models.Meeting{
		meetingStartingIn(1, "Planning", 2*time.Hour),
	}}
	registrations := &stubRegistrationStore{registrations: []models.Registration{
		{ID: 1, UserID: 10, MeetingID: 1},
		{ID: 2, UserID: 11, MeetingID: 1},
		{ID: 3, UserID: 12, MeetingID: 1},
	}}
	// User 12 is missing; user 11's mailbox rejects the send.
	users := &stubUserDirectory{users: map[int64]*models.User{
		10: {ID: 10, Email: "ada@example.com", Name: "Ada"},
		11: {ID: 11, Email: "grace@example.com", Name: "Grace"},
	}}
	emails := &stubEmailService{failFor: map[string]bool{"grace@example.com": true}}

	svc := newReminderServiceForTest(meetings, registrations, users, &stubBroadcaster{}, emails)
	svc.emailSweep()

	require.Len(t, emails.reminders, 1)
	assert.Equal(t, "ada@example.com", emails.reminders[0].toEmail)
}
