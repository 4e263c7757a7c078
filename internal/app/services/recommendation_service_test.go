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
	"github.com/liqa/liqa-backend/internal/pkg/apperrors"
)

type stubUserStore struct {
	user *models.User
	err  error
}

func (s *stubUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.user, s.err
}

type stubMeetingStore struct {
	meetings []models.Meeting
	err      error
}

func (s *stubMeetingStore) GetUpcomingAfter(ctx context.Context, after time.Time) ([]models.Meeting, error) {
	return s.meetings, s.err
}

func (s *stubMeetingStore) GetUpcomingBetween(ctx context.Context, start, end time.Time) ([]models.Meeting, error) {
	var within []models.Meeting
	for _, m := range s.meetings {
		if m.Date.After(start) && m.Date.Before(end) {
			within = append(within, m)
		}
	}
	return within, s.err
}

type stubRegistrationStore struct {
	registrations []models.Registration
	err           error
}

func (s *stubRegistrationStore) GetByUser(ctx context.Context, userID int64) ([]models.Registration, error) {
	return s.registrations, s.err
}

func (s *stubRegistrationStore) GetByMeeting(ctx context.Context, meetingID int64) ([]models.Registration, error) {
	var regs []models.Registration
	for _, r := range s.registrations {
		if r.MeetingID == meetingID {
			regs = append(regs, r)
		}
	}
	return regs, s.err
}

// Saturday noon. March 3, 2025 is the following Monday.
var recommendationNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newRecommendationServiceForTest(
	users *stubUserStore,
	meetings *stubMeetingStore,
	registrations *stubRegistrationStore,
) *recommendationServiceImpl {
	return &recommendationServiceImpl{
		userStore:         users,
		meetingStore:      meetings,
		registrationStore: registrations,
		logger:            zerolog.Nop(),
		now:               func() time.Time { return recommendationNow },
	}
}

func upcomingMeeting(id int64, title string, daysAhead int, categories ...string) models.Meeting {
	return models.Meeting{
		ID:         id,
		Title:      title,
		Date:       recommendationNow.AddDate(0, 0, daysAhead),
		IsUpcoming: true,
		Categories: categories,
	}
}

func userWithPreferences(prefs *models.UserPreferences) *models.User {
	return &models.User{ID: 1, Email: "ada@example.com", Name: "Ada", Preferences: prefs}
}

func TestGetRecommendationsInterestOverlap(t *testing.T) {
	user := userWithPreferences(&models.UserPreferences{
		Interests: []string{"go", "databases"},
	})
	meetings := &stubMeetingStore{meetings: []models.Meeting{
		upcomingMeeting(10, "Go Patterns", 3, "go", "databases", "testing"),
		upcomingMeeting(11, "Career Chat", 4, "careers"),
	}}

	svc := newRecommendationServiceForTest(&stubUserStore{user: user}, meetings, &stubRegistrationStore{})
	recs, err := svc.GetRecommendations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, int64(10), recs[0].Meeting.ID)
	assert.Equal(t, 4, recs[0].Score, "two matched interests score 2 each")
	assert.Contains(t, recs[0].Reasons, "Matches 2 of your interests")

	assert.Equal(t, 0, recs[1].Score)
	assert.Empty(t, recs[1].Reasons)
}

func TestGetRecommendationsPreferredDay(t *testing.T) {
	user := userWithPreferences(&models.UserPreferences{
		PreferredDays: []string{"monday"},
	})
	meetings := &stubMeetingStore{meetings: []models.Meeting{
		upcomingMeeting(10, "Monday Standup", 2), // Monday
		upcomingMeeting(11, "Tuesday Talk", 3),   // Tuesday
	}}

	svc := newRecommendationServiceForTest(&stubUserStore{user: user}, meetings, &stubRegistrationStore{})
	recs, err := svc.GetRecommendations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, int64(10), recs[0].Meeting.ID)
	assert.Equal(t, 1, recs[0].Score)
	assert.Equal(t, []string{"Scheduled on your preferred day"}, recs[0].Reasons)
	assert.Equal(t, 0, recs[1].Score)
}

func TestGetRecommendationsSimilarity(t *testing.T) {
	user := userWithPreferences(nil)
	meetings := &stubMeetingStore{meetings: []models.Meeting{
		upcomingMeeting(10, "Registered A", 1, "go"),
		upcomingMeeting(11, "Registered B", 2, "go"),
		upcomingMeeting(12, "Candidate", 3, "go"),
	}}
	registrations := &stubRegistrationStore{registrations: []models.Registration{
		{ID: 1, UserID: 1, MeetingID: 10},
		{ID: 2, UserID: 1, MeetingID: 11},
	}}

	svc := newRecommendationServiceForTest(&stubUserStore{user: user}, meetings, registrations)
	recs, err := svc.GetRecommendations(context.Background(), 1)
	require.NoError(t, err)

	// The two registered meetings are excluded; only the candidate remains.
	require.Len(t, recs, 1)
	assert.Equal(t, int64(12), recs[0].Meeting.ID)
	assert.Equal(t, 2, recs[0].Score)
	assert.Equal(t, []string{"Similar to 2 meetings you've attended"}, recs[0].Reasons)
}

func TestGetRecommendationsNilPreferences(t *testing.T) {
	user := userWithPreferences(nil)
	meetings := &stubMeetingStore{meetings: []models.Meeting{
		upcomingMeeting(10, "Anything", 2, "go"),
	}}

	svc := newRecommendationServiceForTest(&stubUserStore{user: user}, meetings, &stubRegistrationStore{})
	recs, err := svc.GetRecommendations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 0, recs[0].Score)
	assert.Empty(t, recs[0].Reasons)
}

func TestGetRecommendationsCapAndStableOrder(t *testing.T) {
	user := userWithPreferences(&models.UserPreferences{Interests: []string{"go"}})
	meetings := &stubMeetingStore{meetings: []models.Meeting{
		upcomingMeeting(1, "A", 1),
		upcomingMeeting(2, "B", 2),
		upcomingMeeting(3, "C", 3),
		upcomingMeeting(4, "D", 4),
		upcomingMeeting(5, "E", 5, "go"),
		upcomingMeeting(6, "F", 6),
		upcomingMeeting(7, "G", 7),
	}}

	svc := newRecommendationServiceForTest(&stubUserStore{user: user}, meetings, &stubRegistrationStore{})
	recs, err := svc.GetRecommendations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recs, maxRecommendations)

	// The scored meeting floats to the front; ties keep discovery order.
	assert.Equal(t, int64(5), recs[0].Meeting.ID)
	assert.Equal(t, int64(1), recs[1].Meeting.ID)
	assert.Equal(t, int64(2), recs[2].Meeting.ID)
	assert.Equal(t, int64(3), recs[3].Meeting.ID)
	assert.Equal(t, int64(4), recs[4].Meeting.ID)
}

func TestGetRecommendationsUnknownUser(t *testing.T) {
	svc := newRecommendationServiceForTest(
		&stubUserStore{err: apperrors.ErrUserNotFound},
		&stubMeetingStore{},
		&stubRegistrationStore{},
	)

	_, err := svc.GetRecommendations(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestGetRecommendationsMeetingLoadFailure(t *testing.T) {
	user := userWithPreferences(nil)
	svc := newRecommendationServiceForTest(
		&stubUserStore{user: user},
		&stubMeetingStore{err: errors.New("connection refused")},
		&stubRegistrationStore{},
	)

	_, err := svc.GetRecommendations(context.Background(), 1)
	assert.Error(t, err)
}
