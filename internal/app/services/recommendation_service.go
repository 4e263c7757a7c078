package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/liqa/liqa-backend/internal/app/models"
	"github.com/liqa/liqa-backend/internal/app/models/dto"
)

// Maximum number of recommendations returned per user
const maxRecommendations = 5

// Scoring weights. Interest matches count double because explicit
// preferences are a stronger signal than registration history.
const (
	interestMatchWeight = 2
	preferredDayWeight  = 1
	similarityWeight    = 1
)

// recommendationUserStore is the slice of the user repository the scorer needs
type recommendationUserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// recommendationMeetingStore loads the upcoming-meeting candidates
type recommendationMeetingStore interface {
	GetUpcomingAfter(ctx context.Context, after time.Time) ([]models.Meeting, error)
}

// recommendationRegistrationStore loads the user's registration history
type recommendationRegistrationStore interface {
	GetByUser(ctx context.Context, userID int64) ([]models.Registration, error)
}

// RecommendationService ranks upcoming meetings for a user
type RecommendationService interface {
	GetRecommendations(ctx context.Context, userID int64) ([]dto.MeetingRecommendation, error)
}

// recommendationServiceImpl implements RecommendationService
type recommendationServiceImpl struct {
	userStore         recommendationUserStore
	meetingStore      recommendationMeetingStore
	registrationStore recommendationRegistrationStore
	logger            zerolog.Logger
	now               func() time.Time
}

// NewRecommendationService creates a new RecommendationService
func NewRecommendationService(
	userStore recommendationUserStore,
	meetingStore recommendationMeetingStore,
	registrationStore recommendationRegistrationStore,
	logger zerolog.Logger,
) RecommendationService {
	return &recommendationServiceImpl{
		userStore:         userStore,
		meetingStore:      meetingStore,
		registrationStore: registrationStore,
		logger:            logger,
		now:               time.Now,
	}
}

// GetRecommendations scores every upcoming meeting the user is not
// registered for and returns the top five, highest score first. Ties keep
// the order the meetings were loaded in.
func (s *recommendationServiceImpl) GetRecommendations(ctx context.Context, userID int64) ([]dto.MeetingRecommendation, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.meetingStore.GetUpcomingAfter(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming meetings: %w", err)
	}

	registrations, err := s.registrationStore.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load registrations: %w", err)
	}

	registeredIDs := make(map[int64]bool, len(registrations))
	for _, reg := range registrations {
		registeredIDs[reg.MeetingID] = true
	}

	upcomingByID := make(map[int64]*models.Meeting, len(upcoming))
	for i := range upcoming {
		upcomingByID[upcoming[i].ID] = &upcoming[i]
	}

	recommendations := make([]dto.MeetingRecommendation, 0, len(upcoming))
	for _, meeting := range upcoming {
		if registeredIDs[meeting.ID] {
			continue
		}
		score, reasons := s.scoreMeeting(user, &meeting, registrations, upcomingByID)
		recommendations = append(recommendations, dto.MeetingRecommendation{
			Meeting: meeting,
			Score:   score,
			Reasons: reasons,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}

	s.logger.Debug().
		Int64("userID", userID).
		Int("candidates", len(upcoming)).
		Int("recommendations", len(recommendations)).
		Msg("Computed meeting recommendations")

	return recommendations, nil
}

// scoreMeeting computes a candidate's score from the user's interests,
// preferred days and registration history. A reason is attached only when
// its signal actually contributed.
func (s *recommendationServiceImpl) scoreMeeting(
	user *models.User,
	candidate *models.Meeting,
	registrations []models.Registration,
	upcomingByID map[int64]*models.Meeting,
) (int, []string) {
	score := 0
	reasons := []string{}

	if user.HasInterests() {
		matched := 0
		for _, category := range candidate.Categories {
			for _, interest := range user.Preferences.Interests {
				if category == interest {
					matched++
					break
				}
			}
		}
		if matched > 0 {
			score += interestMatchWeight * matched
			reasons = append(reasons, fmt.Sprintf("Matches %d of your interests", matched))
		}
	}

	if user.HasPreferredDays() {
		weekday := strings.ToLower(candidate.Date.Weekday().String())
		for _, day := range user.Preferences.PreferredDays {
			if day == weekday {
				score += preferredDayWeight
				reasons = append(reasons, "Scheduled on your preferred day")
				break
			}
		}
	}

	similar := 0
	for _, reg := range registrations {
		attended, ok := upcomingByID[reg.MeetingID]
		if !ok {
			continue
		}
		if attended.SharesCategoryWith(candidate) {
			similar++
		}
	}
	if similar > 0 {
		score += similarityWeight * similar
		reasons = append(reasons, fmt.Sprintf("Similar to %d meetings you've attended", similar))
	}

	return score, reasons
}
