package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/liqa/liqa-backend/internal/app/models"
	"github.com/liqa/liqa-backend/internal/app/repositories"
)

// activityLogStore is the repository surface the activity service uses
type activityLogStore interface {
	Insert(ctx context.Context, entry *models.ActivityLog) error
	Query(ctx context.Context, filter repositories.ActivityLogFilter) ([]models.ActivityLog, error)
}

// ActivityService records and queries the append-only audit trail.
// Recording is strictly best-effort: a failed write must never break the
// action that triggered it.
type ActivityService interface {
	Record(ctx context.Context, entry *models.ActivityLog)
	Query(ctx context.Context, filter repositories.ActivityLogFilter) []models.ActivityLog
}

// activityServiceImpl implements ActivityService
type activityServiceImpl struct {
	store  activityLogStore
	logger zerolog.Logger
}

// NewActivityService creates a new ActivityService
func NewActivityService(store activityLogStore, logger zerolog.Logger) ActivityService {
	return &activityServiceImpl{
		store:  store,
		logger: logger,
	}
}

// Record persists an audit entry. The entry's timestamp is assigned by the
// database at insert time. Failures are logged and swallowed.
func (s *activityServiceImpl) Record(ctx context.Context, entry *models.ActivityLog) {
	if err := s.store.Insert(ctx, entry); err != nil {
		s.logger.Error().
			Err(err).
			Str("action", string(entry.Action)).
			Str("entityType", string(entry.EntityType)).
			Msg("Failed to record activity log entry")
	}
}

// Query returns audit entries matching the filter, oldest first. On
// failure it logs and returns an empty slice so admin views degrade
// instead of erroring.
func (s *activityServiceImpl) Query(ctx context.Context, filter repositories.ActivityLogFilter) []models.ActivityLog {
	entries, err := s.store.Query(ctx, filter)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("Failed to query activity logs, returning empty result")
		return []models.ActivityLog{}
	}
	if entries == nil {
		entries = []models.ActivityLog{}
	}
	return entries
}
