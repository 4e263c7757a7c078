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
	"github.com/liqa/liqa-backend/internal/app/repositories"
)

type stubActivityLogStore struct {
	inserted  []*models.ActivityLog
	insertErr error

	entries    []models.ActivityLog
	queryErr   error
	lastFilter repositories.ActivityLogFilter
}

func (s *stubActivityLogStore) Insert(ctx context.Context, entry *models.ActivityLog) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, entry)
	return nil
}

func (s *stubActivityLogStore) Query(ctx context.Context, filter repositories.ActivityLogFilter) ([]models.ActivityLog, error) {
	s.lastFilter = filter
	return s.entries, s.queryErr
}

func TestActivityRecordPersistsEntry(t *testing.T) {
	store := &stubActivityLogStore{}
	svc := NewActivityService(store, zerolog.Nop())

	userID := int64(7)
	svc.Record(context.Background(), &models.ActivityLog{
		UserID:     &userID,
		Action:     models.ActionUserLogin,
		EntityType: models.EntityUser,
	})

	require.Len(t, store.inserted, 1)
	assert.Equal(t, models.ActionUserLogin, store.inserted[0].Action)
}

func TestActivityRecordSwallowsFailure(t *testing.T) {
	store := &stubActivityLogStore{insertErr: errors.New("disk full")}
	svc := NewActivityService(store, zerolog.Nop())

	// Must not panic or surface the error in any way.
	svc.Record(context.Background(), &models.ActivityLog{
		Action:     models.ActionMeetingCreate,
		EntityType: models.EntityMeeting,
	})
}

func TestActivityQueryPassesFilter(t *testing.T) {
	store := &stubActivityLogStore{entries: []models.ActivityLog{
		{ID: 1, Action: models.ActionUserLogin, EntityType: models.EntityUser},
	}}
	svc := NewActivityService(store, zerolog.Nop())

	userID := int64(3)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)
	action := models.ActionUserLogin

	entries := svc.Query(context.Background(), repositories.ActivityLogFilter{
		UserID:    &userID,
		Action:    &action,
		StartDate: &start,
		EndDate:   &end,
	})

	require.Len(t, entries, 1)
	require.NotNil(t, store.lastFilter.UserID)
	assert.Equal(t, int64(3), *store.lastFilter.UserID)
	assert.Equal(t, &start, store.lastFilter.StartDate)
	assert.Equal(t, &end, store.lastFilter.EndDate)
}

func TestActivityQueryFailureReturnsEmptySlice(t *testing.T) {
	store := &stubActivityLogStore{queryErr: errors.New("timeout")}
	svc := NewActivityService(store, zerolog.Nop())

	entries := svc.Query(context.Background(), repositories.ActivityLogFilter{})

	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
