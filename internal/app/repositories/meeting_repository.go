package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/liqa/liqa-backend/internal/app/models"
	"github.com/liqa/liqa-backend/internal/pkg/apperrors"
)

// MeetingRepository handles database operations for meetings
type MeetingRepository struct {
	db *pgxpool.Pool
}

// NewMeetingRepository creates a new MeetingRepository
func NewMeetingRepository(db *pgxpool.Pool) *MeetingRepository {
	return &MeetingRepository{db: db}
}

const meetingColumns = `id, title, description, date, video_url, is_upcoming, categories, topics, target_audience, created_at, updated_at`

func scanMeeting(row pgx.Row) (*models.Meeting, error) {
	var meeting models.Meeting
	err := row.Scan(
		&meeting.ID,
		&meeting.Title,
		&meeting.Description,
		&meeting.Date,
		&meeting.VideoURL,
		&meeting.IsUpcoming,
		&meeting.Categories,
		&meeting.Topics,
		&meeting.TargetAudience,
		&meeting.CreatedAt,
		&meeting.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *MeetingRepository) queryMeetings(ctx context.Context, query string, args ...interface{}) ([]models.Meeting, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing meetings: %w", err)
	}
	defer rows.Close()

	meetings := make([]models.Meeting, 0)
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning meeting row: %w", err)
		}
		meetings = append(meetings, *meeting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meeting rows: %w", err)
	}

	return meetings, nil
}

// Create inserts a new meeting and fills in its generated fields.
func (r *MeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	query := `
		INSERT INTO meetings (title, description, date, video_url, is_upcoming, categories, topics, target_audience)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		meeting.Title,
		meeting.Description,
		meeting.Date,
		meeting.VideoURL,
		meeting.IsUpcoming,
		meeting.Categories,
		meeting.Topics,
		meeting.TargetAudience,
	).Scan(&meeting.ID, &meeting.CreatedAt, &meeting.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating meeting: %w", err)
	}

	return nil
}

// GetByID retrieves a meeting by ID
func (r *MeetingRepository) GetByID(ctx context.Context, id int64) (*models.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = $1`

	meeting, err := scanMeeting(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("error retrieving meeting: %w", err)
	}

	return meeting, nil
}

// GetAll retrieves every meeting, optionally filtered on the upcoming flag
func (r *MeetingRepository) GetAll(ctx context.Context, isUpcoming *bool) ([]models.Meeting, error) {
	builder := squirrel.Select(meetingColumns).
		From("meetings").
		OrderBy("date").
		PlaceholderFormat(squirrel.Dollar)

	if isUpcoming != nil {
		builder = builder.Where("is_upcoming = ?", *isUpcoming)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building meeting query: %w", err)
	}

	return r.queryMeetings(ctx, query, args...)
}

// GetUpcomingAfter retrieves meetings flagged upcoming with a date strictly
// after the given instant. The recommendation scorer feeds on this.
func (r *MeetingRepository) GetUpcomingAfter(ctx context.Context, after time.Time) ([]models.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE is_upcoming = TRUE AND date > $1 ORDER BY date`
	return r.queryMeetings(ctx, query, after)
}

// GetUpcomingBetween retrieves upcoming meetings whose date lies in
// (start, end). The email reminder sweep uses a (now, now+24h) window.
func (r *MeetingRepository) GetUpcomingBetween(ctx context.Context, start, end time.Time) ([]models.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE is_upcoming = TRUE AND date > $1 AND date < $2 ORDER BY date`
	return r.queryMeetings(ctx, query, start, end)
}

// Update applies a partial update and returns the updated meeting
func (r *MeetingRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) (*models.Meeting, error) {
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	builder := squirrel.Update("meetings").
		SetMap(fields).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", id).
		Suffix("RETURNING " + meetingColumns).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building meeting update: %w", err)
	}

	meeting, err := scanMeeting(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("error updating meeting: %w", err)
	}

	return meeting, nil
}

// Delete removes a meeting; registrations and annotations cascade in the schema
func (r *MeetingRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting meeting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMeetingNotFound
	}
	return nil
}
