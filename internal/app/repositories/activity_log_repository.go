package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/liqa/liqa-backend/internal/app/models"
)

// ActivityLogRepository handles database operations for the append-only
// audit log. Entries are only ever inserted and read.
type ActivityLogRepository struct {
	db *pgxpool.Pool
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(db *pgxpool.Pool) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// ActivityLogFilter narrows a Query call. Nil fields are ignored; the date
// range is inclusive on both ends.
type ActivityLogFilter struct {
	UserID     *int64
	EntityType *models.EntityType
	Action     *models.ActionType
	StartDate  *time.Time
	EndDate    *time.Time
}

// Insert appends an audit entry. The timestamp is assigned server-side.
func (r *ActivityLogRepository) Insert(ctx context.Context, entry *models.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (user_id, action, entity_type, entity_id, metadata, ip_address, user_agent, "timestamp")
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, "timestamp"
	`

	err := r.db.QueryRow(ctx, query,
		entry.UserID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.Metadata,
		entry.IPAddress,
		entry.UserAgent,
	).Scan(&entry.ID, &entry.Timestamp)

	if err != nil {
		return fmt.Errorf("error inserting activity log entry: %w", err)
	}

	return nil
}

// Query retrieves audit entries matching the filter, sorted by timestamp
// ascending.
func (r *ActivityLogRepository) Query(ctx context.Context, filter ActivityLogFilter) ([]models.ActivityLog, error) {
	builder := squirrel.Select(
		"id", "user_id", "action", "entity_type", "entity_id",
		"metadata", "ip_address", "user_agent", `"timestamp"`,
	).
		From("activity_logs").
		OrderBy(`"timestamp"`).
		PlaceholderFormat(squirrel.Dollar)

	if filter.UserID != nil {
		builder = builder.Where("user_id = ?", *filter.UserID)
	}
	if filter.EntityType != nil {
		builder = builder.Where("entity_type = ?", *filter.EntityType)
	}
	if filter.Action != nil {
		builder = builder.Where("action = ?", *filter.Action)
	}
	if filter.StartDate != nil {
		builder = builder.Where(`"timestamp" >= ?`, *filter.StartDate)
	}
	if filter.EndDate != nil {
		builder = builder.Where(`"timestamp" <= ?`, *filter.EndDate)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building activity log query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying activity logs: %w", err)
	}
	defer rows.Close()

	entries := make([]models.ActivityLog, 0)
	for rows.Next() {
		var entry models.ActivityLog
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Action,
			&entry.EntityType,
			&entry.EntityID,
			&entry.Metadata,
			&entry.IPAddress,
			&entry.UserAgent,
			&entry.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning activity log row: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity log rows: %w", err)
	}

	return entries, nil
}
