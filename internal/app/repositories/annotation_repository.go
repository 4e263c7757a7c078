package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/liqa/liqa-backend/internal/app/models"
)

// AnnotationRepository handles database operations for recording annotations
type AnnotationRepository struct {
	db *pgxpool.Pool
}

// NewAnnotationRepository creates a new AnnotationRepository
func NewAnnotationRepository(db *pgxpool.Pool) *AnnotationRepository {
	return &AnnotationRepository{db: db}
}

// Create inserts an annotation and fills in its generated fields.
func (r *AnnotationRepository) Create(ctx context.Context, annotation *models.Annotation) error {
	query := `
		INSERT INTO annotations (meeting_id, user_id, "timestamp", text)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		annotation.MeetingID,
		annotation.UserID,
		annotation.Timestamp,
		annotation.Text,
	).Scan(&annotation.ID, &annotation.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating annotation: %w", err)
	}

	return nil
}

// GetByMeeting retrieves a meeting's annotations ordered by recording offset
func (r *AnnotationRepository) GetByMeeting(ctx context.Context, meetingID int64) ([]models.Annotation, error) {
	query := `
		SELECT id, meeting_id, user_id, "timestamp", text, created_at
		FROM annotations
		WHERE meeting_id = $1
		ORDER BY "timestamp"
	`

	rows, err := r.db.Query(ctx, query, meetingID)
	if err != nil {
		return nil, fmt.Errorf("error listing annotations: %w", err)
	}
	defer rows.Close()

	annotations := make([]models.Annotation, 0)
	for rows.Next() {
		var a models.Annotation
		err := rows.Scan(&a.ID, &a.MeetingID, &a.UserID, &a.Timestamp, &a.Text, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning annotation row: %w", err)
		}
		annotations = append(annotations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating annotation rows: %w", err)
	}

	return annotations, nil
}
