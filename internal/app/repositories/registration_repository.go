package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/liqa/liqa-backend/internal/app/models"
	"github.com/liqa/liqa-backend/internal/pkg/apperrors"
	"github.com/liqa/liqa-backend/internal/pkg/dberrors"
)

// RegistrationRepository handles database operations for meeting registrations
type RegistrationRepository struct {
	db *pgxpool.Pool
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

const registrationColumns = `id, user_id, meeting_id, registration_date, attended, feedback`

func scanRegistration(row pgx.Row) (*models.Registration, error) {
	var reg models.Registration
	err := row.Scan(
		&reg.ID,
		&reg.UserID,
		&reg.MeetingID,
		&reg.RegistrationDate,
		&reg.Attended,
		&reg.Feedback,
	)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *RegistrationRepository) queryRegistrations(ctx context.Context, query string, args ...interface{}) ([]models.Registration, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing registrations: %w", err)
	}
	defer rows.Close()

	registrations := make([]models.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning registration row: %w", err)
		}
		registrations = append(registrations, *reg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}

	return registrations, nil
}

// Create inserts a registration. The (user, meeting) unique constraint is the
// backstop against the check-then-insert race between concurrent requests.
func (r *RegistrationRepository) Create(ctx context.Context, userID, meetingID int64) (*models.Registration, error) {
	query := `
		INSERT INTO registrations (user_id, meeting_id)
		VALUES ($1, $2)
		RETURNING ` + registrationColumns

	reg, err := scanRegistration(r.db.QueryRow(ctx, query, userID, meetingID))
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "registrations_user_id_meeting_id_key") {
			return nil, apperrors.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("error creating registration: %w", err)
	}

	return reg, nil
}

// GetByUserAndMeeting retrieves the registration for a (user, meeting) pair
func (r *RegistrationRepository) GetByUserAndMeeting(ctx context.Context, userID, meetingID int64) (*models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE user_id = $1 AND meeting_id = $2`

	reg, err := scanRegistration(r.db.QueryRow(ctx, query, userID, meetingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("error retrieving registration: %w", err)
	}

	return reg, nil
}

// GetByUser retrieves a user's full registration history
func (r *RegistrationRepository) GetByUser(ctx context.Context, userID int64) ([]models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE user_id = $1 ORDER BY registration_date`
	return r.queryRegistrations(ctx, query, userID)
}

// GetByMeeting retrieves every registration for a meeting
func (r *RegistrationRepository) GetByMeeting(ctx context.Context, meetingID int64) ([]models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE meeting_id = $1 ORDER BY registration_date`
	return r.queryRegistrations(ctx, query, meetingID)
}

// GetAll retrieves every registration ordered by date
func (r *RegistrationRepository) GetAll(ctx context.Context) ([]models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations ORDER BY registration_date`
	return r.queryRegistrations(ctx, query)
}
