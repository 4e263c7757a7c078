package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	MeetingRepository      *MeetingRepository
	RegistrationRepository *RegistrationRepository
	AnnotationRepository   *AnnotationRepository
	ActivityLogRepository  *ActivityLogRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		MeetingRepository:      NewMeetingRepository(db),
		RegistrationRepository: NewRegistrationRepository(db),
		AnnotationRepository:   NewAnnotationRepository(db),
		ActivityLogRepository:  NewActivityLogRepository(db),
	}
}
