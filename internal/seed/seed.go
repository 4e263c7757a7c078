package seed

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/liqa/liqa-backend/internal/app/models"
	appRepos "github.com/liqa/liqa-backend/internal/app/repositories"
)

// CreateDefaultData seeds a handful of sample meetings when the meetings
// table is empty. Admin accounts are not seeded: the first registered user
// becomes an admin.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	meetingRepo := appRepos.NewMeetingRepository(dbPool)

	existing, err := meetingRepo.GetAll(ctx, nil)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking existing meetings for seeding")
		return err
	}
	if len(existing) > 0 {
		lgr.Debug().Int("count", len(existing)).Msg("Meetings already present, skipping seed data")
		return nil
	}

	lgr.Info().Msg("Seeding sample meetings...")

	recordingURL := "https://videos.liqa.app/recordings/intro-to-liqa.mp4"
	samples := []appModels.Meeting{
		{
			Title:          "Go Concurrency Patterns",
			Description:    "A practical walkthrough of goroutines, channels and worker pools.",
			Date:           time.Now().AddDate(0, 0, 7),
			IsUpcoming:     true,
			Categories:     []string{"go", "concurrency"},
			Topics:         []string{"goroutines", "channels"},
			TargetAudience: []string{"developers"},
		},
		{
			Title:          "Designing Data-Intensive Services",
			Description:    "Storage engines, replication and the trade-offs between them.",
			Date:           time.Now().AddDate(0, 0, 14),
			IsUpcoming:     true,
			Categories:     []string{"databases", "architecture"},
			Topics:         []string{"replication", "indexing"},
			TargetAudience: []string{"developers", "architects"},
		},
		{
			Title:          "Welcome to Liqa",
			Description:    "Recorded introduction to the platform and how to get the most out of it.",
			Date:           time.Now().AddDate(0, 0, -30),
			VideoURL:       &recordingURL,
			IsUpcoming:     false,
			Categories:     []string{"community"},
			Topics:         []string{"onboarding"},
			TargetAudience: []string{"everyone"},
		},
	}

	for i := range samples {
		if err := meetingRepo.Create(ctx, &samples[i]); err != nil {
			lgr.Error().Err(err).Str("title", samples[i].Title).Msg("Error seeding meeting")
			return err
		}
	}

	lgr.Info().Int("count", len(samples)).Msg("Sample meetings seeded")
	return nil
}
