package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/liqa/liqa-backend/internal/app/controllers"
	appMigrations "github.com/liqa/liqa-backend/internal/app/migrations"
	appRepos "github.com/liqa/liqa-backend/internal/app/repositories"
	appRoutes "github.com/liqa/liqa-backend/internal/app/routes"
	appServices "github.com/liqa/liqa-backend/internal/app/services"
	"github.com/liqa/liqa-backend/internal/config"
	"github.com/liqa/liqa-backend/internal/db"
	appMiddleware "github.com/liqa/liqa-backend/internal/middleware"
	pkgAuth "github.com/liqa/liqa-backend/internal/pkg/auth"
	"github.com/liqa/liqa-backend/internal/pkg/email"
	"github.com/liqa/liqa-backend/internal/pkg/helpers"
	"github.com/liqa/liqa-backend/internal/pkg/logger"
	"github.com/liqa/liqa-backend/internal/pkg/websocket"
	"github.com/liqa/liqa-backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService           *appServices.AuthService
	UserService           *appServices.UserService
	MeetingService        *appServices.MeetingService
	RegistrationService   *appServices.RegistrationService
	AnnotationService     *appServices.AnnotationService
	RecommendationService appServices.RecommendationService
	ActivityService       appServices.ActivityService
	ReminderService       appServices.ReminderService

	AuthController           *appControllers.AuthController
	UserController           *appControllers.UserController
	MeetingController        *appControllers.MeetingController
	AnnotationController     *appControllers.AnnotationController
	RecommendationController *appControllers.RecommendationController
	AdminController          *appControllers.AdminController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	EmailService   email.EmailService
	Hub            *websocket.Hub
	WSHandler      *websocket.Handler
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seeding is a convenience, not a startup requirement.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.SMTP.BaseURL,
	}, lgr)

	deps.Hub = websocket.NewHub(lgr)
	deps.WSHandler = websocket.NewHandler(deps.Hub, lgr)

	deps.ActivityService = appServices.NewActivityService(deps.Repos.ActivityLogRepository, lgr)
	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, deps.EmailService, lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, lgr)
	deps.MeetingService = appServices.NewMeetingService(
		deps.Repos.MeetingRepository,
		deps.Repos.UserRepository,
		deps.EmailService,
		deps.Hub,
		lgr,
	)
	deps.RegistrationService = appServices.NewRegistrationService(
		deps.Repos.RegistrationRepository,
		deps.Repos.MeetingRepository,
		deps.Repos.UserRepository,
		deps.EmailService,
		lgr,
	)
	deps.AnnotationService = appServices.NewAnnotationService(
		deps.Repos.AnnotationRepository,
		deps.Repos.MeetingRepository,
		lgr,
	)
	deps.RecommendationService = appServices.NewRecommendationService(
		deps.Repos.UserRepository,
		deps.Repos.MeetingRepository,
		deps.Repos.RegistrationRepository,
		lgr,
	)
	deps.ReminderService = appServices.NewReminderService(
		deps.Repos.MeetingRepository,
		deps.Repos.RegistrationRepository,
		deps.Repos.UserRepository,
		deps.Hub,
		deps.EmailService,
		cfg.Reminders.BroadcastSpec,
		cfg.Reminders.EmailSpec,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.ActivityService, lgr)
	deps.UserController = appControllers.NewUserController(deps.UserService, deps.ActivityService, lgr)
	deps.MeetingController = appControllers.NewMeetingController(
		deps.MeetingService,
		deps.RegistrationService,
		deps.ActivityService,
		lgr,
	)
	deps.AnnotationController = appControllers.NewAnnotationController(deps.AnnotationService, deps.ActivityService, lgr)
	deps.RecommendationController = appControllers.NewRecommendationController(deps.RecommendationService, lgr)
	deps.AdminController = appControllers.NewAdminController(
		deps.UserService,
		deps.RegistrationService,
		deps.ActivityService,
		lgr,
	)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr), gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.MeetingController,
		deps.AnnotationController,
		deps.RecommendationController,
		deps.AdminController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	// Health endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
