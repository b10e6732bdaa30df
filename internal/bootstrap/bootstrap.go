// Package bootstrap assembles the application: configuration, logging,
// database, repositories, services, controllers and the HTTP router.
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

	appAuth "github.com/demir/classhub/internal/app/auth"
	appControllers "github.com/demir/classhub/internal/app/controllers"
	appMigrations "github.com/demir/classhub/internal/app/migrations"
	appRepos "github.com/demir/classhub/internal/app/repositories"
	appRoutes "github.com/demir/classhub/internal/app/routes"
	appServices "github.com/demir/classhub/internal/app/services"
	"github.com/demir/classhub/internal/config"
	"github.com/demir/classhub/internal/db"
	appMiddleware "github.com/demir/classhub/internal/middleware"
	pkgAuth "github.com/demir/classhub/internal/pkg/auth"
	"github.com/demir/classhub/internal/pkg/filestorage"
	"github.com/demir/classhub/internal/pkg/helpers"
	"github.com/demir/classhub/internal/pkg/logger"
	"github.com/demir/classhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         *appServices.AuthService
	UserService         appServices.UserService
	ClassService        appServices.ClassService
	LessonService       appServices.LessonService
	AssignmentService   appServices.AssignmentService
	SubmissionService   appServices.SubmissionService
	QuestionService     appServices.QuestionService
	AnnouncementService appServices.AnnouncementService
	DashboardService    appServices.DashboardService

	AuthController         *appControllers.AuthController
	UserController         *appControllers.UserController
	ClassController        *appControllers.ClassController
	LessonController       *appControllers.LessonController
	AssignmentController   *appControllers.AssignmentController
	SubmissionController   *appControllers.SubmissionController
	QuestionController     *appControllers.QuestionController
	AnnouncementController *appControllers.AnnouncementController
	DashboardController    *appControllers.DashboardController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
	Logger         zerolog.Logger
	FileStorage    *filestorage.LocalStorage
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

// SetupDatabase establishes the database connection, runs migrations and
// optionally seeds demo data.
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
	migrationsDir := cfg.Database.MigrationsDir
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.ApplyDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Database.SeedData {
		// Demo data failures are logged but never block startup
		if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// Expired refresh tokens are purged once at startup; there is no
	// background sweeper.
	if purged, err := deps.Repos.Token.DeleteExpired(context.Background()); err != nil {
		lgr.Warn().Err(err).Msg("Failed to purge expired refresh tokens")
	} else if purged > 0 {
		lgr.Info().Int64("count", purged).Msg("Purged expired refresh tokens")
	}

	// File storage URLs must match the static file serving endpoint
	baseURL := cfg.Server.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.Class,
		deps.Repos.Lesson,
		deps.Repos.Assignment,
		deps.Repos.Announcement,
		deps.Repos.Submission,
		deps.Repos.Question,
		deps.Repos.Enrollment,
	)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.User,
		deps.Repos.Token,
		deps.JWTService,
		lgr,
	)
	deps.UserService = appServices.NewUserService(deps.Repos.User, deps.Repos.Token, lgr)
	deps.ClassService = appServices.NewClassService(
		deps.Repos.Class,
		deps.Repos.Enrollment,
		deps.Repos.File,
		deps.AuthzService,
		deps.FileStorage,
		lgr,
	)
	deps.LessonService = appServices.NewLessonService(
		deps.Repos.Lesson,
		deps.Repos.File,
		deps.Repos.Question,
		deps.AuthzService,
		deps.FileStorage,
		lgr,
	)
	deps.AssignmentService = appServices.NewAssignmentService(
		deps.Repos.Assignment,
		deps.Repos.Submission,
		deps.Repos.File,
		deps.AuthzService,
		deps.FileStorage,
		lgr,
	)
	deps.SubmissionService = appServices.NewSubmissionService(
		deps.Repos.Submission,
		deps.Repos.Assignment,
		deps.Repos.Class,
		deps.Repos.File,
		deps.AuthzService,
		deps.FileStorage,
		lgr,
	)
	deps.QuestionService = appServices.NewQuestionService(deps.Repos.Question, deps.Repos.Lesson, deps.AuthzService, lgr)
	deps.AnnouncementService = appServices.NewAnnouncementService(deps.Repos.Announcement, deps.AuthzService, lgr)
	deps.DashboardService = appServices.NewDashboardService(
		deps.Repos.Class,
		deps.Repos.Enrollment,
		deps.Repos.Assignment,
		deps.Repos.Submission,
		deps.Repos.Question,
		deps.Repos.Announcement,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.Logger)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.ClassController = appControllers.NewClassController(deps.ClassService)
	deps.LessonController = appControllers.NewLessonController(deps.LessonService)
	deps.AssignmentController = appControllers.NewAssignmentController(deps.AssignmentService)
	deps.SubmissionController = appControllers.NewSubmissionController(deps.SubmissionService)
	deps.QuestionController = appControllers.NewQuestionController(deps.QuestionService)
	deps.AnnouncementController = appControllers.NewAnnouncementController(deps.AnnouncementService)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	if err := appMiddleware.RegisterValidators(); err != nil {
		lgr.Error().Err(err).Msg("Failed to register custom validators")
	}

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.ClassController,
		deps.LessonController,
		deps.AssignmentController,
		deps.SubmissionController,
		deps.QuestionController,
		deps.AnnouncementController,
		deps.DashboardController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
