package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/coursetalk/coursetalk/internal/app/auth"
	appControllers "github.com/coursetalk/coursetalk/internal/app/controllers"
	appMigrations "github.com/coursetalk/coursetalk/internal/app/migrations"
	appRepos "github.com/coursetalk/coursetalk/internal/app/repositories"
	appRoutes "github.com/coursetalk/coursetalk/internal/app/routes"
	appServices "github.com/coursetalk/coursetalk/internal/app/services"
	"github.com/coursetalk/coursetalk/internal/config"
	"github.com/coursetalk/coursetalk/internal/db"
	appMiddleware "github.com/coursetalk/coursetalk/internal/middleware"
	pkgAuth "github.com/coursetalk/coursetalk/internal/pkg/auth"
	"github.com/coursetalk/coursetalk/internal/pkg/helpers"
	"github.com/coursetalk/coursetalk/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            appServices.AuthService
	StudentService         appServices.StudentService
	CourseService          appServices.CourseService
	QuestionService        appServices.QuestionService
	ResponseService        appServices.ResponseService
	NotificationService    appServices.NotificationService
	AuthController         *appControllers.AuthController
	StudentController      *appControllers.StudentController
	CourseController       *appControllers.CourseController
	QuestionController     *appControllers.QuestionController
	ResponseController     *appControllers.ResponseController
	NotificationController *appControllers.NotificationController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	AuthzService           *appAuth.AuthorizationService
	Database               *db.PostgresDB
	Logger                 zerolog.Logger
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
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Database: database}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.QuestionRepository,
		deps.Repos.ResponseRepository,
		deps.Repos.CourseRepository,
	)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	activityWindow := helpers.ParseDuration(cfg.Forum.RecentActivityWindow, 24*time.Hour)

	deps.AuthService = appServices.NewAuthService(deps.Repos.StudentRepository, deps.JWTService)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, activityWindow)
	deps.QuestionService = appServices.NewQuestionService(
		deps.Repos.QuestionRepository,
		deps.Repos.ResponseRepository,
		deps.Repos.NotificationRepository,
		deps.AuthzService,
		database,
	)
	deps.ResponseService = appServices.NewResponseService(
		deps.Repos.ResponseRepository,
		deps.Repos.QuestionRepository,
		deps.Repos.NotificationRepository,
		deps.AuthzService,
	)
	deps.NotificationService = appServices.NewNotificationService(deps.Repos.NotificationRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.QuestionController = appControllers.NewQuestionController(deps.QuestionService)
	deps.ResponseController = appControllers.NewResponseController(deps.ResponseService)
	deps.NotificationController = appControllers.NewNotificationController(deps.NotificationService)

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
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.CourseController,
		deps.QuestionController,
		deps.ResponseController,
		deps.NotificationController,
		deps.AuthMiddleware,
	)

	return router
}
