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

	appControllers "github.com/yigit/conduct/internal/app/controllers"
	appMigrations "github.com/yigit/conduct/internal/app/migrations"
	appRepos "github.com/yigit/conduct/internal/app/repositories"
	appRoutes "github.com/yigit/conduct/internal/app/routes"
	appServices "github.com/yigit/conduct/internal/app/services"
	"github.com/yigit/conduct/internal/config"
	"github.com/yigit/conduct/internal/db"
	appMiddleware "github.com/yigit/conduct/internal/middleware"
	pkgAuth "github.com/yigit/conduct/internal/pkg/auth"
	"github.com/yigit/conduct/internal/pkg/filestorage"
	"github.com/yigit/conduct/internal/pkg/helpers"
	"github.com/yigit/conduct/internal/pkg/logger"
	"github.com/yigit/conduct/internal/pkg/validation"
	"github.com/yigit/conduct/internal/seed"
)

const migrationsDir = "migrations"

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         *appServices.AuthService
	StudentService      appServices.StudentService
	ImportService       appServices.ImportService
	BehaviorTypeService appServices.BehaviorTypeService
	BehaviorService     appServices.BehaviorService
	StatisticsService   appServices.StatisticsService

	AuthController         *appControllers.AuthController
	StudentController      *appControllers.StudentController
	BehaviorTypeController *appControllers.BehaviorTypeController
	BehaviorController     *appControllers.BehaviorController
	StatisticsController   *appControllers.StatisticsController
	UploadController       *appControllers.UploadController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	FileStorage    *filestorage.LocalStorage
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

	format := strings.ToLower(cfg.Logging.Format)
	lgr := logger.Configure(logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Pretty: format == "text" || format == "pretty",
	})

	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	if len(cfg.EnvOverrides) > 0 {
		lgr.Info().Strs("keys", cfg.EnvOverrides).Msg("Configuration overridden from environment")
	}
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	err = seed.CreateDefaultData(ctx,
		appRepos.NewUserRepository(database.Pool),
		appRepos.NewBehaviorTypeRepository(database.Pool),
		seed.Admin{Username: cfg.Seed.AdminUsername, Password: cfg.Seed.AdminPassword},
		lgr,
	)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	if err := validation.RegisterBindingRules(); err != nil {
		return nil, fmt.Errorf("failed to register binding rules: %w", err)
	}

	deps.Repos = appRepos.NewRepositories(database, cfg.Database.ImportTimeout)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.Server.BaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, logger.Component("auth"))
	deps.StudentService = appServices.NewStudentService(
		deps.Repos.StudentRepository,
		deps.Repos.BehaviorRepository,
		logger.Component("students"),
	)
	deps.ImportService = appServices.NewImportService(
		deps.Repos.StudentImportRepository,
		deps.FileStorage,
		logger.Component("import"),
	)
	deps.BehaviorTypeService = appServices.NewBehaviorTypeService(deps.Repos.BehaviorTypeRepository)
	deps.BehaviorService = appServices.NewBehaviorService(
		deps.Repos.BehaviorRepository,
		deps.Repos.StudentRepository,
		deps.Repos.BehaviorTypeRepository,
		deps.FileStorage,
		logger.Component("behaviors"),
	)
	deps.StatisticsService = appServices.NewStatisticsService(
		deps.Repos.BehaviorFactRepository,
		deps.Repos.BehaviorTypeRepository,
		cfg.Location(),
		logger.Component("statistics"),
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.ImportService, cfg.MaxUploadBytes(), lgr)
	deps.BehaviorTypeController = appControllers.NewBehaviorTypeController(deps.BehaviorTypeService)
	deps.BehaviorController = appControllers.NewBehaviorController(deps.BehaviorService)
	deps.StatisticsController = appControllers.NewStatisticsController(deps.StatisticsService)
	deps.UploadController = appControllers.NewUploadController(deps.FileStorage, cfg.MaxUploadBytes(), lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, database *db.PostgresDB, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(logger.Component("http")))
	// multipart bodies above this spill to temp files
	router.MaxMultipartMemory = cfg.MaxUploadBytes()

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.BehaviorTypeController,
		deps.BehaviorController,
		deps.StatisticsController,
		deps.UploadController,
		deps.AuthMiddleware,
		database,
	)

	return router
}
