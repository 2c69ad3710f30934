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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/emre/campushub/docs" // Import generated swagger docs
	appControllers "github.com/emre/campushub/internal/app/controllers"
	appMigrations "github.com/emre/campushub/internal/app/migrations"
	appRepos "github.com/emre/campushub/internal/app/repositories"
	appRoutes "github.com/emre/campushub/internal/app/routes"
	appServices "github.com/emre/campushub/internal/app/services"
	"github.com/emre/campushub/internal/config"
	"github.com/emre/campushub/internal/db"
	appMiddleware "github.com/emre/campushub/internal/middleware"
	pkgAuth "github.com/emre/campushub/internal/pkg/auth"
	"github.com/emre/campushub/internal/pkg/helpers"
	"github.com/emre/campushub/internal/pkg/logger"
	"github.com/emre/campushub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            appServices.AuthService
	UserService            appServices.UserService
	DepartmentService      appServices.DepartmentService
	TicketService          appServices.TicketService
	AnnouncementService    appServices.AnnouncementService
	AppointmentService     appServices.AppointmentService
	ForumService           appServices.ForumService
	ChatService            appServices.ChatService
	LostFoundService       appServices.LostFoundService
	AuthController         *appControllers.AuthController
	UserController         *appControllers.UserController
	DepartmentController   *appControllers.DepartmentController
	TicketController       *appControllers.TicketController
	AnnouncementController *appControllers.AnnouncementController
	AppointmentController  *appControllers.AppointmentController
	ForumController        *appControllers.ForumController
	ChatController         *appControllers.ChatController
	LostFoundController    *appControllers.LostFoundController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
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

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
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

	userRepo := deps.Repos.UserRepository

	deps.AuthService = appServices.NewAuthService(userRepo, deps.Repos.DepartmentRepository, deps.JWTService, lgr)
	deps.UserService = appServices.NewUserService(userRepo, lgr)
	deps.DepartmentService = appServices.NewDepartmentService(deps.Repos.DepartmentRepository, lgr)
	deps.TicketService = appServices.NewTicketService(deps.Repos.TicketRepository, userRepo, lgr)
	deps.AnnouncementService = appServices.NewAnnouncementService(deps.Repos.AnnouncementRepository, userRepo, lgr)
	deps.AppointmentService = appServices.NewAppointmentService(deps.Repos.AppointmentRepository, userRepo, lgr)
	deps.ForumService = appServices.NewForumService(deps.Repos.ForumRepository, userRepo, lgr)
	deps.ChatService = appServices.NewChatService(deps.Repos.ChatRepository, userRepo, lgr)
	deps.LostFoundService = appServices.NewLostFoundService(deps.Repos.LostFoundRepository, userRepo, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.DepartmentController = appControllers.NewDepartmentController(deps.DepartmentService)
	deps.TicketController = appControllers.NewTicketController(deps.TicketService)
	deps.AnnouncementController = appControllers.NewAnnouncementController(deps.AnnouncementService)
	deps.AppointmentController = appControllers.NewAppointmentController(deps.AppointmentService)
	deps.ForumController = appControllers.NewForumController(deps.ForumService, userRepo)
	deps.ChatController = appControllers.NewChatController(deps.ChatService)
	deps.LostFoundController = appControllers.NewLostFoundController(deps.LostFoundService)

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
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(gin.Recovery())
	router.Use(appMiddleware.CORSMiddleware())

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.DepartmentController,
		deps.TicketController,
		deps.AnnouncementController,
		deps.AppointmentController,
		deps.ForumController,
		deps.ChatController,
		deps.LostFoundController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
