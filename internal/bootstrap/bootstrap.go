package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/studentportal/internal/app/controllers"
	appMigrations "github.com/yigit/studentportal/internal/app/migrations"
	"github.com/yigit/studentportal/internal/app/models/dto"
	appRepos "github.com/yigit/studentportal/internal/app/repositories"
	appRoutes "github.com/yigit/studentportal/internal/app/routes"
	appServices "github.com/yigit/studentportal/internal/app/services"
	"github.com/yigit/studentportal/internal/app/views"
	"github.com/yigit/studentportal/internal/config"
	"github.com/yigit/studentportal/internal/db"
	appMiddleware "github.com/yigit/studentportal/internal/middleware"
	pkgAuth "github.com/yigit/studentportal/internal/pkg/auth"
	"github.com/yigit/studentportal/internal/pkg/filestorage"
	"github.com/yigit/studentportal/internal/pkg/helpers"
	"github.com/yigit/studentportal/internal/pkg/logger"
	"github.com/yigit/studentportal/internal/pkg/mail"
	"github.com/yigit/studentportal/internal/seed"
)

// UserStreamChannel is the log channel of the stream redirector
const UserStreamChannel = "user_stream"

// Dependencies holds all the application dependencies
type Dependencies struct {
	DB                  *db.PostgresDB
	Repos               *appRepos.Repositories
	FileStorage         *filestorage.LocalStorage
	Mailer              *mail.Manager
	JWTService          *pkgAuth.JWTService
	AuthService         *appServices.AuthService
	FileService         *appServices.FileService
	TaxonomyService     *appServices.TaxonomyService
	StudentService      *appServices.StudentService
	StreamService       *appServices.StreamService
	RegistrationService *appServices.RegistrationService
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Controllers         appRoutes.Controllers
	Logger              zerolog.Logger
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
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to postgres, applies migrations and seeds the stream vocabulary.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, "migrations"); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	termRepo := appRepos.NewTermRepository(database)
	aliasRepo := appRepos.NewPathAliasRepository(database)
	if err := seed.CreateDefaultData(ctx, termRepo, aliasRepo, cfg.Site.StreamVocabulary, lgr); err != nil {
		// Startup continues; terms can be fixed by hand
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{DB: database, Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.PublicBaseURL()+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Mailer = mail.NewManager(mail.SMTPConfig{
		Host:      cfg.Mail.Host,
		Port:      cfg.Mail.Port,
		Username:  cfg.Mail.Username,
		Password:  cfg.Mail.Password,
		FromName:  cfg.Mail.FromName,
		FromEmail: cfg.Mail.FromEmail,
		UseTLS:    cfg.Mail.UseTLS,
		Langcode:  cfg.Mail.Langcode,
		SiteName:  cfg.Site.Name,
	}, lgr.With().Str("channel", "mail").Logger())

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 8*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	// Services
	deps.AuthService = appServices.NewAuthService(deps.Repos.AccountRepository, deps.JWTService, lgr)
	deps.FileService = appServices.NewFileService(deps.Repos.FileRepository, deps.FileStorage, appServices.FileConfig{
		UploadLocation:    cfg.Files.UploadLocation,
		AllowedExtensions: cfg.AllowedExtensions(),
		MaxUploadSize:     cfg.Files.MaxUploadSize,
	}, lgr)
	deps.TaxonomyService = appServices.NewTaxonomyService(deps.Repos.TermRepository, deps.Repos.PathAliasRepository, lgr)
	deps.StudentService = appServices.NewStudentService(deps.Repos.AccountRepository, deps.Repos.TermRepository, lgr)
	deps.StreamService = appServices.NewStreamService(
		deps.Repos.AccountRepository,
		deps.Repos.TermRepository,
		deps.TaxonomyService,
		logger.Channel(UserStreamChannel),
	)
	deps.RegistrationService = appServices.NewRegistrationService(
		deps.Repos.AccountRepository,
		deps.Repos.TermRepository,
		deps.FileService,
		deps.Mailer,
		appServices.RegistrationConfig{
			StreamVocabulary: cfg.Site.StreamVocabulary,
			SiteMail:         cfg.Site.Mail,
			LoginPath:        cfg.Site.LoginPath,
		},
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, cfg.JWT.CookieName)

	// Controllers
	secureCookie := strings.HasPrefix(cfg.PublicBaseURL(), "https://")
	deps.Controllers = appRoutes.Controllers{
		Auth: appControllers.NewAuthController(deps.AuthService,
			appControllers.SessionCookie{Name: cfg.JWT.CookieName, Secure: secureCookie}, cfg.Site.Name, lgr),
		Registration: appControllers.NewRegistrationController(deps.RegistrationService, cfg.Site.Name,
			appControllers.UploadRules{Extensions: cfg.AllowedExtensions(), MaxSize: cfg.Files.MaxUploadSize}, lgr),
		Student:  appControllers.NewStudentController(deps.StudentService, lgr),
		Stream:   appControllers.NewStreamController(deps.StreamService, deps.TaxonomyService, cfg.Site.StreamVocabulary, cfg.Site.Name, lgr),
		Taxonomy: appControllers.NewTaxonomyController(deps.TaxonomyService, cfg.Site.Name, lgr),
		File:     appControllers.NewFileController(deps.FileService, lgr),
	}

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

	appMiddleware.RegisterFormTagNames()

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))
	router.MaxMultipartMemory = cfg.Files.MaxUploadSize + 1<<20
	router.SetHTMLTemplate(views.Templates())

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})
	router.GET("/api/v1/health", HealthHandler(deps.DB))

	return router
}

// Pinger reports whether the database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler answers 200 while the database is reachable and 503 otherwise
func HealthHandler(database Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := database.Ping(ctx); err != nil {
			appMiddleware.HandleAPIError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok", "database": "up"}))
	}
}
