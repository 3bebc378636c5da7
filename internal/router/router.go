package router

import (
	"github.com/anonto42/social-admin/backend/internal/auth"
	"github.com/anonto42/social-admin/backend/internal/handlers"
	"github.com/anonto42/social-admin/backend/internal/metrics"
	"github.com/anonto42/social-admin/backend/internal/middleware"
	"github.com/anonto42/social-admin/backend/internal/repositories"
	"github.com/anonto42/social-admin/backend/internal/validators"
	"github.com/anonto42/social-admin/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// auditDatabase is the MongoDB database holding the moderation trail
const auditDatabase = "social_admin"

// Dependencies are the collaborators injected into the handlers
type Dependencies struct {
	Users    repositories.UserRepository
	Posts    repositories.PostRepository
	Comments repositories.CommentRepository
	Stats    repositories.StatsRepository
	Sessions repositories.SessionRepository
	Audit    repositories.AuditRepository
	Tokens   *auth.TokenManager
	Health   handlers.Pinger
}

// NewDependencies wires the PostgreSQL repositories, and the MongoDB audit trail when configured
func NewDependencies(cfg *config.Config, db *config.DB) (*Dependencies, error) {
	sqlDB, err := db.Postgres.DB()
	if err != nil {
		return nil, err
	}

	var audit repositories.AuditRepository = repositories.NoopAuditRepository{}
	if db.Mongo != nil {
		audit = repositories.NewMongoAuditRepository(db.Mongo.Database(auditDatabase))
	}

	return &Dependencies{
		Users:    repositories.NewPostgresUserRepository(db.Postgres),
		Posts:    repositories.NewPostgresPostRepository(db.Postgres),
		Comments: repositories.NewPostgresCommentRepository(db.Postgres),
		Stats:    repositories.NewPostgresStatsRepository(db.Postgres),
		Sessions: repositories.NewPostgresSessionRepository(db.Postgres),
		Audit:    audit,
		Tokens:   auth.NewTokenManager(cfg.JWTSecret, cfg.IsProduction()),
		Health:   sqlDB,
	}, nil
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, cfg *config.Config) {
	e.HTTPErrorHandler = ErrorHandler(cfg.IsProduction())
	e.Validator = validators.NewValidator()

	// outermost, so requests that panic are still counted
	e.Use(metrics.Middleware())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			entry := logrus.WithFields(logrus.Fields{
				"method":    v.Method,
				"uri":       v.URI,
				"status":    v.Status,
				"latency":   v.Latency.String(),
				"remote_ip": v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("request failed")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))
	e.Use(eMiddleware.CORSWithConfig(eMiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
	}))
	logrus.Info("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps *Dependencies) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck(deps.Health))

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/auth")
	authHandler := handlers.NewAuthHandler(deps.Users, deps.Tokens)
	authHandler.RegisterAuthRoutes(authGroup)
	logrus.Info("Auth routes configured.")

	// --- Protected routes (require the session cookie) ---
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(deps.Tokens))

	postHandler := handlers.NewPostHandler(deps.Posts, deps.Audit)
	postHandler.RegisterPostRoutes(api)

	commentHandler := handlers.NewCommentHandler(deps.Comments, deps.Audit)
	commentHandler.RegisterCommentRoutes(api)

	statsHandler := handlers.NewStatsHandler(deps.Stats)
	statsHandler.RegisterStatsRoutes(api)

	sessionHandler := handlers.NewSessionHandler(deps.Sessions)
	sessionHandler.RegisterSessionRoutes(api)

	logrus.Info("All routes configured.")
}

// New builds a fully configured Echo instance
func New(cfg *config.Config, deps *Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	SetupMiddleware(e, cfg)
	SetupRoutes(e, deps)
	return e
}
