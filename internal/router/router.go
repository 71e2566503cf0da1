package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/picgram/backend/internal/handlers"
	"github.com/anonto42/picgram/backend/internal/metrics"
	"github.com/anonto42/picgram/backend/internal/middleware"
	"github.com/anonto42/picgram/backend/internal/models"
	"github.com/anonto42/picgram/backend/internal/session"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Auth modes
const (
	AuthJWT      = "jwt"
	AuthFirebase = "firebase"
)

// Dependencies are the services the routes are wired to
type Dependencies struct {
	Sessions     *session.Store
	Users        handlers.UserStore
	FirebaseAuth *auth.Client // nil disables Firebase login
	AuthMode     string
	JWTSecret    string
	Logger       *zap.Logger
}

// Migrate creates or updates the PostgreSQL tables
func Migrate(pgdb *gorm.DB, logger *zap.Logger) error {
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Like{},
		&models.SavedPost{},
		&models.CommentRecord{},
		&models.NotificationRecord{},
		&models.StorySeen{},
	)
	if err != nil {
		return err
	}
	logger.Info("PostgreSQL auto-migrations completed for all models.")
	return nil
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	logger := deps.Logger

	// Health check and metrics - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(deps.Users, deps.FirebaseAuth, deps.JWTSecret, logger)
	authHandler.RegisterAuthRoutes(authGroup)
	logger.Info("Auth routes configured.")

	required, optional := authMiddlewares(deps)
	public := e.Group("/api/v1", optional)
	api := e.Group("/api/v1", required)
	logger.Info("Authentication middleware applied to /api/v1 group.", zap.String("mode", deps.AuthMode))

	feedHandler := handlers.NewFeedHandler(deps.Sessions, middleware.RequestAuthenticator{}, logger)
	feedHandler.RegisterFeedRoutes(public, api)
	logger.Info("Feed routes configured.")

	postHandler := handlers.NewPostHandler(deps.Sessions)
	postHandler.RegisterPostRoutes(api)
	logger.Info("Post routes configured.")

	likeHandler := handlers.NewLikeHandler(deps.Sessions)
	likeHandler.RegisterLikeRoutes(api)
	logger.Info("Like routes configured.")

	savedPostHandler := handlers.NewSavedPostHandler(deps.Sessions)
	savedPostHandler.RegisterSavedPostRoutes(api)
	logger.Info("Saved post routes configured.")

	commentHandler := handlers.NewCommentHandler(deps.Sessions)
	commentHandler.RegisterCommentRoutes(api)
	logger.Info("Comment routes configured.")

	storyHandler := handlers.NewStoryHandler(deps.Sessions)
	storyHandler.RegisterStoryRoutes(api)
	logger.Info("Story routes configured.")

	notificationHandler := handlers.NewNotificationHandler(deps.Sessions)
	notificationHandler.RegisterNotificationRoutes(api)
	logger.Info("Notification routes configured.")

	searchHandler := handlers.NewSearchHandler(deps.Sessions)
	searchHandler.RegisterSearchRoutes(api)
	logger.Info("Search routes configured.")

	userHandler := handlers.NewUserHandler(deps.Sessions)
	userHandler.RegisterProfileRoutes(api)
	logger.Info("User profile routes configured.")

	logger.Info("All routes configured.")
}

func authMiddlewares(deps Dependencies) (required, optional echo.MiddlewareFunc) {
	if deps.AuthMode == AuthFirebase && deps.FirebaseAuth != nil {
		return middleware.FirebaseAuthMiddleware(deps.FirebaseAuth, deps.Users, false),
			middleware.FirebaseAuthMiddleware(deps.FirebaseAuth, deps.Users, true)
	}
	return middleware.JWTAuthMiddleware(deps.JWTSecret), middleware.OptionalJWTMiddleware(deps.JWTSecret)
}
