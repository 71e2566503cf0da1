package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/picgram/backend/internal/cache"
	"github.com/anonto42/picgram/backend/internal/fixtures"
	"github.com/anonto42/picgram/backend/internal/handlers"
	"github.com/anonto42/picgram/backend/internal/jobs"
	"github.com/anonto42/picgram/backend/internal/middleware"
	"github.com/anonto42/picgram/backend/internal/repositories"
	"github.com/anonto42/picgram/backend/internal/router"
	"github.com/anonto42/picgram/backend/internal/session"
	"github.com/anonto42/picgram/backend/internal/validators"
	"github.com/anonto42/picgram/backend/internal/viewmodel"
	"github.com/anonto42/picgram/backend/pkg/config"
	"github.com/anonto42/picgram/backend/pkg/firebase"
	"github.com/anonto42/picgram/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// deferred cleanup inside run has finished by the time it returns
	if err := run(cfg, log); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	// Firebase is optional unless it is the auth mode
	var firebaseAuth *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, log)
		if err != nil {
			if cfg.AuthMode == router.AuthFirebase {
				return fmt.Errorf("initialize firebase: %w", err)
			}
			log.Warn("Firebase login disabled", zap.Error(err))
		} else {
			firebaseAuth = firebaseApp.AuthClient
		}
	}

	scheduler := jobs.NewScheduler(log)

	var (
		provider session.Provider
		users    handlers.UserStore
	)
	switch cfg.DataSource {
	case config.SourceDatabase:
		db, err := config.InitDB(cfg, log)
		if err != nil {
			return fmt.Errorf("initialize databases: %w", err)
		}
		defer db.CloseDB() // Ensure database connections are closed when main exits

		if err := router.Migrate(db.Postgres, log); err != nil {
			return fmt.Errorf("auto migrate models: %w", err)
		}

		searchCache, err := connectSearchCache(ctx, cfg, log)
		if err != nil {
			return err
		}

		mongoDB := db.Mongo.Database(cfg.MongoDatabase)
		userRepo := repositories.NewPostgresUserRepository(db.Postgres)
		storyRepo := repositories.NewStoryRepository(mongoDB, db.Postgres)
		provider = &repositories.Provider{
			Users:          userRepo,
			Posts:          repositories.NewMongoPostRepository(mongoDB),
			Comments:       repositories.NewPostgresCommentRepository(db.Postgres),
			Likes:          repositories.NewPostgresLikeRepository(db.Postgres),
			SavedPosts:     repositories.NewPostgresSavedPostRepository(db.Postgres),
			Follows:        repositories.NewPostgresFollowRepository(db.Postgres),
			Notifications:  repositories.NewPostgresNotificationRepository(db.Postgres),
			Stories:        storyRepo,
			SearchCache:    searchCache,
			SearchCacheTTL: cfg.SearchCacheTTL,
			Logger:         log,
		}
		users = userRepo

		if err := scheduler.CleanStories(storyRepo, cfg.StoryCleanupSchedule); err != nil {
			return fmt.Errorf("invalid story cleanup schedule %q: %w", cfg.StoryCleanupSchedule, err)
		}
	default:
		accounts, err := fixtures.NewAccounts()
		if err != nil {
			return fmt.Errorf("seed demo account: %w", err)
		}
		provider = fixtures.NewProvider(cfg.SimulatedLatency, cfg.PublishLatency)
		users = accounts
		log.Info("Serving fixture data", zap.String("demo_email", fixtures.DemoEmail))
	}

	sessions := session.NewStore(provider, middleware.RequestAuthenticator{},
		session.WithLogger(log),
		session.WithSearchDebounce(cfg.SearchDebounce),
		session.WithPostOptions(viewmodel.WithHeartBurst(cfg.HeartBurstDuration)),
	)
	if err := scheduler.EvictSessions(sessions, cfg.SessionIdleTimeout); err != nil {
		return fmt.Errorf("schedule session eviction: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Validator
	e.Validator = validators.NewValidator()

	// Setup global middleware
	config.SetupMiddleware(e, log)

	// Setup routes and dependencies
	router.SetupRoutes(e, router.Dependencies{
		Sessions:     sessions,
		Users:        users,
		FirebaseAuth: firebaseAuth,
		AuthMode:     cfg.AuthMode,
		JWTSecret:    cfg.JWTSecret,
		Logger:       log,
	})

	// Start server
	serverErr := make(chan error, 1)
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	log.Info("Server started", zap.String("port", cfg.Port), zap.String("data_source", cfg.DataSource))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("run http server: %w", err)
	}

	log.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	return nil
}

// connectSearchCache connects the configured search result cache, or returns nil
func connectSearchCache(ctx context.Context, cfg *config.Config, log *zap.Logger) (cache.Cache, error) {
	switch cfg.CacheBackend {
	case config.CacheRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pong, err := rdb.Ping(ctx).Result()
		if err != nil {
			rdb.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		log.Info("Successfully connected to Redis", zap.String("pong", pong))
		return cache.NewRedisCache(rdb), nil
	case config.CacheMemcached:
		mc := cache.NewMemcachedCache(cfg.MemcachedAddr)
		if err := mc.Ping(); err != nil {
			return nil, fmt.Errorf("ping memcached: %w", err)
		}
		log.Info("Successfully connected to Memcached", zap.String("addr", cfg.MemcachedAddr))
		return mc, nil
	default:
		return nil, nil
	}
}
