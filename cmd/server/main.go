package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"creditsea/internal/config"
	"creditsea/internal/events"
	"creditsea/internal/handler"
	"creditsea/internal/logger"
	"creditsea/internal/middleware"
	"creditsea/internal/repository"
	"creditsea/internal/service"
	"creditsea/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.Log.Level, cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(ctx, cfg.Database.URL, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// --- Migrations ---
	if err := config.Migrate(ctx, dbPool, log); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	loanRepo := repository.NewLoanRepository(dbPool)
	sessionRepo, closeSessions, err := newSessionRepository(ctx, cfg, dbPool, log)
	if err != nil {
		log.Fatalf("Failed to set up session store: %v", err)
	}
	defer closeSessions()

	// --- Initialize Services ---
	jwtUtil := utils.NewJWTUtil(cfg.Session.Secret)
	authService := service.NewAuthService(userRepo, sessionRepo, jwtUtil, service.AuthOptions{
		SessionTTL: cfg.SessionTTL(),
		AdminEmail: cfg.AdminEmail,
		Logger:     log,
	})
	publisher := events.Nop()
	if cfg.Events.AMQPURL != "" {
		amqpPublisher, err := events.DialAMQP(cfg.Events.AMQPURL, log)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = amqpPublisher
	}
	defer publisher.Close()
	loanService := service.NewLoanService(loanRepo, service.WithEvents(publisher), service.WithLogger(log))
	userService := service.NewUserService(userRepo)

	// --- Setup Gin Router ---
	var authLimiter *middleware.RateLimiter
	if cfg.RateLimit.AuthPerMinute > 0 {
		authLimiter = middleware.NewRateLimiter(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.AuthBurst, log)
	}
	router := handler.NewRouter(handler.RouterConfig{
		Auth:       authService,
		Loans:      loanService,
		Users:      userService,
		Logger:     log,
		CORSOrigin: cfg.Server.CORSOrigin,
		Cookie: handler.CookieOptions{
			MaxAge: int(cfg.SessionTTL().Seconds()),
			Secure: cfg.IsProduction(),
		},
		AuthLimiter: authLimiter,
		HealthCheck: dbPool.Ping,
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s", err)
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server exiting")
}

// newSessionRepository picks the session store named by SESSION_STORE.
func newSessionRepository(ctx context.Context, cfg config.Config, db repository.DBTX, log logrus.FieldLogger) (repository.SessionRepository, func(), error) {
	if cfg.Session.Store != config.SessionStoreRedis {
		log.Info("Using PostgreSQL session store")
		return repository.NewSessionRepository(db), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.Session.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	log.WithField("addr", opts.Addr).Info("Using Redis session store")
	return repository.NewRedisSessionRepository(client), func() { _ = client.Close() }, nil
}
