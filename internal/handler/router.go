package handler

import (
	"context"
	"net/http"
	"time"

	"creditsea/internal/metrics"
	"creditsea/internal/middleware"
	"creditsea/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RouterConfig carries everything NewRouter wires together
type RouterConfig struct {
	Auth       service.AuthService
	Loans      service.LoanService
	Users      service.UserService
	Logger     logrus.FieldLogger
	CORSOrigin string
	Cookie     CookieOptions
	// AuthLimiter throttles register and login per client. Nil disables it.
	AuthLimiter *middleware.RateLimiter
	// HealthCheck reports whether the database is reachable. Nil means always healthy.
	HealthCheck func(ctx context.Context) error
}

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(cfg.Logger),
		metrics.Middleware(),
		middleware.CORS(cfg.CORSOrigin),
		middleware.SessionMiddleware(cfg.Auth, cfg.Logger),
	)

	var limit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if cfg.AuthLimiter != nil {
		limit = cfg.AuthLimiter.Handler()
	}

	api := router.Group("/")
	NewAuthHandler(cfg.Auth, cfg.Cookie, cfg.Logger).RegisterAuthRoutes(api, limit)
	NewLoanHandler(cfg.Loans, cfg.Logger).RegisterLoanRoutes(api)
	NewAdminHandler(cfg.Users, cfg.Logger).RegisterAdminRoutes(api)

	router.GET("/health", func(c *gin.Context) {
		if cfg.HealthCheck != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := cfg.HealthCheck(ctx); err != nil {
				cfg.Logger.WithError(err).Warn("health check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return router
}
