package api

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/inboxzero/internal/api/handlers"
	"github.com/welldanyogia/inboxzero/internal/api/middleware"
	"github.com/welldanyogia/inboxzero/internal/auth"
	"github.com/welldanyogia/inboxzero/internal/logger"
	"github.com/welldanyogia/inboxzero/internal/repository"
	"github.com/welldanyogia/inboxzero/internal/services"
	"github.com/welldanyogia/inboxzero/internal/websocket"
	"gorm.io/gorm"
)

// RouterConfig holds dependencies for the router
type RouterConfig struct {
	DB       *gorm.DB
	Logger   *slog.Logger
	Security *logger.SecurityLogger

	Hasher *auth.PasswordHasher
	Tokens *auth.TokenManager

	// Hub enables GET /api/ws and live email events when set
	Hub *websocket.Hub

	AllowedOrigins string
	Production     bool

	// Limiter is shared with the caller so it can run cleanup; nil disables rate limiting
	Limiter *middleware.IPRateLimiter
}

// NewRouter creates and configures the Echo router with all routes
func NewRouter(cfg *RouterConfig) *echo.Echo {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Security == nil {
		cfg.Security = logger.NewSecurityLoggerFrom(cfg.Logger)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware (applied in order)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(cfg.Logger))
	e.Use(middleware.SecureHeaders())
	e.Use(middleware.SecureCORS(cfg.AllowedOrigins, cfg.Production))
	if cfg.Limiter != nil {
		e.Use(middleware.RateLimiterWithConfig(cfg.Limiter, cfg.Security))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	emailRepo := repository.NewEmailRepository(cfg.DB)

	// Initialize services
	var notifier services.Notifier
	if cfg.Hub != nil {
		notifier = cfg.Hub
	}
	authService := services.NewAuthService(userRepo, cfg.Hasher, cfg.Tokens, cfg.Logger)
	emailService := services.NewEmailService(emailRepo, notifier, cfg.Logger)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB)
	authHandler := handlers.NewAuthHandler(authService, cfg.Security, cfg.Logger)
	emailHandler := handlers.NewEmailHandler(emailService, cfg.Logger)

	// Health routes (no auth required)
	e.GET("/health", healthHandler.Health)
	e.GET("/ready", healthHandler.Ready)

	api := e.Group("/api")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)

	// Email routes (bearer token)
	emails := api.Group("/emails", middleware.JWTAuth(middleware.JWTAuthConfig{
		Tokens:   cfg.Tokens,
		Users:    userRepo,
		Security: cfg.Security,
	}))
	emails.GET("", emailHandler.List)
	emails.GET("/progress", emailHandler.Progress)
	emails.PUT("/:id/read", emailHandler.MarkRead)
	emails.PUT("/:id/archive", emailHandler.Archive)

	// Live updates; browsers cannot set headers on websocket requests
	if cfg.Hub != nil {
		upgrader := websocket.NewSecureUpgrader(middleware.ParseOrigins(cfg.AllowedOrigins, cfg.Production), cfg.Security)
		wsHandler := handlers.NewWebSocketHandler(cfg.Hub, upgrader, cfg.Logger)
		api.GET("/ws", wsHandler.Connect, middleware.JWTAuth(middleware.JWTAuthConfig{
			Tokens:          cfg.Tokens,
			Users:           userRepo,
			Security:        cfg.Security,
			AllowQueryToken: true,
		}))
	}

	return e
}
