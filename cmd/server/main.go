package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/welldanyogia/inboxzero/internal/api"
	"github.com/welldanyogia/inboxzero/internal/api/middleware"
	"github.com/welldanyogia/inboxzero/internal/auth"
	"github.com/welldanyogia/inboxzero/internal/config"
	"github.com/welldanyogia/inboxzero/internal/database"
	"github.com/welldanyogia/inboxzero/internal/logger"
	"github.com/welldanyogia/inboxzero/internal/repository"
	smtpbackend "github.com/welldanyogia/inboxzero/internal/smtp"
	"github.com/welldanyogia/inboxzero/internal/websocket"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadWithValidation()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)
	security := logger.NewSecurityLoggerFrom(log)

	log.Info("Starting Inbox Zero server...")
	cfg.LogConfig(log)

	db, err := database.Connect(cfg.DatabaseURL, database.Options{
		Production: cfg.IsProduction(),
		LogLevel:   cfg.LogLevel,
	})
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := websocket.NewHub(log)
	go hub.Run(ctx)

	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimitRequests), cfg.RateLimitBurst)
	go limiter.RunCleanup(ctx, middleware.DefaultCleanupInterval, middleware.DefaultLimiterIdleTTL)

	e := api.NewRouter(&api.RouterConfig{
		DB:             db,
		Logger:         log,
		Security:       security,
		Hasher:         auth.NewPasswordHasher(cfg.BcryptCost),
		Tokens:         auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL),
		Hub:            hub,
		AllowedOrigins: cfg.AllowedOrigins,
		Production:     cfg.IsProduction(),
		Limiter:        limiter,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.APIPort),
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info("HTTP server listening", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var smtpServer *smtp.Server
	if cfg.SMTP.Enabled {
		backend := smtpbackend.NewBackend(&smtpbackend.BackendConfig{
			Users:    repository.NewUserRepository(db),
			Emails:   repository.NewEmailRepository(db),
			Notifier: hub,
			Security: security,
			Logger:   log,
		})
		smtpServer = smtpbackend.NewSecureServer(backend, &smtpbackend.ServerConfig{
			Addr:           fmt.Sprintf(":%d", cfg.SMTP.Port),
			Domain:         cfg.SMTP.Domain,
			MaxMessageSize: cfg.SMTP.MaxMessageBytes,
			MaxRecipients:  cfg.SMTP.MaxRecipients,
			ReadTimeout:    cfg.SMTP.ReadTimeout,
			WriteTimeout:   cfg.SMTP.WriteTimeout,
		})
		go func() {
			log.Info("SMTP server listening", slog.String("addr", smtpServer.Addr))
			if err := smtpServer.ListenAndServe(); err != nil && !errors.Is(err, smtp.ErrServerClosed) {
				errCh <- fmt.Errorf("smtp server: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
	case err := <-errCh:
		stop()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if smtpServer != nil {
		if err := smtpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("SMTP shutdown failed", slog.Any("error", err))
		}
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
