// Command agency-api starts the Nexel agency HTTP backend.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nexel-studio/agency-api/internal/config"
	"github.com/nexel-studio/agency-api/internal/limiter"
	"github.com/nexel-studio/agency-api/internal/mail"
	"github.com/nexel-studio/agency-api/internal/migrate"
	"github.com/nexel-studio/agency-api/internal/repository/postgres"
	"github.com/nexel-studio/agency-api/internal/server/httpapi"
	"github.com/nexel-studio/agency-api/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main parses configuration, runs migrations, and serves the HTTP API until
// interrupted.
func main() {
	cfg := config.Load()

	// Flags override environment for local runs.
	addr := flag.String("addr", cfg.Addr, "listen address")
	dsn := flag.String("dsn", cfg.DatabaseDSN, "PostgreSQL DSN")
	jwtKey := flag.String("jwt-key", cfg.JWTSecret, "HS256 signing key (required)")
	accessTTL := flag.Duration("access-ttl", cfg.AccessTTL, "bearer token TTL")
	flag.Parse()
	cfg.Addr, cfg.DatabaseDSN, cfg.JWTSecret, cfg.AccessTTL = *addr, *dsn, *jwtKey, *accessTTL

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Addr),
	)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseDSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	// DB pool
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("postgres.New", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	workRepo := postgres.NewWorkRepo(db)
	contactRepo := postgres.NewContactRepo(db)

	lim := limiter.NewPGWithQuerier(db.Pool, 15*time.Minute, 5, 15*time.Minute)

	// Services
	mailer := mail.NewSMTP(cfg.SMTP, cfg.Owner, logger)
	authSvc := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), cfg.AccessTTL, lim)
	workSvc := service.NewWorkService(workRepo, cfg.MaxImageBytes)
	contactSvc := service.NewContactService(contactRepo, mailer, logger)

	gin.SetMode(gin.ReleaseMode)
	api := httpapi.New(cfg, authSvc, workSvc, contactSvc, logger)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
