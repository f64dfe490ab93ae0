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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/careslot/careslot/internal/config"
	"github.com/careslot/careslot/internal/domain/appointment"
	"github.com/careslot/careslot/internal/domain/doctor"
	"github.com/careslot/careslot/internal/platform/apperror"
	"github.com/careslot/careslot/internal/platform/auth"
	"github.com/careslot/careslot/internal/platform/db"
	"github.com/careslot/careslot/internal/platform/middleware"
	"github.com/careslot/careslot/internal/platform/notify"
)

const version = "1.0.0"

func main() {
	root := &cobra.Command{
		Use:   "careslot-server",
		Short: "CareSlot appointment booking API server",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
	}

	var migrationsDir string

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(migrationsDir)
		},
	}
	migrateUpCmd.Flags().StringVar(&migrationsDir, "dir", "./migrations", "migrations directory")

	var statusDir string
	migrateStatusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrateStatus(statusDir)
		},
	}
	migrateStatusCmd.Flags().StringVar(&statusDir, "dir", "./migrations", "migrations directory")

	migrateCmd.AddCommand(migrateUpCmd, migrateStatusCmd)

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the bundled sample doctors",
		Long:  "Inserts a set of sample doctors for development. Doctors whose email already exists are skipped, so the command is safe to re-run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed()
		},
	}

	root.AddCommand(serveCmd, migrateCmd, seedCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "careslot").Logger()
	if cfg.IsDev() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}
	return logger
}

func openPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return pool, nil
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = apperror.HTTPErrorHandler(logger)

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
	}))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	var authMW echo.MiddlewareFunc
	if cfg.IsDev() {
		authMW = auth.DevMiddleware()
	} else {
		authMW = auth.Middleware([]byte(cfg.JWTSecret))
	}

	rlCfg := middleware.DefaultRateLimitConfig()
	if cfg.RateLimitRPS > 0 {
		rlCfg = middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimitRPS,
			BurstSize:         cfg.RateLimitBurst,
		}
	}

	api := e.Group("/api/v1", middleware.RateLimit(rlCfg), authMW)

	doctorRepo := doctor.NewRepoPG(pool)
	doctorSvc := doctor.NewService(doctorRepo)
	doctor.NewHandler(doctorSvc).RegisterRoutes(api)

	notifier := notify.NewNotifier(&notify.LogSender{Logger: logger}, notify.NewTemplateEngine(), logger)
	apptRepo := appointment.NewRepoPG(pool)
	apptSvc := appointment.NewService(apptRepo, doctorRepo, notifier, appointment.NoopPayments{}, logger)
	appointment.NewHandler(apptSvc).RegisterRoutes(api)

	e.GET("/health", db.HealthHandler(pool, version))

	go func() {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func runMigrate(dir string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	count, err := db.NewMigrator(pool, dir).Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	if count == 0 {
		fmt.Println("No pending migrations.")
	} else {
		fmt.Printf("Applied %d migration(s).\n", count)
	}
	return nil
}

func runMigrateStatus(dir string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	statuses, err := db.NewMigrator(pool, dir).Status(ctx)
	if err != nil {
		return fmt.Errorf("migrate status: %w", err)
	}

	fmt.Printf("%-8s %-40s %-10s %s\n", "VERSION", "NAME", "APPLIED", "APPLIED AT")
	for _, s := range statuses {
		appliedAt := "-"
		if s.AppliedAt != nil {
			appliedAt = s.AppliedAt.Format(time.RFC3339)
		}
		fmt.Printf("%-8d %-40s %-10t %s\n", s.Version, s.Name, s.Applied, appliedAt)
	}
	return nil
}
