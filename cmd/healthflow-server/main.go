package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/healthflow/healthflow/internal/config"
	"github.com/healthflow/healthflow/internal/domain/identity"
	"github.com/healthflow/healthflow/internal/domain/provider"
	"github.com/healthflow/healthflow/internal/domain/scheduling"
	"github.com/healthflow/healthflow/internal/platform/db"
	"github.com/healthflow/healthflow/internal/platform/events"
	"github.com/healthflow/healthflow/internal/platform/middleware"
	"github.com/healthflow/healthflow/internal/seed"
)

// devAuthSecret signs login tokens when no AUTH_SECRET is configured in
// development. Validate() rejects this situation outside of development.
const devAuthSecret = "healthflow-dev-secret"

func main() {
	rootCmd := &cobra.Command{
		Use:   "healthflow-server",
		Short: "HealthFlow appointment booking API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the booking API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.UsesPostgres() {
				return fmt.Errorf("DATABASE_URL is not set; migrations only apply to the Postgres store")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool, dir).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.UsesPostgres() {
				return fmt.Errorf("DATABASE_URL is not set; migrations only apply to the Postgres store")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, dir).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "" || os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}
	secret := cfg.AuthSecret
	if secret == "" {
		secret = devAuthSecret
	}

	ctx := context.Background()

	// Stores: in-memory by default, Postgres when DATABASE_URL is set.
	var (
		userRepo     identity.UserRepository
		providerRepo provider.ProviderRepository
		slotRepo     scheduling.SlotRepository
		apptRepo     scheduling.AppointmentRepository
	)
	if cfg.UsesPostgres() {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		logger.Info().Msg("connected to database")

		userRepo = identity.NewUserRepoPG(pool)
		providerRepo = provider.NewProviderRepoPG(pool)
		slotRepo = scheduling.NewSlotRepoPG(pool)
		apptRepo = scheduling.NewAppointmentRepoPG(pool)
	} else {
		logger.Info().Msg("running with in-memory store; state resets on restart")
		userRepo = identity.NewUserRepoMem()
		providerRepo = provider.NewProviderRepoMem()
		slotRepo = scheduling.NewSlotRepoMem()
		apptRepo = scheduling.NewAppointmentRepoMem()
	}

	// Event publisher (no-op when KAFKA_BROKERS is empty)
	publisher := events.FromConfig(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	defer publisher.Close()

	// Demo data
	if cfg.SeedDemoData {
		if err := seed.Load(ctx, providerRepo, slotRepo, logger); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed demo data")
		}
	}

	// Services
	identitySvc := identity.NewService(userRepo)
	providerSvc := provider.NewService(providerRepo)
	schedulingSvc := scheduling.NewService(slotRepo, apptRepo, providerSvc, publisher, logger)

	e := buildRouter(cfg, secret, logger, identitySvc, providerSvc, schedulingSvc)

	// Start server with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func buildRouter(cfg *config.Config, secret string, logger zerolog.Logger, identitySvc *identity.Service, providerSvc *provider.Service, schedulingSvc *scheduling.Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	api := e.Group("/api")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	api.Use(middleware.RateLimit(rateLimitCfg))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	identity.NewHandler(identitySvc, secret).RegisterRoutes(api)
	provider.NewHandler(providerSvc).RegisterRoutes(api)
	scheduling.NewHandler(schedulingSvc).RegisterRoutes(api)

	return e
}
