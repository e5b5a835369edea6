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

	"github.com/tricare/tricare/internal/config"
	"github.com/tricare/tricare/internal/domain/account"
	"github.com/tricare/tricare/internal/domain/doctor"
	"github.com/tricare/tricare/internal/domain/history"
	"github.com/tricare/tricare/internal/domain/imaging"
	"github.com/tricare/tricare/internal/domain/report"
	"github.com/tricare/tricare/internal/domain/triage"
	"github.com/tricare/tricare/internal/platform/auth"
	"github.com/tricare/tricare/internal/platform/db"
	"github.com/tricare/tricare/internal/platform/extract"
	"github.com/tricare/tricare/internal/platform/llm"
	"github.com/tricare/tricare/internal/platform/middleware"
	"github.com/tricare/tricare/internal/platform/registry"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tricare-server",
		Short: "TriCare health assistant API server",
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
		Short: "Start the API server",
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

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
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

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
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
	if os.Getenv("ENV") == "development" {
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

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Shared platform clients
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL(), cfg.RefreshTokenTTL())
	azure := llm.NewAzureClient(llm.AzureConfig{
		Endpoint:         cfg.OpenAIEndpoint,
		APIKey:           cfg.OpenAIAPIKey,
		Deployment:       cfg.OpenAIDeployment,
		VisionDeployment: cfg.OpenAIVisionDeployment,
		APIVersion:       cfg.OpenAIAPIVersion,
		Temperature:      cfg.OpenAITemperature,
	}, nil)
	npiClient := registry.NewClient(cfg.NPIRegistryURL, nil)

	// Repositories
	userRepo := account.NewUserRepoPG(pool)
	favoriteRepo := doctor.NewFavoriteRepoPG(pool)
	reportRepo := history.NewReportRepoPG(pool)
	symptomRepo := history.NewSymptomRepoPG(pool)
	imagingRepo := history.NewImagingRepoPG(pool)

	// Services. The history service doubles as the recorder the analysis
	// services write through.
	historySvc := history.NewService(reportRepo, symptomRepo, imagingRepo, favoriteRepo, logger)
	accountSvc := account.NewService(userRepo, issuer, logger)
	triageSvc := triage.NewService(triage.NewPipeline(azure, logger), historySvc, logger)
	reportSvc := report.NewService(azure, extract.NewTextExtractor(), historySvc, logger)
	imagingSvc := imaging.NewService(azure, historySvc, logger)
	doctorSvc := doctor.NewService(npiClient, favoriteRepo, logger)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout()))
	e.Use(middleware.BodyLimit("1M", fmt.Sprintf("%dM", cfg.MaxUploadMB)))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	authRequired := auth.Middleware(issuer)
	authOptional := auth.OptionalMiddleware(issuer)

	// Domain routes
	accountHandler := account.NewHandler(accountSvc, cfg.IsDev())
	accountHandler.RegisterRoutes(apiV1.Group("/auth"), authRequired)

	triageHandler := triage.NewHandler(triageSvc)
	triageHandler.RegisterRoutes(apiV1.Group("/symptoms", authOptional))

	reportHandler := report.NewHandler(reportSvc)
	reportHandler.RegisterRoutes(apiV1.Group("/reports", authOptional))

	imagingHandler := imaging.NewHandler(imagingSvc)
	imagingHandler.RegisterRoutes(apiV1.Group("/imaging", authOptional))

	doctorHandler := doctor.NewHandler(doctorSvc)
	doctorHandler.RegisterRoutes(apiV1.Group("/doctors"), authRequired)

	historyHandler := history.NewHandler(historySvc)
	historyHandler.RegisterRoutes(apiV1.Group("/history", authRequired))

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
