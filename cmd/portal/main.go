// Package main provides the entry point for the pool portal server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/pool-portal/internal/config"
	"github.com/yourusername/pool-portal/internal/datasource"
	"github.com/yourusername/pool-portal/internal/health"
	"github.com/yourusername/pool-portal/internal/logger"
	"github.com/yourusername/pool-portal/internal/metrics"
	"github.com/yourusername/pool-portal/internal/repository"
	"github.com/yourusername/pool-portal/internal/scheduler"
	"github.com/yourusername/pool-portal/internal/server"
	"github.com/yourusername/pool-portal/internal/service"
)

const version = "1.0.0"

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:     "portal",
		Short:   "Betting-pool dashboard server",
		Version: version,
		RunE:    run,
	}
	rootCmd.Flags().StringVar(&configPath, "config", "config/config.yaml", "Path to config file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigWithSecrets(configPath)
	if err != nil {
		return err
	}

	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"storage":     cfg.Storage.Driver,
	}).Info("Pool portal starting")

	metrics.InitRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repos, err := repository.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize record store: %w", err)
	}
	appLog.WithField("driver", cfg.Storage.Driver).Info("Record store initialized")

	cache := service.NewDistributionCache(time.Duration(cfg.Prediction.CacheTTLSeconds) * time.Second)
	portal := service.NewPortalService(repos, cfg.CategorySet(), cache, appLog)
	audit := logger.NewAuditLogger(appLog)
	admin := service.NewAdminService(repos, portal, cfg.CategorySet(), cache, audit)

	var hub *server.Hub
	if cfg.Features.LivePushEnabled {
		hub = server.NewHub(appLog)
		go hub.Run()
		admin.SetNotifier(hub)
		appLog.Info("Live prediction push enabled")
	}

	sched := scheduler.NewScheduler(appLog)
	if err := sched.ScheduleMetricsRefresh(cfg.Prediction.RefreshSchedule, portal); err != nil {
		return fmt.Errorf("failed to schedule metrics refresh: %w", err)
	}

	var importer *service.ImportService
	if cfg.Feed.Enabled && cfg.Features.ImportEnabled {
		httpCfg := datasource.DefaultHTTPClientConfig()
		if cfg.Feed.RateLimit > 0 {
			httpCfg.RateLimit = cfg.Feed.RateLimit
		}
		if cfg.Feed.TimeoutSeconds > 0 {
			httpCfg.Timeout = time.Duration(cfg.Feed.TimeoutSeconds) * time.Second
		}
		httpClient := datasource.NewRateLimitedHTTPClient(httpCfg, appLog)
		feed := datasource.NewHTTPResultsFeed(httpClient, cfg.Feed.URL, cfg.Feed.APIKey, cfg.CategorySet())
		importer = service.NewImportService(feed, repos, cache, audit, appLog)

		schedule := cfg.Feed.SyncSchedule
		if schedule == "" {
			schedule = "@every 1h"
		}
		if err := sched.ScheduleFeedSync(schedule, importer); err != nil {
			return fmt.Errorf("failed to schedule feed sync: %w", err)
		}
		appLog.WithField("url", cfg.Feed.URL).Info("Results feed import enabled")
	}

	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     version,
		Port:        cfg.Server.HealthPort,
		Logger:      appLog,
		Store:       repos.Store,
	})
	if err := healthServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}

	// Warm the gauges before the first scheduled refresh.
	if err := portal.RefreshMetrics(ctx); err != nil {
		appLog.WithError(err).Warn("Initial metrics refresh failed")
	}

	srv := server.NewServer(cfg, portal, admin, hub, appLog)
	if importer != nil {
		srv.SetImporter(importer)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	healthServer.SetReady(true)
	appLog.WithField("port", cfg.Server.Port).Info("Pool portal ready")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		appLog.WithField("signal", sig.String()).Info("Shutting down")
	case err := <-errCh:
		appLog.WithError(err).Error("Dashboard server failed")
	}

	healthServer.SetReady(false)
	srv.Stop()
	sched.Stop()
	cancel()

	appLog.Info("Pool portal stopped")
	return nil
}

func loadConfigWithSecrets(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return nil, fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return nil, fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
