package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fulmenhq/gofulmen/signals"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/domaingen/domaingen/internal/config"
	"github.com/domaingen/domaingen/internal/core/checker"
	"github.com/domaingen/domaingen/internal/core/engine"
	errwrap "github.com/domaingen/domaingen/internal/errors"
	"github.com/domaingen/domaingen/internal/metrics"
	"github.com/domaingen/domaingen/internal/observability"
	"github.com/domaingen/domaingen/internal/server"
	"github.com/domaingen/domaingen/internal/server/handlers"
)

// telemetryHealthChecker ensures telemetry system and exporter are available
type telemetryHealthChecker struct{}

func (telemetryHealthChecker) CheckHealth(ctx context.Context) error {
	if observability.TelemetrySystem == nil || observability.PrometheusExporter == nil {
		return errwrap.NewInternalError("telemetry system not initialized")
	}
	return nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API with graceful shutdown support.

Routes:
  GET    /api/items?type=prefix|suffix   list fragments
  POST   /api/items                      save a fragment
  DELETE /api/items/{id}                 delete a fragment
  POST   /api/domains                    check every prefix+suffix under .com.br
  POST   /api/domains/{name}             check one name across .com.br .com .net .org

Signal Handling:
  • Ctrl+C (SIGINT) or SIGTERM: Graceful shutdown
  • Ctrl+C twice within 2s: Force quit
  • SIGHUP: Re-read and validate the config file`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	observability.InitServerLogger(config.AppName, cfg.Logging.Level, cfg.Logging.Profile)
	logger := observability.ServerLogger

	if cfg.Metrics.Enabled {
		if err := observability.InitMetrics(config.AppName, cfg.Metrics.Port); err != nil {
			logger.Error("Failed to initialize metrics", zap.Error(err))
			return errwrap.WrapInternal(ctx, err, "metrics initialization failed")
		}
		metrics.SetServerStartTime(time.Now().Unix())
	}

	db, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open item store", zap.Error(err))
		return errwrap.WrapDatabaseError(ctx, err, "item store initialization failed")
	}

	logger.Info("Initializing server",
		zap.String("service", config.AppName),
		zap.String("version", versionInfo.Version),
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("store_driver", db.Driver()),
		zap.Int("concurrency", cfg.Domain.Concurrency),
		zap.Bool("metrics_enabled", cfg.Metrics.Enabled))

	generator := &engine.Generator{
		Items:       db,
		Checker:     checker.NewDNSChecker(cfg.Domain.DNS, logger),
		Concurrency: cfg.Domain.Concurrency,
		Logger:      logger,
	}

	var health *handlers.HealthManager
	if cfg.Health.Enabled {
		health = handlers.NewHealthManager(versionInfo.Version)
		health.RegisterChecker("store", handlers.HealthCheckFunc(db.Ping))
		if cfg.Metrics.Enabled {
			health.RegisterChecker("telemetry", telemetryHealthChecker{})
		}
	}

	srv := server.New(cfg.Server, handlers.NewAPI(db, generator), health)

	// Shutdown hooks run LIFO: HTTP server, store, metrics, then logger flush.
	signals.OnShutdown(func(ctx context.Context) error {
		logger.Info("Flushing logger...")
		if err := logger.Sync(); err != nil {
			logger.Warn("Logger sync returned error (may be benign)", zap.Error(err))
		}
		return nil
	})

	signals.OnShutdown(func(ctx context.Context) error {
		if err := observability.StopMetrics(); err != nil {
			logger.Warn("Failed to stop metrics exporter", zap.Error(err))
		}
		return nil
	})

	signals.OnShutdown(func(ctx context.Context) error {
		if err := db.Close(); err != nil {
			return errwrap.WrapDatabaseError(ctx, err, "store close failed")
		}
		logger.Info("Item store closed")
		return nil
	})

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	signals.OnShutdown(func(ctx context.Context) error {
		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errwrap.WrapInternal(ctx, err, "server shutdown failed")
		}

		logger.Info("HTTP server stopped gracefully")
		return nil
	})

	signals.OnReload(func(ctx context.Context) error {
		logger.Info("Received SIGHUP: re-reading config")

		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				logger.Info("No config file found - using defaults and environment variables")
				return nil
			}
			logger.Error("Failed to reload config file",
				zap.String("file", viper.ConfigFileUsed()),
				zap.Error(err))
			return errwrap.WrapConfigInvalid(ctx, err, "config reload failed")
		}

		if _, err := config.Load(); err != nil {
			logger.Error("Reloaded config is invalid", zap.Error(err))
			return errwrap.WrapConfigInvalid(ctx, err, "config reload failed")
		}

		// Store, listener, and resolver settings are bound at startup.
		logger.Info("Configuration reloaded; restart to apply server, store, or domain changes",
			zap.String("file", viper.ConfigFileUsed()))
		return nil
	})

	if err := signals.EnableDoubleTap(signals.DoubleTapConfig{
		Window:  2 * time.Second,
		Message: "Press Ctrl+C again within 2 seconds to force quit",
	}); err != nil {
		logger.Warn("Failed to enable double-tap force quit", zap.Error(err))
	}

	errChan := make(chan error, 2)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	go func() {
		errChan <- signals.Listen(ctx)
	}()

	if err := <-errChan; err != nil {
		logger.Error("Server error", zap.Error(err))
		return errwrap.WrapInternal(ctx, err, "server error")
	}

	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "localhost", "server host")
	serveCmd.Flags().IntP("port", "p", 8080, "server port")

	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}
