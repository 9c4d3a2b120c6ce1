package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/folioworks/folio/pkg/config"
	container "github.com/folioworks/folio/pkg/dependency_container"
	"github.com/folioworks/folio/pkg/infra/cache"
	infraLogger "github.com/folioworks/folio/pkg/infra/logger"
	"github.com/folioworks/folio/pkg/server"
	"github.com/folioworks/folio/pkg/server/router"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const metricsWorkers = 2

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and background workers",
	Long: `Starts the API server, the metrics server when metrics are enabled, the
webhook dispatcher, the content watcher and the event listener. Stops on
SIGINT or SIGTERM after draining queued webhook deliveries.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.GetConfig()
	logger := infraLogger.NewLogger("folio")

	c, err := container.NewContainer(container.ContainerDI{Cfg: cfg, Logger: logger})
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.WithError(err).Error("failed to close resources")
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	indexed, err := c.SearchService.Rebuild(ctx)
	if err != nil {
		return fmt.Errorf("failed to build search index: %w", err)
	}
	logger.WithField("items", indexed).Info("search index built")

	if err := c.ContentWatcher.Prime(ctx); err != nil {
		logger.WithError(err).Warn("content watcher could not take a first snapshot")
	}

	if cfg.Metrics.Enabled {
		c.MetricsWorker.StartWorkers(metricsWorkers)
	}
	c.WebhookDispatcher.Start(ctx)

	g, gctx := errgroup.WithContext(ctx)

	api := server.NewAPIServer(cfg, logger, router.NewAPIRouter(
		c.MiddlewareTransport,
		c.HandlerTransport,
		cfg.Server.SwaggerFile,
	))
	g.Go(func() error {
		return server.RunUntil(gctx, api)
	})
	if cfg.Metrics.Enabled {
		metricsServer := server.NewMetricsServer(cfg, logger)
		g.Go(func() error {
			return server.RunUntil(gctx, metricsServer)
		})
	}
	g.Go(func() error {
		c.EventListener.Listen(gctx, cache.ContentChannel)
		return nil
	})
	g.Go(func() error {
		c.RateLimiter.StartCleanup(gctx, cfg.RateLimit.CleanupInterval)
		return nil
	})
	if cfg.Content.Watch {
		g.Go(func() error {
			return c.ContentWatcher.Run(gctx)
		})
	}

	runErr := g.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), container.ShutdownTimeout)
	defer cancel()
	if err := c.WebhookDispatcher.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("webhook deliveries still pending at shutdown")
	}
	c.MetricsWorker.Shutdown()

	if runErr != nil {
		return fmt.Errorf("server stopped: %w", runErr)
	}
	logger.Info("shutdown complete")
	return nil
}
