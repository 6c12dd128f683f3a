// Package bot implements the core application lifecycle: the task
// scheduler and the notification API server, started together and shut
// down together.
package bot

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/smsmy/farm-notifier/internal/server"
)

// Bot represents the main application and manages its components' lifecycle.
type Bot struct {
	logger    *slog.Logger
	scheduler *Scheduler
	apiServer *server.Server
}

// NewBot creates the orchestrator. apiServer may be nil when the HTTP
// API is disabled in configuration.
func NewBot(logger *slog.Logger, scheduler *Scheduler, apiServer *server.Server) *Bot {
	return &Bot{
		logger:    logger.With("component", "orchestrator"),
		scheduler: scheduler,
		apiServer: apiServer,
	}
}

// Run starts all components, handling graceful shutdown on context
// cancellation. It returns an error if any component fails.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting orchestrator...")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting scheduler...")
		if err := b.scheduler.Start(); err != nil {
			b.logger.Error("Failed to start scheduler", "error", err)
			return err
		}

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping scheduler...")

		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}
		return nil
	})

	if b.apiServer != nil {
		g.Go(func() error {
			return b.apiServer.Run(gCtx)
		})
	}

	b.logger.Info("Orchestrator running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Orchestrator stopped gracefully.")
	return nil
}
