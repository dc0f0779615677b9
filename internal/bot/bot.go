// Package bot orchestrates the channel search bot: the Telegram update
// listener and the maintenance scheduler run together until shutdown.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// ErrListenerStopped is returned by Run when the update listener returns
// while the context is still live.
var ErrListenerStopped = errors.New("telegram listener stopped unexpectedly")

// Listener delivers updates until ctx is done. *bot.Bot from go-telegram
// satisfies it.
type Listener interface {
	Start(ctx context.Context)
}

// Runner is a background component with an explicit start and stop.
type Runner interface {
	Start() error
	Stop() error
}

// Bot ties the listener and the scheduler to one lifetime.
type Bot struct {
	logger    *slog.Logger
	listener  Listener
	scheduler Runner
}

// NewBot creates the orchestrator. Handlers must already be registered on
// the listener.
func NewBot(logger *slog.Logger, listener Listener, scheduler Runner) *Bot {
	return &Bot{
		logger:    logger.With("component", "bot_orchestrator"),
		listener:  listener,
		scheduler: scheduler,
	}
}

// Run blocks until ctx is cancelled or a component fails. A cancelled ctx is
// a clean shutdown and returns nil.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...")

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error { return b.listen(gCtx) })
	g.Go(func() error { return b.runScheduler(gCtx) })

	err := g.Wait()
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		b.logger.Info("Bot orchestrator stopped gracefully.")
		return nil
	default:
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}
}

func (b *Bot) listen(ctx context.Context) error {
	b.logger.Info("Listening for channel posts and private messages...")
	b.listener.Start(ctx)

	if ctx.Err() == nil {
		b.logger.Warn("Update listener returned before shutdown")
		return ErrListenerStopped
	}
	b.logger.Info("Update listener stopped.")
	return nil
}

// runScheduler starts the scheduler and stops it once ctx is done.
func (b *Bot) runScheduler(ctx context.Context) error {
	if b.scheduler == nil {
		<-ctx.Done()
		return nil
	}
	if err := b.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	<-ctx.Done()
	if err := b.scheduler.Stop(); err != nil {
		b.logger.Error("Error stopping scheduler", "error", err)
	}
	return nil
}
