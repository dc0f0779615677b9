package bot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// blockingListener returns once ctx is done, like a polling client.
type blockingListener struct{}

func (blockingListener) Start(ctx context.Context) { <-ctx.Done() }

// earlyListener returns immediately, like a client that lost its connection.
type earlyListener struct{}

func (earlyListener) Start(context.Context) {}

type fakeRunner struct {
	mu       sync.Mutex
	startErr error
	started  bool
	stopped  bool
}

func (f *fakeRunner) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = f.startErr == nil
	return f.startErr
}

func (f *fakeRunner) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunStopsCleanlyOnCancel(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	b := NewBot(discardLogger(), blockingListener{}, runner)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := b.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if !runner.started || !runner.stopped {
		t.Errorf("scheduler started = %v, stopped = %v; want both true", runner.started, runner.stopped)
	}
}

func TestRunReportsFailures(t *testing.T) {
	t.Parallel()

	startErr := errors.New("cron parse")
	tests := []struct {
		name     string
		listener Listener
		runner   *fakeRunner
		want     error
	}{
		{
			name:     "listener returns early",
			listener: earlyListener{},
			runner:   &fakeRunner{},
			want:     ErrListenerStopped,
		},
		{
			name:     "scheduler fails to start",
			listener: blockingListener{},
			runner:   &fakeRunner{startErr: startErr},
			want:     startErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			err := NewBot(discardLogger(), tt.listener, tt.runner).Run(ctx)
			if !errors.Is(err, tt.want) {
				t.Errorf("Run() error = %v, want %v", err, tt.want)
			}
		})
	}
}
