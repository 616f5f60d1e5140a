package utils

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// BackgroundTasks runs keyed goroutines that share one lifetime. A key can
// only run once at a time.
type BackgroundTasks struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	running map[string]string
}

func NewBackgroundTasks() *BackgroundTasks {
	ctx, cancel := context.WithCancel(context.Background())
	return &BackgroundTasks{
		ctx:     ctx,
		cancel:  cancel,
		running: make(map[string]string),
	}
}

// TryStart runs fn in a goroutine unless key is already running or the
// manager is shut down. It reports whether fn was started.
func (bt *BackgroundTasks) TryStart(key, description string, fn func(ctx context.Context)) bool {
	bt.mu.Lock()
	defer bt.mu.Unlock()

	if bt.ctx.Err() != nil {
		return false
	}
	if _, busy := bt.running[key]; busy {
		slog.Debug("Background task already running",
			slog.String("type", "sys"),
			slog.String("task", key))
		return false
	}
	bt.running[key] = description

	bt.wg.Add(1)
	go func() {
		defer bt.wg.Done()
		defer bt.finish(key)
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Background task panic",
					slog.String("type", "error"),
					slog.String("task", key),
					slog.Any("panic", r))
			}
		}()

		fn(bt.ctx)
	}()
	return true
}

func (bt *BackgroundTasks) finish(key string) {
	bt.mu.Lock()
	defer bt.mu.Unlock()
	delete(bt.running, key)
}

// Running returns the number of tasks still in flight.
func (bt *BackgroundTasks) Running() int {
	bt.mu.Lock()
	defer bt.mu.Unlock()
	return len(bt.running)
}

// Shutdown cancels every task and waits up to timeout for them to return.
func (bt *BackgroundTasks) Shutdown(timeout time.Duration) error {
	bt.mu.Lock()
	slog.Info("Shutting down background tasks",
		slog.String("type", "sys"),
		slog.Int("task_count", len(bt.running)))
	bt.cancel()
	bt.mu.Unlock()

	done := make(chan struct{})
	go func() {
		bt.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		slog.Warn("Timeout waiting for background tasks to stop",
			slog.String("type", "sys"),
			slog.Duration("timeout", timeout))
		return context.DeadlineExceeded
	}
}
