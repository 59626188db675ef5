package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// WithSignals returns a context cancelled on SIGINT or SIGTERM.
func WithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(ch)
		select {
		case <-ctx.Done():
			return
		case <-ch:
			cancel()
		}
	}()

	return ctx, cancel
}

// Graceful waits for ctx to end, then calls stop with a fresh context bounded
// by timeout.
func Graceful(ctx context.Context, timeout time.Duration, stop func(context.Context) error) error {
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return stop(stopCtx)
}
