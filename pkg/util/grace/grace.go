package grace

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// NewGracefulContext returns context cancelled by SIGINT, SIGTERM or SIGHUP.
// Received signal is logged.
func NewGracefulContext(l *zap.Logger) context.Context {
	return newGracefulContext(l, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
}

func newGracefulContext(l *zap.Logger, sigs ...os.Signal) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	go func() {
		sig := <-ch
		signal.Stop(ch)
		l.Info("received signal", zap.Stringer("signal", sig))
		cancel()
	}()

	return ctx
}
