package app

import (
	"context"

	"github.com/shashiranjanraj/catalog/internal/server"
	"github.com/shashiranjanraj/catalog/pkg/logger"
)

// Run starts the background tasks, serves HTTP on addr until ctx ends,
// drains in-flight requests, then runs the shutdown hooks.
func (a *Application) Run(ctx context.Context, addr string) error {
	handler, pool := a.Handler()

	bgCtx, stop := context.WithCancel(ctx)
	defer stop()
	for _, fn := range a.background {
		fn(bgCtx)
	}

	err := server.Serve(ctx, addr, handler)

	stop()
	pool.Shutdown()
	for _, fn := range a.shutdown {
		fn()
	}
	logger.Info("application stopped")
	return err
}
