package start

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rizesql/timeserver/internal/clock"
	"github.com/rizesql/timeserver/internal/o11y/logging"
	"github.com/rizesql/timeserver/internal/shutdown"
	"github.com/rizesql/timeserver/internal/stdio"
)

func Run(ctx context.Context, cfg Config) error {
	logging.SetDebug(cfg.Debug)
	logger := logging.New()
	shutdowns := shutdown.New()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic",
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
	}()

	adapter := stdio.New(stdio.Dependencies{
		In:     os.Stdin,
		Out:    os.Stdout,
		Diag:   os.Stderr,
		Clock:  clock.New(),
		Logger: logger,
	}, stdio.Config{Snapshot: cfg.Snapshot})

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	served := make(chan error, 1)
	go func() {
		served <- adapter.Serve(serveCtx)
		cancel()
	}()

	shutdowns.RegisterCtx(func(ctx context.Context) error {
		cancel()
		select {
		case err := <-served:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	logger.Debug("stdio server running", "state", adapter.State().String())

	if err := shutdowns.WaitForSignal(serveCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Debug("stdio server stopped", "state", adapter.State().String())
	return nil
}
