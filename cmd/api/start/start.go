package start

import (
	"context"
	"fmt"
	"net"
	"runtime/debug"

	"github.com/rizesql/timeserver/internal/clock"
	"github.com/rizesql/timeserver/internal/o11y/logging"
	"github.com/rizesql/timeserver/internal/server"
	"github.com/rizesql/timeserver/internal/shutdown"
	"github.com/rizesql/timeserver/internal/timeapi"
)

func Run(ctx context.Context, cfg Config) error {
	logging.SetDebug(cfg.Debug)
	logger := logging.New()
	clk := clock.New()
	shutdowns := shutdown.New()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic",
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
	}()

	srv := server.New(logger)
	shutdowns.RegisterCtx(srv.Shutdown)

	timeapi.Register(srv, timeapi.NewPlatform(clk, logger, timeapi.DefaultConfig()))

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := srv.Listen(ctx, ln); err != nil {
			logger.Error("server stopped", "err", err)
			cancel()
		}
	}()

	logger.Info("HTTP time server running", "addr", ln.Addr().String())
	fmt.Printf("HTTP time server listening on %s\n", ln.Addr())

	if err := shutdowns.WaitForSignal(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("Server shutdown complete")
	return nil
}
