package serve

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/urfave/cli/v3"

	"github.com/rizesql/timeserver/cmd/mcp/start"
	"github.com/rizesql/timeserver/internal/clock"
	"github.com/rizesql/timeserver/internal/mcptool"
	"github.com/rizesql/timeserver/internal/o11y/logging"
	"github.com/rizesql/timeserver/internal/shutdown"
)

var Cmd = &cli.Command{
	Name:  "serve",
	Usage: "Serve the get_current_time tool over the Model Context Protocol",
	Flags: start.Flags,
	Action: func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := start.NewConfig(cmd)
		if err != nil {
			return err
		}
		return Run(ctx, cfg)
	},
}

func Run(ctx context.Context, cfg start.Config) error {
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

	srv := mcptool.New(clock.New(), logger, cfg.Snapshot)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ran := make(chan error, 1)
	go func() {
		ran <- srv.RunStdio(runCtx)
		cancel()
	}()

	shutdowns.RegisterCtx(func(ctx context.Context) error {
		cancel()
		select {
		case err := <-ran:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	logger.Info("MCP tool server running", "tool", mcptool.ToolName)

	if err := shutdowns.WaitForSignal(runCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
