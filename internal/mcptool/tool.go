// Package mcptool exposes the time snapshot as a Model Context Protocol tool.
package mcptool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rizesql/timeserver/internal/clock"
	"github.com/rizesql/timeserver/internal/o11y/logging"
	"github.com/rizesql/timeserver/internal/o11y/metrics"
	"github.com/rizesql/timeserver/internal/snapshot"
)

const (
	serverName    = "timeserver"
	serverVersion = "1.0.0"

	// ToolName is the name clients call.
	ToolName = "get_current_time"
)

// Input is the argument object of the tool. Empty fields fall back to the
// server's configured defaults.
type Input struct {
	Language string `json:"language,omitempty" jsonschema:"locale such as zh-cn or en"`
	Format   string `json:"format,omitempty" jsonschema:"moment-style display pattern for the human field"`
}

type Server struct {
	mcp    *mcp.Server
	clock  clock.Clock
	logger *logging.Logger
	cfg    snapshot.Config
}

// New builds a server with the time tool registered. cfg supplies the locale
// and pattern used when a call leaves them out.
func New(clk clock.Clock, logger *logging.Logger, cfg snapshot.Config) *Server {
	s := &Server{
		mcp:    mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil),
		clock:  clk,
		logger: logger,
		cfg:    cfg,
	}

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolName,
		Description: "Return the current time in ISO 8601, Unix seconds, localized human form and calendar details.",
	}, s.currentTime)

	return s
}

func (s *Server) currentTime(ctx context.Context, req *mcp.CallToolRequest, in Input) (*mcp.CallToolResult, snapshot.Snapshot, error) {
	cfg := s.cfg
	if in.Language != "" {
		cfg.Locale = snapshot.ResolveLocale(in.Language)
	}
	cfg = cfg.WithPattern(in.Format)

	snap := snapshot.Take(s.clock, cfg)
	metrics.ObserveSnapshot("mcp")
	s.logger.Debug("served tool call", "tool", ToolName, "language", in.Language, "format", in.Format)

	return nil, snap, nil
}

// Run serves the protocol on t until ctx is done or the peer disconnects.
func (s *Server) Run(ctx context.Context, t mcp.Transport) error {
	return s.mcp.Run(ctx, t)
}

// RunStdio serves on the process's standard input and output.
func (s *Server) RunStdio(ctx context.Context) error {
	return s.Run(ctx, &mcp.StdioTransport{})
}
