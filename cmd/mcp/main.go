package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rizesql/timeserver/cmd/mcp/serve"
	"github.com/rizesql/timeserver/cmd/mcp/start"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "mcp",
		Usage: "Current-time server on standard input and output",
		Commands: []*cli.Command{
			start.Cmd,
			serve.Cmd,
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
