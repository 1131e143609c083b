package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rizesql/timeserver/cmd/client/now"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "client",
		Usage: "Query a running HTTP time server",
		Commands: []*cli.Command{
			now.Cmd,
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
