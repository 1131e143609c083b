package start

import (
	"context"

	"github.com/urfave/cli/v3"
)

var Cmd = &cli.Command{
	Name:  "start",
	Usage: "Start the HTTP server",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "port",
			Usage: "listen port or address; overrides PORT (default 3000)",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := newConfig(cmd)
		if err != nil {
			return err
		}
		return Run(ctx, cfg)
	},
}
