package now

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"
)

var Cmd = &cli.Command{
	Name:  "now",
	Usage: "Print the server's current time",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "server",
			Usage: "API address (e.g. http://localhost:3000)",
			Value: "http://localhost:3000",
		},
		&cli.StringFlag{
			Name:  "view",
			Usage: "one of: full, iso, unix, human, envelope",
			Value: "full",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "display pattern for the human view",
		},
		&cli.StringFlag{
			Name:  "id",
			Usage: "request id for the envelope view",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "per-request timeout",
			Value: 5 * time.Second,
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := newConfig(cmd)
		if err != nil {
			return err
		}
		return Run(ctx, cfg, cmd.Root().Writer)
	},
}
