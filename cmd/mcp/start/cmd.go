package start

import (
	"context"

	"github.com/urfave/cli/v3"
)

// Flags are shared with the serve command.
var Flags = []cli.Flag{
	&cli.StringFlag{
		Name:  "language",
		Usage: "locale of the human fields; overrides LANGUAGE (default zh-cn)",
	},
	&cli.StringFlag{
		Name:  "format",
		Usage: "display pattern of the human field; overrides DATE_FORMAT",
	},
}

var Cmd = &cli.Command{
	Name:  "start",
	Usage: "Answer line-delimited JSON requests on stdin",
	Flags: Flags,
	Action: func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := NewConfig(cmd)
		if err != nil {
			return err
		}
		return Run(ctx, cfg)
	},
}
