package now

import (
	"fmt"
	"slices"
	"time"

	"github.com/urfave/cli/v3"
)

var views = []string{"full", "iso", "unix", "human", "envelope"}

type Config struct {
	ServerUrl string
	View      string
	Format    string
	ID        string
	Timeout   time.Duration
}

func newConfig(cmd *cli.Command) (Config, error) {
	view := cmd.String("view")
	if !slices.Contains(views, view) {
		return Config{}, fmt.Errorf("unknown view %q, want one of %v", view, views)
	}

	return Config{
		ServerUrl: cmd.String("server"),
		View:      view,
		Format:    cmd.String("format"),
		ID:        cmd.String("id"),
		Timeout:   cmd.Duration("timeout"),
	}, nil
}
