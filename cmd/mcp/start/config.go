package start

import (
	"github.com/urfave/cli/v3"

	"github.com/rizesql/timeserver/internal/config"
	"github.com/rizesql/timeserver/internal/snapshot"
)

type Config struct {
	Snapshot snapshot.Config
	Debug    bool
}

// NewConfig reads LANGUAGE and DATE_FORMAT from the environment and lets the
// command's flags override them. An unusable format leaves the locale's own
// long pattern in place.
func NewConfig(cmd *cli.Command) (Config, error) {
	env, err := config.Load()
	if err != nil {
		return Config{}, err
	}

	lang, format := env.Language, env.DateFormat
	if cmd.IsSet("language") {
		lang = cmd.String("language")
	}
	if cmd.IsSet("format") {
		format = cmd.String("format")
	}

	return Config{
		Snapshot: snapshot.NewConfig(lang, format),
		Debug:    env.DebugEnabled(),
	}, nil
}
