package start

import (
	"github.com/urfave/cli/v3"

	"github.com/rizesql/timeserver/internal/config"
)

type Config struct {
	Addr  string
	Debug bool
}

func newConfig(cmd *cli.Command) (Config, error) {
	env, err := config.Load()
	if err != nil {
		return Config{}, err
	}

	port := env.Port
	if cmd.IsSet("port") {
		port = cmd.String("port")
	}

	return Config{
		Addr:  config.ListenAddr(port),
		Debug: env.DebugEnabled(),
	}, nil
}
