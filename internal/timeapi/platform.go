package timeapi

import (
	"github.com/rizesql/timeserver/internal/clock"
	"github.com/rizesql/timeserver/internal/o11y/logging"
	"github.com/rizesql/timeserver/internal/snapshot"
)

// DefaultPattern is the display pattern of the HTTP routes. It does not follow
// DATE_FORMAT; the HTTP front end has its own fixed defaults.
const DefaultPattern = "YYYY年MM月DD日 HH:mm:ss"

type Config struct {
	Snapshot snapshot.Config
}

func DefaultConfig() Config {
	return Config{
		Snapshot: snapshot.Config{Locale: snapshot.Chinese, Pattern: DefaultPattern},
	}
}

type Platform struct {
	Clock  clock.Clock
	Logger *logging.Logger
	Config Config
}

func NewPlatform(clk clock.Clock, logger *logging.Logger, cfg Config) *Platform {
	return &Platform{
		Clock:  clk,
		Logger: logger,
		Config: cfg,
	}
}

func (p *Platform) take(cfg snapshot.Config) snapshot.Snapshot {
	return snapshot.Take(p.Clock, cfg)
}
