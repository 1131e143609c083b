package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Env is the process environment understood by both front ends.
type Env struct {
	Port       string `env:"PORT" envDefault:"3000"`
	DateFormat string `env:"DATE_FORMAT"`
	Language   string `env:"LANGUAGE" envDefault:"zh-cn"`
	Debug      string `env:"DEBUG"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads Env from the process environment.
func Load() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}

// DebugEnabled reports whether DEBUG holds any non-empty value.
func (e Env) DebugEnabled() bool { return e.Debug != "" }

// ListenAddr turns PORT into a listen address. Values that already carry a
// colon (":8080", "127.0.0.1:3000") are used as is.
func ListenAddr(port string) string {
	if port == "" {
		port = "3000"
	}
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
