package server

// DefaultMaxReqBodySize caps request bodies at 1 MiB.
const DefaultMaxReqBodySize int64 = 1 << 20

type Config struct {
	MaxReqBodySize int64
}

type Option func(*Config)

// WithMaxReqBodySize overrides the body cap; zero or negative disables it.
func WithMaxReqBodySize(size int64) Option {
	return func(c *Config) {
		c.MaxReqBodySize = size
	}
}
