package tame

import (
	"time"

	"github.com/tameorm/tame/connection"
	"github.com/tameorm/tame/logger"
	"github.com/tameorm/tame/schema"
)

// ConfigOption use functional option for tame Config.
type ConfigOption func(c *Config)

// WithNamingStrategy set schema namer.
func WithNamingStrategy(namer schema.Namer) ConfigOption {
	return func(c *Config) {
		c.NamingStrategy = namer
	}
}

// WithLogger set logger.
func WithLogger(logger logger.Interface) ConfigOption {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithNowFunc set now func.
func WithNowFunc(fn func() time.Time) ConfigOption {
	return func(c *Config) {
		c.NowFunc = fn
	}
}

// WithOpener set the function opening connection pools.
func WithOpener(open connection.Opener) ConfigOption {
	return func(c *Config) {
		c.Opener = open
	}
}
