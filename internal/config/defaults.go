package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultFeedURL      = "https://prestocks.com"
	DefaultFeedTimeout  = 10 * time.Second
	DefaultPollInterval = 60 * time.Second
	DefaultServerPort   = 8080
	DefaultDBPort       = 5432
	DefaultDBSSLMode    = "prefer"
	DefaultMaxConns     = 4
	DefaultMinConns     = 1
)

func (c *Config) applyDefaults() {
	// Feed defaults
	if c.Feed.URL == "" {
		c.Feed.URL = DefaultFeedURL
	}
	if c.Feed.Timeout == 0 {
		c.Feed.Timeout = DefaultFeedTimeout
	}

	// Poll defaults
	if c.Poll.Interval == 0 {
		c.Poll.Interval = DefaultPollInterval
	}

	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}

	// Database defaults are applied even when history is disabled; they
	// are inert in that case.
	if c.History.Database.Port == 0 {
		c.History.Database.Port = DefaultDBPort
	}
	if c.History.Database.SSLMode == "" {
		c.History.Database.SSLMode = DefaultDBSSLMode
	}
	if c.History.Database.MaxConns == 0 {
		c.History.Database.MaxConns = DefaultMaxConns
	}
	if c.History.Database.MinConns == 0 {
		c.History.Database.MinConns = DefaultMinConns
	}
}
