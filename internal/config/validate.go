package config

import "fmt"

// Validate checks that required fields are present and consistent.
// Call after applyDefaults so optional fields are already filled.
func (c *Config) Validate() error {
	if c.Instance.ID == "" {
		return fmt.Errorf("instance.id is required")
	}

	if c.Feed.URL == "" {
		return fmt.Errorf("feed.url is required")
	}
	if c.Feed.Timeout <= 0 {
		return fmt.Errorf("feed.timeout must be positive")
	}

	if c.Poll.Interval <= 0 {
		return fmt.Errorf("poll.interval must be positive")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port (%d) must be in 1-65535", c.Server.Port)
	}

	if c.History.Enabled {
		db := c.History.Database
		if db.Host == "" {
			return fmt.Errorf("history.database.host is required")
		}
		if db.Name == "" {
			return fmt.Errorf("history.database.name is required")
		}
		if db.User == "" {
			return fmt.Errorf("history.database.user is required")
		}
		if db.Password == "" {
			return fmt.Errorf("history.database.password is required")
		}
		if db.MinConns > db.MaxConns {
			return fmt.Errorf("history.database.min_conns (%d) cannot exceed max_conns (%d)", db.MinConns, db.MaxConns)
		}
	}

	return nil
}
