package config

import "time"

// Config is the root configuration for a tickerd instance.
type Config struct {
	Instance InstanceConfig `yaml:"instance"`
	Feed     FeedConfig     `yaml:"feed"`
	Poll     PollConfig     `yaml:"poll"`
	Server   ServerConfig   `yaml:"server"`
	History  HistoryConfig  `yaml:"history"`
}

// InstanceConfig identifies this tickerd instance.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// FeedConfig holds PreStocks feed settings.
type FeedConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// PollConfig holds refresh loop settings.
type PollConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// ServerConfig holds the HTTP/websocket server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// HistoryConfig holds the optional snapshot history recorder settings.
// When disabled, no database connection is made.
type HistoryConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Database DBConfig `yaml:"database"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}
