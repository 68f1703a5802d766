package config

import "time"

// Config holds runtime settings for the LeaveDesk CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API.
//   - DatabasePath: path of the local sqlite database holding the session.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	ServerBaseURL  string
	DatabasePath   string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000/"
	c.DatabasePath = "leavedesk.db"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
