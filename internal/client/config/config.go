package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the exchange client.
//
// Fields:
//   - APIBaseURL: base URL of the remote API, including the /api prefix.
//   - RequestTimeout: per-request timeout applied by the transport client.
//   - DatabasePath: SQLite file holding the persisted session token.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DatabasePath   string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3080/api"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "session.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
