package config

import "time"

// Config holds runtime settings for the Resume Book console.
//
// Fields:
//   - APIBase: base URL of the backend API, without a trailing slash.
//   - DownloadDir: directory résumé files are saved to.
//   - SessionDB: path of the local SQLite file that keeps the token.
//   - RequestTimeout: per-request HTTP timeout.
//   - ResizeInterval: how often the terminal width is polled.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBase        string
	DownloadDir    string
	SessionDB      string
	RequestTimeout time.Duration
	ResizeInterval time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBase = "http://localhost:8080"
	c.DownloadDir = "downloads"
	c.SessionDB = "resumebook.db"
	c.RequestTimeout = 30 * time.Second
	c.ResizeInterval = 250 * time.Millisecond
	c.LogLevel = "info"
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
