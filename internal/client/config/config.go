package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - ServerEndpointURL: base URL of the remote replica. Empty disables
//     synchronization entirely; the client runs local-only.
//   - DatabaseDSN: path of the local SQLite database.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - ExportDir: directory export archives are written to.
type Config struct {
	ServerEndpointURL   string
	DatabaseDSN         string
	OnlineCheckInterval time.Duration
	ExportDir           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointURL = ""
	c.DatabaseDSN = "promptstash.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.ExportDir = "."
}

// SyncEnabled reports whether a remote endpoint is configured.
func (c *Config) SyncEnabled() bool {
	return c.ServerEndpointURL != ""
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
