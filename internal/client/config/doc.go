// Package config loads runtime configuration for the CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the sync server (empty disables sync)
//	-d string   path to the local SQLite database
//	-i int      online status check interval (seconds)
//	-e string   directory export archives are written to
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_url": "https://sync.example.com",
//	  "database_dsn": "promptstash.db",
//	  "online_check_interval": "3s",
//	  "export_dir": "."
//	}
//
// Primary API
//
//   - type Config                     — endpoint, database path, check interval, export dir
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
