package sqlite

import (
	"fmt"
	"strings"
)

// Config contains SQLite-specific connection options.
type Config struct {
	Path          string
	BusyTimeoutMs int
}

// DefaultBusyTimeoutMs is how long a connection waits on a locked database.
func DefaultBusyTimeoutMs() int {
	return 5000
}

// FromMap creates a Config from a generic config map.
// Accepts "path" or the legacy "database" key for the database file.
func FromMap(config map[string]any) (*Config, error) {
	cfg := &Config{
		BusyTimeoutMs: DefaultBusyTimeoutMs(),
	}

	if path, ok := config["path"].(string); ok && path != "" {
		cfg.Path = path
	} else if database, ok := config["database"].(string); ok && database != "" {
		cfg.Path = database
	} else {
		return nil, fmt.Errorf("path is required")
	}

	if timeout, ok := config["busy_timeout_ms"].(float64); ok { // JSON numbers are float64
		cfg.BusyTimeoutMs = int(timeout)
	} else if timeout, ok := config["busy_timeout_ms"].(int); ok {
		cfg.BusyTimeoutMs = timeout
	}

	return cfg, nil
}

// DSN returns the driver data source name with pragmas applied per connection.
func (c *Config) DSN() string {
	sep := "?"
	if strings.Contains(c.Path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=busy_timeout(%d)", c.Path, sep, c.BusyTimeoutMs)
}
