package mysql

import "fmt"

// Config contains MySQL-specific connection options.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	TLS      string // "false", "true", "skip-verify", "preferred"
}

// DefaultPort returns the default MySQL port.
func DefaultPort() int {
	return 3306
}

// FromMap creates a Config from a generic config map.
// ssl_mode uses the postgres vocabulary and is translated to the driver's tls values.
func FromMap(config map[string]any) (*Config, error) {
	cfg := &Config{
		Port: DefaultPort(),
		TLS:  "preferred",
	}

	if host, ok := config["host"].(string); ok && host != "" {
		cfg.Host = host
	} else {
		return nil, fmt.Errorf("host is required")
	}

	if port, ok := config["port"].(float64); ok { // JSON numbers are float64
		cfg.Port = int(port)
	} else if port, ok := config["port"].(int); ok && port > 0 {
		cfg.Port = port
	}

	if user, ok := config["user"].(string); ok && user != "" {
		cfg.User = user
	} else {
		return nil, fmt.Errorf("user is required")
	}

	if password, ok := config["password"].(string); ok {
		cfg.Password = password
	}

	if database, ok := config["database"].(string); ok && database != "" {
		cfg.Database = database
	} else {
		return nil, fmt.Errorf("database is required")
	}

	if sslMode, ok := config["ssl_mode"].(string); ok && sslMode != "" {
		cfg.TLS = tlsFromSSLMode(sslMode)
	}

	return cfg, nil
}

func tlsFromSSLMode(sslMode string) string {
	switch sslMode {
	case "disable":
		return "false"
	case "require":
		return "skip-verify"
	case "verify-ca", "verify-full":
		return "true"
	default:
		return "preferred"
	}
}
