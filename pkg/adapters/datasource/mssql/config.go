package mssql

import (
	"fmt"
)

// Config contains SQL Server-specific connection options.
// Only SQL Server authentication (username/password) is supported.
type Config struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string

	// Connection options
	Encrypt                bool
	TrustServerCertificate bool
	ConnectionTimeout      int
}

// DefaultPort returns the default SQL Server port.
func DefaultPort() int {
	return 1433
}

// DefaultConnectionTimeout returns the default connection timeout in seconds.
func DefaultConnectionTimeout() int {
	return 30
}

// FromMap creates a Config from a generic config map.
func FromMap(config map[string]any) (*Config, error) {
	cfg := &Config{
		Port:              DefaultPort(),
		Encrypt:           true,
		ConnectionTimeout: DefaultConnectionTimeout(),
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

	if database, ok := config["database"].(string); ok && database != "" {
		cfg.Database = database
	} else {
		return nil, fmt.Errorf("database is required")
	}

	if username, ok := config["username"].(string); ok && username != "" {
		cfg.Username = username
	} else if user, ok := config["user"].(string); ok && user != "" {
		cfg.Username = user
	} else {
		return nil, fmt.Errorf("username is required for SQL authentication")
	}

	if password, ok := config["password"].(string); ok {
		cfg.Password = password
	}

	if encrypt, ok := config["encrypt"].(bool); ok {
		cfg.Encrypt = encrypt
	} else if encryptStr, ok := config["encrypt"].(string); ok {
		// Support string values: "true", "false", "strict"
		cfg.Encrypt = encryptStr == "true" || encryptStr == "strict"
	} else if sslMode, ok := config["ssl_mode"].(string); ok && sslMode != "" {
		cfg.Encrypt = sslMode != "disable"
	}

	if trust, ok := config["trust_server_certificate"].(bool); ok {
		cfg.TrustServerCertificate = trust
	}

	if timeout, ok := config["connection_timeout"].(float64); ok {
		cfg.ConnectionTimeout = int(timeout)
	} else if timeout, ok := config["connection_timeout"].(int); ok {
		cfg.ConnectionTimeout = timeout
	}

	return cfg, nil
}

// Validate checks if the config has all required fields.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Database == "" {
		return fmt.Errorf("database is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Username == "" {
		return fmt.Errorf("username is required for SQL authentication")
	}
	return nil
}
