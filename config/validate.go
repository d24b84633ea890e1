package config

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidConfig = errors.New("invalid configuration")

func (c *Config) Validate() error {
	switch strings.ToLower(c.Store.Driver) {
	case "", "memory":
	case "postgres":
		if c.Store.Postgres.Host == "" || c.Store.Postgres.DBName == "" {
			return fmt.Errorf("%w: store.postgres host and dbname are required", ErrInvalidConfig)
		}
	case "sqlite":
		if c.Store.SQLite.Path == "" {
			return fmt.Errorf("%w: store.sqlite.path is required", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store driver %q", ErrInvalidConfig, c.Store.Driver)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.Logging.Output.File.Enabled && c.Logging.Output.File.Path == "" {
		return fmt.Errorf("%w: logging.output.file.path is required when file output is enabled", ErrInvalidConfig)
	}
	if c.Logging.Output.Loki.Enabled && c.Logging.Output.Loki.Endpoint == "" {
		return fmt.Errorf("%w: logging.output.loki.endpoint is required when loki output is enabled", ErrInvalidConfig)
	}
	return nil
}
