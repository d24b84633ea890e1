package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/Alijeyrad/glycare/config"
)

// Driver names as registered with database/sql.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver string

	// Postgres
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	// SQLite
	Path string

	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
}

// DSN returns the driver-specific connection string.
func (c Config) DSN() string {
	if c.Driver == DriverSQLite {
		// Foreign keys and a busy timeout make concurrent handlers behave.
		return "file:" + c.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c Config) ConnMaxLifetime() time.Duration {
	if c.ConnMaxLifetimeMin <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.ConnMaxLifetimeMin) * time.Minute
}

// FromCentralConfig maps the store section. It reports false for the
// in-memory driver, which needs no database at all.
func FromCentralConfig(c config.StoreConfig) (Config, bool) {
	switch strings.ToLower(c.Driver) {
	case DriverPostgres:
		p := c.Postgres
		return Config{
			Driver:             DriverPostgres,
			Host:               p.Host,
			Port:               p.Port,
			User:               p.User,
			Password:           p.Password,
			DBName:             p.DBName,
			SSLMode:            p.SSLMode,
			MaxOpenConns:       p.Pool.MaxOpenConns,
			MaxIdleConns:       p.Pool.MaxIdleConns,
			ConnMaxLifetimeMin: p.Pool.ConnMaxLifetimeMin,
		}, true
	case DriverSQLite:
		// SQLite serializes writers; one connection avoids SQLITE_BUSY.
		return Config{Driver: DriverSQLite, Path: c.SQLite.Path, MaxOpenConns: 1}, true
	default:
		return Config{}, false
	}
}
