package database

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type DB struct {
	conn *sql.DB
	cfg  Config
}

// Open connects with the configured driver and pings before returning.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	conn, err := sql.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime())

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{conn: conn, cfg: cfg}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Dialect is the ent SQL dialect matching the driver.
func (db *DB) Dialect() string {
	if db.cfg.Driver == DriverSQLite {
		return dialect.SQLite
	}
	return dialect.Postgres
}

func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}
