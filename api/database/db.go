package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

var db *sql.DB

// ErrNotInitialized is returned by Close before Initialize succeeded.
var ErrNotInitialized = errors.New("database not initialized")

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.New("empty database URL")
	}
	conn, err := sql.Open("postgres", withDisablePreparedStatements(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Payment lookups are short; a small pool is enough and plays well with PgBouncer.
	conn.SetMaxOpenConns(4)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(5 * time.Minute)
	return conn, nil
}

// Initialize opens the process-wide connection returned by GetDB.
func Initialize(ctx context.Context, dsn string) error {
	conn, err := Open(ctx, dsn)
	if err != nil {
		return err
	}
	db = conn
	return nil
}

// withDisablePreparedStatements appends disable_prepared_statements=true and binary_parameters=yes to the DSN if not present.
// This nudges lib/pq to avoid server-side prepared statements and binary mode, which can break with PgBouncer transaction pooling.
func withDisablePreparedStatements(dsn string) string {
	lower := strings.ToLower(dsn)
	if strings.Contains(lower, "disable_prepared_statements=") || strings.Contains(lower, "prefer_simple_protocol=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	extras := []string{"disable_prepared_statements=true"}
	if !strings.Contains(lower, "binary_parameters=") {
		extras = append(extras, "binary_parameters=yes")
	}
	return dsn + sep + strings.Join(extras, "&")
}

// GetDB returns the database connection
func GetDB() *sql.DB {
	return db
}

// Close closes the process-wide connection.
func Close() error {
	if db == nil {
		return ErrNotInitialized
	}
	err := db.Close()
	db = nil
	return err
}
