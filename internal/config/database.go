package config

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"time"

	_ "modernc.org/sqlite"
)

// OpenDatabase opens the Navidrome SQLite database file for this session.
// The file must already exist: creating the database (and its schema) is
// Navidrome's job, and silently creating an empty file here would only hide
// a mistyped path until import time.
func OpenDatabase(ctx context.Context, config *Config) (*sql.DB, error) {
	if config.DBPath == "" {
		return nil, fmt.Errorf("database path is empty")
	}

	if _, err := os.Stat(config.DBPath); err != nil {
		return nil, fmt.Errorf("database file not found at %s: %w", config.DBPath, err)
	}

	// busy_timeout keeps short write bursts from failing while Navidrome
	// itself holds the write lock.
	dsn := fmt.Sprintf("file:%s?%s", config.DBPath, url.Values{
		"_pragma": []string{"busy_timeout(5000)", "foreign_keys(1)"},
	}.Encode())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; more connections just queue on the lock.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// CloseDatabase gracefully closes the database handle
func CloseDatabase(db *sql.DB) {
	if db != nil {
		db.Close()
	}
}
