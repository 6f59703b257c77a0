// Package luasdb stores forecast snapshots and the accuracy records derived
// from them. Both tables are append-only: rows are inserted and read, never
// updated, so retried writes cannot corrupt existing data.
package luasdb

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Client is the main entry point for the storage layer
type Client struct {
	config Config
	DB     *sql.DB
	logger *slog.Logger
}

// NewClient creates a new Client with the provided configuration and ensures
// the schema exists.
func NewClient(config Config, logger *slog.Logger) (*Client, error) {
	db, err := createDB(config)
	if err != nil {
		return nil, fmt.Errorf("unable to create database: %w", err)
	}

	if config.verbose {
		logger.Info("successfully created tables", slog.String("path", config.DBPath))
	}

	return &Client{
		config: config,
		DB:     db,
		logger: logger,
	}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}
