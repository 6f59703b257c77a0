package luasdb

import (
	"database/sql"
	"fmt"

	"luastrack.ie/internal/appconf"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// createDB opens the SQLite database and creates the snapshot and accuracy
// tables if they don't exist.
func createDB(config Config) (*sql.DB, error) {
	if config.Env == appconf.Test && config.DBPath != ":memory:" {
		return nil, fmt.Errorf("test databases must use :memory:, got %s", config.DBPath)
	}

	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// A single connection serializes writes and keeps :memory: databases from
	// splitting across pool connections.
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		return nil, fmt.Errorf("error setting busy timeout: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	if err := createTables(tx); err != nil {
		tx.Rollback() // nolint:errcheck
		return nil, err
	}

	_, err = tx.Exec(`
		CREATE INDEX IF NOT EXISTS idx_snapshots_group_time
			ON snapshots(stop_code, destination, direction, recorded_at);
		CREATE INDEX IF NOT EXISTS idx_snapshots_recorded_at ON snapshots(recorded_at);
		CREATE INDEX IF NOT EXISTS idx_accuracy_group_time
			ON accuracy(stop_code, destination, direction, detected_at);
	`)
	if err != nil {
		tx.Rollback() // nolint:errcheck
		return nil, fmt.Errorf("error creating indexes: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}

	return db, nil
}

func createTables(tx *sql.Tx) error {
	if err := createSnapshotsTable(tx); err != nil {
		return err
	}
	return createAccuracyTable(tx)
}

// createTable creates a table in the database
func createTable(tx *sql.Tx, tableName string, createStmt string) error {
	if _, err := tx.Exec(createStmt); err != nil {
		return fmt.Errorf("error creating table %s: %w", tableName, err)
	}
	return nil
}
