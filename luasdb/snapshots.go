package luasdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"luastrack.ie/internal/logging"
)

func createSnapshotsTable(tx *sql.Tx) error {
	return createTable(tx, "snapshots", `
		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			stop_code TEXT NOT NULL,
			destination TEXT NOT NULL,
			direction TEXT NOT NULL,
			due_minutes INTEGER NOT NULL,
			due_at INTEGER NOT NULL,
			recorded_at INTEGER NOT NULL
		);`,
	)
}

// InsertSnapshots appends one poll's records in a single transaction. Either
// the whole snapshot is written or none of it is.
func (c *Client) InsertSnapshots(ctx context.Context, snapshots []Snapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "insert_snapshots")

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshots (
			stop_code, destination, direction, due_minutes, due_at, recorded_at
		) VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	for _, s := range snapshots {
		_, err := stmt.ExecContext(ctx,
			s.StopCode, s.Destination, s.Direction, s.DueMinutes,
			s.DueAt.Unix(), s.RecordedAt.Unix(),
		)
		if err != nil {
			return fmt.Errorf("error inserting snapshot: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

// SnapshotsForGroup returns up to limit of the most recent snapshots for a
// (destination, direction) group since the given time, ordered oldest first.
func (c *Client) SnapshotsForGroup(ctx context.Context, stopCode, destination, direction string, since time.Time, limit int) ([]Snapshot, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT id, stop_code, destination, direction, due_minutes, due_at, recorded_at
		FROM snapshots
		WHERE stop_code = ? AND destination = ? AND direction = ? AND recorded_at >= ?
		ORDER BY recorded_at DESC, id DESC
		LIMIT ?;
	`, stopCode, destination, direction, since.Unix(), limit)
	if err != nil {
		return nil, fmt.Errorf("error querying snapshots: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	snapshots, err := scanSnapshots(rows)
	if err != nil {
		return nil, err
	}

	// The query returns newest first so LIMIT keeps the tail of the history;
	// callers want it oldest first.
	for i, j := 0, len(snapshots)-1; i < j; i, j = i+1, j-1 {
		snapshots[i], snapshots[j] = snapshots[j], snapshots[i]
	}

	return snapshots, nil
}

// GroupsSince returns the distinct (destination, direction) groups observed at
// a stop since the given time.
func (c *Client) GroupsSince(ctx context.Context, stopCode string, since time.Time) ([]GroupKey, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT DISTINCT destination, direction
		FROM snapshots
		WHERE stop_code = ? AND recorded_at >= ?
		ORDER BY destination, direction;
	`, stopCode, since.Unix())
	if err != nil {
		return nil, fmt.Errorf("error querying groups: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	var groups []GroupKey
	for rows.Next() {
		var g GroupKey
		if err := rows.Scan(&g.Destination, &g.Direction); err != nil {
			return nil, fmt.Errorf("error scanning group: %w", err)
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}

// LatestArrivals returns the records of the most recent poll for a stop,
// soonest arrival first.
func (c *Client) LatestArrivals(ctx context.Context, stopCode string, limit int) ([]Snapshot, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT id, stop_code, destination, direction, due_minutes, due_at, recorded_at
		FROM snapshots
		WHERE stop_code = ?
			AND recorded_at = (SELECT MAX(recorded_at) FROM snapshots WHERE stop_code = ?)
		ORDER BY due_minutes, id
		LIMIT ?;
	`, stopCode, stopCode, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying latest arrivals: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	return scanSnapshots(rows)
}

// SnapshotStats reports the total snapshot count and the latest poll time for
// a stop.
func (c *Client) SnapshotStats(ctx context.Context, stopCode string) (Stats, error) {
	var stats Stats
	var latest sql.NullInt64

	err := c.DB.QueryRowContext(ctx, `
		SELECT COUNT(*), MAX(recorded_at) FROM snapshots WHERE stop_code = ?;
	`, stopCode).Scan(&stats.TotalSnapshots, &latest)
	if err != nil {
		return Stats{}, fmt.Errorf("error querying snapshot stats: %w", err)
	}

	if latest.Valid {
		stats.LatestPoll = time.Unix(latest.Int64, 0).UTC()
	}

	return stats, nil
}

func scanSnapshots(rows *sql.Rows) ([]Snapshot, error) {
	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		var dueAt, recordedAt int64
		err := rows.Scan(&s.ID, &s.StopCode, &s.Destination, &s.Direction,
			&s.DueMinutes, &dueAt, &recordedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning snapshot: %w", err)
		}
		s.DueAt = time.Unix(dueAt, 0).UTC()
		s.RecordedAt = time.Unix(recordedAt, 0).UTC()
		snapshots = append(snapshots, s)
	}

	return snapshots, rows.Err()
}
