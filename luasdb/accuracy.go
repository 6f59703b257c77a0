package luasdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

func createAccuracyTable(tx *sql.Tx) error {
	return createTable(tx, "accuracy", `
		CREATE TABLE IF NOT EXISTS accuracy (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			stop_code TEXT NOT NULL,
			destination TEXT NOT NULL,
			direction TEXT NOT NULL,
			transition_type TEXT NOT NULL,
			forecast_minutes INTEGER NOT NULL,
			actual_minutes INTEGER NOT NULL,
			accuracy_delta INTEGER NOT NULL,
			detected_at INTEGER NOT NULL
		);`,
	)
}

// InsertAccuracy appends one accuracy record.
func (c *Client) InsertAccuracy(ctx context.Context, record AccuracyRecord) error {
	_, err := c.DB.ExecContext(ctx, `
		INSERT INTO accuracy (
			stop_code, destination, direction, transition_type,
			forecast_minutes, actual_minutes, accuracy_delta, detected_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`, record.StopCode, record.Destination, record.Direction, string(record.Transition),
		record.ForecastMinutes, record.ActualMinutes, record.AccuracyDelta,
		record.DetectedAt.Unix())
	if err != nil {
		return fmt.Errorf("error inserting accuracy record: %w", err)
	}

	return nil
}

// RecentAccuracy returns a group's accuracy records detected at or after the
// given time, newest first. Used by the detector's dedup check.
func (c *Client) RecentAccuracy(ctx context.Context, stopCode, destination, direction string, since time.Time) ([]AccuracyRecord, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT id, stop_code, destination, direction, transition_type,
			forecast_minutes, actual_minutes, accuracy_delta, detected_at
		FROM accuracy
		WHERE stop_code = ? AND destination = ? AND direction = ? AND detected_at >= ?
		ORDER BY detected_at DESC, id DESC;
	`, stopCode, destination, direction, since.Unix())
	if err != nil {
		return nil, fmt.Errorf("error querying recent accuracy: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	return scanAccuracyRecords(rows)
}

// AccuracySummary aggregates accuracy per group since the given time.
func (c *Client) AccuracySummary(ctx context.Context, stopCode string, since time.Time) ([]AccuracySummaryRow, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT destination, direction, COUNT(*),
			AVG(accuracy_delta), MIN(accuracy_delta), MAX(accuracy_delta)
		FROM accuracy
		WHERE stop_code = ? AND detected_at >= ?
		GROUP BY destination, direction
		ORDER BY destination, direction;
	`, stopCode, since.Unix())
	if err != nil {
		return nil, fmt.Errorf("error querying accuracy summary: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	var summary []AccuracySummaryRow
	for rows.Next() {
		var row AccuracySummaryRow
		err := rows.Scan(&row.Destination, &row.Direction, &row.Measurements,
			&row.AvgDelta, &row.MinDelta, &row.MaxDelta)
		if err != nil {
			return nil, fmt.Errorf("error scanning accuracy summary: %w", err)
		}
		summary = append(summary, row)
	}

	return summary, rows.Err()
}

func scanAccuracyRecords(rows *sql.Rows) ([]AccuracyRecord, error) {
	var records []AccuracyRecord
	for rows.Next() {
		var r AccuracyRecord
		var transition string
		var detectedAt int64
		err := rows.Scan(&r.ID, &r.StopCode, &r.Destination, &r.Direction, &transition,
			&r.ForecastMinutes, &r.ActualMinutes, &r.AccuracyDelta, &detectedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning accuracy record: %w", err)
		}
		r.Transition = TransitionType(transition)
		r.DetectedAt = time.Unix(detectedAt, 0).UTC()
		records = append(records, r)
	}

	return records, rows.Err()
}
