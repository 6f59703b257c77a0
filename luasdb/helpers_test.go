package luasdb

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"luastrack.ie/internal/appconf"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := NewClient(NewConfig(":memory:", appconf.Test, false), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

// insertPoll stores one forecast row recorded at the given time.
func insertPoll(t *testing.T, client *Client, recordedAt time.Time, stop, destination, direction string, dueMinutes int64) {
	t.Helper()

	err := client.InsertSnapshots(context.Background(), []Snapshot{{
		StopCode:    stop,
		Destination: destination,
		Direction:   direction,
		DueMinutes:  dueMinutes,
		DueAt:       recordedAt.Add(time.Duration(dueMinutes) * time.Minute),
		RecordedAt:  recordedAt,
	}})
	require.NoError(t, err)
}
