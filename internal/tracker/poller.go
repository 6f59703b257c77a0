package tracker

import (
	"context"
	"log/slog"
	"time"

	"luastrack.ie/internal/logging"
	"luastrack.ie/internal/luas"
	"luastrack.ie/luasdb"
)

func (m *Manager) pollPeriodically() {
	defer m.wg.Done()

	logger := m.logger.With(slog.String("component", "forecast_poller"))

	ticker := time.NewTicker(m.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), m.config.FetchTimeout)
			ctx = logging.WithLogger(ctx, logger)
			m.pollOnce(ctx, time.Now().UTC())
			cancel()
		case <-m.shutdownChan:
			logging.LogOperation(logger, "shutting_down_forecast_polling")
			return
		}
	}
}

// pollOnce runs one fetch -> parse -> store cycle. Any failure ends the cycle
// without writing a partial snapshot; the next tick retries from scratch.
func (m *Manager) pollOnce(ctx context.Context, pollTime time.Time) {
	logger := logging.FromContext(ctx)

	raw, err := m.feed.Fetch(ctx, m.config.StopCode)
	if err != nil {
		logging.LogError(logger, "error fetching forecast feed", err,
			slog.String("stop_code", m.config.StopCode))
		return
	}

	forecasts, err := luas.Parse(raw, pollTime)
	if err != nil {
		logging.LogError(logger, "error parsing forecast feed", err,
			slog.String("stop_code", m.config.StopCode),
			slog.Time("poll_time", pollTime))
		return
	}

	if len(forecasts) == 0 {
		logging.LogOperation(logger, "no_trams_forecast",
			slog.String("stop_code", m.config.StopCode))
		return
	}

	snapshots := make([]luasdb.Snapshot, len(forecasts))
	for i, f := range forecasts {
		snapshots[i] = luasdb.Snapshot{
			StopCode:    m.config.StopCode,
			Destination: f.Destination,
			Direction:   f.Direction,
			DueMinutes:  int64(f.DueMinutes),
			DueAt:       f.DueAt,
			RecordedAt:  pollTime,
		}
	}

	if err := m.db.InsertSnapshots(ctx, snapshots); err != nil {
		logging.LogError(logger, "error storing forecast snapshots", err,
			slog.String("stop_code", m.config.StopCode),
			slog.Time("poll_time", pollTime))
		return
	}

	logging.LogOperation(logger, "stored_forecast_snapshots",
		slog.String("stop_code", m.config.StopCode),
		slog.Int("count", len(snapshots)))
}
