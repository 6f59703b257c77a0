package tracker

import (
	"context"
	"log/slog"
	"math"
	"time"

	"luastrack.ie/internal/logging"
	"luastrack.ie/luasdb"
)

const (
	// historyWindow is how many recent polls per group the detector examines.
	historyWindow = 5
	// dedupWindow suppresses repeat detections of the same arrival across
	// overlapping detection ticks.
	dedupWindow = 2 * time.Minute
)

// Detector turns a group's time-ordered snapshot history into accuracy
// records by recognizing countdown transitions that mean a tram arrived.
//
// There is no per-vehicle identity upstream, so "the same tram" is
// approximated by the (destination, direction) group key: the minimum
// countdown trajectory of a group is treated as a single next-tram lane.
type Detector struct {
	db           *luasdb.Client
	stopCode     string
	pollInterval time.Duration
	maxPollGap   time.Duration
	window       int
	dedupWindow  time.Duration
}

func NewDetector(db *luasdb.Client, stopCode string, pollInterval time.Duration) *Detector {
	return &Detector{
		db:           db,
		stopCode:     stopCode,
		pollInterval: pollInterval,
		maxPollGap:   2 * pollInterval,
		window:       historyWindow,
		dedupWindow:  dedupWindow,
	}
}

// lookback bounds how far back the detector reads snapshot history: enough to
// cover the history window even when a poll or two was missed.
func (d *Detector) lookback() time.Duration {
	return time.Duration(d.window)*d.pollInterval + d.maxPollGap
}

// RunCycle examines every group seen recently at the stop and records any
// arrival transition found in its latest two polls. One group's bad data
// never aborts the cycle: the group is logged and skipped. Returns the number
// of accuracy records inserted.
func (d *Detector) RunCycle(ctx context.Context, now time.Time) int {
	logger := logging.FromContext(ctx)

	groups, err := d.db.GroupsSince(ctx, d.stopCode, now.Add(-d.lookback()))
	if err != nil {
		logging.LogError(logger, "error listing forecast groups", err,
			slog.String("stop_code", d.stopCode))
		return 0
	}

	inserted := 0
	for _, group := range groups {
		n, err := d.detectGroup(ctx, group, now)
		if err != nil {
			logging.LogError(logger, "error detecting arrivals for group", err,
				slog.String("stop_code", d.stopCode),
				slog.String("destination", group.Destination),
				slog.String("direction", group.Direction))
			continue
		}
		inserted += n
	}

	return inserted
}

func (d *Detector) detectGroup(ctx context.Context, group luasdb.GroupKey, now time.Time) (int, error) {
	history, err := d.db.SnapshotsForGroup(ctx, d.stopCode, group.Destination,
		group.Direction, now.Add(-d.lookback()), d.window)
	if err != nil {
		return 0, err
	}
	if len(history) < 2 {
		return 0, nil
	}

	curr := history[len(history)-1]
	prev := history[len(history)-2]

	// A gap wider than twice the poll cadence means polls were missed; any
	// countdown jump across it would be a false signal.
	if curr.RecordedAt.Sub(prev.RecordedAt) > d.maxPollGap {
		return 0, nil
	}

	transition, ok := classifyTransition(prev.DueMinutes, curr.DueMinutes)
	if !ok {
		return 0, nil
	}

	origin := forecastOrigin(history[:len(history)-1])
	forecast := origin.DueMinutes
	actual := int64(math.Round(curr.RecordedAt.Sub(origin.RecordedAt).Minutes()))

	recent, err := d.db.RecentAccuracy(ctx, d.stopCode, group.Destination,
		group.Direction, now.Add(-d.dedupWindow))
	if err != nil {
		return 0, err
	}
	if len(recent) > 0 {
		// Same arrival already recorded by an overlapping tick.
		return 0, nil
	}

	record := luasdb.AccuracyRecord{
		StopCode:        d.stopCode,
		Destination:     group.Destination,
		Direction:       group.Direction,
		Transition:      transition,
		ForecastMinutes: forecast,
		ActualMinutes:   actual,
		AccuracyDelta:   actual - forecast,
		DetectedAt:      now,
	}
	if err := d.db.InsertAccuracy(ctx, record); err != nil {
		return 0, err
	}

	return 1, nil
}

// classifyTransition reports whether a prev -> curr countdown change is an
// arrival signal. 1 -> 0 satisfies both the imminent and the standard
// pattern; the imminent one wins because it is the more specific signal.
// Everything else, including countdown increases (a new tram queued behind
// the tracked one), is ignored.
func classifyTransition(prev, curr int64) (luasdb.TransitionType, bool) {
	switch {
	case prev == 1 && curr == 0:
		return luasdb.TransitionTertiary, true
	case prev > 0 && curr == 0:
		return luasdb.TransitionPrimary, true
	case prev == 2 && curr == 1:
		return luasdb.TransitionSecondary, true
	}

	return "", false
}

// forecastOrigin walks backwards from the snapshot that preceded the
// transition through the non-increasing countdown run it belongs to, and
// returns the snapshot that first reported the tracked tram. A countdown
// increase going backwards in time marks the boundary with an earlier tram.
func forecastOrigin(history []luasdb.Snapshot) luasdb.Snapshot {
	origin := history[len(history)-1]
	for i := len(history) - 2; i >= 0; i-- {
		if history[i].DueMinutes < origin.DueMinutes {
			break
		}
		origin = history[i]
	}

	return origin
}
