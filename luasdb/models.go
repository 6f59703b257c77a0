package luasdb

import "time"

// Snapshot is one tram forecast captured at a single poll of the feed.
// Snapshots are immutable once written.
type Snapshot struct {
	ID          int64
	StopCode    string // e.g. "cab" for Cabra
	Destination string
	Direction   string // "Inbound" or "Outbound"
	DueMinutes  int64  // minutes until forecast arrival at poll time
	DueAt       time.Time
	RecordedAt  time.Time // when the feed was polled
}

// TransitionType classifies the countdown transition that signalled an arrival.
type TransitionType string

const (
	// TransitionPrimary is the standard arrival signal: a countdown of two or
	// more minutes dropping straight to zero.
	TransitionPrimary TransitionType = "primary"
	// TransitionSecondary is a near-arrival signal (2 -> 1), lower precision.
	TransitionSecondary TransitionType = "secondary"
	// TransitionTertiary is the imminent-arrival signal (1 -> 0), the most
	// precise short-horizon check.
	TransitionTertiary TransitionType = "tertiary"
)

// AccuracyRecord compares an original forecast against the observed arrival.
// AccuracyDelta is actual minus forecast: negative means the tram came early.
type AccuracyRecord struct {
	ID              int64
	StopCode        string
	Destination     string
	Direction       string
	Transition      TransitionType
	ForecastMinutes int64
	ActualMinutes   int64
	AccuracyDelta   int64
	DetectedAt      time.Time
}

// GroupKey identifies the unit of independent accuracy tracking. Different
// destination/direction pairs have independent arrival cycles.
type GroupKey struct {
	Destination string
	Direction   string
}

// AccuracySummaryRow is one group's aggregated accuracy over a period.
type AccuracySummaryRow struct {
	Destination  string
	Direction    string
	Measurements int64
	AvgDelta     float64
	MinDelta     int64
	MaxDelta     int64
}

// Stats describes the overall snapshot table.
type Stats struct {
	TotalSnapshots int64
	LatestPoll     time.Time // zero when no polls have been stored yet
}
