package models

import "time"

// AccuracyGroupSummary aggregates forecast accuracy for one
// destination/direction group. Delta values are actual minus forecast
// minutes: negative means trams arrived earlier than forecast.
type AccuracyGroupSummary struct {
	Destination       string  `json:"destination"`
	Direction         string  `json:"direction"`
	Measurements      int64   `json:"measurements"`
	AvgDeltaMinutes   float64 `json:"avgDeltaMinutes"`
	BestDeltaMinutes  int64   `json:"bestDeltaMinutes"`
	WorstDeltaMinutes int64   `json:"worstDeltaMinutes"`
}

// AccuracySummaryData is the payload for the accuracy-summary endpoint.
type AccuracySummaryData struct {
	StopCode    string                 `json:"stopCode"`
	PeriodHours int                    `json:"periodHours"`
	Groups      []AccuracyGroupSummary `json:"groups"`
}

func NewAccuracySummaryData(stopCode string, periodHours int, groups []AccuracyGroupSummary) AccuracySummaryData {
	if groups == nil {
		groups = []AccuracyGroupSummary{}
	}

	return AccuracySummaryData{
		StopCode:    stopCode,
		PeriodHours: periodHours,
		Groups:      groups,
	}
}

// StatsData is the payload for the stats endpoint.
type StatsData struct {
	TotalSnapshots int64  `json:"totalSnapshots"`
	LatestPoll     string `json:"latestPoll,omitempty"`
}

func NewStatsData(totalSnapshots int64, latestPoll time.Time) StatsData {
	data := StatsData{TotalSnapshots: totalSnapshots}
	if !latestPoll.IsZero() {
		data.LatestPoll = latestPoll.UTC().Format(time.RFC3339)
	}

	return data
}
