package luasdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertAccuracy(t *testing.T, client *Client, detectedAt time.Time, destination, direction string, forecast, actual int64) {
	t.Helper()

	err := client.InsertAccuracy(context.Background(), AccuracyRecord{
		StopCode:        "cab",
		Destination:     destination,
		Direction:       direction,
		Transition:      TransitionPrimary,
		ForecastMinutes: forecast,
		ActualMinutes:   actual,
		AccuracyDelta:   actual - forecast,
		DetectedAt:      detectedAt,
	})
	require.NoError(t, err)
}

func TestRecentAccuracyWindow(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	insertAccuracy(t, client, base.Add(-10*time.Minute), "Broombridge", "Inbound", 5, 6)
	insertAccuracy(t, client, base.Add(-time.Minute), "Broombridge", "Inbound", 3, 3)
	insertAccuracy(t, client, base.Add(-time.Minute), "Sandyford", "Outbound", 4, 4)

	records, err := client.RecentAccuracy(ctx, "cab", "Broombridge", "Inbound", base.Add(-2*time.Minute))
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, int64(3), records[0].ForecastMinutes)
	assert.Equal(t, TransitionPrimary, records[0].Transition)
	assert.Equal(t, base.Add(-time.Minute), records[0].DetectedAt)
}

func TestAccuracySummaryAggregatesPerGroup(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	insertAccuracy(t, client, base, "Broombridge", "Inbound", 5, 4)  // delta -1
	insertAccuracy(t, client, base, "Broombridge", "Inbound", 5, 8)  // delta +3
	insertAccuracy(t, client, base, "Sandyford", "Outbound", 10, 10) // delta 0

	summary, err := client.AccuracySummary(ctx, "cab", base.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, summary, 2)

	broombridge := summary[0]
	assert.Equal(t, "Broombridge", broombridge.Destination)
	assert.Equal(t, int64(2), broombridge.Measurements)
	assert.InDelta(t, 1.0, broombridge.AvgDelta, 0.001)
	assert.Equal(t, int64(-1), broombridge.MinDelta)
	assert.Equal(t, int64(3), broombridge.MaxDelta)

	sandyford := summary[1]
	assert.Equal(t, "Sandyford", sandyford.Destination)
	assert.Equal(t, int64(1), sandyford.Measurements)
	assert.Zero(t, sandyford.MinDelta)
}

func TestAccuracySummaryExcludesOldRecords(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	insertAccuracy(t, client, base.Add(-48*time.Hour), "Broombridge", "Inbound", 5, 6)

	summary, err := client.AccuracySummary(ctx, "cab", base.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, summary)
}
