package restapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"luastrack.ie/internal/models"
)

const (
	defaultSummaryHours = 24
	maxSummaryHours     = 7 * 24
)

// accuracySummaryHandler returns per-group forecast accuracy aggregates for
// the last N hours.
func (api *RestAPI) accuracySummaryHandler(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	stopCode := params.ByName("stop")

	hours := defaultSummaryHours
	if raw := r.URL.Query().Get("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxSummaryHours {
			api.badRequestResponse(w, "hours must be an integer between 1 and 168")
			return
		}
		hours = parsed
	}

	since := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	rows, err := api.DB.AccuracySummary(r.Context(), stopCode, since)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	groups := make([]models.AccuracyGroupSummary, len(rows))
	for i, row := range rows {
		groups[i] = models.AccuracyGroupSummary{
			Destination:       row.Destination,
			Direction:         row.Direction,
			Measurements:      row.Measurements,
			AvgDeltaMinutes:   row.AvgDelta,
			BestDeltaMinutes:  row.MinDelta,
			WorstDeltaMinutes: row.MaxDelta,
		}
	}

	data := models.NewAccuracySummaryData(stopCode, hours, groups)
	api.sendResponse(w, r, models.NewOKResponse(data))
}
