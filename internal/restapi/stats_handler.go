package restapi

import (
	"net/http"

	"luastrack.ie/internal/models"
)

// statsHandler reports totals for the tracked stop.
func (api *RestAPI) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := api.DB.SnapshotStats(r.Context(), api.Config.StopCode)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	data := models.NewStatsData(stats.TotalSnapshots, stats.LatestPoll)
	api.sendResponse(w, r, models.NewOKResponse(data))
}
