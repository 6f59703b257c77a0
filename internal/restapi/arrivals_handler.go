package restapi

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"luastrack.ie/internal/models"
)

const (
	defaultArrivalsLimit = 3
	maxArrivalsLimit     = 20
)

// arrivalsHandler returns the next upcoming trams for a stop, read from the
// most recent stored poll.
func (api *RestAPI) arrivalsHandler(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	stopCode := params.ByName("stop")

	limit := defaultArrivalsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxArrivalsLimit {
			api.badRequestResponse(w, "limit must be an integer between 1 and 20")
			return
		}
		limit = parsed
	}

	snapshots, err := api.DB.LatestArrivals(r.Context(), stopCode, limit)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	if len(snapshots) == 0 {
		api.sendNotFound(w, "no forecast data available yet")
		return
	}

	arrivals := make([]models.Arrival, len(snapshots))
	for i, s := range snapshots {
		arrivals[i] = models.NewArrival(s.Destination, s.Direction, s.DueMinutes, s.DueAt)
	}

	data := models.NewArrivalsData(stopCode, snapshots[0].RecordedAt, arrivals)
	api.sendResponse(w, r, models.NewOKResponse(data))
}
