package restapi

import (
	"net/http"
	"time"

	"luastrack.ie/internal/logging"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// requestLogging logs each request's method, path, status, and duration.
func (api *RestAPI) requestLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		logging.LogHTTPRequest(api.Logger, r.Method, r.URL.Path, rec.status,
			float64(time.Since(start).Microseconds())/1000.0)
	}
}
