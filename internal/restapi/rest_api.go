// Package restapi exposes the read-only HTTP API over the snapshot and
// accuracy stores. Handlers never write; the background tracker is the only
// writer.
package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"luastrack.ie/internal/app"
)

type RestAPI struct {
	*app.Application
}

// NewRestAPI creates a new RestAPI instance
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{Application: app}
}

// SetRoutes registers all API routes on the router.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/v1/arrivals/:stop", api.requestLogging(api.arrivalsHandler))
	router.HandlerFunc(http.MethodGet, "/v1/accuracy/:stop/summary", api.requestLogging(api.accuracySummaryHandler))
	router.HandlerFunc(http.MethodGet, "/v1/stats", api.requestLogging(api.statsHandler))
	router.HandlerFunc(http.MethodGet, "/v1/health", api.healthHandler)
}
