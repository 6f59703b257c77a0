package app

import (
	"log/slog"

	"luastrack.ie/internal/appconf"
	"luastrack.ie/internal/tracker"
	"luastrack.ie/luasdb"
)

// Application holds the dependencies for our HTTP handlers, helpers, and
// middleware: configuration, the logger, the storage client the handlers read
// from, and the background tracker.
type Application struct {
	Config  appconf.Config
	Logger  *slog.Logger
	DB      *luasdb.Client
	Tracker *tracker.Manager
}
