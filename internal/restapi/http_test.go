package restapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"
	"luastrack.ie/internal/app"
	"luastrack.ie/internal/appconf"
	"luastrack.ie/internal/models"
	"luastrack.ie/luasdb"
)

// createTestApi creates a RestAPI backed by an in-memory database.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := luasdb.NewClient(luasdb.NewConfig(":memory:", appconf.Test, false), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	application := &app.Application{
		Config: appconf.Config{
			Env:      appconf.Test,
			StopCode: "cab",
		},
		Logger: logger,
		DB:     db,
	}

	return NewRestAPI(application)
}

// serveAndRetrieveEndpoint sets up a test server, makes a request to the
// specified endpoint, and returns the response and decoded envelope.
func serveAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()

	router := httprouter.New()
	api.SetRoutes(router)
	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint:errcheck

	var response models.ResponseModel
	err = json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	return resp, response
}

// seedSnapshots inserts one poll's worth of forecasts recorded at the given time.
func seedSnapshots(t *testing.T, api *RestAPI, recordedAt time.Time, snapshots ...luasdb.Snapshot) {
	t.Helper()

	for i := range snapshots {
		snapshots[i].StopCode = "cab"
		snapshots[i].RecordedAt = recordedAt
		snapshots[i].DueAt = recordedAt.Add(time.Duration(snapshots[i].DueMinutes) * time.Minute)
	}
	require.NoError(t, api.DB.InsertSnapshots(context.Background(), snapshots))
}

func dataAsMap(t *testing.T, response models.ResponseModel) map[string]interface{} {
	t.Helper()

	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok, "response data should be an object")
	return data
}
