package restapi

import (
	"encoding/json"
	"net/http"
)

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	if err != nil {
		api.Logger.Error("failed to encode health response", "error", err)
	}
}
