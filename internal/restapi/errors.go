package restapi

import (
	"encoding/json"
	"net/http"

	"luastrack.ie/internal/models"
)

func (api *RestAPI) errorResponse(w http.ResponseWriter, status int, text string) {
	response := models.ResponseModel{
		Code:        status,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        text,
		Version:     2,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.Logger.Error("failed to encode error response", "error", err)
	}
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.Logger.Error("internal server error", "error", err, "path", r.URL.Path)
	api.errorResponse(w, http.StatusInternalServerError, "internal server error")
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, text string) {
	api.errorResponse(w, http.StatusNotFound, text)
}

func (api *RestAPI) badRequestResponse(w http.ResponseWriter, text string) {
	api.errorResponse(w, http.StatusBadRequest, text)
}
