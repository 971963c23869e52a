package handlers

import (
	"net/http"

	"github.com/modig-dev/insurance/internal/buildconfig"
)

type healthResponse struct {
	Status string `json:"status"`
	buildconfig.Info
}

// Health reports liveness with the build version. The service has no
// external dependency it cannot degrade around, so it is always ok.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildconfig.Current()})
}
