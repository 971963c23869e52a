package handlers

import (
	"net/http"

	json "github.com/goccy/go-json"
)

type errorResponse struct {
	Error string `json:"error"`
	Path  string `json:"path"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError echoes the request path next to the message.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Path: r.URL.Path})
}
