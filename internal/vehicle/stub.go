package vehicle

import (
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/go-chi/chi/v5"
	"github.com/modig-dev/insurance/internal/domain"
)

// StubHandler emulates the upstream vehicle service. Known registrations
// answer 200, registrations starting with "ERR" answer 500 and everything
// else answers 404.
func StubHandler(vehicles map[string]domain.Vehicle) http.Handler {
	r := chi.NewRouter()
	r.Get("/{registrationNumber}", func(w http.ResponseWriter, r *http.Request) {
		reg := chi.URLParam(r, "registrationNumber")

		w.Header().Set("Content-Type", "application/json")
		if strings.HasPrefix(reg, "ERR") {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "vehicle registry unavailable"})
			return
		}

		v, ok := vehicles[reg]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "vehicle not found"})
			return
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(v)
	})
	return r
}
