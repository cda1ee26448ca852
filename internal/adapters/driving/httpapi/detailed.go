package httpapi

import (
	"net/http"

	"github.com/custodia-labs/drivegate/internal/core/ports/driving"
)

// NewDetailedHealthHandler serves GET /detailed-health. It runs on its own
// listener, separate from the gateway API.
func NewDetailedHealthHandler(svc driving.DetailedHealthService) (http.Handler, error) {
	if svc == nil {
		return nil, ErrMissingDetailedHealth
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /detailed-health", func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.DetailedHealth(r.Context())
		writeResult(w, r, result, err)
	})
	return withAccessLog(withCORS(mux)), nil
}
