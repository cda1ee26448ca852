// Package httpapi serves the gateway over HTTP and websockets.
// Each route maps one capability onto the drive service and returns the
// normalised payload verbatim.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/custodia-labs/drivegate/internal/core/domain"
	"github.com/custodia-labs/drivegate/internal/logger"
)

var (
	// ErrMissingDriveService is returned when the drive service is not provided.
	ErrMissingDriveService = errors.New("httpapi: drive service is required")

	// ErrMissingStreamPublisher is returned when the stream publisher is not provided.
	ErrMissingStreamPublisher = errors.New("httpapi: stream publisher is required")

	// ErrMissingDetailedHealth is returned when the detailed-health service is not provided.
	ErrMissingDetailedHealth = errors.New("httpapi: detailed health service is required")
)

// errorBody is the response of every failed request.
type errorBody struct {
	Detail string `json:"detail"`
}

// writeError maps validation failures to 422 and everything else to 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if domain.IsValidation(err) {
		status = http.StatusUnprocessableEntity
	} else {
		logger.Warn("%s %s failed: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, errorBody{Detail: err.Error()})
}
