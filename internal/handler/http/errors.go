package http

import (
	"errors"
	"net/http"

	"github.com/OleksandrHridzhak/onda-sync/internal/utils"
	"github.com/OleksandrHridzhak/onda-sync/models"
)

var (
	// ErrInvalidSecretKey is the single rejection used for every
	// authentication failure. Missing, empty, and too-short keys all get
	// this same response so callers cannot probe which keys exist or
	// which shapes pass validation.
	ErrInvalidSecretKey = errors.New("invalid secret key")

	// ErrRateLimitExceeded is returned when a key runs over its request
	// quota for the current window.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// writeError sends the generic JSON failure body.
func writeError(w http.ResponseWriter, message string, statusCode int) {
	_, _ = utils.WriteJSON(w, models.ErrorResponse{Error: message}, statusCode)
}
