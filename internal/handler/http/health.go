package http

import (
	"net/http"

	"github.com/OleksandrHridzhak/onda-sync/internal/utils"
)

// getHealth reports service and storage liveness. It always answers 200:
// a degraded storage backend is reported in the body, not as an HTTP
// failure, so external probes can tell "server down" from "database
// down".
func (h *Handler) getHealth(w http.ResponseWriter, r *http.Request) {
	report := h.services.HealthService.Check(r.Context())
	_, _ = utils.WriteJSON(w, report, http.StatusOK)
}
