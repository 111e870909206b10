package handlers

import (
	"net/http"

	"github.com/ozgurk/ledgerlens/pkg/database"
	"github.com/ozgurk/ledgerlens/pkg/logger"
)

// HealthHandler reports service and backing-store health.
type HealthHandler struct {
	db     *database.DB
	logger *logger.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *database.DB, log *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: log}
}

// GetHealth returns server health plus database pool statistics.
// GET /health
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	status, err := h.db.HealthCheck(r.Context())
	if err != nil {
		h.logger.WithError(err).Warn("Health check failed")
		respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":   "degraded",
			"service":  "ledgerlens-api",
			"database": status,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"service":  "ledgerlens-api",
		"database": status,
	})
}
