package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/languagesphere/server/internal/webutil"
)

const healthPingTimeout = 2 * time.Second

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// handleHealth reports liveness and verifies database connectivity with a
// short ping so a wedged pool flips the check instead of hanging it.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Error(r.Context(), "health check db ping failed", "error", err)
		webutil.RespondWithJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:  "ERROR",
			Message: "Database connection failed",
		})
		return nil
	}

	webutil.RespondWithJSON(w, http.StatusOK, healthResponse{
		Status:  "OK",
		Message: "Server is running",
	})
	return nil
}
