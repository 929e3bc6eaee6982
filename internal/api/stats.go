package api

import (
	"fmt"
	"net/http"
)

// handleDashboard handles GET /stats/dashboard
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, owner, requestID string) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	stats, err := s.analytics.ComputeDashboard(ctx, owner)
	if err != nil {
		s.logger.Error("dashboard_failed", requestID,
			fmt.Sprintf("Failed to compute dashboard for owner %s", owner), err)
		writeError(w, err, requestID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"stats": stats})
}
