package web

import (
	"net/http"
)

// handleSync runs a full sync across all configured sheet tabs and
// returns the per-sheet report. A sheet that fails is reported but does
// not fail the run, so the response is 200 as long as the run completed.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	report := s.service.SyncAll(r.Context(), "manual")
	writeJSON(w, http.StatusOK, report)
}
