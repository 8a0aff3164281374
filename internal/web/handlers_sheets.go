package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/axisogreen/leadcrm/internal/config"
)

// sheetInfo is one configured tab plus its current persisted lead count.
type sheetInfo struct {
	Name  string `json:"name"`
	GID   string `json:"gid"`
	Leads int    `json:"leads"`
}

func (s *Server) handleListSheets(w http.ResponseWriter, r *http.Request) {
	counts, err := s.service.SheetCounts(r.Context())
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	tabs := s.service.Tabs()
	out := make([]sheetInfo, len(tabs))
	for i, t := range tabs {
		out[i] = sheetInfo{Name: t.Name, GID: t.GID, Leads: counts[t.Name]}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddSheet(w http.ResponseWriter, r *http.Request) {
	var tab config.SheetTab
	if err := decodeJSON(r, &tab); err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	if err := s.service.AddTab(tab); err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusCreated, tab)
}

// handleRemoveSheet unregisters a tab and purges its imported leads.
func (s *Server) handleRemoveSheet(w http.ResponseWriter, r *http.Request) {
	purged, err := s.service.RemoveTab(r.Context(), chi.URLParam(r, "sheetName"))
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"purged": purged})
}
