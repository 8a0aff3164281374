package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/axisogreen/leadcrm/internal/core"
)

func (s *Server) handleListTeam(w http.ResponseWriter, r *http.Request) {
	team, err := s.service.ListSalesPersons(r.Context())
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	if team == nil {
		team = []core.SalesPerson{}
	}
	writeJSON(w, http.StatusOK, team)
}

func (s *Server) handleCreateSalesPerson(w http.ResponseWriter, r *http.Request) {
	var p core.SalesPerson
	if err := decodeJSON(r, &p); err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	created, err := s.service.CreateSalesPerson(r.Context(), p)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateSalesPerson(w http.ResponseWriter, r *http.Request) {
	var upd core.SalesPersonUpdate
	if err := decodeJSON(r, &upd); err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	if err := s.service.UpdateSalesPerson(r.Context(), chi.URLParam(r, "personID"), upd); err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteSalesPerson(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteSalesPerson(r.Context(), chi.URLParam(r, "personID")); err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
