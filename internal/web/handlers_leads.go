package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/axisogreen/leadcrm/internal/core"
)

// handleListLeads returns leads, optionally filtered by sheet, status,
// assignee or a free-text search over name, phone, email and address.
func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := core.LeadFilter{
		Sheet:      q.Get("sheet"),
		Status:     q.Get("status"),
		AssignedTo: q.Get("assignedTo"),
		Search:     q.Get("q"),
	}

	leads, err := s.service.ListLeads(r.Context(), filter)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	if leads == nil {
		leads = []core.Lead{}
	}
	writeJSON(w, http.StatusOK, leads)
}

// handleCreateLead creates a manual lead from console input.
func (s *Server) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	var params core.ManualLeadParams
	if err := decodeJSON(r, &params); err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	lead := core.NewManualLead(params, time.Now().UTC())
	if err := s.service.CreateLead(r.Context(), lead); err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

func (s *Server) handleGetLead(w http.ResponseWriter, r *http.Request) {
	lead, err := s.service.GetLead(r.Context(), chi.URLParam(r, "leadID"))
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// handleUpdateLead applies a partial edit to a lead and returns the
// updated record.
func (s *Server) handleUpdateLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "leadID")

	var upd core.LeadUpdate
	if err := decodeJSON(r, &upd); err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	if err := s.service.UpdateLead(r.Context(), id, upd); err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	lead, err := s.service.GetLead(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (s *Server) handleDeleteLead(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteLead(r.Context(), chi.URLParam(r, "leadID")); err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAutoAssign distributes unassigned leads across active team
// members. An optional "sheet" query parameter limits the scope.
func (s *Server) handleAutoAssign(w http.ResponseWriter, r *http.Request) {
	assigned, err := s.service.AutoAssign(r.Context(), r.URL.Query().Get("sheet"))
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"assigned": assigned})
}
