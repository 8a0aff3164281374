package web

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/axisogreen/leadcrm/internal/core"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	m, err := s.service.Metrics(r.Context())
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleKanban(w http.ResponseWriter, r *http.Request) {
	columns, err := s.service.Kanban(r.Context())
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, columns)
}

// handleStatuses returns the configured status vocabulary so the console
// can populate its dropdowns without hardcoding the list.
func (s *Server) handleStatuses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"statuses": s.service.Statuses(),
		"kanban":   s.service.KanbanStatuses(),
	})
}

var exportHeader = []string{
	"ID", "Sheet", "Property Type", "Avg Bill", "Name", "Phone", "Email",
	"Address", "Post Code", "Status", "Value", "Assigned To",
	"Next Reminder", "Created At",
}

// handleExport streams all leads (optionally one sheet) as a CSV download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	leads, err := s.service.ListLeads(r.Context(), core.LeadFilter{
		Sheet: r.URL.Query().Get("sheet"),
	})
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	filename := fmt.Sprintf("leads-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	cw := csv.NewWriter(w)
	_ = cw.Write(exportHeader)
	for _, l := range leads {
		_ = cw.Write([]string{
			l.ID, l.SheetName, l.PropertyType, l.AvgBill, l.Name, l.Phone,
			l.Email, l.Address, l.PostCode, l.Status,
			strconv.FormatFloat(l.Value, 'f', -1, 64),
			l.AssignedTo, l.NextReminder,
			l.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	cw.Flush()
}
