package core

import (
	"context"
	"fmt"
)

// Metrics computes the dashboard aggregates in a single query. Site visit
// counting is a substring match because the vocabulary has several "Site
// Visit" variants with inconsistent casing in real sheets.
func (s *Service) Metrics(ctx context.Context) (DashboardMetrics, error) {
	var m DashboardMetrics
	err := s.pool.QueryRow(ctx, `
		SELECT
			count(*),
			COALESCE(sum(value), 0),
			count(*) FILTER (WHERE status = 'Quotation sent'),
			count(*) FILTER (WHERE status ILIKE '%site visit%'),
			count(*) FILTER (WHERE status = 'Advance payment'),
			count(*) FILTER (WHERE status ILIKE '%finished%')
		FROM leads`).
		Scan(&m.TotalLeads, &m.TotalValue, &m.QuotationsSent,
			&m.SiteVisits, &m.AdvancePayments, &m.WonLeads)
	if err != nil {
		return DashboardMetrics{}, fmt.Errorf("dashboard metrics: %w", err)
	}

	if m.TotalLeads > 0 {
		m.ConversionRate = float64(m.WonLeads) / float64(m.TotalLeads) * 100
	}
	return m, nil
}

// Kanban groups leads into the configured pipeline columns, in configured
// order. Leads whose status is not a pipeline stage do not appear.
func (s *Service) Kanban(ctx context.Context) ([]KanbanColumn, error) {
	statuses := s.KanbanStatuses()

	columns := make([]KanbanColumn, len(statuses))
	index := make(map[string]int, len(statuses))
	for i, st := range statuses {
		columns[i] = KanbanColumn{Status: st, Leads: []Lead{}}
		index[st] = i
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE status = ANY($1)
		 ORDER BY created_at DESC NULLS LAST, id`, statuses)
	if err != nil {
		return nil, fmt.Errorf("kanban: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan kanban lead: %w", err)
		}
		if i, ok := index[l.Status]; ok {
			columns[i].Leads = append(columns[i].Leads, l)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kanban: %w", err)
	}
	return columns, nil
}
