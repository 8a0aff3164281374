// Package core implements the lead import pipeline and the persistence
// layer behind it: tokenizing spreadsheet CSV exports, resolving columns,
// building lead records, merging them against CRM-owned state, and storing
// the result in PostgreSQL.
package core

import "time"

// Defaults applied while building a lead from a spreadsheet row.
const (
	// DefaultPropertyType is used when the property type column is empty.
	DefaultPropertyType = "Individual House"

	// DefaultStatus is assigned to rows without a status cell.
	DefaultStatus = "New"

	// DefaultCompany fills the company field; the sheet export has no
	// company column.
	DefaultCompany = "N/A"

	// BillMultiplier converts an average monthly bill into an estimated
	// project value.
	BillMultiplier = 50

	// DefaultEstimatedValue is used when no usable bill amount is present.
	DefaultEstimatedValue = 50000
)

// Activity entry types.
const (
	ActivityStatusChange = "status_change"
	ActivityNoteUpdate   = "note_update"
	ActivityAssignment   = "assignment"
	ActivityReminder     = "reminder"
)

// Authors recorded on synthesized notes and activity entries.
const (
	ImportAuthor = "Import"
	SystemAuthor = "System"
)

// Lead is one sales lead, either imported from a sheet export or created
// manually. The ID is deterministic for imported leads (sheet name plus a
// per-sheet sequence number) so repeated syncs address the same row.
type Lead struct {
	ID           string          `json:"id"`
	SheetName    string          `json:"sheetName"`
	RowNumber    int             `json:"rowNumber"`
	PropertyType string          `json:"propertyType"`
	AvgBill      string          `json:"avgBill"`
	Name         string          `json:"name"`
	Phone        string          `json:"phone"`
	Email        string          `json:"email"`
	Company      string          `json:"company"`
	Address      string          `json:"address"`
	PostCode     string          `json:"postCode"`
	Status       string          `json:"status"`
	Value        float64         `json:"value"`
	LastContact  string          `json:"lastContact"`
	NextReminder string          `json:"nextReminder,omitempty"`
	AssignedTo   string          `json:"assignedTo,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	Notes        []Note          `json:"notes"`
	Activity     []ActivityEntry `json:"activityLog"`
}

// Note is a free-text annotation on a lead.
type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author"`
}

// ActivityEntry is one entry in a lead's activity log.
type ActivityEntry struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Author      string    `json:"author"`
}

// SalesPerson is a team member leads can be assigned to.
type SalesPerson struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Active bool   `json:"active"`
}

// CRMSnapshot carries the CRM-owned fields of a persisted lead. Nil
// pointers mean the column is NULL, i.e. the console never touched that
// field, so a fresh import value may flow through.
type CRMSnapshot struct {
	ID           string
	Status       *string
	AssignedTo   *string
	NextReminder *string
	CreatedAt    *time.Time
}

// SheetResult is the outcome of syncing one sheet tab.
type SheetResult struct {
	Sheet    string `json:"sheet"`
	Imported int    `json:"imported"`
	Error    string `json:"error,omitempty"`
}

// SyncReport summarizes one full sync run across all configured tabs.
type SyncReport struct {
	StartedAt time.Time     `json:"startedAt"`
	Duration  string        `json:"duration"`
	Imported  int           `json:"imported"`
	Failed    int           `json:"failed"`
	Sheets    []SheetResult `json:"sheets"`
}

// DashboardMetrics aggregates pipeline numbers for the dashboard view.
type DashboardMetrics struct {
	TotalLeads      int     `json:"totalLeads"`
	TotalValue      float64 `json:"totalValue"`
	QuotationsSent  int     `json:"quotationsSent"`
	SiteVisits      int     `json:"siteVisits"`
	AdvancePayments int     `json:"advancePayments"`
	WonLeads        int     `json:"wonLeads"`
	ConversionRate  float64 `json:"conversionRate"`
}

// KanbanColumn is one pipeline stage with the leads currently in it.
type KanbanColumn struct {
	Status string `json:"status"`
	Leads  []Lead `json:"leads"`
}
