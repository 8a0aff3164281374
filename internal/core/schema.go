package core

import (
	"context"
	"fmt"
)

// schemaStatements creates the tables and indexes the console needs.
// Statements are idempotent so startup can run them unconditionally.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS sales_persons (
		id       TEXT PRIMARY KEY,
		name     TEXT NOT NULL,
		email    TEXT NOT NULL UNIQUE,
		phone    TEXT NOT NULL DEFAULT '',
		active   BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS leads (
		id            TEXT PRIMARY KEY,
		sheet_name    TEXT NOT NULL,
		row_number    INTEGER NOT NULL DEFAULT 0,
		property_type TEXT NOT NULL DEFAULT '',
		avg_bill      TEXT NOT NULL DEFAULT '',
		name          TEXT NOT NULL DEFAULT '',
		phone         TEXT NOT NULL DEFAULT '',
		email         TEXT NOT NULL DEFAULT '',
		company       TEXT NOT NULL DEFAULT 'N/A',
		address       TEXT NOT NULL DEFAULT '',
		post_code     TEXT NOT NULL DEFAULT '',
		status        TEXT,
		value         DOUBLE PRECISION NOT NULL DEFAULT 0,
		last_contact  TEXT NOT NULL DEFAULT '',
		next_reminder TEXT,
		assigned_to   TEXT REFERENCES sales_persons(id) ON DELETE SET NULL,
		created_at    TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_sheet_name ON leads (sheet_name)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_status ON leads (status)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_assigned_to ON leads (assigned_to)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id         TEXT PRIMARY KEY,
		lead_id    TEXT NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
		content    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		author     TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_lead_id ON notes (lead_id)`,
	`CREATE TABLE IF NOT EXISTS activity_logs (
		id          TEXT PRIMARY KEY,
		lead_id     TEXT NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
		type        TEXT NOT NULL,
		description TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		author      TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_logs_lead_id ON activity_logs (lead_id)`,
}

// EnsureSchema creates the database schema if it does not exist.
//
// The CRM-owned columns on leads (status, assigned_to, next_reminder,
// created_at) are nullable on purpose: a NULL lets the next import supply
// the value, while anything already written keeps precedence in the merge.
func (s *Service) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
