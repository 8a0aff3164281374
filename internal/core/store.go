package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const leadColumns = `id, sheet_name, row_number, property_type, avg_bill,
	name, phone, email, company, address, post_code,
	COALESCE(status, ''), value, last_contact,
	COALESCE(next_reminder, ''), COALESCE(assigned_to, ''),
	COALESCE(created_at, now())`

func scanLead(row pgx.Row) (Lead, error) {
	var l Lead
	err := row.Scan(
		&l.ID, &l.SheetName, &l.RowNumber, &l.PropertyType, &l.AvgBill,
		&l.Name, &l.Phone, &l.Email, &l.Company, &l.Address, &l.PostCode,
		&l.Status, &l.Value, &l.LastContact,
		&l.NextReminder, &l.AssignedTo,
		&l.CreatedAt,
	)
	return l, err
}

// nullIfEmpty maps "" to SQL NULL. Used for the nullable CRM-owned
// columns, where an empty assignment must not trip the foreign key.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// LeadFilter narrows ListLeads. Zero values mean "no constraint".
type LeadFilter struct {
	Sheet      string
	Status     string
	AssignedTo string
	Search     string
}

// ListLeads returns leads matching the filter, newest first, with notes
// and activity attached.
func (s *Service) ListLeads(ctx context.Context, f LeadFilter) ([]Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads`
	var conds []string
	var args []any

	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Sheet != "" {
		add("sheet_name = $%d", f.Sheet)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.AssignedTo != "" {
		add("assigned_to = $%d", f.AssignedTo)
	}
	if f.Search != "" {
		pat := "%" + f.Search + "%"
		args = append(args, pat)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE $%d OR phone ILIKE $%d OR email ILIKE $%d OR address ILIKE $%d)",
			n, n, n, n))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC NULLS LAST, id"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}

	if err := s.attachDetails(ctx, leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// GetLead returns one lead with notes and activity, or ErrNotFound.
func (s *Service) GetLead(ctx context.Context, id string) (*Lead, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	l, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("lead %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get lead: %w", err)
	}

	leads := []Lead{l}
	if err := s.attachDetails(ctx, leads); err != nil {
		return nil, err
	}
	return &leads[0], nil
}

// attachDetails loads notes and activity for the given leads in two
// batched queries and distributes them in place.
func (s *Service) attachDetails(ctx context.Context, leads []Lead) error {
	if len(leads) == 0 {
		return nil
	}

	ids := make([]string, len(leads))
	byID := make(map[string]*Lead, len(leads))
	for i := range leads {
		ids[i] = leads[i].ID
		byID[leads[i].ID] = &leads[i]
		leads[i].Notes = nil
		leads[i].Activity = nil
	}

	// Notes newest first; activity oldest first (an append-only timeline).
	rows, err := s.pool.Query(ctx,
		`SELECT lead_id, id, content, created_at, author
		 FROM notes WHERE lead_id = ANY($1) ORDER BY created_at DESC`, ids)
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var leadID string
		var n Note
		if err := rows.Scan(&leadID, &n.ID, &n.Content, &n.Timestamp, &n.Author); err != nil {
			return fmt.Errorf("scan note: %w", err)
		}
		if l := byID[leadID]; l != nil {
			l.Notes = append(l.Notes, n)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load notes: %w", err)
	}

	rows, err = s.pool.Query(ctx,
		`SELECT lead_id, id, type, description, created_at, author
		 FROM activity_logs WHERE lead_id = ANY($1) ORDER BY created_at`, ids)
	if err != nil {
		return fmt.Errorf("load activity: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var leadID string
		var a ActivityEntry
		if err := rows.Scan(&leadID, &a.ID, &a.Type, &a.Description, &a.Timestamp, &a.Author); err != nil {
			return fmt.Errorf("scan activity: %w", err)
		}
		if l := byID[leadID]; l != nil {
			l.Activity = append(l.Activity, a)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load activity: %w", err)
	}
	return nil
}

// SnapshotsBySheet returns the CRM-owned fields of every persisted lead in
// one sheet, NULLs preserved, for the merge step of a sync.
func (s *Service) SnapshotsBySheet(ctx context.Context, sheet string) ([]CRMSnapshot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, status, assigned_to, next_reminder, created_at
		 FROM leads WHERE sheet_name = $1`, sheet)
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []CRMSnapshot
	for rows.Next() {
		var sn CRMSnapshot
		if err := rows.Scan(&sn.ID, &sn.Status, &sn.AssignedTo, &sn.NextReminder, &sn.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, sn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}
	return snaps, nil
}

const upsertLeadSQL = `
	INSERT INTO leads (
		id, sheet_name, row_number, property_type, avg_bill,
		name, phone, email, company, address, post_code,
		status, value, last_contact, next_reminder, assigned_to, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		$12, $13, $14, $15, $16, $17
	)
	ON CONFLICT (id) DO UPDATE SET
		sheet_name    = EXCLUDED.sheet_name,
		row_number    = EXCLUDED.row_number,
		property_type = EXCLUDED.property_type,
		avg_bill      = EXCLUDED.avg_bill,
		name          = EXCLUDED.name,
		phone         = EXCLUDED.phone,
		email         = EXCLUDED.email,
		company       = EXCLUDED.company,
		address       = EXCLUDED.address,
		post_code     = EXCLUDED.post_code,
		status        = EXCLUDED.status,
		value         = EXCLUDED.value,
		last_contact  = EXCLUDED.last_contact,
		next_reminder = EXCLUDED.next_reminder,
		assigned_to   = EXCLUDED.assigned_to,
		created_at    = EXCLUDED.created_at`

// UpsertLeads writes merged leads in one transaction. Lead rows are
// replaced wholesale (the merge already decided every field); notes and
// activity entries are insert-only, so the synthesized import entries
// never duplicate and console-added ones are never touched.
func (s *Service) UpsertLeads(ctx context.Context, leads []Lead) error {
	if len(leads) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, l := range leads {
		_, err := tx.Exec(ctx, upsertLeadSQL,
			l.ID, l.SheetName, l.RowNumber, l.PropertyType, l.AvgBill,
			l.Name, l.Phone, l.Email, l.Company, l.Address, l.PostCode,
			nullIfEmpty(l.Status), l.Value, l.LastContact,
			nullIfEmpty(l.NextReminder), nullIfEmpty(l.AssignedTo),
			l.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert lead %s: %w", l.ID, err)
		}

		for _, n := range l.Notes {
			_, err := tx.Exec(ctx,
				`INSERT INTO notes (id, lead_id, content, created_at, author)
				 VALUES ($1, $2, $3, $4, $5)
				 ON CONFLICT (id) DO NOTHING`,
				n.ID, l.ID, n.Content, n.Timestamp, n.Author)
			if err != nil {
				return fmt.Errorf("upsert note %s: %w", n.ID, err)
			}
		}
		for _, a := range l.Activity {
			_, err := tx.Exec(ctx,
				`INSERT INTO activity_logs (id, lead_id, type, description, created_at, author)
				 VALUES ($1, $2, $3, $4, $5, $6)
				 ON CONFLICT (id) DO NOTHING`,
				a.ID, l.ID, a.Type, a.Description, a.Timestamp, a.Author)
			if err != nil {
				return fmt.Errorf("upsert activity %s: %w", a.ID, err)
			}
		}
	}

	return tx.Commit(ctx)
}

// CreateLead persists a manually created lead.
func (s *Service) CreateLead(ctx context.Context, lead Lead) error {
	if lead.Name == "" && lead.Phone == "" {
		return fmt.Errorf("%w: a lead needs a name or a phone number", ErrInvalid)
	}
	return s.UpsertLeads(ctx, []Lead{lead})
}

// LeadUpdate describes a partial edit from the console. Nil fields are
// left untouched; a pointer to "" clears the column where it is nullable.
type LeadUpdate struct {
	Status       *string `json:"status"`
	AssignedTo   *string `json:"assignedTo"`
	NextReminder *string `json:"nextReminder"`
	LastContact  *string `json:"lastContact"`
	Note         *string `json:"note"`
	Author       string  `json:"author"`
}

// UpdateLead applies a partial edit and records matching activity entries.
// Status changes, assignments, reminders and notes each produce their own
// log entry so the lead timeline stays complete.
func (s *Service) UpdateLead(ctx context.Context, id string, upd LeadUpdate) error {
	author := upd.Author
	if author == "" {
		author = SystemAuthor
	}
	now := time.Now().UTC()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback(ctx)

	var curStatus, curAssigned *string
	err = tx.QueryRow(ctx,
		`SELECT status, assigned_to FROM leads WHERE id = $1 FOR UPDATE`, id).
		Scan(&curStatus, &curAssigned)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("lead %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("load lead for update: %w", err)
	}

	var sets []string
	var args []any
	set := func(col string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	var activity []ActivityEntry
	logEntry := func(typ, desc string) {
		activity = append(activity, ActivityEntry{
			ID:          uuid.NewString(),
			Type:        typ,
			Description: desc,
			Timestamp:   now,
			Author:      author,
		})
	}

	if upd.Status != nil {
		old := ""
		if curStatus != nil {
			old = *curStatus
		}
		if *upd.Status != old {
			set("status", nullIfEmpty(*upd.Status))
			logEntry(ActivityStatusChange,
				fmt.Sprintf("Status changed from %s to %s", old, *upd.Status))
		}
	}
	if upd.AssignedTo != nil {
		set("assigned_to", nullIfEmpty(*upd.AssignedTo))
		if *upd.AssignedTo == "" {
			logEntry(ActivityAssignment, "Assignment cleared")
		} else {
			logEntry(ActivityAssignment, "Assigned to "+*upd.AssignedTo)
		}
	}
	if upd.NextReminder != nil {
		set("next_reminder", nullIfEmpty(*upd.NextReminder))
		if *upd.NextReminder != "" {
			logEntry(ActivityReminder, "Reminder set for "+*upd.NextReminder)
		}
	}
	if upd.LastContact != nil {
		set("last_contact", *upd.LastContact)
	}

	if len(sets) > 0 {
		args = append(args, id)
		query := fmt.Sprintf("UPDATE leads SET %s WHERE id = $%d",
			strings.Join(sets, ", "), len(args))
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("update lead %s: %w", id, err)
		}
	}

	if upd.Note != nil && *upd.Note != "" {
		_, err := tx.Exec(ctx,
			`INSERT INTO notes (id, lead_id, content, created_at, author)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.NewString(), id, *upd.Note, now, author)
		if err != nil {
			return fmt.Errorf("add note: %w", err)
		}
		logEntry(ActivityNoteUpdate, "Note added")
	}

	for _, a := range activity {
		_, err := tx.Exec(ctx,
			`INSERT INTO activity_logs (id, lead_id, type, description, created_at, author)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			a.ID, id, a.Type, a.Description, a.Timestamp, a.Author)
		if err != nil {
			return fmt.Errorf("log activity: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// DeleteLead removes a lead; notes and activity cascade.
func (s *Service) DeleteLead(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lead %s: %w", id, ErrNotFound)
	}
	return nil
}

// PurgeSheet deletes every lead imported from one sheet.
func (s *Service) PurgeSheet(ctx context.Context, sheet string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM leads WHERE sheet_name = $1`, sheet)
	if err != nil {
		return 0, fmt.Errorf("purge sheet %s: %w", sheet, err)
	}
	return tag.RowsAffected(), nil
}

// SheetCounts returns the number of persisted leads per sheet name.
func (s *Service) SheetCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT sheet_name, count(*) FROM leads GROUP BY sheet_name`)
	if err != nil {
		return nil, fmt.Errorf("sheet counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("scan sheet count: %w", err)
		}
		counts[name] = n
	}
	return counts, rows.Err()
}
