package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ListSalesPersons returns the team, active members first.
func (s *Service) ListSalesPersons(ctx context.Context) ([]SalesPerson, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, phone, active FROM sales_persons
		 ORDER BY active DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("list sales persons: %w", err)
	}
	defer rows.Close()

	var team []SalesPerson
	for rows.Next() {
		var p SalesPerson
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Active); err != nil {
			return nil, fmt.Errorf("scan sales person: %w", err)
		}
		team = append(team, p)
	}
	return team, rows.Err()
}

// CreateSalesPerson adds a team member. An empty ID gets a generated UUID.
func (s *Service) CreateSalesPerson(ctx context.Context, p SalesPerson) (SalesPerson, error) {
	if p.Name == "" || p.Email == "" {
		return SalesPerson{}, fmt.Errorf("%w: name and email are required", ErrInvalid)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO sales_persons (id, name, email, phone, active)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Name, p.Email, p.Phone, p.Active)
	if err != nil {
		return SalesPerson{}, fmt.Errorf("create sales person: %w", err)
	}
	return p, nil
}

// SalesPersonUpdate is a partial team member edit; nil fields are untouched.
type SalesPersonUpdate struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	Active *bool   `json:"active"`
}

// UpdateSalesPerson applies a partial edit to a team member.
func (s *Service) UpdateSalesPerson(ctx context.Context, id string, upd SalesPersonUpdate) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE sales_persons SET
			name   = COALESCE($2, name),
			email  = COALESCE($3, email),
			phone  = COALESCE($4, phone),
			active = COALESCE($5, active)
		 WHERE id = $1`,
		id, upd.Name, upd.Email, upd.Phone, upd.Active)
	if err != nil {
		return fmt.Errorf("update sales person %s: %w", id, err)
	}
	return nil
}

// DeleteSalesPerson removes a team member. Their leads stay, with the
// assignment cleared by the foreign key.
func (s *Service) DeleteSalesPerson(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sales_persons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sales person %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sales person %s: %w", id, ErrNotFound)
	}
	return nil
}

// AutoAssign distributes unassigned leads round-robin across active team
// members and logs an assignment entry per lead. sheet optionally limits
// the scope to one sheet. Returns the number of leads assigned.
func (s *Service) AutoAssign(ctx context.Context, sheet string) (int, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name FROM sales_persons WHERE active ORDER BY name`)
	if err != nil {
		return 0, fmt.Errorf("auto assign: %w", err)
	}
	var team []SalesPerson
	for rows.Next() {
		var p SalesPerson
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan sales person: %w", err)
		}
		team = append(team, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("auto assign: %w", err)
	}
	if len(team) == 0 {
		return 0, fmt.Errorf("%w: no active sales persons to assign to", ErrInvalid)
	}

	query := `SELECT id FROM leads WHERE assigned_to IS NULL`
	var args []any
	if sheet != "" {
		query += ` AND sheet_name = $1`
		args = append(args, sheet)
	}
	query += ` ORDER BY created_at NULLS LAST, id`

	rows, err = s.pool.Query(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("auto assign: %w", err)
	}
	var leadIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan lead id: %w", err)
		}
		leadIDs = append(leadIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("auto assign: %w", err)
	}
	if len(leadIDs) == 0 {
		return 0, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin auto assign: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	for i, leadID := range leadIDs {
		p := team[i%len(team)]
		if _, err := tx.Exec(ctx,
			`UPDATE leads SET assigned_to = $1 WHERE id = $2`, p.ID, leadID); err != nil {
			return 0, fmt.Errorf("assign lead %s: %w", leadID, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO activity_logs (id, lead_id, type, description, created_at, author)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.NewString(), leadID, ActivityAssignment,
			"Auto-assigned to "+p.Name, now, SystemAuthor); err != nil {
			return 0, fmt.Errorf("log assignment for %s: %w", leadID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(leadIDs), nil
}
