package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/axisogreen/leadcrm/internal/config"
)

// Fetcher retrieves the raw CSV export for one sheet tab gid.
type Fetcher interface {
	FetchCSV(ctx context.Context, gid string) (string, error)
}

// Service owns the lead domain: the import pipeline, the persistence
// layer, and the configured sheet tab registry.
//
// The tab registry starts from configuration and can be changed at
// runtime; it is guarded by mu. syncMu serializes sync runs so a manual
// trigger and the background scheduler never interleave writes.
type Service struct {
	pool    *pgxpool.Pool
	fetcher Fetcher
	cfg     *config.Config

	mu   sync.RWMutex
	tabs []config.SheetTab

	syncMu sync.Mutex
}

// NewService creates a Service backed by the given pool and fetcher.
func NewService(pool *pgxpool.Pool, fetcher Fetcher, cfg *config.Config) *Service {
	return &Service{
		pool:    pool,
		fetcher: fetcher,
		cfg:     cfg,
		tabs:    cfg.Sheets.ParsedTabs(),
	}
}

// Tabs returns a copy of the currently configured sheet tabs.
func (s *Service) Tabs() []config.SheetTab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]config.SheetTab, len(s.tabs))
	copy(out, s.tabs)
	return out
}

// AddTab registers a new sheet tab for syncing. The name doubles as the
// record ID prefix, so both name and gid must be unique.
func (s *Service) AddTab(tab config.SheetTab) error {
	if tab.Name == "" || tab.GID == "" {
		return fmt.Errorf("%w: tab name and gid are required", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tabs {
		if t.Name == tab.Name {
			return fmt.Errorf("%w: sheet %q is already configured", ErrConflict, tab.Name)
		}
		if t.GID == tab.GID {
			return fmt.Errorf("%w: gid %q is already configured as %q", ErrConflict, tab.GID, t.Name)
		}
	}
	s.tabs = append(s.tabs, tab)
	return nil
}

// RemoveTab unregisters a sheet tab and purges its imported leads,
// returning the number of leads removed. Console edits on those leads are
// lost with them.
func (s *Service) RemoveTab(ctx context.Context, name string) (int64, error) {
	s.mu.Lock()
	idx := -1
	for i, t := range s.tabs {
		if t.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return 0, fmt.Errorf("%w: sheet %q is not configured", ErrNotFound, name)
	}
	s.tabs = append(s.tabs[:idx], s.tabs[idx+1:]...)
	s.mu.Unlock()

	return s.PurgeSheet(ctx, name)
}

// KanbanStatuses returns the configured pipeline columns.
func (s *Service) KanbanStatuses() []string {
	return s.cfg.Leads.KanbanStatuses
}

// Statuses returns the configured status vocabulary.
func (s *Service) Statuses() []string {
	return s.cfg.Leads.Statuses
}
