package core

import (
	"context"
	"fmt"
	"time"

	"github.com/axisogreen/leadcrm/internal/config"
	"github.com/axisogreen/leadcrm/internal/logging"
	"github.com/axisogreen/leadcrm/internal/metrics"
)

// SyncAll fetches, parses, merges and persists every configured sheet tab
// in order. A failing tab is recorded in the report and does not stop the
// remaining tabs. Runs are serialized; a second trigger waits for the
// first to finish.
func (s *Service) SyncAll(ctx context.Context, trigger string) SyncReport {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	metrics.SyncRunsTotal.WithLabelValues(trigger).Inc()

	report := SyncReport{StartedAt: time.Now().UTC()}
	log := logging.WithFields(ctx, "trigger", trigger)

	for _, tab := range s.Tabs() {
		start := time.Now()
		imported, err := s.syncSheet(ctx, tab)
		elapsed := time.Since(start)

		result := SheetResult{Sheet: tab.Name, Imported: imported}
		if err != nil {
			result.Error = err.Error()
			report.Failed++
			metrics.RecordSheetSync(tab.Name, "error", 0, elapsed)
			log.Error("sheet sync failed", "sheet", tab.Name, "error", err)
		} else {
			report.Imported += imported
			metrics.RecordSheetSync(tab.Name, "ok", imported, elapsed)
			log.Info("sheet synced", "sheet", tab.Name,
				"imported", imported, "duration", elapsed)
		}
		report.Sheets = append(report.Sheets, result)
	}

	report.Duration = time.Since(report.StartedAt).String()
	return report
}

// syncSheet runs the pipeline for one tab: fetch the export, parse it into
// leads, overlay persisted CRM state, and upsert the result.
func (s *Service) syncSheet(ctx context.Context, tab config.SheetTab) (int, error) {
	text, err := s.fetcher.FetchCSV(ctx, tab.GID)
	if err != nil {
		return 0, err
	}

	leads := ParseSheet(text, tab.Name, time.Now().UTC())
	if len(leads) == 0 {
		return 0, nil
	}

	existing, err := s.SnapshotsBySheet(ctx, tab.Name)
	if err != nil {
		return 0, err
	}

	merged := MergeLeads(leads, existing)
	if err := s.UpsertLeads(ctx, merged); err != nil {
		return 0, fmt.Errorf("persist sheet %s: %w", tab.Name, err)
	}
	return len(merged), nil
}

// RunAutoSync runs SyncAll on a fixed interval until the context is
// cancelled. Intended to run in its own goroutine from main.
func (s *Service) RunAutoSync(ctx context.Context, interval time.Duration) {
	log := logging.FromContext(ctx)
	log.Info("auto sync started", "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("auto sync stopped")
			return
		case <-ticker.C:
			report := s.SyncAll(ctx, "auto")
			log.Info("auto sync run finished",
				"imported", report.Imported, "failed", report.Failed)
		}
	}
}
