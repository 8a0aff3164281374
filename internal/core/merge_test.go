package core

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestMergeLeads_PersistedFieldsWin(t *testing.T) {
	importedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	firstSeen := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	fresh := []Lead{{
		ID:        "Demo-1",
		Status:    "New",
		CreatedAt: importedAt,
	}}
	existing := []CRMSnapshot{{
		ID:           "Demo-1",
		Status:       strPtr("Site visit"),
		AssignedTo:   strPtr("person-1"),
		NextReminder: strPtr("2026-03-05"),
		CreatedAt:    &firstSeen,
	}}

	merged := MergeLeads(fresh, existing)
	if len(merged) != 1 {
		t.Fatalf("merged %d leads, want 1", len(merged))
	}

	got := merged[0]
	if got.Status != "Site visit" {
		t.Errorf("Status = %q, want persisted %q", got.Status, "Site visit")
	}
	if got.AssignedTo != "person-1" {
		t.Errorf("AssignedTo = %q, want person-1", got.AssignedTo)
	}
	if got.NextReminder != "2026-03-05" {
		t.Errorf("NextReminder = %q, want 2026-03-05", got.NextReminder)
	}
	if !got.CreatedAt.Equal(firstSeen) {
		t.Errorf("CreatedAt = %v, want first-seen %v", got.CreatedAt, firstSeen)
	}
}

func TestMergeLeads_NullColumnsLetImportThrough(t *testing.T) {
	fresh := []Lead{{ID: "Demo-1", Status: "Quotation sent"}}
	existing := []CRMSnapshot{{ID: "Demo-1"}} // all CRM fields NULL

	merged := MergeLeads(fresh, existing)
	if merged[0].Status != "Quotation sent" {
		t.Errorf("Status = %q, want import value", merged[0].Status)
	}
	if merged[0].AssignedTo != "" {
		t.Errorf("AssignedTo = %q, want empty", merged[0].AssignedTo)
	}
}

func TestMergeLeads_NewLeadPassesThrough(t *testing.T) {
	now := time.Now().UTC()
	fresh := []Lead{{ID: "Demo-9", Status: "New", CreatedAt: now}}

	merged := MergeLeads(fresh, []CRMSnapshot{{ID: "Demo-1", Status: strPtr("Busy")}})
	if merged[0].Status != "New" || !merged[0].CreatedAt.Equal(now) {
		t.Errorf("unmatched lead was altered: %+v", merged[0])
	}
}

func TestMergeLeads_InputNotMutated(t *testing.T) {
	fresh := []Lead{{ID: "Demo-1", Status: "New"}}
	MergeLeads(fresh, []CRMSnapshot{{ID: "Demo-1", Status: strPtr("Busy")}})
	if fresh[0].Status != "New" {
		t.Errorf("input slice mutated: Status = %q", fresh[0].Status)
	}
}
