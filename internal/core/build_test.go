package core

import (
	"fmt"
	"testing"
	"time"
)

func TestParseBillAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"2500", 2500},
		{"₹2,500", 2500},
		{"Rs. 3000 / month", 3000},
		{"1500.50", 1500.5},
		{"", 0},
		{"unknown", 0},
		{"-200", 200}, // sign is stripped with everything else
		{"0", 0},
	}

	for _, tt := range tests {
		if got := ParseBillAmount(tt.raw); got != tt.want {
			t.Errorf("ParseBillAmount(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestEstimateValue(t *testing.T) {
	if got := EstimateValue("₹2,500"); got != 125000 {
		t.Errorf("EstimateValue bill = %v, want 125000", got)
	}
	if got := EstimateValue(""); got != DefaultEstimatedValue {
		t.Errorf("EstimateValue empty = %v, want %v", got, DefaultEstimatedValue)
	}
	if got := EstimateValue("n/a"); got != DefaultEstimatedValue {
		t.Errorf("EstimateValue junk = %v, want %v", got, DefaultEstimatedValue)
	}
}

func TestCapitalizeFirst(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"quotation sent", "Quotation sent"},
		{"site VISIT", "Site VISIT"},
		{"New", "New"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := capitalizeFirst(tt.in); got != tt.want {
			t.Errorf("capitalizeFirst(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildLead_Defaults(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	cols := BuildColumnMap([]string{"c0", "c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8"})

	row := []string{"", "", "Asha Rao", "9876543210", "", "", "", "", ""}
	lead, ok := buildLead(row, cols, "March", 1, 2, now)
	if !ok {
		t.Fatal("buildLead ok = false, want true")
	}

	if lead.ID != "March-1" {
		t.Errorf("ID = %q, want %q", lead.ID, "March-1")
	}
	if lead.PropertyType != DefaultPropertyType {
		t.Errorf("PropertyType = %q, want %q", lead.PropertyType, DefaultPropertyType)
	}
	if lead.Status != DefaultStatus {
		t.Errorf("Status = %q, want %q", lead.Status, DefaultStatus)
	}
	if lead.Company != DefaultCompany {
		t.Errorf("Company = %q, want %q", lead.Company, DefaultCompany)
	}
	if lead.Value != DefaultEstimatedValue {
		t.Errorf("Value = %v, want %v", lead.Value, DefaultEstimatedValue)
	}
	if lead.LastContact != "2026-03-01" {
		t.Errorf("LastContact = %q, want 2026-03-01", lead.LastContact)
	}
	if len(lead.Notes) != 0 {
		t.Errorf("Notes = %d entries, want 0", len(lead.Notes))
	}
	if len(lead.Activity) != 1 || lead.Activity[0].ID != "init-March-1" {
		t.Errorf("Activity = %+v, want single init entry", lead.Activity)
	}
}

func TestBuildLead_SkipsEmptyRows(t *testing.T) {
	now := time.Now()
	cols := BuildColumnMap([]string{"c0", "c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8"})

	if _, ok := buildLead([]string{"", "", "", "", "", "", "", "", ""}, cols, "X", 1, 2, now); ok {
		t.Error("row without name and phone should be skipped")
	}
	// A phone alone is enough to keep the row.
	if _, ok := buildLead([]string{"", "", "", "987", "", "", "", "", ""}, cols, "X", 1, 2, now); !ok {
		t.Error("row with only a phone should be kept")
	}
}

func TestBuildLead_NoteSynthesis(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	cols := BuildColumnMap([]string{"c0", "c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8"})

	row := []string{"", "", "Asha", "987", "", "", "", "", "call after 6pm"}
	lead, ok := buildLead(row, cols, "March", 3, 7, now)
	if !ok {
		t.Fatal("buildLead ok = false")
	}

	if len(lead.Notes) != 1 {
		t.Fatalf("Notes = %d entries, want 1", len(lead.Notes))
	}
	n := lead.Notes[0]
	if n.ID != "note-init-March-3" {
		t.Errorf("note ID = %q, want note-init-March-3", n.ID)
	}
	if n.Content != "call after 6pm" || n.Author != ImportAuthor {
		t.Errorf("note = %+v", n)
	}
}

func TestNewManualLead(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	lead := NewManualLead(ManualLeadParams{
		Name:    "Walk-in Customer",
		Phone:   "9123456789",
		AvgBill: "2000",
		Note:    "visited the office",
		Author:  "Priya",
	}, now)

	wantID := fmt.Sprintf("manual-%d", now.UnixMilli())
	if lead.ID != wantID {
		t.Errorf("ID = %q, want %q", lead.ID, wantID)
	}
	if lead.SheetName != "Manual Entry" {
		t.Errorf("SheetName = %q", lead.SheetName)
	}
	if lead.Status != DefaultStatus {
		t.Errorf("Status = %q, want %q", lead.Status, DefaultStatus)
	}
	if lead.Value != 100000 {
		t.Errorf("Value = %v, want 100000", lead.Value)
	}
	if len(lead.Notes) != 1 || lead.Notes[0].Author != "Priya" {
		t.Errorf("Notes = %+v", lead.Notes)
	}
	if len(lead.Activity) != 1 || lead.Activity[0].Author != "Priya" {
		t.Errorf("Activity = %+v", lead.Activity)
	}
}
