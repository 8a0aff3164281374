package core

import "testing"

func TestBuildColumnMap_KeywordMatch(t *testing.T) {
	// Columns deliberately out of canonical order; keywords must win.
	headers := SplitLine("Full Name,Phone Number,Type_of_Property,Average_Monthly_Bill,Email Address,Street Address,Post_Code,Lead_Status,Notes")
	m := BuildColumnMap(headers)

	want := map[Field]int{
		FieldName:         0,
		FieldPhone:        1,
		FieldPropertyType: 2,
		FieldAvgBill:      3,
		FieldEmail:        4,
		FieldAddress:      5,
		FieldPostCode:     6,
		FieldStatus:       7,
		FieldNotes:        8,
	}
	for f, idx := range want {
		if m[f] != idx {
			t.Errorf("field %s resolved to %d, want %d", f, m[f], idx)
		}
	}
}

func TestBuildColumnMap_CaseInsensitive(t *testing.T) {
	m := BuildColumnMap([]string{"FULL NAME", "PHONE"})
	if m[FieldName] != 0 {
		t.Errorf("FieldName = %d, want 0", m[FieldName])
	}
	if m[FieldPhone] != 1 {
		t.Errorf("FieldPhone = %d, want 1", m[FieldPhone])
	}
}

func TestBuildColumnMap_PositionalFallback(t *testing.T) {
	// No header matches any keyword; every field falls back to its
	// canonical position.
	m := BuildColumnMap([]string{"c0", "c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8"})

	wants := []struct {
		field Field
		idx   int
	}{
		{FieldPropertyType, 0},
		{FieldAvgBill, 1},
		{FieldName, 2},
		{FieldPhone, 3},
		{FieldEmail, 4},
		{FieldAddress, 5},
		{FieldPostCode, 6},
		{FieldStatus, 7},
		{FieldNotes, 8},
	}
	for _, w := range wants {
		if m[w.field] != w.idx {
			t.Errorf("field %s = %d, want fallback %d", w.field, m[w.field], w.idx)
		}
	}
}

func TestColumnMap_CellOutOfRange(t *testing.T) {
	m := BuildColumnMap([]string{"Full Name", "Phone"})
	row := []string{"Asha"}

	if got := m.cell(row, FieldName); got != "Asha" {
		t.Errorf("cell(name) = %q, want %q", got, "Asha")
	}
	// Phone resolved to index 1 but the row is short.
	if got := m.cell(row, FieldPhone); got != "" {
		t.Errorf("cell(phone) = %q, want empty", got)
	}
}

func TestColumnMap_CellStripsQuotes(t *testing.T) {
	m := ColumnMap{FieldName: 0}
	if got := m.cell([]string{`"Asha Rao"`}, FieldName); got != "Asha Rao" {
		t.Errorf("cell = %q, want %q", got, "Asha Rao")
	}
}
