package core

import "strings"

// Field names a semantic lead field resolved from a header row.
type Field string

// Semantic fields recognized in sheet exports.
const (
	FieldPropertyType Field = "propertyType"
	FieldAvgBill      Field = "avgBill"
	FieldName         Field = "name"
	FieldPhone        Field = "phone"
	FieldEmail        Field = "email"
	FieldAddress      Field = "address"
	FieldPostCode     Field = "postCode"
	FieldStatus       Field = "status"
	FieldNotes        Field = "notes"
)

// fieldSpec describes how one semantic field is located: keyword
// candidates tried in order against the lowercased headers, then a
// positional fallback matching the canonical export layout.
type fieldSpec struct {
	field    Field
	keywords []string
	fallback int
}

var fieldSpecs = []fieldSpec{
	{FieldPropertyType, []string{"type_of_property", "property"}, 0},
	{FieldAvgBill, []string{"average_monthly", "bill", "electricity"}, 1},
	{FieldName, []string{"full name", "name"}, 2},
	{FieldPhone, []string{"phone", "mobile"}, 3},
	{FieldEmail, []string{"email"}, 4},
	{FieldAddress, []string{"street address", "address"}, 5},
	{FieldPostCode, []string{"post_code", "zip", "pin", "pincode", "postal"}, 6},
	{FieldStatus, []string{"lead_status", "status"}, 7},
	{FieldNotes, []string{"notes", "comment"}, 8},
}

// ColumnMap maps semantic fields to column indexes in a tokenized row.
type ColumnMap map[Field]int

// BuildColumnMap resolves the column layout from a tokenized header row.
// Matching is case-insensitive substring search; each field's keyword
// candidates are tried in order, and a field whose keywords match nothing
// falls back to its canonical position. Every field always resolves, so
// headerless or renamed exports still import.
func BuildColumnMap(headers []string) ColumnMap {
	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ToLower(trimWrappingQuotes(h))
	}

	m := make(ColumnMap, len(fieldSpecs))
	for _, spec := range fieldSpecs {
		idx := -1
		for _, kw := range spec.keywords {
			for j, h := range lower {
				if strings.Contains(h, kw) {
					idx = j
					break
				}
			}
			if idx >= 0 {
				break
			}
		}
		if idx < 0 {
			idx = spec.fallback
		}
		m[spec.field] = idx
	}
	return m
}

// cell returns the trimmed value of a semantic field in a tokenized row,
// or "" when the resolved index is outside the row.
func (m ColumnMap) cell(row []string, f Field) string {
	idx, ok := m[f]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(trimWrappingQuotes(row[idx]))
}
