package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// ParseBillAmount extracts a numeric amount from a raw bill cell. Currency
// symbols, thousands separators and units are stripped; anything that does
// not parse to a positive number yields 0.
func ParseBillAmount(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// EstimateValue derives the estimated project value from a raw bill cell:
// bill amount times BillMultiplier, or DefaultEstimatedValue when the cell
// has no usable amount.
func EstimateValue(rawBill string) float64 {
	if n := ParseBillAmount(rawBill); n > 0 {
		return n * BillMultiplier
	}
	return DefaultEstimatedValue
}

// capitalizeFirst uppercases the first rune only; the rest of the string
// keeps its original casing.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// buildLead turns one tokenized data row into a Lead. ok is false when the
// row carries neither a name nor a phone, which marks spacer and summary
// rows that should not become records.
//
// seq is the 1-based count of leads already emitted for this sheet plus
// one; it forms the deterministic ID. rowNum is the 1-based line number in
// the sheet, header included, kept for traceability back to the source.
func buildLead(row []string, cols ColumnMap, sheet string, seq, rowNum int, now time.Time) (Lead, bool) {
	name := cols.cell(row, FieldName)
	phone := cols.cell(row, FieldPhone)
	if name == "" && phone == "" {
		return Lead{}, false
	}

	propertyType := cols.cell(row, FieldPropertyType)
	if propertyType == "" {
		propertyType = DefaultPropertyType
	}

	status := cols.cell(row, FieldStatus)
	if status == "" {
		status = DefaultStatus
	}
	status = capitalizeFirst(status)

	avgBill := cols.cell(row, FieldAvgBill)

	lead := Lead{
		ID:           fmt.Sprintf("%s-%d", sheet, seq),
		SheetName:    sheet,
		RowNumber:    rowNum,
		PropertyType: propertyType,
		AvgBill:      avgBill,
		Name:         name,
		Phone:        phone,
		Email:        cols.cell(row, FieldEmail),
		Company:      DefaultCompany,
		Address:      cols.cell(row, FieldAddress),
		PostCode:     cols.cell(row, FieldPostCode),
		Status:       status,
		Value:        EstimateValue(avgBill),
		LastContact:  now.Format("2006-01-02"),
		CreatedAt:    now,
	}

	if notes := cols.cell(row, FieldNotes); notes != "" {
		lead.Notes = []Note{{
			ID:        fmt.Sprintf("note-init-%s-%d", sheet, seq),
			Content:   notes,
			Timestamp: now,
			Author:    ImportAuthor,
		}}
	}

	lead.Activity = []ActivityEntry{{
		ID:          fmt.Sprintf("init-%s-%d", sheet, seq),
		Type:        ActivityStatusChange,
		Description: "Lead imported from sheet export",
		Timestamp:   now,
		Author:      SystemAuthor,
	}}

	return lead, true
}

// ManualLeadParams are the caller-supplied fields for a manually created
// lead. Name and Phone are required; everything else is optional.
type ManualLeadParams struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	PostCode     string `json:"postCode"`
	PropertyType string `json:"propertyType"`
	AvgBill      string `json:"avgBill"`
	AssignedTo   string `json:"assignedTo"`
	NextReminder string `json:"nextReminder"`
	Note         string `json:"note"`
	Author       string `json:"author"`
}

// NewManualLead builds a lead from console input. The ID is derived from
// the creation instant in milliseconds, distinguishing manual leads from
// imported ones and keeping them out of the way of sheet ID sequences.
func NewManualLead(p ManualLeadParams, now time.Time) Lead {
	propertyType := p.PropertyType
	if propertyType == "" {
		propertyType = DefaultPropertyType
	}
	author := p.Author
	if author == "" {
		author = SystemAuthor
	}

	id := fmt.Sprintf("manual-%d", now.UnixMilli())

	lead := Lead{
		ID:           id,
		SheetName:    "Manual Entry",
		PropertyType: propertyType,
		AvgBill:      p.AvgBill,
		Name:         p.Name,
		Phone:        p.Phone,
		Email:        p.Email,
		Company:      DefaultCompany,
		Address:      p.Address,
		PostCode:     p.PostCode,
		Status:       DefaultStatus,
		Value:        EstimateValue(p.AvgBill),
		LastContact:  now.Format("2006-01-02"),
		NextReminder: p.NextReminder,
		AssignedTo:   p.AssignedTo,
		CreatedAt:    now,
	}

	if p.Note != "" {
		lead.Notes = []Note{{
			ID:        fmt.Sprintf("note-%d", now.UnixMilli()),
			Content:   p.Note,
			Timestamp: now,
			Author:    author,
		}}
	}

	lead.Activity = []ActivityEntry{{
		ID:          fmt.Sprintf("log-%d", now.UnixMilli()),
		Type:        ActivityStatusChange,
		Description: "Lead created manually",
		Timestamp:   now,
		Author:      author,
	}}

	return lead
}
