package core

import (
	"strings"
	"time"
)

// ParseSheet parses a raw CSV export document into leads. label names the
// sheet tab and seeds the deterministic record IDs: the Nth emitted lead
// gets ID "<label>-N", so blank and spacer rows never leave gaps in the
// sequence and repeated parses of the same document yield the same IDs.
//
// A document with fewer than two lines (no header plus at least one data
// row) yields no leads. now stamps synthesized timestamps; callers pass a
// fixed instant when they need reproducible output.
func ParseSheet(text, label string, now time.Time) []Lead {
	text = sanitizeDocument(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")

	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return nil
	}

	cols := BuildColumnMap(SplitLine(lines[0]))

	var leads []Lead
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		row := SplitLine(lines[i])
		// Row numbers are 1-based and count the header line.
		lead, ok := buildLead(row, cols, label, len(leads)+1, i+1, now)
		if ok {
			leads = append(leads, lead)
		}
	}
	return leads
}
