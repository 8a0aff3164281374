package core

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// SplitLine splits one line of comma-delimited text into trimmed fields.
// Commas inside double-quoted spans do not split; a doubled quote inside a
// quoted span is an escaped literal quote. An unterminated quote consumes
// the rest of the line as literal content rather than failing, since real
// sheet exports are not always well formed.
func SplitLine(line string) []string {
	fields := make([]string, 0, 8)
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(cur.String()))

	return fields
}

// trimWrappingQuotes strips at most one leading and one trailing double
// quote. Interior quotes are kept.
func trimWrappingQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return s
}

// sanitizeDocument prepares a raw fetched export for parsing: drops a
// UTF-8 BOM, replaces invalid byte sequences, and normalizes to NFC so
// header keyword matching is stable across export encodings.
func sanitizeDocument(text string) string {
	text = strings.TrimPrefix(text, "\uFEFF")
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	return norm.NFC.String(text)
}
