package core

import (
	"reflect"
	"testing"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "plain fields",
			line: "a,b,c",
			want: []string{"a", "b", "c"},
		},
		{
			name: "quoted comma does not split",
			line: `"12, MG Road",560001`,
			want: []string{"12, MG Road", "560001"},
		},
		{
			name: "escaped quote inside quoted span",
			line: `"a ""quoted"" word",b`,
			want: []string{`a "quoted" word`, "b"},
		},
		{
			name: "fields are trimmed",
			line: " a , b ,c ",
			want: []string{"a", "b", "c"},
		},
		{
			name: "empty fields survive",
			line: "a,,c,",
			want: []string{"a", "", "c", ""},
		},
		{
			name: "unterminated quote consumes rest of line",
			line: `"abc,def`,
			want: []string{"abc,def"},
		},
		{
			name: "empty line is one empty field",
			line: "",
			want: []string{""},
		},
		{
			name: "quotes around a single field",
			line: `"hello"`,
			want: []string{"hello"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLine(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLine(%q) = %#v, want %#v", tt.line, got, tt.want)
			}
		})
	}
}

func TestTrimWrappingQuotes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"hello"`, "hello"},
		{`"hello`, "hello"},
		{`hello"`, "hello"},
		{`he"llo`, `he"llo`},
		{`""`, ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := trimWrappingQuotes(tt.in); got != tt.want {
			t.Errorf("trimWrappingQuotes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeDocument(t *testing.T) {
	// BOM is stripped so the first header cell matches keywords.
	got := sanitizeDocument("\uFEFFName,Phone")
	if got != "Name,Phone" {
		t.Errorf("sanitizeDocument BOM = %q, want %q", got, "Name,Phone")
	}

	// Invalid bytes are replaced, not dropped.
	got = sanitizeDocument("a\xffb")
	if got != "a�b" {
		t.Errorf("sanitizeDocument invalid UTF-8 = %q", got)
	}
}
