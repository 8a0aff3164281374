package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"not found sentinel", ErrNotFound, "REQ001"},
		{"wrapped not found", fmt.Errorf("lead x: %w", ErrNotFound), "REQ001"},
		{"conflict sentinel", ErrConflict, "REQ002"},
		{"invalid sentinel", fmt.Errorf("%w: bad tab", ErrInvalid), "REQ003"},
		{"cancelled", context.Canceled, "REQ004"},
		{"duplicate key", errors.New(`duplicate key value violates unique constraint "leads_pkey"`), "DB001"},
		{"foreign key", errors.New("insert or update violates foreign key constraint"), "DB002"},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5432: connection refused"), "DB003"},
		{"timeout", errors.New("context deadline exceeded"), "SYNC001"},
		{"sheet 404", errors.New("fetch sheet gid 0: HTTP 404"), "SYNC002"},
		{"sheet 503", errors.New("fetch sheet gid 0: HTTP 503"), "SYNC003"},
		{"unknown", errors.New("something odd"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := MapError(tt.err)
			if msg.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, msg.Code, tt.wantCode)
			}
			if msg.Message == "" || msg.Action == "" {
				t.Errorf("MapError(%v) has empty message or action: %+v", tt.err, msg)
			}
		})
	}
}
