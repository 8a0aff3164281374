package core

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned when a lead, sheet or sales person does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write collides with existing state, such
// as adding a sheet tab whose gid is already configured.
var ErrConflict = errors.New("conflict")

// ErrInvalid is returned for requests that fail validation.
var ErrInvalid = errors.New("invalid")

// UserMessage is a safe, actionable description of an error for API
// consumers. Internal details stay in the logs.
type UserMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

// errorPattern maps a substring of an internal error to a UserMessage.
type errorPattern struct {
	contains string
	msg      UserMessage
}

var errorPatterns = []errorPattern{
	{"duplicate key", UserMessage{
		Code:    "DB001",
		Message: "A record with this identifier already exists.",
		Action:  "Re-run the sync; existing records are merged, not duplicated.",
	}},
	{"violates foreign key", UserMessage{
		Code:    "DB002",
		Message: "The referenced record does not exist.",
		Action:  "Check that the assigned sales person is still on the team.",
	}},
	{"connection refused", UserMessage{
		Code:    "DB003",
		Message: "The database is unreachable.",
		Action:  "Verify the database is running and DATABASE_URL is correct.",
	}},
	{"context deadline exceeded", UserMessage{
		Code:    "SYNC001",
		Message: "The operation timed out.",
		Action:  "The sheet host may be slow; try the sync again.",
	}},
	{"HTTP 4", UserMessage{
		Code:    "SYNC002",
		Message: "The sheet export could not be fetched.",
		Action:  "Check the export URL and that the sheet is shared publicly.",
	}},
	{"HTTP 5", UserMessage{
		Code:    "SYNC003",
		Message: "The sheet host returned an error.",
		Action:  "The export service is having trouble; try again shortly.",
	}},
}

// MapError converts an internal error into a UserMessage. Sentinel errors
// map directly; everything else is matched against known failure patterns,
// falling back to a generic message so raw driver errors never reach
// clients.
func MapError(err error) UserMessage {
	switch {
	case errors.Is(err, ErrNotFound):
		return UserMessage{
			Code:    "REQ001",
			Message: "The requested record was not found.",
			Action:  "It may have been deleted; refresh and try again.",
		}
	case errors.Is(err, ErrConflict):
		return UserMessage{
			Code:    "REQ002",
			Message: "The request conflicts with existing data.",
			Action:  "Refresh to see the current state before retrying.",
		}
	case errors.Is(err, ErrInvalid):
		return UserMessage{
			Code:    "REQ003",
			Message: "The request is invalid.",
			Action:  "Correct the highlighted fields and retry.",
		}
	case errors.Is(err, context.Canceled):
		return UserMessage{
			Code:    "REQ004",
			Message: "The request was cancelled.",
			Action:  "Retry if this was not intentional.",
		}
	}

	text := err.Error()
	for _, p := range errorPatterns {
		if strings.Contains(text, p.contains) {
			return p.msg
		}
	}

	return UserMessage{
		Code:    "ERR000",
		Message: "An unexpected error occurred.",
		Action:  "Try again; if the problem persists, check the server logs.",
	}
}
