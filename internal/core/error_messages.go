package core

// error_messages.go maps technical errors to coded user messages.
//
// # Error Codes Reference
//
// Support staff can look up the code a user quotes to see what triggered it.
//
// # Project Errors (PRJ001-PRJ099)
//
//	PRJ001 - Project not found
//	         Action: Check the project link or create a new project
//	PRJ002 - Project already exists
//	         Action: Choose a different project id
//	PRJ003 - Project document is invalid
//	         Action: Re-export the project from a working copy
//
// # Slot Errors (SLT001-SLT099)
//
// Only returned when strict mode is enabled; otherwise slot edits on unknown
// targets are silently ignored.
//
//	SLT001 - Unknown day
//	SLT002 - Unknown act
//	SLT003 - Slot index out of range
//
// # CSV Errors (CSV001-CSV099)
//
//	CSV001 - CSV syntax error        Patterns: "csv syntax error"
//	CSV002 - Required column missing Patterns: "required column"
//	CSV003 - Empty file
//	CSV004 - File too large
//
// # Import Errors (IMP001-IMP099)
//
//	IMP001 - Too many imports in progress
//	IMP002 - Request cancelled       Patterns: "context canceled"
//	IMP003 - Request timed out       Patterns: "context deadline exceeded"
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Connection refused       Patterns: "connection refused"
//	DB002 - Connection reset         Patterns: "connection reset"
//	DB003 - Database busy            Patterns: "database is locked", "deadlock"
//	DB004 - Timeout                  Patterns: "timeout"
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the server log for the technical error.
//
// # Matching
//
// Sentinel errors are matched first with errors.Is. Remaining errors are
// matched case-insensitively with strings.Contains against errorPatterns; the
// first match wins, so specific patterns come before general ones.

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/runsheet/internal/timetable"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorSentinel struct {
	err error
	msg UserMessage
}

var errorSentinels = []errorSentinel{
	{ErrProjectNotFound, UserMessage{
		Message: "Project not found",
		Action:  "Check the project link or create a new project",
		Code:    "PRJ001",
	}},
	{ErrProjectExists, UserMessage{
		Message: "A project with this id already exists",
		Action:  "Choose a different project id",
		Code:    "PRJ002",
	}},
	{ErrInvalidProject, UserMessage{
		Message: "The project document is invalid",
		Action:  "Re-export the project from a working copy",
		Code:    "PRJ003",
	}},
	{timetable.ErrUnknownDay, UserMessage{
		Message: "That day does not exist in this project",
		Action:  "Reload the project and pick one of its days",
		Code:    "SLT001",
	}},
	{timetable.ErrUnknownAct, UserMessage{
		Message: "That act is not on the roster",
		Action:  "Reload the project or re-import the roster",
		Code:    "SLT002",
	}},
	{timetable.ErrSlotOutOfRange, UserMessage{
		Message: "That slot does not exist",
		Action:  "Reload the project; the running order may have changed",
		Code:    "SLT003",
	}},
	{ErrEmptyFile, UserMessage{
		Message: "The uploaded file is empty",
		Action:  "Upload a CSV file with a header row and data rows",
		Code:    "CSV003",
	}},
	{ErrFileTooLarge, UserMessage{
		Message: "The file exceeds the maximum import size",
		Action:  "Remove unused columns or rows and try again",
		Code:    "CSV004",
	}},
	{ErrImportBusy, UserMessage{
		Message: "Too many imports in progress",
		Action:  "Please wait a moment and try again",
		Code:    "IMP001",
	}},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// =========================================================================
	// CSV (CSV001-CSV002)
	// =========================================================================
	{
		pattern: "csv syntax error",
		msg: UserMessage{
			Message: "The file is not a valid CSV",
			Action:  "Check for unbalanced quotes near the reported line",
			Code:    "CSV001",
		},
	},
	{
		pattern: "required column",
		msg: UserMessage{
			Message: "A required column is missing from the CSV",
			Action:  "Add the name and duration columns to the header row",
			Code:    "CSV002",
		},
	},

	// =========================================================================
	// Request lifecycle (IMP002-IMP003)
	// =========================================================================
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "IMP002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "IMP003",
		},
	},

	// =========================================================================
	// Database (DB001-DB004)
	// =========================================================================
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB002",
		},
	},
	{
		pattern: "database is locked",
		msg: UserMessage{
			Message: "Database was busy with another change",
			Action:  "Please try again",
			Code:    "DB003",
		},
	},
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: "Database was busy with another change",
			Action:  "Please try again",
			Code:    "DB003",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB004",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns an empty UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, s := range errorSentinels {
		if errors.Is(err, s.err) {
			return s.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
