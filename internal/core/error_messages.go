package core

// error_messages.go maps technical errors to user-friendly messages with
// codes for support reference. Users quote the code; support staff look it up
// here and in the server logs, which keep the technical error and request ID.
//
// # Submission Errors (SUB001-SUB099)
//
//	SUB001 - Invalid submission: one or more fields are missing or malformed
//	         Action: Correct the highlighted fields and submit again
//	SUB002 - Malformed request: the body is not valid JSON
//	         Action: Send a JSON object with the documented field names
//	SUB003 - Idempotency key reused with different values
//	         Action: Start a new submission so a fresh key is generated
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Duplicate key          Patterns: "duplicate key", "unique constraint"
//	DB004 - Connection refused     Patterns: "connection refused", "failed to connect"
//	DB005 - Connection reset       Patterns: "connection reset", "broken pipe", "conn closed"
//	DB006 - Timeout                Patterns: "timeout"
//	DB000 - Other storage failure  (any *StorageError not matching the above)
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - System busy: too many reports being generated
//	EXP002 - Render failure: the document could not be produced
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled     Patterns: "context canceled"
//	REQ002 - Request timeout       Patterns: "context deadline exceeded"
//	RATE001 - Too many requests    Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches. Check the logs for the
// original technical error.
//
// Patterns are matched case-insensitively with strings.Contains and the first
// match wins, so specific patterns come before general ones.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgInvalidSubmission = UserMessage{
		Message: "Some fields are missing or invalid",
		Action:  "Correct the highlighted fields and submit again",
		Code:    "SUB001",
	}
	msgMalformedRequest = UserMessage{
		Message: "The request could not be read",
		Action:  "Send a JSON object with the documented field names",
		Code:    "SUB002",
	}
	msgKeyReused = UserMessage{
		Message: "This submission key was already used for different answers",
		Action:  "Start a new submission and send it again",
		Code:    "SUB003",
	}
	msgStorage = UserMessage{
		Message: "The feedback store is unavailable",
		Action:  "Please try again in a few moments",
		Code:    "DB000",
	}
	msgTooManyExports = UserMessage{
		Message: "The system is busy generating other reports",
		Action:  "Please wait a moment and try again",
		Code:    "EXP001",
	}
	msgRender = UserMessage{
		Message: "The report could not be generated",
		Action:  "Please try again or contact support",
		Code:    "EXP002",
	}
)

var errorPatterns = []errorPattern{
	// Database constraint and connectivity errors
	{"duplicate key", UserMessage{"A record with this key already exists", "Please try again", "DB001"}},
	{"unique constraint", UserMessage{"A record with this key already exists", "Please try again", "DB001"}},
	{"connection refused", UserMessage{"Unable to connect to the feedback store", "Please try again in a few moments", "DB004"}},
	{"failed to connect", UserMessage{"Unable to connect to the feedback store", "Please try again in a few moments", "DB004"}},
	{"connection reset", UserMessage{"The connection to the feedback store was interrupted", "Please try again", "DB005"}},
	{"broken pipe", UserMessage{"The connection to the feedback store was interrupted", "Please try again", "DB005"}},
	{"conn closed", UserMessage{"The connection to the feedback store was interrupted", "Please try again", "DB005"}},

	// Request lifecycle errors, before the generic timeout pattern
	{"context canceled", UserMessage{"Request was cancelled", "Please try again", "REQ001"}},
	{"context deadline exceeded", UserMessage{"Request timed out", "Please try again later", "REQ002"}},
	{"timeout", UserMessage{"Operation timed out", "Please try again later", "DB006"}},

	// Rate limiting
	{"rate limit", UserMessage{"Too many requests", "Please wait a moment before trying again", "RATE001"}},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Typed errors are recognised first (validation, export limits, malformed
// requests), then the message is matched against known patterns. Storage
// errors that match no pattern get DB000; anything else gets ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	switch {
	case IsValidationError(err):
		return msgInvalidSubmission
	case errors.Is(err, ErrTooManyExports):
		return msgTooManyExports
	case errors.Is(err, ErrMalformedRequest):
		return msgMalformedRequest
	case errors.Is(err, ErrIdempotencyKeyReused):
		return msgKeyReused
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	switch {
	case IsStorageError(err):
		return msgStorage
	case errors.Is(err, ErrRender):
		return msgRender
	}
	return defaultMessage
}

// FormatUserError creates a display string: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
