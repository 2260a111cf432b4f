package sportsense

import (
	"errors"
	"fmt"
)

// Application error codes. These map to the failure taxonomy of the
// ingestion pipeline plus generic codes used across services.
const (
	ECOLLECTION  = "collection"  // all sources failed during collect
	EINDEX       = "index"       // embedding backend or vector index failure
	EPERSIST     = "persist"     // record storage failure
	EREPORT      = "report"      // report generation failure
	ECHAT        = "chat"        // chat retrieval or completion failure
	ECONFIG      = "config"      // invalid configuration at startup
	ECONFLICT    = "conflict"    // action cannot be performed
	EINVALID     = "invalid"     // validation failed
	ENOTFOUND    = "not_found"   // entity does not exist
	EINTERNAL    = "internal"    // internal error
	EUNAVAILABLE = "unavailable" // external backend unreachable
)

// Error represents an application-specific error. Application errors carry
// a machine-readable code and a human-readable message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("sportsense error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
