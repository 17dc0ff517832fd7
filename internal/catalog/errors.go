package catalog

import (
	"errors"
	"fmt"
)

// Error represents a catalog operation failure.
//
// Catalog errors include:
//   - Version conflict: two sources disagree on a version record payload
//   - Duplicate publish: gcp_id already present in the catalog
//   - Missing field: a required publish attribute could not be resolved
//   - Malformed catalog: the raw JSON fails schema validation or cannot
//     be reified into placeholder arrays
//   - No data: remote unreachable and no local snapshot exists
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// GcpID identifies the affected record, when known.
	GcpID string

	// Version identifies the affected version label (conflicts).
	Version string

	// Field names the unresolved attribute (missing-field errors).
	Field string

	// Err is the underlying cause, if any.
	Err error
}

// ErrorCode categorizes catalog errors.
type ErrorCode string

const (
	// ErrCodeVersionConflict indicates two sources disagree on the
	// payload for the same version label of the same variable.
	ErrCodeVersionConflict ErrorCode = "VERSION_CONFLICT"

	// ErrCodeDuplicateID indicates a publish with a gcp_id that is
	// already in the catalog.
	ErrCodeDuplicateID ErrorCode = "DUPLICATE_ID"

	// ErrCodeMissingField indicates a required publish attribute was
	// neither supplied nor present on the variable.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"

	// ErrCodeNotFound indicates an exact-key lookup missed.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeMalformed indicates the catalog JSON fails validation or
	// cannot be reified.
	ErrCodeMalformed ErrorCode = "MALFORMED_CATALOG"

	// ErrCodeNoData indicates neither the remote nor a local snapshot
	// could provide catalog data.
	ErrCodeNoData ErrorCode = "NO_DATA"
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.GcpID != "" && e.Version != "":
		return fmt.Sprintf("%s: %s (gcp_id=%s, version=%s)", e.Code, e.Message, e.GcpID, e.Version)
	case e.GcpID != "":
		return fmt.Sprintf("%s: %s (gcp_id=%s)", e.Code, e.Message, e.GcpID)
	case e.Field != "":
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, e.Message, e.Field)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func is(err error, code ErrorCode) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// IsVersionConflict reports whether err is a version-record conflict.
func IsVersionConflict(err error) bool { return is(err, ErrCodeVersionConflict) }

// IsDuplicateID reports whether err is a duplicate-publish error.
func IsDuplicateID(err error) bool { return is(err, ErrCodeDuplicateID) }

// IsMissingField reports whether err is a missing required attribute.
func IsMissingField(err error) bool { return is(err, ErrCodeMissingField) }

// IsNotFound reports whether err is a missed lookup.
func IsNotFound(err error) bool { return is(err, ErrCodeNotFound) }

// IsMalformed reports whether err is a malformed-catalog error.
func IsMalformed(err error) bool { return is(err, ErrCodeMalformed) }

// IsNoData reports whether err means no catalog data was available.
func IsNoData(err error) bool { return is(err, ErrCodeNoData) }
