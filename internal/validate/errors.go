package validate

import (
	"errors"
	"fmt"
)

// ErrInvalid is matched by every validation failure.
var ErrInvalid = errors.New("invalid record")

// Reason identifies which rule rejected a candidate record.
type Reason string

const (
	// ReasonEntryDate: entry_date is not dd-mm-yyyy.
	ReasonEntryDate Reason = "ENTRY_DATE"

	// ReasonMissingFields: a required field is empty.
	ReasonMissingFields Reason = "MISSING_FIELDS"

	// ReasonAmount: amount is not a real number.
	ReasonAmount Reason = "AMOUNT"

	// ReasonStatus: status is not one of the known values.
	ReasonStatus Reason = "STATUS"

	// ReasonCallCount: call_count is not an integer.
	ReasonCallCount Reason = "CALL_COUNT"

	// ReasonResolutionDate: resolution_date is not dd-mm-yyyy.
	ReasonResolutionDate Reason = "RESOLUTION_DATE"

	// ReasonUnexpectedIncidentFields: incident-only fields set on a
	// non-incident record (strict mode only).
	ReasonUnexpectedIncidentFields Reason = "UNEXPECTED_INCIDENT_FIELDS"
)

var reasonMessages = map[Reason]string{
	ReasonEntryDate:                "invalid entry date",
	ReasonMissingFields:            "record has empty fields",
	ReasonAmount:                   "invalid amount",
	ReasonStatus:                   "invalid status",
	ReasonCallCount:                "invalid call count",
	ReasonResolutionDate:           "invalid resolution date",
	ReasonUnexpectedIncidentFields: "incident fields set on a non-incident record",
}

// Message returns the human-readable text for r.
func (r Reason) Message() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	return string(r)
}

// Error is a single rule violation.
type Error struct {
	// Row is the spreadsheet row number, or 0 for form input.
	Row int

	// Field is the offending field name (snake_case).
	Field string

	// Reason is the rule that failed.
	Reason Reason

	// Value is the rejected input, when there is one.
	Value string
}

func (e *Error) Error() string {
	msg := e.Reason.Message()
	if e.Field != "" {
		msg = fmt.Sprintf("%s (%s=%q)", msg, e.Field, e.Value)
	}
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s", e.Row, msg)
	}
	return msg
}

// Is makes errors.Is(err, ErrInvalid) true for every *Error.
func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// ReasonOf extracts the failure reason from err.
// Returns "" when err is not a validation failure.
func ReasonOf(err error) Reason {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Reason
	}
	return ""
}
