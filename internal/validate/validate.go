// Package validate checks candidate records before they reach the store.
//
// Check is pure: it never touches the database and returns either the
// parsed record fields or exactly one *Error describing the first rule
// that failed. The same rules apply to form input and to imported rows.
//
// Rules, in order:
//  1. entry_date is dd-mm-yyyy (shape only, not calendar validity)
//  2. operator and identifier are non-empty
//  3. amount is a real number
//  4. status is a known value
//  5. INCIDENT: field, resolution_date and resolution_operator are set,
//     call_count is a positive integer, resolution_date is dd-mm-yyyy
//  6. otherwise: call_count, if set, is a non-negative integer; in strict
//     mode the incident-only fields must be empty
package validate

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/roach88/servicelog/internal/record"
)

// Validator applies the record rules.
type Validator struct {
	strict bool
}

// Option configures a Validator.
type Option func(*Validator)

// Strict makes non-incident records with incident-only fields fail.
func Strict() Option {
	return func(v *Validator) { v.strict = true }
}

// WithStrict sets strict mode from a flag value.
func WithStrict(on bool) Option {
	return func(v *Validator) { v.strict = on }
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Check validates d and returns the fields to persist.
func (v *Validator) Check(d record.Draft) (record.Fields, error) {
	return v.CheckRow(0, d)
}

// CheckRow is Check for an imported row; failures carry the row number.
func (v *Validator) CheckRow(row int, d record.Draft) (record.Fields, error) {
	fail := func(field string, reason Reason, value string) (record.Fields, error) {
		return record.Fields{}, &Error{Row: row, Field: field, Reason: reason, Value: value}
	}

	if !record.IsDate(d.EntryDate) {
		return fail(string(record.FieldEntryDate), ReasonEntryDate, d.EntryDate)
	}

	if strings.TrimSpace(d.Operator) == "" {
		return fail(string(record.FieldOperator), ReasonMissingFields, d.Operator)
	}
	if strings.TrimSpace(d.Identifier) == "" {
		return fail(string(record.FieldIdentifier), ReasonMissingFields, d.Identifier)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(d.Amount))
	if err != nil {
		return fail(string(record.FieldAmount), ReasonAmount, d.Amount)
	}

	status := record.Status(d.Status)
	if !status.Valid() {
		return fail(string(record.FieldStatus), ReasonStatus, d.Status)
	}

	fields := record.Fields{
		EntryDate:          d.EntryDate,
		Operator:           d.Operator,
		Identifier:         d.Identifier,
		Amount:             amount,
		Status:             status,
		Field:              d.Field,
		ResolutionDate:     d.ResolutionDate,
		ResolutionOperator: d.ResolutionOperator,
		Notes:              d.Notes,
	}

	if status == record.StatusIncident {
		for _, f := range []struct {
			name  record.Field
			value string
		}{
			{record.FieldField, d.Field},
			{record.FieldResolutionDate, d.ResolutionDate},
			{record.FieldResolutionOperator, d.ResolutionOperator},
		} {
			if strings.TrimSpace(f.value) == "" {
				return fail(string(f.name), ReasonMissingFields, f.value)
			}
		}

		calls, err := strconv.ParseInt(strings.TrimSpace(d.CallCount), 10, 64)
		if err != nil || calls < 1 {
			return fail(string(record.FieldCallCount), ReasonCallCount, d.CallCount)
		}
		fields.CallCount = calls

		if !record.IsDate(d.ResolutionDate) {
			return fail(string(record.FieldResolutionDate), ReasonResolutionDate, d.ResolutionDate)
		}
		return fields, nil
	}

	// Blank call_count on a non-incident record means zero.
	if c := strings.TrimSpace(d.CallCount); c != "" {
		calls, err := strconv.ParseInt(c, 10, 64)
		if err != nil || calls < 0 {
			return fail(string(record.FieldCallCount), ReasonCallCount, d.CallCount)
		}
		fields.CallCount = calls
	}

	if v.strict && fields.HasIncidentFields() {
		return fail("", ReasonUnexpectedIncidentFields, "")
	}

	return fields, nil
}
