package record

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField is returned by ParseField for names outside the allow-list.
var ErrUnknownField = errors.New("unknown record field")

// Field names a record attribute that can be used as a lookup key.
type Field string

const (
	FieldID                 Field = "id"
	FieldEntryDate          Field = "entry_date"
	FieldOperator           Field = "operator"
	FieldIdentifier         Field = "identifier"
	FieldAmount             Field = "amount"
	FieldStatus             Field = "status"
	FieldField              Field = "field"
	FieldCallCount          Field = "call_count"
	FieldResolutionDate     Field = "resolution_date"
	FieldResolutionOperator Field = "resolution_operator"
	FieldNotes              Field = "notes"
)

// Fields in column order. Labels line up with the spreadsheet header.
var fieldOrder = []Field{
	FieldID,
	FieldEntryDate,
	FieldOperator,
	FieldIdentifier,
	FieldAmount,
	FieldStatus,
	FieldField,
	FieldCallCount,
	FieldResolutionDate,
	FieldResolutionOperator,
	FieldNotes,
}

var fieldLabels = map[Field]string{
	FieldID:                 "ID",
	FieldEntryDate:          "Fecha entrada",
	FieldOperator:           "Operador",
	FieldIdentifier:         "Identificador",
	FieldAmount:             "Importe",
	FieldStatus:             "Estado",
	FieldField:              "Campo",
	FieldCallCount:          "Nº llamadas",
	FieldResolutionDate:     "Fecha resolución",
	FieldResolutionOperator: "Operador resolución",
	FieldNotes:              "Observaciones",
}

// AllFields returns every lookup field in column order.
func AllFields() []Field {
	out := make([]Field, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// Label returns the spreadsheet header label for f.
func (f Field) Label() string {
	return fieldLabels[f]
}

// ParseField resolves a field by its snake_case name or its header label.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseField(name string) (Field, error) {
	want := strings.TrimSpace(name)
	for _, f := range fieldOrder {
		if strings.EqualFold(want, string(f)) || strings.EqualFold(want, fieldLabels[f]) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}
