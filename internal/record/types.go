package record

import (
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a record.
type Status string

const (
	StatusEmpty    Status = "--"
	StatusOK       Status = "OK"
	StatusIncident Status = "INCIDENT"
	StatusKO       Status = "KO"
)

// Statuses lists every known status in display order.
var Statuses = []Status{StatusEmpty, StatusOK, StatusIncident, StatusKO}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// User is an operator that can be assigned to records.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required,max=64,excludesall= \t\n"`
}

// Fields is a record without its id: the ten values written by an insert.
//
// Field, CallCount, ResolutionDate and ResolutionOperator only carry
// meaning when Status is StatusIncident.
type Fields struct {
	EntryDate          string          `json:"entry_date"`
	Operator           string          `json:"operator"`
	Identifier         string          `json:"identifier"`
	Amount             decimal.Decimal `json:"amount"`
	Status             Status          `json:"status"`
	Field              string          `json:"field"`
	CallCount          int64           `json:"call_count"`
	ResolutionDate     string          `json:"resolution_date"`
	ResolutionOperator string          `json:"resolution_operator"`
	Notes              string          `json:"notes"`
}

// Record is a persisted service record.
type Record struct {
	ID int64 `json:"id"`
	Fields
}

// HasIncidentFields reports whether any of the incident-only fields is set.
func (f Fields) HasIncidentFields() bool {
	return f.Field != "" || f.CallCount != 0 || f.ResolutionDate != "" || f.ResolutionOperator != ""
}

// Draft is an unvalidated candidate record as raw text, in the order of the
// import header. Form input and spreadsheet rows both arrive in this shape.
type Draft struct {
	EntryDate          string
	Operator           string
	Identifier         string
	Amount             string
	Status             string
	Field              string
	CallCount          string
	ResolutionDate     string
	ResolutionOperator string
	Notes              string
}

// DraftFromRow builds a draft from a row of cells in import-header order.
// Missing trailing cells are treated as empty.
func DraftFromRow(row []string) Draft {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return Draft{
		EntryDate:          cell(0),
		Operator:           cell(1),
		Identifier:         cell(2),
		Amount:             cell(3),
		Status:             cell(4),
		Field:              cell(5),
		CallCount:          cell(6),
		ResolutionDate:     cell(7),
		ResolutionOperator: cell(8),
		Notes:              cell(9),
	}
}

// LogEntry is one line of the audit trail.
type LogEntry struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
	Action    string `json:"action"`
}

// TimestampLayout is the layout of LogEntry.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"
