// Package record defines the service-record data model.
//
// This package contains type definitions only. The store, validate, sheet
// and registry packages import record; record imports nothing internal.
//
// Three entities are persisted:
//   - User: an operator that can be picked on a record
//   - Record: one service ticket
//   - LogEntry: one audit-trail line, appended by every store mutation
//
// Dates (entry_date, resolution_date) are kept as dd-mm-yyyy display text,
// exactly as typed or imported. They are never normalized.
package record
