package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/servicelog/internal/record"
)

const selectRecords = `
	SELECT id, entry_date, operator, identifier, amount, status, field,
	       call_count, resolution_date, resolution_operator, notes
	FROM records`

// entryDateKey rewrites dd-mm-yyyy as yyyymmdd so text comparison is
// chronological.
const entryDateKey = `(substr(entry_date, 7, 4) || substr(entry_date, 4, 2) || substr(entry_date, 1, 2))`

// lookupColumns is the allow-list for FindRecordsByField.
var lookupColumns = map[record.Field]string{
	record.FieldID:                 "id",
	record.FieldEntryDate:          "entry_date",
	record.FieldOperator:           "operator",
	record.FieldIdentifier:         "identifier",
	record.FieldAmount:             "amount",
	record.FieldStatus:             "status",
	record.FieldField:              "field",
	record.FieldCallCount:          "call_count",
	record.FieldResolutionDate:     "resolution_date",
	record.FieldResolutionOperator: "resolution_operator",
	record.FieldNotes:              "notes",
}

// ListRecords returns every record in insertion order.
func (s *Store) ListRecords(ctx context.Context) ([]record.Record, error) {
	return s.queryRecords(ctx, "list records", selectRecords+" ORDER BY id ASC")
}

// GetRecord retrieves a single record by id.
// Returns ErrNotFound if it does not exist.
func (s *Store) GetRecord(ctx context.Context, id int64) (record.Record, error) {
	row := s.db.QueryRowContext(ctx, selectRecords+" WHERE id = ?", id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return record.Record{}, fmt.Errorf("get record %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return record.Record{}, persistErr("get record", err)
	}
	return rec, nil
}

// FindRecordsByField returns records whose column for field equals value.
// field must be one of the record.Field constants.
func (s *Store) FindRecordsByField(ctx context.Context, field record.Field, value string) ([]record.Record, error) {
	column, ok := lookupColumns[field]
	if !ok {
		return nil, fmt.Errorf("find records: %w: %q", record.ErrUnknownField, string(field))
	}
	return s.queryRecords(ctx, "find records",
		selectRecords+" WHERE "+column+" = ? ORDER BY id ASC", value)
}

// FindRecordsByDateRange returns records with start <= entry_date <= end.
// Both bounds are dd-mm-yyyy and compared chronologically.
func (s *Store) FindRecordsByDateRange(ctx context.Context, start, end string) ([]record.Record, error) {
	from, ok := record.DateKey(start)
	if !ok {
		return nil, fmt.Errorf("find records by date: %w: %q", ErrInvalidDate, start)
	}
	to, ok := record.DateKey(end)
	if !ok {
		return nil, fmt.Errorf("find records by date: %w: %q", ErrInvalidDate, end)
	}
	return s.queryRecords(ctx, "find records by date",
		selectRecords+" WHERE "+entryDateKey+" BETWEEN ? AND ? ORDER BY id ASC", from, to)
}

// FindRecordsSince returns records with entry_date on or after start.
func (s *Store) FindRecordsSince(ctx context.Context, start string) ([]record.Record, error) {
	from, ok := record.DateKey(start)
	if !ok {
		return nil, fmt.Errorf("find records since: %w: %q", ErrInvalidDate, start)
	}
	return s.queryRecords(ctx, "find records since",
		selectRecords+" WHERE "+entryDateKey+" >= ? ORDER BY id ASC", from)
}

// queryRecords runs a record query and collects the rows.
// Returns an empty slice (not nil) if no records match.
func (s *Store) queryRecords(ctx context.Context, op, query string, args ...any) ([]record.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistErr(op, err)
	}
	defer rows.Close()

	records := []record.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, persistErr(op, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr(op, fmt.Errorf("iterate: %w", err))
	}
	return records, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (record.Record, error) {
	var (
		rec    record.Record
		status string
	)
	err := row.Scan(
		&rec.ID,
		&rec.EntryDate,
		&rec.Operator,
		&rec.Identifier,
		&rec.Amount,
		&status,
		&rec.Field,
		&rec.CallCount,
		&rec.ResolutionDate,
		&rec.ResolutionOperator,
		&rec.Notes,
	)
	if err != nil {
		return record.Record{}, err
	}
	rec.Status = record.Status(status)
	return rec, nil
}
